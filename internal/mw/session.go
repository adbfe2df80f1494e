package mw

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"aus-site-backend/internal/session"
)

const sessionContextKey = "aus.session"

// Session attaches the visitor's session to the request, creating one and
// issuing a cookie when the request carries no valid session id.
func Session(reg *session.Registry, cookieName string) gin.HandlerFunc {
	maxAge := int(reg.IdleTimeout().Seconds())
	return func(c *gin.Context) {
		id, err := c.Cookie(cookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}

		s, _ := reg.GetOrCreate(c.Request.Context(), id)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, s.ID, maxAge, "/", "", false, true)
		c.Set(sessionContextKey, s)
		c.Next()
	}
}

// CurrentSession returns the session attached by Session.
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}

// SessionStateKey caches by the visitor's language and theme plus the
// request URI. It requires the Session middleware.
func SessionStateKey(c *gin.Context) string {
	s := CurrentSession(c)
	if s == nil {
		return RequestURIKey(c)
	}
	st := s.State.Snapshot()
	return st.Language.String() + "|" + string(st.Theme()) + "|" + RequestURIKey(c)
}
