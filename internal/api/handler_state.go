package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aus-site-backend/internal/appstate"
	"aus-site-backend/internal/i18n"
)

type toggleView struct {
	Label     string `json:"label"`
	AriaLabel string `json:"ariaLabel"`
}

type stateResponse struct {
	Language       string     `json:"language"`
	DarkMode       bool       `json:"darkMode"`
	Theme          string     `json:"theme"`
	LanguageToggle toggleView `json:"languageToggle"`
	ThemeToggle    toggleView `json:"themeToggle"`
}

func (h *Handler) stateView(s appstate.State) stateResponse {
	t := h.bundle.For(s.Language)
	resp := stateResponse{
		Language: s.Language.String(),
		DarkMode: s.DarkMode,
		Theme:    string(s.Theme()),
		LanguageToggle: toggleView{
			Label:     t.Get("toggleLanguageLabel"),
			AriaLabel: t.Get("toggleToFrench"),
		},
		ThemeToggle: toggleView{
			Label:     t.Get("darkModeLabel"),
			AriaLabel: t.Get("toggleToDark"),
		},
	}
	if s.Language == i18n.French {
		resp.LanguageToggle.AriaLabel = t.Get("toggleToEnglish")
	}
	if s.DarkMode {
		resp.ThemeToggle = toggleView{Label: t.Get("lightModeLabel"), AriaLabel: t.Get("toggleToLight")}
	}
	return resp
}

// GetState handles GET /api/state.
func (h *Handler) GetState(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.stateView(s.State.Snapshot()))
}

// ToggleLanguage handles POST /api/state/language/toggle.
func (h *Handler) ToggleLanguage(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.stateView(s.State.ToggleLanguage()))
}

// ToggleTheme handles POST /api/state/theme/toggle.
func (h *Handler) ToggleTheme(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.stateView(s.State.ToggleDarkMode()))
}

// GetTranslations handles GET /api/i18n. The session language is used
// unless ?lang= names another supported language.
func (h *Handler) GetTranslations(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	lang := s.State.Language()
	if raw := c.Query("lang"); raw != "" {
		parsed, err := i18n.ParseLanguage(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		lang = parsed
	}
	c.JSON(http.StatusOK, gin.H{
		"language":     lang.String(),
		"translations": h.bundle.For(lang),
	})
}
