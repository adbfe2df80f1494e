package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aus-site-backend/internal/appstate"
	"aus-site-backend/internal/i18n"
)

// Page names a routed page of the site.
type Page string

const (
	PageHome        Page = "home"
	PageAbout       Page = "about"
	PageInvolvement Page = "involvement"
	PageResources   Page = "resources"
	PageAcademics   Page = "academics"
	PageContact     Page = "contact"
	PageGovernance  Page = "governance"
)

// pages lists the routed pages in navigation order with their label keys.
var pages = []struct {
	page     Page
	navKey   string
	titleKey string
}{
	{PageHome, "navHome", "headerTitle"},
	{PageAbout, "navAbout", "aboutTitle"},
	{PageInvolvement, "navInvolvement", "involvementTitle"},
	{PageResources, "navResources", "resourcesTitle"},
	{PageAcademics, "navAcademics", "academicsTitle"},
	{PageContact, "navContact", "contactTitle"},
	{PageGovernance, "navGovernance", "governanceTitle"},
}

type navItem struct {
	Page  Page   `json:"page"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

type headerView struct {
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
	Nav      []navItem `json:"nav"`
}

type section struct {
	Key     string `json:"key"`
	Heading string `json:"heading"`
	Body    string `json:"body,omitempty"`
	Items   any    `json:"items,omitempty"`
}

type pageResponse struct {
	Page     Page          `json:"page"`
	Title    string        `json:"title"`
	State    stateResponse `json:"state"`
	Header   headerView    `json:"header"`
	Sections []section     `json:"sections"`
}

func pagePath(p Page) string {
	if p == PageHome {
		return "/"
	}
	return "/" + string(p)
}

// GetPage handles GET /api/pages/:page. Unknown pages redirect to home.
func (h *Handler) GetPage(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}

	page := Page(c.Param("page"))
	titleKey := ""
	for _, p := range pages {
		if p.page == page {
			titleKey = p.titleKey
		}
	}
	if titleKey == "" {
		c.Redirect(http.StatusFound, "/api/pages/"+string(PageHome))
		return
	}

	st := s.State.Snapshot()
	t := h.bundle.For(st.Language)
	c.JSON(http.StatusOK, pageResponse{
		Page:     page,
		Title:    t.Get(titleKey),
		State:    h.stateView(st),
		Header:   h.header(t),
		Sections: h.sections(page, st, t),
	})
}

func (h *Handler) header(t i18n.Translations) headerView {
	nav := make([]navItem, 0, len(pages))
	for _, p := range pages {
		nav = append(nav, navItem{Page: p.page, Label: t.Get(p.navKey), Path: pagePath(p.page)})
	}
	return headerView{
		Title:    t.Get("headerTitle"),
		Subtitle: t.Get("headerSubtitle"),
		Nav:      nav,
	}
}

func (h *Handler) sections(page Page, st appstate.State, t i18n.Translations) []section {
	switch page {
	case PageHome:
		return []section{
			{Key: "announcements", Heading: t.Get("latestAnnouncements"), Items: h.content.Announcements(st.Language)},
			{Key: "events", Heading: t.Get("upcomingEvents"), Items: h.content.Events(st.Language)},
		}
	case PageResources:
		return []section{
			{Key: "food", Heading: t.Get("foodTitle"), Items: h.content.FoodByType()},
			{Key: "discounts", Heading: t.Get("discountsTitle"), Items: h.content.Discounts("")},
			{Key: "studySpaces", Heading: t.Get("studySpacesTitle"), Items: h.content.StudySpaces()},
			{Key: "roomBooking", Heading: t.Get("roomBookingTitle"), Body: t.Get("roomBookingSubtitle"), Items: h.rooms.Grouped()},
		}
	case PageContact:
		return []section{
			{Key: "contact", Heading: t.Get("contactTitle"), Body: t.Get("contactSubtitle")},
		}
	default:
		return []section{
			{Key: string(page), Heading: t.Get(string(page) + "Title"), Body: t.Get(string(page) + "Body")},
		}
	}
}
