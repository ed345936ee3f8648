package handlers

import (
	"net/http"

	"github.com/anonto42/microposts/backend/internal/social"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	profiles *social.Profiles
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(profiles *social.Profiles) *FeedHandler {
	return &FeedHandler{profiles: profiles}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns the microposts of the current user and everyone they follow
func (h *FeedHandler) GetFeed(c echo.Context) error {
	actorID, err := requireActor(c)
	if err != nil {
		return err
	}

	posts, err := h.profiles.Feed(c.Request().Context(), actorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load feed").SetInternal(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": posts})
}
