package handlers

import (
	"net/http"

	"github.com/anonto42/microposts/backend/internal/social"
	"github.com/labstack/echo/v4"
)

// UserHandler serves user profile summaries
type UserHandler struct {
	profiles *social.Profiles
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(profiles *social.Profiles) *UserHandler {
	return &UserHandler{profiles: profiles}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/users/:id/summary", h.GetSummary)
}

// GetSummary returns the micropost, following, follower and favorite counts of :id
func (h *UserHandler) GetSummary(c echo.Context) error {
	userID, err := bindID(c)
	if err != nil {
		return err
	}
	summary, err := h.profiles.Summary(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load profile summary").SetInternal(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": summary})
}
