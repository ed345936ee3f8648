package handlers

import (
	"net/http"

	"github.com/anonto42/microposts/backend/internal/metrics"
	"github.com/anonto42/microposts/backend/internal/social"
	"github.com/anonto42/microposts/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	follows *social.FollowGraph
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(follows *social.FollowGraph) *FollowHandler {
	return &FollowHandler{follows: follows}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
	g.GET("/users/:id/followings", h.ListFollowings)
	g.GET("/users/:id/followers", h.ListFollowers)
}

// FollowUser makes the acting user follow :id and redirects back. Following
// an already followed user, or oneself, is a silent no-op.
func (h *FollowHandler) FollowUser(c echo.Context) error {
	actorID, err := requireActor(c)
	if err != nil {
		return err
	}
	targetID, err := bindID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	changed, err := h.follows.Follow(ctx, actorID, targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to follow user").SetInternal(err)
	}
	metrics.ObserveToggle("follow", "add", changed)
	l := logger.Ctx(ctx)
	l.Debug().Uint(logger.FieldUserID, actorID).Uint("target_id", targetID).Bool("changed", changed).Msg("follow")

	return redirectBack(c)
}

// UnfollowUser removes the acting user's follow of :id and redirects back
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	actorID, err := requireActor(c)
	if err != nil {
		return err
	}
	targetID, err := bindID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	changed, err := h.follows.Unfollow(ctx, actorID, targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to unfollow user").SetInternal(err)
	}
	metrics.ObserveToggle("follow", "remove", changed)
	l := logger.Ctx(ctx)
	l.Debug().Uint(logger.FieldUserID, actorID).Uint("target_id", targetID).Bool("changed", changed).Msg("unfollow")

	return redirectBack(c)
}

// ListFollowings returns the ids of the users :id follows
func (h *FollowHandler) ListFollowings(c echo.Context) error {
	userID, err := bindID(c)
	if err != nil {
		return err
	}
	ids, err := h.follows.FollowingIDs(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list followings").SetInternal(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"user_id": userID, "followings": ids}})
}

// ListFollowers returns the ids of the users following :id
func (h *FollowHandler) ListFollowers(c echo.Context) error {
	userID, err := bindID(c)
	if err != nil {
		return err
	}
	ids, err := h.follows.FollowerIDs(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list followers").SetInternal(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"user_id": userID, "followers": ids}})
}
