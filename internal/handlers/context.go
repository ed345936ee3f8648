package handlers

import (
	"net/http"

	"github.com/anonto42/microposts/backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext returns the acting user resolved by the auth
// middleware, or 0 when the request is unauthenticated.
func getUserIDFromContext(c echo.Context) uint {
	id, _ := c.Get(middleware.ContextKeyUserID).(uint)
	return id
}

func requireActor(c echo.Context) (uint, error) {
	actorID := getUserIDFromContext(c)
	if actorID == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return actorID, nil
}

type idParam struct {
	ID uint `param:"id" validate:"required,gt=0"`
}

// bindID reads and validates the :id path parameter.
func bindID(c echo.Context) (uint, error) {
	var p idParam
	if err := (&echo.DefaultBinder{}).BindPathParams(c, &p); err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}
	if err := c.Validate(&p); err != nil {
		return 0, err
	}
	return p.ID, nil
}

// redirectBack sends the client to the page it came from, or to / when the
// request carries no Referer.
func redirectBack(c echo.Context) error {
	back := c.Request().Referer()
	if back == "" {
		back = "/"
	}
	return c.Redirect(http.StatusFound, back)
}
