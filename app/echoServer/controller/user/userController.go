// app/echoServer/controller/user/userController.go
package user

import (
	"log/slog"
	"net/http"

	"github.com/meghana367/bookstoreapp/app/echoServer/jwtx"
	authsvc "github.com/meghana367/bookstoreapp/service/auth"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc authsvc.Service
	Log *slog.Logger
}

// GET /v1/users  (admin)
// Passwords never leave the model layer (json:"-").
func (h *Controller) List(c echo.Context) error {
	if !jwtx.IsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	rows, err := h.Svc.ListUsers(c.Request().Context())
	if err != nil {
		h.Log.Error("user list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
