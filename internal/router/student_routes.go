package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/handler"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/middleware"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/model"
)

// RegisterStudent wires the endpoints a logged-in portal user works with:
// filing reservation requests and demonstrating interest in organizations.
// ENTITY accounts get the same surface since their members also reserve
// rooms and join other organizations.
func RegisterStudent(e *echo.Echo, res *handler.ReservationHandler, in *handler.InterestHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleStudent, model.RoleEntity, model.RoleAdmin),
	)

	g.POST("/reservations", res.Create)
	g.GET("/my-reservations", res.Mine)
	g.DELETE("/reservations/:id", res.Cancel)

	g.POST("/interests", in.Demonstrate)
	g.GET("/my-interests", in.Mine)
}
