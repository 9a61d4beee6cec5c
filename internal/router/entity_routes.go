package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/handler"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/middleware"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/model"
)

// RegisterEntity wires the organization-owner surface: managing the
// organization profile and its events, reviewing interest demonstrations
// and running the selection process.  All routes require the ENTITY role;
// per-record ownership is enforced in the repository layer.
func RegisterEntity(e *echo.Echo, en *handler.EntityHandler, ev *handler.EventHandler, in *handler.InterestHandler, sel *handler.SelectionHandler, dash *handler.DashboardHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleEntity),
	)

	g.POST("/entities", en.Create)
	g.GET("/my-entities", en.Mine)
	g.PUT("/entities/:id", en.Update)
	g.POST("/entities/:id/logo", en.UploadLogo)
	g.DELETE("/entities/:id", en.Delete)

	g.POST("/events", ev.Create)
	g.PUT("/events/:id", ev.Update)
	g.POST("/events/:id/photo", ev.UploadPhoto)
	g.DELETE("/events/:id", ev.Delete)

	g.GET("/entities/:id/interests", in.ListForEntity)
	g.PUT("/interests/:id/review", in.Review)

	g.POST("/entities/:id/phases", sel.CreatePhase)
	g.GET("/entities/:id/phases", sel.ListPhases)
	g.PUT("/phases/:id", sel.RenamePhase)
	g.DELETE("/phases/:id", sel.DeletePhase)
	g.POST("/entities/:id/candidates", sel.CreateCandidate)
	g.GET("/entities/:id/candidates", sel.ListCandidates)
	g.PUT("/candidates/:id/move", sel.MoveCandidate)
	g.PUT("/candidates/:id", sel.UpdateCandidate)
	g.DELETE("/candidates/:id", sel.DeleteCandidate)

	g.GET("/entities/:id/dashboard", dash.Entity)
}
