package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/handler"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/middleware"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/model"
)

// RegisterAdmin wires the administration surface: the reservation
// approval dashboard with conflict checks and batch decisions, room
// inventory management, partner companies and the portal-wide overview.
func RegisterAdmin(e *echo.Echo, res *handler.AdminReservationHandler, rooms *handler.RoomHandler, co *handler.CompanyHandler, dash *handler.DashboardHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.GET("/reservations", res.List)
	g.GET("/reservations/pending", res.Pending)
	g.GET("/reservations/:id/conflicts", res.Conflicts)
	g.POST("/reservations/:id/approve", res.Approve)
	g.POST("/reservations/:id/reject", res.Reject)
	g.POST("/reservations/batch-approve", res.BatchApprove)
	g.POST("/reservations/batch-reject", res.BatchReject)
	// One-shot cleanup for ROOM reservations a legacy client approved
	// without assigning a room.
	g.POST("/reservations/repair-room-approvals", res.RepairApprovedWithoutRoom)

	g.POST("/rooms", rooms.Create)
	g.GET("/rooms", rooms.List)
	g.PUT("/rooms/:id/active", rooms.SetActive)

	g.POST("/companies", co.Create)
	g.PUT("/companies/:id", co.Update)
	g.POST("/companies/:id/logo", co.UploadLogo)
	g.DELETE("/companies/:id", co.Delete)

	g.GET("/dashboard", dash.Admin)
}
