package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/model"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/repository"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/service"
)

// dashboardQueueSize caps how much of the pending queue the overview
// embeds; the full paginated queue lives on /admin/reservations/pending.
const dashboardQueueSize = 50

// DashboardHandler aggregates counters for the admin overview and the
// per-entity dashboard.
type DashboardHandler struct {
	Reservations *repository.ReservationRepo
	Entities     *repository.EntityRepo
	Events       *repository.EventRepo
	Interests    *repository.InterestRepo
	Checker      *service.ConflictChecker
}

func NewDashboardHandler(r *repository.ReservationRepo, en *repository.EntityRepo, ev *repository.EventRepo, in *repository.InterestRepo, ch *service.ConflictChecker) *DashboardHandler {
	if r == nil || en == nil || ev == nil || in == nil || ch == nil {
		panic("nil dependency passed to NewDashboardHandler")
	}
	return &DashboardHandler{Reservations: r, Entities: en, Events: ev, Interests: in, Checker: ch}
}

// Admin returns the portal-wide counters: reservations by status and
// type, entities by status, upcoming events, interest volume and the
// head of the pending queue annotated with conflict checks.
func (h *DashboardHandler) Admin(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	resByStatus, err := h.Reservations.StatusCounts(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	resByType, err := h.Reservations.TypeCounts(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	entByStatus, err := h.Entities.CountByStatus(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	upcoming, err := h.Events.CountUpcoming(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	interests, err := h.Interests.CountAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	pending, pendingTotal, err := h.Reservations.List(ctx, repository.ReservationQuery{
		Status:   model.ReservationStatusPending,
		Page:     1,
		PageSize: dashboardQueueSize,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	queue := annotatePending(ctx, h.Checker, pending)

	return c.JSON(http.StatusOK, echo.Map{
		"reservations_by_status": resByStatus,
		"reservations_by_type":   resByType,
		"entities_by_status":     entByStatus,
		"upcoming_events":        upcoming,
		"interests_by_status":    interests,
		"pending_queue":          queue,
		"pending_total":          pendingTotal,
		"pending_with_conflicts": countConflicted(queue),
	})
}

// Entity returns the counters for one organization: interest volume per
// status plus its scheduled events. Owner-only, enforced by the interest
// repository's ownership check.
func (h *DashboardHandler) Entity(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	entityID := pathID(c, "id")
	if entityID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	// The owner check rides on the interest listing; a non-owner gets 403
	// before any counters leak.
	if _, err := h.Interests.ListByEntityForOwner(ctx, entityID, uid, ""); err != nil {
		if err == repository.ErrForbidden {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not the owner of this entity"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	interests, err := h.Interests.CountByEntity(ctx, entityID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	events, err := h.Events.ListByEntity(ctx, entityID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"interests_by_status": interests,
		"event_count":         len(events),
	})
}
