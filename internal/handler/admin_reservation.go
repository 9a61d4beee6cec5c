package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/model"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/repository"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/service"
)

// AdminReservationHandler is the approval dashboard: the pending queue
// with conflict warnings, single and batch decisions, and the repair
// operation for reservations approved without a room by older clients.
type AdminReservationHandler struct {
	Reservations *repository.ReservationRepo
	Approvals    *service.ApprovalService
	Checker      *service.ConflictChecker
}

func NewAdminReservationHandler(r *repository.ReservationRepo, a *service.ApprovalService, ch *service.ConflictChecker) *AdminReservationHandler {
	if r == nil || a == nil || ch == nil {
		panic("nil dependency passed to NewAdminReservationHandler")
	}
	return &AdminReservationHandler{Reservations: r, Approvals: a, Checker: ch}
}

type approveReq struct {
	Comment  *string `json:"comment"`
	Location *string `json:"location"`
	RoomID   *uint64 `json:"room_id"`
	Override bool    `json:"override"` // approve despite reported conflicts
}
type rejectReq struct {
	Comment string `json:"comment"`
}
type batchApproveReq struct {
	IDs []uint64 `json:"ids"`
	approveReq
}
type batchRejectReq struct {
	IDs     []uint64 `json:"ids"`
	Comment string   `json:"comment"`
}

// pendingItem pairs a reservation with its conflict annotation so the
// queue view can flag rows needing attention before anyone clicks approve.
type pendingItem struct {
	Reservation reservationView       `json:"reservation"`
	Conflict    service.ConflictResult `json:"conflict"`
}

// conflictFinder is the slice of the conflict checker the queue views need.
type conflictFinder interface {
	Check(ctx context.Context, reservationID uint64, selectedRoomID *uint64) service.ConflictResult
}

// annotatePending runs the conflict check over each reservation. Both the
// approval queue and the admin dashboard render the result, so the
// annotation logic lives in one place.
func annotatePending(ctx context.Context, chk conflictFinder, rows []model.Reservation) []pendingItem {
	out := make([]pendingItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, pendingItem{
			Reservation: toReservationView(r),
			Conflict:    chk.Check(ctx, r.ID, r.RoomID),
		})
	}
	return out
}

// countConflicted tallies the rows whose annotation found an overlap.
func countConflicted(items []pendingItem) int {
	n := 0
	for _, it := range items {
		if it.Conflict.HasConflict {
			n++
		}
	}
	return n
}

// List returns reservations across all requesters with optional
// ?status=, ?type= and ?date= filters.
func (h *AdminReservationHandler) List(c echo.Context) error {
	page, size := pageParams(c)
	q := repository.ReservationQuery{
		Status:   strings.ToUpper(strings.TrimSpace(c.QueryParam("status"))),
		Type:     strings.ToUpper(strings.TrimSpace(c.QueryParam("type"))),
		Page:     page,
		PageSize: size,
	}
	if d := strings.TrimSpace(c.QueryParam("date")); d != "" {
		date, err := time.Parse("2006-01-02", d)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		q.Date = &date
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, total, err := h.Reservations.List(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, pagedResponse{
		Items:    toReservationViews(items),
		Total:    total,
		Page:     page,
		PageSize: size,
	})
}

// Pending returns the PENDING queue, oldest first, each row annotated
// with the result of the conflict check against already-approved
// reservations.
func (h *AdminReservationHandler) Pending(c echo.Context) error {
	page, size := pageParams(c)
	q := repository.ReservationQuery{
		Status:   model.ReservationStatusPending,
		Type:     strings.ToUpper(strings.TrimSpace(c.QueryParam("type"))),
		Page:     page,
		PageSize: size,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	items, total, err := h.Reservations.List(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	out := annotatePending(ctx, h.Checker, items)
	return c.JSON(http.StatusOK, pagedResponse{Items: out, Total: total, Page: page, PageSize: size})
}

// Conflicts runs the conflict check for one reservation on demand, with
// an optional ?room_id= standing in for the room the admin is about to
// grant.
func (h *AdminReservationHandler) Conflicts(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var roomID *uint64
	if n := pathOrQueryID(c, "room_id"); n > 0 {
		roomID = &n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Reservations.GetByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, h.Checker.Check(ctx, id, roomID))
}

// Approve decides one reservation. When conflicts are found and override
// is false the response is 409 with the conflicting reservations, and the
// admin re-submits with override=true to confirm.
func (h *AdminReservationHandler) Approve(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req approveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	err = h.Approvals.Approve(ctx, id, service.ApproveParams{
		Comment:    req.Comment,
		Location:   req.Location,
		RoomID:     req.RoomID,
		Override:   req.Override,
		ApproverID: adminID,
	})
	return h.writeDecision(c, err)
}

// Reject declines one reservation. The comment is mandatory so the
// requester always learns why.
func (h *AdminReservationHandler) Reject(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req rejectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	return h.writeDecision(c, h.Approvals.Reject(ctx, id, req.Comment, adminID))
}

// BatchApprove applies the same approval parameters to every id,
// sequentially and best effort. Rows that fail, including rows with
// unoverridden conflicts, are reported per id while the rest proceed.
func (h *AdminReservationHandler) BatchApprove(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req batchApproveReq
	if err := c.Bind(&req); err != nil || len(req.IDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ids required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	out := h.Approvals.ApproveMany(ctx, req.IDs, service.ApproveParams{
		Comment:    req.Comment,
		Location:   req.Location,
		RoomID:     req.RoomID,
		Override:   req.Override,
		ApproverID: adminID,
	})
	return c.JSON(http.StatusMultiStatus, out)
}

// BatchReject declines every id with the same comment, best effort.
func (h *AdminReservationHandler) BatchReject(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req batchRejectReq
	if err := c.Bind(&req); err != nil || len(req.IDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ids required"})
	}
	if strings.TrimSpace(req.Comment) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "comment required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	out := h.Approvals.RejectMany(ctx, req.IDs, req.Comment, adminID)
	return c.JSON(http.StatusMultiStatus, out)
}

// RepairApprovedWithoutRoom reverts ROOM reservations that ended up
// APPROVED with no room assigned back to PENDING so they re-enter the
// queue and get a proper room this time.
func (h *AdminReservationHandler) RepairApprovedWithoutRoom(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	n, err := h.Reservations.RevertApprovedWithoutRoom(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "repair failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reverted": n})
}

// writeDecision maps approval-workflow errors onto HTTP responses.
func (h *AdminReservationHandler) writeDecision(c echo.Context, err error) error {
	if err == nil {
		return c.NoContent(http.StatusNoContent)
	}
	var conflicts *service.ConflictsFoundError
	if errors.As(err, &conflicts) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":     "conflicting approved reservations found; submit again with override=true to confirm",
			"conflicts": toReservationViews(conflicts.Conflicts),
		})
	}
	switch err {
	case service.ErrCommentRequired:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "comment required"})
	case service.ErrRoomRequired:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id required to approve a ROOM reservation"})
	case repository.ErrNotPending:
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already decided"})
	case sql.ErrNoRows:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "decision failed"})
	}
}
