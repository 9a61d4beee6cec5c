package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/model"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/repository"
)

// ReservationHandler covers the requester side of room and auditorium
// reservations: filing a request, listing own requests and cancelling a
// pending one. Decisions are the admin's job (see AdminReservationHandler).
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Rooms        *repository.RoomRepo
}

func NewReservationHandler(r *repository.ReservationRepo, rooms *repository.RoomRepo) *ReservationHandler {
	if r == nil || rooms == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: r, Rooms: rooms}
}

type reservationReq struct {
	Type             string  `json:"type"` // ROOM | AUDITORIUM
	EntityID         *uint64 `json:"entity_id"`
	RequesterName    string  `json:"requester_name"`
	RequesterPhone   string  `json:"requester_phone"`
	EventName        *string `json:"event_name"`
	EventDescription *string `json:"event_description"`
	Date             string  `json:"date"`       // "2006-01-02"
	StartTime        string  `json:"start_time"` // "HH:MM"
	EndTime          string  `json:"end_time"`   // "HH:MM", exclusive
	RoomID           *uint64 `json:"room_id"`    // optional preference, ROOM only
	Quantity         uint32  `json:"quantity"`
}

// Create files a new reservation request. It enters the queue as PENDING;
// no conflict check happens here, overlap is the approver's concern.
func (h *ReservationHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	req.Type = strings.ToUpper(strings.TrimSpace(req.Type))
	if req.Type != model.ReservationTypeRoom && req.Type != model.ReservationTypeAuditorium {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type must be ROOM or AUDITORIUM"})
	}
	req.RequesterName = strings.TrimSpace(req.RequesterName)
	req.RequesterPhone = strings.TrimSpace(req.RequesterPhone)
	if req.RequesterName == "" || req.RequesterPhone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "requester_name and requester_phone required"})
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	if !validTimeWindow(req.StartTime, req.EndTime) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time/end_time must be HH:MM with start before end"})
	}
	if req.Quantity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be positive"})
	}
	if req.Type == model.ReservationTypeAuditorium && req.RoomID != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "auditorium reservations carry no room_id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// A requested room must exist and be active. The final room is still
	// the approver's call.
	if req.RoomID != nil {
		room, err := h.Rooms.GetByID(ctx, *req.RoomID)
		if err != nil {
			if err == sql.ErrNoRows {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown room_id"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		if !room.IsActive {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "room is not available"})
		}
	}

	res := model.Reservation{
		Type:             req.Type,
		RequesterID:      uid,
		EntityID:         req.EntityID,
		RequesterName:    req.RequesterName,
		RequesterPhone:   req.RequesterPhone,
		EventName:        req.EventName,
		EventDescription: req.EventDescription,
		Date:             date,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		RoomID:           req.RoomID,
		Quantity:         req.Quantity,
	}
	if err := h.Reservations.Create(ctx, &res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, toReservationView(res))
}

// Mine lists the caller's reservations with optional ?status= and ?type=.
func (h *ReservationHandler) Mine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	page, size := pageParams(c)
	q := repository.ReservationQuery{
		Status:      strings.ToUpper(strings.TrimSpace(c.QueryParam("status"))),
		Type:        strings.ToUpper(strings.TrimSpace(c.QueryParam("type"))),
		RequesterID: uid,
		Page:        page,
		PageSize:    size,
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

// Cancel withdraws one of the caller's PENDING reservations.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Reservations.Cancel(ctx, id, uid); err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your reservation"})
	case repository.ErrNotPending:
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already decided"})
	case sql.ErrNoRows:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
}
