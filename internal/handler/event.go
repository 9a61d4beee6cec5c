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
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/storage"
)

// EventHandler lets ENTITY accounts manage events for organizations they
// own.
type EventHandler struct {
	Events *repository.EventRepo
	Store  *storage.LocalStore
}

func NewEventHandler(r *repository.EventRepo, st *storage.LocalStore) *EventHandler {
	if r == nil || st == nil {
		panic("nil dependency passed to NewEventHandler")
	}
	return &EventHandler{Events: r, Store: st}
}

type eventReq struct {
	EntityID    uint64    `json:"entity_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Capacity    *uint32   `json:"capacity"`
	Status      *string   `json:"status"` // SCHEDULED | CANCELLED, update only
}

func (req *eventReq) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	req.Location = strings.TrimSpace(req.Location)
	if req.Name == "" {
		return "name required"
	}
	if req.Location == "" {
		return "location required"
	}
	if req.StartsAt.IsZero() || req.EndsAt.IsZero() {
		return "starts_at and ends_at required"
	}
	if !req.EndsAt.After(req.StartsAt) {
		return "ends_at must be after starts_at"
	}
	if req.Capacity != nil && *req.Capacity == 0 {
		return "capacity must be positive"
	}
	return ""
}

// Create schedules a new event under one of the caller's organizations.
func (h *EventHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.EntityID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "entity_id required"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ev := model.Event{
		EntityID:    req.EntityID,
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Capacity:    req.Capacity,
		Status:      model.EventStatusScheduled,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Events.Create(ctx, &ev, uid); err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toEventView(ev, h.Store, time.Now()))
}

// Update edits an event the caller's organization owns.
func (h *EventHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	status := model.EventStatusScheduled
	if req.Status != nil {
		status = strings.ToUpper(strings.TrimSpace(*req.Status))
		if status != model.EventStatusScheduled && status != model.EventStatusCancelled {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
	}

	ev := model.Event{
		ID:          id,
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Capacity:    req.Capacity,
		Status:      status,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Events.Update(ctx, &ev, uid); err != nil {
		return h.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadPhoto stores the event's cover photo.
func (h *EventHandler) UploadPhoto(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "photo file required"})
	}
	if fh.Size > 10<<20 {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "photo exceeds 10 MiB"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot read upload"})
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	prev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	objPath, err := h.Store.Save("events", fh.Filename, src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store upload failed"})
	}
	if err := h.Events.SetPhotoPath(ctx, id, uid, &objPath); err != nil {
		_ = h.Store.Delete(objPath)
		return h.writeError(c, err)
	}
	if prev.PhotoPath != nil {
		_ = h.Store.Delete(*prev.PhotoPath)
	}
	return c.JSON(http.StatusOK, echo.Map{"photo_url": h.Store.PublicURL(objPath)})
}

// Delete removes an event.
func (h *EventHandler) Delete(c echo.Context) error {
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

	if err := h.Events.Delete(ctx, id, uid); err != nil {
		return h.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *EventHandler) writeError(c echo.Context, err error) error {
	switch err {
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not the owner of this event"})
	case sql.ErrNoRows:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "operation failed"})
	}
}
