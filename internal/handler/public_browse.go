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
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/service"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/storage"
)

// PublicHandler serves the unauthenticated catalogue: student
// organizations, their events, the room inventory and partner companies.
type PublicHandler struct {
	Entities  *repository.EntityRepo
	Events    *repository.EventRepo
	Rooms     *repository.RoomRepo
	Companies *repository.CompanyRepo
	Store     *storage.LocalStore
}

func NewPublicHandler(en *repository.EntityRepo, ev *repository.EventRepo, ro *repository.RoomRepo, co *repository.CompanyRepo, st *storage.LocalStore) *PublicHandler {
	return &PublicHandler{Entities: en, Events: ev, Rooms: ro, Companies: co, Store: st}
}

// ListEntities is the organization directory with search, area filter and
// pagination. Only ACTIVE organizations are visible here.
func (h *PublicHandler) ListEntities(c echo.Context) error {
	page, size := pageParams(c)
	q := repository.EntitySearchQuery{
		Text:     strings.TrimSpace(c.QueryParam("q")),
		Area:     strings.TrimSpace(c.QueryParam("area")),
		Status:   model.EntityStatusActive,
		Page:     page,
		PageSize: size,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, total, err := h.Entities.Search(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	// Page-local sort; ?sort=year&desc=true surfaces the newest
	// organizations first on the directory.
	if sortBy := strings.TrimSpace(c.QueryParam("sort")); sortBy != "" {
		items = service.SortEntities(items, sortBy, c.QueryParam("desc") == "true")
	}
	return c.JSON(http.StatusOK, pagedResponse{
		Items:    toEntityViews(items, h.Store),
		Total:    total,
		Page:     page,
		PageSize: size,
	})
}

// GetEntity returns one organization's profile together with its events,
// grouped the way the profile page renders them.
func (h *PublicHandler) GetEntity(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.Entities.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "entity not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if e.Status != model.EntityStatusActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "entity not found"})
	}

	events, err := h.Events.ListByEntity(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	now := time.Now()
	return c.JSON(http.StatusOK, echo.Map{
		"entity": toEntityView(*e, h.Store),
		"events": toEventViews(events, h.Store, now),
	})
}

// ListEvents is the public agenda. Supports ?q=, ?entity_id=, and
// ?bucket=TODAY|UPCOMING|PAST; the default hides past events.
func (h *PublicHandler) ListEvents(c echo.Context) error {
	page, size := pageParams(c)
	bucket := strings.ToUpper(strings.TrimSpace(c.QueryParam("bucket")))

	timeFilter := "upcoming"
	switch bucket {
	case service.EventBucketPast:
		timeFilter = "past"
	case service.EventBucketToday:
		// Same-day events may already have started, so fetch everything
		// and let the bucket filter pick out today's.
		timeFilter = "any"
	}

	q := repository.EventSearchQuery{
		Text:       strings.TrimSpace(c.QueryParam("q")),
		EntityID:   pathOrQueryID(c, "entity_id"),
		TimeFilter: timeFilter,
		Page:       page,
		PageSize:   size,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, total, err := h.Events.Search(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}

	now := time.Now()
	if bucket == service.EventBucketToday {
		items = service.FilterEvents(items, service.EventListFilter{Bucket: bucket}, now)
		total = int64(len(items))
	}
	if sortBy := strings.TrimSpace(c.QueryParam("sort")); sortBy != "" {
		items = service.SortEvents(items, sortBy, c.QueryParam("desc") == "true")
	}
	return c.JSON(http.StatusOK, pagedResponse{
		Items:    toEventViews(items, h.Store, now),
		Total:    total,
		Page:     page,
		PageSize: size,
	})
}

// GetEvent returns one event.
func (h *PublicHandler) GetEvent(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toEventView(*ev, h.Store, time.Now()))
}

// ListRooms lists the reservable room inventory. ?min_capacity= narrows
// to rooms big enough for the requested audience.
func (h *PublicHandler) ListRooms(c echo.Context) error {
	minCap := uint32(0)
	if n := pathOrQueryID(c, "min_capacity"); n > 0 {
		minCap = uint32(n)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.List(ctx, true, minCap)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]roomView, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomView(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetRoom returns one room. Inactive rooms stay visible here so existing
// reservations keep a resolvable location.
func (h *PublicHandler) GetRoom(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toRoomView(*room))
}

// ListCompanies lists partner companies shown on the portal's landing page.
func (h *PublicHandler) ListCompanies(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	companies, err := h.Companies.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]companyView, 0, len(companies))
	for _, pc := range companies {
		out = append(out, toCompanyView(pc, h.Store))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
