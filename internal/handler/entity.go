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

// EntityHandler lets ENTITY accounts manage their own organizations.
// Every write is ownership-checked in the repository layer.
type EntityHandler struct {
	Entities *repository.EntityRepo
	Store    *storage.LocalStore
}

func NewEntityHandler(r *repository.EntityRepo, st *storage.LocalStore) *EntityHandler {
	if r == nil || st == nil {
		panic("nil dependency passed to NewEntityHandler")
	}
	return &EntityHandler{Entities: r, Store: st}
}

type entityReq struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	AreaOfActivity string  `json:"area_of_activity"`
	ContactEmail   string  `json:"contact_email"`
	FoundedYear    *int32  `json:"founded_year"`
	MemberCount    uint32  `json:"member_count"`
	Status         *string `json:"status"` // ACTIVE | INACTIVE, update only
}

func (req *entityReq) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	req.AreaOfActivity = strings.TrimSpace(req.AreaOfActivity)
	req.ContactEmail = strings.ToLower(strings.TrimSpace(req.ContactEmail))
	if req.Name == "" {
		return "name required"
	}
	if req.AreaOfActivity == "" {
		return "area_of_activity required"
	}
	if req.ContactEmail == "" || !strings.Contains(req.ContactEmail, "@") {
		return "valid contact_email required"
	}
	if req.FoundedYear != nil && (*req.FoundedYear < 1900 || *req.FoundedYear > int32(time.Now().Year())) {
		return "founded_year out of range"
	}
	return ""
}

// Create registers a new organization owned by the caller.
func (h *EntityHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req entityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	e := model.Entity{
		OwnerID:        uid,
		Name:           req.Name,
		Description:    strings.TrimSpace(req.Description),
		AreaOfActivity: req.AreaOfActivity,
		ContactEmail:   req.ContactEmail,
		FoundedYear:    req.FoundedYear,
		MemberCount:    req.MemberCount,
		Status:         model.EntityStatusActive,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Entities.Create(ctx, &e); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "an entity with this name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, toEntityView(e, h.Store))
}

// Mine lists the organizations owned by the caller, INACTIVE ones included.
func (h *EntityHandler) Mine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Entities.ListByOwner(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	// Owners rarely have more than a handful of organizations, so the
	// text/status narrowing happens in memory on the full list.
	items = service.FilterEntities(items, service.EntityListFilter{
		Text:   c.QueryParam("q"),
		Status: strings.ToUpper(strings.TrimSpace(c.QueryParam("status"))),
	})
	return c.JSON(http.StatusOK, echo.Map{"items": toEntityViews(items, h.Store)})
}

// Update edits an organization's profile.
func (h *EntityHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req entityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	status := model.EntityStatusActive
	if req.Status != nil {
		status = strings.ToUpper(strings.TrimSpace(*req.Status))
		if status != model.EntityStatusActive && status != model.EntityStatusInactive {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
	}

	e := model.Entity{
		ID:             id,
		Name:           req.Name,
		Description:    strings.TrimSpace(req.Description),
		AreaOfActivity: req.AreaOfActivity,
		ContactEmail:   req.ContactEmail,
		FoundedYear:    req.FoundedYear,
		MemberCount:    req.MemberCount,
		Status:         status,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Entities.Update(ctx, &e, uid); err != nil {
		return h.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadLogo accepts a multipart "logo" file, stores it and records its
// path. A previous logo is removed from disk after the swap.
func (h *EntityHandler) UploadLogo(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	fh, err := c.FormFile("logo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "logo file required"})
	}
	if fh.Size > 5<<20 {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "logo exceeds 5 MiB"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot read upload"})
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	prev, err := h.Entities.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "entity not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	objPath, err := h.Store.Save("logos", fh.Filename, src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store upload failed"})
	}
	if err := h.Entities.SetLogoPath(ctx, id, uid, &objPath); err != nil {
		_ = h.Store.Delete(objPath)
		return h.writeError(c, err)
	}
	if prev.LogoPath != nil {
		_ = h.Store.Delete(*prev.LogoPath)
	}
	return c.JSON(http.StatusOK, echo.Map{"logo_url": h.Store.PublicURL(objPath)})
}

// Delete removes an organization. The repository refuses while the
// organization still has scheduled future events.
func (h *EntityHandler) Delete(c echo.Context) error {
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

	if err := h.Entities.Delete(ctx, id, uid); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "entity still has scheduled events"})
		}
		return h.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *EntityHandler) writeError(c echo.Context, err error) error {
	switch err {
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not the owner of this entity"})
	case sql.ErrNoRows:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "entity not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "operation failed"})
	}
}
