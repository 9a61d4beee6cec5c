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

// InterestHandler covers interest demonstrations: students express
// interest in joining an organization, the organization's owner reviews
// and approves or rejects.
type InterestHandler struct {
	Interests *repository.InterestRepo
	Entities  *repository.EntityRepo
}

func NewInterestHandler(i *repository.InterestRepo, e *repository.EntityRepo) *InterestHandler {
	if i == nil || e == nil {
		panic("nil repository passed to NewInterestHandler")
	}
	return &InterestHandler{Interests: i, Entities: e}
}

type interestReq struct {
	EntityID    uint64  `json:"entity_id"`
	StudentName string  `json:"student_name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Message     *string `json:"message"`
}
type interestStatusReq struct {
	Status string `json:"status"` // APPROVED | REJECTED
}

// Demonstrate records a student's interest in an organization. One
// demonstration per student per organization; duplicates return 409.
func (h *InterestHandler) Demonstrate(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req interestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.StudentName = strings.TrimSpace(req.StudentName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	if req.EntityID == 0 || req.StudentName == "" || req.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "entity_id, student_name and phone required"})
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "valid email required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ent, err := h.Entities.GetByID(ctx, req.EntityID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "entity not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if ent.Status != model.EntityStatusActive {
		return c.JSON(http.StatusConflict, echo.Map{"error": "entity is not accepting interest"})
	}

	d := model.InterestDemonstration{
		EntityID:    req.EntityID,
		StudentID:   uid,
		StudentName: req.StudentName,
		Email:       req.Email,
		Phone:       req.Phone,
		Message:     req.Message,
		Status:      model.InterestStatusPending,
	}
	if err := h.Interests.Create(ctx, &d); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "interest already demonstrated for this entity"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, toInterestView(d))
}

// Mine lists the caller's own demonstrations with their review status.
func (h *InterestHandler) Mine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Interests.ListByStudent(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]interestView, 0, len(items))
	for _, d := range items {
		out = append(out, toInterestView(d))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListForEntity lists demonstrations for one of the caller's
// organizations, optionally filtered by ?status=.
func (h *InterestHandler) ListForEntity(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	entityID := pathID(c, "id")
	if entityID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Interests.ListByEntityForOwner(ctx, entityID, uid, status)
	if err != nil {
		if err == repository.ErrForbidden {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not the owner of this entity"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]interestView, 0, len(items))
	for _, d := range items {
		out = append(out, toInterestView(d))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Review approves or rejects one demonstration on behalf of the
// organization's owner.
func (h *InterestHandler) Review(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req interestStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status != model.InterestStatusApproved && status != model.InterestStatusRejected {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be APPROVED or REJECTED"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Interests.UpdateStatus(ctx, id, uid, status); err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not the owner of this entity"})
	case sql.ErrNoRows:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "demonstration not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
}
