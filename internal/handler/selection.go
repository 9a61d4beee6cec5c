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

// SelectionHandler manages an organization's recruitment pipeline:
// ordered phases and the candidates moving through them. All operations
// act on behalf of the organization's owner.
type SelectionHandler struct {
	Selections *repository.SelectionRepo
	Interests  *repository.InterestRepo
}

func NewSelectionHandler(s *repository.SelectionRepo, i *repository.InterestRepo) *SelectionHandler {
	if s == nil || i == nil {
		panic("nil repository passed to NewSelectionHandler")
	}
	return &SelectionHandler{Selections: s, Interests: i}
}

type phaseReq struct {
	Name string `json:"name"`
}
type candidateReq struct {
	PhaseID    uint64  `json:"phase_id"`
	InterestID *uint64 `json:"interest_id"` // pull name/email from a demonstration
	Name       string  `json:"name"`
	Email      string  `json:"email"`
}
type candidateMoveReq struct {
	PhaseID uint64 `json:"phase_id"`
}
type candidateUpdateReq struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// CreatePhase appends a phase at the end of the entity's pipeline.
func (h *SelectionHandler) CreatePhase(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	entityID := pathID(c, "id")
	if entityID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req phaseReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := model.SelectionPhase{EntityID: entityID, Name: strings.TrimSpace(req.Name)}
	if err := h.Selections.CreatePhase(ctx, &p, uid); err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toPhaseView(p))
}

// ListPhases returns the entity's phases in pipeline order.
func (h *SelectionHandler) ListPhases(c echo.Context) error {
	entityID := pathID(c, "id")
	if entityID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	phases, err := h.Selections.ListPhases(ctx, entityID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]phaseView, 0, len(phases))
	for _, p := range phases {
		out = append(out, toPhaseView(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// RenamePhase renames a phase without changing its position.
func (h *SelectionHandler) RenamePhase(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	phaseID := pathID(c, "id")
	if phaseID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req phaseReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Selections.RenamePhase(ctx, phaseID, uid, strings.TrimSpace(req.Name)); err != nil {
		return h.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeletePhase removes an empty phase; phases still holding candidates
// return 409.
func (h *SelectionHandler) DeletePhase(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	phaseID := pathID(c, "id")
	if phaseID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Selections.DeletePhase(ctx, phaseID, uid); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "phase still has candidates"})
		}
		return h.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateCandidate adds a candidate to a phase. With interest_id set, the
// candidate's name and email are copied from the approved demonstration.
func (h *SelectionHandler) CreateCandidate(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	entityID := pathID(c, "id")
	if entityID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req candidateReq
	if err := c.Bind(&req); err != nil || req.PhaseID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phase_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if req.InterestID != nil {
		d, err := h.Interests.GetByID(ctx, *req.InterestID)
		if err != nil {
			if err == sql.ErrNoRows {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "demonstration not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		if d.EntityID != entityID {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "demonstration belongs to another entity"})
		}
		if d.Status != model.InterestStatusApproved {
			return c.JSON(http.StatusConflict, echo.Map{"error": "demonstration is not approved"})
		}
		name, email = d.StudentName, d.Email
	}
	if name == "" || email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and email required"})
	}

	sc := model.SelectionCandidate{
		EntityID:   entityID,
		PhaseID:    req.PhaseID,
		InterestID: req.InterestID,
		Name:       name,
		Email:      email,
		Status:     model.CandidateStatusApplied,
	}
	if err := h.Selections.CreateCandidate(ctx, &sc, uid); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "candidate already in the process"})
		}
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toCandidateView(sc))
}

// ListCandidates lists every candidate of the entity's process, ordered
// by phase position.
func (h *SelectionHandler) ListCandidates(c echo.Context) error {
	entityID := pathID(c, "id")
	if entityID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Selections.ListCandidates(ctx, entityID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]candidateView, 0, len(items))
	for _, sc := range items {
		out = append(out, toCandidateView(sc))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// MoveCandidate moves a candidate to another phase of the same entity.
func (h *SelectionHandler) MoveCandidate(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	candidateID := pathID(c, "id")
	if candidateID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req candidateMoveReq
	if err := c.Bind(&req); err != nil || req.PhaseID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phase_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Selections.MoveCandidate(ctx, candidateID, req.PhaseID, uid); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "phase belongs to another entity"})
		}
		return h.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateCandidate sets a candidate's status and notes.
func (h *SelectionHandler) UpdateCandidate(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	candidateID := pathID(c, "id")
	if candidateID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req candidateUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	switch status {
	case model.CandidateStatusApplied, model.CandidateStatusInReview,
		model.CandidateStatusInvited, model.CandidateStatusAccepted,
		model.CandidateStatusRejected:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Selections.UpdateCandidate(ctx, candidateID, uid, status, req.Notes); err != nil {
		return h.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteCandidate drops a candidate from the process.
func (h *SelectionHandler) DeleteCandidate(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	candidateID := pathID(c, "id")
	if candidateID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Selections.DeleteCandidate(ctx, candidateID, uid); err != nil {
		return h.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SelectionHandler) writeError(c echo.Context, err error) error {
	switch err {
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not the owner of this entity"})
	case sql.ErrNoRows:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "operation failed"})
	}
}
