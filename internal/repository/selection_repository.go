package repository

import (
	"context"
	"database/sql"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/model"
)

// SelectionRepo persists the phases and candidates of an entity's
// recruitment (selection) process.  Every mutating call validates that the
// caller owns the entity the phase or candidate belongs to.
type SelectionRepo struct {
	db *sql.DB
}

// NewSelectionRepo returns a new SelectionRepo bound to the database.
func NewSelectionRepo(db *sql.DB) *SelectionRepo { return &SelectionRepo{db: db} }

// ---- phases ----

// CreatePhase appends a phase to the entity's process.  Position is
// assigned as max(position)+1 so new phases land at the end of the board.
func (r *SelectionRepo) CreatePhase(ctx context.Context, p *model.SelectionPhase, ownerID uint64) error {
	if err := r.checkEntityOwner(ctx, p.EntityID, ownerID); err != nil {
		return err
	}
	const q = `INSERT INTO selection_phases (entity_id, name, position)
	           SELECT ?, ?, COALESCE(MAX(position), 0) + 1
	           FROM selection_phases WHERE entity_id = ?`
	out, err := r.db.ExecContext(ctx, q, p.EntityID, p.Name, p.EntityID)
	if err != nil {
		return err
	}
	id, err := out.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	const sel = `SELECT position, created_at FROM selection_phases WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, p.ID).Scan(&p.Position, &p.CreatedAt)
}

// ListPhases returns an entity's phases in board order.
func (r *SelectionRepo) ListPhases(ctx context.Context, entityID uint64) ([]model.SelectionPhase, error) {
	const q = `SELECT id, entity_id, name, position, created_at
	           FROM selection_phases WHERE entity_id = ? ORDER BY position ASC`
	rows, err := r.db.QueryContext(ctx, q, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.SelectionPhase, 0)
	for rows.Next() {
		var p model.SelectionPhase
		if err := rows.Scan(&p.ID, &p.EntityID, &p.Name, &p.Position, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// RenamePhase changes a phase's display name.
func (r *SelectionRepo) RenamePhase(ctx context.Context, phaseID, ownerID uint64, name string) error {
	if err := r.checkPhaseOwner(ctx, phaseID, ownerID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `UPDATE selection_phases SET name = ? WHERE id = ?`, name, phaseID)
	return err
}

// DeletePhase removes an empty phase.  Phases that still hold candidates
// are protected with ErrConflict; move the candidates first.
func (r *SelectionRepo) DeletePhase(ctx context.Context, phaseID, ownerID uint64) error {
	if err := r.checkPhaseOwner(ctx, phaseID, ownerID); err != nil {
		return err
	}
	var n int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM selection_candidates WHERE phase_id = ?`, phaseID).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM selection_phases WHERE id = ?`, phaseID)
	return err
}

// ---- candidates ----

const candidateCols = `id, entity_id, phase_id, interest_id, name, email, status, notes,
                       created_at, updated_at`

func scanCandidate(scan func(dest ...any) error) (model.SelectionCandidate, error) {
	var c model.SelectionCandidate
	var interestID sql.NullInt64
	var notes sql.NullString
	err := scan(
		&c.ID, &c.EntityID, &c.PhaseID, &interestID, &c.Name, &c.Email, &c.Status, &notes,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return c, err
	}
	if interestID.Valid {
		v := uint64(interestID.Int64)
		c.InterestID = &v
	}
	if notes.Valid {
		n := notes.String
		c.Notes = &n
	}
	return c, nil
}

// CreateCandidate adds a candidate to a phase of the owner's entity.  The
// phase must belong to the candidate's entity.
func (r *SelectionRepo) CreateCandidate(ctx context.Context, c *model.SelectionCandidate, ownerID uint64) error {
	if err := r.checkPhaseOwner(ctx, c.PhaseID, ownerID); err != nil {
		return err
	}
	var phaseEntity uint64
	if err := r.db.QueryRowContext(ctx,
		`SELECT entity_id FROM selection_phases WHERE id = ?`, c.PhaseID).Scan(&phaseEntity); err != nil {
		return err
	}
	if phaseEntity != c.EntityID {
		return ErrConflict
	}
	const q = `INSERT INTO selection_candidates (entity_id, phase_id, interest_id, name, email, status, notes)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	if c.Status == "" {
		c.Status = model.CandidateStatusApplied
	}
	out, err := r.db.ExecContext(ctx, q, c.EntityID, c.PhaseID, c.InterestID, c.Name, c.Email, c.Status, c.Notes)
	if err != nil {
		return err
	}
	id, err := out.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM selection_candidates WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, c.ID).Scan(&c.CreatedAt, &c.UpdatedAt)
}

// ListCandidates returns every candidate of an entity grouped in board
// order (phase position, then creation time).
func (r *SelectionRepo) ListCandidates(ctx context.Context, entityID uint64) ([]model.SelectionCandidate, error) {
	q := `SELECT c.id, c.entity_id, c.phase_id, c.interest_id, c.name, c.email, c.status, c.notes,
	             c.created_at, c.updated_at
	      FROM selection_candidates c
	      JOIN selection_phases p ON p.id = c.phase_id
	      WHERE c.entity_id = ?
	      ORDER BY p.position ASC, c.created_at ASC`
	rows, err := r.db.QueryContext(ctx, q, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.SelectionCandidate, 0)
	for rows.Next() {
		c, err := scanCandidate(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// MoveCandidate shifts a candidate to another phase of the same entity.
// Moving across entities is refused with ErrConflict.
func (r *SelectionRepo) MoveCandidate(ctx context.Context, candidateID, toPhaseID, ownerID uint64) error {
	if err := r.checkCandidateOwner(ctx, candidateID, ownerID); err != nil {
		return err
	}
	const q = `UPDATE selection_candidates c
	           JOIN selection_phases p ON p.id = ?
	           SET c.phase_id = p.id
	           WHERE c.id = ? AND p.entity_id = c.entity_id`
	out, err := r.db.ExecContext(ctx, q, toPhaseID, candidateID)
	if err != nil {
		return err
	}
	n, err := out.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// UpdateCandidate sets the status and notes of a candidate.
func (r *SelectionRepo) UpdateCandidate(ctx context.Context, candidateID, ownerID uint64, status string, notes *string) error {
	if err := r.checkCandidateOwner(ctx, candidateID, ownerID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE selection_candidates SET status = ?, notes = ? WHERE id = ?`, status, notes, candidateID)
	return err
}

// DeleteCandidate removes a candidate from the board.
func (r *SelectionRepo) DeleteCandidate(ctx context.Context, candidateID, ownerID uint64) error {
	if err := r.checkCandidateOwner(ctx, candidateID, ownerID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM selection_candidates WHERE id = ?`, candidateID)
	return err
}

// ---- ownership checks ----

func (r *SelectionRepo) checkEntityOwner(ctx context.Context, entityID, ownerID uint64) error {
	var actual uint64
	if err := r.db.QueryRowContext(ctx, `SELECT owner_id FROM entities WHERE id = ?`, entityID).Scan(&actual); err != nil {
		return err
	}
	if actual != ownerID {
		return ErrForbidden
	}
	return nil
}

func (r *SelectionRepo) checkPhaseOwner(ctx context.Context, phaseID, ownerID uint64) error {
	const q = `SELECT en.owner_id
	           FROM selection_phases p
	           JOIN entities en ON en.id = p.entity_id
	           WHERE p.id = ?`
	var actual uint64
	if err := r.db.QueryRowContext(ctx, q, phaseID).Scan(&actual); err != nil {
		return err
	}
	if actual != ownerID {
		return ErrForbidden
	}
	return nil
}

func (r *SelectionRepo) checkCandidateOwner(ctx context.Context, candidateID, ownerID uint64) error {
	const q = `SELECT en.owner_id
	           FROM selection_candidates c
	           JOIN entities en ON en.id = c.entity_id
	           WHERE c.id = ?`
	var actual uint64
	if err := r.db.QueryRowContext(ctx, q, candidateID).Scan(&actual); err != nil {
		return err
	}
	if actual != ownerID {
		return ErrForbidden
	}
	return nil
}
