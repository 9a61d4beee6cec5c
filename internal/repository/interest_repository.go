package repository

import (
	"context"
	"database/sql"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/model"
)

// InterestRepo persists demonstrations of interest filed by students
// against an entity's selection process.
type InterestRepo struct {
	db *sql.DB
}

// NewInterestRepo returns a new InterestRepo bound to the given database.
func NewInterestRepo(db *sql.DB) *InterestRepo { return &InterestRepo{db: db} }

const interestCols = `id, entity_id, student_id, student_name, email, phone, message, status,
                      created_at, updated_at`

func scanInterest(scan func(dest ...any) error) (model.InterestDemonstration, error) {
	var d model.InterestDemonstration
	var message sql.NullString
	err := scan(
		&d.ID, &d.EntityID, &d.StudentID, &d.StudentName, &d.Email, &d.Phone, &message, &d.Status,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return d, err
	}
	if message.Valid {
		m := message.String
		d.Message = &m
	}
	return d, nil
}

// Create inserts a new PENDING demonstration.  A student may only have one
// open demonstration per entity; re-submissions surface as ErrConflict via
// the unique key on (entity_id, student_id).
func (r *InterestRepo) Create(ctx context.Context, d *model.InterestDemonstration) error {
	const q = `INSERT INTO interest_demonstrations
	           (entity_id, student_id, student_name, email, phone, message, status)
	           VALUES (?, ?, ?, ?, ?, ?, 'PENDING')`
	out, err := r.db.ExecContext(ctx, q,
		d.EntityID, d.StudentID, d.StudentName, d.Email, d.Phone, d.Message)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	id, err := out.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	d.Status = model.InterestStatusPending
	const sel = `SELECT created_at, updated_at FROM interest_demonstrations WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, d.ID).Scan(&d.CreatedAt, &d.UpdatedAt)
}

// GetByID returns one demonstration or sql.ErrNoRows.
func (r *InterestRepo) GetByID(ctx context.Context, id uint64) (*model.InterestDemonstration, error) {
	q := `SELECT ` + interestCols + ` FROM interest_demonstrations WHERE id = ?`
	row := r.db.QueryRowContext(ctx, q, id)
	d, err := scanInterest(row.Scan)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByEntityForOwner returns demonstrations for an entity after checking
// that the caller owns it.  status "" lists every demonstration.
func (r *InterestRepo) ListByEntityForOwner(ctx context.Context, entityID, ownerID uint64, status string) ([]model.InterestDemonstration, error) {
	var actual uint64
	if err := r.db.QueryRowContext(ctx, `SELECT owner_id FROM entities WHERE id = ?`, entityID).Scan(&actual); err != nil {
		return nil, err
	}
	if actual != ownerID {
		return nil, ErrForbidden
	}
	q := `SELECT ` + interestCols + ` FROM interest_demonstrations WHERE entity_id = ?`
	args := []any{entityID}
	if status != "" {
		q += ` AND status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.InterestDemonstration, 0)
	for rows.Next() {
		d, err := scanInterest(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByStudent returns everything one student has filed, newest first.
func (r *InterestRepo) ListByStudent(ctx context.Context, studentID uint64) ([]model.InterestDemonstration, error) {
	q := `SELECT ` + interestCols + ` FROM interest_demonstrations WHERE student_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.InterestDemonstration, 0)
	for rows.Next() {
		d, err := scanInterest(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus sets a demonstration's status on behalf of the entity
// owner.  It returns sql.ErrNoRows for unknown demonstrations and
// ErrForbidden when the entity belongs to someone else.
func (r *InterestRepo) UpdateStatus(ctx context.Context, id, ownerID uint64, status string) error {
	const check = `SELECT en.owner_id
	               FROM interest_demonstrations d
	               JOIN entities en ON en.id = d.entity_id
	               WHERE d.id = ?`
	var actual uint64
	if err := r.db.QueryRowContext(ctx, check, id).Scan(&actual); err != nil {
		return err
	}
	if actual != ownerID {
		return ErrForbidden
	}
	_, err := r.db.ExecContext(ctx, `UPDATE interest_demonstrations SET status = ? WHERE id = ?`, status, id)
	return err
}

// CountByEntity reports the number of demonstrations per status for one
// entity, for the entity dashboard.
func (r *InterestRepo) CountByEntity(ctx context.Context, entityID uint64) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM interest_demonstrations WHERE entity_id = ? GROUP BY status`, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	return out, rows.Err()
}

// CountAll reports demonstration totals per status across every entity,
// for the admin dashboard.
func (r *InterestRepo) CountAll(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM interest_demonstrations GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	return out, rows.Err()
}
