package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/model"
)

// EntityRepo provides CRUD operations for student organizations.  Mutating
// operations validate ownership: an entity may only be changed by the user
// recorded as its owner.
type EntityRepo struct {
	db *sql.DB
}

// NewEntityRepo returns a new EntityRepo bound to the given database.
func NewEntityRepo(db *sql.DB) *EntityRepo { return &EntityRepo{db: db} }


// Create inserts a new entity and populates the generated ID plus the
// database-assigned timestamps.
func (r *EntityRepo) Create(ctx context.Context, e *model.Entity) error {
	const q = `INSERT INTO entities
	           (owner_id, name, description, area_of_activity, contact_email, founded_year, member_count, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		e.OwnerID, e.Name, e.Description, e.AreaOfActivity, e.ContactEmail, e.FoundedYear, e.MemberCount, e.Status)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	// Query back the row to populate timestamps and defaults.
	const sel = `SELECT created_at, updated_at FROM entities WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, e.ID).Scan(&e.CreatedAt, &e.UpdatedAt)
}

// scanEntity reads one entity row; the column order must match listCols.
const entityCols = `id, owner_id, name, description, area_of_activity, contact_email,
                    logo_path, founded_year, member_count, status, created_at, updated_at`

func scanEntity(scan func(dest ...any) error) (model.Entity, error) {
	var e model.Entity
	var logo sql.NullString
	var year sql.NullInt32
	err := scan(
		&e.ID, &e.OwnerID, &e.Name, &e.Description, &e.AreaOfActivity, &e.ContactEmail,
		&logo, &year, &e.MemberCount, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return e, err
	}
	if logo.Valid {
		l := logo.String
		e.LogoPath = &l
	}
	if year.Valid {
		y := year.Int32
		e.FoundedYear = &y
	}
	return e, nil
}

// GetByID returns a single entity or sql.ErrNoRows.
func (r *EntityRepo) GetByID(ctx context.Context, id uint64) (*model.Entity, error) {
	q := `SELECT ` + entityCols + ` FROM entities WHERE id = ?`
	row := r.db.QueryRowContext(ctx, q, id)
	e, err := scanEntity(row.Scan)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// EntitySearchQuery defines filters & pagination for browsing entities.
// All filters are optional; empty strings mean "no constraint".
type EntitySearchQuery struct {
	Text     string // matched against name, description and area
	Area     string // exact area_of_activity
	Status   string // ACTIVE / INACTIVE ("" = ACTIVE only on public routes, set by caller)
	Page     int
	PageSize int
}

// Search returns a page of entities plus the total match count.  The text
// filter is a case-insensitive LIKE across name, description and area of
// activity, mirroring the portal's search box.
func (r *EntityRepo) Search(ctx context.Context, q EntitySearchQuery) ([]model.Entity, int64, error) {
	where := []string{}
	args := []any{}

	if q.Text != "" {
		needle := "%" + strings.ToLower(q.Text) + "%"
		where = append(where, "(LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(area_of_activity) LIKE ?)")
		args = append(args, needle, needle, needle)
	}
	if q.Area != "" {
		where = append(where, "area_of_activity = ?")
		args = append(args, q.Area)
	}
	if q.Status != "" {
		where = append(where, "status = ?")
		args = append(args, q.Status)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := `SELECT COUNT(*) FROM entities WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if q.PageSize <= 0 {
		q.PageSize = 20
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT ` + entityCols + `
	            FROM entities
	            WHERE ` + cond + `
	            ORDER BY name ASC
	            LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Entity, 0, limit)
	for rows.Next() {
		e, err := scanEntity(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListByOwner returns all entities administered by the given user.
func (r *EntityRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Entity, error) {
	q := `SELECT ` + entityCols + ` FROM entities WHERE owner_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Entity, 0)
	for rows.Next() {
		e, err := scanEntity(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByStatus returns entity totals per status for the admin dashboard.
func (r *EntityRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM entities GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int64{}
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

// Update rewrites the mutable profile fields of an entity owned by
// ownerID.  It returns sql.ErrNoRows when the entity does not exist and
// ErrForbidden when it belongs to a different owner.
func (r *EntityRepo) Update(ctx context.Context, e *model.Entity, ownerID uint64) error {
	if err := r.checkOwner(ctx, e.ID, ownerID); err != nil {
		return err
	}
	const q = `UPDATE entities
	           SET name = ?, description = ?, area_of_activity = ?, contact_email = ?,
	               founded_year = ?, member_count = ?, status = ?
	           WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q,
		e.Name, e.Description, e.AreaOfActivity, e.ContactEmail,
		e.FoundedYear, e.MemberCount, e.Status, e.ID)
	return err
}

// SetLogoPath stores the object-store path of the entity's logo after an
// upload, or clears it when path is nil.
func (r *EntityRepo) SetLogoPath(ctx context.Context, entityID, ownerID uint64, path *string) error {
	if err := r.checkOwner(ctx, entityID, ownerID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `UPDATE entities SET logo_path = ? WHERE id = ?`, path, entityID)
	return err
}

// Delete removes an entity owned by ownerID.  Deletion is refused with
// ErrConflict while the entity still has scheduled events, so history
// behind public pages cannot silently disappear.
func (r *EntityRepo) Delete(ctx context.Context, entityID, ownerID uint64) error {
	if err := r.checkOwner(ctx, entityID, ownerID); err != nil {
		return err
	}
	var n int64
	const cnt = `SELECT COUNT(*) FROM events WHERE entity_id = ? AND status = 'SCHEDULED' AND ends_at >= NOW()`
	if err := r.db.QueryRowContext(ctx, cnt, entityID).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM entities WHERE id = ?`, entityID)
	return err
}

// checkOwner verifies existence and ownership of an entity.
func (r *EntityRepo) checkOwner(ctx context.Context, entityID, ownerID uint64) error {
	var actual uint64
	err := r.db.QueryRowContext(ctx, `SELECT owner_id FROM entities WHERE id = ?`, entityID).Scan(&actual)
	if err != nil {
		return err
	}
	if actual != ownerID {
		return ErrForbidden
	}
	return nil
}
