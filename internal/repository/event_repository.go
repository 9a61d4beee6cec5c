package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/model"
)

// EventRepo provides CRUD operations for events organized by entities.
// Ownership checks run through the owning entity: only the user that
// administers the entity may change its events.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

const eventCols = `id, entity_id, name, description, location, starts_at, ends_at,
                   capacity, photo_path, status, created_at, updated_at`

func scanEvent(scan func(dest ...any) error) (model.Event, error) {
	var e model.Event
	var capacity sql.NullInt32
	var photo sql.NullString
	err := scan(
		&e.ID, &e.EntityID, &e.Name, &e.Description, &e.Location, &e.StartsAt, &e.EndsAt,
		&capacity, &photo, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return e, err
	}
	if capacity.Valid {
		c := uint32(capacity.Int32)
		e.Capacity = &c
	}
	if photo.Valid {
		p := photo.String
		e.PhotoPath = &p
	}
	return e, nil
}

// Create inserts a new event for an entity owned by ownerID.  It returns
// sql.ErrNoRows when the entity does not exist and ErrForbidden when the
// entity belongs to someone else.
func (r *EventRepo) Create(ctx context.Context, ev *model.Event, ownerID uint64) error {
	if err := r.checkEntityOwner(ctx, ev.EntityID, ownerID); err != nil {
		return err
	}
	const q = `INSERT INTO events
	           (entity_id, name, description, location, starts_at, ends_at, capacity, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		ev.EntityID, ev.Name, ev.Description, ev.Location, ev.StartsAt, ev.EndsAt, ev.Capacity, ev.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM events WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, ev.ID).Scan(&ev.CreatedAt, &ev.UpdatedAt)
}

// GetByID returns a single event or sql.ErrNoRows.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	q := `SELECT ` + eventCols + ` FROM events WHERE id = ?`
	row := r.db.QueryRowContext(ctx, q, id)
	e, err := scanEvent(row.Scan)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// EventSearchQuery defines filters & pagination for browsing events.
type EventSearchQuery struct {
	Text       string // matched against name, description and location
	EntityID   uint64 // 0 = any organizer
	TimeFilter string // "upcoming" (default), "past", "any"
	Page       int
	PageSize   int
}

// Search returns a page of events plus the total match count.  The default
// time filter hides events that already ended, matching the public agenda.
func (r *EventRepo) Search(ctx context.Context, q EventSearchQuery) ([]model.Event, int64, error) {
	where := []string{"status = 'SCHEDULED'"}
	args := []any{}

	switch strings.ToLower(q.TimeFilter) {
	case "any":
	case "past":
		where = append(where, "ends_at < NOW()")
	default:
		where = append(where, "ends_at >= NOW()")
	}
	if q.Text != "" {
		needle := "%" + strings.ToLower(q.Text) + "%"
		where = append(where, "(LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?)")
		args = append(args, needle, needle, needle)
	}
	if q.EntityID != 0 {
		where = append(where, "entity_id = ?")
		args = append(args, q.EntityID)
	}
	cond := strings.Join(where, " AND ")

	var total int64
	countSQL := `SELECT COUNT(*) FROM events WHERE ` + cond
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

	dataSQL := `SELECT ` + eventCols + `
	            FROM events
	            WHERE ` + cond + `
	            ORDER BY starts_at ASC
	            LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Event, 0, limit)
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
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

// ListByEntity returns all events of one entity, newest first.
func (r *EventRepo) ListByEntity(ctx context.Context, entityID uint64) ([]model.Event, error) {
	q := `SELECT ` + eventCols + ` FROM events WHERE entity_id = ? ORDER BY starts_at DESC`
	rows, err := r.db.QueryContext(ctx, q, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
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

// CountUpcoming returns how many scheduled events have not started yet.
func (r *EventRepo) CountUpcoming(ctx context.Context) (int64, error) {
	const q = `SELECT COUNT(*) FROM events WHERE status = 'SCHEDULED' AND starts_at > NOW()`
	var n int64
	err := r.db.QueryRowContext(ctx, q).Scan(&n)
	return n, err
}

// Update rewrites the mutable fields of an event whose entity is owned by
// ownerID.
func (r *EventRepo) Update(ctx context.Context, ev *model.Event, ownerID uint64) error {
	if err := r.checkEventOwner(ctx, ev.ID, ownerID); err != nil {
		return err
	}
	const q = `UPDATE events
	           SET name = ?, description = ?, location = ?, starts_at = ?, ends_at = ?, capacity = ?, status = ?
	           WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q,
		ev.Name, ev.Description, ev.Location, ev.StartsAt, ev.EndsAt, ev.Capacity, ev.Status, ev.ID)
	return err
}

// SetPhotoPath stores or clears the object-store path of the event banner.
func (r *EventRepo) SetPhotoPath(ctx context.Context, eventID, ownerID uint64, path *string) error {
	if err := r.checkEventOwner(ctx, eventID, ownerID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `UPDATE events SET photo_path = ? WHERE id = ?`, path, eventID)
	return err
}

// Delete removes an event whose entity is owned by ownerID.
func (r *EventRepo) Delete(ctx context.Context, eventID, ownerID uint64) error {
	if err := r.checkEventOwner(ctx, eventID, ownerID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, eventID)
	return err
}

// checkEntityOwner verifies that the entity exists and is owned by ownerID.
func (r *EventRepo) checkEntityOwner(ctx context.Context, entityID, ownerID uint64) error {
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

// checkEventOwner verifies existence of the event and ownership of its
// entity in a single query.
func (r *EventRepo) checkEventOwner(ctx context.Context, eventID, ownerID uint64) error {
	const q = `SELECT en.owner_id
	           FROM events ev
	           JOIN entities en ON en.id = ev.entity_id
	           WHERE ev.id = ?`
	var actual uint64
	err := r.db.QueryRowContext(ctx, q, eventID).Scan(&actual)
	if err != nil {
		return err
	}
	if actual != ownerID {
		return ErrForbidden
	}
	return nil
}
