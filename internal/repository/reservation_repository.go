package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/model"
)

// ReservationRepo provides persistence for room and auditorium reservation
// requests and their approval lifecycle.  All timestamp fields are stored
// in UTC; the reservation day lives in a DATE column and the requested
// window in TIME columns, which scan back as "HH:MM:SS" strings.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }


const reservationCols = `id, type, requester_id, entity_id, requester_name, requester_phone,
                         event_name, event_description, date, start_time, end_time, room_id,
                         quantity, status, approval_comment, location, approved_at, approver_id,
                         created_at, updated_at`

func scanReservation(scan func(dest ...any) error) (model.Reservation, error) {
	var res model.Reservation
	var entityID, roomID, approverID sql.NullInt64
	var eventName, eventDesc, comment, location sql.NullString
	var approvedAt sql.NullTime
	err := scan(
		&res.ID, &res.Type, &res.RequesterID, &entityID, &res.RequesterName, &res.RequesterPhone,
		&eventName, &eventDesc, &res.Date, &res.StartTime, &res.EndTime, &roomID,
		&res.Quantity, &res.Status, &comment, &location, &approvedAt, &approverID,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return res, err
	}
	if entityID.Valid {
		v := uint64(entityID.Int64)
		res.EntityID = &v
	}
	if roomID.Valid {
		v := uint64(roomID.Int64)
		res.RoomID = &v
	}
	if approverID.Valid {
		v := uint64(approverID.Int64)
		res.ApproverID = &v
	}
	if eventName.Valid {
		v := eventName.String
		res.EventName = &v
	}
	if eventDesc.Valid {
		v := eventDesc.String
		res.EventDescription = &v
	}
	if comment.Valid {
		v := comment.String
		res.ApprovalComment = &v
	}
	if location.Valid {
		v := location.String
		res.Location = &v
	}
	if approvedAt.Valid {
		t := approvedAt.Time
		res.ApprovedAt = &t
	}
	return res, nil
}

// Create inserts a new PENDING reservation and populates its generated ID
// and timestamps.  Status and decision fields are ignored on the way in;
// every reservation starts PENDING with no decision recorded.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations
	           (type, requester_id, entity_id, requester_name, requester_phone,
	            event_name, event_description, date, start_time, end_time, room_id, quantity, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'PENDING')`
	out, err := r.db.ExecContext(ctx, q,
		res.Type, res.RequesterID, res.EntityID, res.RequesterName, res.RequesterPhone,
		res.EventName, res.EventDescription, res.Date.Format("2006-01-02"),
		res.StartTime, res.EndTime, res.RoomID, res.Quantity)
	if err != nil {
		return err
	}
	id, err := out.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	res.Status = model.ReservationStatusPending
	const sel = `SELECT created_at, updated_at FROM reservations WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt, &res.UpdatedAt)
}

// GetByID returns a single reservation or sql.ErrNoRows.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	q := `SELECT ` + reservationCols + ` FROM reservations WHERE id = ?`
	row := r.db.QueryRowContext(ctx, q, id)
	res, err := scanReservation(row.Scan)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ReservationQuery defines filters & pagination for listing reservations.
// RequesterID scopes the list to one user's own requests; leaving it zero
// is the admin-wide view.  There is no ambient mode switch, the scope is
// always an explicit parameter.
type ReservationQuery struct {
	Status      string     // "" = any
	Type        string     // "" = any
	RequesterID uint64     // 0 = any requester (admin scope)
	EntityID    uint64     // 0 = any entity
	Date        *time.Time // nil = any date
	Page        int
	PageSize    int
}

// List returns a page of reservations plus the total match count, oldest
// pending first so approvers work the queue in arrival order.
func (r *ReservationRepo) List(ctx context.Context, q ReservationQuery) ([]model.Reservation, int64, error) {
	where := []string{}
	args := []any{}

	if q.Status != "" {
		where = append(where, "status = ?")
		args = append(args, q.Status)
	}
	if q.Type != "" {
		where = append(where, "type = ?")
		args = append(args, q.Type)
	}
	if q.RequesterID != 0 {
		where = append(where, "requester_id = ?")
		args = append(args, q.RequesterID)
	}
	if q.EntityID != 0 {
		where = append(where, "entity_id = ?")
		args = append(args, q.EntityID)
	}
	if q.Date != nil {
		where = append(where, "date = ?")
		args = append(args, q.Date.Format("2006-01-02"))
	}
	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := `SELECT COUNT(*) FROM reservations WHERE ` + cond
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

	dataSQL := `SELECT ` + reservationCols + `
	            FROM reservations
	            WHERE ` + cond + `
	            ORDER BY date ASC, start_time ASC, id ASC
	            LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Reservation, 0, limit)
	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListApprovedForDate returns the APPROVED reservations that are candidate
// conflicts for one target: same type, same date, excluding the target
// itself.  When roomID is non-nil the candidates are further restricted to
// that room, which is how ROOM-type checks are scoped.  Ordering by start
// time keeps conflict reports deterministic.
func (r *ReservationRepo) ListApprovedForDate(ctx context.Context, typ string, date time.Time, roomID *uint64, excludeID uint64) ([]model.Reservation, error) {
	where := []string{"status = 'APPROVED'", "type = ?", "date = ?", "id <> ?"}
	args := []any{typ, date.Format("2006-01-02"), excludeID}
	if roomID != nil {
		where = append(where, "room_id = ?")
		args = append(args, *roomID)
	}
	q := `SELECT ` + reservationCols + `
	      FROM reservations
	      WHERE ` + strings.Join(where, " AND ") + `
	      ORDER BY start_time ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Approve records an APPROVED decision on a PENDING reservation in a
// single UPDATE, so a failure leaves no partial state.  The guard on
// status makes concurrent decisions on the same reservation lose cleanly:
// the second writer sees zero affected rows and gets ErrNotPending (or
// sql.ErrNoRows when the id never existed).
func (r *ReservationRepo) Approve(ctx context.Context, id uint64, comment, location *string, roomID *uint64, approverID uint64) error {
	const q = `UPDATE reservations
	           SET status = 'APPROVED', approval_comment = ?, location = ?, room_id = ?,
	               approved_at = NOW(), approver_id = ?
	           WHERE id = ? AND status = 'PENDING'`
	out, err := r.db.ExecContext(ctx, q, comment, location, roomID, approverID, id)
	if err != nil {
		return err
	}
	return r.decisionOutcome(ctx, out, id)
}

// Reject records a REJECTED decision with its mandatory comment.  The
// same PENDING guard as Approve applies.
func (r *ReservationRepo) Reject(ctx context.Context, id uint64, comment string, approverID uint64) error {
	const q = `UPDATE reservations
	           SET status = 'REJECTED', approval_comment = ?, approved_at = NOW(), approver_id = ?
	           WHERE id = ? AND status = 'PENDING'`
	out, err := r.db.ExecContext(ctx, q, comment, approverID, id)
	if err != nil {
		return err
	}
	return r.decisionOutcome(ctx, out, id)
}

// Cancel lets the requester withdraw a reservation that is still PENDING.
// It returns sql.ErrNoRows for unknown ids, ErrForbidden when the caller
// is not the requester and ErrNotPending when a decision already landed.
func (r *ReservationRepo) Cancel(ctx context.Context, id, requesterID uint64) error {
	const q = `UPDATE reservations
	           SET status = 'CANCELLED'
	           WHERE id = ? AND requester_id = ? AND status = 'PENDING'`
	out, err := r.db.ExecContext(ctx, q, id, requesterID)
	if err != nil {
		return err
	}
	n, err := out.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var actualRequester uint64
	var status string
	err = r.db.QueryRowContext(ctx, `SELECT requester_id, status FROM reservations WHERE id = ?`, id).
		Scan(&actualRequester, &status)
	if err != nil {
		return err // includes sql.ErrNoRows for unknown ids
	}
	if actualRequester != requesterID {
		return ErrForbidden
	}
	return ErrNotPending
}

// RevertApprovedWithoutRoom sets APPROVED ROOM reservations with no room
// reference back to PENDING and clears their decision fields.  Such rows
// cannot be produced by this service, which requires a room before
// approval, but can exist in data imported from the previous system.
// Returns the number of repaired rows.
func (r *ReservationRepo) RevertApprovedWithoutRoom(ctx context.Context) (int64, error) {
	const q = `UPDATE reservations
	           SET status = 'PENDING', approval_comment = NULL, location = NULL,
	               approved_at = NULL, approver_id = NULL
	           WHERE status = 'APPROVED' AND type = 'ROOM' AND room_id IS NULL`
	out, err := r.db.ExecContext(ctx, q)
	if err != nil {
		return 0, err
	}
	return out.RowsAffected()
}

// StatusCounts returns how many reservations exist per status, feeding the
// dashboard charts.
func (r *ReservationRepo) StatusCounts(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM reservations GROUP BY status`)
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

// TypeCounts returns how many reservations exist per type.
func (r *ReservationRepo) TypeCounts(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT type, COUNT(*) FROM reservations GROUP BY type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]int64)
	for rows.Next() {
		var typ string
		var n int64
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, err
		}
		out[typ] = n
	}
	return out, rows.Err()
}

// decisionOutcome distinguishes "row gone" from "row no longer pending"
// after a guarded decision UPDATE affected zero rows.
func (r *ReservationRepo) decisionOutcome(ctx context.Context, out sql.Result, id uint64) error {
	n, err := out.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var status string
	err = r.db.QueryRowContext(ctx, `SELECT status FROM reservations WHERE id = ?`, id).Scan(&status)
	if err != nil {
		return err // includes sql.ErrNoRows for unknown ids
	}
	return ErrNotPending
}
