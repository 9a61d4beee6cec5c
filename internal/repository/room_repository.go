package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/model"
)

// RoomRepo provides access to the static room inventory.  Rooms are
// reference data: admins seed them once and approvers pick from them when
// granting ROOM reservations.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }


// Create inserts a room and populates the generated ID.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	const q = `INSERT INTO rooms (name, building, floor, capacity, is_active) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, room.Name, room.Building, room.Floor, room.Capacity, room.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = uint64(id)
	return nil
}

// GetByID returns a single room.  sql.ErrNoRows is returned when the room
// does not exist.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, name, building, floor, capacity, is_active FROM rooms WHERE id = ?`
	var room model.Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&room.ID, &room.Name, &room.Building, &room.Floor, &room.Capacity, &room.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// List returns rooms ordered by building and name.  When activeOnly is
// true, inactive rooms are excluded; minCapacity > 0 filters out rooms too
// small for the requested party.
func (r *RoomRepo) List(ctx context.Context, activeOnly bool, minCapacity uint32) ([]model.Room, error) {
	where := []string{}
	args := []any{}
	if activeOnly {
		where = append(where, "is_active = 1")
	}
	if minCapacity > 0 {
		where = append(where, "capacity >= ?")
		args = append(args, minCapacity)
	}
	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}
	q := `SELECT id, name, building, floor, capacity, is_active
	      FROM rooms
	      WHERE ` + cond + `
	      ORDER BY building, name`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		var room model.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Building, &room.Floor, &room.Capacity, &room.IsActive); err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SetActive flips a room's availability flag.
func (r *RoomRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE rooms SET is_active = ? WHERE id = ?`, active, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
