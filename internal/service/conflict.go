// Package service holds the portal's business logic that is worth testing
// independently of HTTP and SQL: conflict detection, the approval
// workflow and the in-memory list transforms.  Repositories are consumed
// through narrow interfaces so tests can substitute fakes.
package service

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/model"
)

// ReservationReader is the read surface the conflict checker needs from
// the reservation repository.
type ReservationReader interface {
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
	ListApprovedForDate(ctx context.Context, typ string, date time.Time, roomID *uint64, excludeID uint64) ([]model.Reservation, error)
}

// ConflictResult reports whether a candidate reservation overlaps any
// approved reservation of the same type, date and (for rooms) room.
type ConflictResult struct {
	HasConflict bool                `json:"has_conflict"`
	Conflicts   []model.Reservation `json:"conflicts"`
}

// ConflictChecker implements the advisory overlap check used before a
// reservation is approved.  It is read-only and best-effort: any read
// failure is logged and degrades to "no conflict" so the check can never
// block an approval on infrastructure trouble.
type ConflictChecker struct {
	reservations ReservationReader
}

// NewConflictChecker returns a checker reading through the given repository.
func NewConflictChecker(r ReservationReader) *ConflictChecker {
	return &ConflictChecker{reservations: r}
}

// Check loads the target reservation and compares its window against all
// APPROVED reservations of the same type on the same date.  For ROOM-type
// targets, selectedRoomID (when non-nil) restricts the comparison to that
// room; AUDITORIUM targets ignore it.  Windows are half-open, so a
// reservation ending at 11:00 does not conflict with one starting at 11:00.
func (c *ConflictChecker) Check(ctx context.Context, reservationID uint64, selectedRoomID *uint64) ConflictResult {
	target, err := c.reservations.GetByID(ctx, reservationID)
	if err != nil {
		log.Printf("conflict-check: load reservation %d failed: %v", reservationID, err)
		return ConflictResult{Conflicts: []model.Reservation{}}
	}

	var roomScope *uint64
	if target.Type == model.ReservationTypeRoom && selectedRoomID != nil {
		roomScope = selectedRoomID
	}

	candidates, err := c.reservations.ListApprovedForDate(ctx, target.Type, target.Date, roomScope, target.ID)
	if err != nil {
		log.Printf("conflict-check: list approved for %d failed: %v", reservationID, err)
		return ConflictResult{Conflicts: []model.Reservation{}}
	}

	conflicts := make([]model.Reservation, 0)
	for _, cand := range candidates {
		if windowsOverlap(target.StartTime, target.EndTime, cand.StartTime, cand.EndTime) {
			conflicts = append(conflicts, cand)
		}
	}
	return ConflictResult{HasConflict: len(conflicts) > 0, Conflicts: conflicts}
}

// windowsOverlap applies the standard half-open interval test
// aStart < bEnd && aEnd > bStart on "HH:MM" (or "HH:MM:SS") strings.
// Unparsable times are treated as non-overlapping; the check is advisory
// and must not invent conflicts out of bad data.
func windowsOverlap(aStart, aEnd, bStart, bEnd string) bool {
	as, ok1 := timeMinutes(aStart)
	ae, ok2 := timeMinutes(aEnd)
	bs, ok3 := timeMinutes(bStart)
	be, ok4 := timeMinutes(bEnd)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}
	return as < be && ae > bs
}

// timeMinutes converts "HH:MM" or "HH:MM:SS" into minutes since midnight.
func timeMinutes(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
