package handler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/model"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/service"
)

type checkCall struct {
	id     uint64
	roomID *uint64
}

// fakeChecker flags a fixed set of reservation ids as conflicted and
// records every check it is asked to run.
type fakeChecker struct {
	conflicted map[uint64][]model.Reservation
	calls      []checkCall
}

func (f *fakeChecker) Check(_ context.Context, id uint64, roomID *uint64) service.ConflictResult {
	f.calls = append(f.calls, checkCall{id: id, roomID: roomID})
	if rows, ok := f.conflicted[id]; ok {
		return service.ConflictResult{HasConflict: true, Conflicts: rows}
	}
	return service.ConflictResult{}
}

func TestAnnotatePendingFlagsConflictedRows(t *testing.T) {
	room := uint64(7)
	date := time.Date(2026, 9, 21, 0, 0, 0, 0, time.UTC)
	rows := []model.Reservation{
		{ID: 1, Type: model.ReservationTypeRoom, RoomID: &room, Date: date, StartTime: "10:00", EndTime: "11:00", Status: model.ReservationStatusPending},
		{ID: 2, Type: model.ReservationTypeAuditorium, Date: date, StartTime: "10:30", EndTime: "11:30", Status: model.ReservationStatusPending},
	}
	chk := &fakeChecker{conflicted: map[uint64][]model.Reservation{
		2: {{ID: 9, Status: model.ReservationStatusApproved, Date: date}},
	}}

	got := annotatePending(context.Background(), chk, rows)
	require.Len(t, got, 2)

	assert.False(t, got[0].Conflict.HasConflict)
	assert.True(t, got[1].Conflict.HasConflict)
	require.Len(t, got[1].Conflict.Conflicts, 1)
	assert.Equal(t, uint64(9), got[1].Conflict.Conflicts[0].ID)

	// Each row is checked against its own room selection.
	require.Len(t, chk.calls, 2)
	require.NotNil(t, chk.calls[0].roomID)
	assert.Equal(t, room, *chk.calls[0].roomID)
	assert.Nil(t, chk.calls[1].roomID)
}

func TestCountConflicted(t *testing.T) {
	assert.Equal(t, 0, countConflicted(nil))

	items := []pendingItem{
		{Conflict: service.ConflictResult{HasConflict: true}},
		{Conflict: service.ConflictResult{}},
		{Conflict: service.ConflictResult{HasConflict: true}},
	}
	assert.Equal(t, 2, countConflicted(items))
}
