package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/model"
)

// fakeReservationStore is an in-memory ReservationDecider for service
// tests. ListApprovedForDate applies the same filters as the SQL query:
// type, date, optional room scope and the excluded id.
type fakeReservationStore struct {
	byID     map[uint64]*model.Reservation
	approved []model.Reservation

	getErr  error
	listErr error

	approveErr   error
	rejectErr    error
	approveCalls []approveCall
	rejectCalls  []rejectCall
}

type approveCall struct {
	id         uint64
	comment    *string
	location   *string
	roomID     *uint64
	approverID uint64
}

type rejectCall struct {
	id         uint64
	comment    string
	approverID uint64
}

func newFakeStore(items ...model.Reservation) *fakeReservationStore {
	f := &fakeReservationStore{byID: map[uint64]*model.Reservation{}}
	for i := range items {
		r := items[i]
		f.byID[r.ID] = &r
		if r.Status == model.ReservationStatusApproved {
			f.approved = append(f.approved, r)
		}
	}
	return f
}

func (f *fakeReservationStore) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	r, ok := f.byID[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReservationStore) ListApprovedForDate(ctx context.Context, typ string, date time.Time, roomID *uint64, excludeID uint64) ([]model.Reservation, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Reservation, 0)
	for _, r := range f.approved {
		if r.ID == excludeID || r.Type != typ || !r.Date.Equal(date) {
			continue
		}
		if roomID != nil && (r.RoomID == nil || *r.RoomID != *roomID) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReservationStore) Approve(ctx context.Context, id uint64, comment, location *string, roomID *uint64, approverID uint64) error {
	if f.approveErr != nil {
		return f.approveErr
	}
	f.approveCalls = append(f.approveCalls, approveCall{id, comment, location, roomID, approverID})
	return nil
}

func (f *fakeReservationStore) Reject(ctx context.Context, id uint64, comment string, approverID uint64) error {
	if f.rejectErr != nil {
		return f.rejectErr
	}
	f.rejectCalls = append(f.rejectCalls, rejectCall{id, comment, approverID})
	return nil
}

func uintPtr(n uint64) *uint64 { return &n }

func testDate() time.Time {
	return time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
}

func roomReservation(id uint64, status, start, end string, room *uint64) model.Reservation {
	return model.Reservation{
		ID:        id,
		Type:      model.ReservationTypeRoom,
		Date:      testDate(),
		StartTime: start,
		EndTime:   end,
		RoomID:    room,
		Status:    status,
	}
}

func TestCheckFindsOverlap(t *testing.T) {
	store := newFakeStore(
		roomReservation(1, model.ReservationStatusPending, "10:00", "11:00", uintPtr(7)),
		roomReservation(2, model.ReservationStatusApproved, "10:30", "11:30", uintPtr(7)),
	)
	checker := NewConflictChecker(store)

	res := checker.Check(context.Background(), 1, uintPtr(7))
	require.True(t, res.HasConflict)
	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, uint64(2), res.Conflicts[0].ID)
}

func TestCheckHalfOpenBoundaryDoesNotConflict(t *testing.T) {
	// Ending at 11:00 and starting at 11:00 share only the boundary.
	store := newFakeStore(
		roomReservation(1, model.ReservationStatusPending, "10:00", "11:00", uintPtr(7)),
		roomReservation(2, model.ReservationStatusApproved, "11:00", "12:00", uintPtr(7)),
	)
	checker := NewConflictChecker(store)

	res := checker.Check(context.Background(), 1, uintPtr(7))
	assert.False(t, res.HasConflict)
	assert.Empty(t, res.Conflicts)
}

func TestCheckRoomScopeIgnoresOtherRooms(t *testing.T) {
	store := newFakeStore(
		roomReservation(1, model.ReservationStatusPending, "10:00", "11:00", uintPtr(1)),
		roomReservation(2, model.ReservationStatusApproved, "10:00", "11:00", uintPtr(2)),
	)
	checker := NewConflictChecker(store)

	res := checker.Check(context.Background(), 1, uintPtr(1))
	assert.False(t, res.HasConflict)
}

func TestCheckAuditoriumIgnoresRoomScope(t *testing.T) {
	aud := model.Reservation{
		ID: 1, Type: model.ReservationTypeAuditorium, Date: testDate(),
		StartTime: "18:00", EndTime: "20:00", Status: model.ReservationStatusPending,
	}
	other := model.Reservation{
		ID: 2, Type: model.ReservationTypeAuditorium, Date: testDate(),
		StartTime: "19:00", EndTime: "21:00", Status: model.ReservationStatusApproved,
	}
	checker := NewConflictChecker(newFakeStore(aud, other))

	// A stray room id must not narrow an auditorium check.
	res := checker.Check(context.Background(), 1, uintPtr(99))
	require.True(t, res.HasConflict)
	assert.Equal(t, uint64(2), res.Conflicts[0].ID)
}

func TestCheckDegradesToNoConflictOnErrors(t *testing.T) {
	store := newFakeStore(
		roomReservation(1, model.ReservationStatusPending, "10:00", "11:00", uintPtr(7)),
	)
	store.getErr = errors.New("db down")
	checker := NewConflictChecker(store)

	res := checker.Check(context.Background(), 1, nil)
	assert.False(t, res.HasConflict)
	assert.NotNil(t, res.Conflicts)
	assert.Empty(t, res.Conflicts)

	store.getErr = nil
	store.listErr = errors.New("db down")
	res = checker.Check(context.Background(), 1, nil)
	assert.False(t, res.HasConflict)
	assert.Empty(t, res.Conflicts)
}

func TestWindowsOverlap(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{"partial overlap", "10:00", "11:00", "10:30", "11:30", true},
		{"containment", "09:00", "17:00", "10:00", "11:00", true},
		{"identical", "10:00", "11:00", "10:00", "11:00", true},
		{"touching boundary", "10:00", "11:00", "11:00", "12:00", false},
		{"disjoint", "08:00", "09:00", "10:00", "11:00", false},
		{"seconds suffix", "10:00:00", "11:00:00", "10:30:00", "11:30:00", true},
		{"garbage input", "banana", "11:00", "10:30", "11:30", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, windowsOverlap(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
		})
	}
}

func TestTimeMinutes(t *testing.T) {
	n, ok := timeMinutes("10:30")
	require.True(t, ok)
	assert.Equal(t, 630, n)

	n, ok = timeMinutes("10:30:45")
	require.True(t, ok)
	assert.Equal(t, 630, n)

	for _, bad := range []string{"", "10", "24:00", "10:60", "aa:bb"} {
		_, ok := timeMinutes(bad)
		assert.False(t, ok, "expected %q to be rejected", bad)
	}
}
