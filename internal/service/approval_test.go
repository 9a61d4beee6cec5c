package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/model"
)

func newApprovalService(store *fakeReservationStore) *ApprovalService {
	return NewApprovalService(store, NewConflictChecker(store), nil)
}

func TestRejectRequiresComment(t *testing.T) {
	store := newFakeStore(
		roomReservation(1, model.ReservationStatusPending, "10:00", "11:00", uintPtr(7)),
	)
	svc := newApprovalService(store)

	for _, comment := range []string{"", "   ", "\t\n"} {
		err := svc.Reject(context.Background(), 1, comment, 42)
		assert.ErrorIs(t, err, ErrCommentRequired)
	}
	assert.Empty(t, store.rejectCalls, "no store call may happen before validation")
}

func TestRejectTrimsCommentAndRecordsApprover(t *testing.T) {
	store := newFakeStore(
		roomReservation(1, model.ReservationStatusPending, "10:00", "11:00", uintPtr(7)),
	)
	svc := newApprovalService(store)

	require.NoError(t, svc.Reject(context.Background(), 1, "  sala em manutencao  ", 42))
	require.Len(t, store.rejectCalls, 1)
	assert.Equal(t, "sala em manutencao", store.rejectCalls[0].comment)
	assert.Equal(t, uint64(42), store.rejectCalls[0].approverID)
}

func TestApproveRoomWithoutRoomFails(t *testing.T) {
	store := newFakeStore(
		roomReservation(1, model.ReservationStatusPending, "10:00", "11:00", nil),
	)
	svc := newApprovalService(store)

	err := svc.Approve(context.Background(), 1, ApproveParams{ApproverID: 42})
	assert.ErrorIs(t, err, ErrRoomRequired)
	assert.Empty(t, store.approveCalls)
}

func TestApproveFallsBackToReservationRoom(t *testing.T) {
	store := newFakeStore(
		roomReservation(1, model.ReservationStatusPending, "10:00", "11:00", uintPtr(5)),
	)
	svc := newApprovalService(store)

	require.NoError(t, svc.Approve(context.Background(), 1, ApproveParams{ApproverID: 42}))
	require.Len(t, store.approveCalls, 1)
	require.NotNil(t, store.approveCalls[0].roomID)
	assert.Equal(t, uint64(5), *store.approveCalls[0].roomID)
}

func TestApproveParamRoomWinsOverReservationRoom(t *testing.T) {
	store := newFakeStore(
		roomReservation(1, model.ReservationStatusPending, "10:00", "11:00", uintPtr(5)),
	)
	svc := newApprovalService(store)

	require.NoError(t, svc.Approve(context.Background(), 1, ApproveParams{RoomID: uintPtr(9), ApproverID: 42}))
	require.Len(t, store.approveCalls, 1)
	assert.Equal(t, uint64(9), *store.approveCalls[0].roomID)
}

func TestApproveAuditoriumNeverPersistsRoom(t *testing.T) {
	aud := model.Reservation{
		ID: 1, Type: model.ReservationTypeAuditorium, Date: testDate(),
		StartTime: "18:00", EndTime: "20:00", Status: model.ReservationStatusPending,
	}
	store := newFakeStore(aud)
	svc := newApprovalService(store)

	require.NoError(t, svc.Approve(context.Background(), 1, ApproveParams{RoomID: uintPtr(9), ApproverID: 42}))
	require.Len(t, store.approveCalls, 1)
	assert.Nil(t, store.approveCalls[0].roomID)
}

func TestApproveConflictRequiresOverride(t *testing.T) {
	store := newFakeStore(
		roomReservation(1, model.ReservationStatusPending, "10:00", "11:00", uintPtr(7)),
		roomReservation(2, model.ReservationStatusApproved, "10:30", "11:30", uintPtr(7)),
	)
	svc := newApprovalService(store)

	err := svc.Approve(context.Background(), 1, ApproveParams{ApproverID: 42})
	var conflicts *ConflictsFoundError
	require.ErrorAs(t, err, &conflicts)
	require.Len(t, conflicts.Conflicts, 1)
	assert.Equal(t, uint64(2), conflicts.Conflicts[0].ID)
	assert.Empty(t, store.approveCalls, "a blocked approval must not reach the store")

	// The same call with an explicit override goes through.
	require.NoError(t, svc.Approve(context.Background(), 1, ApproveParams{Override: true, ApproverID: 42}))
	assert.Len(t, store.approveCalls, 1)
}

func TestApproveSurfacesStoreError(t *testing.T) {
	store := newFakeStore(
		roomReservation(1, model.ReservationStatusPending, "10:00", "11:00", uintPtr(7)),
	)
	store.approveErr = errors.New("already decided")
	svc := newApprovalService(store)

	err := svc.Approve(context.Background(), 1, ApproveParams{ApproverID: 42})
	assert.EqualError(t, err, "already decided")
}

func TestApproveManyContinuesPastFailures(t *testing.T) {
	store := newFakeStore(
		roomReservation(1, model.ReservationStatusPending, "10:00", "11:00", nil), // no room, fails
		roomReservation(2, model.ReservationStatusPending, "12:00", "13:00", uintPtr(3)),
		roomReservation(3, model.ReservationStatusPending, "14:00", "15:00", uintPtr(3)),
	)
	svc := newApprovalService(store)

	out := svc.ApproveMany(context.Background(), []uint64{1, 2, 99, 3}, ApproveParams{ApproverID: 42})
	assert.Equal(t, []uint64{2, 3}, out.Succeeded)
	require.Len(t, out.Failed, 2)
	assert.Equal(t, uint64(1), out.Failed[0].ID)
	assert.Equal(t, ErrRoomRequired.Error(), out.Failed[0].Reason)
	assert.Equal(t, uint64(99), out.Failed[1].ID)
}

func TestRejectManySharesComment(t *testing.T) {
	store := newFakeStore(
		roomReservation(1, model.ReservationStatusPending, "10:00", "11:00", uintPtr(7)),
		roomReservation(2, model.ReservationStatusPending, "12:00", "13:00", uintPtr(7)),
	)
	svc := newApprovalService(store)

	out := svc.RejectMany(context.Background(), []uint64{1, 2}, "predio fechado no feriado", 42)
	assert.Equal(t, []uint64{1, 2}, out.Succeeded)
	assert.Empty(t, out.Failed)
	require.Len(t, store.rejectCalls, 2)
	for _, call := range store.rejectCalls {
		assert.Equal(t, "predio fechado no feriado", call.comment)
	}
}
