package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/model"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/queue"
)

// Validation errors surfaced before any write is attempted.  Handlers
// translate these into HTTP 400 responses.
var (
	// ErrCommentRequired is returned when a rejection carries an empty or
	// whitespace-only comment.
	ErrCommentRequired = errors.New("a comment is required to reject a reservation")
	// ErrRoomRequired is returned when a ROOM-type reservation is approved
	// with no room resolvable from the request or the reservation itself.
	ErrRoomRequired = errors.New("a room must be selected to approve a room reservation")
)

// ConflictsFoundError is returned by Approve when the conflict check found
// overlapping approved reservations and the operator did not set Override.
// The operator is expected to review the conflicts and re-submit with an
// explicit override to proceed anyway.
type ConflictsFoundError struct {
	Conflicts []model.Reservation
}

func (e *ConflictsFoundError) Error() string {
	return fmt.Sprintf("%d conflicting approved reservation(s) found", len(e.Conflicts))
}

// ReservationDecider is the repository surface the approval workflow
// writes through, on top of the reads the conflict checker needs.
type ReservationDecider interface {
	ReservationReader
	Approve(ctx context.Context, id uint64, comment, location *string, roomID *uint64, approverID uint64) error
	Reject(ctx context.Context, id uint64, comment string, approverID uint64) error
}

// DecisionPublisher pushes reservation decisions onto the message queue.
// Publishing is best effort; failures are logged, never propagated.
type DecisionPublisher interface {
	PublishReservationDecided(ctx context.Context, ev queue.ReservationDecidedEvent) error
}

// ApprovalService implements the reservation decision workflow: approve
// with advisory conflict detection and explicit override, reject with a
// mandatory comment, and sequential best-effort batch variants.  It is
// the single home of this logic for both the approval dashboard and the
// admin dashboard.
type ApprovalService struct {
	reservations ReservationDecider
	checker      *ConflictChecker
	publisher    DecisionPublisher // nil disables event publishing
}

// NewApprovalService wires the workflow.  publisher may be nil.
func NewApprovalService(r ReservationDecider, c *ConflictChecker, p DecisionPublisher) *ApprovalService {
	return &ApprovalService{reservations: r, checker: c, publisher: p}
}

// ApproveParams carries the operator's input for one approval.
type ApproveParams struct {
	Comment    *string // optional decision comment
	Location   *string // optional free-form location note
	RoomID     *uint64 // room to grant; falls back to the reservation's own selection
	Override   bool    // approve even when conflicts were reported
	ApproverID uint64  // admin making the decision
}

// Approve runs the full approval procedure for one reservation:
// resolve the room (hard precondition for ROOM type), run the conflict
// check, require an explicit override when conflicts exist, then persist
// the decision in a single atomic update.  The caller refetches its list
// on success.
func (s *ApprovalService) Approve(ctx context.Context, id uint64, p ApproveParams) error {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return err
	}

	roomID := p.RoomID
	if res.Type == model.ReservationTypeRoom {
		if roomID == nil {
			roomID = res.RoomID
		}
		if roomID == nil {
			return ErrRoomRequired
		}
	} else {
		// The auditorium has no room inventory; never persist one.
		roomID = nil
	}

	check := s.checker.Check(ctx, id, roomID)
	if check.HasConflict && !p.Override {
		return &ConflictsFoundError{Conflicts: check.Conflicts}
	}

	if err := s.reservations.Approve(ctx, id, p.Comment, p.Location, roomID, p.ApproverID); err != nil {
		return err
	}
	s.publishDecision(ctx, res, model.ReservationStatusApproved, p.Comment, roomID, p.ApproverID)
	return nil
}

// Reject rejects one reservation.  The comment is mandatory and validated
// before any store call is made.
func (s *ApprovalService) Reject(ctx context.Context, id uint64, comment string, approverID uint64) error {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return ErrCommentRequired
	}
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.reservations.Reject(ctx, id, comment, approverID); err != nil {
		return err
	}
	s.publishDecision(ctx, res, model.ReservationStatusRejected, &comment, nil, approverID)
	return nil
}

// BatchFailure records one id that could not be processed and why.
type BatchFailure struct {
	ID     uint64 `json:"id"`
	Reason string `json:"reason"`
}

// BatchResult summarizes a best-effort batch decision.
type BatchResult struct {
	Succeeded []uint64       `json:"succeeded"`
	Failed    []BatchFailure `json:"failed"`
}

// ApproveMany applies Approve to each id sequentially.  A failure on one
// id (including a conflict that needs individual review) is logged and
// recorded, and the remaining ids are still processed.
func (s *ApprovalService) ApproveMany(ctx context.Context, ids []uint64, p ApproveParams) BatchResult {
	out := BatchResult{Succeeded: []uint64{}, Failed: []BatchFailure{}}
	for _, id := range ids {
		if err := s.Approve(ctx, id, p); err != nil {
			log.Printf("batch-approve: reservation %d failed: %v", id, err)
			out.Failed = append(out.Failed, BatchFailure{ID: id, Reason: err.Error()})
			continue
		}
		out.Succeeded = append(out.Succeeded, id)
	}
	return out
}

// RejectMany applies Reject to each id sequentially with the same comment,
// continuing past failures.
func (s *ApprovalService) RejectMany(ctx context.Context, ids []uint64, comment string, approverID uint64) BatchResult {
	out := BatchResult{Succeeded: []uint64{}, Failed: []BatchFailure{}}
	for _, id := range ids {
		if err := s.Reject(ctx, id, comment, approverID); err != nil {
			log.Printf("batch-reject: reservation %d failed: %v", id, err)
			out.Failed = append(out.Failed, BatchFailure{ID: id, Reason: err.Error()})
			continue
		}
		out.Succeeded = append(out.Succeeded, id)
	}
	return out
}

// publishDecision emits a ReservationDecidedEvent when a publisher is
// configured.  Failures are logged and swallowed; the decision is already
// durable in the database.
func (s *ApprovalService) publishDecision(ctx context.Context, res *model.Reservation, status string, comment *string, roomID *uint64, approverID uint64) {
	if s.publisher == nil {
		return
	}
	ev := queue.ReservationDecidedEvent{
		ReservationID: res.ID,
		Type:          res.Type,
		Status:        status,
		Date:          res.Date.Format("2006-01-02"),
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
		RequesterName: res.RequesterName,
		RoomID:        roomID,
		ApproverID:    approverID,
		DecidedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if comment != nil {
		ev.Comment = *comment
	}
	if err := s.publisher.PublishReservationDecided(ctx, ev); err != nil {
		log.Printf("approval: publish decision for %d failed: %v", res.ID, err)
	}
}
