// Package queue defines message payloads exchanged over the message broker
// plus the publisher and the background consumer for reservation decisions.
package queue

// ReservationDecidedEvent is published whenever an admin approves or
// rejects a reservation.  It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type ReservationDecidedEvent struct {
    ReservationID uint64  `json:"reservation_id"`
    Type          string  `json:"type"`   // ROOM or AUDITORIUM
    Status        string  `json:"status"` // APPROVED or REJECTED
    Date          string  `json:"date"`
    StartTime     string  `json:"start_time"`
    EndTime       string  `json:"end_time"`
    RequesterName string  `json:"requester_name"`
    RoomID        *uint64 `json:"room_id,omitempty"`
    Comment       string  `json:"comment,omitempty"`
    ApproverID    uint64  `json:"approver_id"`
    DecidedAt     string  `json:"decided_at"`
}
