package model

import "time"

// Reservation types.  A ROOM reservation targets a specific room out of the
// static room inventory; an AUDITORIUM reservation targets the single
// auditorium and carries no room reference.
const (
    ReservationTypeRoom       = "ROOM"
    ReservationTypeAuditorium = "AUDITORIUM"
)

// Reservation statuses.  PENDING reservations await an admin decision.
// APPROVED and REJECTED are terminal decisions; CANCELLED is set by the
// requester while the reservation is still PENDING.
const (
    ReservationStatusPending   = "PENDING"
    ReservationStatusApproved  = "APPROVED"
    ReservationStatusRejected  = "REJECTED"
    ReservationStatusCancelled = "CANCELLED"
)

// Reservation records a request to use a room or the auditorium for a time
// window on a given date, subject to admin approval.  Start and end times
// are stored as "HH:MM" strings (TIME columns); the window is half-open,
// i.e. a reservation ending at 11:00 does not overlap one starting at
// 11:00.  A ROOM reservation must have a resolved RoomID before it can be
// APPROVED.
//
// Fields:
//  ID               – primary key identifier.
//  Type             – ROOM or AUDITORIUM.
//  RequesterID      – user who filed the request.
//  EntityID         – organization the request is filed on behalf of (nullable).
//  RequesterName    – contact name shown to approvers.
//  RequesterPhone   – contact phone shown to approvers.
//  EventName        – name of the associated event (nullable).
//  EventDescription – description of the associated event (nullable).
//  Date             – day of use (DATE column, midnight UTC).
//  StartTime        – start of the window, "HH:MM".
//  EndTime          – end of the window, "HH:MM", exclusive.
//  RoomID           – room granted or requested (nullable until approval).
//  Quantity         – number of people expected.
//  Status           – PENDING, APPROVED, REJECTED or CANCELLED.
//  ApprovalComment  – comment recorded with the decision (nullable).
//  Location         – free-form location note set by the approver (nullable).
//  ApprovedAt       – when the decision was made (nullable).
//  ApproverID       – admin who made the decision (nullable).
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Reservation struct {
    ID               uint64     // reservations.id
    Type             string     // reservations.type
    RequesterID      uint64     // reservations.requester_id
    EntityID         *uint64    // reservations.entity_id (nullable)
    RequesterName    string     // reservations.requester_name
    RequesterPhone   string     // reservations.requester_phone
    EventName        *string    // reservations.event_name (nullable)
    EventDescription *string    // reservations.event_description (nullable)
    Date             time.Time  // reservations.date
    StartTime        string     // reservations.start_time
    EndTime          string     // reservations.end_time
    RoomID           *uint64    // reservations.room_id (nullable)
    Quantity         uint32     // reservations.quantity
    Status           string     // reservations.status
    ApprovalComment  *string    // reservations.approval_comment (nullable)
    Location         *string    // reservations.location (nullable)
    ApprovedAt       *time.Time // reservations.approved_at (nullable)
    ApproverID       *uint64    // reservations.approver_id (nullable)
    CreatedAt        time.Time  // reservations.created_at
    UpdatedAt        time.Time  // reservations.updated_at
}

// Room is static reference data describing a reservable room.  Rooms are
// selected during approval of ROOM reservations and filtered by capacity.
//
// Fields:
//  ID       – primary key identifier.
//  Name     – room label (e.g. "101").
//  Building – building the room is in.
//  Floor    – floor number within the building.
//  Capacity – seating capacity.
//  IsActive – whether the room can be granted.
type Room struct {
    ID       uint64 // rooms.id
    Name     string // rooms.name
    Building string // rooms.building
    Floor    int32  // rooms.floor
    Capacity uint32 // rooms.capacity
    IsActive bool   // rooms.is_active
}
