package model

import "time"

// Event statuses as stored.  Time-relative buckets (upcoming, today, past)
// are derived at read time from StartsAt/EndsAt, not persisted.
const (
    EventStatusScheduled = "SCHEDULED"
    EventStatusCancelled = "CANCELLED"
)

// Event represents an activity organized by an entity: a talk, workshop,
// recruitment session and so on.  Events are browsed publicly and filtered
// client-side by text, organizer and time bucket.
//
// Fields:
//  ID          – primary key identifier.
//  EntityID    – organizing entity.
//  Name        – event name.
//  Description – free-form description.
//  Location    – where the event happens (free text, may reference a room).
//  StartsAt    – when the event begins.
//  EndsAt      – when the event ends (after StartsAt).
//  Capacity    – maximum attendance (nullable when unbounded).
//  PhotoPath   – object-store path of the uploaded banner (nullable).
//  Status      – SCHEDULED or CANCELLED.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Event struct {
    ID          uint64    // events.id
    EntityID    uint64    // events.entity_id
    Name        string    // events.name
    Description string    // events.description
    Location    string    // events.location
    StartsAt    time.Time // events.starts_at
    EndsAt      time.Time // events.ends_at
    Capacity    *uint32   // events.capacity (nullable)
    PhotoPath   *string   // events.photo_path (nullable)
    Status      string    // events.status
    CreatedAt   time.Time // events.created_at
    UpdatedAt   time.Time // events.updated_at
}
