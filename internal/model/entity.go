package model

import "time"

// Entity statuses.  ACTIVE entities appear on the public portal; INACTIVE
// ones are hidden but keep their history.
const (
    EntityStatusActive   = "ACTIVE"
    EntityStatusInactive = "INACTIVE"
)

// Entity represents a student organization record.  An entity is owned by
// a user with the ENTITY role, who manages its profile, events and
// selection processes through the portal.
//
// Fields:
//  ID             – primary key identifier.
//  OwnerID        – user that administers this organization.
//  Name           – organization name, unique per portal.
//  Description    – free-form description shown on the profile page.
//  AreaOfActivity – category used for filtering (e.g. "Tecnologia").
//  ContactEmail   – public contact address.
//  LogoPath       – object-store path of the uploaded logo (nullable).
//  FoundedYear    – year the organization was created (nullable).
//  MemberCount    – current number of members.
//  Status         – ACTIVE or INACTIVE.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Entity struct {
    ID             uint64    // entities.id
    OwnerID        uint64    // entities.owner_id
    Name           string    // entities.name
    Description    string    // entities.description
    AreaOfActivity string    // entities.area_of_activity
    ContactEmail   string    // entities.contact_email
    LogoPath       *string   // entities.logo_path (nullable)
    FoundedYear    *int32    // entities.founded_year (nullable)
    MemberCount    uint32    // entities.member_count
    Status         string    // entities.status
    CreatedAt      time.Time // entities.created_at
    UpdatedAt      time.Time // entities.updated_at
}
