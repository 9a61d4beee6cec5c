package model

import "time"

// Interest demonstration statuses.  An entity reviews each demonstration
// and either approves it into its selection process or rejects it.
const (
    InterestStatusPending  = "PENDING"
    InterestStatusApproved = "APPROVED"
    InterestStatusRejected = "REJECTED"
)

// InterestDemonstration records a student's expressed interest in joining
// an entity's selection process.
//
// Fields:
//  ID          – primary key identifier.
//  EntityID    – entity the student is interested in.
//  StudentID   – user who demonstrated interest.
//  StudentName – name captured at submission time.
//  Email       – contact email captured at submission time.
//  Phone       – contact phone captured at submission time.
//  Message     – optional motivation text (nullable).
//  Status      – PENDING, APPROVED or REJECTED.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type InterestDemonstration struct {
    ID          uint64    // interest_demonstrations.id
    EntityID    uint64    // interest_demonstrations.entity_id
    StudentID   uint64    // interest_demonstrations.student_id
    StudentName string    // interest_demonstrations.student_name
    Email       string    // interest_demonstrations.email
    Phone       string    // interest_demonstrations.phone
    Message     *string   // interest_demonstrations.message (nullable)
    Status      string    // interest_demonstrations.status
    CreatedAt   time.Time // interest_demonstrations.created_at
    UpdatedAt   time.Time // interest_demonstrations.updated_at
}
