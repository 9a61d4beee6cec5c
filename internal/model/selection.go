package model

import "time"

// Candidate statuses within a selection process phase.
const (
    CandidateStatusApplied  = "APPLIED"
    CandidateStatusInReview = "IN_REVIEW"
    CandidateStatusInvited  = "INVITED"
    CandidateStatusAccepted = "ACCEPTED"
    CandidateStatusRejected = "REJECTED"
)

// SelectionPhase is one ordered step of an entity's recruitment workflow
// (e.g. "Inscrições", "Dinâmica", "Entrevista").  Phases form the columns
// of the candidate-tracking board; Position defines their order.
type SelectionPhase struct {
    ID        uint64    // selection_phases.id
    EntityID  uint64    // selection_phases.entity_id
    Name      string    // selection_phases.name
    Position  uint32    // selection_phases.position
    CreatedAt time.Time // selection_phases.created_at
}

// SelectionCandidate tracks one applicant moving through an entity's
// selection process.  A candidate belongs to exactly one phase at a time
// and optionally links back to the interest demonstration that originated
// it.
//
// Fields:
//  ID         – primary key identifier.
//  EntityID   – entity running the process.
//  PhaseID    – current phase of the candidate.
//  InterestID – originating interest demonstration (nullable).
//  Name       – candidate name.
//  Email      – candidate contact email.
//  Status     – APPLIED, IN_REVIEW, INVITED, ACCEPTED or REJECTED.
//  Notes      – reviewer notes (nullable).
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type SelectionCandidate struct {
    ID         uint64    // selection_candidates.id
    EntityID   uint64    // selection_candidates.entity_id
    PhaseID    uint64    // selection_candidates.phase_id
    InterestID *uint64   // selection_candidates.interest_id (nullable)
    Name       string    // selection_candidates.name
    Email      string    // selection_candidates.email
    Status     string    // selection_candidates.status
    Notes      *string   // selection_candidates.notes (nullable)
    CreatedAt  time.Time // selection_candidates.created_at
    UpdatedAt  time.Time // selection_candidates.updated_at
}
