package handler

import (
	"time"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/model"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/service"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/storage"
)

// View DTOs shared by the public catalogue and the authenticated areas.
// Models carry no JSON tags, so the wire shape lives here.

type entityView struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	AreaOfActivity string  `json:"area_of_activity"`
	ContactEmail   string  `json:"contact_email"`
	LogoURL        *string `json:"logo_url"`
	FoundedYear    *int32  `json:"founded_year"`
	MemberCount    uint32  `json:"member_count"`
	Status         string  `json:"status"`
}

type eventView struct {
	ID          uint64    `json:"id"`
	EntityID    uint64    `json:"entity_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Capacity    *uint32   `json:"capacity"`
	PhotoURL    *string   `json:"photo_url"`
	Status      string    `json:"status"`
	Bucket      string    `json:"bucket"` // TODAY, UPCOMING or PAST
}

type roomView struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Building string `json:"building"`
	Floor    int32  `json:"floor"`
	Capacity uint32 `json:"capacity"`
	IsActive bool   `json:"is_active"`
}

type companyView struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Sector       string  `json:"sector"`
	ContactEmail string  `json:"contact_email"`
	WebsiteURL   *string `json:"website_url"`
	LogoURL      *string `json:"logo_url"`
}

type reservationView struct {
	ID               uint64     `json:"id"`
	Type             string     `json:"type"`
	RequesterID      uint64     `json:"requester_id"`
	EntityID         *uint64    `json:"entity_id"`
	RequesterName    string     `json:"requester_name"`
	RequesterPhone   string     `json:"requester_phone"`
	EventName        *string    `json:"event_name"`
	EventDescription *string    `json:"event_description"`
	Date             string     `json:"date"`
	StartTime        string     `json:"start_time"`
	EndTime          string     `json:"end_time"`
	RoomID           *uint64    `json:"room_id"`
	Quantity         uint32     `json:"quantity"`
	Status           string     `json:"status"`
	ApprovalComment  *string    `json:"approval_comment"`
	Location         *string    `json:"location"`
	ApprovedAt       *time.Time `json:"approved_at"`
	CreatedAt        time.Time  `json:"created_at"`
}

type interestView struct {
	ID          uint64    `json:"id"`
	EntityID    uint64    `json:"entity_id"`
	StudentName string    `json:"student_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Message     *string   `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type phaseView struct {
	ID       uint64 `json:"id"`
	EntityID uint64 `json:"entity_id"`
	Name     string `json:"name"`
	Position uint32 `json:"position"`
}

type candidateView struct {
	ID         uint64    `json:"id"`
	EntityID   uint64    `json:"entity_id"`
	PhaseID    uint64    `json:"phase_id"`
	InterestID *uint64   `json:"interest_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Status     string    `json:"status"`
	Notes      *string   `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

// publicURL maps a stored object path to its served URL, passing nil
// through for records without an upload.
func publicURL(store *storage.LocalStore, path *string) *string {
	if path == nil || store == nil {
		return path
	}
	u := store.PublicURL(*path)
	return &u
}

func toEntityView(e model.Entity, store *storage.LocalStore) entityView {
	return entityView{
		ID:             e.ID,
		Name:           e.Name,
		Description:    e.Description,
		AreaOfActivity: e.AreaOfActivity,
		ContactEmail:   e.ContactEmail,
		LogoURL:        publicURL(store, e.LogoPath),
		FoundedYear:    e.FoundedYear,
		MemberCount:    e.MemberCount,
		Status:         e.Status,
	}
}

func toEntityViews(items []model.Entity, store *storage.LocalStore) []entityView {
	out := make([]entityView, 0, len(items))
	for _, e := range items {
		out = append(out, toEntityView(e, store))
	}
	return out
}

func toEventView(e model.Event, store *storage.LocalStore, now time.Time) eventView {
	return eventView{
		ID:          e.ID,
		EntityID:    e.EntityID,
		Name:        e.Name,
		Description: e.Description,
		Location:    e.Location,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		Capacity:    e.Capacity,
		PhotoURL:    publicURL(store, e.PhotoPath),
		Status:      e.Status,
		Bucket:      service.EventBucket(e, now),
	}
}

func toEventViews(items []model.Event, store *storage.LocalStore, now time.Time) []eventView {
	out := make([]eventView, 0, len(items))
	for _, e := range items {
		out = append(out, toEventView(e, store, now))
	}
	return out
}

func toRoomView(r model.Room) roomView {
	return roomView{ID: r.ID, Name: r.Name, Building: r.Building, Floor: r.Floor, Capacity: r.Capacity, IsActive: r.IsActive}
}

func toCompanyView(pc model.PartnerCompany, store *storage.LocalStore) companyView {
	return companyView{
		ID:           pc.ID,
		Name:         pc.Name,
		Sector:       pc.Sector,
		ContactEmail: pc.ContactEmail,
		WebsiteURL:   pc.WebsiteURL,
		LogoURL:      publicURL(store, pc.LogoPath),
	}
}

func toReservationView(r model.Reservation) reservationView {
	return reservationView{
		ID:               r.ID,
		Type:             r.Type,
		RequesterID:      r.RequesterID,
		EntityID:         r.EntityID,
		RequesterName:    r.RequesterName,
		RequesterPhone:   r.RequesterPhone,
		EventName:        r.EventName,
		EventDescription: r.EventDescription,
		Date:             r.Date.Format("2006-01-02"),
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		RoomID:           r.RoomID,
		Quantity:         r.Quantity,
		Status:           r.Status,
		ApprovalComment:  r.ApprovalComment,
		Location:         r.Location,
		ApprovedAt:       r.ApprovedAt,
		CreatedAt:        r.CreatedAt,
	}
}

func toReservationViews(items []model.Reservation) []reservationView {
	out := make([]reservationView, 0, len(items))
	for _, r := range items {
		out = append(out, toReservationView(r))
	}
	return out
}

func toInterestView(d model.InterestDemonstration) interestView {
	return interestView{
		ID:          d.ID,
		EntityID:    d.EntityID,
		StudentName: d.StudentName,
		Email:       d.Email,
		Phone:       d.Phone,
		Message:     d.Message,
		Status:      d.Status,
		CreatedAt:   d.CreatedAt,
	}
}

func toPhaseView(p model.SelectionPhase) phaseView {
	return phaseView{ID: p.ID, EntityID: p.EntityID, Name: p.Name, Position: p.Position}
}

func toCandidateView(sc model.SelectionCandidate) candidateView {
	return candidateView{
		ID:         sc.ID,
		EntityID:   sc.EntityID,
		PhaseID:    sc.PhaseID,
		InterestID: sc.InterestID,
		Name:       sc.Name,
		Email:      sc.Email,
		Status:     sc.Status,
		Notes:      sc.Notes,
		CreatedAt:  sc.CreatedAt,
	}
}
