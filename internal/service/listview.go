package service

// listview.go implements the in-memory list transforms behind the browse
// pages: predicate filters followed by a comparator, recomputed from
// scratch on every call.  The functions are pure; inputs are never
// mutated.

import (
	"sort"
	"strings"
	"time"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/model"
)

// Event time buckets derived from comparing an event against "now".
const (
	EventBucketToday    = "TODAY"
	EventBucketUpcoming = "UPCOMING"
	EventBucketPast     = "PAST"
)

// EntityListFilter selects entities by free text, area membership and
// status.  Zero values mean "no constraint".
type EntityListFilter struct {
	Text   string   // case-insensitive match on name, description, area
	Areas  []string // area_of_activity membership
	Status string   // exact status
}

// FilterEntities returns the entities matching every set predicate.
func FilterEntities(items []model.Entity, f EntityListFilter) []model.Entity {
	needle := strings.ToLower(strings.TrimSpace(f.Text))
	areas := map[string]bool{}
	for _, a := range f.Areas {
		if a = strings.TrimSpace(a); a != "" {
			areas[strings.ToLower(a)] = true
		}
	}
	out := make([]model.Entity, 0, len(items))
	for _, e := range items {
		if needle != "" && !containsFold(needle, e.Name, e.Description, e.AreaOfActivity) {
			continue
		}
		if len(areas) > 0 && !areas[strings.ToLower(e.AreaOfActivity)] {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Entity sort keys.
const (
	EntitySortName = "name"
	EntitySortYear = "year"
)

// SortEntities returns a sorted copy of items.  "name" sorts
// alphabetically (case-insensitive); "year" sorts by founded year with
// entities lacking a year placed last regardless of direction.  The sort
// is stable so equal keys keep their incoming order.
func SortEntities(items []model.Entity, by string, desc bool) []model.Entity {
	out := make([]model.Entity, len(items))
	copy(out, items)
	less := func(a, b model.Entity) bool {
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
	if by == EntitySortYear {
		less = func(a, b model.Entity) bool {
			switch {
			case a.FoundedYear == nil && b.FoundedYear == nil:
				return false
			case a.FoundedYear == nil:
				return false // missing years sink to the end
			case b.FoundedYear == nil:
				return true
			}
			if desc {
				return *a.FoundedYear > *b.FoundedYear
			}
			return *a.FoundedYear < *b.FoundedYear
		}
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// EventListFilter selects events by free text, organizer and time bucket.
type EventListFilter struct {
	Text     string // case-insensitive match on name, description, location
	EntityID uint64 // 0 = any organizer
	Bucket   string // "", TODAY, UPCOMING or PAST
}

// EventBucket classifies an event relative to now.  An event on the same
// calendar day as now (UTC) is TODAY regardless of the exact hour, so
// events do not flip to PAST mid-afternoon on the agenda view.  Otherwise
// it is UPCOMING until it starts and PAST once it has.
func EventBucket(e model.Event, now time.Time) string {
	ny, nm, nd := now.UTC().Date()
	ey, em, ed := e.StartsAt.UTC().Date()
	if ny == ey && nm == em && nd == ed {
		return EventBucketToday
	}
	if e.StartsAt.After(now) {
		return EventBucketUpcoming
	}
	return EventBucketPast
}

// FilterEvents returns the events matching every set predicate, with
// bucket membership evaluated against the supplied now.
func FilterEvents(items []model.Event, f EventListFilter, now time.Time) []model.Event {
	needle := strings.ToLower(strings.TrimSpace(f.Text))
	out := make([]model.Event, 0, len(items))
	for _, e := range items {
		if needle != "" && !containsFold(needle, e.Name, e.Description, e.Location) {
			continue
		}
		if f.EntityID != 0 && e.EntityID != f.EntityID {
			continue
		}
		if f.Bucket != "" && EventBucket(e, now) != f.Bucket {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Event sort keys.
const (
	EventSortDate = "date"
	EventSortName = "name"
)

// SortEvents returns a sorted copy of items by start time or name.
func SortEvents(items []model.Event, by string, desc bool) []model.Event {
	out := make([]model.Event, len(items))
	copy(out, items)
	less := func(a, b model.Event) bool { return a.StartsAt.Before(b.StartsAt) }
	if by == EventSortName {
		less = func(a, b model.Event) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// containsFold reports whether the lower-cased needle occurs in any of the
// haystacks, case-insensitively.
func containsFold(needle string, haystacks ...string) bool {
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}
