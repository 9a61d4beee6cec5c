package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/model"
)

func int32Ptr(n int32) *int32 { return &n }

func sampleEntities() []model.Entity {
	return []model.Entity{
		{ID: 1, Name: "Grupo de Robotica", Description: "Montamos robos para competicoes", AreaOfActivity: "Tecnologia", Status: model.EntityStatusActive, FoundedYear: int32Ptr(2015)},
		{ID: 2, Name: "Atletica Central", Description: "Esportes universitarios", AreaOfActivity: "Esportes", Status: model.EntityStatusActive, FoundedYear: int32Ptr(2008)},
		{ID: 3, Name: "Coletivo de Teatro", Description: "Oficinas e workshops de atuacao", AreaOfActivity: "Cultura", Status: model.EntityStatusInactive, FoundedYear: nil},
		{ID: 4, Name: "Liga de Mercado", Description: "Workshop semanal de financas", AreaOfActivity: "Negocios", Status: model.EntityStatusActive, FoundedYear: int32Ptr(2020)},
	}
}

func TestFilterEntitiesByText(t *testing.T) {
	got := FilterEntities(sampleEntities(), EntityListFilter{Text: "workshop"})
	require.Len(t, got, 2)
	assert.Equal(t, uint64(3), got[0].ID)
	assert.Equal(t, uint64(4), got[1].ID)
}

func TestFilterEntitiesCombinesPredicates(t *testing.T) {
	got := FilterEntities(sampleEntities(), EntityListFilter{
		Text:   "workshop",
		Status: model.EntityStatusActive,
	})
	require.Len(t, got, 1)
	assert.Equal(t, uint64(4), got[0].ID)

	got = FilterEntities(sampleEntities(), EntityListFilter{
		Areas: []string{"esportes", "Cultura"},
	})
	require.Len(t, got, 2)
	assert.Equal(t, uint64(2), got[0].ID)
	assert.Equal(t, uint64(3), got[1].ID)
}

func TestFilterEntitiesEmptyFilterKeepsAll(t *testing.T) {
	items := sampleEntities()
	got := FilterEntities(items, EntityListFilter{})
	assert.Len(t, got, len(items))
}

func TestSortEntitiesByYearDescPutsNilLast(t *testing.T) {
	got := SortEntities(sampleEntities(), EntitySortYear, true)
	require.Len(t, got, 4)
	assert.Equal(t, uint64(4), got[0].ID) // 2020
	assert.Equal(t, uint64(1), got[1].ID) // 2015
	assert.Equal(t, uint64(2), got[2].ID) // 2008
	assert.Nil(t, got[3].FoundedYear)     // no year sinks to the end
}

func TestSortEntitiesByNameIsCaseInsensitive(t *testing.T) {
	items := []model.Entity{
		{ID: 1, Name: "zebra"},
		{ID: 2, Name: "Alpha"},
		{ID: 3, Name: "beta"},
	}
	got := SortEntities(items, EntitySortName, false)
	assert.Equal(t, []uint64{2, 3, 1}, []uint64{got[0].ID, got[1].ID, got[2].ID})

	// The input slice must stay untouched.
	assert.Equal(t, uint64(1), items[0].ID)
}

func TestEventBucket(t *testing.T) {
	now := time.Date(2026, 9, 14, 15, 0, 0, 0, time.UTC)

	sameDayEarlier := model.Event{StartsAt: time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)}
	assert.Equal(t, EventBucketToday, EventBucket(sameDayEarlier, now))

	tomorrow := model.Event{StartsAt: time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)}
	assert.Equal(t, EventBucketUpcoming, EventBucket(tomorrow, now))

	lastWeek := model.Event{StartsAt: time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)}
	assert.Equal(t, EventBucketPast, EventBucket(lastWeek, now))
}

func TestFilterEventsByText(t *testing.T) {
	now := time.Date(2026, 9, 14, 15, 0, 0, 0, time.UTC)
	items := []model.Event{
		{ID: 1, Name: "Workshop de Arduino", Description: "Eletronica basica", Location: "Lab 2", StartsAt: now.Add(24 * time.Hour)},
		{ID: 2, Name: "Palestra de carreira", Description: "Com workshop pratico ao final", Location: "Auditorio", StartsAt: now.Add(24 * time.Hour)},
		{ID: 3, Name: "Treino aberto", Description: "Treino semanal", Location: "Sala de workshops", StartsAt: now.Add(-48 * time.Hour)},
		{ID: 4, Name: "Assembleia geral", Description: "Pauta do semestre", Location: "Auditorio", StartsAt: now.Add(24 * time.Hour)},
	}

	// Name, description and location all match, case-insensitively.
	got := FilterEvents(items, EventListFilter{Text: "WORKSHOP"}, now)
	require.Len(t, got, 3)
	assert.Equal(t, []uint64{1, 2, 3}, []uint64{got[0].ID, got[1].ID, got[2].ID})

	// Text combines with the bucket predicate.
	got = FilterEvents(items, EventListFilter{Text: "workshop", Bucket: EventBucketUpcoming}, now)
	require.Len(t, got, 2)
	assert.Equal(t, []uint64{1, 2}, []uint64{got[0].ID, got[1].ID})
}

func TestFilterEventsByBucketAndOrganizer(t *testing.T) {
	now := time.Date(2026, 9, 14, 15, 0, 0, 0, time.UTC)
	items := []model.Event{
		{ID: 1, EntityID: 10, Name: "Hackathon", StartsAt: now.Add(48 * time.Hour)},
		{ID: 2, EntityID: 10, Name: "Retrospectiva", StartsAt: now.Add(-72 * time.Hour)},
		{ID: 3, EntityID: 20, Name: "Treino aberto", StartsAt: now.Add(48 * time.Hour)},
	}

	got := FilterEvents(items, EventListFilter{Bucket: EventBucketUpcoming}, now)
	require.Len(t, got, 2)

	got = FilterEvents(items, EventListFilter{Bucket: EventBucketUpcoming, EntityID: 10}, now)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(1), got[0].ID)
}

func TestSortEventsByDate(t *testing.T) {
	base := time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)
	items := []model.Event{
		{ID: 1, StartsAt: base.Add(2 * time.Hour)},
		{ID: 2, StartsAt: base},
		{ID: 3, StartsAt: base.Add(time.Hour)},
	}
	got := SortEvents(items, EventSortDate, false)
	assert.Equal(t, []uint64{2, 3, 1}, []uint64{got[0].ID, got[1].ID, got[2].ID})

	got = SortEvents(items, EventSortDate, true)
	assert.Equal(t, []uint64{1, 3, 2}, []uint64{got[0].ID, got[1].ID, got[2].ID})
}
