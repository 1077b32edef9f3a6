package ingest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spacemissions/internal/model"
)

// fakeStore implements Store in memory for pipeline tests.
type fakeStore struct {
	existing   map[string]*model.Rocket // key: lower-cased name
	lookups    int
	saveCalls  int
	savedRocks []*model.Rocket
	savedMiss  []*model.Mission
	saveErr    error
}

func newFakeStore(existing ...*model.Rocket) *fakeStore {
	s := &fakeStore{existing: make(map[string]*model.Rocket)}
	for _, rk := range existing {
		s.existing[strings.ToLower(rk.Name)] = rk
	}
	return s
}

func (s *fakeStore) FindRocketByName(_ context.Context, name string) (*model.Rocket, error) {
	s.lookups++
	return s.existing[strings.ToLower(strings.TrimSpace(name))], nil
}

func (s *fakeStore) SaveBatch(_ context.Context, rockets []*model.Rocket, missions []*model.Mission) error {
	s.saveCalls++
	if s.saveErr != nil {
		return s.saveErr
	}
	var nextID uint64 = 100
	for _, rk := range rockets {
		rk.ID = nextID
		nextID++
	}
	s.savedRocks = rockets
	s.savedMiss = missions
	return nil
}

func rec(rocket, mission string) RawRecord {
	return RawRecord{Rocket: rocket, Mission: mission, Date: "2020-01-01", Company: "SpaceX"}
}

func TestImporterDeduplicatesRocketsCaseInsensitively(t *testing.T) {
	store := newFakeStore()
	im := NewImporter(store)

	res, err := im.Run(context.Background(), []RawRecord{
		rec("Falcon 9", "Starlink-1"),
		rec("falcon 9", "Starlink-2"),
		rec("FALCON 9", "Starlink-3"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.RocketsAdded)
	assert.Equal(t, 3, res.MissionsAdded)
	assert.Equal(t, 0, res.Skipped)
	assert.Equal(t, 1, store.lookups, "each distinct name should hit storage once")

	require.Len(t, store.savedRocks, 1)
	assert.Equal(t, "Falcon 9", store.savedRocks[0].Name, "first spelling wins")
}

func TestImporterReusesExistingRocket(t *testing.T) {
	existing := &model.Rocket{ID: 7, Name: "Falcon 9", IsActive: false}
	store := newFakeStore(existing)
	im := NewImporter(store)

	res, err := im.Run(context.Background(), []RawRecord{
		{Rocket: "falcon 9", Mission: "Starlink-1", Date: "2020-01-01", RocketStatus: "Active"},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, res.RocketsAdded)
	assert.Empty(t, store.savedRocks)
	assert.False(t, existing.IsActive, "stored activity state wins over the record's hint")
	require.Len(t, store.savedMiss, 1)
	require.NotNil(t, store.savedMiss[0].RocketID)
	assert.Equal(t, uint64(7), *store.savedMiss[0].RocketID)
}

func TestImporterAssignsIDsToMissionsOfNewRockets(t *testing.T) {
	store := newFakeStore()
	im := NewImporter(store)

	_, err := im.Run(context.Background(), []RawRecord{
		rec("Falcon 9", "Starlink-1"),
		rec("Electron", "It's a Test"),
		rec("falcon 9", "Starlink-2"),
	})
	require.NoError(t, err)

	// Mission RocketID aliases the rocket's ID field, so the IDs the batch
	// write assigns are visible through every mission that references it.
	require.Len(t, store.savedMiss, 3)
	assert.Equal(t, store.savedRocks[0].ID, *store.savedMiss[0].RocketID)
	assert.Equal(t, store.savedRocks[1].ID, *store.savedMiss[1].RocketID)
	assert.Equal(t, store.savedRocks[0].ID, *store.savedMiss[2].RocketID)
}

func TestImporterSkipsRejectedRecordsAndContinues(t *testing.T) {
	store := newFakeStore()
	im := NewImporter(store)

	res, err := im.Run(context.Background(), []RawRecord{
		rec("Falcon 9", "Starlink-1"),
		{Rocket: "", Mission: "Nameless", Date: "2020-01-01"},      // blank rocket
		{Rocket: "Falcon 9", Mission: "Bad Date", Date: "someday"}, // unparsable instant
		rec("Falcon 9", "Starlink-2"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.MissionsAdded)
	assert.Equal(t, 2, res.Skipped)
	assert.Equal(t, 1, store.saveCalls, "the whole run is one batch write")
}

func TestImporterPropagatesSaveFailure(t *testing.T) {
	store := newFakeStore()
	store.saveErr = assert.AnError
	im := NewImporter(store)

	_, err := im.Run(context.Background(), []RawRecord{rec("Falcon 9", "Starlink-1")})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestImporterEmptyRunStillWritesOnce(t *testing.T) {
	store := newFakeStore()
	im := NewImporter(store)

	res, err := im.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
	assert.Equal(t, 1, store.saveCalls)
}
