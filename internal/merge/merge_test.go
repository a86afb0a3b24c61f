package merge

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexkarpov/timeline-convert/internal/entities"
)

func visit(placeID, address string, latE7, lngE7 int64) entities.TimelineRecord {
	return entities.NewVisitRecord(entities.PlaceVisit{
		Location: entities.Location{
			LatitudeE7:  latE7,
			LongitudeE7: lngE7,
			PlaceID:     placeID,
			Address:     address,
		},
	})
}

func activity(startLatE7 int64) entities.TimelineRecord {
	return entities.NewActivityRecord(entities.ActivitySegment{
		StartLocation: entities.Location{LatitudeE7: startLatE7},
	})
}

func TestClean_NoOptionsKeepsEverything(t *testing.T) {
	records := []entities.TimelineRecord{
		visit("P1", "", 1, 1),
		visit("P1", "", 1, 1),
		activity(5),
	}

	result := Clean(records, Options{})

	assert.Equal(t, 3, result.OriginalCount)
	assert.Equal(t, 3, result.FinalCount)
	assert.Zero(t, result.ActivitiesRemoved)
	assert.Zero(t, result.DuplicatesRemoved)
	assert.Equal(t, records, result.Records)
}

func TestClean_DoesNotAliasInput(t *testing.T) {
	records := []entities.TimelineRecord{visit("P1", "", 1, 1)}
	result := Clean(records, Options{})

	result.Records[0] = activity(9)
	assert.NotNil(t, records[0].Visit)
}

func TestClean_RemoveActivities(t *testing.T) {
	records := []entities.TimelineRecord{
		visit("P1", "", 1, 1),
		activity(5),
		activity(6),
		visit("P2", "", 2, 2),
	}

	result := Clean(records, Options{RemoveActivities: true})

	assert.Equal(t, 4, result.OriginalCount)
	assert.Equal(t, 2, result.FinalCount)
	assert.Equal(t, 2, result.ActivitiesRemoved)
	for _, r := range result.Records {
		assert.True(t, r.IsVisit())
	}
}

func TestClean_DedupPrefersAddressBearingRecord(t *testing.T) {
	// Regardless of encounter order, the address-bearing record survives.
	orders := [][]entities.TimelineRecord{
		{visit("P1", "", 1, 1), visit("P1", "123 Main St", 2, 2)},
		{visit("P1", "123 Main St", 2, 2), visit("P1", "", 1, 1)},
	}

	for i, records := range orders {
		t.Run(fmt.Sprintf("order_%d", i), func(t *testing.T) {
			result := Clean(records, Options{RemoveDuplicates: true})

			require.Len(t, result.Records, 1)
			assert.Equal(t, "123 Main St", result.Records[0].Visit.Location.Address)
			assert.Equal(t, 1, result.DuplicatesRemoved)
		})
	}
}

func TestClean_DedupFirstAddressWins(t *testing.T) {
	records := []entities.TimelineRecord{
		visit("P1", "first address", 1, 1),
		visit("P1", "second address", 1, 1),
	}

	result := Clean(records, Options{RemoveDuplicates: true})

	require.Len(t, result.Records, 1)
	assert.Equal(t, "first address", result.Records[0].Visit.Location.Address)
}

func TestClean_DedupNoAddressKeepsFirstEncountered(t *testing.T) {
	first := visit("P1", "", 10, 10)
	records := []entities.TimelineRecord{first, visit("P1", "", 20, 20)}

	result := Clean(records, Options{RemoveDuplicates: true})

	require.Len(t, result.Records, 1)
	assert.Equal(t, int64(10), result.Records[0].Visit.Location.LatitudeE7)
}

func TestClean_BlankPlaceIDIsNotAGroup(t *testing.T) {
	// Whitespace-only identifiers are unusable; such records fall
	// through to the coordinate pass only.
	records := []entities.TimelineRecord{
		visit("  ", "", 1, 1),
		visit("", "", 2, 2),
		visit("  ", "", 3, 3),
	}

	result := Clean(records, Options{RemoveDuplicates: true})

	assert.Len(t, result.Records, 3)
	assert.Zero(t, result.DuplicatesRemoved)
}

func TestClean_CoordinatePassCatchesIdentifierlessRepeats(t *testing.T) {
	// Same place recorded with and without a stable identifier, at the
	// same scaled coordinates.
	records := []entities.TimelineRecord{
		visit("P1", "123 Main St", 400000000, -750000000),
		visit("", "", 400000000, -750000000),
	}

	result := Clean(records, Options{RemoveDuplicates: true})

	require.Len(t, result.Records, 1)
	assert.Equal(t, "P1", result.Records[0].Visit.Location.PlaceID)
	assert.Equal(t, 1, result.DuplicatesRemoved)
}

func TestClean_ActivitiesNeverMerge(t *testing.T) {
	// Identical activities are preserved: only place visits participate
	// in either dedup pass.
	records := []entities.TimelineRecord{
		activity(5),
		activity(5),
		activity(5),
	}

	result := Clean(records, Options{RemoveDuplicates: true})

	assert.Len(t, result.Records, 3)
	assert.Zero(t, result.DuplicatesRemoved)
}

func TestClean_DedupIsIdempotent(t *testing.T) {
	records := []entities.TimelineRecord{
		visit("P1", "", 1, 1),
		visit("P1", "addr", 1, 1),
		visit("", "", 1, 1),
		activity(2),
		visit("P2", "", 3, 3),
	}

	first := Clean(records, Options{RemoveDuplicates: true})
	second := Clean(first.Records, Options{RemoveDuplicates: true})

	assert.Zero(t, second.DuplicatesRemoved)
	assert.Equal(t, first.Records, second.Records)
}

func TestClean_PreservesOrder(t *testing.T) {
	records := []entities.TimelineRecord{
		visit("P1", "", 1, 1),
		activity(9),
		visit("P2", "", 2, 2),
		visit("P1", "", 1, 1),
	}

	result := Clean(records, Options{RemoveDuplicates: true})

	require.Len(t, result.Records, 3)
	assert.Equal(t, "P1", result.Records[0].Visit.Location.PlaceID)
	assert.NotNil(t, result.Records[1].Activity)
	assert.Equal(t, "P2", result.Records[2].Visit.Location.PlaceID)
}

func TestClean_CountBookkeeping(t *testing.T) {
	records := []entities.TimelineRecord{
		visit("P1", "", 1, 1),
		visit("P1", "", 1, 1),
		activity(5),
		activity(6),
	}

	result := Clean(records, Options{RemoveActivities: true, RemoveDuplicates: true})

	assert.Equal(t, 4, result.OriginalCount)
	assert.Equal(t, 1, result.FinalCount)
	assert.Equal(t, 2, result.ActivitiesRemoved)
	assert.Equal(t, 1, result.DuplicatesRemoved)
	assert.Equal(t, 3, result.TotalRemoved())
}

func TestClean_FinalCountNeverBelowDistinctKeys(t *testing.T) {
	records := []entities.TimelineRecord{
		visit("P1", "", 1, 1),
		visit("P1", "", 1, 1),
		visit("P2", "", 1, 1), // distinct id, same coordinates as P1
		visit("", "", 9, 9),
		activity(5),
	}

	result := Clean(records, Options{RemoveActivities: true, RemoveDuplicates: true})

	// P1 and P2 collapse to one coordinate group in pass 2; the
	// identifier-less visit at (9,9) stays distinct.
	assert.GreaterOrEqual(t, result.FinalCount, 2)
}

func TestClean_EmptyInput(t *testing.T) {
	result := Clean(nil, Options{RemoveActivities: true, RemoveDuplicates: true})

	assert.Zero(t, result.OriginalCount)
	assert.Zero(t, result.FinalCount)
	assert.NotNil(t, result.Records)
	assert.Empty(t, result.Records)
}
