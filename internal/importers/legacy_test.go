package importers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyConverter_PassThrough(t *testing.T) {
	doc := `{"timelineObjects": [
		{"placeVisit": {
			"location": {"latitudeE7": 400000000, "longitudeE7": -750000000, "placeId": "P1", "name": "Cafe", "address": "123 Main St", "semanticType": "TYPE_WORK"},
			"duration": {"startTimestamp": "t0", "endTimestamp": "t1"},
			"centerLatE7": 400000000,
			"centerLngE7": -750000000,
			"visitConfidence": 77
		}},
		{"activitySegment": {
			"startLocation": {"latitudeE7": 1, "longitudeE7": 2},
			"endLocation": {"latitudeE7": 3, "longitudeE7": 4},
			"duration": {"startTimestamp": "t2", "endTimestamp": "t3"},
			"distance": 1200,
			"activities": [{"activityType": "WALKING", "probability": 0.8}]
		}}
	]}`

	converter, err := NewLegacyConverter("legacy.json", json.RawMessage(doc))
	require.NoError(t, err)

	records, report := converter.Convert()

	require.Len(t, records, 2)
	assert.Empty(t, report.Diagnostics)
	assert.Zero(t, report.SegmentsSkipped)

	visit := records[0].Visit
	require.NotNil(t, visit)
	assert.Equal(t, int64(400000000), visit.Location.LatitudeE7)
	assert.Equal(t, "123 Main St", visit.Location.Address)
	assert.Equal(t, 77, visit.VisitConfidence)

	activity := records[1].Activity
	require.NotNil(t, activity)
	assert.Equal(t, float64(1200), activity.Distance)
	require.Len(t, activity.Activities, 1)
	assert.Equal(t, "WALKING", activity.Activities[0].ActivityType)
}

func TestLegacyConverter_SkipsShapelessObjects(t *testing.T) {
	doc := `{"timelineObjects": [
		{"somethingElse": {}},
		{"placeVisit": {"location": {"latitudeE7": 1, "longitudeE7": 2}}}
	]}`

	converter, err := NewLegacyConverter("legacy.json", json.RawMessage(doc))
	require.NoError(t, err)

	records, report := converter.Convert()

	require.Len(t, records, 1)
	assert.Equal(t, 1, report.SegmentsSkipped)
}

func TestLegacyConverter_DropsFieldsOutsideCanonicalModel(t *testing.T) {
	doc := `{"timelineObjects": [
		{"placeVisit": {
			"location": {"latitudeE7": 1, "longitudeE7": 2, "locationConfidence": 51.2},
			"editConfirmationStatus": "NOT_CONFIRMED"
		}}
	]}`

	converter, err := NewLegacyConverter("legacy.json", json.RawMessage(doc))
	require.NoError(t, err)

	records, _ := converter.Convert()

	require.Len(t, records, 1)
	out, err := json.Marshal(records[0])
	require.NoError(t, err)
	assert.NotContains(t, string(out), "editConfirmationStatus")
	assert.NotContains(t, string(out), "locationConfidence")
}

func TestLegacyConverter_EmptyList(t *testing.T) {
	converter, err := NewLegacyConverter("legacy.json", json.RawMessage(`{"timelineObjects": []}`))
	require.NoError(t, err)

	records, report := converter.Convert()
	assert.Empty(t, records)
	assert.Empty(t, report.Diagnostics)
}
