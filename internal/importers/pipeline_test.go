package importers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessFiles_CombinesInOrder(t *testing.T) {
	files := []InputFile{
		{Name: "a.json", Data: []byte(`[{"visit": {"topCandidate": {"placeId": "A", "placeLocation": "geo:1,1"}}}]`)},
		{Name: "b.json", Data: []byte(`{"semanticSegments": [{"visit": {"topCandidate": {"placeId": "B", "placeLocation": "geo:2,2"}}}]}`)},
		{Name: "c.json", Data: []byte(`{"timelineObjects": [{"placeVisit": {"location": {"latitudeE7": 3, "longitudeE7": 3, "placeId": "C"}}}]}`)},
	}

	result, err := ProcessFiles(files)
	require.NoError(t, err)

	require.Len(t, result.Records, 3)
	assert.Equal(t, "A", result.Records[0].Visit.Location.PlaceID)
	assert.Equal(t, "B", result.Records[1].Visit.Location.PlaceID)
	assert.Equal(t, "C", result.Records[2].Visit.Location.PlaceID)
	assert.Empty(t, result.Diagnostics)
}

func TestProcessFiles_EmptyInput(t *testing.T) {
	result, err := ProcessFiles(nil)
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.NotNil(t, result.Records)
}

func TestProcessFiles_ParseErrorAbortsBatch(t *testing.T) {
	files := []InputFile{
		{Name: "good.json", Data: []byte(`[]`)},
		{Name: "broken.json", Data: []byte(`{"semanticSegments": [`)},
		{Name: "never-reached.json", Data: []byte(`[]`)},
	}

	result, err := ProcessFiles(files)

	require.Error(t, err)
	assert.Nil(t, result)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "broken.json", parseErr.File)
	assert.Contains(t, err.Error(), "broken.json")
}

func TestProcessFiles_UnrecognizedFormatAbortsBatch(t *testing.T) {
	files := []InputFile{
		{Name: "odd.json", Data: []byte(`{"foo": 1, "bar": 2}`)},
	}

	result, err := ProcessFiles(files)

	require.Error(t, err)
	assert.Nil(t, result)

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "odd.json", formatErr.File)
	assert.Equal(t, []string{"bar", "foo"}, formatErr.Err.Keys)
}

func TestProcessFiles_ScalarDocumentIsFormatError(t *testing.T) {
	// A bare scalar parses as JSON, so the batch error must say
	// "unrecognized format", not "invalid JSON".
	files := []InputFile{
		{Name: "scalar.json", Data: []byte(`42`)},
	}

	result, err := ProcessFiles(files)

	require.Error(t, err)
	assert.Nil(t, result)

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "scalar.json", formatErr.File)
	assert.Empty(t, formatErr.Err.Keys)
	assert.NotContains(t, err.Error(), "invalid JSON")
}

func TestProcessFiles_ArrayOfUnrecognizedSegments(t *testing.T) {
	// A recognized dialect with unknown segment shapes is not an error.
	files := []InputFile{
		{Name: "future.json", Data: []byte(`[{"futureSegmentKind": {}}]`)},
	}

	result, err := ProcessFiles(files)

	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Equal(t, 1, result.SegmentsSkipped)
	assert.Empty(t, result.Diagnostics)
}

func TestProcessFiles_FileWithOnlyEmptyPath(t *testing.T) {
	files := []InputFile{
		{Name: "empty-path.json", Data: []byte(`[{"timelinePath": []}]`)},
	}

	result, err := ProcessFiles(files)

	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Zero(t, result.SegmentsSkipped)
}

func TestProcessFiles_AccumulatesDiagnosticsAcrossFiles(t *testing.T) {
	files := []InputFile{
		{Name: "a.json", Data: []byte(`[{"visit": {"topCandidate": {"placeLocation": "bogus"}}}]`)},
		{Name: "b.json", Data: []byte(`[{"visit": {"topCandidate": {"placeLocation": "also bogus"}}}]`)},
	}

	result, err := ProcessFiles(files)

	require.NoError(t, err)
	assert.Empty(t, result.Records)
	require.Len(t, result.Diagnostics, 2)
	assert.Equal(t, "a.json", result.Diagnostics[0].File)
	assert.Equal(t, "b.json", result.Diagnostics[1].File)
}
