package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexkarpov/timeline-convert/internal/exporters"
)

func TestZip_RoundTrip(t *testing.T) {
	artifacts := []exporters.Artifact{
		{Name: "timeline.csv", Data: []byte("\"Type\",\"Name\"\n\"Visit\",\"Home\"")},
		{Name: "timeline.kml", Data: []byte("<kml></kml>")},
		{Name: "timeline.json", Data: []byte("{\"timelineObjects\": []}")},
	}

	blob, err := Zip(artifacts)
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	require.NoError(t, err)
	require.Len(t, reader.File, 3)

	for i, f := range reader.File {
		assert.Equal(t, artifacts[i].Name, f.Name)

		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, artifacts[i].Data, data)
	}
}

func TestZip_Empty(t *testing.T) {
	blob, err := Zip(nil)
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	require.NoError(t, err)
	assert.Empty(t, reader.File)
}
