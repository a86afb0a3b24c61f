package exporters

import "github.com/alexkarpov/timeline-convert/internal/entities"

// Chunk splits records into consecutive slices of at most size records,
// preserving order. Only the last chunk may be short. A nil or empty
// input yields a single empty chunk so one artifact is still produced.
func Chunk(records []entities.TimelineRecord, size int) [][]entities.TimelineRecord {
	if len(records) == 0 {
		return [][]entities.TimelineRecord{{}}
	}

	chunks := make([][]entities.TimelineRecord, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		chunks = append(chunks, records[start:end])
	}
	return chunks
}

// RenderAll renders the record set into named CSV, KML and JSON
// artifacts. With split enabled and more than ChunkSize records, CSV
// and KML are rendered once per chunk; JSON always covers the whole
// set in a single artifact.
func RenderAll(records []entities.TimelineRecord, baseName string, split bool) ([]Artifact, error) {
	chunks := [][]entities.TimelineRecord{records}
	if split && len(records) > ChunkSize {
		chunks = Chunk(records, ChunkSize)
	}

	artifacts := make([]Artifact, 0, 2*len(chunks)+1)
	for i, chunk := range chunks {
		artifacts = append(artifacts, Artifact{
			Name: partName(baseName, i+1, len(chunks), ".csv"),
			Data: []byte(ToCSV(chunk)),
		})
	}
	for i, chunk := range chunks {
		artifacts = append(artifacts, Artifact{
			Name: partName(baseName, i+1, len(chunks), ".kml"),
			Data: []byte(ToKML(chunk)),
		})
	}

	jsonText, err := ToJSON(records)
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, Artifact{Name: baseName + ".json", Data: []byte(jsonText)})

	return artifacts, nil
}
