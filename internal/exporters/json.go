package exporters

import (
	"encoding/json"
	"fmt"

	"github.com/alexkarpov/timeline-convert/internal/entities"
)

// ToJSON renders the whole record set, pretty-printed, under a single
// timelineObjects key. The result re-imports through the legacy
// dialect. JSON output is never chunked.
func ToJSON(records []entities.TimelineRecord) (string, error) {
	if records == nil {
		records = []entities.TimelineRecord{}
	}
	doc := struct {
		TimelineObjects []entities.TimelineRecord `json:"timelineObjects"`
	}{TimelineObjects: records}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal timeline objects: %w", err)
	}
	return string(out), nil
}
