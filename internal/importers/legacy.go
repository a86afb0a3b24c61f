package importers

import (
	"encoding/json"
	"fmt"

	"github.com/alexkarpov/timeline-convert/internal/entities"
)

// LegacyConverter adapts a timeline-objects file. Records are already
// canonical-shaped, so they pass through with structural re-validation
// only; no coordinate math is re-derived. Fields outside the canonical
// model are dropped.
type LegacyConverter struct {
	file    string
	objects []json.RawMessage
}

func NewLegacyConverter(file string, doc json.RawMessage) (*LegacyConverter, error) {
	var envelope struct {
		TimelineObjects []json.RawMessage `json:"timelineObjects"`
	}
	if err := json.Unmarshal(doc, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode timelineObjects: %w", err)
	}
	return &LegacyConverter{file: file, objects: envelope.TimelineObjects}, nil
}

// Convert implements Converter.
func (c *LegacyConverter) Convert() ([]entities.TimelineRecord, Report) {
	records := make([]entities.TimelineRecord, 0, len(c.objects))
	var report Report

	for i, raw := range c.objects {
		var record entities.TimelineRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			report.Diagnostics = append(report.Diagnostics, Diagnostic{
				File: c.file, Segment: i, Message: "undecodable timeline object: " + err.Error(),
			})
			continue
		}
		if !record.Valid() {
			report.SegmentsSkipped++
			continue
		}
		records = append(records, record)
	}

	return records, report
}

// Compile-time interface check
var _ Converter = (*LegacyConverter)(nil)
