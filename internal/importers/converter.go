package importers

import (
	"github.com/alexkarpov/timeline-convert/internal/entities"
)

// Diagnostic is a non-fatal per-segment issue recorded during
// normalization. Diagnostics accompany a successful conversion and are
// never surfaced as failures.
type Diagnostic struct {
	File    string `json:"file"`
	Segment int    `json:"segment"`
	Message string `json:"message"`
}

// Report accumulates the non-fatal outcomes of one file's conversion.
// SegmentsSkipped counts segments with no recognized shape marker;
// skipping those is forward-compatibility policy, not an error.
type Report struct {
	Diagnostics     []Diagnostic
	SegmentsSkipped int
}

// Converter transforms one file's segment list into canonical records.
// Each input dialect implements this interface.
//
// Implementations:
//   - SemanticConverter (semantic.go) - both semantic-segment dialects
//   - LegacyConverter (legacy.go) - legacy timeline-object pass-through
type Converter interface {
	// Convert produces records in segment order. Segment N's failure
	// never blocks segment N+1.
	Convert() ([]entities.TimelineRecord, Report)
}
