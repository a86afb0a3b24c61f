package importers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Format identifies one of the recognized input dialects.
type Format string

const (
	// FormatSegmentArray is the export whose document is a bare
	// top-level array of segments.
	FormatSegmentArray Format = "segment-array"
	// FormatSemanticSegments is the export wrapping segments in a
	// semanticSegments envelope.
	FormatSemanticSegments Format = "semantic-segments"
	// FormatLegacy is the already-canonical timelineObjects export.
	FormatLegacy Format = "timeline-objects"
)

// UnrecognizedFormatError reports a valid JSON document whose top-level
// shape matches none of the known dialects. Keys lists the top-level
// keys actually found, to aid diagnosis.
type UnrecognizedFormatError struct {
	Keys []string
}

func (e *UnrecognizedFormatError) Error() string {
	if len(e.Keys) == 0 {
		return "unrecognized format: no known top-level keys"
	}
	return fmt.Sprintf("unrecognized format (top-level keys: %s)", strings.Join(e.Keys, ", "))
}

// DetectFormat classifies an already-decoded JSON document into one of
// the three dialects. Pure classification, no side effects.
func DetectFormat(doc json.RawMessage) (Format, error) {
	trimmed := bytes.TrimLeft(doc, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return FormatSegmentArray, nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(doc, &top); err != nil {
		// Valid JSON that is neither an array nor an object (a bare
		// scalar) is an unrecognized shape, not a parse failure.
		return "", &UnrecognizedFormatError{}
	}

	if _, ok := top["semanticSegments"]; ok {
		return FormatSemanticSegments, nil
	}
	if _, ok := top["timelineObjects"]; ok {
		return FormatLegacy, nil
	}

	keys := make([]string, 0, len(top))
	for k := range top {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return "", &UnrecognizedFormatError{Keys: keys}
}
