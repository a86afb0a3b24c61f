package importers

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexkarpov/timeline-convert/internal/entities"
	"github.com/alexkarpov/timeline-convert/internal/geo"
)

// semanticSegment is the wire shape shared by both semantic-segment
// dialects. Exactly one of Visit, Activity or TimelinePath is expected;
// dispatch happens on whichever marker is present. Start/end timestamps
// drifted across export versions, so both field-name variants are
// accepted.
type semanticSegment struct {
	StartTime      string           `json:"startTime"`
	StartTimestamp string           `json:"startTimestamp"`
	EndTime        string           `json:"endTime"`
	EndTimestamp   string           `json:"endTimestamp"`
	Visit          *visitPayload    `json:"visit"`
	Activity       *activityPayload `json:"activity"`
	TimelinePath   []pathPoint      `json:"timelinePath"`
}

// duration picks whichever timestamp variant the file uses and carries
// the strings verbatim.
func (s *semanticSegment) duration() entities.Duration {
	start := s.StartTime
	if start == "" {
		start = s.StartTimestamp
	}
	end := s.EndTime
	if end == "" {
		end = s.EndTimestamp
	}
	return entities.Duration{StartTimestamp: start, EndTimestamp: end}
}

type visitPayload struct {
	Probability  *float64       `json:"probability"`
	TopCandidate visitCandidate `json:"topCandidate"`
}

type visitCandidate struct {
	PlaceID       string      `json:"placeId"`
	SemanticType  string      `json:"semanticType"`
	PlaceLocation coordSource `json:"placeLocation"`
}

type activityPayload struct {
	Start          coordSource        `json:"start"`
	End            coordSource        `json:"end"`
	DistanceMeters flexFloat          `json:"distanceMeters"`
	TopCandidate   *activityCandidate `json:"topCandidate"`
}

type activityCandidate struct {
	Type        string   `json:"type"`
	Probability *float64 `json:"probability"`
}

type pathPoint struct {
	Point string `json:"point"`
}

// coordSource accepts the two wire representations of a location: a
// bare coordinate string, or an object carrying a latLng string plus
// optional place metadata. The union is normalized here and never
// propagates further into the pipeline.
type coordSource struct {
	LatLng  string
	Name    string
	Address string
}

func (c *coordSource) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &c.LatLng)
	}
	var obj struct {
		LatLng  string `json:"latLng"`
		Name    string `json:"name"`
		Address string `json:"address"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	c.LatLng, c.Name, c.Address = obj.LatLng, obj.Name, obj.Address
	return nil
}

// flexFloat decodes a decimal number that may arrive as a JSON number
// or a quoted string. Missing or unparsable values decode to 0.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

// SemanticConverter normalizes a semantic-segment file (either dialect)
// into canonical records.
type SemanticConverter struct {
	file     string
	segments []json.RawMessage
}

// NewSemanticConverter unwraps the dialect's envelope: a bare top-level
// array, or an object whose semanticSegments key holds the array.
func NewSemanticConverter(file string, doc json.RawMessage, format Format) (*SemanticConverter, error) {
	switch format {
	case FormatSegmentArray:
		var segments []json.RawMessage
		if err := json.Unmarshal(doc, &segments); err != nil {
			return nil, fmt.Errorf("failed to decode segment array: %w", err)
		}
		return &SemanticConverter{file: file, segments: segments}, nil

	case FormatSemanticSegments:
		var envelope struct {
			SemanticSegments []json.RawMessage `json:"semanticSegments"`
		}
		if err := json.Unmarshal(doc, &envelope); err != nil {
			return nil, fmt.Errorf("failed to decode semanticSegments: %w", err)
		}
		return &SemanticConverter{file: file, segments: envelope.SemanticSegments}, nil

	default:
		return nil, fmt.Errorf("format %q is not a semantic-segment dialect", format)
	}
}

// Convert implements Converter.
func (c *SemanticConverter) Convert() ([]entities.TimelineRecord, Report) {
	records := make([]entities.TimelineRecord, 0, len(c.segments))
	var report Report

	for i, raw := range c.segments {
		var seg semanticSegment
		if err := json.Unmarshal(raw, &seg); err != nil {
			report.Diagnostics = append(report.Diagnostics, Diagnostic{
				File: c.file, Segment: i, Message: "undecodable segment: " + err.Error(),
			})
			continue
		}

		var (
			record entities.TimelineRecord
			err    error
		)
		switch {
		case seg.Visit != nil:
			record, err = convertVisit(seg)
		case seg.Activity != nil:
			record, err = convertActivity(seg)
		case seg.TimelinePath != nil:
			if len(seg.TimelinePath) == 0 {
				// A path with zero points yields no record.
				continue
			}
			record, err = convertPath(seg)
		default:
			report.SegmentsSkipped++
			continue
		}

		if err != nil {
			report.Diagnostics = append(report.Diagnostics, Diagnostic{
				File: c.file, Segment: i, Message: err.Error(),
			})
			continue
		}
		records = append(records, record)
	}

	return records, report
}

func convertVisit(seg semanticSegment) (entities.TimelineRecord, error) {
	candidate := seg.Visit.TopCandidate

	latE7, lngE7, err := geo.ParseLatLng(candidate.PlaceLocation.LatLng)
	if err != nil {
		return entities.TimelineRecord{}, fmt.Errorf("visit location: %w", err)
	}

	semanticType := candidate.SemanticType
	if semanticType == "" {
		semanticType = entities.SemanticTypeUnknown
	}

	confidence := 0
	if seg.Visit.Probability != nil {
		confidence = int(math.Round(*seg.Visit.Probability * 100))
	}

	return entities.NewVisitRecord(entities.PlaceVisit{
		Location: entities.Location{
			LatitudeE7:   latE7,
			LongitudeE7:  lngE7,
			PlaceID:      candidate.PlaceID,
			Name:         candidate.PlaceLocation.Name,
			Address:      candidate.PlaceLocation.Address,
			SemanticType: semanticType,
		},
		Duration:        seg.duration(),
		CenterLatE7:     latE7,
		CenterLngE7:     lngE7,
		VisitConfidence: confidence,
	}), nil
}

func convertActivity(seg semanticSegment) (entities.TimelineRecord, error) {
	activity := seg.Activity

	startLat, startLng, err := geo.ParseLatLng(activity.Start.LatLng)
	if err != nil {
		return entities.TimelineRecord{}, fmt.Errorf("activity start: %w", err)
	}
	endLat, endLng, err := geo.ParseLatLng(activity.End.LatLng)
	if err != nil {
		return entities.TimelineRecord{}, fmt.Errorf("activity end: %w", err)
	}

	// Zero or one label, never more.
	var labels []entities.Activity
	if activity.TopCandidate != nil && activity.TopCandidate.Type != "" {
		probability := 0.0
		if activity.TopCandidate.Probability != nil {
			probability = *activity.TopCandidate.Probability
		}
		labels = []entities.Activity{{
			ActivityType: activity.TopCandidate.Type,
			Probability:  probability,
		}}
	}

	return entities.NewActivityRecord(entities.ActivitySegment{
		StartLocation: entities.Location{LatitudeE7: startLat, LongitudeE7: startLng},
		EndLocation:   entities.Location{LatitudeE7: endLat, LongitudeE7: endLng},
		Duration:      seg.duration(),
		Distance:      float64(activity.DistanceMeters),
		Activities:    labels,
	}), nil
}

// convertPath derives a degenerate activity segment from the first and
// last path points. No distance or label is populated.
func convertPath(seg semanticSegment) (entities.TimelineRecord, error) {
	first := seg.TimelinePath[0]
	last := seg.TimelinePath[len(seg.TimelinePath)-1]

	startLat, startLng, err := geo.ParseLatLng(first.Point)
	if err != nil {
		return entities.TimelineRecord{}, fmt.Errorf("path start: %w", err)
	}
	endLat, endLng, err := geo.ParseLatLng(last.Point)
	if err != nil {
		return entities.TimelineRecord{}, fmt.Errorf("path end: %w", err)
	}

	return entities.NewActivityRecord(entities.ActivitySegment{
		StartLocation: entities.Location{LatitudeE7: startLat, LongitudeE7: startLng},
		EndLocation:   entities.Location{LatitudeE7: endLat, LongitudeE7: endLng},
		Duration:      seg.duration(),
	}), nil
}

// Compile-time interface check
var _ Converter = (*SemanticConverter)(nil)
