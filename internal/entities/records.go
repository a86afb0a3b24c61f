package entities

// Sentinel strings carried through to output artifacts. Downstream
// consumers match on these exact literals, so they are never unified.
const (
	// SemanticTypeUnknown is the fallback semantic type for visits.
	SemanticTypeUnknown = "TYPE_UNKNOWN"
	// ActivityTypeUnknown is the fallback activity label in CSV rows.
	ActivityTypeUnknown = "UNKNOWN"
	// UnknownLocationName is the placeholder for unnamed KML placemarks.
	UnknownLocationName = "Unknown Location"
)

// Location is a point with optional place metadata. Coordinates are
// stored as decimal degrees scaled by 1e7 to avoid floating-point
// round-trip drift. Absent string fields are empty strings.
type Location struct {
	LatitudeE7   int64  `json:"latitudeE7"`
	LongitudeE7  int64  `json:"longitudeE7"`
	PlaceID      string `json:"placeId,omitempty"`
	Name         string `json:"name,omitempty"`
	Address      string `json:"address,omitempty"`
	SemanticType string `json:"semanticType,omitempty"`
}

// Duration carries the segment's start/end timestamps verbatim from the
// source file. The pipeline never parses them.
type Duration struct {
	StartTimestamp string `json:"startTimestamp"`
	EndTimestamp   string `json:"endTimestamp"`
}

// PlaceVisit is a stay at a place. CenterLatE7/CenterLngE7 duplicate the
// location coordinates; the duplication exists in the legacy export
// format and is kept for compatibility.
type PlaceVisit struct {
	Location        Location `json:"location"`
	Duration        Duration `json:"duration"`
	CenterLatE7     int64    `json:"centerLatE7"`
	CenterLngE7     int64    `json:"centerLngE7"`
	VisitConfidence int      `json:"visitConfidence"`
}

// Activity is a single classified movement type with its probability.
type Activity struct {
	ActivityType string  `json:"activityType"`
	Probability  float64 `json:"probability"`
}

// ActivitySegment is a movement between two points. Start and end
// locations carry coordinates only. Activities holds zero or one entry.
type ActivitySegment struct {
	StartLocation Location   `json:"startLocation"`
	EndLocation   Location   `json:"endLocation"`
	Duration      Duration   `json:"duration"`
	Distance      float64    `json:"distance,omitempty"`
	Activities    []Activity `json:"activities,omitempty"`
}

// TimelineRecord is the canonical record: exactly one of Visit or
// Activity is set. Its marshalled form matches the legacy
// timeline-object shape, so serialized output can be re-imported
// through the legacy dialect.
type TimelineRecord struct {
	Visit    *PlaceVisit      `json:"placeVisit,omitempty"`
	Activity *ActivitySegment `json:"activitySegment,omitempty"`
}

// NewVisitRecord wraps a PlaceVisit into a record.
func NewVisitRecord(v PlaceVisit) TimelineRecord {
	return TimelineRecord{Visit: &v}
}

// NewActivityRecord wraps an ActivitySegment into a record.
func NewActivityRecord(a ActivitySegment) TimelineRecord {
	return TimelineRecord{Activity: &a}
}

// IsVisit reports whether the record holds a PlaceVisit.
func (r TimelineRecord) IsVisit() bool {
	return r.Visit != nil
}

// Valid reports whether exactly one branch of the union is populated.
func (r TimelineRecord) Valid() bool {
	return (r.Visit != nil) != (r.Activity != nil)
}
