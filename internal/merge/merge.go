// Package merge implements the clean-up applied to the combined record
// set before serialization: optional removal of movement records and an
// optional two-pass deduplication of place visits.
//
// A place can be recorded once under a stable identifier and again,
// days later, without one. Keying on the identifier first catches
// cross-session repeats that coordinate-only matching would miss when
// coordinates drift by rounding; the second pass catches
// identifier-less repeats.
package merge

import (
	"fmt"
	"strings"

	"github.com/alexkarpov/timeline-convert/internal/entities"
)

// Options are supplied by the caller, never read from the environment.
type Options struct {
	RemoveActivities bool
	RemoveDuplicates bool
}

// Result is a new, filtered record sequence plus count bookkeeping.
// The input is never edited in place.
type Result struct {
	Records           []entities.TimelineRecord
	OriginalCount     int
	FinalCount        int
	ActivitiesRemoved int
	DuplicatesRemoved int
}

// TotalRemoved is the sum of both removal counters.
func (r Result) TotalRemoved() int {
	return r.ActivitiesRemoved + r.DuplicatesRemoved
}

// Clean applies activity removal and deduplication per the options.
// It never fails on malformed individual records: a record either has a
// usable key or is preserved as-is.
func Clean(records []entities.TimelineRecord, opts Options) Result {
	result := Result{OriginalCount: len(records)}

	cleaned := records
	if opts.RemoveActivities {
		visits := make([]entities.TimelineRecord, 0, len(cleaned))
		for _, r := range cleaned {
			if r.IsVisit() {
				visits = append(visits, r)
			}
		}
		result.ActivitiesRemoved = len(cleaned) - len(visits)
		cleaned = visits
	}

	if opts.RemoveDuplicates {
		before := len(cleaned)
		cleaned = collapse(cleaned, placeIDKey)
		cleaned = collapse(cleaned, coordinateKey)
		result.DuplicatesRemoved = before - len(cleaned)
	}

	// Copy even when nothing was filtered so callers never alias the input.
	result.Records = append(make([]entities.TimelineRecord, 0, len(cleaned)), cleaned...)
	result.FinalCount = len(result.Records)
	return result
}

// placeIDKey groups place visits by non-blank trimmed identifier.
// Everything else is unkeyed and set aside untouched.
func placeIDKey(_ int, r entities.TimelineRecord) (string, bool) {
	if r.Visit == nil {
		return "", false
	}
	id := strings.TrimSpace(r.Visit.Location.PlaceID)
	if id == "" {
		return "", false
	}
	return "id:" + id, true
}

// coordinateKey groups place visits by exact scaled coordinate pair.
// Non-visit records are unkeyed so they never merge with anything.
func coordinateKey(_ int, r entities.TimelineRecord) (string, bool) {
	if r.Visit == nil {
		return "", false
	}
	return fmt.Sprintf("%d,%d", r.Visit.Location.LatitudeE7, r.Visit.Location.LongitudeE7), true
}

// collapse partitions records by key and keeps one survivor per group,
// emitted at the group's first-seen position. Unkeyed records get a
// positional key: deterministic and un-collidable with real keys, which
// all carry a prefix or a digit.
func collapse(records []entities.TimelineRecord, keyOf func(int, entities.TimelineRecord) (string, bool)) []entities.TimelineRecord {
	order := make([]string, 0, len(records))
	groups := make(map[string][]entities.TimelineRecord, len(records))

	for i, r := range records {
		key, ok := keyOf(i, r)
		if !ok {
			key = fmt.Sprintf("#%d", i)
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r)
	}

	out := make([]entities.TimelineRecord, 0, len(order))
	for _, key := range order {
		out = append(out, survivor(groups[key]))
	}
	return out
}

// survivor selects one record from a duplicate group: the first one, in
// encounter order, with a non-blank address, else the first encountered.
func survivor(group []entities.TimelineRecord) entities.TimelineRecord {
	if len(group) == 1 {
		return group[0]
	}
	for _, r := range group {
		if r.Visit != nil && strings.TrimSpace(r.Visit.Location.Address) != "" {
			return r
		}
	}
	return group[0]
}
