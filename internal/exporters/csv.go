package exporters

import (
	"strings"

	"github.com/alexkarpov/timeline-convert/internal/entities"
	"github.com/alexkarpov/timeline-convert/internal/geo"
)

// Column order is fixed; downstream spreadsheet tooling addresses
// columns by position.
var csvHeader = []string{
	"Type", "Name", "Address", "Latitude", "Longitude", "Start Time", "End Time", "PlaceId",
}

// ToCSV renders records as CSV text. Every cell is double-quoted with
// internal quotes doubled, and rows are newline-joined. Visits use the
// location's metadata; activities put the label (or "UNKNOWN") in the
// Name column and use the start location's coordinates.
func ToCSV(records []entities.TimelineRecord) string {
	rows := make([]string, 0, len(records)+1)
	rows = append(rows, csvRow(csvHeader))

	for _, r := range records {
		switch {
		case r.Visit != nil:
			v := r.Visit
			rows = append(rows, csvRow([]string{
				"Visit",
				v.Location.Name,
				v.Location.Address,
				geo.FormatDegrees(v.Location.LatitudeE7),
				geo.FormatDegrees(v.Location.LongitudeE7),
				v.Duration.StartTimestamp,
				v.Duration.EndTimestamp,
				v.Location.PlaceID,
			}))
		case r.Activity != nil:
			a := r.Activity
			label := entities.ActivityTypeUnknown
			if len(a.Activities) > 0 {
				label = a.Activities[0].ActivityType
			}
			rows = append(rows, csvRow([]string{
				"Activity",
				label,
				"",
				geo.FormatDegrees(a.StartLocation.LatitudeE7),
				geo.FormatDegrees(a.StartLocation.LongitudeE7),
				a.Duration.StartTimestamp,
				a.Duration.EndTimestamp,
				"",
			}))
		}
	}

	return strings.Join(rows, "\n")
}

func csvRow(cells []string) string {
	quoted := make([]string, len(cells))
	for i, cell := range cells {
		quoted[i] = `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
