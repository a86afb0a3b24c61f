package exporters

import (
	"fmt"
	"strings"

	"github.com/alexkarpov/timeline-convert/internal/entities"
	"github.com/alexkarpov/timeline-convert/internal/geo"
)

const (
	kmlHeader = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
`
	kmlFooter = `  </Document>
</kml>
`
)

// ToKML renders records as an OGC KML 2.2 document with one point
// Placemark per PlaceVisit. Activity segments produce no placemark:
// this output is a point-visit map, not a path renderer.
func ToKML(records []entities.TimelineRecord) string {
	var b strings.Builder
	b.WriteString(kmlHeader)

	for _, r := range records {
		if r.Visit == nil {
			continue
		}
		v := r.Visit

		name := v.Location.Name
		if name == "" {
			name = entities.UnknownLocationName
		}

		var description strings.Builder
		if v.Location.Address != "" {
			description.WriteString(v.Location.Address)
		}
		if v.Duration.StartTimestamp != "" || v.Duration.EndTimestamp != "" {
			if description.Len() > 0 {
				description.WriteString("\n")
			}
			fmt.Fprintf(&description, "%s - %s", v.Duration.StartTimestamp, v.Duration.EndTimestamp)
		}

		b.WriteString("    <Placemark>\n")
		fmt.Fprintf(&b, "      <name>%s</name>\n", xmlEscape(name))
		fmt.Fprintf(&b, "      <description>%s</description>\n", xmlEscape(description.String()))
		b.WriteString("      <Point>\n")
		// KML axis order is longitude,latitude.
		fmt.Fprintf(&b, "        <coordinates>%s,%s,0</coordinates>\n",
			geo.FormatDegrees(v.Location.LongitudeE7),
			geo.FormatDegrees(v.Location.LatitudeE7))
		b.WriteString("      </Point>\n")
		b.WriteString("    </Placemark>\n")
	}

	b.WriteString(kmlFooter)
	return b.String()
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlReplacer.Replace(s)
}
