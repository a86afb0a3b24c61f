// Package exporters renders a cleaned record set into the CSV, KML and
// JSON text artifacts consumed by downstream map-import tools.
package exporters

import "fmt"

// ChunkSize is the per-file record ceiling of the downstream import
// tools. Record sets above this size are split when splitting is
// requested.
const ChunkSize = 2000

// Artifact is one rendered output blob. Naming and on-disk placement
// are the caller's concern; the pipeline only produces text.
type Artifact struct {
	Name string `json:"name"`
	Data []byte `json:"-"`
}

// Size returns the artifact's byte length.
func (a Artifact) Size() int { return len(a.Data) }

func partName(base string, part, total int, ext string) string {
	if total <= 1 {
		return base + ext
	}
	return fmt.Sprintf("%s_part%d%s", base, part, ext)
}
