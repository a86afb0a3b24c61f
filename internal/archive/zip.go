// Package archive bundles rendered artifacts into a single zip blob for
// download or on-disk packaging.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/alexkarpov/timeline-convert/internal/exporters"
)

// Zip packages the artifacts, preserving their order and names.
func Zip(artifacts []exporters.Artifact) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, artifact := range artifacts {
		f, err := w.Create(artifact.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", artifact.Name, err)
		}
		if _, err := f.Write(artifact.Data); err != nil {
			return nil, fmt.Errorf("failed to write %s to archive: %w", artifact.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
