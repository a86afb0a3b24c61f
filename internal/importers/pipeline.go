package importers

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexkarpov/timeline-convert/internal/entities"
)

// InputFile is one input document, already read into memory.
type InputFile struct {
	Name string
	Data []byte
}

// BatchResult is the union of all files' normalized records, in
// file-processing order then within-file segment order, together with
// the accumulated diagnostic log.
type BatchResult struct {
	Records         []entities.TimelineRecord
	Diagnostics     []Diagnostic
	SegmentsSkipped int
}

// ParseError is fatal: the named file is not valid JSON.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: invalid JSON: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FormatError is fatal: the named file is valid JSON but matches no
// recognized dialect.
type FormatError struct {
	File string
	Err  *UnrecognizedFormatError
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ProcessFiles normalizes every input file, sequentially in list order.
// The first fatal error (invalid JSON or unrecognized format) aborts
// the whole batch: no partial results are returned and later files are
// never attempted. Per-segment issues are non-fatal and accumulate into
// the result's diagnostic log.
func ProcessFiles(files []InputFile) (*BatchResult, error) {
	result := &BatchResult{Records: []entities.TimelineRecord{}}

	for _, file := range files {
		var doc json.RawMessage
		if err := json.Unmarshal(file.Data, &doc); err != nil {
			return nil, &ParseError{File: file.Name, Err: err}
		}

		format, err := DetectFormat(doc)
		if err != nil {
			var unrecognized *UnrecognizedFormatError
			if errors.As(err, &unrecognized) {
				return nil, &FormatError{File: file.Name, Err: unrecognized}
			}
			return nil, &ParseError{File: file.Name, Err: err}
		}

		var converter Converter
		switch format {
		case FormatLegacy:
			converter, err = NewLegacyConverter(file.Name, doc)
		default:
			converter, err = NewSemanticConverter(file.Name, doc, format)
		}
		if err != nil {
			return nil, &ParseError{File: file.Name, Err: err}
		}

		records, report := converter.Convert()
		result.Records = append(result.Records, records...)
		result.Diagnostics = append(result.Diagnostics, report.Diagnostics...)
		result.SegmentsSkipped += report.SegmentsSkipped
	}

	return result, nil
}
