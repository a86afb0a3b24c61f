package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/alexkarpov/timeline-convert/internal/exporters"
	"github.com/alexkarpov/timeline-convert/internal/importers"
	"github.com/alexkarpov/timeline-convert/internal/merge"
)

// ConvertRequest carries one conversion run's inputs and options.
// Options come from the caller, never from the environment.
type ConvertRequest struct {
	Files            []importers.InputFile
	BaseName         string
	RemoveActivities bool
	RemoveDuplicates bool
	SplitFiles       bool
}

// ConvertSummary is the full outcome of a successful run: counts, the
// diagnostic log (present even when empty) and the rendered artifacts.
type ConvertSummary struct {
	RunID             string                 `json:"run_id"`
	OriginalCount     int                    `json:"original_count"`
	FinalCount        int                    `json:"final_count"`
	ActivitiesRemoved int                    `json:"activities_removed"`
	DuplicatesRemoved int                    `json:"duplicates_removed"`
	TotalRemoved      int                    `json:"total_removed"`
	SegmentsSkipped   int                    `json:"segments_skipped"`
	Diagnostics       []importers.Diagnostic `json:"diagnostics"`
	Artifacts         []exporters.Artifact   `json:"artifacts"`
}

// ConvertService runs the conversion pipeline end to end:
// normalize → merge/clean → render.
type ConvertService struct {
	recorder RunRecorder
}

// NewConvertService creates the service. recorder may be nil, in which
// case runs are not persisted.
func NewConvertService(recorder RunRecorder) *ConvertService {
	return &ConvertService{recorder: recorder}
}

// Convert processes the request's files sequentially to completion or
// to the first fatal error, in which case no artifacts are produced.
func (s *ConvertService) Convert(req ConvertRequest) (*ConvertSummary, error) {
	startedAt := time.Now()

	batch, err := importers.ProcessFiles(req.Files)
	if err != nil {
		return nil, err
	}

	cleaned := merge.Clean(batch.Records, merge.Options{
		RemoveActivities: req.RemoveActivities,
		RemoveDuplicates: req.RemoveDuplicates,
	})

	baseName := req.BaseName
	if baseName == "" {
		baseName = "timeline"
	}
	artifacts, err := exporters.RenderAll(cleaned.Records, baseName, req.SplitFiles)
	if err != nil {
		return nil, err
	}

	diagnostics := batch.Diagnostics
	if diagnostics == nil {
		diagnostics = []importers.Diagnostic{}
	}

	summary := &ConvertSummary{
		RunID:             uuid.NewString(),
		OriginalCount:     cleaned.OriginalCount,
		FinalCount:        cleaned.FinalCount,
		ActivitiesRemoved: cleaned.ActivitiesRemoved,
		DuplicatesRemoved: cleaned.DuplicatesRemoved,
		TotalRemoved:      cleaned.TotalRemoved(),
		SegmentsSkipped:   batch.SegmentsSkipped,
		Diagnostics:       diagnostics,
		Artifacts:         artifacts,
	}

	s.record(req, summary, startedAt)
	return summary, nil
}

func (s *ConvertService) record(req ConvertRequest, summary *ConvertSummary, startedAt time.Time) {
	if s.recorder == nil {
		return
	}

	fileNames := make([]string, len(req.Files))
	for i, f := range req.Files {
		fileNames[i] = f.Name
	}

	err := s.recorder.RecordRun(RunRecord{
		ID:                summary.RunID,
		Files:             fileNames,
		OriginalCount:     summary.OriginalCount,
		FinalCount:        summary.FinalCount,
		ActivitiesRemoved: summary.ActivitiesRemoved,
		DuplicatesRemoved: summary.DuplicatesRemoved,
		SegmentsSkipped:   summary.SegmentsSkipped,
		RemoveActivities:  req.RemoveActivities,
		RemoveDuplicates:  req.RemoveDuplicates,
		SplitFiles:        req.SplitFiles,
		ArtifactCount:     len(summary.Artifacts),
		Duration:          time.Since(startedAt),
		StartedAt:         startedAt,
	})
	if err != nil {
		logrus.WithError(err).Warn("failed to record conversion run")
	}
}
