package services

import "time"

// RunRecord summarizes one completed conversion run for persistence.
type RunRecord struct {
	ID                string
	Files             []string
	OriginalCount     int
	FinalCount        int
	ActivitiesRemoved int
	DuplicatesRemoved int
	SegmentsSkipped   int
	RemoveActivities  bool
	RemoveDuplicates  bool
	SplitFiles        bool
	ArtifactCount     int
	Duration          time.Duration
	StartedAt         time.Time
}

// RunRecorder persists run summaries. The conversion pipeline itself is
// stateless; recording is optional and best-effort.
type RunRecorder interface {
	RecordRun(record RunRecord) error
}
