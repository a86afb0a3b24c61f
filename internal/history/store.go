// Package history persists a summary row per conversion run in a local
// sqlite database. The pipeline itself stays stateless; the store only
// records what happened, for the /api/runs endpoint and post-hoc
// inspection.
package history

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alexkarpov/timeline-convert/internal/services"
)

// Run is one persisted conversion run.
type Run struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	FileCount         int       `json:"file_count"`
	FileNames         string    `gorm:"type:text" json:"file_names"`
	OriginalCount     int       `json:"original_count"`
	FinalCount        int       `json:"final_count"`
	ActivitiesRemoved int       `json:"activities_removed"`
	DuplicatesRemoved int       `json:"duplicates_removed"`
	SegmentsSkipped   int       `json:"segments_skipped"`
	RemoveActivities  bool      `json:"remove_activities"`
	RemoveDuplicates  bool      `json:"remove_duplicates"`
	SplitFiles        bool      `json:"split_files"`
	ArtifactCount     int       `json:"artifact_count"`
	DurationMs        int64     `json:"duration_ms"`
}

func (Run) TableName() string {
	return "runs"
}

// Store is a gorm-backed run-history repository.
type Store struct {
	db *gorm.DB
}

// Open connects to (or creates) the sqlite database at path and
// migrates the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	return &Store{db: db}, nil
}

// DB exposes the underlying connection for health checks.
func (s *Store) DB() *gorm.DB { return s.db }

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// RecordRun implements services.RunRecorder.
func (s *Store) RecordRun(record services.RunRecord) error {
	run := Run{
		ID:                record.ID,
		CreatedAt:         record.StartedAt,
		FileCount:         len(record.Files),
		FileNames:         strings.Join(record.Files, ", "),
		OriginalCount:     record.OriginalCount,
		FinalCount:        record.FinalCount,
		ActivitiesRemoved: record.ActivitiesRemoved,
		DuplicatesRemoved: record.DuplicatesRemoved,
		SegmentsSkipped:   record.SegmentsSkipped,
		RemoveActivities:  record.RemoveActivities,
		RemoveDuplicates:  record.RemoveDuplicates,
		SplitFiles:        record.SplitFiles,
		ArtifactCount:     record.ArtifactCount,
		DurationMs:        record.Duration.Milliseconds(),
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	return s.db.Create(&run).Error
}

// RecentRuns retrieves runs ordered by most recent first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	var runs []Run
	err := s.db.Order("created_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}

// Compile-time interface check
var _ services.RunRecorder = (*Store)(nil)
