// Package scheduler runs watch mode: a cron-scheduled scan of a drop
// directory, converting newly arrived export files.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/alexkarpov/timeline-convert/internal/importers"
	"github.com/alexkarpov/timeline-convert/internal/services"
)

// WatchOptions configure each conversion triggered by the watcher.
type WatchOptions struct {
	RemoveActivities bool
	RemoveDuplicates bool
	SplitFiles       bool
}

// Watcher polls an input directory on a cron schedule and converts each
// batch of new JSON files into the output directory.
type Watcher struct {
	service   *services.ConvertService
	inputDir  string
	outputDir string
	schedule  string
	options   WatchOptions

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool

	// scanMu serializes scans: cron runs each tick in its own
	// goroutine, and processed is mutated in place.
	scanMu sync.Mutex

	// processed maps file name to the modtime last converted, so a
	// re-saved file is picked up again.
	processed map[string]time.Time
}

func NewWatcher(service *services.ConvertService, inputDir, outputDir, schedule string, options WatchOptions) *Watcher {
	return &Watcher{
		service:   service,
		inputDir:  inputDir,
		outputDir: outputDir,
		schedule:  schedule,
		options:   options,
		cron:      cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
		processed: make(map[string]time.Time),
	}
}

// Start begins scheduled scans. An immediate scan runs first so files
// already present are not delayed by a full schedule interval.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return nil
	}

	if w.inputDir == "" || w.outputDir == "" {
		return fmt.Errorf("watch mode requires both input and output directories")
	}
	if _, err := os.Stat(w.inputDir); err != nil {
		return fmt.Errorf("input directory not accessible: %w", err)
	}
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	entryID, err := w.cron.AddFunc(w.schedule, w.runScan)
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", w.schedule, err)
	}
	w.entryID = entryID

	w.cron.Start()
	w.isRunning = true

	logrus.WithFields(logrus.Fields{
		"input":    w.inputDir,
		"output":   w.outputDir,
		"schedule": w.schedule,
	}).Info("watch mode started")

	go w.runScan()

	// Monitor for context cancellation
	go func() {
		<-ctx.Done()
		w.Stop()
	}()

	return nil
}

// Stop halts the schedule and waits for a running scan to finish.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.isRunning {
		return
	}

	stopCtx := w.cron.Stop()
	<-stopCtx.Done()

	// The immediate first scan is not a cron job; wait for it too.
	w.scanMu.Lock()
	w.scanMu.Unlock()

	w.isRunning = false

	logrus.Info("watch mode stopped")
}

func (w *Watcher) runScan() {
	w.scanMu.Lock()
	defer w.scanMu.Unlock()

	batch, err := w.collectNewFiles()
	if err != nil {
		logrus.WithError(err).Error("watch scan failed")
		return
	}
	if len(batch) == 0 {
		return
	}

	names := make([]string, len(batch))
	for i, f := range batch {
		names[i] = f.Name
	}
	logrus.WithField("files", strings.Join(names, ", ")).Info("converting new files")

	summary, err := w.service.Convert(services.ConvertRequest{
		Files:            batch,
		BaseName:         fmt.Sprintf("timeline_%s", time.Now().Format("20060102_150405")),
		RemoveActivities: w.options.RemoveActivities,
		RemoveDuplicates: w.options.RemoveDuplicates,
		SplitFiles:       w.options.SplitFiles,
	})
	if err != nil {
		// The batch is still marked processed; a bad file would
		// otherwise fail again on every tick.
		logrus.WithError(err).Error("conversion failed")
		return
	}

	for _, artifact := range summary.Artifacts {
		outPath := filepath.Join(w.outputDir, artifact.Name)
		if err := os.WriteFile(outPath, artifact.Data, 0644); err != nil {
			logrus.WithError(err).Errorf("failed to write %s", outPath)
			return
		}
	}

	logrus.WithFields(logrus.Fields{
		"records":   summary.FinalCount,
		"artifacts": len(summary.Artifacts),
	}).Info("conversion complete")
}

// collectNewFiles reads new or modified *.json files sequentially in
// name order, marking each as processed.
func (w *Watcher) collectNewFiles() ([]importers.InputFile, error) {
	entries, err := os.ReadDir(w.inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var batch []importers.InputFile
	for _, name := range names {
		path := filepath.Join(w.inputDir, name)
		info, err := os.Stat(path)
		if err != nil {
			logrus.WithError(err).Warnf("skipping %s", name)
			continue
		}
		if last, ok := w.processed[name]; ok && !info.ModTime().After(last) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			logrus.WithError(err).Warnf("skipping %s", name)
			continue
		}
		w.processed[name] = info.ModTime()
		batch = append(batch, importers.InputFile{Name: name, Data: data})
	}

	return batch, nil
}
