package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexkarpov/timeline-convert/internal/config"
	"github.com/alexkarpov/timeline-convert/internal/history"
	"github.com/alexkarpov/timeline-convert/internal/scheduler"
	"github.com/alexkarpov/timeline-convert/internal/services"
)

// WatchCommand runs continuous conversion of a drop directory.
type WatchCommand struct {
	InputDir         string
	OutputDir        string
	Schedule         string
	RemoveActivities bool
	RemoveDuplicates bool
	SplitFiles       bool
	HistoryPath      string
}

func NewWatchCommand() *WatchCommand {
	return &WatchCommand{}
}

func (cmd *WatchCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)

	fs.StringVar(&cmd.InputDir, "in", "", "Directory to watch for new JSON export files (required)")
	fs.StringVar(&cmd.OutputDir, "out", "", "Directory for generated artifacts (required)")
	fs.StringVar(&cmd.Schedule, "schedule", config.DefaultWatchSchedule, "Cron schedule for directory scans")
	fs.BoolVar(&cmd.RemoveActivities, "remove-activities", false, "Drop movement records, keeping place visits only")
	fs.BoolVar(&cmd.RemoveDuplicates, "remove-duplicates", false, "Merge duplicate place visits")
	fs.BoolVar(&cmd.SplitFiles, "split", false, "Split CSV/KML output into files of at most 2000 records")
	fs.StringVar(&cmd.HistoryPath, "history-db", "", "Record runs in the given sqlite history database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s watch -in <dir> -out <dir> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Watch a directory and convert newly arrived location-history exports.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.InputDir == "" {
		return fmt.Errorf("required flag -in not provided")
	}
	if cmd.OutputDir == "" {
		return fmt.Errorf("required flag -out not provided")
	}

	return nil
}

func (cmd *WatchCommand) Run() error {
	var recorder services.RunRecorder
	if cmd.HistoryPath != "" {
		store, err := history.Open(cmd.HistoryPath)
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer store.Close()
		recorder = store
	}

	service := services.NewConvertService(recorder)
	watcher := scheduler.NewWatcher(service, cmd.InputDir, cmd.OutputDir, cmd.Schedule, scheduler.WatchOptions{
		RemoveActivities: cmd.RemoveActivities,
		RemoveDuplicates: cmd.RemoveDuplicates,
		SplitFiles:       cmd.SplitFiles,
	})

	if err := watcher.Start(context.Background()); err != nil {
		return err
	}
	defer watcher.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return nil
}
