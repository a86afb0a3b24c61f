package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexkarpov/timeline-convert/internal/archive"
	"github.com/alexkarpov/timeline-convert/internal/config"
	"github.com/alexkarpov/timeline-convert/internal/history"
	"github.com/alexkarpov/timeline-convert/internal/importers"
	"github.com/alexkarpov/timeline-convert/internal/services"
)

// ConvertCommand handles one-shot conversion of exported location
// history files into CSV/KML/JSON artifacts.
type ConvertCommand struct {
	InputPaths       []string
	OutputDir        string
	BaseName         string
	RemoveActivities bool
	RemoveDuplicates bool
	SplitFiles       bool
	ZipOutput        bool
	HistoryPath      string
	Verbose          bool
	DryRun           bool
}

func NewConvertCommand() *ConvertCommand {
	return &ConvertCommand{}
}

func (cmd *ConvertCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)

	fs.StringVar(&cmd.OutputDir, "out", ".", "Output directory for the generated artifacts")
	fs.StringVar(&cmd.BaseName, "base", config.DefaultBaseName, "Base name for output artifacts (e.g. 'trip' -> trip.csv, trip.kml, trip.json)")
	fs.BoolVar(&cmd.RemoveActivities, "remove-activities", false, "Drop movement records, keeping place visits only")
	fs.BoolVar(&cmd.RemoveDuplicates, "remove-duplicates", false, "Merge duplicate place visits (by place identifier, then by coordinate)")
	fs.BoolVar(&cmd.SplitFiles, "split", false, "Split CSV/KML output into files of at most 2000 records")
	fs.BoolVar(&cmd.ZipOutput, "zip", false, "Package all artifacts into a single zip file")
	fs.StringVar(&cmd.HistoryPath, "history-db", "", "Record this run in the given sqlite history database")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose output")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show counts without writing any files")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s convert [options] <file.json> [file2.json ...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Convert exported location-history JSON files to CSV, KML and JSON.\n\n")
		fmt.Fprintf(os.Stderr, "Recognized input shapes: a top-level segment array, an object with\n")
		fmt.Fprintf(os.Stderr, "'semanticSegments', or a legacy object with 'timelineObjects'.\n")
		fmt.Fprintf(os.Stderr, "Files are processed in the order given.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Convert a single export:\n")
		fmt.Fprintf(os.Stderr, "  %s convert location-history.json\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Merge two exports, dropping movement records and duplicates:\n")
		fmt.Fprintf(os.Stderr, "  %s convert -remove-activities -remove-duplicates old.json new.json\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Preview counts without writing anything:\n")
		fmt.Fprintf(os.Stderr, "  %s convert -dry-run -verbose export.json\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd.InputPaths = fs.Args()
	if len(cmd.InputPaths) == 0 {
		return fmt.Errorf("no input files provided")
	}

	return nil
}

func (cmd *ConvertCommand) Run() error {
	fmt.Println("Timeline Convert")
	fmt.Println("================")

	if cmd.DryRun {
		fmt.Println("DRY RUN MODE - No files will be written")
		fmt.Println()
	}

	// Files are read one at a time, in argument order.
	files := make([]importers.InputFile, 0, len(cmd.InputPaths))
	for _, path := range cmd.InputPaths {
		if cmd.Verbose {
			fmt.Printf("Reading %s\n", path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		files = append(files, importers.InputFile{Name: filepath.Base(path), Data: data})
	}

	var recorder services.RunRecorder
	if cmd.HistoryPath != "" && !cmd.DryRun {
		store, err := history.Open(cmd.HistoryPath)
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer store.Close()
		recorder = store
	}

	service := services.NewConvertService(recorder)
	summary, err := service.Convert(services.ConvertRequest{
		Files:            files,
		BaseName:         cmd.BaseName,
		RemoveActivities: cmd.RemoveActivities,
		RemoveDuplicates: cmd.RemoveDuplicates,
		SplitFiles:       cmd.SplitFiles,
	})
	if err != nil {
		return err
	}

	fmt.Println("\n=== Conversion Summary ===")
	fmt.Printf("Records found: %d\n", summary.OriginalCount)
	fmt.Printf("Activities removed: %d\n", summary.ActivitiesRemoved)
	fmt.Printf("Duplicates removed: %d\n", summary.DuplicatesRemoved)
	fmt.Printf("Records kept: %d\n", summary.FinalCount)
	if summary.SegmentsSkipped > 0 {
		fmt.Printf("Unrecognized segments skipped: %d\n", summary.SegmentsSkipped)
	}

	if len(summary.Diagnostics) > 0 {
		fmt.Printf("\n%d segments could not be converted:\n", len(summary.Diagnostics))
		for _, d := range summary.Diagnostics {
			fmt.Printf("  [WARN] %s segment %d: %s\n", d.File, d.Segment, d.Message)
		}
	}

	if cmd.DryRun {
		fmt.Println("\nDry run complete. Use without -dry-run to write output.")
		return nil
	}

	absOutputDir, err := filepath.Abs(cmd.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for output: %w", err)
	}
	if err := os.MkdirAll(absOutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if cmd.ZipOutput {
		blob, err := archive.Zip(summary.Artifacts)
		if err != nil {
			return err
		}
		zipPath := filepath.Join(absOutputDir, cmd.BaseName+".zip")
		if err := os.WriteFile(zipPath, blob, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", zipPath, err)
		}
		fmt.Printf("\nWrote %s (%d files)\n", zipPath, len(summary.Artifacts))
	} else {
		fmt.Println()
		for _, artifact := range summary.Artifacts {
			outPath := filepath.Join(absOutputDir, artifact.Name)
			if err := os.WriteFile(outPath, artifact.Data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}
			if cmd.Verbose {
				fmt.Printf("Wrote %s (%d bytes)\n", outPath, artifact.Size())
			}
		}
		fmt.Printf("Wrote %d files to %s\n", len(summary.Artifacts), absOutputDir)
	}

	fmt.Println("\nConversion complete!")
	return nil
}
