package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/verita-labs/verita-cli/internal/adapters/driven/filewatcher"
	"github.com/verita-labs/verita-cli/internal/core/domain"
	"github.com/verita-labs/verita-cli/internal/core/ports/driving"
	"github.com/verita-labs/verita-cli/internal/ingest/pdf"
	"github.com/verita-labs/verita-cli/internal/logger"
)

var ingestWatch bool

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Build the document index from the corpus directory",
	Long: `Scans the corpus directory, extracts evidence from every supported
document type, and builds a fresh searchable index.

The corpus directory is partitioned by type: pdf/, docx/, pptx/,
xlsx/ and txt/ subdirectories.`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "re-ingest automatically when documents change")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}

	ctx := context.Background()
	if err := rebuildOnce(ctx, cmd); err != nil {
		return err
	}

	if !ingestWatch {
		return nil
	}
	return watchAndRebuild(cmd)
}

func rebuildOnce(ctx context.Context, cmd *cobra.Command) error {
	stats, err := ingestService.Rebuild(ctx)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoDocumentsIndexed):
			return fmt.Errorf("no documents found under %s; expected pdf/, docx/, pptx/, xlsx/ or txt/ subdirectories", corpusDir)
		case errors.Is(err, pdf.ErrPDFToolNotFound):
			return fmt.Errorf("%w\n%s", err, pdf.InstallInstructions())
		default:
			return err
		}
	}

	printStats(cmd, stats)
	return nil
}

func printStats(cmd *cobra.Command, stats *driving.IngestStats) {
	types := make([]string, 0, len(stats.Records))
	for t := range stats.Records {
		types = append(types, t)
	}
	sort.Strings(types)

	cmd.Println("Indexed:")
	for _, t := range types {
		cmd.Printf("  %-5s %d records\n", t, stats.Records[t])
	}
	cmd.Printf("Total: %d chunks\n", stats.Chunks)
}

// watchAndRebuild re-ingests on every debounced corpus change until
// interrupted.
func watchAndRebuild(cmd *cobra.Command) error {
	watcher, err := filewatcher.New(filewatcher.DefaultDebounce)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	triggers, err := watcher.Watch(ctx, corpusDir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", corpusDir, err)
	}

	cmd.Printf("Watching %s for changes (ctrl-c to stop)\n", corpusDir)

	for range triggers {
		if err := rebuildOnce(ctx, cmd); err != nil {
			if errors.Is(err, domain.ErrRebuildInProgress) {
				continue
			}
			logger.Warn("re-ingest: %v", err)
		}
	}
	return nil
}
