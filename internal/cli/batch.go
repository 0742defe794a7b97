package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kkennyy/call-what-ah/internal/pipeline"
	"github.com/kkennyy/call-what-ah/internal/worker"
)

var (
	concurrency  int
	batchOutput  string
	batchFormat  string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Resolve many chains from a file in parallel",
	Long: `Batch resolves one chain per line concurrently:
- Lines are "<chain> [dialect=<id>] [sex=<sex>] [reverse] [fact=<key>=<value>]..."
- Blank lines, # comments and duplicate lines are skipped
- Results keep the input order

Example:
  cwah batch chains.txt
  cwah batch chains.txt --concurrency 8 --format json --output results.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: concurrency.workers)")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "write results to this file instead of stdout")
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", "", "output format: text, json or markdown (default: output.format)")
	batchCmd.Flags().DurationVar(&batchTimeout, "batch-timeout", 10*time.Minute, "total timeout for batch processing")
}

// batchLine is one result as written in JSON output
type batchLine struct {
	Line   string           `json:"line"`
	Error  string           `json:"error,omitempty"`
	Result *pipeline.Result `json:"result,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) (err error) {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	workers := concurrency
	if workers <= 0 {
		workers = config.Concurrency.Workers
	}
	format := batchFormat
	if format == "" {
		format = config.Output.Format
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  call-what-ah Batch Resolution\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", workers)
	fmt.Fprintf(os.Stderr, "  Format:       %s\n", format)
	fmt.Fprintf(os.Stderr, "\n")

	p, err := loadPrefs()
	if err != nil {
		return err
	}
	defaults, err := defaultState(p)
	if err != nil {
		return err
	}
	engine, err := newEngine(ctx)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(engine, workers, defaults, logger)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	var out io.Writer = os.Stdout
	if batchOutput != "" {
		f, createErr := os.Create(batchOutput)
		if createErr != nil {
			return fmt.Errorf("create output: %w", createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close output: %w", closeErr)
			}
		}()
		out = f
	}

	successCount, failureCount := 0, 0
	lines := make([]batchLine, 0, len(results))
	for _, r := range results {
		bl := batchLine{Line: r.Line, Result: r.Result}
		if r.Error != nil {
			failureCount++
			bl.Error = r.Error.Error()
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Line, r.Error)
		} else {
			successCount++
			if format != pipeline.FormatJSON {
				if err := pipeline.Render(out, r.Result, format); err != nil {
					return fmt.Errorf("render %q: %w", r.Line, err)
				}
				fmt.Fprintln(out)
			}
		}
		lines = append(lines, bl)
	}
	if format == pipeline.FormatJSON {
		if err := pipeline.RenderJSON(out, lines); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d chains\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	if batchOutput != "" {
		fmt.Fprintf(os.Stderr, "  Output:    %s\n", batchOutput)
	}
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}
