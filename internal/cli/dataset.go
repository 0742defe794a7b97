package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kkennyy/call-what-ah/internal/dataset"
	"github.com/kkennyy/call-what-ah/internal/model"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Inspect and maintain the dialect dataset",
}

var datasetNormalizeCmd = &cobra.Command{
	Use:   "normalize [input] [output]",
	Short: "Clean up a dialect dataset",
	Long: `Normalize trims citation fields, drops citations missing a url, title or
access date, and removes duplicate alternatives and alternatives equal to
the preferred term.

input is a file path or http(s) URL (default: data.dialects, then the
built-in dataset). output is a file path; .json writes JSON, anything else
YAML (default: stdout as YAML).`,
	Args: cobra.MaximumNArgs(2),
	RunE: runDatasetNormalize,
}

var dialectsCmd = &cobra.Command{
	Use:   "dialects",
	Short: "List the dialects in the dataset",
	Args:  cobra.NoArgs,
	RunE:  runDialects,
}

var dialectsUseCmd = &cobra.Command{
	Use:   "use <dialectID>",
	Short: "Save the dialect used when --dialect is not given",
	Args:  cobra.ExactArgs(1),
	RunE:  runDialectsUse,
}

func init() {
	rootCmd.AddCommand(datasetCmd, dialectsCmd)
	datasetCmd.AddCommand(datasetNormalizeCmd)
	dialectsCmd.AddCommand(dialectsUseCmd)
}

func runDatasetNormalize(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute+config.HTTP.Timeout)
	defer cancel()

	input := config.Data.Dialects
	if len(args) > 0 {
		input = args[0]
	}
	data, err := newLoader().LoadDialects(ctx, input)
	if err != nil {
		return err
	}

	normalized, stats := dataset.Normalize(data)

	name := dataset.DialectsFile
	var out io.Writer = os.Stdout
	if len(args) > 1 {
		name = args[1]
		f, createErr := os.Create(name)
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
	if err := dataset.Write(out, name, normalized); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ Normalized %d concepts, %d variants\n", stats.Concepts, stats.Variants)
	fmt.Fprintf(os.Stderr, "  Citations dropped:    %d\n", stats.SourcesDropped)
	fmt.Fprintf(os.Stderr, "  Alternatives dropped: %d\n", stats.AlternativesDropped)
	return nil
}

func runDialects(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute+config.HTTP.Timeout)
	defer cancel()

	bundle, err := loadBundle(ctx)
	if err != nil {
		return err
	}
	p, err := loadPrefs()
	if err != nil {
		return err
	}
	current := config.Defaults.Dialect
	if p.Dialect != "" {
		current = p.Dialect
	}

	for _, d := range bundle.Dialects.Dialects {
		marker := " "
		if d.ID == current {
			marker = "*"
		}
		fmt.Printf("%s %-24s %s\n", marker, d.ID, d.Label)
	}
	return nil
}

func runDialectsUse(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute+config.HTTP.Timeout)
	defer cancel()

	dialectID := args[0]
	bundle, err := loadBundle(ctx)
	if err != nil {
		return err
	}
	if dialectID != model.DialectCustom && !bundle.Dialects.HasDialect(dialectID) {
		return fmt.Errorf("unknown dialect %q (see 'cwah dialects')", dialectID)
	}

	store, err := prefsStore()
	if err != nil {
		return err
	}
	if _, err := store.SetDialect(dialectID); err != nil {
		return err
	}
	fmt.Printf("✓ Default dialect set to %s (%s)\n", dialectID, store.Path())
	return nil
}
