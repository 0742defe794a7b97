package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kkennyy/call-what-ah/internal/model"
)

var pinSourceDialect string

// pinCmd represents the pin command
var pinCmd = &cobra.Command{
	Use:   "pin <conceptID> <term>",
	Short: "Pin the term you use for a concept",
	Long: `Pin stores your own term for a concept. Pinned terms are recommended when
resolving in the custom dialect and are saved in the preferences file.

Use 'cwah resolve <chain>' to find a chain's concept id. An empty term ("")
removes the pin.

Example:
  cwah pin paternal_uncle_elder 大伯
  cwah pin maternal_uncle 舅父 --source-dialect cantonese
  cwah pin paternal_uncle_elder ""`,
	Args: cobra.ExactArgs(2),
	RunE: runPin,
}

var pinsCmd = &cobra.Command{
	Use:   "pins",
	Short: "List pinned terms",
	Args:  cobra.NoArgs,
	RunE:  runPins,
}

func init() {
	rootCmd.AddCommand(pinCmd, pinsCmd)
	pinCmd.Flags().StringVar(&pinSourceDialect, "source-dialect", "", "dialect the pinned term was taken from")
}

func runPin(cmd *cobra.Command, args []string) error {
	store, err := prefsStore()
	if err != nil {
		return err
	}

	conceptID, term := args[0], args[1]
	override := model.Override{Term: term, SourceDialectID: pinSourceDialect}
	if _, err := store.Pin(conceptID, override); err != nil {
		return err
	}

	if term == "" {
		fmt.Printf("✓ Removed pin for %s\n", conceptID)
	} else {
		fmt.Printf("✓ Pinned %s -> %s (%s)\n", conceptID, term, store.Path())
		fmt.Printf("\nResolve with --dialect %s to use it.\n", model.DialectCustom)
	}
	return nil
}

func runPins(cmd *cobra.Command, args []string) error {
	p, err := loadPrefs()
	if err != nil {
		return err
	}
	if len(p.Overrides) == 0 {
		fmt.Println("No pinned terms.")
		return nil
	}

	ids := make([]string, 0, len(p.Overrides))
	for id := range p.Overrides {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		o := p.Overrides[id]
		if o.SourceDialectID != "" {
			fmt.Printf("%-40s %s (from %s)\n", id, o.Term, o.SourceDialectID)
			continue
		}
		fmt.Printf("%-40s %s\n", id, o.Term)
	}
	return nil
}
