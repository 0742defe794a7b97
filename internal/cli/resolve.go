package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/kkennyy/call-what-ah/internal/model"
	"github.com/kkennyy/call-what-ah/internal/pipeline"
)

var (
	resolveFlags  stateFlags
	questionFlags stateFlags
	answerFlags   stateFlags
	changeFlags   stateFlags

	resolveTimeout time.Duration
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <chain>",
	Short: "Say what to call a relative",
	Long: `Resolve a relation chain to the kinship term for that person.

A chain is a comma-separated list of step ids, from you outwards. Rankable
steps accept a birth rank as step:N.

Example:
  cwah resolve father,olderBrother
  cwah resolve father,olderBrother:2 --dialect cantonese
  cwah resolve father,brotherAgeUnknown,son --fact cousinAgeRelative=older
  cwah resolve father,olderBrother --reverse --sex male --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

var questionsCmd = &cobra.Command{
	Use:   "questions <chain>",
	Short: "List the questions that block a chain",
	Long: `List the disambiguation questions for a chain, including questions that
are already answered by --fact. Use 'cwah answer' to apply an option.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuestions,
}

var answerCmd = &cobra.Command{
	Use:   "answer <chain> <questionID> <option>",
	Short: "Answer a question and resolve again",
	Long: `Apply option <option> (as numbered by 'cwah questions') of question
<questionID>, then resolve the updated chain. The command line that
reproduces the new state is printed to stderr.

Example:
  cwah answer father,brotherAgeUnknown brother-age-1 0
  cwah answer father,olderBrother,son cousin-age-relative 1`,
	Args: cobra.ExactArgs(3),
	RunE: runAnswer,
}

var changeCmd = &cobra.Command{
	Use:   "change <chain> <questionID>",
	Short: "Reopen an answered question",
	Args:  cobra.ExactArgs(2),
	RunE:  runChange,
}

func init() {
	rootCmd.AddCommand(resolveCmd, questionsCmd, answerCmd, changeCmd)

	resolveFlags.register(resolveCmd)
	questionFlags.register(questionsCmd)
	answerFlags.register(answerCmd)
	changeFlags.register(changeCmd)

	rootCmd.PersistentFlags().DurationVar(&resolveTimeout, "timeout", 2*time.Minute, "overall timeout")
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	result, err := resolveWith(ctx, &resolveFlags, args[0])
	if err != nil {
		return err
	}
	return pipeline.Render(os.Stdout, result, resolveFlags.outputFormat())
}

func runQuestions(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	result, err := resolveWith(ctx, &questionFlags, args[0])
	if err != nil {
		return err
	}

	if questionFlags.outputFormat() == pipeline.FormatJSON {
		return pipeline.RenderJSON(os.Stdout, result.Questions)
	}

	if len(result.Questions) == 0 {
		fmt.Println("No questions: the chain is fully resolved.")
		return nil
	}
	for _, q := range result.Questions {
		if q.Resolved {
			fmt.Printf("%s: %s\n    answered: %s\n", q.ID, q.Prompt, q.CurrentLabel)
			continue
		}
		fmt.Printf("%s: %s\n", q.ID, q.Prompt)
		for i, opt := range q.Options {
			fmt.Printf("    %d) %s\n", i, opt.Label)
		}
	}
	return nil
}

func runAnswer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	option, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("option must be a number, got %q", args[2])
	}

	engine, state, err := engineAndState(ctx, &answerFlags, args[0])
	if err != nil {
		return err
	}
	next, err := engine.Answer(ctx, state, args[1], option)
	if err != nil {
		return err
	}

	result, err := engine.Resolve(ctx, next)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Next: %s\n\n", commandLine(next))
	return pipeline.Render(os.Stdout, result, answerFlags.outputFormat())
}

func runChange(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	engine, state, err := engineAndState(ctx, &changeFlags, args[0])
	if err != nil {
		return err
	}
	next, err := engine.Change(ctx, state, args[1])
	if err != nil {
		return err
	}

	result, err := engine.Resolve(ctx, next)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Next: %s\n\n", commandLine(next))
	return pipeline.Render(os.Stdout, result, changeFlags.outputFormat())
}

// engineAndState builds the engine and the state for chainSpec
func engineAndState(ctx context.Context, flags *stateFlags, chainSpec string) (*pipeline.Engine, model.State, error) {
	p, err := loadPrefs()
	if err != nil {
		return nil, model.State{}, err
	}
	state, err := flags.state(chainSpec, p)
	if err != nil {
		return nil, model.State{}, err
	}
	engine, err := newEngine(ctx)
	if err != nil {
		return nil, model.State{}, err
	}
	return engine, state, nil
}

func resolveWith(ctx context.Context, flags *stateFlags, chainSpec string) (*pipeline.Result, error) {
	engine, state, err := engineAndState(ctx, flags, chainSpec)
	if err != nil {
		return nil, err
	}
	return engine.Resolve(ctx, state)
}
