package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kkennyy/call-what-ah/internal/model"
	"github.com/kkennyy/call-what-ah/internal/pipeline"
)

// Resolver resolves one application state
type Resolver interface {
	Resolve(ctx context.Context, state model.State) (*pipeline.Result, error)
}

// ResolveJob resolves one batch line
type ResolveJob struct {
	Line     string
	State    model.State
	Resolver Resolver
}

// Execute executes the resolution
func (j *ResolveJob) Execute(ctx context.Context) Result {
	res, err := j.Resolver.Resolve(ctx, j.State)
	return &ResolveResult{
		Line:   j.Line,
		State:  j.State,
		Result: res,
		Error:  err,
	}
}

// ResolveResult is the outcome of one batch line
type ResolveResult struct {
	Line   string           `json:"line"`
	State  model.State      `json:"state"`
	Result *pipeline.Result `json:"result,omitempty"`
	Error  error            `json:"-"`
}

// GetError returns the resolution error
func (r *ResolveResult) GetError() error {
	return r.Error
}

// BatchProcessor resolves many chain specs concurrently
type BatchProcessor struct {
	resolver    Resolver
	concurrency int
	defaults    model.State
	logger      *zap.Logger
}

// NewBatchProcessor creates a batch processor. defaults supplies the
// dialect, sex and overrides for lines that do not set them.
func NewBatchProcessor(resolver Resolver, concurrency int, defaults model.State, logger *zap.Logger) *BatchProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchProcessor{
		resolver:    resolver,
		concurrency: concurrency,
		defaults:    defaults,
		logger:      logger,
	}
}

// ProcessLines resolves each line. Results keep input order; lines that
// fail to parse carry their parse error.
func (b *BatchProcessor) ProcessLines(ctx context.Context, lines []string) []*ResolveResult {
	if len(lines) == 0 {
		return []*ResolveResult{}
	}

	out := make([]*ResolveResult, len(lines))
	jobs := make([]Job, 0, len(lines))
	slots := make([]int, 0, len(lines))
	for i, line := range lines {
		state, err := ParseLine(line, b.defaults)
		if err != nil {
			out[i] = &ResolveResult{Line: line, Error: err}
			continue
		}
		jobs = append(jobs, &ResolveJob{Line: line, State: state, Resolver: b.resolver})
		slots = append(slots, i)
	}

	results := Run(ctx, b.concurrency, jobs)
	for i, slot := range slots {
		if i < len(results) {
			out[slot] = results[i].(*ResolveResult)
			continue
		}
		out[slot] = &ResolveResult{Line: lines[slot], Error: ctx.Err()}
	}

	failed := 0
	for _, r := range out {
		if r.Error != nil {
			failed++
			b.logger.Warn("batch line failed", zap.String("line", r.Line), zap.Error(r.Error))
		}
	}
	b.logger.Info("batch complete", zap.Int("lines", len(lines)), zap.Int("failed", failed))

	return out
}

// ProcessFile reads chain specs from a file and resolves them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*ResolveResult, error) {
	lines, err := ReadLinesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read chains: %w", err)
	}
	return b.ProcessLines(ctx, lines), nil
}

// ParseLine parses "<chain> [dialect=<id>] [sex=<sex>] [reverse] [fact=<key>=<value>]..."
// on top of defaults.
func ParseLine(line string, defaults model.State) (model.State, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return model.State{}, model.ErrEmptyChain
	}

	chain, err := model.ParseChain(fields[0])
	if err != nil {
		return model.State{}, err
	}

	state := defaults
	state.Chain = chain
	state.Facts = defaults.Facts.Clone()
	if state.DialectID == "" {
		state.DialectID = model.DialectStandard
	}

	for _, field := range fields[1:] {
		key, value, hasValue := strings.Cut(field, "=")
		switch key {
		case "dialect":
			state.DialectID = value
		case "sex":
			sex, err := model.ParseSex(value)
			if err != nil {
				return model.State{}, err
			}
			state.Sex = sex
		case "reverse":
			state.Reverse = true
			if hasValue {
				b, err := strconv.ParseBool(value)
				if err != nil {
					return model.State{}, fmt.Errorf("invalid reverse %q: %w", value, err)
				}
				state.Reverse = b
			}
		case "fact":
			k, v, err := model.ParseFact(value)
			if err != nil {
				return model.State{}, err
			}
			state.Facts = state.Facts.With(k, v)
		default:
			return model.State{}, fmt.Errorf("unknown option %q", field)
		}
	}
	return state, nil
}

// ReadLinesFromFile reads chain specs (one per line), skipping blanks,
// comments and duplicates
func ReadLinesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var lines []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return lines, nil
}
