package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for structural contract violations
var (
	ErrUnknownStep     = errors.New("unknown step")
	ErrEmptyChain      = errors.New("empty chain")
	ErrInvalidRank     = errors.New("invalid rank")
	ErrUnknownQuestion = errors.New("unknown question")
	ErrInvalidOption   = errors.New("invalid option")
)

// UnknownStepError reports a chain entry whose step is absent from the catalog
type UnknownStepError struct {
	Index  int
	StepID string
}

func (e *UnknownStepError) Error() string {
	return fmt.Sprintf("chain entry %d: unknown step %q", e.Index+1, e.StepID)
}

func (e *UnknownStepError) Unwrap() error { return ErrUnknownStep }

// InvalidRankError reports a rank outside 1..MaxRank
type InvalidRankError struct {
	Index int
	Rank  string
}

func (e *InvalidRankError) Error() string {
	return fmt.Sprintf("chain entry %d: invalid rank %q (want 1-%d)", e.Index+1, e.Rank, MaxRank)
}

func (e *InvalidRankError) Unwrap() error { return ErrInvalidRank }
