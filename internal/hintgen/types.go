package hintgen

import (
	"fmt"

	"github.com/abhisek/hintz/internal/strategy"
)

// Request carries one failing attempt through the tutoring pipeline.
type Request struct {
	Problem     string
	LearnerCode string
	TestFailure string
}

// Validate checks that every field carries usable text.
func (r Request) Validate() error {
	if r.Problem == "" {
		return fmt.Errorf("problem text is empty")
	}
	if r.LearnerCode == "" {
		return fmt.Errorf("learner code is empty")
	}
	if r.TestFailure == "" {
		return fmt.Errorf("test failure text is empty")
	}
	return nil
}

// GenerationError reports a failed hint generation for one strategy.
type GenerationError struct {
	Strategy strategy.Strategy
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("hint generation (%s): %v", e.Strategy, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
