package search

import (
	"errors"
	"fmt"
)

var (
	// ErrNoResultsFound means the page has no results section at all.
	// A results section with zero entries is not an error.
	ErrNoResultsFound = errors.New("no results found")

	// ErrCaptcha means the response was redirected to a bot challenge.
	ErrCaptcha = errors.New("captcha challenge")

	// ErrSafeSearchRestriction means the engine refuses the requested
	// safe search level.
	ErrSafeSearchRestriction = errors.New("safe search level not supported")
)

// EngineError attributes an error to an engine.
type EngineError struct {
	Engine string
	Err    error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: %v", e.Engine, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

func engineErr(engine string, err error) error {
	return &EngineError{Engine: engine, Err: err}
}
