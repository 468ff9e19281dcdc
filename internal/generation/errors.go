package generation

import "fmt"

// Stage names the pipeline stage a GenerationError belongs to.
const Stage = "generation"

// GenerationError is the fatal error returned once the retry budget is spent.
type GenerationError struct {
	Attempts int
	Cause    error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed after %d attempt(s): %v", Stage, e.Attempts, e.Cause)
	}
	return fmt.Sprintf("%s failed after %d attempt(s)", Stage, e.Attempts)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Stage reports the pipeline stage that failed.
func (e *GenerationError) Stage() string {
	return Stage
}
