package enrich

import "fmt"

// Error records why one enrichment sub-operation fell back.
type Error struct {
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// recoverAs turns a panic in a sub-operation into an *Error so its fallback applies.
// It must be deferred directly.
func recoverAs(op string, err *error) {
	if r := recover(); r != nil {
		*err = &Error{Op: op, Message: "service call panicked", Cause: fmt.Errorf("%v", r)}
	}
}
