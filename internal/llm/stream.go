package llm

import (
	"fmt"
	"iter"
)

// EventKind tags a streamed event.
type EventKind string

const (
	// EventTextGeneration carries a fragment of generated text.
	EventTextGeneration EventKind = "text-generation"
	// EventStreamEnd marks the end of a stream; it carries no text.
	EventStreamEnd EventKind = "stream-end"
)

// StreamEvent is one element of a streamed response.
type StreamEvent struct {
	Kind EventKind
	Text string
}

// Stream is a lazy, finite, non-restartable sequence of events in arrival order.
// A non-nil error terminates the sequence.
type Stream = iter.Seq2[StreamEvent, error]

// Turn is a prior conversation message sent ahead of the prompt.
type Turn struct {
	Role    string // "user" or "assistant"
	Content string
}

// StreamOptions tunes a single streaming request.
type StreamOptions struct {
	Temperature *float32 // nil uses the client's configured temperature
	History     []Turn
}

// StreamError represents a failure while opening or consuming a stream.
type StreamError struct {
	Provider Provider
	Message  string
	Cause    error
}

func (e *StreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s stream error: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s stream error: %s", e.Provider, e.Message)
}

func (e *StreamError) Unwrap() error {
	return e.Cause
}

// failedStream yields a single error.
func failedStream(err error) Stream {
	return func(yield func(StreamEvent, error) bool) {
		yield(StreamEvent{}, err)
	}
}
