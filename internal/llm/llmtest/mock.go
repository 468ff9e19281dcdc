// Package llmtest provides a function-field mock of llm.Client for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/jonathan/seo-article-writer/internal/llm"
)

// MockClient implements llm.Client for testing. Unset funcs return zero values.
// Calls are recorded in order so tests can assert on call volume.
type MockClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GenerateJSONFunc    func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	StreamContentFunc   func(ctx context.Context, prompt string, tier llm.ModelTier, opts llm.StreamOptions) llm.Stream
	CloseFunc           func() error

	mu    sync.Mutex
	calls []Call
}

// Call records one invocation.
type Call struct {
	Method string
	Prompt string
	Tier   llm.ModelTier
}

// GenerateContent records the call and delegates to GenerateContentFunc.
func (m *MockClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.record("GenerateContent", prompt, tier)
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "", nil
}

// GenerateJSON records the call and delegates to GenerateJSONFunc.
func (m *MockClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.record("GenerateJSON", prompt, tier)
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return "{}", nil
}

// StreamContent records the call and delegates to StreamContentFunc.
func (m *MockClient) StreamContent(ctx context.Context, prompt string, tier llm.ModelTier, opts llm.StreamOptions) llm.Stream {
	m.record("StreamContent", prompt, tier)
	if m.StreamContentFunc != nil {
		return m.StreamContentFunc(ctx, prompt, tier, opts)
	}
	return TextStream()
}

// GetModel returns a fixed model name.
func (m *MockClient) GetModel(_ llm.ModelTier) string {
	return "mock-model"
}

// Close delegates to CloseFunc.
func (m *MockClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Calls returns a copy of the recorded calls.
func (m *MockClient) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// CountCalls returns how many times method was invoked.
func (m *MockClient) CountCalls(method string) int {
	n := 0
	for _, c := range m.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (m *MockClient) record(method, prompt string, tier llm.ModelTier) {
	m.mu.Lock()
	m.calls = append(m.calls, Call{Method: method, Prompt: prompt, Tier: tier})
	m.mu.Unlock()
}

// Stream yields events in order.
func Stream(events ...llm.StreamEvent) llm.Stream {
	return func(yield func(llm.StreamEvent, error) bool) {
		for _, e := range events {
			if !yield(e, nil) {
				return
			}
		}
	}
}

// TextStream yields each fragment as a text event followed by a stream-end event.
func TextStream(fragments ...string) llm.Stream {
	events := make([]llm.StreamEvent, 0, len(fragments)+1)
	for _, f := range fragments {
		events = append(events, llm.StreamEvent{Kind: llm.EventTextGeneration, Text: f})
	}
	events = append(events, llm.StreamEvent{Kind: llm.EventStreamEnd})
	return Stream(events...)
}

// FailingStream yields the given fragments and then err.
func FailingStream(err error, fragments ...string) llm.Stream {
	return func(yield func(llm.StreamEvent, error) bool) {
		for _, f := range fragments {
			if !yield(llm.StreamEvent{Kind: llm.EventTextGeneration, Text: f}, nil) {
				return
			}
		}
		yield(llm.StreamEvent{}, err)
	}
}
