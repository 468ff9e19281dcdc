package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sleepRecorder struct {
	calls []time.Duration
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.calls = append(s.calls, d)
	return nil
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	rec := &sleepRecorder{}
	calls := 0

	got, err := Do(context.Background(), Policy{MaxAttempts: 3, Delay: 2 * time.Second, Sleep: rec.sleep},
		func(_ context.Context, _ int) (string, error) {
			calls++
			return "ok", nil
		})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 1, calls)
	assert.Empty(t, rec.calls)
}

func TestDo_PersistentFailure(t *testing.T) {
	rec := &sleepRecorder{}
	boom := errors.New("boom")
	var attempts []int

	_, err := Do(context.Background(), Policy{MaxAttempts: 3, Delay: 2 * time.Second, Sleep: rec.sleep},
		func(_ context.Context, attempt int) (int, error) {
			attempts = append(attempts, attempt)
			return 0, boom
		})

	require.Error(t, err)
	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 3, exhausted.Attempts)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []int{1, 2, 3}, attempts)
	// fixed delay between attempts, none after the last
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, rec.calls)
}

func TestDo_RecoversOnSecondAttempt(t *testing.T) {
	rec := &sleepRecorder{}
	var retried []int

	got, err := Do(context.Background(), Policy{
		MaxAttempts: 3,
		Delay:       time.Second,
		Sleep:       rec.sleep,
		OnRetry:     func(attempt int, _ error) { retried = append(retried, attempt) },
	}, func(_ context.Context, attempt int) (int, error) {
		if attempt == 1 {
			return 0, errors.New("transient")
		}
		return attempt, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, got)
	assert.Equal(t, []int{1}, retried)
	assert.Len(t, rec.calls, 1)
}

func TestDo_NonRetryableStopsImmediately(t *testing.T) {
	rec := &sleepRecorder{}
	fatal := errors.New("invalid api key")
	calls := 0

	_, err := Do(context.Background(), Policy{
		MaxAttempts: 3,
		Sleep:       rec.sleep,
		Retryable:   func(err error) bool { return !errors.Is(err, fatal) },
	}, func(_ context.Context, _ int) (int, error) {
		calls++
		return 0, fatal
	})

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 1, exhausted.Attempts)
	assert.Equal(t, 1, calls)
	assert.Empty(t, rec.calls)
}

func TestDo_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), Policy{}, func(_ context.Context, _ int) (int, error) {
		calls++
		return 0, errors.New("x")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_CancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0

	_, err := Do(ctx, Policy{MaxAttempts: 3, Delay: time.Hour}, func(_ context.Context, _ int) (int, error) {
		calls++
		return 0, errors.New("x")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestSleep_Elapses(t *testing.T) {
	start := time.Now()
	require.NoError(t, Sleep(context.Background(), 10*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}
