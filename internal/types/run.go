package types

import "time"

// StageStatus is the outcome of one pipeline stage.
type StageStatus string

// Stage outcomes
const (
	StatusOK       StageStatus = "ok"
	StatusDegraded StageStatus = "degraded"
	StatusFailed   StageStatus = "failed"
)

// StageResult records how one stage of a run went.
type StageResult struct {
	Stage    string        `json:"stage"`
	Status   StageStatus   `json:"status"`
	Duration time.Duration `json:"duration"`
	Degraded []string      `json:"degraded,omitempty"` // sub-operations that fell back
	Error    string        `json:"error,omitempty"`
}

// RunSummary collects the stage results of one run.
type RunSummary struct {
	RunID  string          `json:"run_id"`
	Topic  string          `json:"topic"`
	Stages []StageResult   `json:"stages"`
	Output *RenderedOutput `json:"output,omitempty"`
}

// Succeeded reports whether no stage failed.
func (s *RunSummary) Succeeded() bool {
	for _, stage := range s.Stages {
		if stage.Status == StatusFailed {
			return false
		}
	}
	return true
}

// TotalDuration sums the stage durations.
func (s *RunSummary) TotalDuration() time.Duration {
	var total time.Duration
	for _, stage := range s.Stages {
		total += stage.Duration
	}
	return total
}
