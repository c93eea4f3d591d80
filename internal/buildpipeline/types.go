package buildpipeline

import "time"

// Stage is one step of checking a file.
type Stage string

const (
	// StageLoad reads the root file.
	StageLoad Stage = "load"
	// StageParse covers lexing, parsing and name resolution of every module.
	StageParse Stage = "parse"
	// StageSema is type inference over every loaded module.
	StageSema Stage = "sema"
	// StageCache marks a result served from the disk cache.
	StageCache Stage = "cache"
)

// Status is the progress state inside a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	// StatusError means the stage finished with error diagnostics or failed.
	StatusError Status = "error"
)

// Event reports progress for one file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use: directory checks report from several goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// Notify sends evt to sink if there is one.
func Notify(sink ProgressSink, evt Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(evt)
}

// Timings holds per-stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

// Add accumulates dur for stage.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
	t.stages[stage] += dur
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	return t.stages[stage]
}

// Sum returns the total across the given stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
