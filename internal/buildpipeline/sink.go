package buildpipeline

import "sync"

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// FuncSink adapts a function to ProgressSink.
type FuncSink func(Event)

func (f FuncSink) OnEvent(evt Event) { f(evt) }

// Recorder keeps every event; used by tests and by --timings output.
type Recorder struct {
	mu      sync.Mutex
	events  []Event
	timings Timings
}

func (r *Recorder) OnEvent(evt Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	if evt.Elapsed > 0 {
		r.timings.Add(evt.Stage, evt.Elapsed)
	}
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Timings returns the accumulated stage durations.
func (r *Recorder) Timings() Timings {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := Timings{}
	for stage, dur := range r.timings.stages {
		out.Add(stage, dur)
	}
	return out
}
