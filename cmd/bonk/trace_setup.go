package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bonk/internal/prof"
	"bonk/internal/project"
	"bonk/internal/trace"
)

var (
	activeTracer trace.Tracer = trace.Nop
	stopTracing               = func() {}
	profiling    *prof.Session
)

// setupProfiling starts the pprof outputs requested by flags.
func setupProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	if opts.Heap, err = flags.GetString("memprofile"); err != nil {
		return fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("exectrace"); err != nil {
		return fmt.Errorf("failed to get exectrace flag: %w", err)
	}
	if opts.Empty() {
		return nil
	}
	profiling, err = prof.Start(opts)
	return err
}

// setupTracing builds the tracer from the trace flags, falling back to
// bonk.toml [trace] for level and output, and attaches it to the command
// context.
func setupTracing(cmd *cobra.Command, manifest *project.Manifest) error {
	flags := cmd.Root().PersistentFlags()

	traceOutput, err := flags.GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	if manifest != nil {
		if !flags.Changed("trace-level") {
			levelStr = manifest.Config.Trace.Level
		}
		if !flags.Changed("trace") && manifest.Config.Trace.Output != "" {
			traceOutput = manifest.Config.Trace.Output
		}
	}
	// --trace без уровня включает фазы
	if levelStr == "" && traceOutput != "" {
		levelStr = "phase"
	}
	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return nil
	}

	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return err
	}
	formatStr, err := flags.GetString("trace-format")
	if err != nil {
		return fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeatInterval, err := flags.GetDuration("trace-heartbeat")
	if err != nil {
		return fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: traceOutput,
		RingSize:   ringSize,
		Heartbeat:  heartbeatInterval,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	activeTracer = tracer

	var heartbeat *trace.Heartbeat
	if heartbeatInterval > 0 {
		heartbeat = trace.StartHeartbeat(tracer, heartbeatInterval)
	}
	stopTracing = func() {
		if heartbeat != nil {
			heartbeat.Stop()
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return nil
}

func teardown() {
	if err := profiling.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "bonk: %v\n", err)
	}
	profiling = nil
	stopTracing()
	stopTracing = func() {}
	activeTracer = trace.Nop
}

// dumpTraceOnPanic writes the ring buffer to stderr before re-panicking.
func dumpTraceOnPanic() {
	r := recover()
	if r == nil {
		return
	}
	var ring *trace.RingTracer
	switch t := activeTracer.(type) {
	case *trace.RingTracer:
		ring = t
	case *trace.MultiTracer:
		ring = t.Ring()
	}
	if ring != nil {
		fmt.Fprintln(os.Stderr, "--- trace (most recent events) ---")
		_ = ring.Dump(os.Stderr, trace.FormatText)
	}
	panic(r)
}
