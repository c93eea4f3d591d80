package fuzztests

import (
	"context"
	"testing"
	"time"

	"bonk/internal/modules"
	"bonk/internal/testkit"
)

// checkTimeout bounds one analysis; exceeding it means a loop in inference.
const checkTimeout = 5 * time.Second

func FuzzCheckModule(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()

		done := make(chan *modules.Module, 1)
		panicked := make(chan any, 1)
		loader := modules.NewLoader(modules.Options{MaxDiagnostics: 128})
		go func() {
			defer func() {
				if r := recover(); r != nil {
					panicked <- r
				}
			}()
			m := loader.LoadSource("fuzz.bonk", input)
			loader.CheckAll()
			done <- m
		}()

		var m *modules.Module
		select {
		case m = <-done:
		case r := <-panicked:
			t.Fatalf("analysis panicked: %v", r)
		case <-ctx.Done():
			t.Fatalf("analysis timed out after %v", checkTimeout)
		}

		if m.State == modules.StateBroken || m.Tree == nil {
			return
		}
		if err := testkit.CheckSpanInvariants(m.Tree, loader.Files().Get(m.File())); err != nil {
			t.Fatalf("span invariants: %v", err)
		}
	})
}
