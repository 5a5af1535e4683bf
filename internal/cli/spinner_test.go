package cli

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestSpinnerStop(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, "Rendering...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()
	s.Stop()

	if buf.Len() == 0 {
		t.Error("spinner wrote nothing")
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerTo(ctx, &bytes.Buffer{}, "Rendering...")
	s.Start()
	cancel()

	if !s.Cancelled() {
		t.Error("spinner should be cancelled after context cancellation")
	}
	s.Stop()
}
