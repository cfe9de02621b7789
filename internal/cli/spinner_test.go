package cli

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"
)

func quietSpinner(ctx context.Context, message string) *Spinner {
	s := newSpinner(ctx, message)
	s.w = io.Discard
	return s
}

func TestSpinnerBasic(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), "Rendering...")
	s.w = &buf
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !bytes.Contains(buf.Bytes(), []byte("Rendering...")) {
		t.Errorf("spinner output %q should contain the message", buf.String())
	}
	if s.Cancelled() {
		t.Error("a stopped spinner should not report cancellation")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := quietSpinner(ctx, "Testing with context...")
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := quietSpinner(ctx, "Testing with timeout...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := quietSpinner(context.Background(), "Testing idempotent stop...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := quietSpinner(context.Background(), "never started")

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop blocked on a spinner that was never started")
	}

	// starting after Stop exits at once
	s.Start()
	s.Stop()
}

func TestSpinnerDoubleStart(t *testing.T) {
	s := quietSpinner(context.Background(), "twice")
	s.Start()
	s.Start()
	s.Stop()
}

func TestSpinnerStopWithMessage(t *testing.T) {
	var buf bytes.Buffer
	restore := stdout
	stdout = &buf
	defer func() { stdout = restore }()

	s := quietSpinner(context.Background(), "Testing...")
	s.Start()
	s.StopWithSuccess("Done")

	s = quietSpinner(context.Background(), "Testing...")
	s.Start()
	s.StopWithError("Failed")

	out := buf.String()
	if !bytes.Contains([]byte(out), []byte("Done")) || !bytes.Contains([]byte(out), []byte("Failed")) {
		t.Errorf("output %q should contain both messages", out)
	}
}
