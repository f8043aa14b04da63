package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner_Animates(t *testing.T) {
	var out syncBuffer
	s := newSpinnerWithContext(context.Background(), "Loading...")
	s.w = &out
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(out.String(), "Loading...") {
		t.Errorf("spinner output = %q, want message", out.String())
	}
}

func TestSpinner_StopIsIdempotent(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "Stopping...")
	s.w = &syncBuffer{}
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinner_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "Waiting...")
	s.w = &syncBuffer{}
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("spinner kept running after cancel")
	}
	s.Stop()
}
