package inventory

// gate.go serializes imports per household. A household gets one slot; a
// second import waits up to maxWait for it and then fails with
// ErrImportInProgress. Deletes and updates do not take the gate.

import (
	"context"
	"sync"
	"time"
)

// DefaultGateWait is how long an import waits for the household slot.
const DefaultGateWait = 5 * time.Second

type importGate struct {
	slot    chan struct{}
	maxWait time.Duration

	mu     sync.Mutex
	active bool
}

func newImportGate(maxWait time.Duration) *importGate {
	if maxWait <= 0 {
		maxWait = DefaultGateWait
	}
	return &importGate{
		slot:    make(chan struct{}, 1),
		maxWait: maxWait,
	}
}

// acquire takes the slot. The caller must call release exactly once after a
// nil return.
func (g *importGate) acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, g.maxWait)
	defer cancel()

	select {
	case g.slot <- struct{}{}:
		g.mu.Lock()
		g.active = true
		g.mu.Unlock()
		return nil

	case <-waitCtx.Done():
		// Distinguish caller cancellation from our own wait timeout.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrImportInProgress
	}
}

func (g *importGate) release() {
	g.mu.Lock()
	g.active = false
	g.mu.Unlock()
	<-g.slot
}

// busy reports whether an import currently holds the slot.
func (g *importGate) busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// waitIdle blocks until no import holds the slot or ctx is done. Used for
// graceful shutdown.
func (g *importGate) waitIdle(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if !g.busy() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
