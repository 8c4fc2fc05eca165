package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrAutosaverClosed is returned when scheduling on a flushed or abandoned autosaver
var ErrAutosaverClosed = errors.New("autosaver is closed")

// SaveFunc persists the latest state of a wizard session
type SaveFunc func(ctx context.Context) error

// Autosaver debounces saves of a wizard session. Every Schedule replaces the
// pending save and restarts the delay. Flush runs the pending save immediately,
// Abandon drops it. Both close the autosaver.
type Autosaver struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending SaveFunc
	closed  bool
	running sync.WaitGroup
	logger  *zap.Logger
}

// NewAutosaver creates an autosaver with the given debounce delay
func NewAutosaver(delay time.Duration, logger *zap.Logger) *Autosaver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Autosaver{delay: delay, logger: logger}
}

// Schedule replaces the pending save and restarts the timer
func (a *Autosaver) Schedule(fn SaveFunc) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrAutosaverClosed
	}
	a.pending = fn
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, a.fire)
	return nil
}

// Pending reports whether a save is waiting for its timer
func (a *Autosaver) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending != nil
}

func (a *Autosaver) fire() {
	a.mu.Lock()
	fn := a.pending
	a.pending = nil
	if fn != nil {
		a.running.Add(1)
	}
	a.mu.Unlock()

	if fn == nil {
		return
	}
	defer a.running.Done()
	if err := fn(context.Background()); err != nil {
		a.logger.Warn("Autosave failed", zap.Error(err))
	}
}

// Flush stops the timer, waits for a save already in flight and runs the pending save now
func (a *Autosaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
	}
	fn := a.pending
	a.pending = nil
	a.closed = true
	a.mu.Unlock()

	a.running.Wait()
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Abandon stops the timer and drops the pending save
func (a *Autosaver) Abandon() {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
	}
	a.pending = nil
	a.closed = true
	a.mu.Unlock()

	a.running.Wait()
}
