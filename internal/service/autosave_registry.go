package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"project-config-api/internal/wizard"
)

// autosaveRegistry keeps one debounced autosaver per configuration.
// Autosavers leave the map before they are flushed or abandoned, so the map
// only ever holds open ones.
type autosaveRegistry struct {
	mu       sync.Mutex
	delay    time.Duration
	logger   *zap.Logger
	sessions map[uuid.UUID]*wizard.Autosaver
}

func newAutosaveRegistry(delay time.Duration, logger *zap.Logger) *autosaveRegistry {
	return &autosaveRegistry{
		delay:    delay,
		logger:   logger,
		sessions: make(map[uuid.UUID]*wizard.Autosaver),
	}
}

// schedule replaces the pending save of a configuration and restarts its delay
func (r *autosaveRegistry) schedule(id uuid.UUID, fn wizard.SaveFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.sessions[id]
	if !ok {
		a = wizard.NewAutosaver(r.delay, r.logger.With(zap.String("configuration_id", id.String())))
		r.sessions[id] = a
	}
	return a.Schedule(func(ctx context.Context) error {
		err := fn(ctx)
		r.release(id, a)
		return err
	})
}

// release forgets an idle autosaver after its timer fired
func (r *autosaveRegistry) release(id uuid.UUID, a *wizard.Autosaver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessions[id] == a && !a.Pending() {
		delete(r.sessions, id)
	}
}

func (r *autosaveRegistry) take(id uuid.UUID) *wizard.Autosaver {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.sessions[id]
	delete(r.sessions, id)
	return a
}

// flush writes the pending autosave of a configuration now
func (r *autosaveRegistry) flush(ctx context.Context, id uuid.UUID) error {
	if a := r.take(id); a != nil {
		return a.Flush(ctx)
	}
	return nil
}

// abandon drops the pending autosave of a configuration
func (r *autosaveRegistry) abandon(id uuid.UUID) {
	if a := r.take(id); a != nil {
		a.Abandon()
	}
}

// flushAll writes every pending autosave, used on shutdown
func (r *autosaveRegistry) flushAll(ctx context.Context) error {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[uuid.UUID]*wizard.Autosaver)
	r.mu.Unlock()

	var errs []error
	for id, a := range sessions {
		if err := a.Flush(ctx); err != nil {
			r.logger.Warn("Failed to flush autosave",
				zap.String("configuration_id", id.String()),
				zap.Error(err),
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
