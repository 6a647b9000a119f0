// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"errors"
	"sync"

	"github.com/alem-hub/campus-registrar/internal/domain/shared"
	"github.com/alem-hub/campus-registrar/internal/infrastructure/errorlog"
	"github.com/alem-hub/campus-registrar/pkg/logger"
)

// ErrValidation marks a malformed command.
var ErrValidation = errors.New("invalid command")

// ErrorRecorder appends swallowed business-rule failures to the error log.
type ErrorRecorder interface {
	Record(ctx context.Context, err error) (errorlog.Entry, error)
}

// ══════════════════════════════════════════════════════════════════════════════
// LOCKS
// ══════════════════════════════════════════════════════════════════════════════

// KeyedLocks serializes check-then-act sequences per entity key. Enroll and
// drop share one instance so a roster is mutated by one command at a time.
type KeyedLocks struct {
	mu    sync.Mutex
	locks map[shared.Key]*sync.Mutex
}

// NewKeyedLocks returns an empty lock table.
func NewKeyedLocks() *KeyedLocks {
	return &KeyedLocks{locks: make(map[shared.Key]*sync.Mutex)}
}

// Lock acquires the mutex for k and returns its release function.
func (l *KeyedLocks) Lock(k shared.Key) func() {
	l.mu.Lock()
	m, ok := l.locks[k]
	if !ok {
		m = &sync.Mutex{}
		l.locks[k] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// publish delivers a notice. A failed publish is logged, never returned.
func publish(log *logger.Logger, publisher shared.EventPublisher, event shared.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(event); err != nil {
		log.Warn("failed to publish event",
			logger.String("event_type", string(event.EventType())),
			logger.Err(err),
		)
	}
}

// swallow records a business-rule failure. Sink failures are already logged
// by the recorder and end here.
func swallow(ctx context.Context, recorder ErrorRecorder, log *logger.Logger, err error) {
	if recorder == nil {
		return
	}
	entry, recErr := recorder.Record(ctx, err)
	if recErr != nil {
		log.Warn("error log incomplete", logger.ErrorCode(entry.Code), logger.Err(recErr))
	}
}

func orDefault(log *logger.Logger) *logger.Logger {
	if log == nil {
		return logger.Default()
	}
	return log
}
