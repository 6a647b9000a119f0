// Package errorlog records the business-rule failures that enrollment and
// drop swallow. Every failure becomes one Entry whose text line is
//
//	[Mon Jan  2 15:04:05 2006] Error Code: 101, Message: ...
//
// and is appended to each configured Sink: a local file, a Redis list,
// a PostgreSQL or SQLite table, or memory.
package errorlog

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/alem-hub/campus-registrar/internal/domain/shared"
	"github.com/alem-hub/campus-registrar/pkg/logger"
	"github.com/alem-hub/campus-registrar/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENTRY
// ══════════════════════════════════════════════════════════════════════════════

// Entry is one recorded failure.
type Entry struct {
	Time        time.Time
	Kind        shared.Kind
	Code        int
	Details     string
	Fingerprint string

	// stamp overrides the rendered Time when the entry was read back
	// from storage.
	stamp string
}

// NewEntry builds an entry from err. Errors outside the domain taxonomy are
// recorded as system errors with code 0 and their plain message.
func NewEntry(at time.Time, err error) Entry {
	if e, ok := shared.AsError(err); ok {
		return Entry{Time: at, Kind: e.Kind, Code: e.Code, Details: e.Details()}
	}
	return Entry{Time: at, Kind: shared.KindSystem, Code: shared.CodeSystem, Details: err.Error()}
}

// Stamp is the ctime style timestamp of the entry.
func (e Entry) Stamp() string {
	if e.stamp != "" {
		return e.stamp
	}
	return timeutil.Stamp(e.Time)
}

// Line renders the entry without a trailing newline.
func (e Entry) Line() string {
	return fmt.Sprintf("[%s] %s", e.Stamp(), e.Details)
}

// Fingerprint returns the hex BLAKE2b-256 digest of the entry line. Equal
// failures logged in the same second share a fingerprint.
func Fingerprint(e Entry) string {
	sum := blake2b.Sum256([]byte(e.Line()))
	return hex.EncodeToString(sum[:])
}

// ══════════════════════════════════════════════════════════════════════════════
// SINKS
// ══════════════════════════════════════════════════════════════════════════════

// Sink stores entries.
type Sink interface {
	Name() string
	Append(ctx context.Context, e Entry) error
}

// Log fans entries out to its sinks.
type Log struct {
	sinks       []Sink
	clock       timeutil.Clock
	fingerprint bool
	log         *logger.Logger
}

// Option configures a Log.
type Option func(*Log)

// WithClock replaces the wall clock.
func WithClock(c timeutil.Clock) Option {
	return func(l *Log) {
		if c != nil {
			l.clock = c
		}
	}
}

// WithFingerprint attaches a content digest to every entry.
func WithFingerprint(on bool) Option {
	return func(l *Log) { l.fingerprint = on }
}

// WithLogger sets the logger used to report failing sinks.
func WithLogger(log *logger.Logger) Option {
	return func(l *Log) {
		if log != nil {
			l.log = log
		}
	}
}

// New returns a Log writing to sinks in order.
func New(sinks []Sink, opts ...Option) *Log {
	l := &Log{
		sinks: sinks,
		clock: timeutil.SystemClock{},
		log:   logger.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = l.log.With(logger.Component("errorlog"))
	return l
}

// Record turns err into an entry and appends it to every sink. A failing sink
// does not stop the others; the failures are joined into the returned error.
func (l *Log) Record(ctx context.Context, err error) (Entry, error) {
	entry := NewEntry(l.clock.Now(), err)
	if l.fingerprint {
		entry.Fingerprint = Fingerprint(entry)
	}

	var errs []error
	for _, s := range l.sinks {
		start := time.Now()
		if appendErr := s.Append(ctx, entry); appendErr != nil {
			l.log.Warn("error log sink failed",
				logger.Sink(s.Name()),
				logger.ErrorCode(entry.Code),
				logger.Err(appendErr),
			)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), appendErr))
			continue
		}
		l.log.Debug("error recorded",
			logger.Sink(s.Name()),
			logger.ErrorCode(entry.Code),
			logger.Latency(time.Since(start)),
		)
	}

	return entry, errors.Join(errs...)
}

// Sinks returns the configured sink names.
func (l *Log) Sinks() []string {
	names := make([]string, len(l.sinks))
	for i, s := range l.sinks {
		names[i] = s.Name()
	}
	return names
}
