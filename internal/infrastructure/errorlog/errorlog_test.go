package errorlog

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/campus-registrar/internal/domain/shared"
	"github.com/alem-hub/campus-registrar/pkg/circuitbreaker"
	"github.com/alem-hub/campus-registrar/pkg/logger"
	"github.com/alem-hub/campus-registrar/pkg/retry"
	"github.com/alem-hub/campus-registrar/pkg/timeutil"
)

var at = time.Date(2023, time.December, 1, 9, 5, 7, 0, time.UTC)

const fullLine = "[Fri Dec  1 09:05:07 2023] Error Code: 101, Message: Course is at maximum capacity, " +
	"Student ID: 12345, Course Code: CS101, Max Capacity: 30, Current Enrollment: 30"

func courseFull() error {
	return shared.NewCourseFullError("12345", "CS101", 30, 30)
}

func fastRetrier(attempts int) *retry.Retrier {
	return retry.New(
		retry.WithMaxAttempts(attempts),
		retry.WithInitialDelay(time.Millisecond),
		retry.WithMaxDelay(time.Millisecond),
		retry.WithRetryIf(func(err error) bool { return !retry.IsPermanent(err) }),
	)
}

// ══════════════════════════════════════════════════════════════════════════════
// Entry
// ══════════════════════════════════════════════════════════════════════════════

func TestEntryLine(t *testing.T) {
	e := NewEntry(at, courseFull())

	assert.Equal(t, shared.KindCourseFull, e.Kind)
	assert.Equal(t, 101, e.Code)
	assert.Equal(t, fullLine, e.Line())

	plain := NewEntry(at, errors.New("disk on fire"))
	assert.Equal(t, shared.KindSystem, plain.Kind)
	assert.Equal(t, "[Fri Dec  1 09:05:07 2023] disk on fire", plain.Line())
}

func TestFingerprint(t *testing.T) {
	a := NewEntry(at, courseFull())
	b := NewEntry(at, courseFull())
	c := NewEntry(at.Add(time.Second), courseFull())

	assert.Len(t, Fingerprint(a), 64)
	assert.Equal(t, Fingerprint(a), Fingerprint(b))
	assert.NotEqual(t, Fingerprint(a), Fingerprint(c))
}

// ══════════════════════════════════════════════════════════════════════════════
// Log
// ══════════════════════════════════════════════════════════════════════════════

type brokenSink struct{}

func (brokenSink) Name() string                        { return "broken" }
func (brokenSink) Append(context.Context, Entry) error { return errors.New("unavailable") }

func TestLogFansOut(t *testing.T) {
	var out bytes.Buffer
	first, second := NewRecorder(), NewRecorder()
	l := New([]Sink{first, brokenSink{}, second},
		WithClock(timeutil.FixedClock(at)),
		WithFingerprint(true),
		WithLogger(logger.New(logger.Options{Output: &out, Level: logger.LevelDebug})),
	)

	entry, err := l.Record(context.Background(), courseFull())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken: unavailable")

	assert.Equal(t, fullLine, entry.Line())
	assert.Equal(t, Fingerprint(entry), entry.Fingerprint)
	assert.Equal(t, []string{fullLine}, first.Lines())
	assert.Equal(t, []string{fullLine}, second.Lines())
	assert.Equal(t, []string{"memory", "broken", "memory"}, l.Sinks())
	assert.Contains(t, out.String(), `"sink":"broken"`)

	first.Reset()
	assert.Empty(t, first.Entries())
}

// ══════════════════════════════════════════════════════════════════════════════
// File
// ══════════════════════════════════════════════════════════════════════════════

func TestFileSinkAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "university_system_error.log")
	sink := NewFileSink(path)
	l := New([]Sink{sink}, WithClock(timeutil.FixedClock(at)))

	_, err := l.Record(context.Background(), courseFull())
	require.NoError(t, err)
	_, err = l.Record(context.Background(), shared.NewStudentNotFoundError("12345", "CS101"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, fullLine, lines[0])
	assert.Equal(t, "[Fri Dec  1 09:05:07 2023] Error Code: 104, Message: Student not found in course, Student ID: 12345, Course Code: CS101", lines[1])
}

func TestFileSinkUnwritable(t *testing.T) {
	sink := NewFileSink(filepath.Join(t.TempDir(), "missing", "dir", "log"))
	assert.Error(t, sink.Append(context.Background(), NewEntry(at, courseFull())))
}

// ══════════════════════════════════════════════════════════════════════════════
// Redis
// ══════════════════════════════════════════════════════════════════════════════

type fakeList struct {
	mu       sync.Mutex
	failures int
	calls    int
	pushed   map[string][]string
}

func (f *fakeList) RPush(_ context.Context, key string, values ...interface{}) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.calls <= f.failures {
		return redis.NewIntResult(0, errors.New("connection reset"))
	}
	if f.pushed == nil {
		f.pushed = make(map[string][]string)
	}
	for _, v := range values {
		f.pushed[key] = append(f.pushed[key], v.(string))
	}
	return redis.NewIntResult(int64(len(f.pushed[key])), nil)
}

func TestRedisSinkRetries(t *testing.T) {
	list := &fakeList{failures: 2}
	sink := NewRedisSink(list, "registrar:error_log", 0, WithRedisRetrier(fastRetrier(3)))

	require.NoError(t, sink.Append(context.Background(), NewEntry(at, courseFull())))
	assert.Equal(t, 3, list.calls)
	assert.Equal(t, []string{fullLine}, list.pushed["registrar:error_log"])
	assert.Equal(t, time.Duration(0), sink.Interval())
}

func TestRedisSinkOpensBreaker(t *testing.T) {
	list := &fakeList{failures: 100}
	cb := circuitbreaker.New("test", circuitbreaker.WithFailureThreshold(1), circuitbreaker.WithTimeout(time.Hour))
	sink := NewRedisSink(list, "k", 0, WithRedisRetrier(fastRetrier(2)), WithRedisBreaker(cb))

	assert.Error(t, sink.Append(context.Background(), NewEntry(at, courseFull())))
	assert.Equal(t, 2, list.calls)

	err := sink.Append(context.Background(), NewEntry(at, courseFull()))
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	assert.Equal(t, 2, list.calls)
}

func TestRedisSinkRateLimit(t *testing.T) {
	sink := NewRedisSink(&fakeList{}, "k", 4)
	assert.Equal(t, 250*time.Millisecond, sink.Interval())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, sink.Append(ctx, NewEntry(at, courseFull())))
	cancel()
	assert.Error(t, sink.Append(ctx, NewEntry(at, courseFull())))
}

// ══════════════════════════════════════════════════════════════════════════════
// PostgreSQL
// ══════════════════════════════════════════════════════════════════════════════

type fakeExec struct {
	errs []error
	args [][]any
}

func (f *fakeExec) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return pgconn.CommandTag{}, err
	}
	f.args = append(f.args, args)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestPostgresSinkInserts(t *testing.T) {
	db := &fakeExec{errs: []error{&pgconn.PgError{Code: "08006"}}}
	sink := NewPostgresSink(db, time.Second)

	e := NewEntry(at, courseFull())
	e.Fingerprint = Fingerprint(e)
	require.NoError(t, sink.Append(context.Background(), e))

	require.Len(t, db.args, 1)
	assert.Equal(t, []any{at, "Fri Dec  1 09:05:07 2023", "course_full", 101, e.Details, e.Fingerprint}, db.args[0])
}

func TestPostgresSinkRejected(t *testing.T) {
	db := &fakeExec{errs: []error{&pgconn.PgError{Code: "42P01", Message: "relation does not exist"}}}
	sink := NewPostgresSink(db, time.Second)

	err := sink.Append(context.Background(), NewEntry(at, courseFull()))
	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "42P01", pgErr.Code)
	assert.Empty(t, db.errs)
	assert.Empty(t, db.args)
}

// ══════════════════════════════════════════════════════════════════════════════
// SQLite
// ══════════════════════════════════════════════════════════════════════════════

func TestSQLiteSink(t *testing.T) {
	sink, err := OpenSQLite(filepath.Join(t.TempDir(), "errors.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sink.Close() })

	l := New([]Sink{sink}, WithClock(timeutil.FixedClock(at)), WithFingerprint(true))
	_, err = l.Record(context.Background(), courseFull())
	require.NoError(t, err)
	_, err = l.Record(context.Background(), shared.NewMalformedDateError("12345", "CS101"))
	require.NoError(t, err)

	recent, err := sink.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, shared.KindMalformedDate, recent[0].Kind)
	assert.Equal(t, 102, recent[0].Code)
	assert.True(t, at.Equal(recent[0].Time))

	all, err := sink.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, fullLine, all[1].Line())
	assert.Equal(t, Fingerprint(all[1]), all[1].Fingerprint)
}
