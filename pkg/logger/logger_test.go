package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, line string) LogEntry {
	t.Helper()
	var e LogEntry
	require.NoError(t, json.Unmarshal([]byte(line), &e))
	return e
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Output: &buf, Level: LevelWarn})

	l.Info("skipped")
	l.Warn("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "kept", decode(t, lines[0]).Message)
	assert.Equal(t, "WARN", decode(t, lines[0]).Level)
}

func TestFieldsAndWith(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Output: &buf, Level: LevelDebug, AddCaller: true}).With(Component("enroll"))

	l.Info("student enrolled", CourseCode("CS101"), StudentID(12345), Err(errors.New("boom")))

	e := decode(t, strings.TrimSpace(buf.String()))
	assert.Equal(t, "enroll", e.Fields["component"])
	assert.Equal(t, "CS101", e.Fields["course_code"])
	assert.Equal(t, float64(12345), e.Fields["student_id"])
	assert.Equal(t, "boom", e.Fields["error"])
	assert.NotEmpty(t, e.Caller)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel(" WARNING "))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense"))
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Output: &buf}).WithOperationID("op-1")
	ctx := WithContext(context.Background(), l)

	FromContext(ctx).Info("hello")
	assert.Equal(t, "op-1", decode(t, strings.TrimSpace(buf.String())).Fields[OperationIDKey])
	assert.NotNil(t, FromContext(context.Background()))
}
