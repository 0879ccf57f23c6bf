package runtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secmux/sqlmux/internal/model"
)

// collectEvents drains the session's event stream until it closes.
func collectEvents(t *testing.T, s Session) []Event {
	t.Helper()

	var events []Event
	timeout := time.After(10 * time.Second)
	for {
		select {
		case ev, ok := <-s.Events():
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-timeout:
			t.Fatal("timed out waiting for event stream to close")
		}
	}
}

func TestScanSessionEventOrder(t *testing.T) {
	s := NewScanSession([]string{"sh", "-c", `printf "alpha\nbeta\ngamma\n"`}, "test")

	require.NoError(t, s.Start(context.Background()))

	events := collectEvents(t, s)
	require.Len(t, events, 5)

	assert.Equal(t, EventStarted, events[0].Type)
	assert.Equal(t, EventLine, events[1].Type)
	assert.Equal(t, "alpha", events[1].Line)
	assert.Equal(t, "beta", events[2].Line)
	assert.Equal(t, "gamma", events[3].Line)
	assert.Equal(t, EventFinished, events[4].Type)
	assert.True(t, events[4].Success)
	assert.Equal(t, "scan completed successfully", events[4].Message)

	assert.Equal(t, model.ScanStatusStopped, s.Status())
	assert.Equal(t, model.OutcomeSuccess, s.Result().Outcome)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, s.History())
}

func TestScanSessionMergesStderr(t *testing.T) {
	s := NewScanSession([]string{"sh", "-c", `echo out; echo err 1>&2`}, "test")

	require.NoError(t, s.Start(context.Background()))
	collectEvents(t, s)

	assert.ElementsMatch(t, []string{"out", "err"}, s.History())
}

func TestScanSessionStripsAnsi(t *testing.T) {
	s := NewScanSession([]string{"sh", "-c", `printf "\033[1;32mpayload\033[0m\r\n"`}, "test")

	require.NoError(t, s.Start(context.Background()))
	events := collectEvents(t, s)

	require.Len(t, events, 3)
	assert.Equal(t, "payload", events[1].Line)
}

func TestScanSessionNonZeroExit(t *testing.T) {
	s := NewScanSession([]string{"sh", "-c", "exit 3"}, "test")

	require.NoError(t, s.Start(context.Background()))
	events := collectEvents(t, s)

	last := events[len(events)-1]
	assert.Equal(t, EventFinished, last.Type)
	assert.False(t, last.Success)
	assert.Contains(t, last.Message, "exited abnormally")
	assert.Equal(t, model.OutcomeFailure, s.Result().Outcome)
}

func TestScanSessionLaunchFailure(t *testing.T) {
	s := NewScanSession([]string{"/nonexistent/definitely-not-sqlmap"}, "test")

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, model.ScanStatusError, s.Status())

	// The failure is also visible on the event stream.
	events := collectEvents(t, s)
	require.Len(t, events, 1)
	assert.Equal(t, EventFinished, events[0].Type)
	assert.False(t, events[0].Success)
}

func TestScanSessionStop(t *testing.T) {
	s := NewScanSession([]string{"sh", "-c", "echo started; sleep 30"}, "test")

	require.NoError(t, s.Start(context.Background()))

	// Wait for the first line so the process is known to be up.
	deadline := time.After(5 * time.Second)
	for running := true; running; {
		select {
		case ev := <-s.Events():
			if ev.Type == EventLine {
				running = false
			}
		case <-deadline:
			t.Fatal("process produced no output")
		}
	}

	require.NoError(t, s.Stop())
	events := collectEvents(t, s)

	last := events[len(events)-1]
	assert.Equal(t, EventFinished, last.Type)
	assert.False(t, last.Success)
	assert.Equal(t, "scan cancelled", last.Message)
	assert.True(t, s.Result().Cancelled)
	assert.Equal(t, model.ScanStatusStopped, s.Status())
}

func TestScanSessionDoubleStart(t *testing.T) {
	s := NewScanSession([]string{"sh", "-c", "sleep 30"}, "test")

	require.NoError(t, s.Start(context.Background()))
	assert.Error(t, s.Start(context.Background()))

	require.NoError(t, s.Stop())
	collectEvents(t, s)
}

func TestLineBufferEviction(t *testing.T) {
	b := NewLineBuffer(3)
	b.Append("one")
	b.Append("two")
	b.Append("three")
	b.Append("four")

	assert.Equal(t, 3, b.Len())
	assert.Equal(t, []string{"two", "three", "four"}, b.Lines())

	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Lines())
}
