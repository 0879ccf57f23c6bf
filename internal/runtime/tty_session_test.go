package runtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secmux/sqlmux/internal/model"
)

func TestTTYSessionEventOrder(t *testing.T) {
	s := NewTTYSession([]string{"sh", "-c", `printf "alpha\nbeta\ngamma\n"`}, "test")

	require.NoError(t, s.Start(context.Background()))
	events := collectEvents(t, s)

	require.GreaterOrEqual(t, len(events), 5)
	assert.Equal(t, EventStarted, events[0].Type)

	var lines []string
	for _, ev := range events[1 : len(events)-1] {
		require.Equal(t, EventLine, ev.Type)
		lines = append(lines, ev.Line)
	}
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, lines)

	last := events[len(events)-1]
	assert.Equal(t, EventFinished, last.Type)
	assert.True(t, last.Success)

	assert.Equal(t, model.ScanStatusStopped, s.Status())
	assert.Equal(t, model.OutcomeSuccess, s.Result().Outcome)
	assert.False(t, s.Result().Cancelled)
}

func TestTTYSessionStop(t *testing.T) {
	s := NewTTYSession([]string{"sh", "-c", "echo started; sleep 30"}, "test")

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

func TestTTYSessionWrite(t *testing.T) {
	s := NewTTYSession([]string{"sh", "-c", `read answer; echo "got $answer"`}, "test")

	require.NoError(t, s.Start(context.Background()))

	_, err := s.Write([]byte("yes\n"))
	require.NoError(t, err)

	collectEvents(t, s)
	// The pty echoes the input, so only check the response line.
	assert.Contains(t, s.History(), "got yes")
}

func TestTTYSessionLaunchFailure(t *testing.T) {
	s := NewTTYSession([]string{"/nonexistent/definitely-not-sqlmap"}, "test")

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, model.ScanStatusError, s.Status())

	events := collectEvents(t, s)
	require.Len(t, events, 1)
	assert.Equal(t, EventFinished, events[0].Type)
	assert.False(t, events[0].Success)
}
