package runtime

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secmux/sqlmux/internal/compiler"
	"github.com/secmux/sqlmux/internal/model"
)

func compileFor(t *testing.T, keys map[string]string) compiler.Command {
	t.Helper()

	opts := model.NewOptions()
	for k, v := range keys {
		require.NoError(t, opts.Set(k, v))
	}
	return compiler.Compile(opts)
}

func TestEngineRejectsEmptyCommand(t *testing.T) {
	e := NewEngine("", nil)

	_, err := e.Start(context.Background(), compiler.Command{}, false)
	assert.ErrorIs(t, err, ErrNoCommand)
	assert.False(t, e.Running())
}

// fakeScan writes a stand-in script that ignores its arguments.
func fakeScan(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fake-scan")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestEngineMutualExclusion(t *testing.T) {
	// Override the program with a long-running stand-in so the first scan
	// is still up when the second is requested.
	e := NewEngine(fakeScan(t, "sleep 30"), nil)
	cmd := compileFor(t, map[string]string{"batch": "true"})

	first, err := e.Start(context.Background(), cmd, false)
	require.NoError(t, err)
	assert.True(t, e.Running())

	_, err = e.Start(context.Background(), cmd, false)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, e.Stop())
	collectEvents(t, first)
	assert.False(t, e.Running())
}

func TestEngineStartAfterFinish(t *testing.T) {
	e := NewEngine("true", nil)
	cmd := compileFor(t, map[string]string{"batch": "true"})

	first, err := e.Start(context.Background(), cmd, false)
	require.NoError(t, err)
	collectEvents(t, first)

	second, err := e.Start(context.Background(), cmd, false)
	require.NoError(t, err)
	collectEvents(t, second)

	assert.Equal(t, model.OutcomeSuccess, second.Result().Outcome)
}

func TestEngineLaunchFailureKeepsSession(t *testing.T) {
	e := NewEngine("/nonexistent/definitely-not-sqlmap", nil)
	cmd := compileFor(t, map[string]string{"batch": "true"})

	session, err := e.Start(context.Background(), cmd, false)
	require.Error(t, err)
	require.NotNil(t, session)

	// The failed session stays visible so the UI can show the error, and
	// it does not block the next start.
	active, ok := e.Active()
	assert.True(t, ok)
	assert.Equal(t, model.ScanStatusError, active.Status())
	assert.False(t, e.Running())
}

func TestEnginePathOverride(t *testing.T) {
	e := NewEngine("echo", nil)
	cmd := compileFor(t, map[string]string{"url": "http://t/"})

	session, err := e.Start(context.Background(), cmd, false)
	require.NoError(t, err)
	events := collectEvents(t, session)

	// echo prints the arguments sqlmap would have received.
	require.GreaterOrEqual(t, len(events), 3)
	assert.Equal(t, "-u http://t/", events[1].Line)
}

func TestEngineMultiWordPathOverride(t *testing.T) {
	script := fakeScan(t, `echo "$@"`)
	e := NewEngine("sh "+script, nil)
	cmd := compileFor(t, map[string]string{"url": "http://t/"})

	session, err := e.Start(context.Background(), cmd, false)
	require.NoError(t, err)
	events := collectEvents(t, session)

	require.GreaterOrEqual(t, len(events), 3)
	assert.Equal(t, "-u http://t/", events[1].Line)
}

func TestEngineStopIdleIsNoop(t *testing.T) {
	e := NewEngine("", nil)
	assert.NoError(t, e.Stop())
	assert.NoError(t, e.CloseAll())

	_, ok := e.Active()
	assert.False(t, ok)
}

func TestEngineDisplayPreserved(t *testing.T) {
	e := NewEngine("true", nil)
	cmd := compileFor(t, map[string]string{"url": "http://t/x?id=1", "batch": "true"})

	session, err := e.Start(context.Background(), cmd, false)
	require.NoError(t, err)
	collectEvents(t, session)

	assert.Equal(t, `sqlmap -u "http://t/x?id=1" --batch`, session.Display())
}
