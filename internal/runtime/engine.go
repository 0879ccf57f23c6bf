package runtime

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/secmux/sqlmux/internal/compiler"
	"github.com/secmux/sqlmux/internal/model"
	"github.com/secmux/sqlmux/pkg/utils"
)

var (
	// ErrNoCommand is returned when execution is requested with nothing to
	// run.
	ErrNoCommand = errors.New("no command to execute")
	// ErrAlreadyRunning is returned when execution is requested while a
	// scan is active; the running session is left untouched.
	ErrAlreadyRunning = errors.New("a scan is already running")
)

// Engine owns scan sessions and enforces that at most one runs at a time.
type Engine struct {
	mu      sync.RWMutex
	active  Session
	sqlmap  string
	logger  *log.Logger
}

// NewEngine creates an engine. sqlmapPath overrides the program looked up
// on PATH; empty means use the compiled command's program name as-is.
func NewEngine(sqlmapPath string, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{sqlmap: sqlmapPath, logger: logger}
}

// Start validates and launches a scan for the compiled command. A command
// with no options or a session already running fail synchronously with
// ErrNoCommand / ErrAlreadyRunning; launch failures are returned and also
// reported through the session's event stream.
func (e *Engine) Start(ctx context.Context, cmd compiler.Command, interactive bool) (Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if cmd.Empty() {
		return nil, ErrNoCommand
	}
	if e.active != nil && e.active.Status() == model.ScanStatusRunning {
		return nil, ErrAlreadyRunning
	}

	argv := cmd.Argv()
	if e.sqlmap != "" {
		// The configured path may be a whole prefix, e.g.
		// "python3 /opt/sqlmap/sqlmap.py".
		prefix, err := utils.SplitCommandLine(e.sqlmap)
		if err != nil || len(prefix) == 0 {
			return nil, fmt.Errorf("invalid sqlmap path %q", e.sqlmap)
		}
		argv = append(prefix, argv[1:]...)
	}

	var session Session
	if interactive {
		session = NewTTYSession(argv, cmd.String())
	} else {
		session = NewScanSession(argv, cmd.String())
	}

	e.logger.Info("starting scan", "command", cmd.String(), "interactive", interactive)
	if err := session.Start(ctx); err != nil {
		e.logger.Error("scan launch failed", "err", err)
		e.active = session
		return session, err
	}

	e.active = session
	return session, nil
}

// Active returns the current session, running or finished, if any.
func (e *Engine) Active() (Session, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.active == nil {
		return nil, false
	}
	return e.active, true
}

// Running reports whether a scan is currently in flight.
func (e *Engine) Running() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.active != nil && e.active.Status() == model.ScanStatusRunning
}

// Stop cancels the running session, if any.
func (e *Engine) Stop() error {
	e.mu.RLock()
	session := e.active
	e.mu.RUnlock()

	if session == nil || session.Status() != model.ScanStatusRunning {
		return nil
	}
	e.logger.Info("stopping scan")
	return session.Stop()
}

// CloseAll stops any running session; called on shutdown.
func (e *Engine) CloseAll() error {
	return e.Stop()
}
