package runtime

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/secmux/sqlmux/internal/model"
)

const (
	// historyCap bounds the number of lines kept for export after a scan.
	historyCap = 10000
	// eventBacklog is the event channel buffer; sends block (never drop)
	// once the consumer falls this far behind, preserving line order.
	eventBacklog = 256
)

// Session is one external process run, from launch to terminal outcome.
type Session interface {
	// Start launches the process. It fails synchronously when the session
	// was already started or the process cannot be launched.
	Start(ctx context.Context) error
	// Stop cancels a running session; the process is terminated.
	Stop() error
	// Events returns the ordered event stream. It is closed after the
	// finished event.
	Events() <-chan Event
	// Status returns the current session status.
	Status() model.ScanStatus
	// Result returns the recorded terminal state.
	Result() Result
	// Display returns the human-readable command line for this session.
	Display() string
	// History returns the accumulated output lines, oldest first.
	History() []string
}

// ScanSession runs the process with merged stdout/stderr pipes and relays
// output line by line. This is the default, non-interactive mode.
type ScanSession struct {
	program string
	args    []string
	display string

	mu            sync.RWMutex
	execCmd       *exec.Cmd
	cancel        context.CancelFunc
	status        model.ScanStatus
	result        Result
	stopRequested bool

	events  chan Event
	history *LineBuffer
}

// NewScanSession creates a session for the given argument vector. display
// is the command line as shown to the user.
func NewScanSession(argv []string, display string) *ScanSession {
	var args []string
	program := ""
	if len(argv) > 0 {
		program = argv[0]
		args = argv[1:]
	}
	return &ScanSession{
		program: program,
		args:    args,
		display: display,
		status:  model.ScanStatusIdle,
		events:  make(chan Event, eventBacklog),
		history: NewLineBuffer(historyCap),
	}
}

// Start launches the process and begins relaying output.
func (s *ScanSession) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == model.ScanStatusRunning {
		return errors.New("session already running")
	}
	if s.program == "" {
		return errors.New("empty argument vector")
	}

	ctx, s.cancel = context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, s.program, s.args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		s.failBeforeStart(fmt.Errorf("pipe setup failed: %w", err))
		return err
	}
	// Merge stderr into the stdout pipe so output order is preserved.
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		wrapped := fmt.Errorf("failed to start %s: %w", s.program, err)
		s.failBeforeStart(wrapped)
		return wrapped
	}

	s.execCmd = cmd
	s.status = model.ScanStatusRunning
	s.result.StartedAt = time.Now()
	s.events <- Event{Type: EventStarted}

	go s.relay(stdout)

	return nil
}

// failBeforeStart records a launch failure and closes the event stream with
// a failure event, so consumers see a uniform terminal event either way.
func (s *ScanSession) failBeforeStart(err error) {
	now := time.Now()
	s.status = model.ScanStatusError
	s.result = Result{
		Outcome:    model.OutcomeFailure,
		Message:    err.Error(),
		FinishedAt: now,
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.events <- Event{Type: EventFinished, Success: false, Message: err.Error(), Timestamp: now}
	close(s.events)
}

// relay is the single background worker: it owns the output pipe, forwards
// each line as soon as it is read, then awaits process exit and emits the
// terminal event.
func (s *ScanSession) relay(stdout io.Reader) {
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := sanitizeLine(scanner.Text())
		s.history.Append(line)
		s.events <- Event{Type: EventLine, Line: line}
	}
	streamErr := scanner.Err()

	waitErr := s.execCmd.Wait()
	now := time.Now()

	s.mu.Lock()
	stopped := s.stopRequested
	success := streamErr == nil && waitErr == nil && !stopped

	var message string
	switch {
	case stopped:
		message = "scan cancelled"
	case streamErr != nil:
		message = fmt.Sprintf("error reading scan output: %v", streamErr)
	case waitErr != nil:
		message = fmt.Sprintf("%s exited abnormally: %v", s.program, waitErr)
	default:
		message = "scan completed successfully"
	}

	outcome := model.OutcomeFailure
	if success {
		outcome = model.OutcomeSuccess
	}
	s.status = model.ScanStatusStopped
	s.result.Outcome = outcome
	s.result.Message = message
	s.result.Cancelled = stopped
	s.result.FinishedAt = now
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	s.events <- Event{Type: EventFinished, Success: success, Message: message, Timestamp: now}
	close(s.events)
}

// Stop terminates a running session. The failure event for the cancelled
// run is delivered through the event stream like any other outcome.
func (s *ScanSession) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != model.ScanStatusRunning {
		return nil
	}
	s.stopRequested = true
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// Events returns the ordered event stream.
func (s *ScanSession) Events() <-chan Event {
	return s.events
}

// Status returns the current status.
func (s *ScanSession) Status() model.ScanStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Result returns the recorded terminal state.
func (s *ScanSession) Result() Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// Display returns the command line as shown to the user.
func (s *ScanSession) Display() string {
	return s.display
}

// History returns the accumulated output lines.
func (s *ScanSession) History() []string {
	return s.history.Lines()
}

// sanitizeLine strips ANSI escape sequences and trailing carriage returns
// so the stored transcript is plain text.
func sanitizeLine(line string) string {
	return ansi.Strip(strings.TrimSuffix(line, "\r"))
}
