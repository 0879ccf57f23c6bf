package runtime

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aymanbagabas/go-pty"

	"github.com/secmux/sqlmux/internal/model"
)

// TTYSession runs the process under a pseudo-terminal. It is used for
// interactive scans (batch mode off), where the tool may prompt and the
// user's answers are forwarded through Write. Output is relayed as the
// same ordered line events the pipe session produces.
type TTYSession struct {
	program string
	args    []string
	display string

	mu            sync.RWMutex
	ptmx          pty.Pty
	pCmd          *pty.Cmd
	cancel        context.CancelFunc
	status        model.ScanStatus
	result        Result
	stopRequested bool

	events  chan Event
	history *LineBuffer
}

// NewTTYSession creates an interactive session for the given argument
// vector.
func NewTTYSession(argv []string, display string) *TTYSession {
	var args []string
	program := ""
	if len(argv) > 0 {
		program = argv[0]
		args = argv[1:]
	}
	return &TTYSession{
		program: program,
		args:    args,
		display: display,
		status:  model.ScanStatusIdle,
		events:  make(chan Event, eventBacklog),
		history: NewLineBuffer(historyCap),
	}
}

// Start allocates the pseudo-terminal and launches the process.
func (s *TTYSession) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == model.ScanStatusRunning {
		return errors.New("session already running")
	}
	if s.program == "" {
		return errors.New("empty argument vector")
	}

	ctx, s.cancel = context.WithCancel(ctx)

	ptmx, err := pty.New()
	if err != nil {
		wrapped := fmt.Errorf("failed to allocate pty: %w", err)
		s.failBeforeStart(wrapped)
		return wrapped
	}
	s.ptmx = ptmx
	_ = ptmx.Resize(120, 40)

	s.pCmd = ptmx.CommandContext(ctx, s.program, s.args...)
	if err := s.pCmd.Start(); err != nil {
		wrapped := fmt.Errorf("failed to start %s: %w", s.program, err)
		_ = ptmx.Close()
		s.failBeforeStart(wrapped)
		return wrapped
	}

	s.status = model.ScanStatusRunning
	s.result.StartedAt = time.Now()
	s.events <- Event{Type: EventStarted}

	go s.relay()

	return nil
}

func (s *TTYSession) failBeforeStart(err error) {
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

// relay reads the pty until end of stream, splitting chunks into lines and
// forwarding each as soon as it is complete. Process exit is awaited in a
// separate goroutine: the parent keeps its side of the pty open, so reads
// would block forever after the child exits unless the waiter closes it.
func (s *TTYSession) relay() {
	waitDone := make(chan error, 1)
	go func() {
		err := s.pCmd.Wait()
		s.mu.RLock()
		ptmx := s.ptmx
		s.mu.RUnlock()
		if ptmx != nil {
			_ = ptmx.Close()
		}
		waitDone <- err
	}()

	buf := make([]byte, 4096)
	var pending strings.Builder

	emit := func(line string) {
		line = sanitizeLine(line)
		s.history.Append(line)
		s.events <- Event{Type: EventLine, Line: line}
	}

	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			pending.WriteString(string(buf[:n]))
			text := pending.String()
			pending.Reset()
			for {
				idx := strings.IndexByte(text, '\n')
				if idx < 0 {
					pending.WriteString(text)
					break
				}
				emit(text[:idx])
				text = text[idx+1:]
			}
		}
		if err != nil {
			// EOF or EIO: the process closed its side of the pty.
			break
		}
	}
	if pending.Len() > 0 {
		emit(pending.String())
	}

	waitErr := <-waitDone
	now := time.Now()

	s.mu.Lock()
	stopped := s.stopRequested
	success := waitErr == nil && !stopped

	var message string
	switch {
	case stopped:
		message = "scan cancelled"
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

// Write forwards input to the process, typically an answer to a prompt.
func (s *TTYSession) Write(data []byte) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.status != model.ScanStatusRunning {
		return 0, errors.New("session not running")
	}
	return s.ptmx.Write(data)
}

// Stop terminates a running session: the pty is closed and the process
// killed.
func (s *TTYSession) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != model.ScanStatusRunning {
		return nil
	}
	s.stopRequested = true
	if s.cancel != nil {
		s.cancel()
	}
	if s.ptmx != nil {
		_ = s.ptmx.Close()
	}
	if s.pCmd != nil && s.pCmd.Process != nil {
		_ = s.pCmd.Process.Kill()
	}
	return nil
}

// Events returns the ordered event stream.
func (s *TTYSession) Events() <-chan Event {
	return s.events
}

// Status returns the current status.
func (s *TTYSession) Status() model.ScanStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Result returns the recorded terminal state.
func (s *TTYSession) Result() Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// Display returns the command line as shown to the user.
func (s *TTYSession) Display() string {
	return s.display
}

// History returns the accumulated output lines.
func (s *TTYSession) History() []string {
	return s.history.Lines()
}
