// Package report writes scan transcripts to disk.
package report

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/secmux/sqlmux/internal/runtime"
)

const timeLayout = "2006-01-02 15:04:05"

// Transcript is everything needed to export one finished scan.
type Transcript struct {
	// Command is the command line as shown to the user.
	Command string
	// Lines is the captured output, oldest first.
	Lines []string
	// Result is the scan's terminal state.
	Result runtime.Result
}

// Write saves the transcript as plain text: the command line first, then
// the output, then the outcome summary.
func Write(path string, t Transcript) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create transcript: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintln(w, "SQLMap Command:")
	fmt.Fprintln(w, t.Command)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "SQLMap Output:")
	for _, line := range t.Lines {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Result:")
	if !t.Result.StartedAt.IsZero() {
		fmt.Fprintf(w, "Started:  %s\n", t.Result.StartedAt.Format(timeLayout))
	}
	if !t.Result.FinishedAt.IsZero() {
		fmt.Fprintf(w, "Finished: %s\n", t.Result.FinishedAt.Format(timeLayout))
	}
	fmt.Fprintf(w, "Outcome:  %s\n", t.Result.Message)

	if err := w.Flush(); err != nil {
		return err
	}
	return file.Close()
}

// DefaultFilename suggests a transcript filename from the scan start time.
func DefaultFilename(t Transcript) string {
	stamp := "scan"
	if !t.Result.StartedAt.IsZero() {
		stamp = t.Result.StartedAt.Format("20060102-150405")
	}
	return fmt.Sprintf("sqlmux-%s.txt", stamp)
}

// Render returns the command and output as a string, without the outcome
// footer.
func Render(t Transcript) string {
	var b strings.Builder
	b.WriteString("SQLMap Command:\n")
	b.WriteString(t.Command)
	b.WriteString("\n\nSQLMap Output:\n")
	for _, line := range t.Lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
