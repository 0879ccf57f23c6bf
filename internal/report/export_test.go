package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secmux/sqlmux/internal/model"
	"github.com/secmux/sqlmux/internal/runtime"
)

func sampleTranscript() Transcript {
	started := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	return Transcript{
		Command: `sqlmap -u "http://t/x?id=1" --batch`,
		Lines: []string{
			"[09:26:54] [INFO] testing connection to the target URL",
			"[09:26:55] [INFO] target URL appears to be stable",
		},
		Result: runtime.Result{
			Outcome:    model.OutcomeSuccess,
			Message:    "scan completed successfully",
			StartedAt:  started,
			FinishedAt: started.Add(42 * time.Second),
		},
	}
}

func TestWriteTranscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "scan.txt")
	require.NoError(t, Write(path, sampleTranscript()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(content)
	assert.Contains(t, text, "SQLMap Command:\nsqlmap -u \"http://t/x?id=1\" --batch\n")
	assert.Contains(t, text, "[09:26:54] [INFO] testing connection to the target URL\n")
	assert.Contains(t, text, "Started:  2025-03-14 09:26:53\n")
	assert.Contains(t, text, "Finished: 2025-03-14 09:27:35\n")
	assert.Contains(t, text, "Outcome:  scan completed successfully\n")
}

func TestDefaultFilename(t *testing.T) {
	tr := sampleTranscript()
	assert.Equal(t, "sqlmux-20250314-092653.txt", DefaultFilename(tr))

	tr.Result.StartedAt = time.Time{}
	assert.Equal(t, "sqlmux-scan.txt", DefaultFilename(tr))
}

func TestRenderOmitsFooter(t *testing.T) {
	text := Render(sampleTranscript())
	assert.Contains(t, text, "SQLMap Command:")
	assert.Contains(t, text, "target URL appears to be stable\n")
	assert.NotContains(t, text, "Outcome:")
}
