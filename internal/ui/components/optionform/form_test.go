package optionform

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secmux/sqlmux/internal/model"
)

func moveTo(t *testing.T, m *Model, key string) {
	t.Helper()
	for i, r := range m.rows {
		if r.header == "" && r.spec.Key == key {
			m.cursor = i
			return
		}
	}
	t.Fatalf("no row for option %s", key)
}

func submitValue(t *testing.T, m *Model, value string) error {
	t.Helper()

	handled, err := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, handled)
	require.NoError(t, err)
	require.True(t, m.Editing())

	m.input.SetValue(value)
	handled, err = m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, handled)
	return err
}

func TestFormNormalizesHeaders(t *testing.T) {
	opts := model.NewOptions()
	m := New(opts)
	m.SetSize(80, 30)

	moveTo(t, &m, "headers")
	require.NoError(t, submitValue(t, &m, "X-Api-Key: token;  Accept: */*"))

	assert.Equal(t, `X-Api-Key: token\nAccept: */*`, opts.Get("headers"))
}

func TestFormRejectsMalformedHeaders(t *testing.T) {
	opts := model.NewOptions()
	m := New(opts)
	m.SetSize(80, 30)

	moveTo(t, &m, "headers")
	assert.Error(t, submitValue(t, &m, "not a header"))
	assert.Empty(t, opts.Get("headers"))
}

func TestFormWordlistMustExist(t *testing.T) {
	opts := model.NewOptions()
	m := New(opts)
	m.SetSize(80, 30)

	moveTo(t, &m, "wordlist")
	assert.Error(t, submitValue(t, &m, filepath.Join(t.TempDir(), "missing.txt")))

	path := filepath.Join(t.TempDir(), "wordlist.txt")
	require.NoError(t, os.WriteFile(path, []byte("admin\n"), 0644))

	moveTo(t, &m, "wordlist")
	require.NoError(t, submitValue(t, &m, path))
	assert.Equal(t, path, opts.Get("wordlist"))
}

func TestFormTogglesBool(t *testing.T) {
	opts := model.NewOptions()
	m := New(opts)
	m.SetSize(80, 30)

	moveTo(t, &m, "batch")
	handled, err := m.HandleKey(tea.KeyMsg{Type: tea.KeySpace})
	require.True(t, handled)
	require.NoError(t, err)
	assert.True(t, opts.Bool("batch"))
}
