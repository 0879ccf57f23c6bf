package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCommandLine(t *testing.T) {
	args, err := SplitCommandLine(`python3 /opt/sqlmap/sqlmap.py --batch`)
	require.NoError(t, err)
	assert.Equal(t, []string{"python3", "/opt/sqlmap/sqlmap.py", "--batch"}, args)

	args, err = SplitCommandLine(`sqlmap -u "http://t/x?id=1" --cookie='sid=a b'`)
	require.NoError(t, err)
	assert.Equal(t, []string{"sqlmap", "-u", "http://t/x?id=1", "--cookie=sid=a b"}, args)

	_, err = SplitCommandLine(`sqlmap -u "http://t/`)
	assert.Error(t, err)

	_, err = SplitCommandLine(`sqlmap \`)
	assert.Error(t, err)
}

func TestParseHeaders(t *testing.T) {
	headers, err := ParseHeaders(`X-Forwarded-For: 127.0.0.1\nAuthorization: Bearer abc`)
	require.NoError(t, err)
	assert.Equal(t, []string{"X-Forwarded-For: 127.0.0.1", "Authorization: Bearer abc"}, headers)

	headers, err = ParseHeaders("Accept: */*; X-Test: 1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Accept: */*", "X-Test: 1"}, headers)

	headers, err = ParseHeaders("")
	require.NoError(t, err)
	assert.Nil(t, headers)

	_, err = ParseHeaders("not a header")
	assert.Error(t, err)
}

func TestFormatHeaders(t *testing.T) {
	out := FormatHeaders([]string{"A: 1", "B: 2"})
	assert.Equal(t, `A: 1\nB: 2`, out)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "scans"), ExpandPath("~/scans"))
	assert.Equal(t, "/tmp/out", ExpandPath("/tmp//out/"))
}

func TestFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordlist.txt")
	assert.False(t, FileExists(path))

	require.NoError(t, os.WriteFile(path, []byte("admin\n"), 0644))
	assert.True(t, FileExists(path))

	assert.False(t, FileExists(filepath.Dir(path)))
}
