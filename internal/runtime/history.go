package runtime

import "sync"

// LineBuffer is a fixed-capacity ring of output lines. Once full, appending
// drops the oldest line so long scans cannot grow memory without bound.
type LineBuffer struct {
	mu    sync.RWMutex
	lines []string
	cap   int
	start int
	count int
}

// NewLineBuffer creates a line buffer holding at most capacity lines.
func NewLineBuffer(capacity int) *LineBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &LineBuffer{
		lines: make([]string, capacity),
		cap:   capacity,
	}
}

// Append adds a line, evicting the oldest when full.
func (b *LineBuffer) Append(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	end := (b.start + b.count) % b.cap
	b.lines[end] = line
	if b.count < b.cap {
		b.count++
	} else {
		b.start = (b.start + 1) % b.cap
	}
}

// Lines returns the buffered lines, oldest first.
func (b *LineBuffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]string, 0, b.count)
	for i := 0; i < b.count; i++ {
		out = append(out, b.lines[(b.start+i)%b.cap])
	}
	return out
}

// Len returns the number of buffered lines.
func (b *LineBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// Reset clears the buffer.
func (b *LineBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.start = 0
	b.count = 0
}
