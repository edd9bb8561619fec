package spinner

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsAndClears(t *testing.T) {
	var out syncBuffer
	s := Start(&out, "Running 3 check(s)")

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Running 3 check(s)")
	}, time.Second, 10*time.Millisecond)

	s.Update("Running checks [2/3]")
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Running checks [2/3]")
	}, time.Second, 10*time.Millisecond)

	s.Stop()
	got := out.String()
	assert.True(t, strings.HasSuffix(got, "\r"), "line should be cleared, got %q", got)

	// a second Stop is a no-op
	s.Stop()
	assert.Equal(t, got, out.String())
}

func TestSpinnerStopBeforeFirstFrame(t *testing.T) {
	var out syncBuffer
	s := Start(&out, "quick")
	s.Stop()

	assert.Equal(t, "\r\r", out.String())
}
