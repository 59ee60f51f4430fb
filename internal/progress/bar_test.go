package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lastLine returns the text after the final carriage return.
func lastLine(buf *bytes.Buffer) string {
	parts := strings.Split(buf.String(), "\r")
	return parts[len(parts)-1]
}

func TestBarRendersProgress(t *testing.T) {
	var buf bytes.Buffer
	b := New(&buf, "train", 10, WithInterval(0), WithBarWidth(10))

	b.Update(5)
	line := lastLine(&buf)
	assert.Contains(t, line, "5/10 (50%)")
	assert.Contains(t, line, "[#####-----]")

	b.Update(10)
	b.Done()
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "10/10 (100%)")
	assert.Contains(t, buf.String(), "[##########]")
}

func TestBarRateLimits(t *testing.T) {
	var buf bytes.Buffer
	b := New(&buf, "train", 100, WithInterval(time.Hour))

	b.Update(1)
	first := buf.Len()
	require.Positive(t, first)

	// Within the interval nothing repaints.
	b.Update(2)
	b.Update(3)
	assert.Equal(t, first, buf.Len())

	// Done always repaints.
	b.Done()
	assert.Greater(t, buf.Len(), first)
	assert.Contains(t, buf.String(), "3/100")
}

func TestBarTruncatesLongLabels(t *testing.T) {
	var buf bytes.Buffer
	b := New(&buf, "an-unreasonably-long-partition-name", 1, WithInterval(0))

	b.Update(0)
	line := lastLine(&buf)
	assert.Contains(t, line, "…")
	assert.NotContains(t, line, "an-unreasonably-long-partition-name")
}

func TestBarZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	b := New(&buf, "empty", 0, WithInterval(0))

	b.Update(0)
	assert.Contains(t, lastLine(&buf), "0/0 (0%)")
	b.Done()
}

func TestBarFillWidth(t *testing.T) {
	var buf bytes.Buffer
	b := New(&buf, "t", 4, WithInterval(0), WithBarWidth(8))

	b.Update(1)
	line := lastLine(&buf)
	start := strings.Index(line, "[")
	end := strings.Index(line, "]")
	require.Greater(t, end, start)
	assert.Len(t, line[start+1:end], 8)
}
