// Package progress renders a single-line textual progress bar for long
// generation runs.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	defaultBarWidth   = 30
	defaultLabelWidth = 12
	defaultInterval   = 200 * time.Millisecond
)

// Bar is a rate-limited progress bar. Updates arrive from many worker
// goroutines; rendering is advisory and a render is skipped when one
// happened within the interval, so workers never stall on terminal I/O.
type Bar struct {
	mu         sync.Mutex
	w          io.Writer
	label      string
	total      int
	completed  int
	barWidth   int
	labelWidth int
	interval   time.Duration
	lastRender time.Time
	lastWidth  int
}

// Option configures a Bar.
type Option func(*Bar)

// WithInterval sets the minimum time between repaints. Zero repaints on
// every update.
func WithInterval(d time.Duration) Option {
	return func(b *Bar) {
		b.interval = d
	}
}

// WithBarWidth sets the width of the fill section in cells.
func WithBarWidth(n int) Option {
	return func(b *Bar) {
		b.barWidth = n
	}
}

// New creates a bar for total units of work, labeled with the partition
// name.
func New(w io.Writer, label string, total int, opts ...Option) *Bar {
	b := &Bar{
		w:          w,
		label:      label,
		total:      total,
		barWidth:   defaultBarWidth,
		labelWidth: defaultLabelWidth,
		interval:   defaultInterval,
	}
	for _, o := range opts {
		o(b)
	}
	if b.barWidth < 1 {
		b.barWidth = 1
	}
	return b
}

// Update records completed units and repaints unless a repaint happened
// within the interval.
func (b *Bar) Update(completed int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.completed = completed
	b.render(time.Now(), false)
}

// Done forces a final repaint and moves to the next line.
func (b *Bar) Done() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.render(time.Now(), true)
	fmt.Fprint(b.w, "\n") //nolint:errcheck
}

func (b *Bar) render(now time.Time, force bool) {
	if !force && now.Sub(b.lastRender) < b.interval {
		return
	}
	b.lastRender = now

	line := b.line()
	// Pad over any leftovers from a longer previous line.
	if pad := b.lastWidth - runewidth.StringWidth(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	b.lastWidth = runewidth.StringWidth(line)
	fmt.Fprintf(b.w, "\r%s", line) //nolint:errcheck
}

func (b *Bar) line() string {
	total := b.total
	if total < 1 {
		total = 1
	}
	ratio := float64(b.completed) / float64(total)
	if ratio > 1 {
		ratio = 1
	}

	filled := int(ratio * float64(b.barWidth))
	bar := strings.Repeat("#", filled) + strings.Repeat("-", b.barWidth-filled)
	label := runewidth.FillRight(runewidth.Truncate(b.label, b.labelWidth, "…"), b.labelWidth)
	return fmt.Sprintf("%s [%s] %d/%d (%d%%)", label, bar, b.completed, b.total, int(ratio*100))
}

// TerminalWidth reports the width of the terminal attached to fd, or 0 when
// fd is not a terminal.
func TerminalWidth(fd int) int {
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}
