// Package progress provides rewritable terminal progress lines.
package progress

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// DefaultFlushInterval is a reasonable default flush interval.
const DefaultFlushInterval = time.Second / 30

// Rewritable writes a single line to a terminal, overwriting the previously
// written line on every update.
type Rewritable struct {
	Writer io.Writer

	FlushInterval time.Duration // minimum time between flushes

	lastFlush time.Time // last time we flushed
	longest   int       // longest content ever flushed
	content   string    // current content
}

// Write replaces the current content and flushes if due.
func (rw *Rewritable) Write(value string) {
	rw.content = value
	rw.Flush(false)
}

// Flush writes the current content to the underlying writer.
// Unless force is set, flushes within FlushInterval of the previous one are
// skipped.
func (rw *Rewritable) Flush(force bool) {
	if !(force || time.Since(rw.lastFlush) > rw.FlushInterval) {
		return
	}

	if len(rw.content) >= rw.longest {
		rw.longest = len(rw.content)
	}

	// blank out any leftover of a longer previous line
	blank := strings.Repeat(" ", rw.longest-len(rw.content))
	fmt.Fprintf(rw.Writer, "\r%s%s", rw.content, blank)

	rw.lastFlush = time.Now()
}

// Close blanks the line and resets the cursor.
func (rw *Rewritable) Close() {
	rw.content = ""
	rw.Flush(true)
	_, _ = rw.Writer.Write([]byte("\r"))
}

// Tracker tracks completion of a fixed number of units of work and renders
// count, percentage, rate and a completion estimate.
type Tracker struct {
	Rewritable

	start time.Time
}

// Set updates the tracker to done out of total completed units.
// The first call starts the clock for rate and ETA estimation.
func (tracker *Tracker) Set(prefix string, done, total int) {
	if tracker.start.IsZero() {
		tracker.start = time.Now()
	}

	if total <= 0 {
		tracker.Rewritable.Write(fmt.Sprintf("%s: %s", prefix, humanize.Comma(int64(done))))
		return
	}

	elapsed := time.Since(tracker.start).Seconds()
	percent := float64(done) * 100 / float64(total)

	var rate float64
	eta := "unknown"
	if elapsed > 1e-9 && done > 0 {
		rate = float64(done) / elapsed
		left := time.Duration(float64(total-done) / rate * float64(time.Second))
		eta = formatETA(left)
	}

	tracker.Rewritable.Write(fmt.Sprintf(
		"%s: %s/%s (%.1f%%), %.2f/s, ETA %s",
		prefix, humanize.Comma(int64(done)), humanize.Comma(int64(total)), percent, rate, eta,
	))
}

// formatETA formats a duration as h:mm:ss, or m:ss when below an hour.
func formatETA(d time.Duration) string {
	if d < 0 {
		return "unknown"
	}

	seconds := int(d.Round(time.Second).Seconds())
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
