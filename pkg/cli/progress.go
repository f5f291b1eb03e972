package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const progressWidth = 30

// RowProgress draws a single-line progress bar for a conversion run.
// It satisfies export.Progress. The bar is redrawn only when the whole
// percentage changes, so large inputs do not flood the terminal.
type RowProgress struct {
	mu      sync.Mutex
	writer  io.Writer
	label   string
	total   int64
	current int64
	drawn   int // last drawn percentage, -1 before the first draw
	started time.Time
}

// NewRowProgress creates a progress bar labelled with the schema name.
// A nil writer means os.Stderr, which keeps the bar off the records stream.
func NewRowProgress(w io.Writer, label string) *RowProgress {
	if w == nil {
		w = os.Stderr
	}
	if label == "" {
		label = "rows"
	}
	return &RowProgress{writer: w, label: label, drawn: -1}
}

// Start resets the bar for a run over total rows.
func (p *RowProgress) Start(total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = total
	p.current = 0
	p.drawn = -1
	p.started = time.Now()
	p.render(false)
}

// Update records the index of the row being converted.
func (p *RowProgress) Update(current int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = min(current, p.total)
	p.render(false)
}

// Finish draws the completed bar and ends the line.
func (p *RowProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.total == 0 {
		return
	}
	p.current = p.total
	p.render(true)
	fmt.Fprintln(p.writer)
}

func (p *RowProgress) render(force bool) {
	if p.total <= 0 {
		return
	}

	percent := int(p.current * 100 / p.total)
	if percent == p.drawn && !force {
		return
	}
	p.drawn = percent

	filled := progressWidth * percent / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressWidth-filled)

	rate := 0.0
	if elapsed := time.Since(p.started).Seconds(); elapsed > 0 {
		rate = float64(p.current) / elapsed
	}

	fmt.Fprintf(p.writer, "\r%s [%s] %3d%% %d/%d rows, %.0f rows/s",
		p.label, bar, percent, p.current, p.total, rate)
}
