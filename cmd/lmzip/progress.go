package main

import (
	"fmt"
	"os"
)

// progressBar renders a single-line, in-place progress meter to stderr,
// sized to the terminal width where that can be determined. It mirrors the
// teacher's own cmd-line tools in keeping terminal handling isolated behind
// a small platform-specific helper (terminalWidth) rather than spread
// through the rendering logic.
type progressBar struct {
	width int
	last  int
}

func newProgressBar() *progressBar {
	width := terminalWidth()
	if width <= 0 {
		width = 80
	}
	return &progressBar{width: width}
}

func (b *progressBar) update(fraction float64) {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	barWidth := b.width - len(" 100%  []")
	if barWidth < 10 {
		barWidth = 10
	}
	filled := int(fraction * float64(barWidth))
	if filled == b.last {
		return
	}
	b.last = filled
	fmt.Fprintf(os.Stderr, "\r[%s%s] %3.0f%%",
		repeat('=', filled), repeat(' ', barWidth-filled), fraction*100)
}

func (b *progressBar) finish() {
	fmt.Fprintln(os.Stderr)
}

func repeat(c byte, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = c
	}
	return string(buf)
}
