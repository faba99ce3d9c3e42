//go:build linux

package main

import "golang.org/x/sys/unix"

// terminalWidth returns the current width of stderr's controlling terminal,
// or 0 if it cannot be determined (stderr redirected to a file or pipe).
func terminalWidth() int {
	ws, err := unix.IoctlGetWinsize(2, unix.TIOCGWINSZ)
	if err != nil {
		return 0
	}
	return int(ws.Col)
}
