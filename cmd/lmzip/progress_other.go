//go:build !linux

package main

// terminalWidth has no implementation outside Linux here; callers fall back
// to a fixed default width.
func terminalWidth() int { return 0 }
