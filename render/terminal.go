package render

import (
	"os"

	"golang.org/x/sys/unix"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	_, err := unix.IoctlGetTermios(int(f.Fd()), ioctlGetTermios)
	return err == nil
}

// TerminalWidth returns the column count of the terminal behind f, or
// fallback when f is not a terminal.
func TerminalWidth(f *os.File, fallback int) int {
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return fallback
	}
	return int(ws.Col)
}

// ANSI sequences used by the text renderer.
const (
	bold      = "\033[1m"
	dim       = "\033[2m"
	underline = "\033[4m"
	red       = "\033[31m"
	green     = "\033[32m"
	yellow    = "\033[33m"
	reset     = "\033[0m"
	ClearLine = "\r\033[2K"
)
