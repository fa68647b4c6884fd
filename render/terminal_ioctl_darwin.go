//go:build darwin

package render

import "golang.org/x/sys/unix"

const ioctlGetTermios = unix.TIOCGETA
