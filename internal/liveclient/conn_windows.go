//go:build windows

package liveclient

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// Winsock reports a refused connect as WSAECONNREFUSED, which
// syscall.ECONNREFUSED does not match.
var refusedErrnos = []error{windows.WSAECONNREFUSED, syscall.ECONNREFUSED}
