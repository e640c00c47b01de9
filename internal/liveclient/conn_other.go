//go:build !windows

package liveclient

import "syscall"

var refusedErrnos = []error{syscall.ECONNREFUSED}
