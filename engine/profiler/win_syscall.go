//go:build profile && windows

package profiler

import "syscall"

// hideWindowAttr keeps the viewer from flashing a console window.
func hideWindowAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{HideWindow: true}
}
