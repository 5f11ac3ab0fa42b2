//go:build !windows

package gui

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// AcquireSingleInstance takes an exclusive lock so only one GUI runs at a
// time. It returns false when another instance holds the lock. The release
// function must be called on exit.
func AcquireSingleInstance() (release func(), ok bool) {
	lockPath := filepath.Join(os.TempDir(), "bottleneck-gui.lock")

	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_WRONLY, 0o600) // #nosec G304 -- fixed lock path
	if err != nil {
		DebugLog("INSTANCE", "cannot open lock file: %v", err)
		return func() {}, true
	}

	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = lockFile.Close()
		DebugLog("INSTANCE", "another instance is already running: %v", err)
		return func() {}, false
	}

	_ = lockFile.Truncate(0)
	fmt.Fprintf(lockFile, "%d", os.Getpid())

	return func() {
		_ = syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)
		_ = lockFile.Close()
		_ = os.Remove(lockPath)
	}, true
}
