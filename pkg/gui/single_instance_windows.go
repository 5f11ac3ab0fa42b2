//go:build windows

package gui

import (
	"errors"

	"golang.org/x/sys/windows"
)

const mutexName = `Global\Bottleneck_SingleInstance_Mutex`

// AcquireSingleInstance creates a named mutex so only one GUI runs at a
// time. It returns false when another instance owns the mutex. The release
// function must be called on exit.
func AcquireSingleInstance() (release func(), ok bool) {
	name, err := windows.UTF16PtrFromString(mutexName)
	if err != nil {
		DebugLog("INSTANCE", "failed to create mutex name: %v", err)
		return func() {}, true
	}

	handle, err := windows.CreateMutex(nil, false, name)
	if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
		if handle != 0 {
			_ = windows.CloseHandle(handle)
		}
		DebugLog("INSTANCE", "another instance is already running")
		return func() {}, false
	}
	if err != nil {
		// Run without the guard
		DebugLog("INSTANCE", "failed to create mutex: %v", err)
		return func() {}, true
	}

	return func() { _ = windows.CloseHandle(handle) }, true
}
