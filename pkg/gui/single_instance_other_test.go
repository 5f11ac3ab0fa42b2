//go:build !windows

package gui

import "testing"

func TestAcquireSingleInstance(t *testing.T) {
	release, ok := AcquireSingleInstance()
	if !ok {
		t.Skip("another instance holds the lock")
	}

	if second, ok := AcquireSingleInstance(); ok {
		second()
		release()
		t.Fatal("second AcquireSingleInstance succeeded while the lock was held")
	}

	release()

	again, ok := AcquireSingleInstance()
	if !ok {
		t.Fatal("lock not released")
	}
	again()
}
