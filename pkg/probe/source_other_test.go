//go:build !windows

package probe

import (
	"testing"

	"github.com/jaypipes/ghw/pkg/block"
)

func TestDriveKind(t *testing.T) {
	tests := []struct {
		in     block.DriveType
		want   DiskKind
		wantOK bool
	}{
		{block.DRIVE_TYPE_SSD, DiskKindSSD, true},
		{block.DRIVE_TYPE_HDD, DiskKindHDD, true},
		{block.DRIVE_TYPE_ODD, DiskKindUnknown, false},
		{block.DRIVE_TYPE_VIRTUAL, DiskKindUnknown, false},
		{block.DRIVE_TYPE_UNKNOWN, DiskKindUnknown, false},
	}

	for _, tt := range tests {
		got, ok := driveKind(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("driveKind(%v) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
