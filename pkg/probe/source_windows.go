//go:build windows

package probe

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/yusufpapurcu/wmi"
)

// win32PhysicalMemory mirrors the Win32_PhysicalMemory fields we read
type win32PhysicalMemory struct {
	Capacity             uint64
	ConfiguredClockSpeed uint32
	Manufacturer         string
	MemoryType           uint16
	SMBIOSMemoryType     uint32
	Speed                uint32
}

// win32VideoController mirrors the Win32_VideoController fields we read
type win32VideoController struct {
	Name string
}

// win32DiskDrive mirrors the Win32_DiskDrive fields we read
type win32DiskDrive struct {
	Index uint32
	Model string
}

// msftPhysicalDisk mirrors MSFT_PhysicalDisk from the storage namespace
type msftPhysicalDisk struct {
	DeviceId     string
	FriendlyName string
	MediaType    uint16
}

// MSFT_PhysicalDisk media types
const (
	msftMediaHDD = 3
	msftMediaSSD = 4
)

func defaultRoot() string {
	if drive := os.Getenv("SystemDrive"); drive != "" {
		return drive + `\`
	}
	return `C:\`
}

func memoryModules(_ context.Context) ([]MemoryModule, error) {
	var results []win32PhysicalMemory
	err := wmi.Query("SELECT Capacity, ConfiguredClockSpeed, Manufacturer, MemoryType, SMBIOSMemoryType, Speed FROM Win32_PhysicalMemory", &results)
	if err != nil {
		return nil, fmt.Errorf("WMI query failed: %w", err)
	}

	modules := make([]MemoryModule, 0, len(results))
	for _, r := range results {
		m := MemoryModule{
			Manufacturer:  r.Manufacturer,
			CapacityBytes: r.Capacity,
			SpeedMHz:      int(r.Speed),
			SMBIOSType:    int(r.SMBIOSMemoryType),
		}
		if m.SpeedMHz == 0 {
			m.SpeedMHz = int(r.ConfiguredClockSpeed)
		}
		// Older firmware leaves SMBIOSMemoryType empty and only fills MemoryType
		if m.SMBIOSType == 0 {
			m.SMBIOSType = int(r.MemoryType)
		}
		modules = append(modules, m)
	}
	return modules, nil
}

func gpuName(_ context.Context) (string, error) {
	var results []win32VideoController
	if err := wmi.Query("SELECT Name FROM Win32_VideoController", &results); err != nil {
		return "", fmt.Errorf("WMI query failed: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("no display adapters found")
	}
	return results[0].Name, nil
}

func systemDisk(_ context.Context) (DiskInfo, error) {
	var drives []win32DiskDrive
	if err := wmi.Query("SELECT Index, Model FROM Win32_DiskDrive", &drives); err != nil {
		return DiskInfo{}, fmt.Errorf("WMI query failed: %w", err)
	}
	if len(drives) == 0 {
		return DiskInfo{}, fmt.Errorf("no disk drives found")
	}
	sort.Slice(drives, func(i, j int) bool { return drives[i].Index < drives[j].Index })

	info := DiskInfo{
		Model: strings.TrimSpace(drives[0].Model),
		Kind:  kindFromModel(drives[0].Model),
	}

	// The storage namespace knows the medium; it is absent on older Windows
	var disks []msftPhysicalDisk
	err := wmi.QueryNamespace("SELECT DeviceId, FriendlyName, MediaType FROM MSFT_PhysicalDisk", &disks, `root\Microsoft\Windows\Storage`)
	if err == nil {
		want := fmt.Sprintf("%d", drives[0].Index)
		for _, d := range disks {
			if d.DeviceId != want {
				continue
			}
			switch d.MediaType {
			case msftMediaSSD:
				info.Kind = DiskKindSSD
			case msftMediaHDD:
				info.Kind = DiskKindHDD
			}
		}
	}

	return info, nil
}
