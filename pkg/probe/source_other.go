//go:build !windows

package probe

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/jaypipes/ghw"
	"github.com/jaypipes/ghw/pkg/block"
)

func defaultRoot() string {
	return "/"
}

func memoryModules(_ context.Context) ([]MemoryModule, error) {
	info, err := ghw.Memory(ghw.WithDisableWarnings())
	if err != nil {
		return nil, fmt.Errorf("failed to read memory info: %w", err)
	}

	modules := make([]MemoryModule, 0, len(info.Modules))
	for _, m := range info.Modules {
		if m == nil || m.SizeBytes <= 0 {
			continue
		}
		modules = append(modules, MemoryModule{
			Manufacturer:  m.Vendor,
			CapacityBytes: uint64(m.SizeBytes),
		})
	}
	return modules, nil
}

func gpuName(ctx context.Context) (string, error) {
	if name := nvidiaGPUName(ctx); name != "" {
		return name, nil
	}

	info, err := ghw.GPU(ghw.WithDisableWarnings())
	if err != nil {
		return "", fmt.Errorf("failed to read graphics cards: %w", err)
	}
	for _, card := range info.GraphicsCards {
		if card == nil || card.DeviceInfo == nil {
			continue
		}
		dev := card.DeviceInfo
		var parts []string
		if dev.Vendor != nil && dev.Vendor.Name != "" {
			parts = append(parts, dev.Vendor.Name)
		}
		if dev.Product != nil && dev.Product.Name != "" {
			parts = append(parts, dev.Product.Name)
		}
		if len(parts) > 0 {
			return strings.Join(parts, " "), nil
		}
	}
	return "", fmt.Errorf("no graphics cards found")
}

// nvidiaGPUName asks nvidia-smi for the first GPU's marketing name
func nvidiaGPUName(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "nvidia-smi", "--query-gpu=name", "--format=csv,noheader")
	output, err := cmd.Output()
	if err != nil {
		return "" // nvidia-smi not available or no NVIDIA GPU
	}
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	return strings.TrimSpace(lines[0])
}

func systemDisk(_ context.Context) (DiskInfo, error) {
	info, err := ghw.Block(ghw.WithDisableWarnings())
	if err != nil {
		return DiskInfo{}, fmt.Errorf("failed to read block devices: %w", err)
	}

	for _, d := range info.Disks {
		if d == nil || d.IsRemovable {
			continue
		}
		kind, ok := driveKind(d.DriveType)
		if !ok {
			continue
		}

		model := strings.TrimSpace(strings.ReplaceAll(d.Model, "_", " "))
		return DiskInfo{Model: model, Kind: kind}, nil
	}
	return DiskInfo{}, fmt.Errorf("no fixed disks found")
}

// driveKind maps a ghw drive type to a DiskKind. Loop, ram and optical
// devices are not system disks.
func driveKind(t block.DriveType) (DiskKind, bool) {
	switch t {
	case block.DRIVE_TYPE_SSD:
		return DiskKindSSD, true
	case block.DRIVE_TYPE_HDD:
		return DiskKindHDD, true
	default:
		return DiskKindUnknown, false
	}
}
