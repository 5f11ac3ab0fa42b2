package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// systemSource reads the local machine. The portable readings come from
// gopsutil; module, adapter and disk identification are per platform.
type systemSource struct{}

// SystemSource returns the Source backed by the local machine
func SystemSource() Source {
	return systemSource{}
}

func (systemSource) Host(ctx context.Context) (HostDetails, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return HostDetails{}, err
	}
	platform := info.Platform
	if info.PlatformVersion != "" {
		platform += " " + info.PlatformVersion
	}
	return HostDetails{
		Hostname: info.Hostname,
		OS:       info.OS,
		Platform: platform,
	}, nil
}

func (systemSource) CPU(ctx context.Context) (CPUDetails, error) {
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return CPUDetails{}, err
	}
	if len(infos) == 0 {
		return CPUDetails{}, fmt.Errorf("no processors reported")
	}

	details := CPUDetails{
		Model:  infos[0].ModelName,
		MaxMHz: infos[0].Mhz,
	}
	details.PhysicalCores, _ = cpu.CountsWithContext(ctx, false)
	details.LogicalCores, _ = cpu.CountsWithContext(ctx, true)
	return details, nil
}

func (systemSource) CPUUsage(ctx context.Context, interval time.Duration) (float64, error) {
	pct, err := cpu.PercentWithContext(ctx, interval, false)
	if err != nil {
		return 0, err
	}
	if len(pct) == 0 {
		return 0, fmt.Errorf("no utilization sample")
	}
	return pct[0], nil
}

func (systemSource) MemoryUsage(ctx context.Context) (MemoryUsage, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemoryUsage{}, err
	}
	return MemoryUsage{TotalBytes: vm.Total, UsedPercent: vm.UsedPercent}, nil
}

func (systemSource) DiskUsage(ctx context.Context, path string) (float64, error) {
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return 0, err
	}
	return usage.UsedPercent, nil
}

func (systemSource) MemoryModules(ctx context.Context) ([]MemoryModule, error) {
	return memoryModules(ctx)
}

func (systemSource) GPUName(ctx context.Context) (string, error) {
	return gpuName(ctx)
}

func (systemSource) Disk(ctx context.Context) (DiskInfo, error) {
	return systemDisk(ctx)
}
