// Package probe collects a snapshot of the local machine's hardware and
// current utilization.
package probe

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"
)

// Placeholders used when a component cannot be identified
const (
	UnknownCPU  = "Unknown CPU"
	UnknownRAM  = "Unknown RAM"
	UnknownGPU  = "Unknown GPU"
	UnknownDisk = "Unknown Disk"
)

// Percent is a utilization figure in [0,100], or Unavailable
type Percent float64

// Unavailable marks a utilization figure that could not be read
const Unavailable Percent = -1

// NewPercent clamps v into [0,100]. NaN and infinities become Unavailable.
func NewPercent(v float64) Percent {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Unavailable
	}
	return Percent(math.Min(100, math.Max(0, v)))
}

// Valid reports whether the value was actually measured
func (p Percent) Valid() bool {
	return p >= 0
}

func (p Percent) String() string {
	if !p.Valid() {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", float64(p))
}

// DiskKind is the storage medium of the system disk
type DiskKind string

const (
	DiskKindSSD     DiskKind = "ssd"
	DiskKindHDD     DiskKind = "hdd"
	DiskKindUnknown DiskKind = "unknown"
)

// DiskInfo identifies the system disk
type DiskInfo struct {
	Model string
	Kind  DiskKind
}

// CPUDetails is the static description of the processor
type CPUDetails struct {
	Model         string
	PhysicalCores int
	LogicalCores  int
	MaxMHz        float64
}

// MemoryUsage is the current system memory utilization
type MemoryUsage struct {
	TotalBytes  uint64
	UsedPercent float64
}

// HostDetails describes the operating system
type HostDetails struct {
	Hostname string
	OS       string
	Platform string
}

// Snapshot is one reading of the machine. A new snapshot replaces the
// previous one entirely; nothing is merged between readings.
type Snapshot struct {
	TakenAt time.Time `json:"taken_at"`

	Hostname string `json:"hostname,omitempty"`
	OS       string `json:"os,omitempty"`
	Platform string `json:"platform,omitempty"`

	CPUModel      string  `json:"cpu_model"`
	CPUUsage      Percent `json:"cpu_usage"`
	PhysicalCores int     `json:"physical_cores"`
	LogicalCores  int     `json:"logical_cores"`
	CPUMaxMHz     float64 `json:"cpu_max_mhz,omitempty"`

	RAMModel   string  `json:"ram_model"`
	RAMUsage   Percent `json:"ram_usage"`
	RAMTotalGB float64 `json:"ram_total_gb"`

	GPUModel string `json:"gpu_model"`

	DiskModel string   `json:"disk_model"`
	DiskKind  DiskKind `json:"disk_kind"`
	DiskUsage Percent  `json:"disk_usage"`
}

// Summary renders the hardware and usage lines shown to the user
func (s Snapshot) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CPU: %s\n", s.CPUModel)
	fmt.Fprintf(&b, "CPU Usage: %s\n", s.CPUUsage)
	fmt.Fprintf(&b, "RAM: %s\n", s.RAMModel)
	fmt.Fprintf(&b, "RAM Usage: %s\n", s.RAMUsage)
	fmt.Fprintf(&b, "GPU: %s\n", s.GPUModel)
	fmt.Fprintf(&b, "Disk Usage: %s", s.DiskUsage)
	return b.String()
}

// Source provides raw hardware readings. Implementations return errors
// freely; the Prober turns them into placeholders.
type Source interface {
	Host(ctx context.Context) (HostDetails, error)
	CPU(ctx context.Context) (CPUDetails, error)
	CPUUsage(ctx context.Context, interval time.Duration) (float64, error)
	MemoryModules(ctx context.Context) ([]MemoryModule, error)
	MemoryUsage(ctx context.Context) (MemoryUsage, error)
	GPUName(ctx context.Context) (string, error)
	Disk(ctx context.Context) (DiskInfo, error)
	DiskUsage(ctx context.Context, path string) (float64, error)
}

// Prober builds snapshots from a Source
type Prober struct {
	source   Source
	root     string
	interval time.Duration
	logger   *log.Logger
}

// Option configures a Prober
type Option func(*Prober)

// WithRoot sets the volume whose usage is reported
func WithRoot(path string) Option {
	return func(p *Prober) { p.root = path }
}

// WithSampleInterval sets how long CPU utilization is sampled for. Zero
// compares against the previous call, which reads 0% on the first call.
func WithSampleInterval(d time.Duration) Option {
	return func(p *Prober) { p.interval = d }
}

// WithLogger sets the logger used for probe failures
func WithLogger(l *log.Logger) Option {
	return func(p *Prober) { p.logger = l }
}

// New creates a Prober reading the local machine
func New(opts ...Option) *Prober {
	return NewWithSource(SystemSource(), opts...)
}

// NewWithSource creates a Prober reading from src
func NewWithSource(src Source, opts ...Option) *Prober {
	p := &Prober{
		source:   src,
		root:     defaultRoot(),
		interval: 500 * time.Millisecond,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe reads the machine once. It never fails: every component that
// cannot be read is reported with a placeholder.
func (p *Prober) Probe(ctx context.Context) Snapshot {
	snap := Snapshot{
		TakenAt:   time.Now(),
		CPUModel:  UnknownCPU,
		CPUUsage:  Unavailable,
		RAMModel:  UnknownRAM,
		RAMUsage:  Unavailable,
		GPUModel:  UnknownGPU,
		DiskModel: UnknownDisk,
		DiskKind:  DiskKindUnknown,
		DiskUsage: Unavailable,
	}

	if host, err := p.source.Host(ctx); err != nil {
		p.logf("host info: %v", err)
	} else {
		snap.Hostname = host.Hostname
		snap.OS = host.OS
		snap.Platform = host.Platform
	}

	// CPU
	if cpu, err := p.source.CPU(ctx); err != nil {
		p.logf("cpu info: %v", err)
	} else {
		if model := strings.TrimSpace(cpu.Model); model != "" {
			snap.CPUModel = model
		}
		snap.PhysicalCores = cpu.PhysicalCores
		snap.LogicalCores = cpu.LogicalCores
		snap.CPUMaxMHz = cpu.MaxMHz
	}
	if usage, err := p.source.CPUUsage(ctx, p.interval); err != nil {
		p.logf("cpu usage: %v", err)
	} else {
		snap.CPUUsage = NewPercent(usage)
	}

	// Memory
	if modules, err := p.source.MemoryModules(ctx); err != nil {
		p.logf("memory modules: %v", err)
	} else {
		snap.RAMModel = RAMLabel(modules)
	}
	if mem, err := p.source.MemoryUsage(ctx); err != nil {
		p.logf("memory usage: %v", err)
	} else {
		snap.RAMUsage = NewPercent(mem.UsedPercent)
		snap.RAMTotalGB = float64(mem.TotalBytes) / (1024 * 1024 * 1024)
	}

	// GPU
	if name, err := p.source.GPUName(ctx); err != nil {
		p.logf("error getting GPU info: %v", err)
	} else if name = strings.TrimSpace(name); name != "" {
		snap.GPUModel = name
	}

	// Disk
	if disk, err := p.source.Disk(ctx); err != nil {
		p.logf("disk info: %v", err)
	} else {
		if model := strings.TrimSpace(disk.Model); model != "" {
			snap.DiskModel = model
		}
		if disk.Kind != "" {
			snap.DiskKind = disk.Kind
		}
	}
	if usage, err := p.source.DiskUsage(ctx, p.root); err != nil {
		p.logf("disk usage for %s: %v", p.root, err)
	} else {
		snap.DiskUsage = NewPercent(usage)
	}

	return snap
}

func (p *Prober) logf(format string, args ...interface{}) {
	if p.logger == nil {
		return
	}
	p.logger.Printf("[PROBE] "+format, args...)
}

// Probe reads the local machine with default settings
func Probe(ctx context.Context) Snapshot {
	return New().Probe(ctx)
}

// kindFromModel guesses the medium from a drive's model string
func kindFromModel(model string) DiskKind {
	lower := strings.ToLower(model)
	for _, hint := range []string{"ssd", "nvme", "solid state"} {
		if strings.Contains(lower, hint) {
			return DiskKindSSD
		}
	}
	return DiskKindUnknown
}
