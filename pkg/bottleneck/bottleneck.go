// Package bottleneck scores the detected components against the benchmark
// catalog and names the one most likely to limit the system.
package bottleneck

import (
	"fmt"
	"math"
	"strings"
)

// Component is a hardware slot taking part in the evaluation
type Component string

const (
	CPU Component = "CPU"
	GPU Component = "GPU"
	RAM Component = "RAM"
	SSD Component = "SSD"

	// Balanced and Unknown are verdict outcomes, not hardware
	Balanced Component = "Balanced"
	Unknown  Component = "Unknown"
)

// Components lists the evaluated hardware in ladder order
var Components = []Component{CPU, GPU, RAM, SSD}

// ParseComponent converts user input such as "gpu" to a Component
func ParseComponent(s string) (Component, bool) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for _, c := range Components {
		if string(c) == want {
			return c, true
		}
	}
	return "", false
}

// Thresholds are the hand-tuned constants of the decision ladder
type Thresholds struct {
	// CPU/GPU score ratio below which the CPU is the bottleneck
	CPUWeakRatio float64 `yaml:"cpu_weak_ratio" json:"cpu_weak_ratio"`
	// CPU/GPU score ratio above which the GPU is the bottleneck
	GPUWeakRatio float64 `yaml:"gpu_weak_ratio" json:"gpu_weak_ratio"`
	// RAM is the bottleneck below this fraction of the weaker of CPU and GPU
	RAMFraction float64 `yaml:"ram_fraction" json:"ram_fraction"`
	// SSD is the bottleneck below this fraction of the weakest of CPU, GPU and RAM
	SSDFraction float64 `yaml:"ssd_fraction" json:"ssd_fraction"`
}

// DefaultThresholds returns the stock ladder constants
func DefaultThresholds() Thresholds {
	return Thresholds{
		CPUWeakRatio: 0.5,
		GPUWeakRatio: 2.0,
		RAMFraction:  0.5,
		SSDFraction:  0.3,
	}
}

// Validate checks that the thresholds describe a usable ladder
func (t Thresholds) Validate() error {
	if t.CPUWeakRatio <= 0 {
		return fmt.Errorf("cpu_weak_ratio must be > 0")
	}
	if t.GPUWeakRatio < t.CPUWeakRatio {
		return fmt.Errorf("gpu_weak_ratio must be >= cpu_weak_ratio")
	}
	if t.RAMFraction < 0 || t.SSDFraction < 0 {
		return fmt.Errorf("ram_fraction and ssd_fraction must be >= 0")
	}
	return nil
}

// Scores holds one benchmark score per component, zero when unmatched
type Scores struct {
	CPU float64 `json:"cpu"`
	GPU float64 `json:"gpu"`
	RAM float64 `json:"ram"`
	SSD float64 `json:"ssd"`
}

// Get returns the score for c
func (s Scores) Get(c Component) float64 {
	switch c {
	case CPU:
		return s.CPU
	case GPU:
		return s.GPU
	case RAM:
		return s.RAM
	case SSD:
		return s.SSD
	}
	return 0
}

// Verdict is the outcome of the decision ladder
type Verdict struct {
	Component Component `json:"component"`
	Label     string    `json:"label"`
	Scores    Scores    `json:"scores"`
	// Ratio is CPU/GPU; +Inf when the GPU score is zero
	Ratio float64 `json:"-"`
}

// Evaluate runs the decision ladder. Checks are applied in a fixed order
// and the first that fires wins.
func Evaluate(s Scores, t Thresholds) Verdict {
	v := Verdict{Scores: s}

	if s.CPU == 0 && s.GPU == 0 {
		v.Component = Unknown
		v.Label = "Unknown (insufficient benchmark data)"
		v.Ratio = math.NaN()
		return v
	}

	v.Ratio = math.Inf(1)
	if s.GPU != 0 {
		v.Ratio = s.CPU / s.GPU
	}

	switch {
	case v.Ratio < t.CPUWeakRatio:
		v.Component = CPU
		v.Label = "CPU (significantly weaker than GPU)"
	case v.Ratio > t.GPUWeakRatio:
		v.Component = GPU
		v.Label = "GPU (significantly weaker than CPU)"
	case s.RAM < math.Min(s.CPU, s.GPU)*t.RAMFraction:
		v.Component = RAM
		v.Label = "RAM (significantly slower than CPU/GPU)"
	case s.SSD < math.Min(s.CPU, math.Min(s.GPU, s.RAM))*t.SSDFraction:
		v.Component = SSD
		v.Label = "SSD (significantly slower than other components)"
	default:
		v.Component = Balanced
		v.Label = "Balanced system (no significant bottleneck)"
	}

	return v
}

// IsBottleneck reports whether the verdict names a hardware component
func (v Verdict) IsBottleneck() bool {
	switch v.Component {
	case CPU, GPU, RAM, SSD:
		return true
	}
	return false
}

// Advice returns a one-line upgrade suggestion for the verdict
func (v Verdict) Advice() string {
	switch v.Component {
	case CPU:
		return "Consider upgrading your CPU for better performance."
	case GPU:
		return "Consider upgrading your GPU for better graphics performance."
	case RAM:
		return "Consider adding more RAM for better multitasking."
	case SSD:
		return "Consider upgrading to a faster SSD."
	case Unknown:
		return "Not enough of your hardware was found in the benchmark tables to judge."
	default:
		return "Your system is well-balanced."
	}
}

// RatioText formats the CPU/GPU ratio for display
func (v Verdict) RatioText() string {
	switch {
	case math.IsNaN(v.Ratio):
		return "n/a"
	case math.IsInf(v.Ratio, 1):
		return "inf"
	}
	return fmt.Sprintf("%.2f", v.Ratio)
}
