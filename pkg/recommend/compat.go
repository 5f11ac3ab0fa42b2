package recommend

import (
	"fmt"
	"strings"

	"github.com/mscrnt/project_bottleneck/pkg/bottleneck"
	"github.com/mscrnt/project_bottleneck/pkg/catalog"
)

// Note is a compatibility remark attached to a recommendation
type Note struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Compatibility checks a candidate against the part it would replace.
// Only facts derivable from the model names are checked.
func Compatibility(c bottleneck.Component, current string, candidate catalog.Record) []Note {
	var notes []Note

	switch c {
	case bottleneck.CPU:
		from, to := cpuVendor(current), cpuVendor(candidate.Brand+" "+candidate.Model)
		if from != "" && to != "" && from != to {
			notes = append(notes, Note{
				Kind:    "socket",
				Message: fmt.Sprintf("switching from %s to %s needs a new motherboard (different socket)", from, to),
			})
		}
	case bottleneck.RAM:
		from, to := ddrGeneration(current), ddrGeneration(candidate.Model)
		if from != "" && to != "" && from != to {
			notes = append(notes, Note{
				Kind:    "memory",
				Message: fmt.Sprintf("%s modules do not fit %s slots; the motherboard must support %s", to, from, to),
			})
		}
	case bottleneck.SSD:
		model := strings.ToLower(candidate.Model)
		if strings.Contains(model, "nvme") || strings.Contains(model, "m.2") {
			notes = append(notes, Note{
				Kind:    "interface",
				Message: "needs a free M.2 NVMe slot",
			})
		}
	}

	return notes
}

func cpuVendor(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "intel") || strings.Contains(lower, "core i") || strings.Contains(lower, "xeon"):
		return "Intel"
	case strings.Contains(lower, "amd") || strings.Contains(lower, "ryzen") || strings.Contains(lower, "threadripper"):
		return "AMD"
	}
	return ""
}

func ddrGeneration(name string) string {
	upper := strings.ToUpper(name)
	for _, gen := range []string{"DDR5", "DDR4", "DDR3"} {
		if strings.Contains(upper, gen) {
			return gen
		}
	}
	return ""
}
