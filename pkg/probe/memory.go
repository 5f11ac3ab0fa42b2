package probe

import (
	"fmt"
	"strings"
)

// SMBIOS memory type codes that get a name in RAM labels
const (
	SMBIOSMemoryTypeDDR4 = 26
	SMBIOSMemoryTypeDDR5 = 34
)

// MemoryModule is one populated or empty DIMM slot
type MemoryModule struct {
	Manufacturer  string
	CapacityBytes uint64
	SpeedMHz      int
	// SMBIOSType is the raw SMBIOS memory type code, 0 when unknown
	SMBIOSType int
}

// MemoryTypeName names DDR4 and DDR5 and renders any other code as "Type N"
func MemoryTypeName(code int) string {
	switch code {
	case SMBIOSMemoryTypeDDR4:
		return "DDR4"
	case SMBIOSMemoryTypeDDR5:
		return "DDR5"
	default:
		return fmt.Sprintf("Type %d", code)
	}
}

// RAMLabel builds "<Manufacturer> <Type> <Speed>MHz" from the first
// populated module. Parts the platform could not report are left out.
func RAMLabel(modules []MemoryModule) string {
	for _, m := range modules {
		if m.CapacityBytes == 0 {
			continue
		}

		parts := make([]string, 0, 3)
		if mfr := cleanString(m.Manufacturer); mfr != "" {
			parts = append(parts, mfr)
		}
		if m.SMBIOSType > 0 {
			parts = append(parts, MemoryTypeName(m.SMBIOSType))
		}
		if m.SpeedMHz > 0 {
			parts = append(parts, fmt.Sprintf("%dMHz", m.SpeedMHz))
		}
		if len(parts) == 0 {
			return UnknownRAM
		}
		if len(parts) == 1 && m.SMBIOSType == 0 && m.SpeedMHz == 0 {
			return parts[0] + " RAM"
		}
		return strings.Join(parts, " ")
	}
	return UnknownRAM
}

// cleanString removes null bytes and surrounding whitespace from firmware strings
func cleanString(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\x00")
	return strings.TrimSpace(s)
}
