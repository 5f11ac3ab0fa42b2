package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

// withBuildInfo replaces the module build info for one test
func withBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestGetVersion(t *testing.T) {
	withBuildInfo(t, nil)

	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{"release build", "v1.0.0", "abcdef1234567890", "v1.0.0-abcdef1"},
		{"no version", "", "abcdef1234567890", "dev-abcdef1"},
		{"no commit", "v1.2.0", "", "v1.2.0"},
		{"nothing set", "", "", "dev"},
		{"short commit", "v1.0.0", "abc", "v1.0.0-abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetVersion(tt.version, tt.commit, ""); got != tt.want {
				t.Errorf("GetVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveFromBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "1234567890abcdef"},
			{Key: "vcs.time", Value: "2025-05-01T12:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}
	withBuildInfo(t, bi)

	info := Resolve("", "", "")
	if info.Version != "v0.3.1" || info.BuildTime != "2025-05-01T12:00:00Z" {
		t.Errorf("Resolve() = %+v", info)
	}
	if got := GetVersion("", "", ""); got != "v0.3.1-1234567+dirty" {
		t.Errorf("GetVersion() = %q, want v0.3.1-1234567+dirty", got)
	}

	// ldflags values win over build info
	if got := GetVersion("v2.0.0", "fedcba9876543210", ""); got != "v2.0.0-fedcba9+dirty" {
		t.Errorf("GetVersion() = %q, want v2.0.0-fedcba9+dirty", got)
	}
}

func TestResolveIgnoresDevelVersion(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})

	if got := Resolve("", "", "").Version; got != "dev" {
		t.Errorf("Version = %q, want dev", got)
	}
}

func TestGetDetailedVersion(t *testing.T) {
	withBuildInfo(t, nil)

	result := GetDetailedVersion("v1.0.0", "abcdef1234567890", "2024-01-01T00:00:00Z")
	if !strings.HasPrefix(result, "Bottleneck") {
		t.Error("GetDetailedVersion() should start with the program name")
	}
	for _, want := range []string{
		"Version:    v1.0.0",
		"Commit:     abcdef1234567890",
		"Built:      2024-01-01T00:00:00Z",
		"Go version:",
		"OS/Arch:",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("GetDetailedVersion() missing %q", want)
		}
	}
}

func TestGetDetailedVersionDefaults(t *testing.T) {
	withBuildInfo(t, nil)

	result := GetDetailedVersion("", "", "")
	for _, want := range []string{"Version:    dev", "Commit:     unknown", "Built:      unknown"} {
		if !strings.Contains(result, want) {
			t.Errorf("GetDetailedVersion() missing %q", want)
		}
	}
}
