// Package version formats build metadata set through ldflags. Values the
// linker left empty are taken from the module build info when available,
// so `go install` builds still report their version and commit.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const shortCommitLen = 7

// readBuildInfo is swapped in tests
var readBuildInfo = debug.ReadBuildInfo

// Info is the resolved build metadata
type Info struct {
	Version   string
	Commit    string
	BuildTime string
	Modified  bool
}

// Resolve fills empty ldflags values from the module build info
func Resolve(version, commit, buildTime string) Info {
	info := Info{Version: version, Commit: commit, BuildTime: buildTime}

	if bi, ok := readBuildInfo(); ok && bi != nil {
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
	}

	if info.Version == "" {
		info.Version = "dev"
	}
	return info
}

// ShortCommit returns the abbreviated commit, marked "+dirty" for builds
// from a modified tree
func (i Info) ShortCommit() string {
	c := i.Commit
	if len(c) > shortCommitLen {
		c = c[:shortCommitLen]
	}
	if c != "" && i.Modified {
		c += "+dirty"
	}
	return c
}

// GetVersion returns "<version>-<short commit>", or just the version when
// the commit is unknown
func GetVersion(version, commit, buildTime string) string {
	info := Resolve(version, commit, buildTime)
	if c := info.ShortCommit(); c != "" {
		return fmt.Sprintf("%s-%s", info.Version, c)
	}
	return info.Version
}

// GetDetailedVersion returns the multi-line banner printed by `bottleneck version`
func GetDetailedVersion(version, commit, buildTime string) string {
	info := Resolve(version, commit, buildTime)
	commit, built := info.Commit, info.BuildTime
	if commit == "" {
		commit = "unknown"
	} else if info.Modified {
		commit += " (modified)"
	}
	if built == "" {
		built = "unknown"
	}

	return fmt.Sprintf(`Bottleneck - PC hardware bottleneck analyzer
Version:    %s
Commit:     %s
Built:      %s
Go version: %s
OS/Arch:    %s/%s`,
		info.Version, commit, built,
		runtime.Version(),
		runtime.GOOS, runtime.GOARCH)
}
