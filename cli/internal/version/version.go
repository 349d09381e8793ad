// Package version holds the build information of the sqltree binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set at link time with -ldflags "-X". Unset values fall back to the
// VCS stamp of the binary.
var (
	Version   = "0.1.0"
	BuildDate = ""
	GitCommit = ""
)

// Dialects lists the SQL dialects this build generates for.
var Dialects = []string{"sqlite", "postgres", "mysql"}

// Info describes a build.
type Info struct {
	Version   string   `json:"version"`
	BuildDate string   `json:"buildDate"`
	GitCommit string   `json:"gitCommit"`
	Modified  bool     `json:"modified,omitempty"`
	GoVersion string   `json:"goVersion"`
	Platform  string   `json:"platform"`
	Dialects  []string `json:"dialects"`
}

// Get returns the information of the running binary.
func Get() Info {
	info := Info{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Dialects:  Dialects,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		stamp(&info, bi.Settings)
	}
	if info.BuildDate == "" {
		info.BuildDate = "unknown"
	}
	if info.GitCommit == "" {
		info.GitCommit = "unknown"
	}
	return info
}

// stamp fills the fields the linker left empty from VCS build settings.
func stamp(info *Info, settings []debug.BuildSetting) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "" {
				info.BuildDate = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
}

func (i Info) String() string {
	return fmt.Sprintf("sqltree %s (%s, %s)", i.Version, i.Platform, i.GoVersion)
}

// FullString renders one field per line.
func (i Info) FullString() string {
	commit := i.GitCommit
	if i.Modified {
		commit += " (modified)"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "sqltree %s\n", i.Version)
	fmt.Fprintf(&sb, "  commit:   %s\n", commit)
	fmt.Fprintf(&sb, "  built:    %s\n", i.BuildDate)
	fmt.Fprintf(&sb, "  go:       %s\n", i.GoVersion)
	fmt.Fprintf(&sb, "  platform: %s\n", i.Platform)
	fmt.Fprintf(&sb, "  dialects: %s", strings.Join(i.Dialects, ", "))
	return sb.String()
}
