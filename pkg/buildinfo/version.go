// Package buildinfo reports which workcell build is running.
//
// Release builds stamp the values through ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/workcell/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/workcell/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/workcell/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Binaries built with "go install module@version" carry no ldflags; [Get]
// then falls back to the module version and VCS stamp recorded by the Go
// toolchain.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Stamped through ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info describes the running build. The server reports it on /healthz so a
// layout can be traced to the solver build that produced it.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// Get returns the build info, filling unstamped fields from the toolchain.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date, GoVersion: runtime.Version()}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fillFrom(&info, bi)
	}
	return info
}

func fillFrom(info *Info, bi *debug.BuildInfo) {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && info.Commit == "none":
			info.Commit = s.Value
		case s.Key == "vcs.time" && info.Date == "unknown":
			info.Date = s.Value
		}
	}
}

// String formats the info on three lines.
func (i Info) String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s (%s)", i.Version, i.Commit, i.Date, i.GoVersion)
}

// Template returns the cobra version template.
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s (%s)\n", i.Version, i.Commit, i.Date, i.GoVersion)
}
