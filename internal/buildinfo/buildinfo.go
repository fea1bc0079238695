// Package buildinfo names the running build in window titles and --version.
package buildinfo

import "runtime/debug"

// Version is set at release time via -ldflags "-X flightosd/internal/buildinfo.Version=...".
var Version = "dev"

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Short returns the release version when set, otherwise the first 12
// characters of the VCS revision (with "+dirty" for modified trees), otherwise
// "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	bi, ok := readBuildInfo()
	if !ok {
		return "dev"
	}
	var rev string
	var dirty bool
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev == "" {
		return "dev"
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if dirty {
		rev += "+dirty"
	}
	return rev
}
