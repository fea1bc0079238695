package buildinfo

import (
	"runtime/debug"
	"testing"
)

func TestShort(t *testing.T) {
	defer func(v string, f func() (*debug.BuildInfo, bool)) { Version, readBuildInfo = v, f }(Version, readBuildInfo)

	tests := []struct {
		version  string
		settings []debug.BuildSetting
		ok       bool
		want     string
	}{
		{"v1.2.0", nil, true, "v1.2.0"},
		{"dev", nil, false, "dev"},
		{"dev", []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}}, true, "0123456789ab"},
		{"dev", []debug.BuildSetting{{Key: "vcs.revision", Value: "abc"}, {Key: "vcs.modified", Value: "true"}}, true, "abc+dirty"},
		{"", []debug.BuildSetting{{Key: "GOOS", Value: "linux"}}, true, "dev"},
	}
	for _, tt := range tests {
		Version = tt.version
		settings, ok := tt.settings, tt.ok
		readBuildInfo = func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{Settings: settings}, ok
		}
		if got := Short(); got != tt.want {
			t.Fatalf("Short() with version %q = %q, want %q", tt.version, got, tt.want)
		}
	}
}
