package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFillFrom(t *testing.T) {
	tests := []struct {
		name        string
		version     string
		info        debug.BuildInfo
		wantVersion string
		wantCommit  string
	}{
		{
			name:    "go install",
			version: "dev",
			info: debug.BuildInfo{
				Main:     debug.Module{Version: "v0.3.1"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}, {Key: "vcs.time", Value: "2026-01-02T03:04:05Z"}},
			},
			wantVersion: "v0.3.1",
			wantCommit:  "abc123",
		},
		{
			name:        "local build",
			version:     "dev",
			info:        debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			wantVersion: "dev",
			wantCommit:  "none",
		},
		{
			name:        "ldflags win",
			version:     "v1.0.0",
			info:        debug.BuildInfo{Main: debug.Module{Version: "v0.3.1"}},
			wantVersion: "v1.0.0",
			wantCommit:  "none",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldV, oldC, oldD := Version, Commit, Date
			t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })
			Version, Commit, Date = tt.version, "none", "unknown"

			fillFrom(&tt.info)
			if Version != tt.wantVersion {
				t.Errorf("Version = %q, want %q", Version, tt.wantVersion)
			}
			if Commit != tt.wantCommit {
				t.Errorf("Commit = %q, want %q", Commit, tt.wantCommit)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} version: ") || !strings.Contains(got, "\ncommit: ") {
		t.Errorf("Template() = %q", got)
	}
}
