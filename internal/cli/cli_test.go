package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/structogram/pkg/errors"
	"github.com/matzehuels/structogram/pkg/observability"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"interrupted", fmt.Errorf("render: %w", context.Canceled), 130},
		{"unknown method", errors.New(errors.ErrCodeMethodNotFound, "no method %q", "min"), 2},
		{"bad class file", errors.New(errors.ErrCodeInvalidModel, "methods[0]: missing name"), 2},
		{"missing file", errors.New(errors.ErrCodeFileNotFound, "Foo.json"), 2},
		{"abstract method", errors.New(errors.ErrCodeNoBody, "abstract"), 2},
		{"internal", errors.New(errors.ErrCodeInternal, "rsvg-convert failed"), 1},
		{"plain error", fmt.Errorf("disk full"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVerboseInstallsLogHooks(t *testing.T) {
	t.Cleanup(observability.Reset)
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))

	var buf bytes.Buffer
	root := New(&buf, LogInfo).RootCommand()
	root.SetArgs([]string{"-v", "render", "../../pkg/io/testdata/calculator.json", "max", "-f", "txt", "-o", filepath.Join(dir, "max.txt")})
	if err := root.Execute(); err != nil {
		t.Fatalf("render error: %v", err)
	}

	if _, ok := observability.Pipeline().(*observability.LogHooks); !ok {
		t.Errorf("Pipeline() = %T, want *LogHooks", observability.Pipeline())
	}
	if !strings.Contains(buf.String(), "laid out") {
		t.Errorf("verbose log = %q, want layout events", buf.String())
	}
}
