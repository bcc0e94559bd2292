package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

type countingCache struct {
	NoopCacheHooks
	hits int
}

func (c *countingCache) OnCacheHit(context.Context, string) { c.hits++ }

func TestRegistry(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}

	c := &countingCache{}
	SetCacheHooks(c)
	Cache().OnCacheHit(context.Background(), "scene")
	if c.hits != 1 {
		t.Errorf("hits = %d, want 1", c.hits)
	}

	SetCacheHooks(nil)
	if Cache() != CacheHooks(c) {
		t.Error("SetCacheHooks(nil) replaced the installed hooks")
	}

	Reset()
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("after Reset Cache() = %T, want NoopCacheHooks", Cache())
	}
}

func TestLogHooks(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		emit func(h *LogHooks)
		want []string
	}{
		{"load", func(h *LogHooks) { h.OnLoadComplete(ctx, "Calculator.json", 3, time.Millisecond, nil) }, []string{"loaded", "source=Calculator.json", "methods=3"}},
		{"layout failure", func(h *LogHooks) { h.OnLayoutComplete(ctx, "max/2", 0, errors.New("boom")) }, []string{"laid out failed", "method=max/2", "err=boom"}},
		{"render", func(h *LogHooks) { h.OnRenderStart(ctx, []string{"svg", "txt"}) }, []string{"render", "formats=svg,txt"}},
		{"cache set", func(h *LogHooks) { h.OnCacheSet(ctx, "artifact", 1024) }, []string{"cache set", "type=artifact", "bytes=1024"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := log.New(&buf)
			l.SetLevel(log.DebugLevel)
			tt.emit(NewLogHooks(l))
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("log = %q, missing %q", buf.String(), want)
				}
			}
		})
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.New(&buf))
	h.OnCacheHit(context.Background(), "scene")
	if buf.Len() != 0 {
		t.Errorf("info-level logger wrote %q", buf.String())
	}
}
