// Package observability lets the pipeline, cache and server report events
// without depending on a metrics or tracing backend.
//
// Libraries call the registered hooks; main registers implementations at
// startup. The defaults do nothing. [LogHooks] writes pipeline and cache
// events to a charmbracelet logger at debug level and is what the CLI
// installs for --verbose:
//
//	observability.SetPipelineHooks(observability.NewLogHooks(logger))
//	observability.SetCacheHooks(observability.NewLogHooks(logger))
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives load, layout and render events.
type PipelineHooks interface {
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, methodCount int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, method string, nodeCount int)
	OnLayoutComplete(ctx context.Context, method string, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives scene and artifact cache events. keyType is "scene"
// or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP service.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path, requestID string)
	OnResponse(ctx context.Context, method, path, requestID string, statusCode int, duration time.Duration)
	// OnError is called for requests answered with an error document.
	OnError(ctx context.Context, method, path, requestID string, err error)
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                              {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                       {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error)   {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

var (
	mu       sync.RWMutex
	pipeline PipelineHooks = NoopPipelineHooks{}
	cache    CacheHooks    = NoopCacheHooks{}
	httpH    HTTPHooks     = NoopHTTPHooks{}
)

// set replaces *dst with h unless h is nil.
func set[T comparable](dst *T, h T) {
	var zero T
	if h == zero {
		return
	}
	mu.Lock()
	*dst = h
	mu.Unlock()
}

func get[T any](src *T) T {
	mu.RLock()
	defer mu.RUnlock()
	return *src
}

// SetPipelineHooks installs h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) { set(&pipeline, h) }

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) { set(&cache, h) }

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) { set(&httpH, h) }

func Pipeline() PipelineHooks { return get(&pipeline) }
func Cache() CacheHooks       { return get(&cache) }
func HTTP() HTTPHooks         { return get(&httpH) }

// Reset restores the no-op hooks.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	pipeline, cache, httpH = NoopPipelineHooks{}, NoopCacheHooks{}, NoopHTTPHooks{}
}
