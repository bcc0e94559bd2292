package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/structogram/pkg/cache"
	"github.com/matzehuels/structogram/pkg/flow"
	"github.com/matzehuels/structogram/pkg/observability"
	"github.com/matzehuels/structogram/pkg/render/structogram/layout"
	"github.com/matzehuels/structogram/pkg/render/structogram/scene"
	"github.com/matzehuels/structogram/pkg/render/structogram/sink"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → select → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
		Formats:   opts.Formats,
	}

	// Stage 1: Load
	loadStart := time.Now()
	class, classHash, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.ClassName = class.Name
	result.ClassHash = classHash
	result.Stats.MethodCount = len(class.Methods)
	result.Stats.LoadTime = time.Since(loadStart)

	// Stage 2: Select
	m, err := Select(class, opts)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	result.Method = m
	result.Declaration = m.Declaration()
	result.Stats.NodeCount = flow.Count(m.Body)

	r.Logger.Debug("selected method",
		"class", class.Name,
		"method", result.Declaration,
		"nodes", result.Stats.NodeCount)

	title := result.Declaration
	if opts.NoTitle {
		title = ""
	}

	// Node-link runs bypass the structogram engine entirely.
	if opts.IsNodelink() {
		renderStart := time.Now()
		result.DOT = GenerateDOT(m, opts)
		artifacts, err := r.renderNodelink(ctx, result.DOT, opts)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		result.Artifacts = artifacts
		result.Stats.RenderTime = time.Since(renderStart)
		return result, nil
	}

	// Stage 3: Layout
	layoutStart := time.Now()
	root, sc, sceneHash, sceneHit, err := r.GenerateSceneWithCacheInfo(ctx, classHash, m, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = root
	result.Scene = sc
	result.Stats.Width = sc.Width
	result.Stats.Height = sc.Height
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.SceneHit = sceneHit

	r.Logger.Info("computed layout",
		"width", sc.Width,
		"height", sc.Height,
		"primitives", len(sc.Primitives),
		"duration", result.Stats.LayoutTime)

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, sc, sceneHash, title, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the class and reports the stage to the observability hooks.
func (r *Runner) Load(ctx context.Context, opts Options) (*flow.Class, string, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, "", err
	}
	source := opts.Path
	if source == "" {
		source = "<inline>"
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()
	c, hash, err := Load(ctx, opts)
	methods := 0
	if c != nil {
		methods = len(c.Methods)
	}
	hooks.OnLoadComplete(ctx, source, methods, time.Since(start), err)
	return c, hash, err
}

// GenerateSceneWithCacheInfo builds and paints the method's structogram,
// consulting the cache first. The layout tree is nil on a cache hit. The
// returned hash identifies the scene for artifact caching.
func (r *Runner) GenerateSceneWithCacheInfo(ctx context.Context, classHash string, m flow.Method, opts Options) (layout.Node, scene.Scene, string, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, scene.Scene{}, "", false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.SceneKey(classHash, opts.SceneKeyOpts(m))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if doc, err := sink.ParseJSON(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "scene")
				return nil, doc.Scene, cache.Hash(data), true, nil
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			r.Logger.Warn("scene cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "scene")
	}

	hooks := observability.Pipeline()
	method := m.Declaration()
	hooks.OnLayoutStart(ctx, method, flow.Count(m.Body))
	start := time.Now()
	root, sc, err := GenerateScene(m, opts)
	hooks.OnLayoutComplete(ctx, method, time.Since(start), err)
	if err != nil {
		return nil, scene.Scene{}, "", false, err
	}

	data, err := sink.RenderJSON(sc)
	if err != nil {
		return nil, scene.Scene{}, "", false, err
	}
	if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLScene); err != nil {
		r.Logger.Warn("scene cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "scene", len(data))
	}

	return root, sc, cache.Hash(data), false, nil
}

// GenerateScene is a convenience wrapper that calls GenerateSceneWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateScene(ctx context.Context, classHash string, m flow.Method, opts Options) (scene.Scene, error) {
	_, sc, _, _, err := r.GenerateSceneWithCacheInfo(ctx, classHash, m, opts)
	return sc, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, sc scene.Scene, sceneHash, title string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)
	opts.Layout = opts.Layout.WithDefaults()

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format, title))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	// Render all formats
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, sc, title, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format, title))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, sc scene.Scene, sceneHash, title string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, sc, sceneHash, title, opts)
	return artifacts, err
}

func (r *Runner) renderNodelink(ctx context.Context, dot string, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, err := RenderNodelink(ctx, dot, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
