package pipeline

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/buwaro/anchor/pkg/blueprint"
	"github.com/buwaro/anchor/pkg/cache"
	"github.com/buwaro/anchor/pkg/errors"
	aio "github.com/buwaro/anchor/pkg/io"
	"github.com/buwaro/anchor/pkg/layout"
	"github.com/buwaro/anchor/pkg/observability"
	"github.com/buwaro/anchor/pkg/render"
)

// Runner encapsulates pipeline execution with artifact caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
// If logger is nil, the default logger is used.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Container is the built, resolved container tree.
	Container layout.Container

	// Document is the serialized snapshot of the resolution.
	Document *aio.Document

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Pass carries the resolution diagnostics.
	Pass layout.PassInfo

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ChildCount  int
	LoadTime    time.Duration
	ResolveTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits during a run.
type CacheInfo struct {
	ArtifactHits int
}

// Execute runs the complete load → resolve → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Load
	loadStart := time.Now()
	source, bp, err := r.Load(opts)
	if err != nil {
		return nil, err
	}
	c := bp.Container
	applyDirection(c, opts.Direction)
	result.Container = c
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.ChildCount = len(c.Children())

	logger.Info("loaded blueprint",
		"kind", containerKind(c),
		"children", result.Stats.ChildCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Resolve
	resolveStart := time.Now()
	observability.Layout().OnPassStart(ctx, containerKind(c), result.Stats.ChildCount)
	size := c.Measure(constraint(opts.Width, bp.Width), constraint(opts.Height, bp.Height))
	result.Pass = c.Pass()
	result.Stats.ResolveTime = time.Since(resolveStart)
	observability.Layout().OnPassComplete(ctx, containerKind(c), result.Stats.ResolveTime, result.Pass)

	result.Document = aio.Snapshot(c)

	logger.Info("resolved layout",
		"size", size,
		"duration", result.Stats.ResolveTime)
	if !result.Pass.Clean() {
		logger.Warn("relation cycle fallback engaged",
			"horizontal", result.Pass.HorizontalCycleFallback,
			"vertical", result.Pass.VerticalCycleFallback)
	}

	// Stage 3: Render
	renderStart := time.Now()
	observability.Render().OnRenderStart(ctx, opts.Formats)
	err = r.renderAll(ctx, c, source, opts, result)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Render().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}

	logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"cache_hits", result.CacheInfo.ArtifactHits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads and builds the blueprint, returning the raw source alongside
// the parsed document so artifact caching can hash it.
func (r *Runner) Load(opts Options) ([]byte, *blueprint.Blueprint, error) {
	source := opts.Source
	if len(source) == 0 {
		data, err := os.ReadFile(opts.Blueprint)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "blueprint %s not found", opts.Blueprint)
			}
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidBlueprint, err, "read blueprint %s", opts.Blueprint)
		}
		source = data
	}
	bp, err := blueprint.Parse(source)
	if err != nil {
		return nil, nil, err
	}
	return source, bp, nil
}

// renderAll produces every requested artifact, consulting the cache first.
func (r *Runner) renderAll(ctx context.Context, c layout.Container, source []byte, opts Options, result *Result) error {
	blueprintHash := cache.Hash(source)

	for _, format := range opts.Formats {
		key := cache.ArtifactKey(blueprintHash, format+":"+opts.Direction, opts.Width, opts.Height, opts.Scale, opts.Labels)
		if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
			result.Artifacts[format] = data
			result.CacheInfo.ArtifactHits++
			continue
		}

		data, err := r.renderOne(c, format, opts, result)
		if err != nil {
			return err
		}
		result.Artifacts[format] = data
		_ = r.Cache.Set(ctx, key, data, 0)
	}
	return nil
}

func (r *Runner) renderOne(c layout.Container, format string, opts Options, result *Result) ([]byte, error) {
	switch format {
	case FormatSVG:
		svgOpts := []render.SVGOption{render.WithScale(opts.Scale)}
		if opts.Labels {
			svgOpts = append(svgOpts, render.WithLabels())
		}
		return render.RenderSVG(c, svgOpts...), nil
	case FormatDOT:
		return []byte(render.ToDOT(c, direction(c))), nil
	case FormatJSON:
		var buf bytes.Buffer
		if err := aio.WriteJSON(result.Document, &buf); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "encode document")
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// constraint maps a CLI-style size override to a measurement constraint:
// a positive value is exact, zero falls back to the constraint the
// blueprint's root container declared for the axis.
func constraint(v int, declared layout.Spec) layout.Spec {
	if v > 0 {
		return layout.MakeSpec(v, layout.Exactly)
	}
	return declared
}

func containerKind(c layout.Container) string {
	switch c.(type) {
	case *layout.Relative:
		return "relative"
	case *layout.Linear:
		return "linear"
	default:
		return "container"
	}
}

func direction(c layout.Container) layout.Direction {
	switch cc := c.(type) {
	case *layout.Relative:
		return cc.Direction
	case *layout.Linear:
		return cc.Direction
	default:
		return layout.LTR
	}
}

// applyDirection overrides the root container's direction in place.
func applyDirection(c layout.Container, dir string) {
	if dir == "" {
		return
	}
	d := layout.LTR
	if dir == "rtl" {
		d = layout.RTL
	}
	switch cc := c.(type) {
	case *layout.Relative:
		cc.Direction = d
	case *layout.Linear:
		cc.Direction = d
	}
}
