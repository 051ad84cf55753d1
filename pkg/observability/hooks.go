// Package observability provides hooks for metrics, tracing, and logging.
//
// The layout engine stays free of observability dependencies; consumers
// register hooks at startup to receive events about resolution passes and
// rendering. The pipeline emits the events — the engine packages never
// import this package, which keeps the core dependency-free and avoids
// import cycles.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    // ... run application
//	}
//
// The pipeline calls hooks around each stage:
//
//	observability.Layout().OnPassStart(ctx, kind, childCount)
//	// ... resolve ...
//	observability.Layout().OnPassComplete(ctx, kind, duration, info)
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/buwaro/anchor/pkg/layout"
)

// LayoutHooks receives events from layout resolution passes.
type LayoutHooks interface {
	// OnPassStart records the start of a resolution pass.
	OnPassStart(ctx context.Context, containerKind string, childCount int)

	// OnPassComplete records a finished pass with its diagnostics.
	// Cycle fallbacks appear in info; they are degraded-but-defined
	// resolutions, not failures.
	OnPassComplete(ctx context.Context, containerKind string, duration time.Duration, info layout.PassInfo)
}

// RenderHooks receives events from artifact rendering.
type RenderHooks interface {
	// OnRenderStart records the start of artifact generation.
	OnRenderStart(ctx context.Context, formats []string)

	// OnRenderComplete records finished artifact generation.
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnPassStart(context.Context, string, int) {}
func (NoopLayoutHooks) OnPassComplete(context.Context, string, time.Duration, layout.PassInfo) {
}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopRenderHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

var (
	mu          sync.RWMutex
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
)

// SetLayoutHooks registers the layout hook implementation.
// Call once at startup, before any pipeline runs.
func SetLayoutHooks(h LayoutHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopLayoutHooks{}
	}
	layoutHooks = h
}

// SetRenderHooks registers the render hook implementation.
// Call once at startup, before any pipeline runs.
func SetRenderHooks(h RenderHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopRenderHooks{}
	}
	renderHooks = h
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	mu.RLock()
	defer mu.RUnlock()
	return layoutHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	mu.RLock()
	defer mu.RUnlock()
	return renderHooks
}
