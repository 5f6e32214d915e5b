package scaling

import (
	"sync"

	"github.com/jonathan/cv-builder/internal/types"
)

// Measure reports the current container width. ok is false while the
// container is not mounted yet.
type Measure func() (width float64, ok bool)

// Adapter keeps a scale factor in step with its container. It recomputes on
// viewport resize and on template or preview-mode changes, and does nothing
// while the export view is active.
type Adapter struct {
	mu          sync.Mutex
	canvasWidth float64
	scale       float64
	measure     Measure
	unsubscribe func()
	template    types.TemplateID
	preview     bool
	exportView  bool
}

// NewAdapter returns an unmounted adapter at 1:1 scale.
func NewAdapter(canvasWidth float64) *Adapter {
	if canvasWidth <= 0 {
		canvasWidth = DefaultCanvasWidth
	}
	return &Adapter{canvasWidth: canvasWidth, scale: 1}
}

// Mount subscribes to vp and computes an initial scale. Mounting again
// replaces the previous subscription.
func (a *Adapter) Mount(vp *Viewport, measure Measure) {
	a.Unmount()

	unsubscribe := vp.Subscribe(func(float64) { a.recompute() })

	a.mu.Lock()
	a.measure = measure
	a.unsubscribe = unsubscribe
	a.mu.Unlock()

	a.recompute()
}

// Unmount drops the viewport subscription. The last scale is kept.
func (a *Adapter) Unmount() {
	a.mu.Lock()
	unsubscribe := a.unsubscribe
	a.unsubscribe = nil
	a.measure = nil
	a.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// SetView records the active template and preview mode, recomputing when either changed.
func (a *Adapter) SetView(id types.TemplateID, preview bool) {
	a.mu.Lock()
	changed := a.template != id || a.preview != preview
	a.template, a.preview = id, preview
	a.mu.Unlock()

	if changed {
		a.recompute()
	}
}

// SetExportView toggles the full export view. Leaving it triggers a recompute.
func (a *Adapter) SetExportView(on bool) {
	a.mu.Lock()
	leaving := a.exportView && !on
	a.exportView = on
	a.mu.Unlock()

	if leaving {
		a.recompute()
	}
}

// Scale returns the current factor; 1 while the export view is active.
func (a *Adapter) Scale() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.exportView {
		return 1
	}
	return a.scale
}

// Transform returns the style for the current factor.
func (a *Adapter) Transform() map[string]string {
	return Transform(a.Scale())
}

func (a *Adapter) recompute() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.exportView || a.measure == nil {
		return
	}
	width, ok := a.measure()
	if !ok || width <= 0 {
		return
	}
	a.scale = ComputeScale(width, a.canvasWidth)
}
