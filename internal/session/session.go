// Package session owns the single CVData and Template a user is editing.
package session

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/cv-builder/internal/progress"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/scaling"
	"github.com/jonathan/cv-builder/internal/templates"
	"github.com/jonathan/cv-builder/internal/theme"
	"github.com/jonathan/cv-builder/internal/types"
)

// Session is one editing session. Data is replaced whole, never patched.
type Session struct {
	ID string

	mu         sync.RWMutex
	template   types.Template
	data       types.CVData
	createdAt  time.Time
	updatedAt  time.Time
	lastAccess time.Time

	// view serializes resize-then-read sequences on the viewport and adapter.
	view     sync.Mutex
	viewport *scaling.Viewport
	adapter  *scaling.Adapter
}

// View is the serializable state of a session.
type View struct {
	ID        string         `json:"id"`
	Template  types.Template `json:"template"`
	Data      types.CVData   `json:"data"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// PreviewOptions describes the container a preview is shown in.
type PreviewOptions struct {
	// Width is the container width in CSS pixels. Zero keeps the last known width.
	Width float64
	// Thumbnail renders with the reduced preview text scale.
	Thumbnail bool
}

// Preview is a rendered tree and the factor that fits it into its container.
type Preview struct {
	Tree      *rendering.Node   `json:"tree"`
	Scale     float64           `json:"scale"`
	Transform map[string]string `json:"transform"`
	Theme     theme.Theme       `json:"theme"`
}

// New creates a session on the given template with placeholder data.
func New(id string, templateID types.TemplateID) *Session {
	now := time.Now()
	s := &Session{
		ID:         id,
		template:   templates.Select(templateID),
		data:       types.NewPlaceholderCVData(),
		createdAt:  now,
		updatedAt:  now,
		lastAccess: now,
		viewport:   scaling.NewViewport(0),
		adapter:    scaling.NewAdapter(scaling.DefaultCanvasWidth),
	}
	s.adapter.Mount(s.viewport, func() (float64, bool) {
		w := s.viewport.Width()
		return w, w > 0
	})
	s.adapter.SetView(s.template.ID, false)
	return s
}

// Close releases the scale adapter's viewport subscription.
func (s *Session) Close() {
	s.adapter.Unmount()
}

// SelectTemplate switches template and resets the data to the placeholder.
// The template's default color replaces any color chosen earlier.
func (s *Session) SelectTemplate(id types.TemplateID) types.Template {
	s.mu.Lock()
	s.template = templates.Select(id)
	s.data = types.NewPlaceholderCVData()
	s.touch()
	tpl := s.template
	s.mu.Unlock()

	log.Printf("[SESSION] %s: selected template %s (data reset)", s.ID, tpl.ID)
	s.view.Lock()
	s.adapter.SetView(tpl.ID, false)
	s.view.Unlock()
	return tpl
}

// SetColor changes the theme name. Unknown names are kept and resolve to the default at render time.
func (s *Session) SetColor(name string) types.Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.template.Color = strings.ToLower(strings.TrimSpace(name))
	s.touch()
	return s.template
}

// ReplaceData swaps in a copy of data.
func (s *Session) ReplaceData(data types.CVData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data.Clone()
	s.touch()
}

// Data returns a copy of the current data.
func (s *Session) Data() types.CVData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Template returns the current template.
func (s *Session) Template() types.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.template
}

// Snapshot returns the serializable state.
func (s *Session) Snapshot() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{
		ID:        s.ID,
		Template:  s.template,
		Data:      s.data.Clone(),
		CreatedAt: s.createdAt,
		UpdatedAt: s.updatedAt,
	}
}

// Preview renders the current state for an on-screen container.
func (s *Session) Preview(opts PreviewOptions) Preview {
	data, tpl := s.inputs()

	s.view.Lock()
	if opts.Width > 0 {
		s.viewport.Resize(opts.Width)
	}
	s.adapter.SetView(tpl.ID, opts.Thumbnail)
	scale := s.adapter.Scale()
	s.view.Unlock()

	mode := rendering.Mode{}
	if opts.Thumbnail {
		mode = rendering.PreviewMode()
	}
	th := theme.Resolve(tpl.Color)
	return Preview{
		Tree:      rendering.Render(data, tpl, th, mode),
		Scale:     scale,
		Transform: scaling.Transform(scale),
		Theme:     th,
	}
}

// ExportTree renders the unscaled, unbounded tree handed to the export pipeline.
// Scaling is suspended while it is built.
func (s *Session) ExportTree() *rendering.Node {
	s.view.Lock()
	defer s.view.Unlock()
	s.adapter.SetExportView(true)
	defer s.adapter.SetExportView(false)

	data, tpl := s.inputs()
	return rendering.Render(data, tpl, theme.Resolve(tpl.Color), rendering.ExportMode())
}

// Progress evaluates the current data.
func (s *Session) Progress() progress.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return progress.Evaluate(s.data)
}

// Title is used for exported document metadata.
func (s *Session) Title() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if name := strings.TrimSpace(s.data.PersonalInfo.FullName); name != "" {
		return name + " - CV"
	}
	return "CV"
}

func (s *Session) inputs() (types.CVData, types.Template) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone(), s.template
}

// touch must be called with mu held for writing.
func (s *Session) touch() {
	s.updatedAt = time.Now()
	s.lastAccess = s.updatedAt
}

func (s *Session) markAccessed(t time.Time) {
	s.mu.Lock()
	s.lastAccess = t
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastAccess
}
