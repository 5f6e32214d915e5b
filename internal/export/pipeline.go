// Package export turns a rendered CV tree into a paginated PDF through a rasterization collaborator.
package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-builder/internal/rendering"
)

// Surface is a mounted, off-screen copy of the document.
type Surface interface {
	// WaitFonts blocks until web fonts are ready.
	WaitFonts(ctx context.Context) error
	// ImageSources lists the src of every image element on the surface.
	ImageSources(ctx context.Context) ([]string, error)
	// WaitImage blocks until every image with src has loaded or failed.
	WaitImage(ctx context.Context, src string) error
	// Rasterize captures the surface and paginates it into a PDF.
	Rasterize(ctx context.Context, cfg Config, title string) ([]byte, error)
	Close() error
}

// Collaborator mounts HTML documents for rasterization.
type Collaborator interface {
	Mount(ctx context.Context, document string) (Surface, error)
}

// Recorder receives every finished outcome.
type Recorder interface {
	RecordExport(ctx context.Context, outcome Outcome) error
}

// Status is the terminal state of an export.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFailure  Status = "failure"
	StatusRejected Status = "rejected"
)

// Outcome is what the caller observes once an export settles.
type Outcome struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"sessionId,omitempty"`
	Status     Status    `json:"status"`
	Message    string    `json:"message"`
	Filename   string    `json:"filename,omitempty"`
	Pages      int       `json:"pages,omitempty"`
	Bytes      int       `json:"bytes,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	// PDF holds the document on success.
	PDF []byte `json:"-"`
	// Err is the root cause on failure. It is logged, never shown to users.
	Err error `json:"-"`
}

// OK reports whether the export produced a document.
func (o Outcome) OK() bool { return o.Status == StatusSuccess }

// Duration is the wall time of the export.
func (o Outcome) Duration() time.Duration { return o.FinishedAt.Sub(o.StartedAt) }

// Job is one export request.
type Job struct {
	Tree *rendering.Node
	// SessionID tags the outcome with the session that requested it.
	SessionID string
	Title     string
	Filename  string
	// Notify, when set, receives stage events for this job only.
	Notify Notifier
}

// PageCounter reports the page count of a produced PDF.
type PageCounter func(pdf []byte) (int, error)

// Pipeline runs exports, at most one per session at a time.
type Pipeline struct {
	collaborator Collaborator
	cfg          Config
	recorder     Recorder
	notify       Notifier
	countPages   PageCounter
	timeout      time.Duration
	verbose      bool
	// inFlight holds the session ids with a running export.
	inFlight sync.Map
	running  atomic.Int32
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRecorder attaches an outcome sink.
func WithRecorder(r Recorder) Option { return func(p *Pipeline) { p.recorder = r } }

// WithNotifier attaches a notifier that sees every job's events.
func WithNotifier(n Notifier) Option { return func(p *Pipeline) { p.notify = n } }

// WithPageCounter sets how produced PDFs are counted.
func WithPageCounter(c PageCounter) Option { return func(p *Pipeline) { p.countPages = c } }

// WithTimeout bounds the whole export. Zero means no bound beyond the caller's context.
func WithTimeout(d time.Duration) Option { return func(p *Pipeline) { p.timeout = d } }

// WithVerbose enables stage logging.
func WithVerbose(v bool) Option { return func(p *Pipeline) { p.verbose = v } }

// NewPipeline creates a pipeline around c.
func NewPipeline(c Collaborator, cfg Config, opts ...Option) *Pipeline {
	p := &Pipeline{collaborator: c, cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Config returns the collaborator record used for every export.
func (p *Pipeline) Config() Config { return p.cfg }

// InFlight reports whether any export is currently running.
func (p *Pipeline) InFlight() bool { return p.running.Load() > 0 }

// Exporting reports whether an export for sessionID is currently running.
func (p *Pipeline) Exporting(sessionID string) bool {
	_, ok := p.inFlight.Load(sessionID)
	return ok
}

// Export runs job to completion. It never panics and never returns an
// error; failures are reported through the Outcome. A second call for the
// same session while one is running is rejected with ErrExportInProgress.
// Different sessions export independently.
func (p *Pipeline) Export(ctx context.Context, job Job) Outcome {
	out := Outcome{
		ID:        uuid.New().String(),
		SessionID: job.SessionID,
		StartedAt: time.Now(),
		Filename:  p.cfg.OutputName(job.Filename),
	}
	emit := p.emitter(out.ID, job.Notify)

	if job.Tree == nil {
		log.Printf("[EXPORT] %s: %v", out.ID, ErrNothingToExport)
		return p.finish(ctx, emit, p.fail(out, ErrNothingToExport))
	}

	if _, busy := p.inFlight.LoadOrStore(job.SessionID, struct{}{}); busy {
		log.Printf("[EXPORT] %s: rejected, session %q already has an export running", out.ID, job.SessionID)
		out.Status = StatusRejected
		out.Message = RejectedMessage
		out.Err = ErrExportInProgress
		out.FinishedAt = time.Now()
		emit(StageRejected, out.Message)
		return out
	}
	p.running.Add(1)
	defer func() {
		p.running.Add(-1)
		p.inFlight.Delete(job.SessionID)
	}()

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	pdf, err := p.run(ctx, job, emit)
	if err != nil {
		return p.finish(ctx, emit, p.fail(out, err))
	}

	out.Status = StatusSuccess
	out.Message = SuccessMessage
	out.PDF = pdf
	out.Bytes = len(pdf)
	if p.countPages != nil {
		if n, err := p.countPages(pdf); err != nil {
			log.Printf("[EXPORT] %s: could not count pages: %v", out.ID, err)
		} else {
			out.Pages = n
		}
	}
	out.FinishedAt = time.Now()
	return p.finish(ctx, emit, out)
}

// ExportAsync starts Export in a goroutine. The channel yields exactly one outcome.
func (p *Pipeline) ExportAsync(ctx context.Context, job Job) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		defer close(ch)
		ch <- p.Export(ctx, job)
	}()
	return ch
}

// run is the stabilize-then-capture sequence. Panics from the collaborator
// come back as a *PanicError.
func (p *Pipeline) run(ctx context.Context, job Job, emit func(Stage, string)) (pdf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()

	document, err := rendering.DocumentString(job.Tree, rendering.DocumentOptions{
		Title:             job.Title,
		CrossOriginImages: p.cfg.Rasterize.CrossOriginImages,
	})
	if err != nil {
		return nil, err
	}

	emit(StageMount, "mounting document")
	surface, err := p.collaborator.Mount(ctx, document)
	if err != nil {
		return nil, &Error{Message: "failed to mount document", Cause: err}
	}
	defer func() {
		if cerr := surface.Close(); cerr != nil {
			log.Printf("[EXPORT] failed to close surface: %v", cerr)
		}
	}()

	emit(StageFonts, "waiting for fonts")
	if err := surface.WaitFonts(ctx); err != nil {
		log.Printf("[EXPORT] font readiness unavailable, continuing: %v", err)
	}

	sources, err := surface.ImageSources(ctx)
	if err != nil {
		log.Printf("[EXPORT] could not list images on surface, scanning document: %v", err)
		sources = documentImages(document)
	}
	emit(StageImages, fmt.Sprintf("waiting for %d image(s)", len(sources)))
	if failed := p.waitImages(ctx, surface, sources); failed > 0 {
		log.Printf("[EXPORT] %d image(s) failed to load; exporting without them", failed)
	}

	emit(StageRasterize, "rasterizing pages")
	pdf, err = surface.Rasterize(ctx, p.cfg, job.Title)
	if err != nil {
		return nil, &Error{Message: "rasterization failed", Cause: err}
	}
	if len(pdf) == 0 {
		return nil, &Error{Message: "rasterization produced an empty document"}
	}
	return pdf, nil
}

// waitImages waits on every image in parallel. A failed image is a visual
// degradation, not an export error, so failures are only counted. A panic
// while waiting counts as a failed image.
func (p *Pipeline) waitImages(ctx context.Context, surface Surface, sources []string) int {
	var failed atomic.Int32
	var g errgroup.Group
	for _, src := range sources {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					failed.Add(1)
					log.Printf("[EXPORT] image %q: wait panicked: %v", src, r)
				}
			}()
			if err := surface.WaitImage(ctx, src); err != nil {
				failed.Add(1)
				if p.verbose {
					log.Printf("[EXPORT] image %q: %v", src, err)
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	return int(failed.Load())
}

func (p *Pipeline) fail(out Outcome, err error) Outcome {
	log.Printf("[EXPORT] %s failed: %v", out.ID, err)
	out.Status = StatusFailure
	out.Message = FailureMessage
	out.Err = err
	out.FinishedAt = time.Now()
	return out
}

func (p *Pipeline) finish(ctx context.Context, emit func(Stage, string), out Outcome) Outcome {
	if out.OK() {
		emit(StageComplete, out.Message)
		if p.verbose {
			log.Printf("[EXPORT] %s complete: %s, %d bytes, %d page(s) in %s", out.ID, out.Filename, out.Bytes, out.Pages, out.Duration())
		}
	} else {
		emit(StageFailed, out.Message)
	}

	if p.recorder != nil {
		// Recording outlives a cancelled request context.
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := p.recorder.RecordExport(rctx, out); err != nil {
			log.Printf("[EXPORT] failed to record outcome %s: %v", out.ID, err)
		}
	}
	return out
}

// IsRejected reports whether err came from the in-flight guard.
func IsRejected(err error) bool { return errors.Is(err, ErrExportInProgress) }
