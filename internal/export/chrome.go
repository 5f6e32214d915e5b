package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/cv-builder/internal/pagination"
)

// ChromeCollaborator mounts documents in a headless Chrome and captures them
// as a single tall raster, which is then cut into pages.
// Requires Chrome/Chromium to be installed on the system.
type ChromeCollaborator struct {
	// ExecPath overrides the browser binary; CHROME_PATH is used when empty.
	ExecPath string
	Verbose  bool
}

// NewChromeCollaborator creates a collaborator for the given browser binary.
func NewChromeCollaborator(execPath string, verbose bool) *ChromeCollaborator {
	return &ChromeCollaborator{ExecPath: execPath, Verbose: verbose}
}

func (c *ChromeCollaborator) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	path := c.ExecPath
	if path == "" {
		path = os.Getenv("CHROME_PATH")
	}
	if path != "" {
		opts = append(opts, chromedp.ExecPath(path))
	}
	return opts
}

// Mount starts a browser and loads document into a blank page.
func (c *ChromeCollaborator) Mount(ctx context.Context, document string) (Surface, error) {
	if c.Verbose {
		log.Printf("[BROWSER] Starting headless browser (%d byte document)", len(document))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, c.allocatorOptions()...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	s := &chromeSurface{
		ctx:     browserCtx,
		verbose: c.Verbose,
		cancel: func() {
			cancelBrowser()
			cancelAlloc()
		},
	}

	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, document).Do(ctx)
		}),
		chromedp.WaitReady(".cv-canvas", chromedp.ByQuery),
	)
	if err != nil {
		s.cancel()
		return nil, fmt.Errorf("browser mount failed: %w", err)
	}
	return s, nil
}

type chromeSurface struct {
	ctx     context.Context
	cancel  func()
	verbose bool
}

// run executes actions on the browser tab while honoring the caller's ctx.
func (s *chromeSurface) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

func (s *chromeSurface) WaitFonts(ctx context.Context) error {
	var ready bool
	return s.run(ctx, chromedp.Evaluate(`document.fonts ? document.fonts.ready.then(() => true) : true`, &ready, awaitPromise))
}

func (s *chromeSurface) ImageSources(ctx context.Context) ([]string, error) {
	var srcs []string
	err := s.run(ctx, chromedp.Evaluate(`Array.from(document.images).map(i => i.getAttribute('src') || '').filter(Boolean)`, &srcs))
	return srcs, err
}

const waitImageJS = `(() => {
	const imgs = Array.from(document.images).filter(i => i.getAttribute('src') === %s);
	return Promise.all(imgs.map(i => i.complete
		? Promise.resolve(i.naturalWidth > 0)
		: new Promise(r => {
			i.addEventListener('load', () => r(true), { once: true });
			i.addEventListener('error', () => r(false), { once: true });
		}))).then(rs => rs.every(Boolean));
})()`

func (s *chromeSurface) WaitImage(ctx context.Context, src string) error {
	quoted, err := json.Marshal(src)
	if err != nil {
		return err
	}
	var loaded bool
	if err := s.run(ctx, chromedp.Evaluate(fmt.Sprintf(waitImageJS, quoted), &loaded, awaitPromise)); err != nil {
		return err
	}
	if !loaded {
		return &Error{Message: "image failed to load: " + src}
	}
	return nil
}

// canvasBox is the canvas geometry in CSS pixels.
type canvasBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

const measureJS = `(() => {
	const c = document.querySelector('.cv-canvas');
	const r = c.getBoundingClientRect();
	return { x: r.left + window.scrollX, y: r.top + window.scrollY, width: r.width, height: Math.max(r.height, c.scrollHeight) };
})()`

const avoidJS = `(() => {
	const c = document.querySelector('.cv-canvas');
	const top = c.getBoundingClientRect().top;
	return Array.from(c.querySelectorAll(%s)).map(e => {
		const r = e.getBoundingClientRect();
		return { top: Math.floor(r.top - top), bottom: Math.ceil(r.bottom - top) };
	});
})()`

func (s *chromeSurface) Rasterize(ctx context.Context, cfg Config, title string) ([]byte, error) {
	var box canvasBox
	var avoid []pagination.Span
	var raster []byte

	actions := []chromedp.Action{
		chromedp.Evaluate(measureJS, &box),
	}
	if sel := cfg.PageBreak.Mode.Selector(); sel != "" {
		quoted, err := json.Marshal(sel)
		if err != nil {
			return nil, err
		}
		actions = append(actions, chromedp.Evaluate(fmt.Sprintf(avoidJS, quoted), &avoid))
	}
	if err := s.run(ctx, actions...); err != nil {
		return nil, fmt.Errorf("failed to measure canvas: %w", err)
	}
	if box.Width <= 0 || box.Height <= 0 {
		return nil, &Error{Message: "canvas has no size"}
	}

	format := page.CaptureScreenshotFormatJpeg
	if cfg.Image.Type == "png" {
		format = page.CaptureScreenshotFormatPng
	}
	err := s.run(ctx,
		emulation.SetDeviceMetricsOverride(int64(math.Ceil(box.X+box.Width)), int64(math.Ceil(box.Y+box.Height)), cfg.Rasterize.Scale, false),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			capture := page.CaptureScreenshot().
				WithFormat(format).
				WithClip(&page.Viewport{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height, Scale: 1}).
				WithCaptureBeyondViewport(true).
				WithFromSurface(true)
			if format == page.CaptureScreenshotFormatJpeg {
				capture = capture.WithQuality(int64(cfg.JPEGQuality()))
			}
			raster, err = capture.Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	img, err := pagination.DecodeRaster(raster)
	if err != nil {
		return nil, err
	}

	// Spans were measured in CSS pixels; the raster is scaled.
	ratio := float64(img.Bounds().Dy()) / box.Height
	for i := range avoid {
		avoid[i].Top = int(math.Floor(float64(avoid[i].Top) * ratio))
		avoid[i].Bottom = int(math.Ceil(float64(avoid[i].Bottom) * ratio))
	}

	opts := cfg.PaginationOptions(title)
	pages := pagination.PlanBreaks(img.Bounds().Dy(), opts.RasterPageHeight(img.Bounds().Dx()), avoid, cfg.PageBreak.Mode)
	if s.verbose {
		log.Printf("[BROWSER] Captured %dx%d raster, %d page(s)", img.Bounds().Dx(), img.Bounds().Dy(), len(pages))
	}

	var buf bytes.Buffer
	if err := pagination.AssemblePDF(&buf, img, pages, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *chromeSurface) Close() error {
	s.cancel()
	return nil
}
