package pagination

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"
	"github.com/ledongthuc/pdf"
)

// Options describes the physical output document.
type Options struct {
	// PageWidth and PageHeight are in Unit, portrait orientation.
	PageWidth   float64
	PageHeight  float64
	Unit        string
	Orientation string
	Margin      float64
	// Quality is the JPEG quality, 1..100.
	Quality int
	Title   string
	Creator string
}

// DefaultOptions is zero-margin A4 portrait at JPEG quality 98.
func DefaultOptions() Options {
	return Options{
		PageWidth:   210,
		PageHeight:  297,
		Unit:        "mm",
		Orientation: "portrait",
		Quality:     98,
		Creator:     "cv-builder",
	}
}

// pageSize returns the page size with orientation applied.
func (o Options) pageSize() (w, h float64) {
	w, h = o.PageWidth, o.PageHeight
	if o.Orientation == "landscape" || o.Orientation == "l" {
		w, h = h, w
	}
	return w, h
}

// RasterPageHeight returns the raster height of one page for an image of the given width.
func (o Options) RasterPageHeight(rasterWidth int) int {
	w, h := o.pageSize()
	return PageHeightFor(rasterWidth, w-2*o.Margin, h-2*o.Margin)
}

// DecodeRaster decodes a captured screenshot.
func DecodeRaster(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &Error{Message: "failed to decode raster", Cause: err}
	}
	return img, nil
}

// AssemblePDF writes one PDF page per planned slice of img. Slices shorter
// than a full page are drawn at their natural height from the top margin.
func AssemblePDF(w io.Writer, img image.Image, pages []Span, opts Options) error {
	if img == nil {
		return &Error{Message: "no raster to paginate"}
	}
	if len(pages) == 0 {
		return &Error{Message: "page plan is empty"}
	}
	if opts.Quality < 1 || opts.Quality > 100 {
		opts.Quality = DefaultOptions().Quality
	}
	if opts.Unit == "" {
		opts.Unit = "mm"
	}

	bounds := img.Bounds()
	rasterWidth := bounds.Dx()
	pageW, pageH := opts.pageSize()
	drawW := pageW - 2*opts.Margin
	if drawW <= 0 || pageH-2*opts.Margin <= 0 {
		return &Error{Message: fmt.Sprintf("margin %.2f leaves no printable area", opts.Margin)}
	}
	unitsPerPixel := drawW / float64(rasterWidth)

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        opts.Unit,
		Size:           fpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	doc.SetMargins(opts.Margin, opts.Margin, opts.Margin)
	doc.SetAutoPageBreak(false, 0)
	if opts.Title != "" {
		doc.SetTitle(opts.Title, true)
	}
	if opts.Creator != "" {
		doc.SetCreator(opts.Creator, true)
	}

	for i, p := range pages {
		if p.Height() <= 0 {
			return &Error{Message: fmt.Sprintf("page %d has no height", i+1)}
		}
		slice := imaging.Crop(img, image.Rect(bounds.Min.X, bounds.Min.Y+p.Top, bounds.Max.X, bounds.Min.Y+p.Bottom))

		var buf bytes.Buffer
		if err := imaging.Encode(&buf, slice, imaging.JPEG, imaging.JPEGQuality(opts.Quality)); err != nil {
			return &Error{Message: fmt.Sprintf("failed to encode page %d", i+1), Cause: err}
		}

		name := fmt.Sprintf("page-%d", i+1)
		imgOpts := fpdf.ImageOptions{ImageType: "JPG"}
		doc.RegisterImageOptionsReader(name, imgOpts, &buf)
		doc.AddPage()
		doc.ImageOptions(name, opts.Margin, opts.Margin, drawW, float64(p.Height())*unitsPerPixel, false, imgOpts, 0, "")
	}

	if err := doc.Output(w); err != nil {
		return &Error{Message: "failed to write PDF", Cause: err}
	}
	return nil
}

// CountPages returns the number of pages in a PDF document.
func CountPages(data []byte) (int, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, &Error{Message: "failed to read PDF", Cause: err}
	}
	return r.NumPage(), nil
}

// CountPDFPages counts the pages of the PDF file at path.
func CountPDFPages(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, &Error{Message: "failed to read PDF file", Cause: err}
	}
	return CountPages(data)
}
