package pagination

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stripedRaster(width, height int) image.Image {
	img := imaging.New(width, height, color.White)
	for y := 0; y < height; y += 40 {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: 30, G: 64, B: 175, A: 255})
		}
	}
	return img
}

func TestAssemblePDF_PageCountMatchesPlan(t *testing.T) {
	opts := DefaultOptions()
	img := stripedRaster(210, 700)
	pageHeight := opts.RasterPageHeight(210)
	require.Equal(t, 297, pageHeight)

	pages := PlanBreaks(700, pageHeight, nil, ModeCSS)
	require.Len(t, pages, 3)

	var buf bytes.Buffer
	require.NoError(t, AssemblePDF(&buf, img, pages, opts))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	count, err := CountPages(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestAssemblePDF_RoundTripThroughJPEG(t *testing.T) {
	var raster bytes.Buffer
	require.NoError(t, imaging.Encode(&raster, stripedRaster(120, 200), imaging.JPEG, imaging.JPEGQuality(98)))

	img, err := DecodeRaster(raster.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())

	var out bytes.Buffer
	require.NoError(t, AssemblePDF(&out, img, []Span{{0, 200}}, DefaultOptions()))

	path := filepath.Join(t.TempDir(), "cv.pdf")
	require.NoError(t, os.WriteFile(path, out.Bytes(), 0644))
	count, err := CountPDFPages(path)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAssemblePDF_Errors(t *testing.T) {
	var buf bytes.Buffer
	var pErr *Error

	err := AssemblePDF(&buf, nil, []Span{{0, 10}}, DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.As(err, &pErr))

	err = AssemblePDF(&buf, stripedRaster(10, 10), nil, DefaultOptions())
	assert.ErrorContains(t, err, "page plan is empty")

	opts := DefaultOptions()
	opts.Margin = 200
	err = AssemblePDF(&buf, stripedRaster(10, 10), []Span{{0, 10}}, opts)
	assert.ErrorContains(t, err, "no printable area")

	err = AssemblePDF(&buf, stripedRaster(10, 10), []Span{{5, 5}}, DefaultOptions())
	assert.ErrorContains(t, err, "page 1 has no height")
}

func TestDecodeRaster_Invalid(t *testing.T) {
	_, err := DecodeRaster([]byte("not an image"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode raster")
}

func TestCountPages_Invalid(t *testing.T) {
	_, err := CountPages([]byte("%PDF-garbage"))
	assert.Error(t, err)

	_, err = CountPDFPages(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestOptions_Landscape(t *testing.T) {
	opts := DefaultOptions()
	opts.Orientation = "landscape"
	assert.Equal(t, 148, opts.RasterPageHeight(210))
}
