// Package scaling fits the fixed-width canvas into whatever container is showing it.
package scaling

import (
	"math"
	"strconv"

	"github.com/jonathan/cv-builder/internal/rendering"
)

// DefaultCanvasWidth is the logical canvas width in CSS pixels.
const DefaultCanvasWidth = float64(rendering.CanvasWidthPx)

// ComputeScale returns min(containerWidth/canvasWidth, 1). The canvas is only
// ever scaled down. A non-positive canvasWidth means DefaultCanvasWidth and a
// negative containerWidth is treated as zero.
func ComputeScale(containerWidth, canvasWidth float64) float64 {
	if canvasWidth <= 0 {
		canvasWidth = DefaultCanvasWidth
	}
	if containerWidth <= 0 {
		return 0
	}
	return math.Min(containerWidth/canvasWidth, 1)
}

// Transform is the style applied to a scaled canvas: a uniform 2-D scale
// anchored at the top so previews line up with the export size.
func Transform(scale float64) map[string]string {
	return map[string]string{
		"transform":        "scale(" + formatScale(scale) + ")",
		"transform-origin": "top center",
	}
}

func formatScale(s float64) string {
	return strconv.FormatFloat(math.Round(s*10000)/10000, 'f', -1, 64)
}
