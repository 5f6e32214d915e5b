package scaling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeScale(t *testing.T) {
	tests := []struct {
		name      string
		container float64
		canvas    float64
		want      float64
	}{
		{"half width", 397, 794, 0.5},
		{"exact fit", 794, 794, 1},
		{"never scales up", 5000, 794, 1},
		{"default canvas width", 397, 0, 0.5},
		{"zero container", 0, 794, 0},
		{"negative container", -10, 794, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ComputeScale(tt.container, tt.canvas), 1e-9)
		})
	}
}

func TestComputeScale_Bound(t *testing.T) {
	for w := 1.0; w <= 4000; w += 37 {
		got := ComputeScale(w, DefaultCanvasWidth)
		assert.LessOrEqual(t, got, 1.0)
		if w/DefaultCanvasWidth < 1 {
			assert.InDelta(t, w/DefaultCanvasWidth, got, 1e-12)
		}
	}
}

func TestTransform(t *testing.T) {
	assert.Equal(t, map[string]string{
		"transform":        "scale(0.5)",
		"transform-origin": "top center",
	}, Transform(0.5))
	assert.Equal(t, "scale(0.7557)", Transform(600.0/794)["transform"])
	assert.Equal(t, "scale(1)", Transform(1)["transform"])
}
