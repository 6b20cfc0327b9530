package models

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParameterSetDefaults(t *testing.T) {
	ps := NewParameterSet()

	assert.Equal(t, 0.5, ps.Get(Intensity))
	assert.Equal(t, 0.5, ps.Get(Radius))
	assert.Equal(t, 50.0, ps.Get(Scale))
}

func TestParameterSetClamps(t *testing.T) {
	tests := []struct {
		name  string
		param Parameter
		in    float64
		want  float64
	}{
		{"intensity above", Intensity, 1.7, 1},
		{"intensity below", Intensity, -0.2, 0},
		{"radius inside", Radius, 0.9, 0.9},
		{"radius above", Radius, 3, 1},
		{"scale large", Scale, 400, 400},
		{"scale negative", Scale, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := NewParameterSet()
			ps.Set(tt.param, tt.in)
			assert.Equal(t, tt.want, ps.Get(tt.param))
		})
	}
}

func TestParameterSetSetReportsChange(t *testing.T) {
	ps := NewParameterSet()

	assert.True(t, ps.Set(Intensity, 0.7))
	assert.False(t, ps.Set(Intensity, 0.7))
	assert.False(t, ps.Set(Intensity, math.NaN()))
	assert.Equal(t, 0.7, ps.Intensity)
	assert.False(t, ps.Set(Parameter("gamma"), 0.1))
}

func TestParseParameter(t *testing.T) {
	p, err := ParseParameter(" Radius ")
	require.NoError(t, err)
	assert.Equal(t, Radius, p)

	_, err = ParseParameter("levels")
	assert.Error(t, err)
}

func TestNewImageDataEmpty(t *testing.T) {
	var nilData *ImageData
	assert.True(t, nilData.Empty())
	assert.True(t, NewImageData(nil, "png", "x.png").Empty())
	assert.True(t, (&ImageData{Image: image.NewRGBA(image.Rect(0, 0, 0, 4))}).Empty())

	literal := &ImageData{Image: image.NewRGBA(image.Rect(0, 0, 2, 3))}
	assert.False(t, literal.Empty())
}
