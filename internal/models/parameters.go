package models

import (
	"fmt"
	"math"
	"strings"
)

// Parameter names one of the three user-facing filter controls.
type Parameter string

const (
	Intensity Parameter = "intensity"
	Radius    Parameter = "radius"
	Scale     Parameter = "scale"
)

const (
	DefaultIntensity = 0.5
	DefaultRadius    = 0.5
	DefaultScale     = 50.0
)

// Parameters lists the controls in display order.
func Parameters() []Parameter {
	return []Parameter{Intensity, Radius, Scale}
}

func ParseParameter(name string) (Parameter, error) {
	switch p := Parameter(strings.ToLower(strings.TrimSpace(name))); p {
	case Intensity, Radius, Scale:
		return p, nil
	default:
		return "", fmt.Errorf("unknown parameter %q", name)
	}
}

// Domain returns the inclusive range a parameter is clamped into.
// Scale has no upper bound.
func (p Parameter) Domain() (lo, hi float64) {
	switch p {
	case Intensity, Radius:
		return 0, 1
	default:
		return 0, math.Inf(1)
	}
}

// Label is the caption shown next to the slider.
func (p Parameter) Label() string {
	switch p {
	case Intensity:
		return "Intensity"
	case Radius:
		return "Radius"
	case Scale:
		return "Scale"
	default:
		return string(p)
	}
}

// ParameterSet holds the slider values in their display range. It is shared
// by pointer between the controller, the view and the pipeline.
type ParameterSet struct {
	Intensity float64
	Radius    float64
	Scale     float64
}

func NewParameterSet() *ParameterSet {
	return &ParameterSet{
		Intensity: DefaultIntensity,
		Radius:    DefaultRadius,
		Scale:     DefaultScale,
	}
}

func (ps *ParameterSet) Get(p Parameter) float64 {
	switch p {
	case Intensity:
		return ps.Intensity
	case Radius:
		return ps.Radius
	case Scale:
		return ps.Scale
	default:
		return 0
	}
}

// Set clamps value into the parameter's domain and stores it. It reports
// whether the stored value changed. NaN and unknown parameters are ignored.
func (ps *ParameterSet) Set(p Parameter, value float64) bool {
	if math.IsNaN(value) {
		return false
	}

	lo, hi := p.Domain()
	value = math.Max(lo, math.Min(hi, value))

	var slot *float64
	switch p {
	case Intensity:
		slot = &ps.Intensity
	case Radius:
		slot = &ps.Radius
	case Scale:
		slot = &ps.Scale
	default:
		return false
	}

	if *slot == value {
		return false
	}
	*slot = value
	return true
}
