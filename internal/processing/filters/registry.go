package filters

import (
	"fmt"
	"maps"

	"filtergram/internal/models"
)

type definition struct {
	keys     []string
	defaults map[string]float64
	render   renderFunc
}

// Registry maps each Kind to the recipe for building a fresh Handle.
type Registry struct {
	definitions map[Kind]definition
}

func NewRegistry() *Registry {
	r := &Registry{definitions: make(map[Kind]definition)}
	r.registerFilters()
	return r
}

func (r *Registry) registerFilters() {
	r.register(ColorPosterize, []string{KeyImage, KeyLevels},
		map[string]float64{KeyLevels: 6}, renderPosterize)
	r.register(Edges, []string{KeyImage, KeyIntensity},
		map[string]float64{KeyIntensity: 1}, renderEdges)
	r.register(GaussianBlur, []string{KeyImage, KeyRadius},
		map[string]float64{KeyRadius: 10}, renderGaussianBlur)
	r.register(Pixellate, []string{KeyImage, KeyScale},
		map[string]float64{KeyScale: 8}, renderPixellate)
	r.register(SepiaTone, []string{KeyImage, KeyIntensity},
		map[string]float64{KeyIntensity: 1}, renderSepia)
	r.register(UnsharpMask, []string{KeyImage, KeyRadius, KeyIntensity},
		map[string]float64{KeyRadius: 2.5, KeyIntensity: 0.5}, renderUnsharpMask)
	r.register(Vignette, []string{KeyImage, KeyIntensity, KeyRadius},
		map[string]float64{KeyIntensity: 0, KeyRadius: 1}, renderVignette)
}

func (r *Registry) register(kind Kind, keys []string, defaults map[string]float64, render renderFunc) {
	r.definitions[kind] = definition{keys: keys, defaults: defaults, render: render}
}

// Instantiate builds an independent handle initialised to the filter's
// defaults. kind must be one of Kinds().
func (r *Registry) Instantiate(kind Kind) Handle {
	def, ok := r.definitions[kind]
	if !ok {
		panic(fmt.Sprintf("filters: no definition for %v", kind))
	}

	return &handle{
		kind:   kind,
		keys:   def.keys,
		values: maps.Clone(def.defaults),
		render: def.render,
	}
}

var parameterKeys = map[string]models.Parameter{
	KeyIntensity: models.Intensity,
	KeyRadius:    models.Radius,
	KeyScale:     models.Scale,
}

// SupportedParameters reports which user controls h consumes, by looking at
// the keys it declares. Other keys, such as inputLevels, are not controls.
func SupportedParameters(h Handle) []models.Parameter {
	var params []models.Parameter
	for _, key := range h.InputKeys() {
		if p, ok := parameterKeys[key]; ok {
			params = append(params, p)
		}
	}
	return params
}

// KeyFor returns the input key that carries parameter p.
func KeyFor(p models.Parameter) string {
	for key, param := range parameterKeys {
		if param == p {
			return key
		}
	}
	return ""
}
