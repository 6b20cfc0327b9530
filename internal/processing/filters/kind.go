package filters

import (
	"fmt"
	"strings"
)

// Kind identifies one of the built-in photo filters.
type Kind int

const (
	ColorPosterize Kind = iota
	Edges
	GaussianBlur
	Pixellate
	SepiaTone
	UnsharpMask
	Vignette
)

var kindNames = [...]string{
	ColorPosterize: "Color Posterize",
	Edges:          "Edges",
	GaussianBlur:   "Gaussian Blur",
	Pixellate:      "Pixellate",
	SepiaTone:      "Sepia Tone",
	UnsharpMask:    "Unsharp Mask",
	Vignette:       "Vignette",
}

// Kinds returns every filter in menu order.
func Kinds() []Kind {
	return []Kind{ColorPosterize, Edges, GaussianBlur, Pixellate, SepiaTone, UnsharpMask, Vignette}
}

func (k Kind) Valid() bool {
	return k >= ColorPosterize && k <= Vignette
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind accepts display names ("Gaussian Blur") as well as compact or
// snake-case spellings ("GaussianBlur", "gaussian_blur").
func ParseKind(name string) (Kind, error) {
	want := normalizeName(name)
	for _, k := range Kinds() {
		if normalizeName(kindNames[k]) == want {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown filter %q", name)
}

func normalizeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}
