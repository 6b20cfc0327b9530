package filters

import (
	"image"
	"math"

	"gocv.io/x/gocv"
)

// renderPixellate replaces each scale×scale block with its mean colour.
func renderPixellate(src gocv.Mat, value func(string) float64) (gocv.Mat, error) {
	scale := value(KeyScale)
	if math.IsNaN(scale) {
		return src.Clone(), nil
	}
	block := int(math.Round(scale))
	if block <= 1 {
		return src.Clone(), nil
	}

	cols, rows := src.Cols(), src.Rows()
	small := image.Pt((cols+block-1)/block, (rows+block-1)/block)

	reduced := gocv.NewMat()
	defer reduced.Close()
	gocv.Resize(src, &reduced, small, 0, 0, gocv.InterpolationArea)

	dst := gocv.NewMat()
	gocv.Resize(reduced, &dst, image.Pt(cols, rows), 0, 0, gocv.InterpolationNearestNeighbor)
	return dst, nil
}

// renderVignette darkens towards the corners. inputRadius is a distance in
// pixels from the centre; the darkening reaches intensity there and grows
// quadratically before it.
func renderVignette(src gocv.Mat, value func(string) float64) (gocv.Mat, error) {
	intensity := value(KeyIntensity)
	if intensity == 0 || math.IsNaN(intensity) {
		return src.Clone(), nil
	}

	cols, rows := src.Cols(), src.Rows()
	reach := value(KeyRadius)
	cx, cy := float64(cols)/2, float64(rows)/2

	weights := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV32FC1)
	defer weights.Close()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			weights.SetFloatAt(y, x, float32(1-intensity*falloff(d, reach)))
		}
	}

	weights3 := gocv.NewMat()
	defer weights3.Close()
	gocv.Merge([]gocv.Mat{weights, weights, weights}, &weights3)

	pixels := gocv.NewMat()
	defer pixels.Close()
	src.ConvertTo(&pixels, gocv.MatTypeCV32FC3)

	shaded := gocv.NewMat()
	defer shaded.Close()
	gocv.Multiply(pixels, weights3, &shaded)

	dst := gocv.NewMat()
	shaded.ConvertTo(&dst, gocv.MatTypeCV8UC3)
	return dst, nil
}

func falloff(d, reach float64) float64 {
	if reach <= 0 || math.IsNaN(reach) {
		if d > 0 {
			return 1
		}
		return 0
	}
	t := math.Min(1, d/reach)
	return t * t
}
