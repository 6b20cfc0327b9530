package filters

import (
	"fmt"
	"math"

	"gocv.io/x/gocv"
)

// Sepia weights in BGR order: row i produces output channel i from the
// input B, G, R.
var sepiaBGR = [3][3]float32{
	{0.131, 0.534, 0.272},
	{0.168, 0.686, 0.349},
	{0.189, 0.769, 0.393},
}

// renderSepia blends the sepia-toned image with the source; intensity 0
// leaves the photo untouched and 1 is full sepia.
func renderSepia(src gocv.Mat, value func(string) float64) (gocv.Mat, error) {
	intensity := clamp01(value(KeyIntensity))
	if intensity == 0 {
		return src.Clone(), nil
	}

	kernel := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV32FC1)
	defer kernel.Close()
	for row := range sepiaBGR {
		for col, w := range sepiaBGR[row] {
			kernel.SetFloatAt(row, col, w)
		}
	}

	toned := gocv.NewMat()
	defer toned.Close()
	gocv.Transform(src, &toned, kernel)

	dst := gocv.NewMat()
	gocv.AddWeighted(src, 1-intensity, toned, intensity, 0, &dst)
	return dst, nil
}

// renderPosterize quantises every channel to inputLevels evenly spaced
// values.
func renderPosterize(src gocv.Mat, value func(string) float64) (gocv.Mat, error) {
	levels := value(KeyLevels)
	if math.IsNaN(levels) {
		return gocv.NewMat(), fmt.Errorf("invalid level count")
	}
	levels = math.Max(2, math.Min(30, math.Round(levels)))

	table := gocv.NewMatWithSize(1, 256, gocv.MatTypeCV8UC1)
	defer table.Close()

	steps := levels - 1
	for i := 0; i < 256; i++ {
		bucket := math.Round(float64(i) / 255 * steps)
		table.SetUCharAt(0, i, uint8(math.Round(bucket*255/steps)))
	}

	dst := gocv.NewMat()
	gocv.LUT(src, table, &dst)
	return dst, nil
}

// renderEdges shows the per-channel Sobel gradient magnitude, amplified by
// intensity.
func renderEdges(src gocv.Mat, value func(string) float64) (gocv.Mat, error) {
	gain := 2 * math.Max(0, value(KeyIntensity))

	gradX := gocv.NewMat()
	defer gradX.Close()
	gradY := gocv.NewMat()
	defer gradY.Close()
	gocv.Sobel(src, &gradX, gocv.MatTypeCV16S, 1, 0, 3, 1, 0, gocv.BorderReflect101)
	gocv.Sobel(src, &gradY, gocv.MatTypeCV16S, 0, 1, 3, 1, 0, gocv.BorderReflect101)

	absX := gocv.NewMat()
	defer absX.Close()
	absY := gocv.NewMat()
	defer absY.Close()
	gocv.ConvertScaleAbs(gradX, &absX, 1, 0)
	gocv.ConvertScaleAbs(gradY, &absY, 1, 0)

	magnitude := gocv.NewMat()
	defer magnitude.Close()
	gocv.AddWeighted(absX, 0.5, absY, 0.5, 0, &magnitude)

	dst := gocv.NewMat()
	gocv.ConvertScaleAbs(magnitude, &dst, gain, 0)
	return dst, nil
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
