package filters

import (
	"image"
	"math"

	"gocv.io/x/gocv"
)

// Above this sigma the blur runs on a downscaled copy.
const maxDirectSigma = 16.0

func renderGaussianBlur(src gocv.Mat, value func(string) float64) (gocv.Mat, error) {
	return gaussian(src, value(KeyRadius)), nil
}

// renderUnsharpMask sharpens by subtracting a blurred copy:
// src*(1+amount) - blur(src)*amount.
func renderUnsharpMask(src gocv.Mat, value func(string) float64) (gocv.Mat, error) {
	amount := value(KeyIntensity)
	radius := value(KeyRadius)
	if amount == 0 || radius <= 0 {
		return src.Clone(), nil
	}

	blurred := gaussian(src, radius)
	defer blurred.Close()

	dst := gocv.NewMat()
	gocv.AddWeighted(src, 1+amount, blurred, -amount, 0, &dst)
	return dst, nil
}

// gaussian returns a blurred copy of src with the given sigma in pixels.
func gaussian(src gocv.Mat, sigma float64) gocv.Mat {
	if sigma <= 0 || math.IsNaN(sigma) {
		return src.Clone()
	}

	if sigma <= maxDirectSigma {
		dst := gocv.NewMat()
		gocv.GaussianBlur(src, &dst, image.Point{}, sigma, sigma, gocv.BorderReflect101)
		return dst
	}

	factor := sigma / maxDirectSigma
	small := image.Pt(
		max(1, int(math.Round(float64(src.Cols())/factor))),
		max(1, int(math.Round(float64(src.Rows())/factor))),
	)
	scaledSigma := sigma * float64(small.X) / float64(src.Cols())

	reduced := gocv.NewMat()
	defer reduced.Close()
	gocv.Resize(src, &reduced, small, 0, 0, gocv.InterpolationArea)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(reduced, &blurred, image.Point{}, scaledSigma, scaledSigma, gocv.BorderReflect101)

	dst := gocv.NewMat()
	gocv.Resize(blurred, &dst, image.Pt(src.Cols(), src.Rows()), 0, 0, gocv.InterpolationLinear)
	return dst
}
