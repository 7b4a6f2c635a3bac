package raster

import (
	"image"
	"math"
)

// SampleTexture performs bilinear filtering with UV wrapping.
// Reads tex.Pix directly; tex must have its origin at (0, 0).
func SampleTexture(tex *image.NRGBA, u, v float64) (r, g, b, a uint8) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()
	if w == 0 || h == 0 {
		return 0, 0, 0, 0
	}

	fx := wrap(u) * float64(w-1)
	fy := wrap(v) * float64(h-1)
	x0, y0 := int(fx), int(fy)
	x1, y1 := (x0+1)%w, (y0+1)%h
	dx, dy := fx-float64(x0), fy-float64(y0)

	i00 := tex.PixOffset(x0, y0)
	i10 := tex.PixOffset(x1, y0)
	i01 := tex.PixOffset(x0, y1)
	i11 := tex.PixOffset(x1, y1)

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	var out [4]uint8
	for c := 0; c < 4; c++ {
		f := float64(tex.Pix[i00+c])*w00 + float64(tex.Pix[i10+c])*w10 +
			float64(tex.Pix[i01+c])*w01 + float64(tex.Pix[i11+c])*w11
		out[c] = uint8(f + 0.5)
	}
	return out[0], out[1], out[2], out[3]
}

// wrap maps t into [0, 1).
func wrap(t float64) float64 {
	return t - math.Floor(t)
}
