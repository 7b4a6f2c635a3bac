package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample scales img to width×height with premultiplied-alpha CatmullRom
// filtering so transparent edges do not bleed dark halos.
// An image already within the target is returned unchanged.
func Downsample(img *image.NRGBA, width, height int) *image.NRGBA {
	b := img.Bounds()
	if width <= 0 || height <= 0 || (b.Dx() <= width && b.Dy() <= height) {
		return img
	}

	// image.RGBA is premultiplied; draw.Draw performs the conversion.
	premul := image.NewRGBA(b)
	draw.Draw(premul, b, img, b.Min, draw.Src)

	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), premul, b, draw.Src, nil)

	return unpremultiply(scaled)
}

// Shrink downsamples by an integer supersampling factor.
func Shrink(img *image.NRGBA, factor int) *image.NRGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	return Downsample(img, b.Dx()/factor, b.Dy()/factor)
}

func unpremultiply(src *image.RGBA) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := src.PixOffset(x, y)
			di := dst.PixOffset(x, y)
			a := src.Pix[si+3]
			dst.Pix[di+3] = a
			if a <= 1 {
				continue
			}
			inv := 255.0 / float64(a)
			for c := 0; c < 3; c++ {
				dst.Pix[di+c] = clamp8(float64(src.Pix[si+c]) * inv)
			}
		}
	}
	return dst
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
