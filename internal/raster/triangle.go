package raster

import (
	"image"
	"image/color"
	"math"

	"smd-loader/internal/mathutil"
)

// ScreenVertex is one projected triangle corner.
// X and Y are pixels, Z is view depth (larger is nearer), U and V are texture
// coordinates with V already flipped to image space.
type ScreenVertex struct {
	X, Y, Z float64
	U, V    float64
}

// RasterizeTriangle fills one flat-shaded triangle with z-buffering.
// Texels with alpha below 8 are discarded without touching the depth buffer.
// A nil tex paints the triangle with fallback.
func RasterizeTriangle(fb *FrameBuffer, tri [3]ScreenVertex, tex *image.NRGBA, fallback color.NRGBA, lc *LightConfig) {
	a, b, c := tri[0], tri[1], tri[2]

	e1 := mathutil.Vec3{b.X - a.X, b.Y - a.Y, b.Z - a.Z}
	e2 := mathutil.Vec3{c.X - a.X, c.Y - a.Y, c.Z - a.Z}
	normal := e1.Cross(e2)
	if normal.Len() < 1e-8 {
		return
	}
	shade := lc.ComputeShade(normal.Normalize())

	minX := max(int(math.Min(math.Min(a.X, b.X), c.X)), 0)
	maxX := min(int(math.Max(math.Max(a.X, b.X), c.X))+1, fb.Width-1)
	minY := max(int(math.Min(math.Min(a.Y, b.Y), c.Y)), 0)
	maxY := min(int(math.Max(math.Max(a.Y, b.Y), c.Y))+1, fb.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	det := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dyBC := b.Y - c.Y
	dxCB := c.X - b.X
	dyCA := c.Y - a.Y
	dxAC := a.X - c.X

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - c.Y
		row := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - c.X
			w0 := (dyBC*dsx + dxCB*dsy) * invDet
			w1 := (dyCA*dsx + dxAC*dsy) * invDet
			w2 := 1.0 - w0 - w1
			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*a.Z + w1*b.Z + w2*c.Z
			zi := row + sx
			if z <= fb.ZBuf[zi] {
				continue
			}

			texel := fallback
			if tex != nil {
				u := w0*a.U + w1*b.U + w2*c.U
				v := w0*a.V + w1*b.V + w2*c.V
				texel.R, texel.G, texel.B, texel.A = SampleTexture(tex, u, v)
			}
			if texel.A < 8 {
				continue
			}
			fb.ZBuf[zi] = z

			pi := zi * 4
			fb.Color[pi] = lc.shadeTexel(texel.R, shade)
			fb.Color[pi+1] = lc.shadeTexel(texel.G, shade)
			fb.Color[pi+2] = lc.shadeTexel(texel.B, shade)
			fb.Color[pi+3] = texel.A
		}
	}
}
