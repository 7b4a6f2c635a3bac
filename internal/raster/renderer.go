package raster

import (
	"image"
	"image/color"

	"smd-loader/internal/mathutil"
	"smd-loader/internal/smd"
	"smd-loader/internal/texture"
	"smd-loader/internal/viewmatrix"
)

// untextured is the fallback surface color when a mesh texture cannot be resolved.
var untextured = color.NRGBA{160, 160, 170, 255}

// Options controls a single preview render.
type Options struct {
	Size        int // final edge length in pixels
	Supersample int // render at Size*Supersample; the caller downsamples
	Camera      viewmatrix.Camera
}

func (o Options) renderSize() int {
	ss := o.Supersample
	if ss < 1 {
		ss = 1
	}
	return o.Size * ss
}

// RenderModel rasterizes the bind pose of a converted model to a square NRGBA
// image of Size*Supersample pixels. Texture keys go through res; a nil res
// renders every mesh untextured.
func RenderModel(m *smd.Model, res texture.Resolver, opts Options) *image.NRGBA {
	renderSize := opts.renderSize()
	fb := NewFrameBuffer(renderSize, renderSize)

	points := collectPositions(m)
	if len(points) == 0 {
		return fb.Image()
	}

	margin := 16 * (renderSize / max(opts.Size, 1))
	center, scale := viewmatrix.Fit(points, opts.Camera, renderSize, margin)
	lc := DefaultLightConfig()

	for _, mesh := range m.Meshes {
		if len(mesh.Triangles) == 0 {
			continue
		}

		pts := make([]mathutil.Vec3, 0, len(mesh.Triangles)*3)
		for _, tri := range mesh.Triangles {
			for _, v := range tri.Vertices {
				pts = append(pts, v.Position)
			}
		}
		px, py, pz := viewmatrix.ProjectVertices(pts, opts.Camera, center, scale, renderSize)

		var tex *image.NRGBA
		if res != nil {
			tex = res.Resolve(mesh.Texture)
		}
		fallback := untextured
		if tex != nil {
			fallback = averageColor(tex)
		}

		for t, tri := range mesh.Triangles {
			var sv [3]ScreenVertex
			for k, v := range tri.Vertices {
				i := t*3 + k
				sv[k] = ScreenVertex{X: px[i], Y: py[i], Z: pz[i], U: v.UV[0], V: 1 - v.UV[1]}
			}
			RasterizeTriangle(fb, sv, tex, fallback, &lc)
		}
	}

	return fb.Image()
}

func collectPositions(m *smd.Model) []mathutil.Vec3 {
	points := make([]mathutil.Vec3, 0, m.TriangleCount()*3)
	for _, mesh := range m.Meshes {
		for _, tri := range mesh.Triangles {
			for _, v := range tri.Vertices {
				points = append(points, v.Position)
			}
		}
	}
	return points
}

func averageColor(tex *image.NRGBA) color.NRGBA {
	b := tex.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return untextured
	}

	var sumR, sumG, sumB float64
	for y := 0; y < h; y++ {
		off := y * tex.Stride
		for x := 0; x < w; x++ {
			i := off + x*4
			sumR += float64(tex.Pix[i])
			sumG += float64(tex.Pix[i+1])
			sumB += float64(tex.Pix[i+2])
		}
	}
	n := float64(w * h)
	return color.NRGBA{uint8(sumR/n + 0.5), uint8(sumG/n + 0.5), uint8(sumB/n + 0.5), 255}
}
