package postprocess

import "image"

// neighbours8 lists the offsets of the 8-connected neighbourhood.
var neighbours8 = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// RemoveSmallClusters clears disconnected opaque islands smaller than
// minRatio of all non-transparent pixels. Stray fragments from thin or
// far-away geometry are the usual source. A single island is never removed.
func RemoveSmallClusters(img *image.NRGBA, minRatio float64) *image.NRGBA {
	labels, sizes, total := labelComponents(img)
	if len(sizes) <= 1 {
		return img
	}

	minSize := int(float64(total) * minRatio)
	b := img.Bounds()
	w := b.Dx()

	out := image.NewNRGBA(b)
	copy(out.Pix, img.Pix)
	for i, l := range labels {
		if l < 0 || sizes[l] >= minSize {
			continue
		}
		off := out.PixOffset(b.Min.X+i%w, b.Min.Y+i/w)
		clear(out.Pix[off : off+4])
	}
	return out
}

// labelComponents assigns an island label to every pixel with nonzero alpha
// (-1 for transparent ones) and returns the size of each island together
// with the total opaque pixel count.
func labelComponents(img *image.NRGBA) (labels []int, sizes []int, total int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	labels = make([]int, w*h)
	for i := range labels {
		labels[i] = -1
	}
	opaque := func(x, y int) bool {
		return img.Pix[img.PixOffset(b.Min.X+x, b.Min.Y+y)+3] > 0
	}

	stack := make([]int, 0, 256)
	for start := range labels {
		sx, sy := start%w, start/w
		if labels[start] >= 0 || !opaque(sx, sy) {
			continue
		}

		id := len(sizes)
		labels[start] = id
		stack = append(stack[:0], start)
		size := 0
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			size++

			cx, cy := cur%w, cur/w
			for _, d := range neighbours8 {
				nx, ny := cx+d[0], cy+d[1]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				ni := ny*w + nx
				if labels[ni] < 0 && opaque(nx, ny) {
					labels[ni] = id
					stack = append(stack, ni)
				}
			}
		}
		sizes = append(sizes, size)
		total += size
	}
	return labels, sizes, total
}
