package detection

import "image"

// neighbours lists the 8-neighbourhood in counter-clockwise order as seen on
// screen (Y grows downward), starting east.
var neighbours = [8]image.Point{
	{X: 1, Y: 0},
	{X: 1, Y: -1},
	{X: 0, Y: -1},
	{X: -1, Y: -1},
	{X: -1, Y: 0},
	{X: -1, Y: 1},
	{X: 0, Y: 1},
	{X: 1, Y: 1},
}

const west = 4

// FindContours returns the outer boundary of every 8-connected foreground
// region in the mask, one contour per region.
//
// Regions are labelled with an iterative flood fill, then the outer border of
// each one is followed from its first pixel in raster order. Holes inside a
// region are not reported. Straight runs are reduced to their end points,
// which leaves the enclosed area and the arc length unchanged.
//
// Contours come back in raster order of their starting pixel. Callers must
// not rely on that order.
func FindContours(m *Mask) [][]image.Point {
	labels := make([]int32, len(m.Pix))
	contours := make([][]image.Point, 0)

	var next int32
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			i := y*m.Width + x
			if m.Pix[i] == 0 || labels[i] != 0 {
				continue
			}
			next++
			label := next
			fillRegion(m, labels, x, y, label)

			inside := func(p image.Point) bool {
				return m.At(p.X, p.Y) && labels[p.Y*m.Width+p.X] == label
			}
			contours = append(contours, compressChain(traceBorder(inside, image.Pt(x, y), len(m.Pix))))
		}
	}
	return contours
}

// fillRegion labels the 8-connected region containing (startX, startY).
// It uses an explicit stack so large regions cannot overflow the call stack.
func fillRegion(m *Mask, labels []int32, startX, startY int, label int32) {
	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !m.At(p.X, p.Y) {
			continue
		}
		i := p.Y*m.Width + p.X
		if labels[i] != 0 {
			continue
		}
		labels[i] = label

		for _, d := range neighbours {
			stack = append(stack, p.Add(d))
		}
	}
}

// traceBorder follows the outer border of a region, counter-clockwise on
// screen, starting at start. start must be the region's first pixel in
// raster order so that its west neighbour is background. It stops when it is
// about to repeat the first step (start -> first neighbour), which makes
// single-pixel-wide parts safe.
//
// limit bounds the number of recorded points.
func traceBorder(inside func(image.Point) bool, start image.Point, limit int) []image.Point {
	first := -1
	for i := 0; i < 8; i++ {
		d := (west - i + 8) % 8
		if inside(start.Add(neighbours[d])) {
			first = d
			break
		}
	}
	if first < 0 {
		return []image.Point{start}
	}

	second := start.Add(neighbours[first])
	prev, cur := second, start
	contour := make([]image.Point, 0, 64)

	for len(contour) <= 4*limit {
		back := directionTo(cur, prev)
		nxt := prev
		for k := 1; k <= 8; k++ {
			p := cur.Add(neighbours[(back+k)%8])
			if inside(p) {
				nxt = p
				break
			}
		}

		contour = append(contour, cur)
		if nxt == start && cur == second {
			break
		}
		prev, cur = cur, nxt
	}
	return contour
}

// directionTo returns the neighbour index that leads from a to b.
func directionTo(a, b image.Point) int {
	d := b.Sub(a)
	for i, n := range neighbours {
		if n == d {
			return i
		}
	}
	return 0
}

// compressChain drops every point whose incoming and outgoing steps are equal,
// keeping only the corners of the closed chain.
func compressChain(pts []image.Point) []image.Point {
	n := len(pts)
	if n < 3 {
		return pts
	}

	out := make([]image.Point, 0, n/2)
	for i, p := range pts {
		prev := pts[(i-1+n)%n]
		next := pts[(i+1)%n]
		if p.Sub(prev) != next.Sub(p) {
			out = append(out, p)
		}
	}
	return out
}
