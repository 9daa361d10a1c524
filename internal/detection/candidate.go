package detection

import (
	"image"
	"math"
	"sort"
)

const (
	// MinEnclosingRadius is the smallest minimum-enclosing-circle radius, in
	// working-resolution pixels, that a region needs to be considered.
	MinEnclosingRadius = 20.0

	// MinCircularity is the circularity a region must exceed.
	MinCircularity = 0.3
)

// Circle is a circle in working-resolution coordinates.
type Circle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// Candidate is a contour together with the shape metrics used to decide
// whether it looks like the sun. All values are in working-resolution pixels.
type Candidate struct {
	Contour []image.Point `json:"-"`

	// Enclosing is the minimum enclosing circle of the contour points.
	Enclosing Circle `json:"enclosing"`

	// Area is the absolute polygon area of the contour.
	Area float64 `json:"area"`

	// Perimeter is the length of the closed polyline through the contour.
	Perimeter float64 `json:"perimeter"`

	// Circularity is 4*pi*Area/Perimeter^2: 1.0 for a circle, lower for
	// elongated or ragged shapes. Zero when Perimeter is zero.
	Circularity float64 `json:"circularity"`

	// Box is the axis-aligned bounding box; Max is exclusive.
	Box image.Rectangle `json:"-"`
}

// Center returns the center of the bounding box.
func (c Candidate) Center() (float64, float64) {
	return float64(c.Box.Min.X) + float64(c.Box.Dx())/2,
		float64(c.Box.Min.Y) + float64(c.Box.Dy())/2
}

// Qualifies reports whether the candidate passes the size and shape gates:
// enclosing radius of at least MinEnclosingRadius, a non-zero perimeter and
// circularity above MinCircularity.
func (c Candidate) Qualifies() bool {
	if c.Enclosing.Radius < MinEnclosingRadius {
		return false
	}
	if c.Perimeter == 0 {
		return false
	}
	return c.Circularity > MinCircularity
}

// Measure computes the metrics of a contour without filtering it.
func Measure(contour []image.Point) Candidate {
	c := Candidate{
		Contour:   contour,
		Enclosing: minEnclosingCircle(contour),
		Area:      polygonArea(contour),
		Perimeter: arcLength(contour),
		Box:       boundingBox(contour),
	}
	if c.Perimeter > 0 {
		c.Circularity = 4 * math.Pi * c.Area / (c.Perimeter * c.Perimeter)
	}
	return c
}

// Select measures every contour and returns the qualifying candidate with
// the largest area, or nil when none qualifies. On equal area the first one
// wins.
func Select(contours [][]image.Point) *Candidate {
	var best *Candidate
	for _, contour := range contours {
		c := Measure(contour)
		if !c.Qualifies() {
			continue
		}
		if best == nil || c.Area > best.Area {
			picked := c
			best = &picked
		}
	}
	return best
}

// polygonArea is the absolute shoelace area of the closed polygon.
func polygonArea(pts []image.Point) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	var sum int
	for i, p := range pts {
		q := pts[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(float64(sum)) / 2
}

// arcLength is the length of the closed polyline through pts.
func arcLength(pts []image.Point) float64 {
	n := len(pts)
	if n < 2 {
		return 0
	}
	var length float64
	for i, p := range pts {
		q := pts[(i+1)%n]
		length += math.Hypot(float64(q.X-p.X), float64(q.Y-p.Y))
	}
	return length
}

func boundingBox(pts []image.Point) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// minEnclosingCircle returns the smallest circle containing every point.
//
// Only convex hull vertices can touch the optimal circle, so the hull is
// computed first. The circle is then grown incrementally: whenever a point
// falls outside, the circle is rebuilt with that point on its boundary
// (Welzl's algorithm in its iterative form). The input order is kept, so
// the result is deterministic.
func minEnclosingCircle(pts []image.Point) Circle {
	hull := convexHull(pts)
	if len(hull) == 0 {
		return Circle{}
	}

	c := Circle{X: float64(hull[0].X), Y: float64(hull[0].Y)}
	for i := 1; i < len(hull); i++ {
		if c.contains(hull[i]) {
			continue
		}
		c = Circle{X: float64(hull[i].X), Y: float64(hull[i].Y)}
		for j := 0; j < i; j++ {
			if c.contains(hull[j]) {
				continue
			}
			c = circleFromPair(hull[i], hull[j])
			for k := 0; k < j; k++ {
				if c.contains(hull[k]) {
					continue
				}
				c = circleFromTriple(hull[i], hull[j], hull[k])
			}
		}
	}
	return c
}

func (c Circle) contains(p image.Point) bool {
	return math.Hypot(float64(p.X)-c.X, float64(p.Y)-c.Y) <= c.Radius+1e-7
}

func circleFromPair(a, b image.Point) Circle {
	cx := float64(a.X+b.X) / 2
	cy := float64(a.Y+b.Y) / 2
	return Circle{X: cx, Y: cy, Radius: math.Hypot(float64(a.X)-cx, float64(a.Y)-cy)}
}

// circleFromTriple returns the circumcircle of a, b and c. Collinear points
// fall back to the circle spanning the farthest pair.
func circleFromTriple(a, b, c image.Point) Circle {
	ax, ay := float64(a.X), float64(a.Y)
	bx, by := float64(b.X), float64(b.Y)
	cx, cy := float64(c.X), float64(c.Y)

	d := 2 * (ax*(by-cy) + bx*(cy-ay) + cx*(ay-by))
	if d == 0 {
		best := circleFromPair(a, b)
		for _, alt := range []Circle{circleFromPair(a, c), circleFromPair(b, c)} {
			if alt.Radius > best.Radius {
				best = alt
			}
		}
		return best
	}

	a2 := ax*ax + ay*ay
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	ux := (a2*(by-cy) + b2*(cy-ay) + c2*(ay-by)) / d
	uy := (a2*(cx-bx) + b2*(ax-cx) + c2*(bx-ax)) / d
	return Circle{X: ux, Y: uy, Radius: math.Hypot(ax-ux, ay-uy)}
}

// convexHull returns the hull vertices using Andrew's monotone chain.
// Duplicate and collinear points are dropped.
func convexHull(pts []image.Point) []image.Point {
	if len(pts) < 3 {
		return append([]image.Point(nil), pts...)
	}

	sorted := append([]image.Point(nil), pts...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	cross := func(o, a, b image.Point) int {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	hull := make([]image.Point, 0, 2*len(sorted))
	for _, p := range sorted {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}
