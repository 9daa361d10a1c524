package detection

import (
	"image"
	"math"
	"math/rand"
	"testing"
)

// polygonContour samples n vertices of a circle, rounded to whole pixels
func polygonContour(cx, cy, radius float64, n int) []image.Point {
	pts := make([]image.Point, 0, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts = append(pts, image.Pt(
			int(math.Round(cx+radius*math.Cos(a))),
			int(math.Round(cy+radius*math.Sin(a))),
		))
	}
	return pts
}

// rectContour returns the four corners of a w x h rectangle at (x, y)
func rectContour(x, y, w, h int) []image.Point {
	return []image.Point{{x, y}, {x, y + h}, {x + w, y + h}, {x + w, y}}
}

func TestMeasure_Square(t *testing.T) {
	c := Measure(rectContour(10, 20, 60, 60))

	if c.Area != 3600 {
		t.Errorf("Area = %v, want 3600", c.Area)
	}
	if c.Perimeter != 240 {
		t.Errorf("Perimeter = %v, want 240", c.Perimeter)
	}
	if want := image.Rect(10, 20, 71, 81); c.Box != want {
		t.Errorf("Box = %v, want %v", c.Box, want)
	}
	if math.Abs(c.Enclosing.Radius-30*math.Sqrt2) > 1e-9 {
		t.Errorf("Enclosing radius = %v, want %v", c.Enclosing.Radius, 30*math.Sqrt2)
	}
	if math.Abs(c.Enclosing.X-40) > 1e-9 || math.Abs(c.Enclosing.Y-50) > 1e-9 {
		t.Errorf("Enclosing center = (%v, %v), want (40, 50)", c.Enclosing.X, c.Enclosing.Y)
	}
	if math.Abs(c.Circularity-math.Pi/4) > 1e-9 {
		t.Errorf("Circularity = %v, want pi/4", c.Circularity)
	}
	if !c.Qualifies() {
		t.Error("Square should qualify")
	}

	cx, cy := c.Center()
	if cx != 40.5 || cy != 50.5 {
		t.Errorf("Center = (%v, %v), want (40.5, 50.5)", cx, cy)
	}
}

func TestMeasure_CircleCircularity(t *testing.T) {
	for _, radius := range []float64{50, 100, 200} {
		c := Measure(polygonContour(300, 240, radius, 64))
		if c.Circularity <= 0.95 || c.Circularity > 1.02 {
			t.Errorf("radius %v: Circularity = %.4f, want close to 1", radius, c.Circularity)
		}
	}
}

func TestMeasure_CircularityDecreasesWithElongation(t *testing.T) {
	// Same area (14400), increasingly long
	shapes := [][2]int{{120, 120}, {240, 60}, {480, 30}, {720, 20}, {1440, 10}}

	prev := math.Inf(1)
	for _, s := range shapes {
		c := Measure(rectContour(0, 0, s[0], s[1]))
		if c.Area != 14400 {
			t.Fatalf("%dx%d: Area = %v, want 14400", s[0], s[1], c.Area)
		}
		if c.Circularity >= prev {
			t.Errorf("%dx%d: Circularity %.4f did not drop below %.4f", s[0], s[1], c.Circularity, prev)
		}
		prev = c.Circularity
	}

	if c := Measure(rectContour(0, 0, 720, 20)); c.Qualifies() {
		t.Errorf("720x20 bar qualified with circularity %.4f", c.Circularity)
	}
}

func TestMeasure_Degenerate(t *testing.T) {
	tests := []struct {
		name    string
		contour []image.Point
	}{
		{"empty", nil},
		{"single point", []image.Point{{5, 5}}},
		{"repeated point", []image.Point{{5, 5}, {5, 5}, {5, 5}}},
		{"line", []image.Point{{0, 0}, {100, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Measure(tt.contour)
			if c.Area != 0 {
				t.Errorf("Area = %v, want 0", c.Area)
			}
			if c.Circularity != 0 {
				t.Errorf("Circularity = %v, want 0", c.Circularity)
			}
			if c.Qualifies() {
				t.Error("Degenerate contour should not qualify")
			}
		})
	}
}

func TestQualifies_RadiusFloor(t *testing.T) {
	tests := []struct {
		radius float64
		want   bool
	}{
		{10, false},
		{19, false},
		{21, true},
		{50, true},
	}

	for _, tt := range tests {
		c := Measure(polygonContour(100, 100, tt.radius, 64))
		if c.Qualifies() != tt.want {
			t.Errorf("radius %v (enclosing %.2f): Qualifies = %v, want %v",
				tt.radius, c.Enclosing.Radius, c.Qualifies(), tt.want)
		}
	}
}

func TestSelect_LargestArea(t *testing.T) {
	contours := [][]image.Point{
		rectContour(0, 0, 60, 60),
		rectContour(200, 200, 80, 80),
		rectContour(400, 0, 70, 70),
		rectContour(0, 300, 600, 10), // larger area but a thin bar
	}

	best := Select(contours)
	if best == nil {
		t.Fatal("Select returned nil")
	}
	if best.Area != 6400 {
		t.Errorf("Selected area = %v, want 6400", best.Area)
	}
	if best.Box.Min != image.Pt(200, 200) {
		t.Errorf("Selected box = %v, want the 80x80 square", best.Box)
	}
}

func TestSelect_TieKeepsFirst(t *testing.T) {
	contours := [][]image.Point{
		rectContour(300, 300, 50, 50),
		rectContour(10, 10, 50, 50),
	}

	best := Select(contours)
	if best == nil {
		t.Fatal("Select returned nil")
	}
	if best.Box.Min != image.Pt(300, 300) {
		t.Errorf("Tie resolved to %v, want the first contour", best.Box)
	}
}

func TestSelect_NoneQualify(t *testing.T) {
	contours := [][]image.Point{
		rectContour(0, 0, 10, 10),
		rectContour(0, 100, 600, 5),
		{{3, 3}},
	}

	if best := Select(contours); best != nil {
		t.Errorf("Expected nil, got candidate with area %v", best.Area)
	}
	if best := Select(nil); best != nil {
		t.Error("Expected nil for no contours")
	}
}

func TestMinEnclosingCircle_Known(t *testing.T) {
	c := minEnclosingCircle([]image.Point{{0, 0}, {4, 0}, {2, 3}})
	if math.Abs(c.X-2) > 1e-9 || math.Abs(c.Y-5.0/6) > 1e-9 || math.Abs(c.Radius-13.0/6) > 1e-9 {
		t.Errorf("Circle = %+v, want center (2, 0.8333) radius 2.1667", c)
	}

	c = minEnclosingCircle([]image.Point{{0, 0}, {10, 0}, {5, 1}})
	if math.Abs(c.X-5) > 1e-9 || math.Abs(c.Y) > 1e-9 || math.Abs(c.Radius-5) > 1e-9 {
		t.Errorf("Circle = %+v, want center (5, 0) radius 5", c)
	}
}

func TestMinEnclosingCircle_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 20; trial++ {
		pts := make([]image.Point, 15)
		for i := range pts {
			pts[i] = image.Pt(rng.Intn(200), rng.Intn(200))
		}

		got := minEnclosingCircle(pts)
		for _, p := range pts {
			if !got.contains(p) {
				t.Fatalf("trial %d: point %v outside circle %+v", trial, p, got)
			}
		}

		want := bruteForceCircle(pts)
		if math.Abs(got.Radius-want.Radius) > 1e-6 {
			t.Errorf("trial %d: radius = %v, brute force = %v", trial, got.Radius, want.Radius)
		}
	}
}

// bruteForceCircle tries every pair and triple and keeps the smallest
// circle that contains all points
func bruteForceCircle(pts []image.Point) Circle {
	best := Circle{Radius: math.Inf(1)}
	consider := func(c Circle) {
		if c.Radius >= best.Radius {
			return
		}
		for _, p := range pts {
			if !c.contains(p) {
				return
			}
		}
		best = c
	}

	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			consider(circleFromPair(pts[i], pts[j]))
			for k := j + 1; k < len(pts); k++ {
				consider(circleFromTriple(pts[i], pts[j], pts[k]))
			}
		}
	}
	return best
}

func TestConvexHull(t *testing.T) {
	pts := []image.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {5, 5}, {5, 0}, {2, 3}}

	hull := convexHull(pts)
	if len(hull) != 4 {
		t.Fatalf("Hull has %d points, want 4: %v", len(hull), hull)
	}
	if a := polygonArea(hull); a != 100 {
		t.Errorf("Hull area = %v, want 100", a)
	}
}
