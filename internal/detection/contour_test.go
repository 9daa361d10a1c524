package detection

import (
	"image"
	"testing"
)

// fillMaskRect marks every pixel of r as foreground
func fillMaskRect(m *Mask, r image.Rectangle, on bool) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.set(x, y, on)
		}
	}
}

func TestFindContours_Square(t *testing.T) {
	m := NewMask(50, 50)
	fillMaskRect(m, image.Rect(10, 10, 30, 30), true)

	contours := FindContours(m)
	if len(contours) != 1 {
		t.Fatalf("Expected 1 contour, got %d", len(contours))
	}

	want := []image.Point{{10, 10}, {10, 29}, {29, 29}, {29, 10}}
	got := contours[0]
	if len(got) != len(want) {
		t.Fatalf("Contour = %v, want corners %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Point %d = %v, want %v", i, got[i], want[i])
		}
	}

	c := Measure(got)
	if c.Area != 361 {
		t.Errorf("Area = %v, want 361", c.Area)
	}
	if c.Perimeter != 76 {
		t.Errorf("Perimeter = %v, want 76", c.Perimeter)
	}
	if c.Box != image.Rect(10, 10, 30, 30) {
		t.Errorf("Box = %v, want (10,10)-(30,30)", c.Box)
	}
}

func TestFindContours_Empty(t *testing.T) {
	m := NewMask(20, 20)

	if contours := FindContours(m); len(contours) != 0 {
		t.Errorf("Expected no contours in an empty mask, got %d", len(contours))
	}
}

func TestFindContours_SinglePixel(t *testing.T) {
	m := NewMask(20, 20)
	m.set(7, 3, true)

	contours := FindContours(m)
	if len(contours) != 1 {
		t.Fatalf("Expected 1 contour, got %d", len(contours))
	}
	if len(contours[0]) != 1 || contours[0][0] != image.Pt(7, 3) {
		t.Errorf("Contour = %v, want [(7,3)]", contours[0])
	}
	if c := Measure(contours[0]); c.Perimeter != 0 {
		t.Errorf("Perimeter = %v, want 0", c.Perimeter)
	}
}

func TestFindContours_Line(t *testing.T) {
	m := NewMask(20, 20)
	fillMaskRect(m, image.Rect(2, 5, 7, 6), true)

	contours := FindContours(m)
	if len(contours) != 1 {
		t.Fatalf("Expected 1 contour, got %d", len(contours))
	}

	got := contours[0]
	if len(got) != 2 || got[0] != image.Pt(2, 5) || got[1] != image.Pt(6, 5) {
		t.Errorf("Contour = %v, want [(2,5) (6,5)]", got)
	}

	c := Measure(got)
	if c.Area != 0 || c.Perimeter != 8 {
		t.Errorf("Area = %v, Perimeter = %v, want 0 and 8", c.Area, c.Perimeter)
	}
}

func TestFindContours_HoleNotReported(t *testing.T) {
	m := NewMask(60, 60)
	fillMaskRect(m, image.Rect(10, 10, 50, 50), true)
	fillMaskRect(m, image.Rect(25, 25, 35, 35), false)

	contours := FindContours(m)
	if len(contours) != 1 {
		t.Fatalf("Expected only the outer contour, got %d", len(contours))
	}
	if c := Measure(contours[0]); c.Box != image.Rect(10, 10, 50, 50) {
		t.Errorf("Box = %v, want the outer square", c.Box)
	}
}

func TestFindContours_SeparateRegions(t *testing.T) {
	m := NewMask(100, 100)
	fillMaskRect(m, image.Rect(5, 5, 20, 20), true)
	fillMaskRect(m, image.Rect(50, 10, 90, 40), true)
	fillMaskRect(m, image.Rect(30, 70, 45, 95), true)

	contours := FindContours(m)
	if len(contours) != 3 {
		t.Fatalf("Expected 3 contours, got %d", len(contours))
	}

	boxes := map[image.Rectangle]bool{}
	for _, c := range contours {
		boxes[Measure(c).Box] = true
	}
	for _, want := range []image.Rectangle{
		image.Rect(5, 5, 20, 20),
		image.Rect(50, 10, 90, 40),
		image.Rect(30, 70, 45, 95),
	} {
		if !boxes[want] {
			t.Errorf("Missing contour with box %v", want)
		}
	}
}

func TestFindContours_DiagonalNeighboursJoin(t *testing.T) {
	m := NewMask(10, 10)
	m.set(2, 2, true)
	m.set(3, 3, true)
	m.set(4, 4, true)

	contours := FindContours(m)
	if len(contours) != 1 {
		t.Fatalf("8-connected diagonal should form 1 contour, got %d", len(contours))
	}
	if got := contours[0]; len(got) != 2 || got[0] != image.Pt(2, 2) || got[1] != image.Pt(4, 4) {
		t.Errorf("Contour = %v, want [(2,2) (4,4)]", got)
	}
}

func TestFindContours_TouchingBorder(t *testing.T) {
	m := NewMask(30, 30)
	fillMaskRect(m, image.Rect(0, 0, 30, 30), true)

	contours := FindContours(m)
	if len(contours) != 1 {
		t.Fatalf("Expected 1 contour, got %d", len(contours))
	}
	if c := Measure(contours[0]); c.Area != 29*29 {
		t.Errorf("Area = %v, want %d", c.Area, 29*29)
	}
}

func TestFindContours_Disc(t *testing.T) {
	m := NewMask(200, 200)
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			dx, dy := x-100, y-100
			if dx*dx+dy*dy <= 60*60 {
				m.set(x, y, true)
			}
		}
	}

	contours := FindContours(m)
	if len(contours) != 1 {
		t.Fatalf("Expected 1 contour, got %d", len(contours))
	}

	c := Measure(contours[0])
	if c.Enclosing.Radius < 59 || c.Enclosing.Radius > 61 {
		t.Errorf("Enclosing radius = %.2f, want about 60", c.Enclosing.Radius)
	}
	if c.Circularity < 0.85 || c.Circularity > 1.05 {
		t.Errorf("Circularity = %.3f, want near 1", c.Circularity)
	}
	if !c.Qualifies() {
		t.Error("Disc should qualify")
	}
}

func TestCompressChain(t *testing.T) {
	pts := []image.Point{{0, 0}, {0, 1}, {0, 2}, {1, 2}, {2, 2}, {2, 1}, {2, 0}, {1, 0}}
	got := compressChain(pts)

	want := []image.Point{{0, 0}, {0, 2}, {2, 2}, {2, 0}}
	if len(got) != len(want) {
		t.Fatalf("compressChain = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Point %d = %v, want %v", i, got[i], want[i])
		}
	}

	if short := compressChain(pts[:2]); len(short) != 2 {
		t.Errorf("Short chains should be returned unchanged, got %v", short)
	}
}
