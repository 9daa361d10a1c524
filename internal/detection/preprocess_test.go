package detection

import (
	"image"
	"testing"
)

func TestPreprocess_WorkingSize(t *testing.T) {
	sizes := []image.Point{{1920, 1080}, {320, 240}, {640, 480}, {50, 900}}

	for _, s := range sizes {
		gray := Preprocess(createTestImage(s.X, s.Y, skyDark))
		if got := gray.Bounds(); got != image.Rect(0, 0, WorkingWidth, WorkingHeight) {
			t.Errorf("%v: bounds = %v, want 640x480", s, got)
		}
	}
}

func TestPreprocess_UniformStaysUniform(t *testing.T) {
	gray := Preprocess(createTestImage(800, 600, skyDark))

	first := gray.Pix[0]
	for i, v := range gray.Pix {
		if v != first {
			t.Fatalf("Pixel %d = %d, want %d everywhere", i, v, first)
		}
	}
	if first >= BrightnessCutoff {
		t.Errorf("Dark sky became %d after preprocessing, want below the cutoff", first)
	}
}

func TestPreprocess_SunStaysBright(t *testing.T) {
	gray := Preprocess(createSunImage(1280, 960, 640, 480, 150))

	if v := gray.GrayAt(320, 240).Y; v < BrightnessCutoff {
		t.Errorf("Sun center = %d, want at least %d", v, BrightnessCutoff)
	}
	if v := gray.GrayAt(10, 10).Y; v >= BrightnessCutoff {
		t.Errorf("Sky corner = %d, want below %d", v, BrightnessCutoff)
	}
}

func TestPreprocess_OffsetBounds(t *testing.T) {
	img := createSunImage(800, 600, 400, 300, 100)
	sub := img.SubImage(image.Rect(100, 100, 700, 500))

	gray := Preprocess(sub)
	if got := gray.Bounds(); got != image.Rect(0, 0, WorkingWidth, WorkingHeight) {
		t.Errorf("bounds = %v, want anchored 640x480", got)
	}
	if v := gray.GrayAt(320, 240).Y; v < BrightnessCutoff {
		t.Errorf("Sun center = %d, want at least %d", v, BrightnessCutoff)
	}
}

func TestClippedEqualization(t *testing.T) {
	var hist [256]int
	hist[100] = 4800

	lut := clippedEqualization(hist, 4800, claheClipLimit)

	if lut[255] != 255 {
		t.Errorf("lut[255] = %d, want 255", lut[255])
	}
	for i := 1; i < 256; i++ {
		if lut[i] < lut[i-1] {
			t.Fatalf("lut not monotonic at %d: %d < %d", i, lut[i], lut[i-1])
		}
	}
	// Unclipped equalization would push a single-valued tile to 255.
	if lut[100] > 200 {
		t.Errorf("lut[100] = %d, clip limit should keep it low", lut[100])
	}
}

func TestClippedEqualization_Empty(t *testing.T) {
	var hist [256]int

	lut := clippedEqualization(hist, 0, claheClipLimit)
	for i, v := range lut {
		if int(v) != i {
			t.Fatalf("lut[%d] = %d, want identity", i, v)
		}
	}
}

func TestTileBlend(t *testing.T) {
	tests := []struct {
		pos        int
		wantT1     int
		wantT2     int
		wantWeight float64
	}{
		{0, 0, 0, 0.5},
		{40, 0, 1, 0},
		{120, 1, 2, 0},
		{80, 0, 1, 0.5},
		{639, 7, 7, 0.4875},
	}

	for _, tt := range tests {
		t1, t2, w := tileBlend(tt.pos, 80, 8)
		if t1 != tt.wantT1 || t2 != tt.wantT2 {
			t.Errorf("tileBlend(%d) tiles = (%d, %d), want (%d, %d)", tt.pos, t1, t2, tt.wantT1, tt.wantT2)
		}
		if d := w - tt.wantWeight; d > 1e-9 || d < -1e-9 {
			t.Errorf("tileBlend(%d) weight = %v, want %v", tt.pos, w, tt.wantWeight)
		}
	}
}

func TestEqualizeAdaptive_Size(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 37, 23))
	dst := equalizeAdaptive(src, claheClipLimit, claheTiles, claheTiles)

	if got := dst.Bounds(); got != src.Bounds() {
		t.Errorf("bounds = %v, want %v", got, src.Bounds())
	}
}
