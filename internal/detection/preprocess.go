package detection

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
)

// Working resolution. Every stage between Preprocess and the rescale in
// Detect operates on a grid of this size.
const (
	WorkingWidth  = 640
	WorkingHeight = 480
)

const (
	claheClipLimit = 3.0
	claheTiles     = 8

	// bild builds a kernel of length ceil(2r+1), so radius 5 gives 11x11.
	blurRadius = 5.0
)

// Preprocess normalizes an arbitrary-resolution image into the smoothed
// grayscale plane used for thresholding.
//
// The steps are, in order:
//
//  1. Resize to exactly 640x480. Each axis is scaled on its own, so the
//     aspect ratio is not kept; Detect undoes this per axis.
//  2. Luminance conversion (ITU-R BT.601 weights).
//  3. Contrast limited adaptive histogram equalization (clip limit 3.0 on an
//     8x8 tile grid) to flatten exposure differences across the sky.
//  4. Gaussian smoothing with an 11x11 kernel to suppress isolated hot pixels.
//
// The input image is not modified.
func Preprocess(img image.Image) *image.Gray {
	resized := imaging.Grayscale(imaging.Resize(img, WorkingWidth, WorkingHeight, imaging.Linear))
	gray := firstChannel(resized.Pix, resized.Stride, 4, resized.Bounds())
	enhanced := equalizeAdaptive(gray, claheClipLimit, claheTiles, claheTiles)
	return smooth(enhanced)
}

// smooth applies the 11x11 Gaussian blur. bild works in RGBA, so the red
// channel of its output is taken as the new gray value.
func smooth(src *image.Gray) *image.Gray {
	blurred := blur.Gaussian(src, blurRadius)
	return firstChannel(blurred.Pix, blurred.Stride, 4, blurred.Bounds())
}

// firstChannel copies the first byte of every pixel in a packed
// interleaved buffer into a new Gray image anchored at (0, 0).
func firstChannel(pix []uint8, stride, bytesPerPixel int, r image.Rectangle) *image.Gray {
	w, h := r.Dx(), r.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := pix[y*stride:]
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < w; x++ {
			row[x] = src[x*bytesPerPixel]
		}
	}
	return dst
}

// equalizeAdaptive performs CLAHE on a gray plane.
//
// The plane is split into tilesX x tilesY tiles. Each tile gets its own
// equalization table built from a clipped histogram, and every output pixel
// is a bilinear blend of the tables of the four nearest tile centers, which
// avoids visible seams at tile borders.
func equalizeAdaptive(src *image.Gray, clipLimit float64, tilesX, tilesY int) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return dst
	}

	tileW := (w + tilesX - 1) / tilesX
	tileH := (h + tilesY - 1) / tilesY

	luts := make([][256]uint8, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			x0, y0 := tx*tileW, ty*tileH
			x1, y1 := min(x0+tileW, w), min(y0+tileH, h)

			var hist [256]int
			area := 0
			for y := y0; y < y1; y++ {
				row := src.Pix[y*src.Stride:]
				for x := x0; x < x1; x++ {
					hist[row[x]]++
					area++
				}
			}
			luts[ty*tilesX+tx] = clippedEqualization(hist, area, clipLimit)
		}
	}

	for y := 0; y < h; y++ {
		ty1, ty2, ya := tileBlend(y, tileH, tilesY)
		row := src.Pix[y*src.Stride:]
		out := dst.Pix[y*dst.Stride:]
		for x := 0; x < w; x++ {
			tx1, tx2, xa := tileBlend(x, tileW, tilesX)
			v := row[x]

			top := float64(luts[ty1*tilesX+tx1][v])*(1-xa) + float64(luts[ty1*tilesX+tx2][v])*xa
			bottom := float64(luts[ty2*tilesX+tx1][v])*(1-xa) + float64(luts[ty2*tilesX+tx2][v])*xa
			out[x] = clampByte(top*(1-ya) + bottom*ya)
		}
	}
	return dst
}

// tileBlend returns the two tiles whose centers bracket coordinate pos along
// one axis and the weight of the second one.
func tileBlend(pos, tileSize, tiles int) (int, int, float64) {
	f := float64(pos)/float64(tileSize) - 0.5
	t1 := int(math.Floor(f))
	weight := f - float64(t1)
	t2 := t1 + 1
	if t1 < 0 {
		t1 = 0
	}
	if t2 > tiles-1 {
		t2 = tiles - 1
	}
	return t1, t2, weight
}

// clippedEqualization builds the lookup table of one CLAHE tile.
//
// Bins above clipLimit*area/256 are cut down and the excess is spread evenly
// over all bins; what does not divide evenly is handed out one count at a
// time at a fixed stride. The cumulative histogram always ends at area, so
// the table always maps 255 to 255.
func clippedEqualization(hist [256]int, area int, clipLimit float64) [256]uint8 {
	var lut [256]uint8
	if area == 0 {
		for i := range lut {
			lut[i] = uint8(i)
		}
		return lut
	}

	limit := int(clipLimit * float64(area) / 256)
	if limit < 1 {
		limit = 1
	}

	clipped := 0
	for i := range hist {
		if hist[i] > limit {
			clipped += hist[i] - limit
			hist[i] = limit
		}
	}

	batch := clipped / 256
	residual := clipped - batch*256
	for i := range hist {
		hist[i] += batch
	}
	if residual > 0 {
		step := max(256/residual, 1)
		for i := 0; i < 256 && residual > 0; i += step {
			hist[i]++
			residual--
		}
	}

	scale := 255.0 / float64(area)
	sum := 0
	for i := range hist {
		sum += hist[i]
		lut[i] = clampByte(float64(sum) * scale)
	}
	return lut
}

func clampByte(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
