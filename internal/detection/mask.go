package detection

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
)

const (
	// BrightnessCutoff is the smoothed luminance at or above which a pixel
	// counts as candidate sun.
	BrightnessCutoff = 230

	// morphRadius gives a 7x7 square structuring element (2*3+1) for closing
	// and opening.
	morphRadius = 3
)

// Mask is a binary image anchored at the origin. A non-zero byte marks a
// foreground pixel.
type Mask struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewMask returns an all-background mask.
func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// maskFromGray views a black and white image as a mask without copying.
func maskFromGray(g *image.Gray) *Mask {
	w, h := g.Rect.Dx(), g.Rect.Dy()
	if g.Stride != w {
		g = copyGray(g)
	}
	return &Mask{Width: w, Height: h, Pix: g.Pix[:w*h]}
}

// maskFromRGBA keeps the red channel of a black and white RGBA image.
func maskFromRGBA(img *image.RGBA) *Mask {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	m := NewMask(w, h)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			m.Pix[y*w+x] = row[x*4]
		}
	}
	return m
}

func copyGray(g *image.Gray) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, g.Rect.Dx(), g.Rect.Dy()))
	for y := 0; y < out.Rect.Dy(); y++ {
		copy(out.Pix[y*out.Stride:(y+1)*out.Stride], g.Pix[y*g.Stride:])
	}
	return out
}

// Gray returns the mask as a new image with foreground white.
func (m *Mask) Gray() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i, v := range m.Pix {
		if v != 0 {
			g.Pix[i] = 0xFF
		}
	}
	return g
}

// At reports whether (x, y) is foreground. Points outside the mask are
// background.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Pix[y*m.Width+x] != 0
}

func (m *Mask) set(x, y int, on bool) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	if on {
		m.Pix[y*m.Width+x] = 1
	} else {
		m.Pix[y*m.Width+x] = 0
	}
}

func (m *Mask) count() int {
	n := 0
	for _, v := range m.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// Binarize marks every pixel whose value is at least cutoff.
//
// bild ranks pixels in floating point, and some gray levels (231, 226, ...)
// truncate one step down. A cutoff is exact only when its own level ranks
// exactly, which holds for BrightnessCutoff.
func Binarize(gray *image.Gray, cutoff uint8) *Mask {
	return maskFromGray(segment.Threshold(gray, cutoff))
}

// Clean applies a morphological closing followed by an opening, both with a
// 7x7 square element. Closing fills small gaps inside bright blobs; opening
// then erases specks smaller than the element and smooths the outline.
//
// bild pads with edge extension, which for min and max filters is the same
// as leaving out-of-frame pixels out of the window.
func Clean(m *Mask) *Mask {
	src := m.Gray()
	closed := effect.Erode(effect.Dilate(src, morphRadius), morphRadius)
	opened := effect.Dilate(effect.Erode(closed, morphRadius), morphRadius)
	return maskFromRGBA(opened)
}
