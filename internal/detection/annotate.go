package detection

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	boxThickness = 3
	markerRadius = 5
	labelOffset  = 10
)

// Options controls how a detection is drawn. It carries no detection state.
type Options struct {
	// BoxColor is used for the bounding rectangle and the label text.
	BoxColor color.Color

	// MarkerColor fills the disc drawn at the detected center.
	MarkerColor color.Color

	// Label is written above the bounding rectangle. Empty disables it.
	Label string
}

// DefaultOptions returns a yellow box and label with a red center marker.
func DefaultOptions() Options {
	return Options{
		BoxColor:    color.NRGBA{R: 255, G: 255, B: 0, A: 255},
		MarkerColor: color.NRGBA{R: 255, G: 0, B: 0, A: 255},
		Label:       "Sun Detected",
	}
}

// rescaler maps working-resolution coordinates back onto the original image.
// The axes scale independently because Preprocess does not keep the aspect
// ratio.
type rescaler struct {
	sx, sy float64
}

func newRescaler(original image.Rectangle) rescaler {
	return rescaler{
		sx: float64(original.Dx()) / WorkingWidth,
		sy: float64(original.Dy()) / WorkingHeight,
	}
}

func (r rescaler) point(x, y float64) image.Point {
	return image.Pt(int(math.Round(x*r.sx)), int(math.Round(y*r.sy)))
}

func (r rescaler) rect(b image.Rectangle) image.Rectangle {
	return image.Rectangle{
		Min: r.point(float64(b.Min.X), float64(b.Min.Y)),
		Max: r.point(float64(b.Max.X), float64(b.Max.Y)),
	}
}

// annotate draws the box outline, the label above it and the center marker.
// Anything falling outside dst is clipped.
func annotate(dst draw.Image, box image.Rectangle, center image.Point, opts Options) {
	if opts.BoxColor == nil || opts.MarkerColor == nil {
		def := DefaultOptions()
		if opts.BoxColor == nil {
			opts.BoxColor = def.BoxColor
		}
		if opts.MarkerColor == nil {
			opts.MarkerColor = def.MarkerColor
		}
	}

	strokeRect(dst, box, opts.BoxColor, boxThickness)
	if opts.Label != "" {
		drawLabel(dst, box.Min.X, box.Min.Y-labelOffset, opts.Label, opts.BoxColor)
	}
	fillDisc(dst, center, markerRadius, opts.MarkerColor)
}

// strokeRect outlines r with bands of the given thickness centered on its
// edges.
func strokeRect(dst draw.Image, r image.Rectangle, c color.Color, thickness int) {
	src := image.NewUniform(c)
	lo := thickness / 2
	hi := thickness - lo
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X, r.Max.Y

	bands := []image.Rectangle{
		image.Rect(x0-lo, y0-lo, x1+hi, y0+hi),
		image.Rect(x0-lo, y1-lo, x1+hi, y1+hi),
		image.Rect(x0-lo, y0-lo, x0+hi, y1+hi),
		image.Rect(x1-lo, y0-lo, x1+hi, y1+hi),
	}
	for _, b := range bands {
		draw.Draw(dst, b, src, image.Point{}, draw.Src)
	}
}

// fillDisc paints every pixel within radius of center.
func fillDisc(dst draw.Image, center image.Point, radius int, c color.Color) {
	bounds := dst.Bounds()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			p := center.Add(image.Pt(dx, dy))
			if p.In(bounds) {
				dst.Set(p.X, p.Y, c)
			}
		}
	}
}

// drawLabel writes text with its baseline at (x, y) using basicfont.Face7x13.
func drawLabel(dst draw.Image, x, y int, text string, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
