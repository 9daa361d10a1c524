package detection

import (
	"image"

	"github.com/disintegration/imaging"
)

// Result is the outcome of one Detect call.
//
// Center and Box are nil exactly when Detected is false. Coordinates are in
// the original image's pixel space, relative to its top-left corner.
type Result struct {
	// Detected reports whether a sun-like region was found.
	Detected bool

	// Center is the rescaled center of the selected region's bounding box.
	Center *image.Point

	// Box is the rescaled bounding box of the selected region.
	Box *image.Rectangle

	// Candidate holds the selected region's working-resolution metrics.
	Candidate *Candidate

	// Annotated is a copy of the input at its original resolution with the
	// detection drawn on it. It is an unmodified copy when nothing was found.
	Annotated *image.NRGBA
}

// Detect locates the largest bright, roughly circular region in img.
//
// The pipeline is Preprocess, Binarize at BrightnessCutoff, Clean,
// FindContours and Select, followed by rescaling the winner back to the
// original resolution and drawing it on a copy of img.
//
// Detect keeps no state between calls and never modifies img, so it may be
// called concurrently. It always returns a result; an image with empty
// bounds is reported as not detected.
func Detect(img image.Image, opts Options) *Result {
	res := &Result{Annotated: imaging.Clone(img)}

	bounds := img.Bounds()
	if bounds.Empty() {
		return res
	}

	mask := Clean(Binarize(Preprocess(img), BrightnessCutoff))
	best := Select(FindContours(mask))
	if best == nil {
		return res
	}

	scale := newRescaler(bounds)
	cx, cy := best.Center()
	center := scale.point(cx, cy)
	box := scale.rect(best.Box)

	annotate(res.Annotated, box, center, opts)

	res.Detected = true
	res.Center = &center
	res.Box = &box
	res.Candidate = best
	return res
}
