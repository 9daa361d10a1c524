// Package detection finds the sun in a photograph.
//
// The package implements a small, fixed computer vision pipeline that picks
// the largest bright and roughly circular region in an image, reports its
// center and draws it on a copy of the input. It is written against the
// standard image.Image interface and needs no native vision library.
//
// # Pipeline
//
// Detect runs these stages in order. Each stage is exported so it can be
// inspected on its own:
//
//  1. Preprocess: resize to the 640x480 working resolution, convert to
//     luminance, equalize with CLAHE (clip limit 3.0, 8x8 tiles) and blur
//     with an 11x11 Gaussian kernel
//  2. Binarize: keep pixels at or above BrightnessCutoff (230)
//  3. Clean: morphological closing then opening with a 7x7 square
//  4. FindContours: outer boundary of every 8-connected region
//  5. Select: measure each contour and keep the qualifying one with the
//     largest area
//
// The winner's bounding box and center are then mapped back to the original
// image, scaling X by width/640 and Y by height/480 independently.
//
// # Candidate Gates
//
// A contour is only considered when all of these hold:
//   - Minimum enclosing circle radius >= 20 working pixels
//   - Non-zero perimeter
//   - Circularity (4*pi*area/perimeter^2) > 0.3
//
// Circularity is 1.0 for a perfect circle. Pixel boundaries can push it
// slightly above or below that for round blobs; long or ragged shapes score
// much lower.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Bounding boxes have an inclusive Min and exclusive Max
//
// Working-resolution values (Candidate) are in the 640x480 grid. Result
// Center and Box are in the original image, relative to its top-left corner.
//
// # Concurrency
//
// Detect holds no state between calls and never writes to its input.
// Separate calls can run in parallel without coordination.
//
// # Limitations
//
// The cutoff and kernel sizes are fixed. They assume contrast normalization
// has left the sun as the dominant bright region; a bright cloud edge or a
// reflection that is larger and round enough will win over a smaller sun.
// Only one region is ever reported.
package detection
