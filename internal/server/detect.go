package server

import (
	"fmt"
	"image"
	"log"
	"time"

	"github.com/ironsheep/sun-detect-mcp/internal/detection"
	"github.com/ironsheep/sun-detect-mcp/internal/imaging"
)

// cropMargin is the border kept around the sun in close-up crops.
const cropMargin = 16

// DetectResponse is the body returned by POST /detect_sun.
//
// Center is [x, y] in the submitted image's pixels, or null when nothing was
// detected.
type DetectResponse struct {
	SunDetected          bool   `json:"sun_detected"`
	Center               []int  `json:"center"`
	AnnotatedImageBase64 string `json:"annotated_image_base64"`
}

// BoxResult is a bounding box with an exclusive bottom-right corner.
type BoxResult struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// SunDetectResult is returned by the sun_detect tool. It carries the HTTP
// fields plus the detection geometry.
type SunDetectResult struct {
	SunDetected          bool                 `json:"sun_detected"`
	Center               []int                `json:"center"`
	Box                  *BoxResult           `json:"box,omitempty"`
	Radius               float64              `json:"radius,omitempty"`
	Circularity          float64              `json:"circularity,omitempty"`
	CenterColor          *imaging.ColorResult `json:"center_color,omitempty"`
	Crop                 *imaging.CropResult  `json:"crop,omitempty"`
	Width                int                  `json:"width"`
	Height               int                  `json:"height"`
	MimeType             string               `json:"mime_type"`
	AnnotatedImageBase64 string               `json:"annotated_image_base64"`
}

// detectAndEncode runs the detector on img and encodes the annotated copy.
//
// Center and box are reported relative to the image's top-left corner. The
// center color is sampled from img itself, before the marker is drawn.
func (s *Server) detectAndEncode(img image.Image, format string, withCrop bool) (*SunDetectResult, error) {
	start := time.Now()
	res := detection.Detect(img, s.opts)

	encoded, err := imaging.EncodeBase64(res.Annotated, format, s.cfg.JPEGQuality)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	out := &SunDetectResult{
		SunDetected:          res.Detected,
		Width:                bounds.Dx(),
		Height:               bounds.Dy(),
		MimeType:             imaging.MIMEType(format),
		AnnotatedImageBase64: encoded,
	}

	if res.Detected {
		out.Center = []int{res.Center.X, res.Center.Y}
		out.Box = &BoxResult{X1: res.Box.Min.X, Y1: res.Box.Min.Y, X2: res.Box.Max.X, Y2: res.Box.Max.Y}
		out.Radius = res.Candidate.Enclosing.Radius
		out.Circularity = res.Candidate.Circularity

		if c, err := imaging.SampleColor(img, bounds.Min.X+res.Center.X, bounds.Min.Y+res.Center.Y); err == nil {
			out.CenterColor = c
		}
		if withCrop {
			crop, err := imaging.CropBox(res.Annotated, *res.Box, cropMargin, format, s.cfg.JPEGQuality)
			if err != nil {
				return nil, fmt.Errorf("failed to crop detection: %w", err)
			}
			out.Crop = crop
		}
	}

	if s.cfg.Debug() {
		log.Printf("detect: %dx%d detected=%v center=%v elapsed=%v",
			out.Width, out.Height, out.SunDetected, out.Center, time.Since(start))
	}
	return out, nil
}
