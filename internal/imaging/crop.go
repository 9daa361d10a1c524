package imaging

import (
	"fmt"
	"image"

	imgio "github.com/disintegration/imaging"
)

// CropResult contains an encoded close-up of part of an image.
type CropResult struct {
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// CropBox cuts region out of img, grown by margin pixels on every side and
// clipped to the image, and returns it encoded in format.
//
// X and Y in the result are the top-left corner of the clipped region in the
// coordinates of img, so callers can map points in the crop back.
func CropBox(img image.Image, region image.Rectangle, margin int, format string, quality int) (*CropResult, error) {
	if margin < 0 {
		margin = 0
	}
	clipped := region.Inset(-margin).Intersect(img.Bounds())
	if clipped.Empty() {
		return nil, fmt.Errorf("crop region %v outside image bounds %v", region, img.Bounds())
	}

	cropped := imgio.Crop(img, clipped)

	encoded, err := EncodeBase64(cropped, format, quality)
	if err != nil {
		return nil, fmt.Errorf("failed to encode crop: %w", err)
	}

	return &CropResult{
		X:           clipped.Min.X,
		Y:           clipped.Min.Y,
		Width:       clipped.Dx(),
		Height:      clipped.Dy(),
		ImageBase64: encoded,
		MimeType:    MIMEType(format),
	}, nil
}
