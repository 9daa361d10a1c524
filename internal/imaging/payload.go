package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	imgio "github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// DefaultJPEGQuality is used by EncodeBase64 when no valid quality is given.
const DefaultJPEGQuality = 90

var (
	// ErrEmptyPayload is returned when a base64 payload holds no data.
	ErrEmptyPayload = errors.New("empty image payload")

	// ErrUnsupportedFormat is returned when an output format cannot be encoded.
	ErrUnsupportedFormat = errors.New("unsupported output format")
)

// encodings lists the base64 variants accepted by DecodeBase64, tried in order.
var encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// DecodeBase64 decodes a base64 encoded image.
//
// The payload may be plain base64 (standard or URL-safe alphabet, padded or
// not) or a data URL such as "data:image/png;base64,iVBOR...". Whitespace and
// line breaks inside the payload are ignored.
//
// EXIF orientation is applied to JPEG and TIFF input, so the returned image
// is upright. The second return value is the format name reported by the
// decoder: "png", "jpeg", "gif", "bmp", "tiff" or "webp".
//
// # Errors
//
//   - ErrEmptyPayload if s holds no data after trimming
//   - A wrapped error if s is not valid base64
//   - A wrapped error if the bytes are not a supported image
func DecodeBase64(s string) (image.Image, string, error) {
	data, err := decodePayload(s)
	if err != nil {
		return nil, "", err
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("unrecognized image data: %w", err)
	}

	img, err := imgio.Decode(bytes.NewReader(data), imgio.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("corrupt %s data: %w", format, err)
	}

	return img, format, nil
}

// decodePayload strips a data URL prefix and whitespace, then tries each
// supported base64 alphabet.
func decodePayload(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return nil, ErrEmptyPayload
	}

	var firstErr error
	for _, enc := range encodings {
		data, err := enc.DecodeString(s)
		if err == nil {
			if len(data) == 0 {
				return nil, ErrEmptyPayload
			}
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, fmt.Errorf("invalid base64 payload: %w", firstErr)
}

// EncodeBase64 encodes img in the named format and returns standard padded
// base64.
//
// format is a format name or file extension ("jpeg", "jpg", "png", "gif",
// "bmp", "tif", "tiff"); an empty string selects JPEG. quality applies to
// JPEG only and falls back to DefaultJPEGQuality when outside 1-100.
func EncodeBase64(img image.Image, format string, quality int) (string, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return "", err
	}
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}

	var buf bytes.Buffer
	if err := imgio.Encode(&buf, img, f, imgio.JPEGQuality(quality)); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ParseFormat maps a format name or extension to an encoder format.
// An empty name selects JPEG.
func ParseFormat(name string) (imgio.Format, error) {
	if name == "" {
		return imgio.JPEG, nil
	}
	f, err := imgio.FormatFromExtension(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	return f, nil
}

// MIMEType returns the media type for an encoder format name, for building
// data URLs.
func MIMEType(format string) string {
	f, err := ParseFormat(format)
	if err != nil {
		return "application/octet-stream"
	}
	return "image/" + strings.ToLower(f.String())
}
