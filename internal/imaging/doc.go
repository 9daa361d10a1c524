// Package imaging handles getting images in and out of the server.
//
// It covers the I/O side of the sun detector: loading files through a shared
// cache, decoding and encoding the base64 payloads carried by the HTTP and
// MCP transports, and parsing the colors used to style annotations. Pixel
// processing itself lives in the detection package.
//
// Decoding and encoding go through github.com/disintegration/imaging, which
// applies EXIF orientation on the way in. Registered formats are PNG, JPEG,
// GIF, BMP, TIFF and WebP for decoding; everything but WebP can be encoded.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// # Payloads
//
// DecodeBase64 accepts what clients tend to send: plain base64 in either
// alphabet, with or without padding, optionally wrapped as a data URL.
// EncodeBase64 always emits padded standard base64 and defaults to JPEG.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Images it returns are shared between
// callers and must not be modified. All other functions are stateless.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Empty payloads (ErrEmptyPayload)
//   - Data that is not base64 or not a supported image
//   - Output formats with no encoder (ErrUnsupportedFormat)
//   - Unparseable colors (ErrInvalidColor)
//   - File I/O errors during image loading
package imaging
