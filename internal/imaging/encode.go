package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/dip-studio/internal/filter"
)

// Format is an output encoding.
type Format string

// Supported output formats.
const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// DefaultJPEGQuality is the JPEG quality used when none is configured.
const DefaultJPEGQuality = 95

// ParseFormat maps a user-supplied format name to a Format. The empty string
// selects PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// MimeType returns the MIME type of the format.
func (f Format) MimeType() string {
	if f == FormatJPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// Extension returns the file extension of the format including the dot.
func (f Format) Extension() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return ".png"
}

func (f Format) codec() imaging.Format {
	if f == FormatJPEG {
		return imaging.JPEG
	}
	return imaging.PNG
}

// EncodedImage contains a processed buffer encoded as base64.
type EncodedImage struct {
	// Width of the output image in pixels.
	Width int `json:"width"`

	// Height of the output image in pixels.
	Height int `json:"height"`

	// Channels is 1 for gray or binary results and 3 for color results.
	Channels int `json:"channels"`

	// ImageBase64 is the encoded image.
	ImageBase64 string `json:"image_base64"`

	// MimeType is "image/png" or "image/jpeg".
	MimeType string `json:"mime_type"`
}

// EncodeBuffer encodes a buffer in the given format and returns it as base64.
//
// Parameters:
//   - b: The buffer to encode.
//   - format: FormatPNG or FormatJPEG.
//   - quality: JPEG quality 1-100, ignored for PNG. Values outside the range
//     fall back to DefaultJPEGQuality.
//
// Returns:
//   - *EncodedImage: The encoded image with its dimensions.
//   - error: Non-nil if the buffer is invalid or encoding fails.
func EncodeBuffer(b *filter.Buffer, format Format, quality int) (*EncodedImage, error) {
	img, err := FromBuffer(b)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format.codec(), imaging.JPEGQuality(clampQuality(quality))); err != nil {
		return nil, fmt.Errorf("failed to encode %s image: %w", format, err)
	}

	return &EncodedImage{
		Width:       b.Width,
		Height:      b.Height,
		Channels:    b.Channels,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    format.MimeType(),
	}, nil
}

// SaveBuffer encodes a buffer in format and writes it to path, replacing any
// existing file. quality applies to JPEG output.
func SaveBuffer(b *filter.Buffer, path string, format Format, quality int) error {
	img, err := FromBuffer(b)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := imaging.Encode(f, img, format.codec(), imaging.JPEGQuality(clampQuality(quality))); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s image: %w", format, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

func clampQuality(q int) int {
	if q < 1 || q > 100 {
		return DefaultJPEGQuality
	}
	return q
}
