package imaging

import (
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/dip-studio/internal/filter"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex string   `json:"hex"` // Hex format "#RRGGBB"
	RGB RGBColor `json:"rgb"` // RGB components
	HSL HSLColor `json:"hsl"` // HSL representation
}

// SampleColor returns the color of the pixel at (x, y) in a buffer. Gray
// buffers report equal R, G and B components.
func SampleColor(b *filter.Buffer, x, y int) (*ColorResult, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	if b.Channels == 1 {
		v := b.At(x, y, 0)
		return newColorResult(v, v, v), nil
	}
	return newColorResult(b.At(x, y, 0), b.At(x, y, 1), b.At(x, y, 2)), nil
}

func newColorResult(r, g, b uint8) *ColorResult {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, l := c.Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return &ColorResult{
		Hex: strings.ToUpper(c.Hex()),
		RGB: RGBColor{R: r, G: g, B: b},
		HSL: HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
	}
}

// ChannelStats summarizes one channel of a buffer.
type ChannelStats struct {
	Min    uint8   `json:"min"`
	Max    uint8   `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// StatsResult summarizes a buffer so clients can compare an original image
// with a processed one without decoding pixels.
type StatsResult struct {
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Channels  int            `json:"channels"`
	PerChan   []ChannelStats `json:"per_channel"`
	MeanColor ColorResult    `json:"mean_color"`
}

// BufferStats computes per-channel minimum, maximum, mean and sample standard
// deviation, plus the mean color.
func BufferStats(b *filter.Buffer) (*StatsResult, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	n := b.Width * b.Height
	per := make([]ChannelStats, b.Channels)
	means := make([]uint8, b.Channels)
	values := make([]float64, n)
	for c := 0; c < b.Channels; c++ {
		cs := ChannelStats{Min: 255}
		for i := 0; i < n; i++ {
			v := b.Pix[i*b.Channels+c]
			if v < cs.Min {
				cs.Min = v
			}
			if v > cs.Max {
				cs.Max = v
			}
			values[i] = float64(v)
		}
		if n > 1 {
			cs.Mean, cs.StdDev = stat.MeanStdDev(values, nil)
		} else {
			cs.Mean = values[0]
		}
		per[c] = cs
		means[c] = uint8(math.Round(cs.Mean))
	}

	var mean *ColorResult
	if b.Channels == 1 {
		mean = newColorResult(means[0], means[0], means[0])
	} else {
		mean = newColorResult(means[0], means[1], means[2])
	}

	return &StatsResult{
		Width:     b.Width,
		Height:    b.Height,
		Channels:  b.Channels,
		PerChan:   per,
		MeanColor: *mean,
	}, nil
}
