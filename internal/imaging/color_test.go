package imaging

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/ironsheep/dip-studio/internal/filter"
)

// createInMemoryImage creates a solid color image without writing to disk.
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with red, green, blue and white quadrants.
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.RGBA
			switch {
			case x < width/2 && y < height/2:
				c = color.RGBA{255, 0, 0, 255}
			case x >= width/2 && y < height/2:
				c = color.RGBA{0, 255, 0, 255}
			case x < width/2:
				c = color.RGBA{0, 0, 255, 255}
			default:
				c = color.RGBA{255, 255, 255, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func mustBuffer(t *testing.T, img image.Image) *filter.Buffer {
	t.Helper()
	b, err := ToBuffer(img, false)
	if err != nil {
		t.Fatalf("ToBuffer failed: %v", err)
	}
	return b
}

func TestSampleColor_KnownColors(t *testing.T) {
	buf := mustBuffer(t, createPatternImage(100, 100))

	tests := []struct {
		name    string
		x, y    int
		wantHex string
		wantHSL HSLColor
	}{
		{"red", 10, 10, "#FF0000", HSLColor{0, 100, 50}},
		{"green", 90, 10, "#00FF00", HSLColor{120, 100, 50}},
		{"blue", 10, 90, "#0000FF", HSLColor{240, 100, 50}},
		{"white", 90, 90, "#FFFFFF", HSLColor{0, 0, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SampleColor(buf, tt.x, tt.y)
			if err != nil {
				t.Fatalf("SampleColor failed: %v", err)
			}
			if result.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", result.Hex, tt.wantHex)
			}
			if result.HSL != tt.wantHSL {
				t.Errorf("HSL: got %+v, want %+v", result.HSL, tt.wantHSL)
			}
		})
	}
}

func TestSampleColor_GrayBuffer(t *testing.T) {
	buf, err := filter.FromPix(2, 1, 1, []uint8{0, 128})
	if err != nil {
		t.Fatalf("FromPix failed: %v", err)
	}
	result, err := SampleColor(buf, 1, 0)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if result.RGB != (RGBColor{128, 128, 128}) {
		t.Errorf("RGB: got %+v, want 128,128,128", result.RGB)
	}
	if result.Hex != "#808080" {
		t.Errorf("Hex: got %s, want #808080", result.Hex)
	}
	if result.HSL.S != 0 {
		t.Errorf("gray saturation: got %d, want 0", result.HSL.S)
	}
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	buf := mustBuffer(t, createInMemoryImage(10, 10, color.RGBA{1, 2, 3, 255}))

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 5},
		{"negative y", 5, -1},
		{"x too large", 10, 5},
		{"y too large", 5, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SampleColor(buf, tt.x, tt.y); err == nil {
				t.Errorf("expected error for (%d,%d)", tt.x, tt.y)
			}
		})
	}
}

func TestBufferStats(t *testing.T) {
	buf := mustBuffer(t, createPatternImage(10, 10))

	stats, err := BufferStats(buf)
	if err != nil {
		t.Fatalf("BufferStats failed: %v", err)
	}
	if stats.Width != 10 || stats.Height != 10 || stats.Channels != 3 {
		t.Fatalf("shape: got %dx%dx%d, want 10x10x3", stats.Width, stats.Height, stats.Channels)
	}

	// Each channel is 255 in exactly two of the four quadrants.
	for c, cs := range stats.PerChan {
		if cs.Min != 0 || cs.Max != 255 {
			t.Errorf("channel %d range: got %d-%d, want 0-255", c, cs.Min, cs.Max)
		}
		if math.Abs(cs.Mean-127.5) > 1e-9 {
			t.Errorf("channel %d mean: got %v, want 127.5", c, cs.Mean)
		}
		if cs.StdDev <= 0 {
			t.Errorf("channel %d stddev should be positive", c)
		}
	}
	if stats.MeanColor.Hex != "#808080" {
		t.Errorf("mean color: got %s, want #808080", stats.MeanColor.Hex)
	}
}

func TestBufferStats_Flat(t *testing.T) {
	buf, err := filter.FromPix(3, 3, 1, []uint8{40, 40, 40, 40, 40, 40, 40, 40, 40})
	if err != nil {
		t.Fatalf("FromPix failed: %v", err)
	}
	stats, err := BufferStats(buf)
	if err != nil {
		t.Fatalf("BufferStats failed: %v", err)
	}
	cs := stats.PerChan[0]
	if cs.Min != 40 || cs.Max != 40 || cs.Mean != 40 || cs.StdDev != 0 {
		t.Errorf("flat stats: got %+v", cs)
	}
}

func TestBufferStats_SinglePixel(t *testing.T) {
	buf, err := filter.FromPix(1, 1, 3, []uint8{10, 20, 30})
	if err != nil {
		t.Fatalf("FromPix failed: %v", err)
	}
	stats, err := BufferStats(buf)
	if err != nil {
		t.Fatalf("BufferStats failed: %v", err)
	}
	for c, cs := range stats.PerChan {
		if math.IsNaN(cs.StdDev) || cs.StdDev != 0 {
			t.Errorf("channel %d stddev: got %v, want 0", c, cs.StdDev)
		}
	}
	if stats.MeanColor.Hex != "#0A141E" {
		t.Errorf("mean color: got %s, want #0A141E", stats.MeanColor.Hex)
	}
}
