package filter

import "math"

// ITU-R BT.601 luma weights.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// ToGrayscale converts in to a single-channel luminosity buffer. A
// single-channel input is returned as a copy.
func ToGrayscale(in *Buffer) (*Buffer, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.Channels == 1 {
		return in.Clone(), nil
	}
	out := &Buffer{Width: in.Width, Height: in.Height, Channels: 1, Pix: make([]uint8, in.Width*in.Height)}
	for i := range out.Pix {
		p := in.Pix[i*3 : i*3+3]
		out.Pix[i] = clampToByte(lumaR*float64(p[0]) + lumaG*float64(p[1]) + lumaB*float64(p[2]))
	}
	return out, nil
}

// InvertColors returns 255 - v for every sample.
func InvertColors(in *Buffer) (*Buffer, error) {
	return mapSamples(in, func(v uint8) uint8 { return 255 - v })
}

// AdjustBrightness adds delta to every sample, saturating at 0 and 255.
// delta must lie in [-255, 255].
func AdjustBrightness(in *Buffer, delta int) (*Buffer, error) {
	if delta < -255 || delta > 255 {
		return nil, paramErr("brightness", "value", float64(delta), "must be within [-255, 255]")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var lut [256]uint8
	for v := range lut {
		lut[v] = clampToByte(float64(v + delta))
	}
	return applyLUT(in, &lut), nil
}

// AdjustContrast scales every sample around mid-gray:
// (v - 128) * factor + 128, clamped. factor must be greater than 0.
func AdjustContrast(in *Buffer, factor float64) (*Buffer, error) {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return nil, paramErr("contrast", "factor", factor, "must be a finite value > 0")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var lut [256]uint8
	for v := range lut {
		lut[v] = clampToByte((float64(v)-128)*factor + 128)
	}
	return applyLUT(in, &lut), nil
}

// Binarize converts in to grayscale and returns a single-channel buffer with
// 255 where the gray level is strictly greater than value and 0 elsewhere.
func Binarize(in *Buffer, value int) (*Buffer, error) {
	if value < 0 || value > 255 {
		return nil, paramErr("threshold", "threshold_value", float64(value), "must be within [0, 255]")
	}
	gray, err := ToGrayscale(in)
	if err != nil {
		return nil, err
	}
	for i, v := range gray.Pix {
		if int(v) > value {
			gray.Pix[i] = 255
		} else {
			gray.Pix[i] = 0
		}
	}
	return gray, nil
}

func mapSamples(in *Buffer, fn func(uint8) uint8) (*Buffer, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var lut [256]uint8
	for v := range lut {
		lut[v] = fn(uint8(v))
	}
	return applyLUT(in, &lut), nil
}

func applyLUT(in *Buffer, lut *[256]uint8) *Buffer {
	out := in.sameShape()
	for i, v := range in.Pix {
		out.Pix[i] = lut[v]
	}
	return out
}
