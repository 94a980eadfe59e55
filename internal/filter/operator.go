package filter

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Operator is one of the filters this package implements. The set is closed:
// only the types declared in this file satisfy it, and Apply handles each of
// them explicitly.
type Operator interface {
	// Name returns the canonical operator name, e.g. "gaussian_blur".
	Name() string
	operator()
}

type (
	// Grayscale converts to single-channel luminosity.
	Grayscale struct{}
	// Invert maps every sample v to 255-v.
	Invert struct{}
	// Threshold binarizes the grayscale image at Value.
	Threshold struct{ Value int }
	// Brightness adds Delta to every sample.
	Brightness struct{ Delta int }
	// Contrast scales samples around 128 by Factor.
	Contrast struct{ Factor float64 }
	// Sharpen blends the sharpen kernel with identity by Strength.
	Sharpen struct{ Strength float64 }
	// GaussianBlur convolves with a normalized Gaussian kernel.
	GaussianBlur struct {
		Size  int
		Sigma float64
	}
	// BoxBlur convolves with a uniform kernel.
	BoxBlur struct{ Size int }
	// MedianFilter takes the median of a Size×Size window.
	MedianFilter struct{ Size int }
	// Sobel computes normalized gradient magnitude with a KSize Sobel pair.
	Sobel struct{ KSize int }
	// Laplacian computes normalized absolute Laplacian response.
	Laplacian struct{}
	// Sepia applies the sepia color matrix.
	Sepia struct{}
	// Emboss convolves with the emboss kernel biased by 128.
	Emboss struct{}
)

func (Grayscale) Name() string    { return "grayscale" }
func (Invert) Name() string       { return "invert" }
func (Threshold) Name() string    { return "threshold" }
func (Brightness) Name() string   { return "brightness" }
func (Contrast) Name() string     { return "contrast" }
func (Sharpen) Name() string      { return "sharpen" }
func (GaussianBlur) Name() string { return "gaussian_blur" }
func (BoxBlur) Name() string      { return "box_blur" }
func (MedianFilter) Name() string { return "median" }
func (Sobel) Name() string        { return "sobel" }
func (Laplacian) Name() string    { return "laplacian" }
func (Sepia) Name() string        { return "sepia" }
func (Emboss) Name() string       { return "emboss" }

func (Grayscale) operator()    {}
func (Invert) operator()       {}
func (Threshold) operator()    {}
func (Brightness) operator()   {}
func (Contrast) operator()     {}
func (Sharpen) operator()      {}
func (GaussianBlur) operator() {}
func (BoxBlur) operator()      {}
func (MedianFilter) operator() {}
func (Sobel) operator()        {}
func (Laplacian) operator()    {}
func (Sepia) operator()        {}
func (Emboss) operator()       {}

// Result is the output of Apply.
type Result struct {
	Output   *Buffer
	Warnings []Warning
}

// Apply runs op over in. The input buffer is never modified.
func Apply(op Operator, in *Buffer) (*Result, error) {
	var (
		out        *Buffer
		degenerate bool
		err        error
	)
	switch o := op.(type) {
	case Grayscale:
		out, err = ToGrayscale(in)
	case Invert:
		out, err = InvertColors(in)
	case Threshold:
		out, err = Binarize(in, o.Value)
	case Brightness:
		out, err = AdjustBrightness(in, o.Delta)
	case Contrast:
		out, err = AdjustContrast(in, o.Factor)
	case Sharpen:
		out, err = convolveWith(in, func() (*Kernel, error) { return SharpenKernel(o.Strength) })
	case GaussianBlur:
		out, err = convolveWith(in, func() (*Kernel, error) { return GaussianKernel(o.Size, o.Sigma) })
	case BoxBlur:
		out, err = convolveWith(in, func() (*Kernel, error) { return BoxKernel(o.Size) })
	case MedianFilter:
		out, err = Median(in, o.Size)
	case Sobel:
		out, degenerate, err = sobel(in, o.KSize)
	case Laplacian:
		out, degenerate, err = laplacian(in)
	case Sepia:
		out, err = SepiaTone(in)
	case Emboss:
		out, err = EmbossRelief(in)
	case nil:
		return nil, paramErr("apply", "", 0, "nil operator")
	default:
		return nil, paramErr(op.Name(), "", 0, "unsupported operator")
	}
	if err != nil {
		return nil, err
	}

	res := &Result{Output: out}
	if degenerate {
		res.Warnings = append(res.Warnings, Warning{
			Code:    WarningDegenerateResult,
			Message: fmt.Sprintf("%s: maximum edge response is 0, output is all zero", op.Name()),
		})
	}
	return res, nil
}

// convolveWith builds the kernel before touching the buffer so parameter
// errors are reported first.
func convolveWith(in *Buffer, build func() (*Kernel, error)) (*Buffer, error) {
	k, err := build()
	if err != nil {
		return nil, err
	}
	return Convolve(in, k)
}

// OutputChannels reports the channel count op produces for an input with the
// given number of channels.
func OutputChannels(op Operator, inChannels int) int {
	switch op.(type) {
	case Grayscale, Threshold, Sobel, Laplacian:
		return 1
	case Sepia:
		return 3
	default:
		return inChannels
	}
}

// ParseOperator builds an Operator from a name and named numeric parameters.
// Names are case-insensitive and may use spaces or hyphens instead of
// underscores ("Gaussian Blur" works). Missing parameters take their defaults;
// unknown parameters are rejected.
func ParseOperator(name string, params map[string]float64) (Operator, error) {
	key := canonicalName(name)
	info, ok := catalogByName[key]
	if !ok {
		return nil, &ParameterError{Operator: name, Param: "name", Reason: "unknown operator"}
	}

	known := make(map[string]ParamInfo, len(info.Params))
	for _, p := range info.Params {
		known[p.Name] = p
	}
	for k, v := range params {
		p, ok := known[k]
		if !ok {
			return nil, paramErr(key, k, v, "unknown parameter")
		}
		if p.Type == "int" && v != math.Trunc(v) {
			return nil, paramErr(key, k, v, "must be an integer")
		}
	}
	get := func(k string) float64 {
		if v, ok := params[k]; ok {
			return v
		}
		return known[k].Default
	}

	switch key {
	case "grayscale":
		return Grayscale{}, nil
	case "invert":
		return Invert{}, nil
	case "threshold":
		return Threshold{Value: int(get("threshold_value"))}, nil
	case "brightness":
		return Brightness{Delta: int(get("value"))}, nil
	case "contrast":
		return Contrast{Factor: get("factor")}, nil
	case "sharpen":
		return Sharpen{Strength: get("strength")}, nil
	case "gaussian_blur":
		return GaussianBlur{Size: int(get("kernel_size")), Sigma: get("sigma")}, nil
	case "box_blur":
		return BoxBlur{Size: int(get("kernel_size"))}, nil
	case "median":
		return MedianFilter{Size: int(get("kernel_size"))}, nil
	case "sobel":
		return Sobel{KSize: int(get("ksize"))}, nil
	case "laplacian":
		return Laplacian{}, nil
	case "sepia":
		return Sepia{}, nil
	case "emboss":
		return Emboss{}, nil
	}
	return nil, &ParameterError{Operator: name, Param: "name", Reason: "unknown operator"}
}

var aliases = map[string]string{
	"gray":          "grayscale",
	"greyscale":     "grayscale",
	"median_filter": "median",
	"gaussian":      "gaussian_blur",
	"box":           "box_blur",
}

func canonicalName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer(" ", "_", "-", "_").Replace(n)
	if a, ok := aliases[n]; ok {
		return a
	}
	return n
}

// ParamInfo describes one operator parameter.
type ParamInfo struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"` // "int" or "float"
	Min         float64 `json:"min"`
	Max         float64 `json:"max,omitempty"`
	Default     float64 `json:"default"`
	Description string  `json:"description"`
}

// OperatorInfo describes an operator for clients that build parameter forms.
type OperatorInfo struct {
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Params      []ParamInfo `json:"params"`
}

// Operator categories.
const (
	CategoryBasic       = "Basic"
	CategoryEnhancement = "Enhancement"
	CategoryEdge        = "Edge Detection"
	CategoryEffects     = "Effects"
)

var kernelSizeParam = ParamInfo{Name: "kernel_size", Type: "int", Min: 1, Default: 5, Description: "Window edge length; even values are raised to the next odd value"}

var catalog = []OperatorInfo{
	{Name: "grayscale", Category: CategoryBasic, Description: "Luminosity grayscale (0.299R + 0.587G + 0.114B)"},
	{Name: "invert", Category: CategoryBasic, Description: "Photographic negative (255 - v)"},
	{Name: "threshold", Category: CategoryBasic, Description: "Binary image: 255 where gray > threshold_value",
		Params: []ParamInfo{{Name: "threshold_value", Type: "int", Min: 0, Max: 255, Default: 128, Description: "Binary cutoff"}}},
	{Name: "brightness", Category: CategoryEnhancement, Description: "Add a constant to every sample",
		Params: []ParamInfo{{Name: "value", Type: "int", Min: -255, Max: 255, Default: 0, Description: "Additive delta"}}},
	{Name: "contrast", Category: CategoryEnhancement, Description: "Scale around mid-gray 128",
		Params: []ParamInfo{{Name: "factor", Type: "float", Min: 0, Default: 1, Description: "Multiplicative factor, must be > 0"}}},
	{Name: "sharpen", Category: CategoryEnhancement, Description: "Tunable 3x3 sharpen (0 = no-op, 1 = full)",
		Params: []ParamInfo{{Name: "strength", Type: "float", Min: 0, Default: 1, Description: "Sharpen intensity"}}},
	{Name: "gaussian_blur", Category: CategoryEnhancement, Description: "Normalized Gaussian blur",
		Params: []ParamInfo{kernelSizeParam, {Name: "sigma", Type: "float", Min: 0, Default: 1, Description: "Standard deviation, must be > 0"}}},
	{Name: "box_blur", Category: CategoryEnhancement, Description: "Uniform mean blur",
		Params: []ParamInfo{kernelSizeParam}},
	{Name: "median", Category: CategoryEnhancement, Description: "Median denoise filter",
		Params: []ParamInfo{{Name: "kernel_size", Type: "int", Min: 1, Default: 3, Description: kernelSizeParam.Description}}},
	{Name: "sobel", Category: CategoryEdge, Description: "Sobel gradient magnitude normalized to the image maximum",
		Params: []ParamInfo{{Name: "ksize", Type: "int", Min: 3, Max: 5, Default: 3, Description: "Sobel aperture, 3 or 5"}}},
	{Name: "laplacian", Category: CategoryEdge, Description: "Absolute Laplacian normalized to the image maximum"},
	{Name: "sepia", Category: CategoryEffects, Description: "Sepia tone color matrix"},
	{Name: "emboss", Category: CategoryEffects, Description: "Emboss relief biased to mid-gray"},
}

var catalogByName = func() map[string]OperatorInfo {
	m := make(map[string]OperatorInfo, len(catalog))
	for _, op := range catalog {
		m[op.Name] = op
	}
	return m
}()

// Catalog returns every operator sorted by category then name.
func Catalog() []OperatorInfo {
	order := map[string]int{CategoryBasic: 0, CategoryEnhancement: 1, CategoryEdge: 2, CategoryEffects: 3}
	out := make([]OperatorInfo, len(catalog))
	for i, op := range catalog {
		op.Params = append([]ParamInfo(nil), op.Params...)
		out[i] = op
	}
	sort.SliceStable(out, func(i, j int) bool {
		if order[out[i].Category] != order[out[j].Category] {
			return order[out[i].Category] < order[out[j].Category]
		}
		return out[i].Name < out[j].Name
	})
	return out
}
