package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/dip-studio/internal/filter"
	"github.com/ironsheep/dip-studio/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_filter").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// invalidArgs marks a tool failure caused by the caller's arguments rather
// than by the tool itself.
type invalidArgs struct {
	err error
}

func (e *invalidArgs) Error() string { return e.err.Error() }
func (e *invalidArgs) Unwrap() error { return e.err }

func badArgs(format string, a ...interface{}) error {
	return &invalidArgs{err: fmt.Errorf(format, a...)}
}

// isInvalidParams reports whether err should be answered with -32602.
func isInvalidParams(err error) bool {
	var ia *invalidArgs
	var pe *filter.ParameterError
	return errors.As(err, &ia) || errors.As(err, &pe)
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Argument and filter parameter errors return -32602; any other tool failure
// returns -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	entry := s.log.WithFields(logrus.Fields{
		"tool":     params.Name,
		"duration": time.Since(start).String(),
	})
	if err != nil {
		entry.WithError(err).Warn("Tool call failed")
		if isInvalidParams(err) {
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}
	entry.Info("Tool call completed")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Builds and applies the requested filter operator
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Filtering
	case "image_filter":
		return s.handleImageFilter(args)
	case "image_filter_list":
		return s.handleImageFilterList(args)

	// Inspection
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_stats":
		return s.handleImageStats(args)

	default:
		return nil, badArgs("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments. Empty arguments decode as {}.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return &invalidArgs{err: fmt.Errorf("invalid arguments: %w", err)}
	}
	return nil
}

func requirePath(path string) error {
	if path == "" {
		return badArgs("path is required")
	}
	return nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Filter Handlers ===

// operatorArgs is embedded by tools that optionally run an operator before
// producing their result.
type operatorArgs struct {
	Operator string             `json:"operator"`
	Params   map[string]float64 `json:"params"`
	Region   *imaging.Region    `json:"region,omitempty"`
	KeepGray bool               `json:"keep_gray"`
}

type imageFilterArgs struct {
	Path string `json:"path"`
	operatorArgs
	Scale      float64 `json:"scale"`
	Format     string  `json:"format"`
	OutputPath string  `json:"output_path"`
}

// FilterResult is the image_filter response.
type FilterResult struct {
	// Operator is the canonical name of the operator that ran.
	Operator string `json:"operator"`

	// Width, Height and Channels describe the output image.
	Width    int `json:"width"`
	Height   int `json:"height"`
	Channels int `json:"channels"`

	// Warnings lists non-fatal conditions such as a degenerate edge result.
	Warnings []filter.Warning `json:"warnings,omitempty"`

	// OutputPath is set when the result was written to disk.
	OutputPath string `json:"output_path,omitempty"`

	// ImageBase64 and MimeType are set when the result is returned inline.
	ImageBase64 string `json:"image_base64,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
}

func (s *Server) handleImageFilter(args json.RawMessage) (interface{}, error) {
	var a imageFilterArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	if a.Operator == "" {
		return nil, badArgs("operator is required")
	}
	format, err := imaging.ParseFormat(a.Format)
	if err != nil {
		return nil, &invalidArgs{err: err}
	}

	op, err := s.parseOperator(a.Operator, a.Params)
	if err != nil {
		return nil, err
	}
	buf, err := s.loadBuffer(a.Path, a.Region, a.KeepGray)
	if err != nil {
		return nil, err
	}
	res, err := s.applyOperator(op, buf)
	if err != nil {
		return nil, err
	}
	out, err := imaging.ScaleBuffer(res.Output, a.Scale, s.opts.MaxOutputPixels)
	if err != nil {
		return nil, &invalidArgs{err: err}
	}

	result := &FilterResult{
		Operator: op.Name(),
		Width:    out.Width,
		Height:   out.Height,
		Channels: out.Channels,
		Warnings: res.Warnings,
	}

	if a.OutputPath != "" {
		path, fileFormat, err := imaging.ResolveOutputPath(a.OutputPath, op.Name(), format, a.Format != "")
		if err != nil {
			return nil, &invalidArgs{err: err}
		}
		if err := imaging.SaveBuffer(out, path, fileFormat, s.opts.JPEGQuality); err != nil {
			return nil, err
		}
		result.OutputPath = path
		return result, nil
	}

	enc, err := imaging.EncodeBuffer(out, format, s.opts.JPEGQuality)
	if err != nil {
		return nil, err
	}
	result.ImageBase64 = enc.ImageBase64
	result.MimeType = enc.MimeType
	return result, nil
}

// operatorListing is one image_filter_list entry.
type operatorListing struct {
	filter.OperatorInfo

	// GrayOutputChannels and ColorOutputChannels give the channel count the
	// operator produces for single-channel and RGB input.
	GrayOutputChannels  int `json:"gray_output_channels"`
	ColorOutputChannels int `json:"color_output_channels"`
}

func (s *Server) handleImageFilterList(_ json.RawMessage) (interface{}, error) {
	catalog := filter.Catalog()
	listing := make([]operatorListing, 0, len(catalog))
	for _, info := range catalog {
		op, err := filter.ParseOperator(info.Name, nil)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %s: %w", info.Name, err)
		}
		listing = append(listing, operatorListing{
			OperatorInfo:        info,
			GrayOutputChannels:  filter.OutputChannels(op, 1),
			ColorOutputChannels: filter.OutputChannels(op, 3),
		})
	}
	return map[string]interface{}{
		"operators":         listing,
		"max_kernel_size":   s.opts.MaxKernelSize,
		"max_output_pixels": s.opts.MaxOutputPixels,
	}, nil
}

// === Inspection Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	operatorArgs
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	buf, err := s.filteredBuffer(a.Path, a.operatorArgs)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(buf, a.X, a.Y)
}

type imageStatsArgs struct {
	Path string `json:"path"`
	operatorArgs
}

func (s *Server) handleImageStats(args json.RawMessage) (interface{}, error) {
	var a imageStatsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	buf, err := s.filteredBuffer(a.Path, a.operatorArgs)
	if err != nil {
		return nil, err
	}
	return imaging.BufferStats(buf)
}

// === Helpers ===

// filteredBuffer loads path and, when an operator is named, applies it.
func (s *Server) filteredBuffer(path string, a operatorArgs) (*filter.Buffer, error) {
	var op filter.Operator
	if a.Operator != "" {
		var err error
		if op, err = s.parseOperator(a.Operator, a.Params); err != nil {
			return nil, err
		}
	}
	buf, err := s.loadBuffer(path, a.Region, a.KeepGray)
	if err != nil || op == nil {
		return buf, err
	}
	res, err := s.applyOperator(op, buf)
	if err != nil {
		return nil, err
	}
	return res.Output, nil
}

// loadBuffer loads an image through the cache, crops it to region when one
// is given, and converts it to a filter buffer.
func (s *Server) loadBuffer(path string, region *imaging.Region, keepGray bool) (*filter.Buffer, error) {
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	if region != nil {
		if img, err = imaging.CropImage(img, *region); err != nil {
			return nil, &invalidArgs{err: err}
		}
	}
	return imaging.ToBuffer(img, keepGray)
}

// parseOperator builds an operator and enforces the configured kernel size
// limit.
func (s *Server) parseOperator(name string, params map[string]float64) (filter.Operator, error) {
	op, err := filter.ParseOperator(name, params)
	if err != nil {
		return nil, err
	}

	var size int
	switch o := op.(type) {
	case filter.GaussianBlur:
		size = o.Size
	case filter.BoxBlur:
		size = o.Size
	case filter.MedianFilter:
		size = o.Size
	}
	if size > s.opts.MaxKernelSize {
		return nil, &filter.ParameterError{
			Operator: op.Name(),
			Param:    "kernel_size",
			Value:    float64(size),
			Reason:   fmt.Sprintf("exceeds the configured maximum of %d", s.opts.MaxKernelSize),
		}
	}
	return op, nil
}

func (s *Server) applyOperator(op filter.Operator, buf *filter.Buffer) (*filter.Result, error) {
	start := time.Now()
	res, err := filter.Apply(op, buf)
	if err != nil {
		return nil, err
	}

	entry := s.log.WithFields(logrus.Fields{
		"operator": op.Name(),
		"width":    buf.Width,
		"height":   buf.Height,
		"channels": buf.Channels,
		"duration": time.Since(start).String(),
	})
	for _, w := range res.Warnings {
		entry.WithField("code", w.Code).Warn(w.Message)
	}
	entry.Debug("Operator applied")
	return res, nil
}
