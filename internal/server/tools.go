package server

import "github.com/ironsheep/dip-studio/internal/filter"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func regionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Optional rectangle to process instead of the whole image (x2, y2 exclusive)",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer"},
			"y1": map[string]interface{}{"type": "integer"},
			"x2": map[string]interface{}{"type": "integer"},
			"y2": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

// operatorNames lists the canonical operator names in catalog order.
func operatorNames() []string {
	catalog := filter.Catalog()
	names := make([]string, len(catalog))
	for i, op := range catalog {
		names[i] = op.Name
	}
	return names
}

// operatorProperties returns the schema properties shared by tools that can
// run an operator before producing their result.
func operatorProperties(operatorDesc string) map[string]interface{} {
	return map[string]interface{}{
		"operator": map[string]interface{}{
			"type":        "string",
			"enum":        operatorNames(),
			"description": operatorDesc,
		},
		"params": map[string]interface{}{
			"type":                 "object",
			"description":          "Numeric operator parameters by name (see image_filter_list). Missing parameters use their defaults.",
			"additionalProperties": map[string]interface{}{"type": "number"},
		},
		"region": regionProperty(),
		"keep_gray": map[string]interface{}{
			"type":        "boolean",
			"description": "Keep grayscale sources single-channel instead of replicating them to RGB. Default false",
			"default":     false,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	filterProps := operatorProperties("Filter to apply")
	filterProps["path"] = pathProperty()
	filterProps["scale"] = map[string]interface{}{
		"type":        "number",
		"description": "Optional output scale factor (e.g., 2.0 to double size). Results above the server's max_output_pixels are rejected. Default 1.0",
		"default":     1.0,
	}
	filterProps["format"] = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"png", "jpeg"},
		"description": "Output encoding. Default png",
		"default":     "png",
	}
	filterProps["output_path"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional file or directory to write the result to instead of returning base64. A directory receives processed_<operator>.<ext>; a path without an extension gets one from format. An explicit format must agree with the path's extension",
	}

	sampleProps := operatorProperties("Optional filter to apply before sampling")
	sampleProps["path"] = pathProperty()
	sampleProps["x"] = map[string]interface{}{
		"type":        "integer",
		"description": "X coordinate (0-based, from left)",
	}
	sampleProps["y"] = map[string]interface{}{
		"type":        "integer",
		"description": "Y coordinate (0-based, from top)",
	}

	statsProps := operatorProperties("Optional filter to apply before measuring")
	statsProps["path"] = pathProperty()

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, channel count and whether it carries alpha.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Filtering
		{
			Name:        "image_filter",
			Description: "Apply a filter (blur, sharpen, edge detection, tone adjustment or effect) to an image and return the result as base64 or write it to disk.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": filterProps,
				"required":   []string{"path", "operator"},
			},
		},
		{
			Name:        "image_filter_list",
			Description: "List the available filters grouped by category, with their parameters, ranges and defaults.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Inspection
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate, optionally after applying a filter.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": sampleProps,
				"required":   []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_stats",
			Description: "Per-channel min, max, mean and standard deviation plus the mean color, optionally after applying a filter. Useful for comparing an original with its processed version.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": statsProps,
				"required":   []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
