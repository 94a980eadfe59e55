// Package server implements the MCP (Model Context Protocol) server that
// exposes the filter engine.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Filtering:
//   - image_filter: Apply one operator, optionally to a region, and return
//     or save the result
//   - image_filter_list: Describe every operator and its parameters
//
// Inspection:
//   - image_sample_color: Get the color at a pixel, optionally after filtering
//   - image_stats: Per-channel statistics, optionally after filtering
//
// # Image Caching
//
// Decoded images are cached by path and reused across tool calls for the
// lifetime of the server process. Filtering never modifies a cached image.
//
// # Error Handling
//
// Tool failures are returned as JSON-RPC error responses:
//   - -32602: invalid arguments, including filter parameter errors, kernel
//     sizes above Options.MaxKernelSize, scaled results above
//     Options.MaxOutputPixels and a format that conflicts with output_path
//   - -32000: any other tool failure (unreadable file, encode failure)
//   - -32601: unknown method
//
// The data field carries the Go error string. Degenerate edge results are
// not errors; they appear in the warnings list of the tool result.
//
// # Logging
//
// Parse failures, encode failures and every tool call are logged through the
// logrus logger passed to New. Stdout is reserved for the protocol.
//
// # Usage
//
//	srv := server.New(server.DefaultOptions(), logger)
//	if err := srv.Run(); err != nil {
//	    logger.Fatal(err)
//	}
package server
