// Package imaging connects decoded images to the filter engine.
//
// It owns everything the engine deliberately does not: reading image files,
// converting between image.Image and filter.Buffer, cropping and rescaling,
// encoding results as PNG or JPEG, and sampling colors and statistics so a
// client can compare an original with its processed version.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Channel Normalization
//
// Decoded images become 3-channel RGB buffers. Alpha is discarded without
// premultiplication, and gray images are replicated into three channels unless
// the caller asks to keep them single-channel.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Conversion and encoding
// functions are stateless and never modify their inputs.
//
// # Performance Considerations
//
// For repeated operations on the same image, use ImageCache to avoid redundant
// disk reads. Large images may consume significant memory when cached.
// Consider using Evict() or Clear() to manage memory for long-running processes.
package imaging
