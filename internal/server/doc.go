// Package server exposes the sun detector over MCP and HTTP.
//
// Both front ends decode an image, run detection.Detect with the configured
// annotation style and return the annotated copy as base64. Neither keeps
// per-request state; the only shared structure is the image cache used by
// path-based tools.
//
// # MCP
//
// The MCP side is a JSON-RPC 2.0 server over stdio:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// Tools:
//   - sun_detect: Find the sun in an image given as base64 or as a file path
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// # HTTP
//
// HTTPApp returns a fiber application with three routes:
//
//	GET  /            plain-text banner
//	GET  /health      {"status": "ok", "version": "..."}
//	POST /detect_sun  {"image_base64": "..."} ->
//	                  {"sun_detected": true, "center": [x, y], "annotated_image_base64": "..."}
//
// center is null when no sun was found. A missing or empty image_base64
// gives 400 "No image_base64 provided"; a payload that is not a decodable
// image gives 400 "Failed to decode image: <reason>".
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// HTTP errors always carry a JSON body of the form {"error": "..."}.
package server
