package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/sun-detect-mcp/internal/imaging"
)

var (
	// ErrNoImage is returned when a sun_detect call names no image.
	ErrNoImage = errors.New("either image_base64 or path is required")

	// ErrAmbiguousImage is returned when a sun_detect call names two images.
	ErrAmbiguousImage = errors.New("provide only one of image_base64 and path")
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "sun_detect", "image_load").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		log.Printf("Tool %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "sun_detect":
		return s.handleSunDetect(args)
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response. An empty data string is
// left out of the response.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	mcpErr := &MCPError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		mcpErr.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   mcpErr,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Detection ===

type sunDetectArgs struct {
	ImageBase64  string `json:"image_base64"`
	Path         string `json:"path"`
	OutputFormat string `json:"output_format"`
	IncludeCrop  bool   `json:"include_crop"`
}

func (s *Server) handleSunDetect(args json.RawMessage) (interface{}, error) {
	var a sunDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if _, err := imaging.ParseFormat(a.OutputFormat); err != nil {
		return nil, err
	}

	var img image.Image
	switch {
	case a.ImageBase64 != "" && a.Path != "":
		return nil, ErrAmbiguousImage
	case a.ImageBase64 != "":
		decoded, _, err := imaging.DecodeBase64(a.ImageBase64)
		if err != nil {
			return nil, err
		}
		img = decoded
	case a.Path != "":
		loaded, err := s.cache.Load(a.Path)
		if err != nil {
			return nil, err
		}
		img = loaded
	default:
		return nil, ErrNoImage
	}

	return s.detectAndEncode(img, a.OutputFormat, a.IncludeCrop)
}

// === Basic Image Information ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}
