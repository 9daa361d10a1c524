package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name: "sun_detect",
			Description: "Find the sun in a photograph. Returns whether a bright, roughly circular region was found, " +
				"its center [x, y] in image pixels (null when absent), its bounding box, and a copy of the image " +
				"annotated with a rectangle, label and center marker as base64.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_base64": map[string]interface{}{
						"type":        "string",
						"description": "Base64-encoded image or data URL. Use this or path.",
					},
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file. Use this or image_base64.",
					},
					"output_format": map[string]interface{}{
						"type":        "string",
						"description": "Format of the annotated image",
						"enum":        []string{"jpeg", "png"},
						"default":     "jpeg",
					},
					"include_crop": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return a close-up of the detected region",
						"default":     false,
					},
				},
			},
		},
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, color depth and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
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
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
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
