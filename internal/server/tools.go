package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// regionSchema describes the optional sub-region argument shared by every
// tool that fingerprints an image file.
func regionSchema() map[string]interface{} {
	return map[string]interface{}{
		"description": "Optional part of the image to fingerprint: either a name (full, top-left, top-right, bottom-left, bottom-right, top-half, bottom-half, left-half, right-half, center) or an object {x1, y1, x2, y2} with x2/y2 exclusive",
		"oneOf": []interface{}{
			map[string]interface{}{"type": "string"},
			map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x1": map[string]interface{}{"type": "integer"},
					"y1": map[string]interface{}{"type": "integer"},
					"x2": map[string]interface{}{"type": "integer"},
					"y2": map[string]interface{}{"type": "integer"},
				},
				"required": []string{"x1", "y1", "x2", "y2"},
			},
		},
	}
}

// patternSourceProperties returns the properties naming one pattern: an
// image path, pattern text or a base64 binary record. Exactly one is used.
func patternSourceProperties(suffix string) map[string]interface{} {
	key := func(name string) string { return name + suffix }

	props := make(map[string]interface{})
	props[key("path")] = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to an image file to fingerprint",
	}
	props[key("region")] = regionSchema()
	props[key("pattern")] = map[string]interface{}{
		"type":        "string",
		"description": "Pattern in text form, as returned by pattern_from_image",
	}
	props[key("pattern_base64")] = map[string]interface{}{
		"type":        "string",
		"description": "Pattern as a base64 binary record, as returned by pattern_from_image",
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Pattern Operations
		{
			Name:        "pattern_from_image",
			Description: "Fingerprint an image: reduce it (or a region of it) to a small N×N grid of colors in the configured color space. Returns the pattern as text and as a base64 binary record.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"region": regionSchema(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "pattern_to_image",
			Description: "Render a pattern as a JPEG image, one block of pixels per cell. Useful to see what a fingerprint captured.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(patternSourceProperties(""), map[string]interface{}{
					"cell_size": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels per cell edge, 1 to 64. Default 1",
						"default":     1,
					},
					"grid_color": map[string]interface{}{
						"type":        "string",
						"description": "Optional color (hex or palette name) for lines between cells. Needs cell_size >= 2",
					},
				}),
			},
		},
		{
			Name:        "pattern_distance",
			Description: "Compare two patterns. Returns the raw distance (0 means identical), the distance relative to the black-vs-white maximum, and a similarity percentage. Each side may be an image path or a pattern.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": mergeProperties(patternSourceProperties("_a"), patternSourceProperties("_b")),
			},
		},
		{
			Name:        "pattern_max_distance",
			Description: "Return the distance between an all-black and an all-white pattern in the configured color space and size, the reference used to normalize distances.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Index Operations
		{
			Name:        "pattern_index_add",
			Description: "Store a pattern in the in-memory index under an ID, replacing any pattern with the same ID.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(map[string]interface{}{
					"id": map[string]interface{}{
						"type":        "string",
						"description": "Identifier to store the pattern under, e.g. the image path",
					},
				}, patternSourceProperties("")),
				"required": []string{"id"},
			},
		},
		{
			Name:        "pattern_index_search",
			Description: "Find indexed patterns nearest to a query image or pattern, closest first.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(map[string]interface{}{
					"radius": map[string]interface{}{
						"type":        "number",
						"description": "Maximum raw distance of a match. Omit for no limit",
					},
					"min_similarity": map[string]interface{}{
						"type":        "number",
						"description": "Minimum similarity percentage (0-100) of a match. Combined with radius if both are given",
					},
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of matches. Default 10; 0 returns all",
						"default":     10,
					},
				}, patternSourceProperties("")),
			},
		},
		{
			Name:        "pattern_index_remove",
			Description: "Remove a pattern from the index.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": map[string]interface{}{
						"type":        "string",
						"description": "Identifier of the pattern to remove",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "pattern_index_list",
			Description: "List the IDs stored in the index.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "pattern_index_pivots",
			Description: "Use already indexed patterns as pivots. Searches then skip candidates that the pivots prove are out of range. Pass an empty list to disable.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"ids": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "IDs of indexed patterns to use as pivots",
					},
				},
				"required": []string{"ids"},
			},
		},

		// Color Operations
		{
			Name:        "palette_nearest",
			Description: "Find the named web color nearest to a color, measured in the configured color space.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Hex color (#rrggbb or #rgb) or palette name",
					},
				},
				"required": []string{"color"},
			},
		},
		{
			Name:        "color_convert",
			Description: "Convert a color to RGB, CIE-Lab and HSV.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Hex color (#rrggbb or #rgb) or palette name",
					},
				},
				"required": []string{"color"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the color of a single pixel as hex, RGB, CIE-Lab and HSV.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_info",
			Description: "Load an image file and return its dimensions, detected format and file size.",
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

func mergeProperties(sets ...map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, set := range sets {
		for k, v := range set {
			out[k] = v
		}
	}
	return out
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
