package server

import (
	"testing"
)

func toolMap() map[string]Tool {
	m := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		m[tool.Name] = tool
	}
	return m
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()
	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"pattern_from_image",
		"pattern_to_image",
		"pattern_distance",
		"pattern_max_distance",
		"pattern_index_add",
		"pattern_index_search",
		"pattern_index_remove",
		"pattern_index_list",
		"pattern_index_pivots",
		"palette_nearest",
		"color_convert",
		"image_sample_color",
		"image_info",
	}

	m := toolMap()
	for _, name := range expectedTools {
		if _, ok := m[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(m) != len(tools) {
		t.Error("tool names are not unique")
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			if _, ok := tool.InputSchema["properties"].(map[string]interface{}); !ok {
				t.Error("InputSchema properties should be a map")
			}
		})
	}
}

func TestToolDefinitions_Required(t *testing.T) {
	tests := []struct {
		tool     string
		required []string
	}{
		{"pattern_from_image", []string{"path"}},
		{"pattern_index_add", []string{"id"}},
		{"pattern_index_remove", []string{"id"}},
		{"pattern_index_pivots", []string{"ids"}},
		{"palette_nearest", []string{"color"}},
		{"color_convert", []string{"color"}},
		{"image_sample_color", []string{"path", "x", "y"}},
		{"image_info", []string{"path"}},
	}

	m := toolMap()
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			required, ok := m[tt.tool].InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			if len(required) != len(tt.required) {
				t.Fatalf("required = %v, want %v", required, tt.required)
			}
			for i := range required {
				if required[i] != tt.required[i] {
					t.Errorf("required = %v, want %v", required, tt.required)
				}
			}
		})
	}
}

func TestToolDefinitions_PatternSources(t *testing.T) {
	m := toolMap()

	props := m["pattern_distance"].InputSchema["properties"].(map[string]interface{})
	for _, side := range []string{"_a", "_b"} {
		for _, name := range []string{"path", "region", "pattern", "pattern_base64"} {
			if _, ok := props[name+side]; !ok {
				t.Errorf("pattern_distance is missing %s%s", name, side)
			}
		}
	}

	for _, tool := range []string{"pattern_to_image", "pattern_index_add", "pattern_index_search"} {
		props := m[tool].InputSchema["properties"].(map[string]interface{})
		for _, name := range []string{"path", "region", "pattern", "pattern_base64"} {
			if _, ok := props[name]; !ok {
				t.Errorf("%s is missing %s", tool, name)
			}
		}
	}
}

func TestToolDefinitions_PatternToImageOptions(t *testing.T) {
	props := toolMap()["pattern_to_image"].InputSchema["properties"].(map[string]interface{})
	for _, name := range []string{"cell_size", "grid_color"} {
		if _, ok := props[name]; !ok {
			t.Errorf("pattern_to_image is missing %s", name)
		}
	}
}
