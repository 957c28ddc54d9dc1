// Package server implements the MCP (Model Context Protocol) server for image
// fingerprinting.
//
// This package provides a JSON-RPC 2.0 server that reduces images to small
// color-grid patterns, compares them, and keeps an in-memory index of them
// for similarity search.
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
// Pattern Operations:
//   - pattern_from_image: Fingerprint an image or a region of it
//   - pattern_to_image: Render a pattern as JPEG
//   - pattern_distance: Compare two patterns
//   - pattern_max_distance: Black-vs-white reference distance
//
// Index Operations:
//   - pattern_index_add: Store a pattern under an ID
//   - pattern_index_search: Nearest indexed patterns
//   - pattern_index_remove: Drop a pattern
//   - pattern_index_list: List stored IDs
//   - pattern_index_pivots: Choose pivots for pruned search
//
// Color Operations:
//   - palette_nearest: Nearest named web color
//   - color_convert: RGB, CIE-Lab and HSV forms of a color
//   - image_sample_color: Color of one pixel
//   - image_info: Dimensions and format of an image file
//
// Wherever a tool takes a pattern it accepts an image path (optionally with
// a region), the pattern text, or the base64 binary record.
//
// # Configuration
//
// Color space, grid size, palette snapping, blur and export quality come from
// a config.Config resolved once at start-up. Patterns of different spaces or
// sizes are never mixed within one server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	cfg, err := config.FromEnv(os.LookupEnv)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv, err := server.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
