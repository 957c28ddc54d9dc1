package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/ironsheep/image-pattern-mcp/internal/colorspace"
	"github.com/ironsheep/image-pattern-mcp/internal/imaging"
	"github.com/ironsheep/image-pattern-mcp/internal/index"
	"github.com/ironsheep/image-pattern-mcp/internal/metric"
	"github.com/ironsheep/image-pattern-mcp/internal/palette"
	"github.com/ironsheep/image-pattern-mcp/internal/pattern"
)

// defaultSearchLimit caps pattern_index_search results when no limit is given.
const defaultSearchLimit = 10

// maxCellSize bounds pattern_to_image's cell_size so the rendered image stays small.
const maxCellSize = 64

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "pattern_from_image").
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
		s.debugf("tool %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	text, err := marshalJSON(result)
	if err != nil {
		s.debugf("tool %s result not encodable: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": text,
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
//  3. Resolves patterns from image files or their serialized forms
//  4. Calls the pattern, index or imaging packages
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Pattern Operations
	case "pattern_from_image":
		return s.handlePatternFromImage(args)
	case "pattern_to_image":
		return s.handlePatternToImage(args)
	case "pattern_distance":
		return s.handlePatternDistance(args)
	case "pattern_max_distance":
		return s.handlePatternMaxDistance()

	// Index Operations
	case "pattern_index_add":
		return s.handleIndexAdd(args)
	case "pattern_index_search":
		return s.handleIndexSearch(args)
	case "pattern_index_remove":
		return s.handleIndexRemove(args)
	case "pattern_index_list":
		return s.handleIndexList()
	case "pattern_index_pivots":
		return s.handleIndexPivots(args)

	// Color Operations
	case "palette_nearest":
		return s.handlePaletteNearest(args)
	case "color_convert":
		return s.handleColorConvert(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_info":
		return s.handleImageInfo(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
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

// marshalJSON converts a value to a pretty-printed JSON string. Results
// holding NaN or Inf, which JSON cannot represent, are an error.
func marshalJSON(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding result: %w", err)
	}
	return string(b), nil
}

// unmarshalArgs decodes tool arguments, treating missing arguments as {}.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// === Pattern Resolution ===

// patternSource names one pattern. Exactly one of Path, Pattern and
// PatternBase64 must be set; Region only applies to Path.
type patternSource struct {
	Path          string          `json:"path"`
	Region        json.RawMessage `json:"region"`
	Pattern       string          `json:"pattern"`
	PatternBase64 string          `json:"pattern_base64"`
}

// resolvedPattern is a pattern together with where it came from.
type resolvedPattern struct {
	pattern *pattern.Pattern
	source  *imaging.ImageInfo
	region  *imaging.Region
}

func (s *Server) resolvePattern(src patternSource, label string) (*resolvedPattern, error) {
	set := 0
	for _, v := range []string{src.Path, src.Pattern, src.PatternBase64} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("%sexactly one of path, pattern or pattern_base64 is required", label)
	}

	switch {
	case src.Pattern != "":
		p, err := pattern.ParseText([]byte(src.Pattern), s.cfg.Size)
		if err != nil {
			return nil, fmt.Errorf("%s%w", label, err)
		}
		return &resolvedPattern{pattern: p}, nil

	case src.PatternBase64 != "":
		raw, err := base64.StdEncoding.DecodeString(src.PatternBase64)
		if err != nil {
			return nil, fmt.Errorf("%sinvalid base64: %w", label, err)
		}
		p, err := pattern.ParseBinary(raw)
		if err != nil {
			return nil, fmt.Errorf("%s%w", label, err)
		}
		if p.Size() != s.cfg.Size {
			return nil, fmt.Errorf("%s%w: record holds %dx%d, server uses %dx%d",
				label, pattern.ErrSizeMismatch, p.Size(), p.Size(), s.cfg.Size, s.cfg.Size)
		}
		return &resolvedPattern{pattern: p}, nil

	default:
		r, err := s.fingerprint(src.Path, src.Region)
		if err != nil {
			return nil, fmt.Errorf("%s%w", label, err)
		}
		return r, nil
	}
}

// fingerprint builds the pattern of an image file, optionally restricted to
// a region given as a name or as {x1, y1, x2, y2}.
func (s *Server) fingerprint(path string, rawRegion json.RawMessage) (*resolvedPattern, error) {
	info, err := imaging.LoadImageInfo(s.cache, path)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}

	var region *imaging.Region
	if len(rawRegion) > 0 && string(rawRegion) != "null" {
		r, err := parseRegion(rawRegion, img.Bounds())
		if err != nil {
			return nil, err
		}
		cropped, err := imaging.Crop(img, r)
		if err != nil {
			return nil, err
		}
		img = cropped
		region = &r
	}

	grid, err := imaging.SampleGrid(img, s.cfg.Size, s.cfg.BlurRadius)
	if err != nil {
		return nil, err
	}
	p, err := s.builder.FromRGBGrid(grid)
	if err != nil {
		return nil, err
	}

	s.debugf("fingerprinted %s (%dx%d %s)", path, info.Width, info.Height, info.Format)
	return &resolvedPattern{pattern: p, source: info, region: region}, nil
}

func parseRegion(raw json.RawMessage, bounds image.Rectangle) (imaging.Region, error) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return imaging.NamedRegion(bounds, name)
	}

	var r imaging.Region
	if err := json.Unmarshal(raw, &r); err != nil {
		return imaging.Region{}, fmt.Errorf("region must be a name or an object {x1, y1, x2, y2}: %w", err)
	}
	return r, nil
}

// parseColor accepts "#rrggbb", "#rgb" or a palette name.
func parseColor(s string) (colorspace.RGB, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return colorspace.RGB{}, errors.New("color is required")
	}
	if strings.HasPrefix(s, "#") {
		return colorspace.ParseHex(s)
	}
	if e, ok := palette.Lookup(s); ok {
		return e.RGB, nil
	}
	return colorspace.RGB{}, fmt.Errorf("unknown color %q: use #rrggbb or a web color name", s)
}

// === Pattern Operation Handlers ===

type patternResult struct {
	Space         metric.Name        `json:"space"`
	Components    [3]string          `json:"components"`
	Size          int                `json:"size"`
	Quantized     bool               `json:"quantized"`
	Pattern       string             `json:"pattern"`
	PatternBase64 string             `json:"pattern_base64"`
	Source        *imaging.ImageInfo `json:"source,omitempty"`
	Region        *imaging.Region    `json:"region,omitempty"`
}

type patternFromImageArgs struct {
	Path   string          `json:"path"`
	Region json.RawMessage `json:"region"`
}

func (s *Server) handlePatternFromImage(args json.RawMessage) (interface{}, error) {
	var a patternFromImageArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}

	r, err := s.fingerprint(a.Path, a.Region)
	if err != nil {
		return nil, err
	}

	record, err := r.pattern.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return &patternResult{
		Space:         s.cfg.Space.Name(),
		Components:    s.cfg.Space.Components(),
		Size:          r.pattern.Size(),
		Quantized:     s.builder.Quantized(),
		Pattern:       r.pattern.String(),
		PatternBase64: base64.StdEncoding.EncodeToString(record),
		Source:        r.source,
		Region:        r.region,
	}, nil
}

type patternToImageArgs struct {
	patternSource
	CellSize  int    `json:"cell_size"`
	GridColor string `json:"grid_color"`
}

type patternImageResult struct {
	imaging.EncodedImage
	CellSize int `json:"cell_size"`
	Quality  int `json:"quality"`
}

func (s *Server) handlePatternToImage(args json.RawMessage) (interface{}, error) {
	var a patternToImageArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.CellSize == 0 {
		a.CellSize = 1
	}
	if a.CellSize > maxCellSize {
		return nil, fmt.Errorf("cell_size must be at most %d, got %d", maxCellSize, a.CellSize)
	}

	r, err := s.resolvePattern(a.patternSource, "")
	if err != nil {
		return nil, err
	}

	img, err := imaging.Enlarge(imaging.RenderGrid(s.builder.RGBGrid(r.pattern)), a.CellSize)
	if err != nil {
		return nil, err
	}
	if a.GridColor != "" {
		c, err := parseColor(a.GridColor)
		if err != nil {
			return nil, err
		}
		imaging.DrawCellGrid(img, a.CellSize, c)
	}

	encoded, err := imaging.EncodeBase64JPEG(img, s.cfg.ExportQuality)
	if err != nil {
		return nil, err
	}
	return &patternImageResult{
		EncodedImage: *encoded,
		CellSize:     a.CellSize,
		Quality:      s.cfg.ExportQuality,
	}, nil
}

type patternDistanceArgs struct {
	PathA          string          `json:"path_a"`
	RegionA        json.RawMessage `json:"region_a"`
	PatternA       string          `json:"pattern_a"`
	PatternBase64A string          `json:"pattern_base64_a"`
	PathB          string          `json:"path_b"`
	RegionB        json.RawMessage `json:"region_b"`
	PatternB       string          `json:"pattern_b"`
	PatternBase64B string          `json:"pattern_base64_b"`
}

type distanceResult struct {
	pattern.Score
	MaxDistance float64     `json:"max_distance"`
	Space       metric.Name `json:"space"`
	Size        int         `json:"size"`
}

func (s *Server) handlePatternDistance(args json.RawMessage) (interface{}, error) {
	var a patternDistanceArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	pa, err := s.resolvePattern(patternSource{
		Path:          a.PathA,
		Region:        a.RegionA,
		Pattern:       a.PatternA,
		PatternBase64: a.PatternBase64A,
	}, "pattern a: ")
	if err != nil {
		return nil, err
	}
	pb, err := s.resolvePattern(patternSource{
		Path:          a.PathB,
		Region:        a.RegionB,
		Pattern:       a.PatternB,
		PatternBase64: a.PatternBase64B,
	}, "pattern b: ")
	if err != nil {
		return nil, err
	}

	score, err := s.comparer.Score(pa.pattern, pb.pattern)
	if err != nil {
		return nil, err
	}
	return &distanceResult{
		Score:       score,
		MaxDistance: s.comparer.MaxDistance(s.cfg.Size),
		Space:       s.cfg.Space.Name(),
		Size:        s.cfg.Size,
	}, nil
}

type maxDistanceResult struct {
	MaxDistance float64     `json:"max_distance"`
	Space       metric.Name `json:"space"`
	Size        int         `json:"size"`
}

func (s *Server) handlePatternMaxDistance() (interface{}, error) {
	return &maxDistanceResult{
		MaxDistance: s.comparer.MaxDistance(s.cfg.Size),
		Space:       s.cfg.Space.Name(),
		Size:        s.cfg.Size,
	}, nil
}

// === Index Operation Handlers ===

type indexAddArgs struct {
	patternSource
	ID string `json:"id"`
}

func (s *Server) handleIndexAdd(args json.RawMessage) (interface{}, error) {
	var a indexAddArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	r, err := s.resolvePattern(a.patternSource, "")
	if err != nil {
		return nil, err
	}
	if err := s.index.Add(a.ID, r.pattern); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"id":    a.ID,
		"count": s.index.Len(),
	}, nil
}

type indexSearchArgs struct {
	patternSource
	Radius        *float64 `json:"radius"`
	MinSimilarity *float64 `json:"min_similarity"`
	Limit         *int     `json:"limit"`
}

type searchResult struct {
	Matches []index.Match `json:"matches"`
	Indexed int           `json:"indexed"`
}

func (s *Server) handleIndexSearch(args json.RawMessage) (interface{}, error) {
	var a indexSearchArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	radius := math.Inf(1)
	if a.Radius != nil {
		if *a.Radius < 0 {
			return nil, fmt.Errorf("radius must not be negative, got %g", *a.Radius)
		}
		radius = *a.Radius
	}
	if a.MinSimilarity != nil {
		if *a.MinSimilarity < 0 || *a.MinSimilarity > 100 {
			return nil, fmt.Errorf("min_similarity must be between 0 and 100, got %g", *a.MinSimilarity)
		}
		bound := (1 - *a.MinSimilarity/100) * s.comparer.MaxDistance(s.cfg.Size)
		radius = math.Min(radius, bound)
	}
	limit := defaultSearchLimit
	if a.Limit != nil {
		limit = *a.Limit
	}

	r, err := s.resolvePattern(a.patternSource, "")
	if err != nil {
		return nil, err
	}

	matches, err := s.index.Search(r.pattern, radius, limit)
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []index.Match{}
	}
	return &searchResult{Matches: matches, Indexed: s.index.Len()}, nil
}

type indexIDArgs struct {
	ID string `json:"id"`
}

func (s *Server) handleIndexRemove(args json.RawMessage) (interface{}, error) {
	var a indexIDArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if err := s.index.Remove(a.ID); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"id":    a.ID,
		"count": s.index.Len(),
	}, nil
}

func (s *Server) handleIndexList() (interface{}, error) {
	return map[string]interface{}{
		"ids":    s.index.IDs(),
		"pivots": s.index.Pivots(),
	}, nil
}

type indexPivotsArgs struct {
	IDs []string `json:"ids"`
}

func (s *Server) handleIndexPivots(args json.RawMessage) (interface{}, error) {
	var a indexPivotsArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	pivots := make([]*pattern.Pattern, 0, len(a.IDs))
	for _, id := range a.IDs {
		p, ok := s.index.Get(id)
		if !ok {
			return nil, fmt.Errorf("pivot %q: %w", id, index.ErrNotFound)
		}
		pivots = append(pivots, p)
	}
	if err := s.index.SetPivots(pivots); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"pivots": s.index.Pivots(),
	}, nil
}

// === Color Operation Handlers ===

type colorArgs struct {
	Color string `json:"color"`
}

type paletteResult struct {
	Name        string         `json:"name"`
	DisplayName string         `json:"display_name"`
	Hex         string         `json:"hex"`
	RGB         colorspace.RGB `json:"rgb"`
	Distance    float64        `json:"distance"`
	Space       metric.Name    `json:"space"`
}

func (s *Server) handlePaletteNearest(args json.RawMessage) (interface{}, error) {
	var a colorArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	rgb, err := parseColor(a.Color)
	if err != nil {
		return nil, err
	}

	c := s.cfg.Space.FromRGB(rgb)
	entry, nearest := s.quantizer.Nearest(c)
	return &paletteResult{
		Name:        entry.Name,
		DisplayName: entry.DisplayName(),
		Hex:         entry.Hex(),
		RGB:         entry.RGB,
		Distance:    s.cfg.Space.Distance(c, nearest),
		Space:       s.cfg.Space.Name(),
	}, nil
}

func (s *Server) handleColorConvert(args json.RawMessage) (interface{}, error) {
	var a colorArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	rgb, err := parseColor(a.Color)
	if err != nil {
		return nil, err
	}
	return imaging.DescribeColor(rgb), nil
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type imageInfoArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageInfoArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}
