// Package pipeline provides the import and render pipeline shared by the CLI
// and the HTTP API.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Import: parse the Intergeo document, replay it on a fresh board and
//     build the construction's dependency graph
//  2. Render: produce the requested outputs from that graph (SVG and DOT
//     node-link diagrams, a PNG snapshot of the board, JSON)
//
// Both stages are cached through a [cache.Cache]: the graph by document
// hash and import options, each artifact by graph hash and render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:   "triangle.i2g",
//	    Document: data,
//	    Formats:  []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/intergeo/pkg/cache"
	"github.com/matzehuels/intergeo/pkg/dag"
	"github.com/matzehuels/intergeo/pkg/errors"
	"github.com/matzehuels/intergeo/pkg/intergeo"
	"github.com/matzehuels/intergeo/pkg/render/canvas"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultTTL is how long graphs and artifacts stay cached.
const DefaultTTL = 24 * time.Hour

// Format constants for output formats.
const (
	FormatSVG  = "svg"  // dependency graph, rendered by Graphviz
	FormatDOT  = "dot"  // dependency graph source
	FormatPNG  = "png"  // board snapshot
	FormatJSON = "json" // construction graph export
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatDOT:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz"
	}
	return "application/octet-stream"
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Import options. Source is the display name of the document and
	// Document its raw XML or .i2g archive. Refresh bypasses cached graphs.
	Source    string         `json:"source,omitempty"`
	Document  []byte         `json:"-"`
	Dependent intergeo.Style `json:"dependent"`
	Refresh   bool           `json:"refresh,omitempty"`

	// Render options. Detailed selects detailed node labels.
	Formats  []string       `json:"formats,omitempty"`
	Detailed bool           `json:"detailed,omitempty"`
	Canvas   canvas.Options `json:"canvas"`

	// TTL of cache entries written by this run. Zero means DefaultTTL.
	TTL time.Duration `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the run in logs and API responses.
	ID string

	// Graph is the construction's dependency graph.
	Graph *dag.DAG

	// GraphHash is the content hash of the graph's JSON export.
	GraphHash string

	// Construction is the imported construction. It is nil when the graph
	// came from the cache.
	Construction *intergeo.Construction

	// Diagnostics lists the problems reported while importing.
	Diagnostics []intergeo.Diagnostic

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	ImportTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ImportHit bool // Whether the graph came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(FormatNames(), ", ")).About(format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
// An empty list is valid; ValidateForRender substitutes the default.
func ValidateFormats(formats []string) error {
	if len(formats) == 0 {
		return nil
	}
	return errors.ValidateFormats(formats, ValidFormats)
}

// FormatNames returns the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateForImport checks required fields for importing and applies
// defaults.
func (o *Options) ValidateForImport() error {
	if len(o.Document) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "document is required")
	}
	if o.Source == "" {
		o.Source = "document"
	}
	if o.Dependent == (intergeo.Style{}) {
		o.Dependent = intergeo.DefaultDependentStyle
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Canvas == (canvas.Options{}) {
		o.Canvas = canvas.DefaultOptions()
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return ValidateFormats(o.Formats)
}

// GraphKeyOpts returns cache key options for the import stage.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		DependentStroke: o.Dependent.StrokeColor,
		DependentFill:   o.Dependent.FillColor,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering. Only
// the options that affect the given format are included.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatDOT:
		k.Detailed = o.Detailed
	case FormatPNG:
		k.Width, k.Height, k.Unit = o.Canvas.Width, o.Canvas.Height, o.Canvas.Unit
		k.OriginX, k.OriginY = o.Canvas.OriginX, o.Canvas.OriginY
		k.Hidden = o.Canvas.ShowHidden
	}
	return k
}
