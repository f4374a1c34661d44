package dag

// Metadata keys written by the construction builder and read by the
// renderers and the JSON codec. Geometry values are plain float64 so that
// they survive a JSON round trip unchanged; non-finite values are omitted.
const (
	MetaKind    = "kind"    // engine kind name ("point", "line", ...)
	MetaName    = "name"    // display name
	MetaVisible = "visible" // false for hidden helpers
	MetaStroke  = "stroke"  // stroke color
	MetaFill    = "fill"    // fill color
	MetaTrace   = "trace"   // true when the element records a trace

	// Points.
	MetaX = "x"
	MetaY = "y"

	// Lines: standard form c·z + a·x + b·y = 0 and, when the line is
	// defined by two points, their positions.
	MetaC             = "c"
	MetaA             = "a"
	MetaB             = "b"
	MetaX1            = "x1"
	MetaY1            = "y1"
	MetaX2            = "x2"
	MetaY2            = "y2"
	MetaStraightFirst = "straight_first"
	MetaStraightLast  = "straight_last"

	// Circles.
	MetaCX     = "cx"
	MetaCY     = "cy"
	MetaRadius = "r"
)

// Graph-level metadata keys.
const (
	MetaElements    = "elements"    // number of realized document elements
	MetaApplied     = "applied"     // number of applied constraints
	MetaDiagnostics = "diagnostics" // number of diagnostics
)

// String returns the string stored under key, or "" if absent.
func (m Metadata) String(key string) string {
	s, _ := m[key].(string)
	return s
}

// Bool returns the boolean stored under key, or def if absent.
func (m Metadata) Bool(key string, def bool) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return def
}

// Float returns the number stored under key. Integers are converted, so
// values decoded from JSON and values set in code read the same.
func (m Metadata) Float(key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Floats returns the numbers stored under keys, and false if any is missing.
func (m Metadata) Floats(keys ...string) ([]float64, bool) {
	out := make([]float64, len(keys))
	for i, k := range keys {
		v, ok := m.Float(k)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
