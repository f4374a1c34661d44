package board

import "maps"

// Attribute keys recognized by the engine. Values are forwarded verbatim by
// the importer; the engine and the renderers interpret them.
const (
	AttrName          = "name"
	AttrID            = "id"
	AttrWithLabel     = "withLabel"
	AttrStrokeColor   = "strokeColor"
	AttrFillColor     = "fillColor"
	AttrVisible       = "visible"
	AttrTrace         = "trace"
	AttrStraightFirst = "straightFirst"
	AttrStraightLast  = "straightLast"
	AttrSlideObject   = "slideObject"
	AttrStyle         = "style"
)

// Attributes configures an element. For kinds that create several elements,
// AttrName and AttrID may hold a []string matched to the outputs by index.
type Attributes map[string]any

// Merge returns a new map holding a's entries overridden by other's.
func (a Attributes) Merge(other Attributes) Attributes {
	out := make(Attributes, len(a)+len(other))
	maps.Copy(out, a)
	maps.Copy(out, other)
	return out
}

// Bool returns the boolean stored under key, or def if absent.
func (a Attributes) Bool(key string, def bool) bool {
	if v, ok := a[key].(bool); ok {
		return v
	}
	return def
}

// String returns the string stored under key, or "" if absent.
func (a Attributes) String(key string) string {
	s, _ := a[key].(string)
	return s
}

// indexed returns the i-th entry of a []string value, or a plain string
// value for the first output.
func (a Attributes) indexed(key string, i int) string {
	switch v := a[key].(type) {
	case string:
		if i == 0 {
			return v
		}
	case []string:
		if i < len(v) {
			return v[i]
		}
	}
	return ""
}

// forOutput derives the attributes of the i-th output of a multi-output kind.
func (a Attributes) forOutput(i int) Attributes {
	out := a.Merge(nil)
	delete(out, AttrName)
	delete(out, AttrID)
	if n := a.indexed(AttrName, i); n != "" {
		out[AttrName] = n
	}
	if id := a.indexed(AttrID, i); id != "" {
		out[AttrID] = id
	}
	return out
}
