package intergeo

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/intergeo/pkg/board"
)

// Style is the stroke and fill applied to points created as a side effect
// of constraints.
type Style struct {
	StrokeColor string `json:"stroke" toml:"stroke"`
	FillColor   string `json:"fill" toml:"fill"`
}

// DefaultDependentStyle is the style used when Options.Dependent is empty.
var DefaultDependentStyle = Style{StrokeColor: "blue", FillColor: "blue"}

// Attributes returns the style as engine attributes.
func (s Style) Attributes() board.Attributes {
	return board.Attributes{
		board.AttrStrokeColor: s.StrokeColor,
		board.AttrFillColor:   s.FillColor,
	}
}

// Options configures a Reader.
type Options struct {
	// Dependent styles dependent points. Zero means DefaultDependentStyle.
	Dependent Style
	// Logger receives diagnostics and debug tracing. Nil means log.Default().
	Logger *log.Logger
}

// Reader imports documents into an engine.
type Reader struct {
	engine board.Engine
	opts   Options
}

// NewReader creates a reader that materializes documents in engine.
func NewReader(engine board.Engine, opts Options) *Reader {
	if opts.Dependent == (Style{}) {
		opts.Dependent = DefaultDependentStyle
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Reader{engine: engine, opts: opts}
}

// Construction is the outcome of one import.
type Construction struct {
	Engine      board.Engine
	Store       *Store
	Diagnostics *Diagnostics
	// Applied counts the constraints that were applied.
	Applied int
}

// Realized returns the engine elements registered in the store, in store
// order.
func (c *Construction) Realized() []board.Element {
	var out []board.Element
	for _, id := range c.Store.IDs() {
		if e, _ := c.Store.Get(id); e.Exists() {
			out = append(out, e.Handle)
		}
	}
	return out
}

// updater is implemented by engines that recompute and record traces on
// demand, such as *board.Board.
type updater interface {
	Update()
}

// Read imports doc. A non-nil error is always returned together with the
// partial construction built before the failure.
func (r *Reader) Read(doc *Document) (*Construction, error) {
	im := &importer{
		engine:    r.engine,
		store:     NewStore(),
		diags:     newDiagnostics(r.opts.Logger),
		dependent: r.opts.Dependent.Attributes(),
		logger:    r.opts.Logger,
	}
	c := &Construction{Engine: r.engine, Store: im.store, Diagnostics: im.diags}

	im.ingest(doc.Elements)
	r.update()

	if doc.Constraints != nil {
		err := im.dispatch(doc.Constraints)
		c.Applied = im.applied
		if err != nil {
			e := asError(err)
			im.diags.report(e)
			return c, e
		}
	}
	r.update()
	return c, nil
}

func (r *Reader) update() {
	if u, ok := r.engine.(updater); ok {
		u.Update()
	}
}

// importer holds the state of one Read call.
type importer struct {
	engine    board.Engine
	store     *Store
	diags     *Diagnostics
	dependent board.Attributes
	logger    *log.Logger
	applied   int
}
