package canvas

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/gogpu/gg"

	"github.com/matzehuels/intergeo/pkg/dag"
)

// Options places the board on the image. Board coordinates are mapped to
// pixels as (OriginX + x·Unit, OriginY − y·Unit).
type Options struct {
	Width   int     `toml:"width" json:"width"`
	Height  int     `toml:"height" json:"height"`
	Unit    float64 `toml:"unit" json:"unit"`
	OriginX float64 `toml:"origin_x" json:"origin_x"`
	OriginY float64 `toml:"origin_y" json:"origin_y"`

	// ShowHidden also draws hidden helpers.
	ShowHidden bool `toml:"show_hidden" json:"show_hidden"`
}

// DefaultOptions returns an 800×600 board with 30 pixels per unit and the
// origin in the middle.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 600, Unit: 30, OriginX: 400, OriginY: 300}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Unit <= 0 {
		o.Unit = d.Unit
	}
	if o.OriginX == 0 && o.OriginY == 0 {
		o.OriginX, o.OriginY = float64(o.Width)/2, float64(o.Height)/2
	}
	return o
}

const (
	pointRadius = 3.0
	lineWidth   = 1.5
)

// Render draws every element of the construction graph whose geometry is
// known. Circles are drawn first, then lines, then points on top.
func Render(g *dag.DAG, opts Options) (image.Image, error) {
	dc, err := draw(g, opts)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

// RenderPNG renders the construction graph and encodes it as PNG.
func RenderPNG(g *dag.DAG, opts Options) ([]byte, error) {
	dc, err := draw(g, opts)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func draw(g *dag.DAG, opts Options) (*gg.Context, error) {
	opts = opts.withDefaults()
	dc := gg.NewContext(opts.Width, opts.Height)
	dc.ClearWithColor(gg.White)

	v := viewport{opts}
	var circles, lines, points []*dag.Node
	for _, n := range g.Nodes() {
		if !opts.ShowHidden && !n.Meta.Bool(dag.MetaVisible, true) {
			continue
		}
		switch {
		case hasAll(n.Meta, dag.MetaCX, dag.MetaCY, dag.MetaRadius):
			circles = append(circles, n)
		case hasAll(n.Meta, dag.MetaC, dag.MetaA, dag.MetaB):
			lines = append(lines, n)
		case hasAll(n.Meta, dag.MetaX, dag.MetaY):
			points = append(points, n)
		}
	}

	dc.SetLineWidth(lineWidth)
	for _, n := range circles {
		c, _ := n.Meta.Floats(dag.MetaCX, dag.MetaCY, dag.MetaRadius)
		x, y := v.screen(c[0], c[1])
		dc.SetColor(colorOf(n.Meta.String(dag.MetaStroke)))
		dc.DrawCircle(x, y, c[2]*opts.Unit)
		if err := dc.Stroke(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("circle %s: %w", n.ID, err)
		}
	}
	for _, n := range lines {
		x1, y1, x2, y2, ok := v.lineSpan(n.Meta)
		if !ok {
			continue
		}
		dc.SetColor(colorOf(n.Meta.String(dag.MetaStroke)))
		dc.DrawLine(x1, y1, x2, y2)
		if err := dc.Stroke(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("line %s: %w", n.ID, err)
		}
	}
	for _, n := range points {
		p, _ := n.Meta.Floats(dag.MetaX, dag.MetaY)
		x, y := v.screen(p[0], p[1])
		dc.SetColor(colorOf(n.Meta.String(dag.MetaFill)))
		dc.DrawPoint(x, y, pointRadius)
		if err := dc.Fill(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("point %s: %w", n.ID, err)
		}
	}

	return dc, nil
}

func hasAll(m dag.Metadata, keys ...string) bool {
	_, ok := m.Floats(keys...)
	return ok
}

var namedColors = map[string]gg.RGBA{
	"black":   gg.Black,
	"white":   gg.White,
	"red":     gg.Red,
	"green":   gg.Green,
	"blue":    gg.Blue,
	"yellow":  gg.Yellow,
	"cyan":    gg.Cyan,
	"magenta": gg.Magenta,
	"gray":    gg.RGB(0.5, 0.5, 0.5),
	"grey":    gg.RGB(0.5, 0.5, 0.5),
}

// colorOf resolves a color name or hex string. Unknown values are black.
func colorOf(s string) gg.RGBA {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c
	}
	if strings.HasPrefix(s, "#") {
		return gg.Hex(s)
	}
	return gg.Black
}

type viewport struct{ Options }

func (v viewport) screen(x, y float64) (float64, float64) {
	return v.OriginX + x*v.Unit, v.OriginY - y*v.Unit
}

// bounds returns the board rectangle visible on the image.
func (v viewport) bounds() (xmin, xmax, ymin, ymax float64) {
	xmin = -v.OriginX / v.Unit
	xmax = (float64(v.Width) - v.OriginX) / v.Unit
	ymax = v.OriginY / v.Unit
	ymin = -(float64(v.Height) - v.OriginY) / v.Unit
	return
}

// lineSpan returns the screen endpoints of a line, ray or segment.
func (v viewport) lineSpan(m dag.Metadata) (x1, y1, x2, y2 float64, ok bool) {
	first := m.Bool(dag.MetaStraightFirst, true)
	last := m.Bool(dag.MetaStraightLast, true)

	if pts, ok := m.Floats(dag.MetaX1, dag.MetaY1, dag.MetaX2, dag.MetaY2); ok && (!first || !last) {
		ax, ay, bx, by := pts[0], pts[1], pts[2], pts[3]
		dx, dy := bx-ax, by-ay
		if d := math.Hypot(dx, dy); d > 0 {
			xmin, xmax, ymin, ymax := v.bounds()
			far := (xmax - xmin + ymax - ymin) / d
			if first {
				ax, ay = ax-dx*far, ay-dy*far
			}
			if last {
				bx, by = bx+dx*far, by+dy*far
			}
		}
		x1, y1 = v.screen(ax, ay)
		x2, y2 = v.screen(bx, by)
		return x1, y1, x2, y2, true
	}

	std, _ := m.Floats(dag.MetaC, dag.MetaA, dag.MetaB)
	c, a, b := std[0], std[1], std[2]
	xmin, xmax, ymin, ymax := v.bounds()
	var wx1, wy1, wx2, wy2 float64
	switch {
	case math.Abs(b) >= math.Abs(a) && b != 0:
		wx1, wx2 = xmin, xmax
		wy1, wy2 = -(c+a*xmin)/b, -(c+a*xmax)/b
	case a != 0:
		wy1, wy2 = ymin, ymax
		wx1, wx2 = -(c+b*ymin)/a, -(c+b*ymax)/a
	default:
		return 0, 0, 0, 0, false
	}
	x1, y1 = v.screen(wx1, wy1)
	x2, y2 = v.screen(wx2, wy2)
	return x1, y1, x2, y2, true
}
