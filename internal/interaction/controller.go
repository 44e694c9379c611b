// Package interaction drives a picker from pointer and text input: it tracks
// which control is being dragged, commits color changes, redraws the canvas
// and notifies observers.
package interaction

import (
	"image"

	"github.com/jsvensson/colorpicker/internal/color"
	"github.com/jsvensson/colorpicker/internal/geometry"
	"github.com/jsvensson/colorpicker/internal/parser"
	"github.com/jsvensson/colorpicker/internal/render"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("colorpicker.interaction")

// Change is delivered to observers after every committed color change.
type Change struct {
	Hex     string
	RGB     color.RGB
	HSV     color.HSV
	Alpha   float64
	Formats color.Formats
}

// State is the complete mutable state of a controller.
type State struct {
	Color  color.Color
	Active geometry.Region
}

// Controller owns one picker instance. It is not safe for concurrent use;
// every call completes its redraw and notifications before returning.
type Controller struct {
	mapper  geometry.Mapper
	parser  *parser.Parser
	canvas  *image.NRGBA
	state   State
	formats color.Formats

	changeObservers []func(Change)
	errorObservers  []func(error)
}

// Option configures a Controller.
type Option func(*Controller)

// WithParser sets the parser used by SetText and SetTuple.
func WithParser(p *parser.Parser) Option {
	return func(c *Controller) { c.parser = p }
}

// WithCanvas draws into img instead of a canvas allocated from the layout.
func WithCanvas(img *image.NRGBA) Option {
	return func(c *Controller) { c.canvas = img }
}

// WithColor sets the starting color. The default is opaque white.
func WithColor(col color.Color) Option {
	return func(c *Controller) { c.state.Color = col.Normalize() }
}

// New returns a controller for the layout of m and draws the initial canvas.
// Construction does not notify observers.
func New(m geometry.Mapper, opts ...Option) *Controller {
	c := &Controller{
		mapper: m,
		state:  State{Color: color.White, Active: geometry.None},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.parser == nil {
		c.parser = parser.New()
	}
	if c.canvas == nil {
		c.canvas = render.NewCanvas(m.Layout())
	}
	c.redraw()
	c.formats = c.state.Color.Formats()
	return c
}

// OnColorChange registers fn to run after every committed change, after
// observers registered earlier.
func (c *Controller) OnColorChange(fn func(Change)) {
	c.changeObservers = append(c.changeObservers, fn)
}

// OnError registers fn to receive rejected text input.
func (c *Controller) OnError(fn func(error)) {
	c.errorObservers = append(c.errorObservers, fn)
}

// State returns a copy of the current state.
func (c *Controller) State() State { return c.state }

// Color returns the current color.
func (c *Controller) Color() color.Color { return c.state.Color }

// Formats returns the text fields for the current color.
func (c *Controller) Formats() color.Formats { return c.formats }

// Canvas returns the image the controller draws into.
func (c *Controller) Canvas() *image.NRGBA { return c.canvas }

// Mapper returns the geometry the controller was built with.
func (c *Controller) Mapper() geometry.Mapper { return c.mapper }

// SetCanvas replaces the drawing target and redraws it.
func (c *Controller) SetCanvas(img *image.NRGBA) {
	c.canvas = img
	c.redraw()
}

// PointerDown starts a drag on the control under (x, y) and applies it at
// once. Outside every control it does nothing.
func (c *Controller) PointerDown(x, y float64) {
	r := c.mapper.Classify(x, y)
	if r == geometry.None {
		return
	}
	log.Debugf("drag %s started at (%g, %g)", r, x, y)
	c.state.Active = r
	c.commit(c.mapper.Apply(r, x, y, c.state.Color))
}

// PointerMove continues the active drag wherever the pointer is; positions
// outside the control clamp to its edge. Without an active drag it does
// nothing.
func (c *Controller) PointerMove(x, y float64) {
	if c.state.Active == geometry.None {
		return
	}
	c.commit(c.mapper.Apply(c.state.Active, x, y, c.state.Color))
}

// PointerUp ends the active drag, wherever the pointer is.
func (c *Controller) PointerUp() {
	if c.state.Active != geometry.None {
		log.Debugf("drag %s ended", c.state.Active)
	}
	c.state.Active = geometry.None
}

// SetColor commits col.
func (c *Controller) SetColor(col color.Color) {
	c.commit(col)
}

// SetText parses free text and commits the result. On failure the current
// color is kept and the error goes to the error observers.
func (c *Controller) SetText(s string) error {
	col, err := c.parser.Parse(s)
	if err != nil {
		c.reject(err)
		return err
	}
	c.commit(col)
	return nil
}

// SetTuple parses the text of a field of known format. Tuples without an
// alpha component keep the current opacity.
func (c *Controller) SetTuple(f parser.Format, s string) error {
	col, err := c.parser.ParseTuple(f, s, c.state.Color.A)
	if err != nil {
		c.reject(err)
		return err
	}
	c.commit(col)
	return nil
}

// commit stores col, redraws, refreshes the text fields and notifies
// observers, in that order.
func (c *Controller) commit(col color.Color) {
	c.state.Color = col.Normalize()
	c.redraw()
	c.formats = c.state.Color.Formats()

	change := Change{
		Hex:     c.formats.Hex,
		RGB:     c.state.Color.RGB(),
		HSV:     c.state.Color.HSV(),
		Alpha:   color.RoundAlpha(c.state.Color.A),
		Formats: c.formats,
	}
	for _, fn := range c.changeObservers {
		fn(change)
	}
}

// redraw repaints the canvas. A canvas that does not fit the layout is
// logged and left alone.
func (c *Controller) redraw() {
	if err := render.Draw(c.canvas, c.mapper, c.state.Color); err != nil {
		log.Errorf("skipping redraw: %s", err)
	}
}

func (c *Controller) reject(err error) {
	log.Warningf("%s", err)
	for _, fn := range c.errorObservers {
		fn(err)
	}
}
