// Package geometry maps pointer positions on the picker canvas to color
// channels and back.
package geometry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidConfig is wrapped by every validation failure of a Config.
	ErrInvalidConfig = errors.New("invalid geometry")
	// ErrCanvasSize means a canvas is missing or does not match the layout.
	ErrCanvasSize = errors.New("canvas does not match layout")
)

// Error is a geometry failure: a config that cannot be laid out, or a canvas
// that does not fit the layout it is drawn with.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Scheme selects the shape of the saturation field.
type Scheme string

const (
	// SchemeRect is a square field: saturation on x, value on y, with a hue strip.
	SchemeRect Scheme = "rect"
	// SchemePolar is a disc: hue by angle, saturation by radius, with a value strip.
	SchemePolar Scheme = "polar"
)

// ParseScheme accepts "rect" or "polar", case-insensitively. Empty means rect.
func ParseScheme(s string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rect", "square":
		return SchemeRect, nil
	case "polar", "disc", "wheel":
		return SchemePolar, nil
	}
	return "", fmt.Errorf("%w: unknown scheme %q (valid: rect, polar)", ErrInvalidConfig, s)
}

// Config describes one picker widget. It is immutable once a Mapper has been
// built from it.
type Config struct {
	Scheme      Scheme
	Opacity     bool // show the opacity strip
	FieldSize   int
	SliderWidth int
	Padding     int
	PreviewSize int
}

// DefaultConfig returns the stock 200px rectangular picker with an opacity strip.
func DefaultConfig() Config {
	return Config{
		Scheme:      SchemeRect,
		Opacity:     true,
		FieldSize:   200,
		SliderWidth: 14,
		Padding:     10,
		PreviewSize: 50,
	}
}

// Validate reports the first problem that would make the layout degenerate.
func (c Config) Validate() error {
	var err error
	switch {
	case c.Scheme != SchemeRect && c.Scheme != SchemePolar:
		err = fmt.Errorf("%w: unknown scheme %q", ErrInvalidConfig, c.Scheme)
	case c.FieldSize < 2:
		err = fmt.Errorf("%w: field size %d must be at least 2", ErrInvalidConfig, c.FieldSize)
	case c.SliderWidth < 1:
		err = fmt.Errorf("%w: slider width %d must be positive", ErrInvalidConfig, c.SliderWidth)
	case c.Padding < 0:
		err = fmt.Errorf("%w: padding %d must not be negative", ErrInvalidConfig, c.Padding)
	case c.PreviewSize < 0:
		err = fmt.Errorf("%w: preview size %d must not be negative", ErrInvalidConfig, c.PreviewSize)
	}
	if err != nil {
		return &Error{Op: "validating geometry", Err: err}
	}
	return nil
}
