// Package parser turns user-typed color text into canonical picker colors.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/jsvensson/colorpicker/internal/color"
)

var (
	// ErrSyntax means the input matched none of the recognized grammars.
	ErrSyntax = errors.New("unrecognized color syntax")
	// ErrRange means a channel parsed but lies outside its valid range.
	ErrRange = errors.New("channel out of range")
	// ErrUnknownName means neither the name table nor the resolver knew the input.
	ErrUnknownName = errors.New("unknown color name")
)

// ParseError describes why an input could not be turned into a color.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing color %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	rgbaPattern = regexp.MustCompile(`(?i)^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*(0|1|0?\.\d+)\s*)?\)$`)
	hslaPattern = regexp.MustCompile(`(?i)^hsla?\(\s*(\d+)\s*,\s*(\d+)%\s*,\s*(\d+)%\s*(?:,\s*(0|1|0?\.\d+))?\s*\)$`)
	// funcPattern is any functional notation, checked for ranges when the
	// strict grammars above reject it.
	funcPattern = regexp.MustCompile(`(?i)^(rgba?|rbga|hsla?)\((.*)\)$`)
)

// Parser recognizes hex, rgb(a), hsl(a) and named colors. The zero value is
// not usable; construct one with New.
type Parser struct {
	names    NameTable
	resolver Resolver
}

// Option configures a Parser.
type Option func(*Parser)

// WithNames replaces the named-color table.
func WithNames(t NameTable) Option {
	return func(p *Parser) { p.names = t }
}

// WithResolver replaces the fallback resolver consulted when the name table
// misses. Passing nil disables the fallback.
func WithResolver(r Resolver) Option {
	return func(p *Parser) { p.resolver = r }
}

// New returns a Parser backed by the CSS named colors and a CSS color
// resolver.
func New(opts ...Option) *Parser {
	p := &Parser{
		names:    CSSNames{},
		resolver: CSSResolver{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse auto-detects the format of s and returns the canonical color.
// Inputs without alpha are opaque.
func (p *Parser) Parse(s string) (color.Color, error) {
	c, err := p.parse(strings.TrimSpace(s), true)
	if err != nil {
		return color.Color{}, &ParseError{Input: s, Err: err}
	}
	return c, nil
}

func (p *Parser) parse(s string, resolve bool) (color.Color, error) {
	if s == "" {
		return color.Color{}, ErrSyntax
	}

	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}

	commas := strings.Contains(s, ",")
	if commas {
		if m := rgbaPattern.FindStringSubmatch(s); m != nil {
			return rgbaFromMatch(m)
		}
		if m := hslaPattern.FindStringSubmatch(s); m != nil {
			return hslaFromMatch(m)
		}
		if len(s) >= 4 && strings.EqualFold(s[:4], "rbga") {
			if m := rgbaPattern.FindStringSubmatch("rgba" + s[4:]); m != nil {
				return rgbaFromMatch(m)
			}
		}
	}

	// Comma lists never reach the name table or the resolver, which would
	// clamp out-of-range channels instead of rejecting them. Space-separated
	// CSS syntax is left to the resolver once its channels are in range.
	if m := funcPattern.FindStringSubmatch(s); m != nil {
		if err := checkChannels(m[1], m[2]); err != nil {
			return color.Color{}, err
		}
	}
	if commas {
		return color.Color{}, ErrSyntax
	}

	if p.names != nil {
		if hex, ok := p.names.Lookup(s); ok {
			return parseHex(hex)
		}
	}

	if resolve && p.resolver != nil {
		if resolved := p.resolver.Resolve(s); resolved != s {
			return p.parse(resolved, false)
		}
	}

	if strings.Contains(s, "(") || strings.Contains(s, ",") {
		return color.Color{}, ErrSyntax
	}
	return color.Color{}, ErrUnknownName
}

func parseHex(s string) (color.Color, error) {
	rgb, a, err := color.HexToRGBA(s)
	if err != nil {
		return color.Color{}, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return color.FromRGB(rgb, a), nil
}

func rgbaFromMatch(m []string) (color.Color, error) {
	var ch [3]uint8
	for i := range ch {
		n, _ := strconv.Atoi(m[i+1])
		if n > 255 {
			return color.Color{}, fmt.Errorf("%w: %s channel %d exceeds 255", ErrRange, "rgb"[i:i+1], n)
		}
		ch[i] = uint8(n)
	}
	a, err := parseAlpha(m[4])
	if err != nil {
		return color.Color{}, err
	}
	return color.FromRGB(color.RGB{R: ch[0], G: ch[1], B: ch[2]}, a), nil
}

func hslaFromMatch(m []string) (color.Color, error) {
	h, _ := strconv.Atoi(m[1])
	s, _ := strconv.Atoi(m[2])
	l, _ := strconv.Atoi(m[3])
	if h >= 360 {
		return color.Color{}, fmt.Errorf("%w: hue %d must be below 360", ErrRange, h)
	}
	if s > 100 || l > 100 {
		return color.Color{}, fmt.Errorf("%w: saturation and lightness must be at most 100%%", ErrRange)
	}
	a, err := parseAlpha(m[4])
	if err != nil {
		return color.Color{}, err
	}
	return color.FromHSL(color.HSL{H: float64(h), S: float64(s) / 100, L: float64(l) / 100}, a), nil
}

// parseAlpha parses an optional alpha component; empty means opaque.
func parseAlpha(s string) (float64, error) {
	if s == "" {
		return 1, nil
	}
	a, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: alpha %q", ErrSyntax, s)
	}
	if a < 0 || a > 1 {
		return 0, fmt.Errorf("%w: alpha %v must be within [0, 1]", ErrRange, a)
	}
	return a, nil
}

// checkChannels reads the arguments of a functional notation the strict
// grammars rejected. A numeric channel outside its range is ErrRange;
// anything unreadable is ErrSyntax.
func checkChannels(name, args string) error {
	fields := strings.FieldsFunc(args, func(r rune) bool {
		return r == ',' || r == '/' || unicode.IsSpace(r)
	})
	if len(fields) < 3 || len(fields) > 4 {
		return fmt.Errorf("%w: %s takes 3 or 4 channels, got %d", ErrSyntax, name, len(fields))
	}

	hsl := strings.HasPrefix(strings.ToLower(name), "hsl")
	for i, f := range fields {
		pct := strings.HasSuffix(f, "%")
		v, err := strconv.ParseFloat(strings.TrimSuffix(f, "%"), 64)
		if err != nil {
			return fmt.Errorf("%w: channel %q", ErrSyntax, f)
		}

		hi := 255.0
		switch {
		case pct:
			hi = 100
		case i == 3:
			hi = 1
		case hsl && i == 0:
			if v < 0 || v >= 360 {
				return fmt.Errorf("%w: hue %v must be within [0, 360)", ErrRange, v)
			}
			continue
		case hsl:
			hi = 100
		}
		if v < 0 || v > hi {
			return fmt.Errorf("%w: %s channel %d is %v, must be within [0, %v]", ErrRange, name, i+1, v, hi)
		}
	}
	return nil
}
