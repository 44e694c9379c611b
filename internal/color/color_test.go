package color

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/lucasb-eyer/go-colorful"
)

func TestHSVToRGB(t *testing.T) {
	tests := []struct {
		name    string
		h, s, v float64
		want    RGB
	}{
		{"red", 0, 1, 1, RGB{255, 0, 0}},
		{"green", 120, 1, 1, RGB{0, 255, 0}},
		{"blue", 240, 1, 1, RGB{0, 0, 255}},
		{"hue 360 wraps to red", 360, 1, 1, RGB{255, 0, 0}},
		{"negative hue wraps", -120, 1, 1, RGB{0, 0, 255}},
		{"magenta", 300, 1, 1, RGB{255, 0, 255}},
		{"mid gray rounds half up", 0, 0, 0.5, RGB{128, 128, 128}},
		{"black", 200, 1, 0, RGB{0, 0, 0}},
		{"white", 0, 0, 1, RGB{255, 255, 255}},
		{"out of range clamps", 0, 2, 2, RGB{255, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HSVToRGB(tt.h, tt.s, tt.v); got != tt.want {
				t.Errorf("HSVToRGB(%v, %v, %v) = %v, want %v", tt.h, tt.s, tt.v, got, tt.want)
			}
		})
	}
}

func TestRGBToHSV(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    HSV
	}{
		{"red", 255, 0, 0, HSV{0, 1, 1}},
		{"blue", 0, 0, 255, HSV{240, 1, 1}},
		{"magenta", 255, 0, 255, HSV{300, 1, 1}},
		{"yellow", 255, 255, 0, HSV{60, 1, 1}},
		{"gray forces hue 0", 128, 128, 128, HSV{0, 0, 128.0 / 255}},
		{"black", 0, 0, 0, HSV{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RGBToHSV(tt.r, tt.g, tt.b)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("RGBToHSV(%d, %d, %d) mismatch (-want +got):\n%s", tt.r, tt.g, tt.b, diff)
			}
		})
	}
}

func TestRGBToHSL(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    HSL
	}{
		{"red", 255, 0, 0, HSL{0, 1, 0.5}},
		{"dark teal", 0, 128, 128, HSL{180, 1, 128.0 / 510}},
		{"light pink", 255, 192, 203, HSL{360 - 660.0/63, 1, 447.0 / 510}},
		{"gray", 128, 128, 128, HSL{0, 0, 128.0 / 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RGBToHSL(tt.r, tt.g, tt.b)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-3)); diff != "" {
				t.Errorf("RGBToHSL(%d, %d, %d) mismatch (-want +got):\n%s", tt.r, tt.g, tt.b, diff)
			}
		})
	}
}

func TestHSLToRGB(t *testing.T) {
	tests := []struct {
		name    string
		h, s, l float64
		want    RGB
	}{
		{"red", 0, 1, 0.5, RGB{255, 0, 0}},
		{"lime", 120, 1, 0.5, RGB{0, 255, 0}},
		{"navy-ish", 240, 1, 0.25, RGB{0, 0, 128}},
		{"achromatic", 77, 0, 0.5, RGB{128, 128, 128}},
		{"white", 0, 0, 1, RGB{255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HSLToRGB(tt.h, tt.s, tt.l); got != tt.want {
				t.Errorf("HSLToRGB(%v, %v, %v) = %v, want %v", tt.h, tt.s, tt.l, got, tt.want)
			}
		})
	}
}

func TestHSLToHSV(t *testing.T) {
	tests := []struct {
		name string
		in   HSL
		want HSV
	}{
		{"pure red", HSL{0, 1, 0.5}, HSV{0, 1, 1}},
		{"black", HSL{30, 1, 0}, HSV{0, 0, 0}},
		{"white", HSL{30, 1, 1}, HSV{0, 0, 1}},
		{"half", HSL{200, 0.5, 0.5}, HSV{200, 2.0 / 3.0, 0.75}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HSLToHSV(tt.in.H, tt.in.S, tt.in.L)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("HSLToHSV(%v) mismatch (-want +got):\n%s", tt.in, diff)
			}
			back := HSVToHSL(got.H, got.S, got.V)
			if tt.in.L > 0 && tt.in.L < 1 {
				if diff := cmp.Diff(tt.in, back, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
					t.Errorf("HSVToHSL(HSLToHSV(%v)) mismatch (-want +got):\n%s", tt.in, diff)
				}
			}
		})
	}
}

func TestCMYK(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		cmyk CMYK
	}{
		{"black", RGB{0, 0, 0}, CMYK{0, 0, 0, 100}},
		{"white", RGB{255, 255, 255}, CMYK{0, 0, 0, 0}},
		{"red", RGB{255, 0, 0}, CMYK{0, 100, 100, 0}},
		{"cyan", RGB{0, 255, 255}, CMYK{100, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGBToCMYK(tt.rgb); got != tt.cmyk {
				t.Errorf("RGBToCMYK(%v) = %v, want %v", tt.rgb, got, tt.cmyk)
			}
			if got := CMYKToRGB(tt.cmyk); got != tt.rgb {
				t.Errorf("CMYKToRGB(%v) = %v, want %v", tt.cmyk, got, tt.rgb)
			}
		})
	}
}

func TestCMYKToRGBClamps(t *testing.T) {
	if got, want := CMYKToRGB(CMYK{-20, 0, 0, 150}), (RGB{0, 0, 0}); got != want {
		t.Errorf("CMYKToRGB(out of range) = %v, want %v", got, want)
	}
}

// within1 reports whether every channel of a and b differs by at most one.
func within1(a, b RGB) bool {
	d := func(x, y uint8) bool { return x-y <= 1 || y-x <= 1 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B)
}

func TestRoundTripAllRGB(t *testing.T) {
	step := 1
	if testing.Short() {
		step = 7
	}

	for r := 0; r < 256; r += step {
		for g := 0; g < 256; g += step {
			for b := 0; b < 256; b += step {
				in := RGB{uint8(r), uint8(g), uint8(b)}

				hsv := RGBToHSV(in.R, in.G, in.B)
				if got := HSVToRGB(hsv.H, hsv.S, hsv.V); !within1(in, got) {
					t.Fatalf("HSV round trip of %v = %v", in, got)
				}

				hsl := RGBToHSL(in.R, in.G, in.B)
				if got := HSLToRGB(hsl.H, hsl.S, hsl.L); !within1(in, got) {
					t.Fatalf("HSL round trip of %v = %v", in, got)
				}
			}
		}
	}
}

func TestConversionsAgreeWithColorful(t *testing.T) {
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 51 {
			for b := 0; b < 256; b += 15 {
				oracle := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}

				wh, ws, wv := oracle.Hsv()
				got := RGBToHSV(uint8(r), uint8(g), uint8(b))
				if math.Abs(got.H-wh) > 1e-9 || math.Abs(got.S-ws) > 1e-9 || math.Abs(got.V-wv) > 1e-9 {
					t.Errorf("RGBToHSV(%d, %d, %d) = %v, colorful says (%v, %v, %v)", r, g, b, got, wh, ws, wv)
				}

				hh, hs, hl := oracle.Hsl()
				wr, wg, wb := colorful.Hsl(hh, hs, hl).RGB255()
				if got := HSLToRGB(hh, hs, hl); !within1(got, RGB{wr, wg, wb}) {
					t.Errorf("HSLToRGB(%v, %v, %v) = %v, colorful says (%d, %d, %d)", hh, hs, hl, got, wr, wg, wb)
				}
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Color
		want Color
	}{
		{"hue 360 becomes 0", Color{360, 0.5, 0.5, 1}, Color{0, 0.5, 0.5, 1}},
		{"hue 725 wraps", Color{725, 0.5, 0.5, 1}, Color{5, 0.5, 0.5, 1}},
		{"negative hue wraps", Color{-90, 0.5, 0.5, 1}, Color{270, 0.5, 0.5, 1}},
		{"channels clamp", Color{10, 1.5, -1, 2}, Color{10, 1, 0, 1}},
		{"NaN becomes zero", Color{math.NaN(), math.NaN(), 0.5, math.NaN()}, Color{0, 0, 0.5, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.in.Normalize()); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromRGBAndBack(t *testing.T) {
	in := RGB{235, 111, 146}
	c := FromRGB(in, 0.25)
	if got := c.RGB(); got != in {
		t.Errorf("FromRGB(%v).RGB() = %v", in, got)
	}
	if c.A != 0.25 {
		t.Errorf("alpha = %v, want 0.25", c.A)
	}
	if c.Opaque() {
		t.Error("Opaque() = true for alpha 0.25")
	}
}

func TestFromCMYK(t *testing.T) {
	c := FromCMYK(CMYK{0, 0, 0, 100})
	if got := c.RGB(); got != (RGB{}) {
		t.Errorf("FromCMYK(black).RGB() = %v", got)
	}
	if c.A != 1 {
		t.Errorf("FromCMYK alpha = %v, want 1", c.A)
	}
}

func TestHexToRGBA(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGB
		alpha   float64
		wantErr bool
	}{
		{"six digits", "#ff0000", RGB{255, 0, 0}, 1, false},
		{"without hash", "eb6f92", RGB{235, 111, 146}, 1, false},
		{"uppercase", "#AABBCC", RGB{170, 187, 204}, 1, false},
		{"three digits", "#f00", RGB{255, 0, 0}, 1, false},
		{"four digits", "#f008", RGB{255, 0, 0}, 0.53, false},
		{"eight digits", "#ff000080", RGB{255, 0, 0}, 0.5, false},
		{"transparent", "#00000000", RGB{0, 0, 0}, 0, false},
		{"invalid chars", "#zzzzzz", RGB{}, 0, true},
		{"five digits", "#12345", RGB{}, 0, true},
		{"seven digits", "#1234567", RGB{}, 0, true},
		{"empty", "", RGB{}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, a, err := HexToRGBA(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("HexToRGBA(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidHex) {
					t.Errorf("HexToRGBA(%q) error = %v, want ErrInvalidHex", tt.input, err)
				}
				return
			}
			if got != tt.want || a != tt.alpha {
				t.Errorf("HexToRGBA(%q) = %v, %v, want %v, %v", tt.input, got, a, tt.want, tt.alpha)
			}
		})
	}
}

func TestRGBToHex(t *testing.T) {
	tests := []struct {
		name  string
		rgb   RGB
		alpha float64
		want  string
	}{
		{"opaque", RGB{255, 0, 0}, 1, "#ff0000"},
		{"zero padding", RGB{0, 5, 10}, 1, "#00050a"},
		{"half alpha", RGB{255, 0, 0}, 0.5, "#ff000080"},
		{"fully transparent", RGB{255, 0, 0}, 0, "#ff000000"},
		{"alpha rounding to 1 drops pair", RGB{1, 2, 3}, 0.999, "#010203"},
		{"alpha above 1 clamps", RGB{1, 2, 3}, 3, "#010203"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGBToHex(tt.rgb, tt.alpha); got != tt.want {
				t.Errorf("RGBToHex(%v, %v) = %q, want %q", tt.rgb, tt.alpha, got, tt.want)
			}
		})
	}
}

func TestFormats(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		want  Formats
	}{
		{
			name:  "translucent red",
			color: FromRGB(RGB{255, 0, 0}, 0.5),
			want: Formats{
				Hex:  "#ff000080",
				RGB:  "rgb(255, 0, 0)",
				RGBA: "rgba(255, 0, 0, 0.5)",
				HSL:  "hsl(0, 100%, 50%)",
				HSLA: "hsla(0, 100%, 50%, 0.5)",
				HSV:  "0, 100, 100",
				CMYK: "0, 100, 100, 0",
			},
		},
		{
			name:  "opaque white",
			color: White,
			want: Formats{
				Hex:  "#ffffff",
				RGB:  "rgb(255, 255, 255)",
				RGBA: "rgba(255, 255, 255, 1)",
				HSL:  "hsl(0, 0%, 100%)",
				HSLA: "hsla(0, 0%, 100%, 1)",
				HSV:  "0, 0, 100",
				CMYK: "0, 0, 0, 0",
			},
		},
		{
			name:  "black with alpha rounding",
			color: Color{H: 0, S: 0, V: 0, A: 0.333},
			want: Formats{
				Hex:  "#00000054",
				RGB:  "rgb(0, 0, 0)",
				RGBA: "rgba(0, 0, 0, 0.33)",
				HSL:  "hsl(0, 0%, 0%)",
				HSLA: "hsla(0, 0%, 0%, 0.33)",
				HSV:  "0, 0, 0",
				CMYK: "0, 0, 0, 100",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.color.Formats()); diff != "" {
				t.Errorf("Formats() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatsCSS(t *testing.T) {
	hex, rgb, hsl := FromRGB(RGB{255, 0, 0}, 1).Formats().CSS()
	if hex != "#ff0000" || rgb != "rgb(255, 0, 0)" || hsl != "hsl(0, 100%, 50%)" {
		t.Errorf("CSS() opaque = %q, %q, %q", hex, rgb, hsl)
	}

	hex, rgb, hsl = FromRGB(RGB{255, 0, 0}, 0.5).Formats().CSS()
	if hex != "#ff000080" || rgb != "rgba(255, 0, 0, 0.5)" || hsl != "hsla(0, 100%, 50%, 0.5)" {
		t.Errorf("CSS() translucent = %q, %q, %q", hex, rgb, hsl)
	}
}

func TestFormatAlpha(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1"},
		{0, "0"},
		{0.5, "0.5"},
		{0.125, "0.13"},
		{0.996, "1"},
		{-1, "0"},
	}
	for _, tt := range tests {
		if got := FormatAlpha(tt.in); got != tt.want {
			t.Errorf("FormatAlpha(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBrightenDarken(t *testing.T) {
	blue := Color{H: 240, S: 1, V: 1, A: 0.5}

	tests := []struct {
		name string
		got  Color
		want RGB
	}{
		{"brighten red", Brighten(Color{S: 1, V: 1, A: 1}, 0.1), RGB{255, 51, 51}},
		{"darken red", Darken(Color{S: 1, V: 1, A: 1}, 0.25), RGB{128, 0, 0}},
		{"brighten clamps to white", Brighten(blue, 1), RGB{255, 255, 255}},
		{"darken clamps to black", Darken(blue, 2), RGB{0, 0, 0}},
		{"zero is identity", Brighten(blue, 0), RGB{0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.got.RGB(); got != tt.want {
				t.Errorf("RGB() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("keeps alpha and hue", func(t *testing.T) {
		got := Brighten(blue, 1)
		if got.A != 0.5 {
			t.Errorf("alpha = %v, want 0.5", got.A)
		}
		if got.H != 240 {
			t.Errorf("hue = %v, want 240", got.H)
		}
	})
}
