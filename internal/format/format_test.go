package format

import (
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "basic formatting",
			input:    `geometry{field_size=200}`,
			expected: `geometry { field_size = 200 }`,
		},
		{
			name: "already formatted stays same",
			input: `scheme = "rect"

geometry {
  field_size = 200
}
`,
			expected: `scheme = "rect"

geometry {
  field_size = 200
}
`,
		},
		{
			name:     "extra whitespace normalized",
			input:    `swatches   {   brand   =   "#eb6f92"   }`,
			expected: `swatches { brand = "#eb6f92" }`,
		},
		{
			name:     "empty content",
			input:    "",
			expected: "",
		},
		{
			name: "attributes aligned",
			input: `scheme = "polar"
opacity = true
initial = swatch.brand`,
			expected: `scheme  = "polar"
opacity = true
initial = swatch.brand`,
		},
		{
			name:     "multiple blank lines collapsed to one",
			input:    "scheme = \"rect\"\n\n\n\nswatches { brand = \"#191724\" }",
			expected: "scheme = \"rect\"\n\nswatches { brand = \"#191724\" }",
		},
		{
			name:     "single blank line preserved",
			input:    "scheme = \"rect\"\n\nswatches { brand = \"#191724\" }",
			expected: "scheme = \"rect\"\n\nswatches { brand = \"#191724\" }",
		},
		{
			name:     "blank lines after and before braces both removed",
			input:    "swatches {\n\n  base = \"#191724\"\n\n}",
			expected: "swatches {\n  base = \"#191724\"\n}",
		},
		{
			name:     "short hex expanded",
			input:    "swatches {\n  white = \"#FFF\"\n}\n",
			expected: "swatches {\n  white = \"#ffffff\"\n}\n",
		},
		{
			name:     "uppercase hex with alpha lowercased",
			input:    "initial = \"#EB6F9280\"\n",
			expected: "initial = \"#eb6f9280\"\n",
		},
		{
			name:     "short hex with alpha expanded",
			input:    "initial = \"#f008\"\n",
			expected: "initial = \"#ff000088\"\n",
		},
		{
			name: "non-hex values untouched",
			input: `swatches {
  plum = "rebeccapurple"
  sky  = rgb(135, 206, 235)
  bad  = "#GGG"
}
`,
			expected: `swatches {
  plum = "rebeccapurple"
  sky  = rgb(135, 206, 235)
  bad  = "#GGG"
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Format(tt.input)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			// Normalize line endings for comparison
			result = strings.TrimSuffix(result, "\n")
			expected := strings.TrimSuffix(tt.expected, "\n")

			if result != expected {
				t.Errorf("Format() = %q, want %q", result, expected)
			}
		})
	}
}

func TestFormatInvalidHCL(t *testing.T) {
	input := `swatches { brand = "#ABC"`
	got, err := Format(input)
	if err != nil {
		t.Errorf("Format() on incomplete HCL should not error, got: %v", err)
	}
	if !strings.Contains(got, `"#ABC"`) {
		t.Errorf("Format() rewrote hex in unparseable content: %q", got)
	}
}

func TestFormatIdempotent(t *testing.T) {
	input := "scheme=\"polar\"\nswatches {\n\n  a = \"#ABC\"\n  b=hsl(1,2,3)\n}\n"
	once, err := Format(input)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	twice, err := Format(once)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if once != twice {
		t.Errorf("Format() not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}
