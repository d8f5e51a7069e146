package normalization

import (
	"testing"
)

type shade string

const (
	shadeLight shade = "light"
	shadeDark  shade = "dark"
	shadeMixed shade = "mixed-tone"
)

func TestNormalizer_Basic(t *testing.T) {
	normalizer := NewNormalizer(map[string]shade{
		"light": shadeLight,
		"dark":  shadeDark,
	}, shadeLight)

	tests := []struct {
		name     string
		input    string
		expected shade
	}{
		{"exact match", "dark", shadeDark},
		{"case insensitive", "DARK", shadeDark},
		{"with spaces", "  dark  ", shadeDark},
		{"invalid input", "purple", shadeLight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizer.Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizer_WithError(t *testing.T) {
	normalizer := NewNormalizer(map[string]shade{"light": shadeLight, "dark": shadeDark}, shadeLight)

	if _, err := normalizer.NormalizeWithError("dark"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := normalizer.NormalizeWithError("purple"); err == nil {
		t.Fatal("expected error for unknown value")
	}
	if keys := normalizer.ValidKeys(); len(keys) != 2 || keys[0] != "dark" {
		t.Errorf("expected sorted keys, got %v", keys)
	}
}

func TestCompactNormalizer(t *testing.T) {
	normalizer := WithCustomNormalizer(map[string]shade{"Mixed Tone": shadeMixed}, shadeLight, Compact)

	for _, raw := range []string{"mixed tone", "Mixed-Tone", "MIXED_TONE", "mixedtone"} {
		v, ok := normalizer.Lookup(raw)
		if !ok || v != shadeMixed {
			t.Errorf("Lookup(%q) = %v, %v", raw, v, ok)
		}
	}
	if _, ok := normalizer.Lookup("tone"); ok {
		t.Error("expected unknown key to be reported")
	}
}
