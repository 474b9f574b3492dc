package services

import (
	"strings"
	"testing"
)

func TestSanitizeForPDF(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain ascii untouched",
			input: "Solve 2x + 3 = 7 for x.",
			want:  "Solve 2x + 3 = 7 for x.",
		},
		{
			name:  "greek letters",
			input: "Let ψ and φ describe the states, with α + β = 1.",
			want:  "Let psi and phi describe the states, with alpha + beta = 1.",
		},
		{
			name:  "bra-ket wins over bare greek",
			input: "The state |ψ⟩ evolves while ψ alone stays a symbol.",
			want:  "The state |psi> evolves while psi alone stays a symbol.",
		},
		{
			name:  "subscripts and superscripts",
			input: "x₀ + x₁ = x² - x³",
			want:  "x_0 + x_1 = x^2 - x^3",
		},
		{
			name:  "tensor product",
			input: "|ψ⟩⊗|φ⟩",
			want:  "|psi> (tensor) |phi>",
		},
		{
			name:  "operators",
			input: "√2 × 3 ÷ 4 ≈ 1, ∑ over n, a ± b",
			want:  "sqrt2 x 3 / 4 ~= 1, Sum over n, a +/- b",
		},
		{
			name:  "arrows and comparisons",
			input: "A → B where x ≤ y and y ≥ z, x ≠ y",
			want:  "A -> B where x <= y and y >= z, x != y",
		},
		{
			name:  "fractions",
			input: "½ + ¼ = ¾",
			want:  "1/2 + 1/4 = 3/4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeForPDF(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeForPDF(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeForPDFIdempotent(t *testing.T) {
	inputs := []string{
		"The state |ψ⟩ ⊗ |φ⟩ with α² + β² = 1",
		"√x ≤ y → z ≥ ∑ terms",
		"already plain ascii text",
	}
	for _, in := range inputs {
		once := SanitizeForPDF(in)
		twice := SanitizeForPDF(once)
		if once != twice {
			t.Errorf("sanitize not idempotent for %q: first %q, second %q", in, once, twice)
		}
		if strings.ContainsAny(once, "ψφ⟩⟨⊗") {
			t.Errorf("sanitized output still contains special glyphs: %q", once)
		}
	}
}
