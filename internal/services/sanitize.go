package services

import "strings"

// pdfSanitizer maps Unicode math and symbol notation onto ASCII-safe
// equivalents the PDF core fonts can render. strings.Replacer scans the
// input once and picks the first matching pattern in argument order, so
// compound sequences (bra-kets containing a Greek letter) are listed
// before the bare glyph rules they would otherwise be corrupted by.
var pdfSanitizer = strings.NewReplacer(
	// Quantum bra-ket states before bare Greek letters and angle glyphs
	"|ψ⟩", "|psi>", "|φ⟩", "|phi>",
	"⟩", ">", "⟨", "<",
	"⊗", " (tensor) ", "⊕", " (xor) ",
	// Subscript digits to underscore notation
	"₀", "_0", "₁", "_1", "₂", "_2", "₃", "_3", "₄", "_4",
	"₅", "_5", "₆", "_6", "₇", "_7", "₈", "_8", "₉", "_9",
	// Superscript digits and signs
	"⁰", "^0", "¹", "^1", "²", "^2", "³", "^3", "⁴", "^4",
	"⁵", "^5", "⁶", "^6", "⁷", "^7", "⁸", "^8", "⁹", "^9",
	"⁺", "+", "⁻", "-",
	// Greek letters spelled out
	"ψ", "psi", "Ψ", "Psi",
	"φ", "phi", "Φ", "Phi",
	"α", "alpha", "β", "beta", "γ", "gamma", "δ", "delta",
	"ε", "epsilon", "θ", "theta", "λ", "lambda", "μ", "mu",
	"σ", "sigma", "ω", "omega", "π", "pi",
	// Calculus and operators
	"√", "sqrt", "∛", "cbrt",
	"∑", "Sum", "∫", "Int", "∂", "d",
	"∇", "nabla", "∞", "infinity",
	"≠", "!=", "≤", "<=", "≥", ">=", "≈", "~=", "≡", "==",
	"±", "+/-", "×", "x", "÷", "/",
	// Arrows
	"→", "->", "←", "<-", "↔", "<->", "⇒", "=>", "⇐", "<=", "⇔", "<=>",
	// Vulgar fractions
	"½", "1/2", "⅓", "1/3", "¼", "1/4", "⅔", "2/3", "¾", "3/4",
)

// SanitizeForPDF converts Unicode math symbols to PDF-safe text. Pure and
// idempotent; it never escapes XML/HTML characters, that is the
// composer's concern.
func SanitizeForPDF(text string) string {
	return pdfSanitizer.Replace(text)
}
