package services

import (
	"fmt"
	"regexp"
	"strings"

	"questgen-backend/internal/models"
)

// BlockKind tags one styled unit of composed output.
type BlockKind string

const (
	BlockTitle      BlockKind = "title"
	BlockHeading    BlockKind = "heading"
	BlockSubheading BlockKind = "subheading"
	BlockBody       BlockKind = "body"
	BlockBullet     BlockKind = "bullet"
	BlockKeyPoint   BlockKind = "keypoint"
	BlockFormula    BlockKind = "formula"
	BlockTip        BlockKind = "tip"
	BlockQuestion   BlockKind = "question"
	BlockAnswer     BlockKind = "answer"
	BlockStepLabel  BlockKind = "steplabel"
	BlockStep       BlockKind = "step"
	BlockSpacer     BlockKind = "spacer"
	BlockPageBreak  BlockKind = "pagebreak"
)

// Block is one unit of the composed document, consumed by the renderer.
// It is transient; block sequences are rebuilt per render request.
type Block struct {
	Kind   BlockKind
	Text   string
	Indent int
}

// lineRule is one ordered classification rule: the first matching
// predicate decides the block. Rules run over an entity-escaped line.
type lineRule struct {
	kind  BlockKind
	match func(string) bool
	text  func(string) string
}

var lineRules = []lineRule{
	{BlockHeading,
		func(l string) bool { return strings.HasPrefix(l, "## ") },
		func(l string) string { return strings.TrimSpace(l[3:]) }},
	{BlockSubheading,
		func(l string) bool { return strings.HasPrefix(l, "### ") },
		func(l string) string { return strings.TrimSpace(l[4:]) }},
	{BlockKeyPoint,
		func(l string) bool {
			return strings.Contains(strings.ToUpper(l), "KEY POINT") || strings.HasPrefix(l, "**")
		},
		func(l string) string { return strings.TrimSpace(strings.ReplaceAll(l, "**", "")) }},
	{BlockFormula,
		func(l string) bool { return strings.Contains(strings.ToUpper(l), "FORMULA") },
		func(l string) string { return l }},
	{BlockTip,
		func(l string) bool { return strings.Contains(strings.ToUpper(l), "TIP") },
		func(l string) string { return l }},
	{BlockBullet,
		func(l string) bool {
			return strings.HasPrefix(l, "*") || strings.HasPrefix(l, "-")
		},
		func(l string) string {
			// An escaped arrow bullet becomes a literal arrow token.
			if strings.HasPrefix(l, "-&gt;") {
				return "-> " + strings.TrimSpace(l[5:])
			}
			return l
		}},
	{BlockBullet,
		func(l string) bool {
			return len(l) >= 2 && l[0] >= '1' && l[0] <= '9' && l[1] == '.'
		},
		func(l string) string { return l }},
}

// Anything outside basic Latin plus the Latin-1/Extended-A accent range
// (residual emoji and pictographs) is stripped before classification.
var nonRenderablePattern = regexp.MustCompile(`[^\x00-\x7F\x{00C0}-\x{017F}]+`)

var entityEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
var entityUnescaper = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">")

// classifyLine maps one trimmed, non-blank line onto exactly one block.
// Returns false when the line escapes down to nothing renderable.
func classifyLine(line string) (Block, bool) {
	line = entityEscaper.Replace(strings.TrimSpace(line))
	line = strings.TrimSpace(nonRenderablePattern.ReplaceAllString(line, ""))
	if line == "" {
		return Block{}, false
	}

	for _, rule := range lineRules {
		if rule.match(line) {
			return Block{
				Kind:   rule.kind,
				Text:   entityUnescaper.Replace(rule.text(line)),
				Indent: indentForKind(rule.kind),
			}, true
		}
	}
	return Block{Kind: BlockBody, Text: entityUnescaper.Replace(line)}, true
}

func indentForKind(kind BlockKind) int {
	switch kind {
	case BlockBullet, BlockKeyPoint, BlockFormula, BlockTip:
		return 1
	}
	return 0
}

// questionsPerPage controls page-break density by question kind. Kinds
// whose answers run long get more frequent breaks.
func questionsPerPage(kind string) int {
	switch kind {
	case models.KindMCQ, models.KindTF, models.KindNumerical:
		return 2
	case models.KindLong:
		return 3
	default:
		return 4
	}
}

// ComposeQuestions builds the block sequence for a question paper. Block
// order mirrors the record order exactly; a page break is inserted per
// the kind's density and never after the final question.
func ComposeQuestions(questions []*models.Question, topic string, includeAnswers bool) []Block {
	label := "Questions Only"
	if includeAnswers {
		label = "Questions & Answers"
	}

	blocks := []Block{
		{Kind: BlockTitle, Text: fmt.Sprintf("%s - %s", topic, label)},
		{Kind: BlockSpacer},
	}

	for i, q := range questions {
		n := i + 1

		text := SanitizeForPDF(q.Text)
		if q.QuestionType == models.KindNumerical {
			text += " [Numerical]"
		}
		blocks = append(blocks, Block{Kind: BlockQuestion, Text: fmt.Sprintf("%d. %s", n, text)})

		if includeAnswers && q.Answer != nil && *q.Answer != "" {
			blocks = append(blocks, Block{
				Kind:   BlockAnswer,
				Text:   "Answer: " + SanitizeForPDF(*q.Answer),
				Indent: 1,
			})
		}

		if q.Explanation != nil && *q.Explanation != "" {
			blocks = append(blocks, expandExplanation(*q.Explanation)...)
		}

		blocks = append(blocks, Block{Kind: BlockSpacer})

		if density := questionsPerPage(q.QuestionType); n%density == 0 && n < len(questions) {
			blocks = append(blocks, Block{Kind: BlockPageBreak})
		}
	}

	return blocks
}

// expandExplanation splits a step-by-step solution on its "Step " markers
// into separate step blocks under a shared label.
func expandExplanation(explanation string) []Block {
	blocks := []Block{{Kind: BlockStepLabel, Text: "Step-by-Step Solution:", Indent: 1}}

	marked := strings.ReplaceAll(SanitizeForPDF(explanation), "Step ", "\nStep ")
	for _, step := range strings.Split(strings.TrimSpace(marked), "\n") {
		step = strings.TrimSpace(step)
		if step == "" {
			continue
		}
		blocks = append(blocks, Block{Kind: BlockStep, Text: step, Indent: 2})
	}

	return blocks
}

// ComposeNotes builds the block sequence for a short-notes document. Each
// non-blank line is classified in input order; pagination is left to
// natural overflow, no density rule applies.
func ComposeNotes(notes, title string) []Block {
	blocks := []Block{
		{Kind: BlockTitle, Text: "Short Notes: " + title},
		{Kind: BlockSpacer},
	}

	for _, line := range strings.Split(SanitizeForPDF(notes), "\n") {
		if strings.TrimSpace(line) == "" {
			blocks = append(blocks, Block{Kind: BlockSpacer})
			continue
		}
		if b, ok := classifyLine(line); ok {
			blocks = append(blocks, b)
		}
	}

	return blocks
}
