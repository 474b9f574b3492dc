package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"questgen-backend/internal/models"
)

type GeminiService struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	textLimit int
}

func NewGeminiService(apiKey, modelName string, textLimit int) (*GeminiService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.3)
	model.SetTopP(0.95)

	return &GeminiService{
		client:    client,
		model:     model,
		textLimit: textLimit,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// GenerateQuestions asks the model for a batch of questions over the
// extracted text. Exactly one call is made, plus at most one numeric
// top-up call for MIXED batches that under-deliver on numeric problems.
func (s *GeminiService) GenerateQuestions(ctx context.Context, text, difficulty string, count int, kind string) ([]models.QuestionItem, error) {
	source := truncateForPrompt(text, s.textLimit)
	prompt := buildQuestionPrompt(source, difficulty, count, kind)

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	items, err := parseQuestionItems(extractText(resp))
	if err != nil {
		log.Printf("ERROR: failed to parse question response: %v", err)
		return nil, ErrParseFailure
	}

	if kind == models.KindMixed {
		items = s.topUpNumeric(ctx, source, items, count)
	}

	if len(items) > count {
		items = items[:count]
	} else if len(items) < count {
		log.Printf("WARNING: model returned %d questions, fewer than requested %d", len(items), count)
	}

	for i := range items {
		items[i].Type = resolveKind(items[i].Type, kind)
		if items[i].Marks < 1 {
			items[i].Marks = 1
		}
	}

	return items, nil
}

// topUpNumeric enforces the mixed batch's numeric share: when fewer than
// half the requested count are numeric, one smaller follow-up request
// asks for numeric-only problems and appends up to the shortfall. Its
// own failures are logged and swallowed; the first batch still stands.
func (s *GeminiService) topUpNumeric(ctx context.Context, source string, items []models.QuestionItem, count int) []models.QuestionItem {
	numeric := 0
	for _, it := range items {
		if isNumericQuestion(it.Question) {
			numeric++
		}
	}

	need := numericTopUpNeed(count, numeric)
	if need == 0 {
		return items
	}

	log.Printf("DEBUG: numeric_count=%d of requested %d, requesting %d additional numeric problems", numeric, count, need)

	resp, err := s.model.GenerateContent(ctx, genai.Text(buildNumericTopUpPrompt(source, need)))
	if err != nil {
		log.Printf("WARNING: numeric top-up call failed: %v", err)
		return items
	}

	extra, err := parseQuestionItems(extractText(resp))
	if err != nil {
		log.Printf("WARNING: failed to parse numeric top-up response: %v", err)
		return items
	}

	if len(extra) > need {
		extra = extra[:need]
	}
	for i := range extra {
		extra[i].Type = models.KindNumerical
	}
	return append(items, extra...)
}

// ExtractTopics asks the model for the main topics and math concepts of
// the text. Single call, no repair beyond fence stripping.
func (s *GeminiService) ExtractTopics(ctx context.Context, text string) ([]models.TopicItem, error) {
	prompt := buildTopicsPrompt(truncateForPrompt(text, s.textLimit))

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	raw := stripJSONFence(extractText(resp))
	var topics []models.TopicItem
	if err := json.Unmarshal([]byte(raw), &topics); err != nil {
		log.Printf("ERROR: failed to parse topics response: %v", err)
		return nil, ErrParseFailure
	}

	return topics, nil
}

// SummarizeNotes asks the model for condensed, markup-structured study
// notes. Single call, no repair.
func (s *GeminiService) SummarizeNotes(ctx context.Context, text string) (string, error) {
	prompt := buildNotesPrompt(truncateForPrompt(text, s.textLimit))

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	notes := strings.TrimSpace(stripJSONFence(extractText(resp)))
	if notes == "" {
		log.Println("ERROR: model returned empty notes")
		return "", ErrParseFailure
	}

	return notes, nil
}

// Helper functions

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}

func truncateForPrompt(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

// stripJSONFence removes an optional fenced-code-block wrapper the model
// sometimes adds around its payload.
func stripJSONFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseQuestionItems parses the model reply as a strict JSON array,
// falling back to slicing out the outermost bracket pair.
func parseQuestionItems(raw string) ([]models.QuestionItem, error) {
	raw = stripJSONFence(raw)

	var items []models.QuestionItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		start := strings.Index(raw, "[")
		end := strings.LastIndex(raw, "]")
		if start < 0 || end <= start {
			return nil, err
		}
		if err := json.Unmarshal([]byte(raw[start:end+1]), &items); err != nil {
			return nil, err
		}
	}

	valid := items[:0]
	for _, it := range items {
		if strings.TrimSpace(it.Question) == "" {
			continue
		}
		valid = append(valid, it)
	}
	return valid, nil
}

// numericKeywords flags calculation-style questions. Matched on whole
// words; the unit abbreviations would otherwise hit inside ordinary
// prose.
var numericKeywords = map[string]bool{
	"solve": true, "calculate": true, "find": true, "evaluate": true,
	"times": true, "multiply": true, "divide": true, "sum": true,
	"difference": true, "product": true, "percentage": true, "percent": true,
	"km": true, "m": true, "cm": true, "kg": true, "g": true,
	"ms": true, "s": true, "minutes": true, "hours": true,
}

var numericPhrases = []string{"how many", "what is"}

func isNumericQuestion(q string) bool {
	lower := strings.ToLower(q)

	for _, ch := range lower {
		if ch >= '0' && ch <= '9' {
			return true
		}
	}
	for _, p := range numericPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	for _, w := range strings.FieldsFunc(lower, func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	}) {
		if numericKeywords[w] {
			return true
		}
	}
	return false
}

// numericTopUpNeed returns how many numeric-only items to request, or 0
// when the batch already carries at least half numeric questions.
func numericTopUpNeed(count, numericCount int) int {
	if numericCount >= count/2 {
		return 0
	}
	need := count/2 - numericCount
	if need < 1 {
		need = 1
	}
	return need
}

// Prompt builders

func buildQuestionPrompt(text, difficulty string, count int, kind string) string {
	var b strings.Builder

	b.WriteString("You are an expert educational assessor. Generate exam questions based on the following study material.\n\n")
	b.WriteString("CRITICAL: Return ONLY a valid JSON array. No preamble, no markdown, no backticks.\n\n")
	b.WriteString(fmt.Sprintf("Generate exactly %d %s level questions.\n\n", count, difficulty))

	switch kind {
	case models.KindMCQ:
		b.WriteString("Question style: multiple choice. Embed exactly 4 options labeled A) B) C) D) inside the question text, one per line. The answer field must state the correct letter and option text.\n")
	case models.KindTF:
		b.WriteString("Question style: true/false. Each question is a single declarative statement. The answer field must be exactly \"True\" or \"False\" with a one-sentence justification.\n")
	case models.KindShort:
		b.WriteString("Question style: short answer. Answers must be 2-3 sentences. Set marks to 1 or 2.\n")
	case models.KindLong:
		b.WriteString("Question style: long answer. Each question requires a detailed explanatory answer of at least a paragraph. Set marks to 5.\n")
	case models.KindNumerical:
		b.WriteString(`Question style: NUMERICAL/MATHEMATICAL problems only.
1. Each problem must involve calculations, formulas, or mathematical reasoning.
2. The explanation field MUST contain a complete step-by-step solution:
   - Given values clearly stated
   - Formula/method used
   - Each calculation step explained
   - Final answer clearly stated
3. Use SIMPLE PLAIN TEXT format: write "x^2" for x squared, "sqrt(x)" for square root, * for multiplication, / for division.
   Example step format:
   "Step 1: Identify given values - Mass = 10 kg, Velocity = 5 m/s
    Step 2: Apply formula - Kinetic Energy = (1/2) * m * v^2
    Step 3: Substitute values - KE = (1/2) * 10 * 5^2
    Step 4: Calculate - KE = 125 Joules
    Final Answer: The kinetic energy is 125 Joules"
The answer field should contain the final answer only. Set marks to 2.
`)
	default: // MIXED
		b.WriteString(`Question style: a mix of
 - Theoretical questions (definition, concept, explanation type questions)
 - Numerical/Mathematical problems (calculations, practical problems with simple numbers)
 - Problem-solving questions
Make sure approximately 50% are theoretical and 50% are mathematical/numerical problems.
For mathematical problems use SIMPLE PLAIN TEXT only: no LaTeX, no special symbols. Write math like "2x + 5 = 15, solve for x". Include a step-by-step explanation for every numerical problem.
`)
	}

	b.WriteString(`
JSON schema per question:
{"question": "string", "answer": "string", "explanation": "string", "marks": int, "type": "theoretical"|"numerical"}

For theoretical questions, "explanation" can be empty or contain additional context.
For numerical questions, "explanation" MUST contain the step-by-step solution.
All questions and answers must be CLEAR and EASILY UNDERSTANDABLE, in plain simple English with basic mathematical notation only.
`)

	b.WriteString("\n---TEXT---\n")
	b.WriteString(text)
	b.WriteString("\n---END---\n")

	return b.String()
}

func buildNumericTopUpPrompt(text string, need int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("From the same source text, generate %d additional NUMERICAL/MATHEMATICAL problems (clear plain-text format) with answers and step-by-step explanations.\n\n", need))
	b.WriteString("Return ONLY a JSON array of objects with keys 'question','answer','explanation','marks','type'.\n")
	b.WriteString("\n---TEXT---\n")
	b.WriteString(text)
	b.WriteString("\n---END---\n")

	return b.String()
}

func buildTopicsPrompt(text string) string {
	var b strings.Builder

	b.WriteString("You are an expert curriculum analyst. Identify the main topics and mathematical concepts covered by the following study material.\n\n")
	b.WriteString("CRITICAL: Return ONLY a valid JSON array. No preamble, no markdown, no backticks.\n\n")
	b.WriteString(`JSON schema per item:
{"kind": "topic"|"math", "name": "string", "description": "one sentence"}

Use kind "math" for formulas, derivations and calculation techniques; "topic" for everything else.
`)
	b.WriteString("\n---TEXT---\n")
	b.WriteString(text)
	b.WriteString("\n---END---\n")

	return b.String()
}

func buildNotesPrompt(text string) string {
	var b strings.Builder

	b.WriteString("You are an expert note-taker. Create concise revision notes from the following study material.\n\n")
	b.WriteString(`Structure the notes with this exact markup, one item per line:
- "## " prefix for each main section heading
- "### " prefix for subsection headings
- "- " prefix for bullet points
- "KEY POINT:" prefix for must-remember facts
- "FORMULA:" prefix for formulas, written in plain text (x^2, sqrt(x), *, /)
- "TIP:" prefix for exam tips

Return plain text only. Do NOT use markdown tables, pipes (|), or HTML. Keep every line self-contained.
`)
	b.WriteString("\n---TEXT---\n")
	b.WriteString(text)
	b.WriteString("\n---END---\n")

	return b.String()
}

func resolveKind(itemType, requestKind string) string {
	if requestKind != models.KindMixed {
		return requestKind
	}
	if strings.EqualFold(itemType, "numerical") || itemType == models.KindNumerical {
		return models.KindNumerical
	}
	return models.KindMixed
}
