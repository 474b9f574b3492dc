package handlers

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"questgen-backend/internal/models"
	"questgen-backend/internal/services"
)

const historyPerPage = 20

type questionStore interface {
	CreateBatch(ctx context.Context, questions []*models.Question) error
	List(ctx context.Context, topic, difficulty string, limit, offset int) ([]*models.Question, int, error)
}

type questionGenerator interface {
	GenerateQuestions(ctx context.Context, text, difficulty string, count int, kind string) ([]models.QuestionItem, error)
}

type QuestionHandler struct {
	repo      questionStore
	generator questionGenerator
	extractor *services.FileExtractService
}

func NewQuestionHandler(repo questionStore, generator questionGenerator, extractor *services.FileExtractService) *QuestionHandler {
	return &QuestionHandler{
		repo:      repo,
		generator: generator,
		extractor: extractor,
	}
}

// Generate runs the whole pipeline in one request: extract the uploaded
// document, ask the model for questions, persist the batch, and return
// the rendered PDF.
func (h *QuestionHandler) Generate(w http.ResponseWriter, r *http.Request) {
	// Reading any form value parses the multipart body, so the size cap
	// has to come first.
	if r.ContentLength > services.MaxUploadSize {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("FILE_TOO_LARGE", "File size exceeds 50MB limit", r))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, services.MaxUploadSize)

	difficulty := r.FormValue("difficulty")
	if difficulty == "" {
		difficulty = models.DifficultyMedium
	}
	if !models.ValidDifficulty(difficulty) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid difficulty. Must be one of: Easy, Medium, Hard", r))
		return
	}

	count := 5
	if v := r.FormValue("num_questions"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 50 {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Number of questions must be between 1 and 50", r))
			return
		}
		count = n
	}

	kind := r.FormValue("question_type")
	if kind == "" {
		kind = models.KindMixed
	}
	if !models.ValidQuestionType(kind) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid question type. Must be one of: MCQ, TF, SHORT, LONG, NUMERICAL, MIXED", r))
		return
	}

	includeAnswers := true
	if v := r.FormValue("include_answers"); v == "false" || v == "0" {
		includeAnswers = false
	}

	text, filename, ok := extractStudyFile(w, r, h.extractor)
	if !ok {
		return
	}
	topic := services.TopicFromFilename(filename)

	items, err := h.generator.GenerateQuestions(r.Context(), text, difficulty, count, kind)
	if err != nil {
		log.Printf("ERROR: question generation failed for topic %q: %v", topic, err)
		writeJSON(w, http.StatusBadGateway, errorResp("GENERATION_FAILED", "Could not generate questions. Please try again.", r))
		return
	}
	if len(items) == 0 {
		log.Printf("ERROR: no questions generated for topic %q", topic)
		writeJSON(w, http.StatusBadGateway, errorResp("GENERATION_FAILED", "Could not generate questions. Please try again.", r))
		return
	}

	questions := make([]*models.Question, len(items))
	for i, item := range items {
		questions[i] = &models.Question{
			Text:         item.Question,
			Answer:       optional(item.Answer),
			Explanation:  optional(item.Explanation),
			Topic:        topic,
			Difficulty:   difficulty,
			QuestionType: item.Type,
			Marks:        item.Marks,
		}
	}

	if err := h.repo.CreateBatch(r.Context(), questions); err != nil {
		log.Printf("ERROR: failed to persist questions for topic %q: %v", topic, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save generated questions", r))
		return
	}

	blocks := services.ComposeQuestions(questions, topic, includeAnswers)
	pdfBytes, err := services.RenderPDF(blocks, services.QuestionStyles())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to render PDF", r))
		return
	}

	label := "Questions"
	if includeAnswers {
		label = "Questions_and_Answers"
	}
	pdfFilename := fmt.Sprintf("%s_%s.pdf", safeFilename(topic), label)

	servePDF(w, r, pdfFilename, pdfBytes)
}

// History lists persisted questions newest-first, filterable by topic
// substring and exact difficulty, 20 per page.
func (h *QuestionHandler) History(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")

	difficulty := r.URL.Query().Get("difficulty")
	if difficulty != "" && !models.ValidDifficulty(difficulty) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid difficulty filter", r))
		return
	}

	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid page number", r))
			return
		}
		page = n
	}

	questions, total, err := h.repo.List(r.Context(), topic, difficulty, historyPerPage, (page-1)*historyPerPage)
	if err != nil {
		log.Printf("ERROR: failed to list question history: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch question history", r))
		return
	}
	if questions == nil {
		questions = []*models.Question{}
	}

	writeJSON(w, http.StatusOK, models.HistoryResponse{
		Questions: questions,
		Total:     total,
		Page:      page,
		PerPage:   historyPerPage,
	})
}

// SupportedFormats is the public capability listing for upload clients.
func (h *QuestionHandler) SupportedFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"formats": []map[string]string{
			{"extension": ".pdf", "mime_type": "application/pdf", "description": "PDF Document"},
			{"extension": ".docx", "mime_type": "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "description": "Word Document"},
			{"extension": ".txt", "mime_type": "text/plain", "description": "Plain Text"},
		},
		"max_file_size": services.MaxUploadSize,
	})
}

// servePDF returns the document either as a binary attachment or, for
// script-driven clients, base64-embedded in JSON for client-side preview.
func servePDF(w http.ResponseWriter, r *http.Request, filename string, pdfBytes []byte) {
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, models.PDFResponse{
			Filename: filename,
			PDF:      base64.StdEncoding.EncodeToString(pdfBytes),
		})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func safeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, name)
}
