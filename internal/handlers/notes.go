package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"questgen-backend/internal/models"
	"questgen-backend/internal/services"
)

type notesSummarizer interface {
	SummarizeNotes(ctx context.Context, text string) (string, error)
}

type notesStore interface {
	Put(ctx context.Context, title, notes string) (string, error)
	Get(ctx context.Context, token string) (title, notes string, err error)
}

type NotesHandler struct {
	summarizer notesSummarizer
	extractor  *services.FileExtractService
	cache      notesStore
}

func NewNotesHandler(summarizer notesSummarizer, extractor *services.FileExtractService, cache notesStore) *NotesHandler {
	return &NotesHandler{
		summarizer: summarizer,
		extractor:  extractor,
		cache:      cache,
	}
}

// Generate summarizes the uploaded document into short notes and caches
// them under an opaque token for the later PDF download.
func (h *NotesHandler) Generate(w http.ResponseWriter, r *http.Request) {
	text, filename, ok := extractStudyFile(w, r, h.extractor)
	if !ok {
		return
	}
	title := services.TopicFromFilename(filename)

	notes, err := h.summarizer.SummarizeNotes(r.Context(), text)
	if err != nil {
		log.Printf("ERROR: notes generation failed for %q: %v", title, err)
		writeJSON(w, http.StatusBadGateway, errorResp("GENERATION_FAILED", "Could not generate notes. Please try again.", r))
		return
	}

	token, err := h.cache.Put(r.Context(), title, notes)
	if err != nil {
		log.Printf("ERROR: failed to cache notes for %q: %v", title, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to store generated notes", r))
		return
	}

	writeJSON(w, http.StatusOK, models.NotesResponse{
		Token: token,
		Title: title,
		Notes: notes,
	})
}

// Download renders the cached notes as a PDF. The token expires with the
// cache TTL; an expired token is a plain 404.
func (h *NotesHandler) Download(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if _, err := uuid.Parse(token); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid notes token", r))
		return
	}

	title, notes, err := h.cache.Get(r.Context(), token)
	if err != nil {
		if errors.Is(err, services.ErrNotesNotFound) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Notes not found or expired. Generate them again.", r))
			return
		}
		log.Printf("ERROR: failed to read cached notes: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to read stored notes", r))
		return
	}

	blocks := services.ComposeNotes(notes, title)
	pdfBytes, err := services.RenderPDF(blocks, services.NotesStyles())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to render PDF", r))
		return
	}

	filename := fmt.Sprintf("%s_Short_Notes.pdf", safeFilename(title))
	servePDF(w, r, filename, pdfBytes)
}
