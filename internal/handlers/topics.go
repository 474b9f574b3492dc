package handlers

import (
	"context"
	"log"
	"net/http"

	"questgen-backend/internal/models"
	"questgen-backend/internal/services"
)

type topicExtractor interface {
	ExtractTopics(ctx context.Context, text string) ([]models.TopicItem, error)
}

type TopicsHandler struct {
	extractor      *services.FileExtractService
	topicExtractor topicExtractor
}

func NewTopicsHandler(topicExtractor topicExtractor, extractor *services.FileExtractService) *TopicsHandler {
	return &TopicsHandler{
		extractor:      extractor,
		topicExtractor: topicExtractor,
	}
}

// Extract lists the topics and math concepts the model finds in the
// uploaded document.
func (h *TopicsHandler) Extract(w http.ResponseWriter, r *http.Request) {
	text, filename, ok := extractStudyFile(w, r, h.extractor)
	if !ok {
		return
	}

	topics, err := h.topicExtractor.ExtractTopics(r.Context(), text)
	if err != nil {
		log.Printf("ERROR: topic extraction failed for %q: %v", filename, err)
		writeJSON(w, http.StatusBadGateway, errorResp("GENERATION_FAILED", "Could not extract topics. Please try again.", r))
		return
	}
	if topics == nil {
		topics = []models.TopicItem{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"topics": topics})
}
