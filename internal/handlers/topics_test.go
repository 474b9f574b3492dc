package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"questgen-backend/internal/models"
	"questgen-backend/internal/services"
)

type fakeTopicExtractor struct {
	topics []models.TopicItem
	err    error
}

func (f *fakeTopicExtractor) ExtractTopics(ctx context.Context, text string) ([]models.TopicItem, error) {
	return f.topics, f.err
}

func TestTopicsExtract(t *testing.T) {
	h := NewTopicsHandler(&fakeTopicExtractor{topics: []models.TopicItem{
		{Kind: "topic", Name: "Photosynthesis", Description: "How plants convert light to energy."},
		{Kind: "math", Name: "Rate equations", Description: "Reaction rate calculations."},
	}}, services.NewFileExtractService())

	req := uploadRequest(t, "/api/v1/topics/extract", nil, "bio.txt", "Photosynthesis converts light into chemical energy.")
	rec := httptest.NewRecorder()

	h.Extract(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Topics []models.TopicItem `json:"topics"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Topics) != 2 || resp.Topics[1].Kind != "math" {
		t.Errorf("topics = %+v", resp.Topics)
	}
}

func TestTopicsExtractEmpty(t *testing.T) {
	h := NewTopicsHandler(&fakeTopicExtractor{}, services.NewFileExtractService())

	req := uploadRequest(t, "/api/v1/topics/extract", nil, "bio.txt", "text")
	rec := httptest.NewRecorder()

	h.Extract(rec, req)

	var resp struct {
		Topics []models.TopicItem `json:"topics"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Topics == nil {
		t.Error("topics should decode as an empty array, not null")
	}
}

func TestTopicsExtractFailure(t *testing.T) {
	h := NewTopicsHandler(&fakeTopicExtractor{err: errors.New("model unavailable")}, services.NewFileExtractService())

	req := uploadRequest(t, "/api/v1/topics/extract", nil, "bio.txt", "text")
	rec := httptest.NewRecorder()

	h.Extract(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}
