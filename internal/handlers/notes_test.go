package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"questgen-backend/internal/models"
	"questgen-backend/internal/services"
)

type fakeSummarizer struct {
	notes string
	err   error
}

func (f *fakeSummarizer) SummarizeNotes(ctx context.Context, text string) (string, error) {
	return f.notes, f.err
}

type fakeNotesStore struct {
	token   string
	title   string
	notes   string
	putErr  error
	getErr  error
	gotGets []string
}

func (f *fakeNotesStore) Put(ctx context.Context, title, notes string) (string, error) {
	f.title = title
	f.notes = notes
	return f.token, f.putErr
}

func (f *fakeNotesStore) Get(ctx context.Context, token string) (string, string, error) {
	f.gotGets = append(f.gotGets, token)
	if f.getErr != nil {
		return "", "", f.getErr
	}
	return f.title, f.notes, nil
}

func notesRouter(h *NotesHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/v1/notes/generate", h.Generate)
	r.Get("/api/v1/notes/{token}/download", h.Download)
	return r
}

func TestNotesGenerate(t *testing.T) {
	token := uuid.NewString()
	store := &fakeNotesStore{token: token}
	h := NewNotesHandler(&fakeSummarizer{notes: "## Summary\n- key fact"}, services.NewFileExtractService(), store)

	req := uploadRequest(t, "/api/v1/notes/generate", nil, "Cell Biology.txt", "Mitochondria produce ATP.")
	rec := httptest.NewRecorder()

	notesRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp models.NotesResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Token != token || resp.Title != "Cell Biology" || !strings.Contains(resp.Notes, "key fact") {
		t.Errorf("notes response = %+v", resp)
	}
	if store.title != "Cell Biology" {
		t.Errorf("cached title = %q", store.title)
	}
}

func TestNotesGenerateSummarizerFailure(t *testing.T) {
	h := NewNotesHandler(&fakeSummarizer{err: errors.New("model unavailable")}, services.NewFileExtractService(), &fakeNotesStore{})

	req := uploadRequest(t, "/api/v1/notes/generate", nil, "notes.txt", "text")
	rec := httptest.NewRecorder()

	notesRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if resp := decodeError(t, rec.Body); resp.Error.Code != "GENERATION_FAILED" {
		t.Errorf("error code = %q", resp.Error.Code)
	}
}

func TestNotesDownload(t *testing.T) {
	token := uuid.NewString()
	store := &fakeNotesStore{title: "Cell Biology", notes: "## Summary\n- key fact"}
	h := NewNotesHandler(&fakeSummarizer{}, services.NewFileExtractService(), store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notes/"+token+"/download", nil)
	rec := httptest.NewRecorder()

	notesRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if len(store.gotGets) != 1 || store.gotGets[0] != token {
		t.Errorf("cache lookups = %v", store.gotGets)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Cell_Biology_Short_Notes.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("body is not a PDF document")
	}
}

func TestNotesDownloadInvalidToken(t *testing.T) {
	h := NewNotesHandler(&fakeSummarizer{}, services.NewFileExtractService(), &fakeNotesStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notes/not-a-uuid/download", nil)
	rec := httptest.NewRecorder()

	notesRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestNotesDownloadExpired(t *testing.T) {
	store := &fakeNotesStore{getErr: services.ErrNotesNotFound}
	h := NewNotesHandler(&fakeSummarizer{}, services.NewFileExtractService(), store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notes/"+uuid.NewString()+"/download", nil)
	rec := httptest.NewRecorder()

	notesRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if resp := decodeError(t, rec.Body); resp.Error.Code != "NOT_FOUND" {
		t.Errorf("error code = %q", resp.Error.Code)
	}
}
