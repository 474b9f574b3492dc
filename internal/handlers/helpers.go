package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"questgen-backend/internal/models"
	"questgen-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

// extractStudyFile validates the multipart upload and returns its plain
// text plus the original filename. On failure it writes the error
// response itself and returns ok=false.
func extractStudyFile(w http.ResponseWriter, r *http.Request, extractor *services.FileExtractService) (text, filename string, ok bool) {
	if r.ContentLength > services.MaxUploadSize {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("FILE_TOO_LARGE", "File size exceeds 50MB limit", r))
		return "", "", false
	}

	r.Body = http.MaxBytesReader(w, r.Body, services.MaxUploadSize)

	file, header, err := r.FormFile("study_file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Please upload a file", r))
		return "", "", false
	}
	defer file.Close()

	if !services.SupportedExtension(header.Filename) {
		writeJSON(w, http.StatusUnsupportedMediaType, errorResp("UNSUPPORTED_FORMAT", "File type not supported. Allowed: .pdf, .docx, .txt", r))
		return "", "", false
	}
	if header.Size > services.MaxUploadSize {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("FILE_TOO_LARGE", "File size exceeds 50MB limit", r))
		return "", "", false
	}

	text, err = extractor.ExtractText(file, header.Size, header.Filename)
	if err != nil {
		if errors.Is(err, services.ErrEmptyDocument) {
			writeJSON(w, http.StatusBadRequest, errorResp("EXTRACTION_FAILED", "Could not extract text from the document", r))
		} else {
			log.Printf("ERROR: extraction failed for %s: %v", header.Filename, err)
			writeJSON(w, http.StatusBadRequest, errorResp("EXTRACTION_FAILED", "The document could not be read", r))
		}
		return "", "", false
	}

	return text, header.Filename, true
}

// wantsJSON reports whether the caller prefers a base64 JSON reply over a
// binary attachment.
func wantsJSON(r *http.Request) bool {
	return r.Header.Get("X-Requested-With") == "XMLHttpRequest" || r.URL.Query().Get("format") == "json"
}
