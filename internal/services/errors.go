package services

import "errors"

// Sentinel errors shared across services. Handlers map these onto the
// HTTP error envelope; anything else is an internal failure.
var (
	// ErrUnsupportedFormat is returned before any extraction attempt for
	// file extensions outside .pdf/.docx/.txt.
	ErrUnsupportedFormat = errors.New("unsupported file type for text extraction")

	// ErrEmptyDocument means extraction ran but yielded no text.
	ErrEmptyDocument = errors.New("no extractable text found in document")

	// ErrParseFailure means the model replied but its payload could not be
	// parsed, even after fence stripping and bracket repair.
	ErrParseFailure = errors.New("could not parse model response")

	// ErrNotesNotFound is returned for a missing or expired notes token.
	ErrNotesNotFound = errors.New("notes not found or expired")
)
