package models

type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}

// HistoryResponse wraps a page of the question history listing.
type HistoryResponse struct {
	Questions []*Question `json:"questions"`
	Total     int         `json:"total"`
	Page      int         `json:"page"`
	PerPage   int         `json:"per_page"`
}

// NotesResponse is returned after notes generation. Token is the handle
// for the later PDF download.
type NotesResponse struct {
	Token string `json:"token"`
	Title string `json:"title"`
	Notes string `json:"notes"`
}

// PDFResponse is the JSON form of a generated document, for script-driven
// clients that preview the PDF client-side.
type PDFResponse struct {
	Filename string `json:"filename"`
	PDF      string `json:"pdf"`
}
