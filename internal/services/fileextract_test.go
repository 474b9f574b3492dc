package services

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestSupportedExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"notes.pdf", true},
		{"notes.PDF", true},
		{"essay.docx", true},
		{"plain.txt", true},
		{"slides.pptx", false},
		{"old.doc", false},
		{"archive.zip", false},
		{"noextension", false},
	}

	for _, tt := range tests {
		if got := SupportedExtension(tt.filename); got != tt.want {
			t.Errorf("SupportedExtension(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestExtractTextTXT(t *testing.T) {
	svc := NewFileExtractService()

	content := "Line one\r\nLine two\r\n\r\n\r\n\r\nLine three\n"
	got, err := svc.ExtractText(strings.NewReader(content), int64(len(content)), "notes.txt")
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	want := "Line one\nLine two\n\nLine three"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractTextEmptyTXT(t *testing.T) {
	svc := NewFileExtractService()

	content := "   \n\n\t\n"
	_, err := svc.ExtractText(strings.NewReader(content), int64(len(content)), "empty.txt")
	if !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("err = %v, want ErrEmptyDocument", err)
	}
}

func TestExtractTextUnsupported(t *testing.T) {
	svc := NewFileExtractService()

	_, err := svc.ExtractText(strings.NewReader("x"), 1, "deck.pptx")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestExtractTextDOCX(t *testing.T) {
	svc := NewFileExtractService()

	doc := `<?xml version="1.0"?><w:document><w:body>` +
		`<w:p><w:r><w:t>First paragraph &amp; more</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Second</w:t><w:br/><w:t>line</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	data := buildDOCX(t, doc)

	got, err := svc.ExtractText(bytes.NewReader(data), int64(len(data)), "essay.docx")
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	want := "First paragraph & more\nSecond\nline"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractTextDOCXMissingDocument(t *testing.T) {
	svc := NewFileExtractService()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("word/styles.xml")
	w.Write([]byte("<w:styles/>"))
	zw.Close()

	data := buf.Bytes()
	if _, err := svc.ExtractText(bytes.NewReader(data), int64(len(data)), "broken.docx"); err == nil {
		t.Error("expected error for docx without document.xml")
	}
}

func TestNormalizeExtractedText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"collapses blank runs", "a\n\n\n\nb", "a\n\nb"},
		{"trims line whitespace", "  a  \n\tb\t", "a\nb"},
		{"mac line endings", "a\rb", "a\nb"},
		{"all whitespace", " \n \n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeExtractedText(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTopicFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Quantum Mechanics.pdf", "Quantum Mechanics"},
		{"notes.txt", "notes"},
		{"/tmp/uploads/chapter3.docx", "chapter3"},
		{".pdf", "Untitled"},
		{strings.Repeat("a", 150) + ".txt", strings.Repeat("a", 100)},
	}

	for _, tt := range tests {
		if got := TopicFromFilename(tt.filename); got != tt.want {
			t.Errorf("TopicFromFilename(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
