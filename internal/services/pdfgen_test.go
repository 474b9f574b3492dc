package services

import (
	"bytes"
	"testing"

	"questgen-backend/internal/models"
)

func TestRenderPDFProducesDocument(t *testing.T) {
	empty, err := RenderPDF(nil, QuestionStyles())
	if err != nil {
		t.Fatalf("RenderPDF(nil): %v", err)
	}
	if !bytes.HasPrefix(empty, []byte("%PDF")) {
		t.Fatalf("output missing PDF header: %q", empty[:8])
	}

	blocks := ComposeQuestions(makeQuestions(5, models.KindMCQ, true), "Physics", true)
	full, err := RenderPDF(blocks, QuestionStyles())
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !bytes.HasPrefix(full, []byte("%PDF")) {
		t.Error("output missing PDF header")
	}
	if len(full) <= len(empty) {
		t.Errorf("composed document (%d bytes) not larger than empty baseline (%d bytes)", len(full), len(empty))
	}
}

func TestRenderPDFNotes(t *testing.T) {
	notes := "## Section\n- a bullet\nKEY POINT: remember\nFORMULA: E = mc^2\nTIP: practice\nplain body text"
	out, err := RenderPDF(ComposeNotes(notes, "Revision"), NotesStyles())
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("output missing PDF header")
	}
}

func TestStyleTablesCoverKnownKinds(t *testing.T) {
	for _, styles := range []StyleTable{QuestionStyles(), NotesStyles()} {
		for _, kind := range []BlockKind{
			BlockTitle, BlockHeading, BlockSubheading, BlockBody, BlockBullet,
			BlockKeyPoint, BlockFormula, BlockTip, BlockQuestion, BlockAnswer,
			BlockStepLabel, BlockStep,
		} {
			if _, ok := styles[kind]; !ok {
				t.Errorf("style table missing kind %q", kind)
			}
		}
	}
}
