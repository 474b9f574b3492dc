package services

import (
	"bytes"
	"fmt"
	"log"

	"github.com/jung-kurt/gofpdf"
)

// blockStyle describes how one block kind is typeset.
type blockStyle struct {
	fontStyle  string // "", "B", "I"
	size       float64
	r, g, b    int
	fill       bool
	lineHeight float64
	spaceAfter float64
}

// StyleTable maps block kinds to their typesetting.
type StyleTable map[BlockKind]blockStyle

// QuestionStyles is the style table for generated question papers.
func QuestionStyles() StyleTable {
	t := baseStyles()
	t[BlockTitle] = blockStyle{fontStyle: "B", size: 24, r: 0x00, g: 0xd4, b: 0xff, lineHeight: 28, spaceAfter: 24}
	return t
}

// NotesStyles is the style table for short-notes documents.
func NotesStyles() StyleTable {
	t := baseStyles()
	t[BlockTitle] = blockStyle{fontStyle: "B", size: 22, r: 0x1e, g: 0x40, b: 0xaf, lineHeight: 26, spaceAfter: 20}
	return t
}

func baseStyles() StyleTable {
	return StyleTable{
		BlockHeading:    {fontStyle: "B", size: 14, r: 0x1e, g: 0x40, b: 0xaf, lineHeight: 18, spaceAfter: 8},
		BlockSubheading: {fontStyle: "B", size: 12, r: 0x37, g: 0x41, b: 0x51, lineHeight: 15, spaceAfter: 5},
		BlockBody:       {size: 10, r: 0x1f, g: 0x29, b: 0x37, lineHeight: 14, spaceAfter: 6},
		BlockBullet:     {size: 10, r: 0x37, g: 0x41, b: 0x51, lineHeight: 13, spaceAfter: 4},
		BlockKeyPoint:   {fontStyle: "B", size: 10, r: 0xdc, g: 0x26, b: 0x26, lineHeight: 13, spaceAfter: 4},
		BlockFormula:    {size: 11, r: 0x7c, g: 0x3a, b: 0xed, fill: true, lineHeight: 14, spaceAfter: 6},
		BlockTip:        {fontStyle: "I", size: 10, r: 0x05, g: 0x96, b: 0x69, lineHeight: 13, spaceAfter: 6},
		BlockQuestion:   {fontStyle: "B", size: 11, lineHeight: 16, spaceAfter: 7},
		BlockAnswer:     {fontStyle: "I", size: 10, r: 0x2d, g: 0x50, b: 0x16, lineHeight: 14, spaceAfter: 6},
		BlockStepLabel:  {fontStyle: "B", size: 9, r: 0x1a, g: 0x4d, b: 0x7c, lineHeight: 12, spaceAfter: 4},
		BlockStep:       {size: 9, r: 0x33, g: 0x33, b: 0x33, lineHeight: 11, spaceAfter: 3},
	}
}

const (
	pageMargin = 50.0
	indentStep = 15.0
	spacerGap  = 8.0
)

// RenderPDF typesets a block sequence into a PDF byte buffer. Page breaks
// come from explicit pagebreak blocks plus natural overflow.
func RenderPDF(blocks []Block, styles StyleTable) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	for _, b := range blocks {
		switch b.Kind {
		case BlockPageBreak:
			pdf.AddPage()
			continue
		case BlockSpacer:
			pdf.Ln(spacerGap)
			continue
		}

		style, ok := styles[b.Kind]
		if !ok {
			style = styles[BlockBody]
		}

		pdf.SetFont("Helvetica", style.fontStyle, style.size)
		pdf.SetTextColor(style.r, style.g, style.b)
		if style.fill {
			pdf.SetFillColor(0xf3, 0xf4, 0xf6)
		}

		indent := indentStep * float64(b.Indent)
		pdf.SetX(pageMargin + indent)
		pdf.MultiCell(0, style.lineHeight, b.Text, "", "L", style.fill)
		pdf.Ln(style.spaceAfter)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Printf("ERROR: PDF rendering failed: %v", err)
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}

	return buf.Bytes(), nil
}
