package export

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kiranshivaraju/reportaudit/internal/markdown"
	"github.com/kiranshivaraju/reportaudit/pkg/models"
)

// A4 portrait geometry in millimetres.
const (
	PageWidth  = 210.0
	PageHeight = 297.0

	margin       = 20.0
	contentWidth = PageWidth - 2*margin
	headerHeight = 40.0
	bannerHeight = 25.0
	lineHeight   = 6.0
	// Text is never started below this line; a new page begins instead.
	contentBottom = PageHeight - 20
	continuationY = 20.0
	footerY       = PageHeight - 10
)

const (
	docTitle       = "Technician Report Analysis"
	safeTitle      = "SAFETY COMPLIANT"
	unsafeTitle    = "CRITICAL SAFETY RISK DETECTED"
	safeSentence   = "No safety interlocks or critical devices appear to be compromised."
	unsafeFallback = "Risks detected."
	rewriteHeading = "Client-Ready Report"
	footerFormat   = "Generated by Technician Report Analysis - Page %d of %d"
)

// Color is an RGB triple.
type Color struct{ R, G, B int }

var (
	slate900   = Color{15, 23, 42}
	slate700   = Color{51, 65, 85}
	slate100   = Color{241, 245, 249}
	slate400   = Color{148, 163, 184}
	white      = Color{255, 255, 255}
	emerald50  = Color{236, 253, 245}
	emerald500 = Color{16, 185, 129}
	emerald900 = Color{6, 95, 70}
	red50      = Color{254, 242, 242}
	red600     = Color{220, 38, 38}
	red900     = Color{153, 27, 27}
)

// Font is a Helvetica variant: Style is "" or "B", Size is in points.
type Font struct {
	Style string
	Size  float64
}

// OpKind distinguishes drawing operations.
type OpKind int

const (
	OpRect OpKind = iota
	OpText
)

// Op is one drawing instruction. Coordinates are in millimetres from the
// top-left corner; text Y is the baseline.
type Op struct {
	Kind OpKind
	X, Y float64

	// Rect only. Style is "F" (fill) or "FD" (fill and border).
	W, H  float64
	Style string
	Fill  Color
	Draw  Color

	// Text only.
	Text  string
	Font  Font
	Color Color
}

// Page is the ordered ops of one page.
type Page struct {
	Ops []Op
}

// Document is a laid-out, footer-stamped PDF ready for a renderer.
type Document struct {
	Pages []Page
}

// Measurer returns the printed width of s in millimetres when set in f.
type Measurer func(s string, f Font) float64

// LayoutPDF lays out the report in two phases: content flows top to bottom
// opening pages on overflow, then every page is stamped with "Page i of n".
func LayoutPDF(r models.AnalysisResult, meta Meta, measure Measurer) Document {
	l := &layout{measure: measure}
	l.newPage()

	// Header band.
	l.rect(0, 0, PageWidth, headerHeight, "F", slate900, slate900)
	l.text(margin, 25, docTitle, Font{"B", 22}, white)

	// Metadata.
	meta10 := Font{"", 10}
	l.text(margin, 55, "DATE: "+printedDate(meta.Now), meta10, slate700)
	l.text(margin, 61, "TECHNICIAN: "+orNA(meta.TechnicianName), meta10, slate700)
	l.text(margin, 67, "JOB SITE: "+orNA(meta.JobSiteName), meta10, slate700)

	// Safety banner.
	y := 85.0
	fill, draw, ink := emerald50, emerald500, emerald900
	title, desc := safeTitle, safeSentence
	if !r.IsSafe {
		fill, draw, ink = red50, red600, red900
		title, desc = unsafeTitle, r.RiskDescription()
		if desc == "" {
			desc = unsafeFallback
		}
	}
	l.rect(margin, y, contentWidth, bannerHeight, "FD", fill, draw)
	l.text(margin+5, y+10, title, Font{"B", 14}, ink)
	body := Font{"", 11}
	for i, line := range wrap(desc, contentWidth-10, body, measure) {
		l.text(margin+5, y+18+float64(i)*leading(body), line, body, ink)
	}

	// Scores.
	y += 40
	l.text(margin, y, "PERFORMANCE SCORES", Font{"B", 12}, slate900)
	y += 10
	l.text(margin, y, fmt.Sprintf("Technical Knowledge: %d/%d", r.TechnicalScore, models.MaxScore), body, slate900)
	l.text(margin+60, y, fmt.Sprintf("Professionalism: %d/%d", r.ProfessionalismScore, models.MaxScore), body, slate900)

	// Divider and rewrite heading.
	y += 20
	l.rect(margin, y, contentWidth, 1, "F", slate100, slate100)
	y += 15
	l.text(margin, y, rewriteHeading, Font{"B", 16}, slate900)
	y += 10

	for _, line := range wrap(markdown.StripBold(r.ClientRewrite), contentWidth, body, measure) {
		if y > contentBottom {
			l.newPage()
			y = continuationY
		}
		l.text(margin, y, line, body, slate700)
		y += lineHeight
	}

	return stampFooters(l.doc)
}

// stampFooters runs after layout, once the page count is final.
func stampFooters(doc Document) Document {
	n := len(doc.Pages)
	for i := range doc.Pages {
		doc.Pages[i].Ops = append(doc.Pages[i].Ops, Op{
			Kind:  OpText,
			X:     margin,
			Y:     footerY,
			Text:  fmt.Sprintf(footerFormat, i+1, n),
			Font:  Font{"", 8},
			Color: slate400,
		})
	}
	return doc
}

type layout struct {
	doc     Document
	measure Measurer
}

func (l *layout) newPage() {
	l.doc.Pages = append(l.doc.Pages, Page{})
}

func (l *layout) add(op Op) {
	p := &l.doc.Pages[len(l.doc.Pages)-1]
	p.Ops = append(p.Ops, op)
}

func (l *layout) rect(x, y, w, h float64, style string, fill, draw Color) {
	l.add(Op{Kind: OpRect, X: x, Y: y, W: w, H: h, Style: style, Fill: fill, Draw: draw})
}

func (l *layout) text(x, y float64, s string, f Font, c Color) {
	l.add(Op{Kind: OpText, X: x, Y: y, Text: s, Font: f, Color: c})
}

// leading is the baseline distance of consecutive lines within one text block.
func leading(f Font) float64 {
	return f.Size * 1.15 * 25.4 / 72
}

// wrap breaks text into lines no wider than width. Existing newlines are kept
// (an empty source line stays an empty line) and words longer than width are
// split by rune.
func wrap(text string, width float64, f Font, measure Measurer) []string {
	var out []string
	for _, para := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		para = strings.TrimRight(para, " \t\r")
		if strings.TrimSpace(para) == "" {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range strings.Fields(para) {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if measure(candidate, f) <= width {
				line = candidate
				continue
			}
			if line != "" {
				out = append(out, line)
				line = ""
			}
			for measure(word, f) > width {
				head := fitPrefix(word, width, f, measure)
				out = append(out, head)
				word = word[len(head):]
			}
			line = word
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// fitPrefix returns the longest rune prefix of word that fits, and at least one rune.
func fitPrefix(word string, width float64, f Font, measure Measurer) string {
	_, end := utf8.DecodeRuneInString(word)
	for i := range word {
		if i <= end {
			continue
		}
		if measure(word[:i], f) > width {
			break
		}
		end = i
	}
	return word[:end]
}
