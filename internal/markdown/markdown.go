// Package markdown renders the small markdown dialect used in client-ready
// rewrites: "###" headers, "-" bullets, "**bold**" spans, blank-line spacers
// and plain paragraphs. Classification is strictly line by line.
package markdown

import (
	"iter"
	"regexp"
	"strings"
)

// Kind identifies the display role of a Block.
type Kind string

const (
	KindHeader    Kind = "header"
	KindBullet    Kind = "bullet"
	KindSpacer    Kind = "spacer"
	KindParagraph Kind = "paragraph"
)

const (
	headerMarker = "###"
	bulletMarker = "-"
	boldDelim    = "**"
)

// Run is a span of inline text, either plain or bold.
type Run struct {
	Text string `json:"text"`
	Bold bool   `json:"bold,omitempty"`
}

// Block is one classified input line.
// Header blocks carry only Text; bullets and paragraphs carry Runs as well,
// with Text holding the same content with bold delimiters removed.
type Block struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text,omitempty"`
	Runs []Run  `json:"runs,omitempty"`
}

// boldSpan matches the shortest "**...**" pair, mirroring a lexical split.
var boldSpan = regexp.MustCompile(`\*\*.*?\*\*`)

// Blocks returns the block sequence for text, one block per "\n"-separated
// line. The sequence is lazy and can be ranged over any number of times; each
// pass rescans the input.
func Blocks(text string) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		for line := range strings.SplitSeq(text, "\n") {
			if !yield(classify(strings.TrimSuffix(line, "\r"))) {
				return
			}
		}
	}
}

// Collect renders text into a slice of blocks.
func Collect(text string) []Block {
	var out []Block
	for b := range Blocks(text) {
		out = append(out, b)
	}
	return out
}

func classify(line string) Block {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, headerMarker):
		return Block{Kind: KindHeader, Text: strings.TrimSpace(strings.TrimPrefix(trimmed, headerMarker))}
	case strings.HasPrefix(trimmed, bulletMarker):
		content := strings.TrimSpace(strings.TrimPrefix(trimmed, bulletMarker))
		return Block{Kind: KindBullet, Text: plain(content), Runs: Inline(content)}
	case trimmed == "":
		return Block{Kind: KindSpacer}
	default:
		return Block{Kind: KindParagraph, Text: plain(line), Runs: Inline(line)}
	}
}

// Inline resolves bold spans in a single line of text without any block
// classification. Unpaired delimiters are kept literally.
func Inline(text string) []Run {
	var runs []Run
	last := 0
	for _, loc := range boldSpan.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			runs = append(runs, Run{Text: text[last:loc[0]]})
		}
		if inner := text[loc[0]+len(boldDelim) : loc[1]-len(boldDelim)]; inner != "" {
			runs = append(runs, Run{Text: inner, Bold: true})
		}
		last = loc[1]
	}
	if last < len(text) {
		runs = append(runs, Run{Text: text[last:]})
	}
	return runs
}

// StripBold removes every "**" delimiter, paired or not. Exports use it
// where emphasis cannot be rendered.
func StripBold(text string) string {
	return strings.ReplaceAll(text, boldDelim, "")
}

func plain(text string) string {
	var b strings.Builder
	for _, r := range Inline(text) {
		b.WriteString(r.Text)
	}
	return b.String()
}
