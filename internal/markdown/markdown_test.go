package markdown

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCollect(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Block
	}{
		{
			name: "header",
			in:   "### Status Update",
			want: []Block{{Kind: KindHeader, Text: "Status Update"}},
		},
		{
			name: "indented header",
			in:   "   ###   Work Performed  ",
			want: []Block{{Kind: KindHeader, Text: "Work Performed"}},
		},
		{
			name: "bullet with bold",
			in:   "- Replaced **Belimo actuator**",
			want: []Block{{
				Kind: KindBullet,
				Text: "Replaced Belimo actuator",
				Runs: []Run{{Text: "Replaced "}, {Text: "Belimo actuator", Bold: true}},
			}},
		},
		{
			name: "blank line",
			in:   "",
			want: []Block{{Kind: KindSpacer}},
		},
		{
			name: "whitespace line",
			in:   " \t ",
			want: []Block{{Kind: KindSpacer}},
		},
		{
			name: "paragraph with two bold spans",
			in:   "Static held at **1.5\" WC** on **AHU-3**.",
			want: []Block{{
				Kind: KindParagraph,
				Text: "Static held at 1.5\" WC on AHU-3.",
				Runs: []Run{
					{Text: "Static held at "},
					{Text: "1.5\" WC", Bold: true},
					{Text: " on "},
					{Text: "AHU-3", Bold: true},
					{Text: "."},
				},
			}},
		},
		{
			name: "unpaired delimiter stays literal",
			in:   "Pump **VFD bypassed",
			want: []Block{{
				Kind: KindParagraph,
				Text: "Pump **VFD bypassed",
				Runs: []Run{{Text: "Pump **VFD bypassed"}},
			}},
		},
		{
			name: "line order is preserved",
			in:   "### Summary\n\n- Cleaned electrode\r\nBurner fired.",
			want: []Block{
				{Kind: KindHeader, Text: "Summary"},
				{Kind: KindSpacer},
				{Kind: KindBullet, Text: "Cleaned electrode", Runs: []Run{{Text: "Cleaned electrode"}}},
				{Kind: KindParagraph, Text: "Burner fired.", Runs: []Run{{Text: "Burner fired."}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Collect(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Collect(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestBlocks_Restartable(t *testing.T) {
	seq := Blocks("### A\n- b\nc")

	var first, second []Block
	for b := range seq {
		first = append(first, b)
	}
	for b := range seq {
		second = append(second, b)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second pass differs (-first +second):\n%s", diff)
	}
	if len(first) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(first))
	}
}

func TestBlocks_EarlyStop(t *testing.T) {
	n := 0
	for range Blocks("a\nb\nc\nd") {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("expected to stop after 2 blocks, got %d", n)
	}
}

func TestInline(t *testing.T) {
	got := Inline("Replace **damper actuator** on **VAV 2-10** today")
	want := []Run{
		{Text: "Replace "},
		{Text: "damper actuator", Bold: true},
		{Text: " on "},
		{Text: "VAV 2-10", Bold: true},
		{Text: " today"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Inline mismatch (-want +got):\n%s", diff)
	}

	// No classification: a leading marker is ordinary text.
	got = Inline("### not a header")
	if diff := cmp.Diff([]Run{{Text: "### not a header"}}, got); diff != "" {
		t.Errorf("Inline header text mismatch (-want +got):\n%s", diff)
	}

	if runs := Inline(""); len(runs) != 0 {
		t.Errorf("expected no runs for empty input, got %v", runs)
	}
}

func TestStripBold(t *testing.T) {
	if got := StripBold("Check **AHU-1** freeze **stat"); got != "Check AHU-1 freeze stat" {
		t.Errorf("unexpected: %q", got)
	}
}
