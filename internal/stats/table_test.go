package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/kanadrill/internal/kana"
	"github.com/verte-zerg/kanadrill/internal/model"
)

func TestFormatTableAlignsWideColumns(t *testing.T) {
	headers := []string{"Kana", "Accuracy"}
	rows := [][]string{
		{"あ", "100.00%"},
		{"きゃ", "5.00%"},
	}
	lines := formatTable(headers, rows, map[int]bool{1: true})
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[0] != "Kana  Accuracy" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "----  --------" {
		t.Fatalf("unexpected rule line: %q", lines[1])
	}
	if lines[2] != "あ     100.00%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
	if lines[3] != "きゃ     5.00%" {
		t.Fatalf("unexpected row line: %q", lines[3])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected no lines, got %v", lines)
	}
}

func TestAccuracy(t *testing.T) {
	cases := []struct {
		correct, total int
		want           float64
	}{
		{0, 0, 0},
		{1, 1, 100},
		{0, 1, 0},
		{1, 3, 33.33},
		{2, 3, 66.67},
	}
	for _, tc := range cases {
		if got := Accuracy(tc.correct, tc.total); got != tc.want {
			t.Fatalf("Accuracy(%d, %d) = %v, want %v", tc.correct, tc.total, got, tc.want)
		}
	}
}

func TestRenderCharTableWeakestFirst(t *testing.T) {
	var buf bytes.Buffer
	aggs := []model.CharAggregate{
		{Char: "あ", Correct: 4},
		{Char: "ぬ", Correct: 1, Incorrect: 3},
		{Char: "め", Correct: 2, Incorrect: 2},
	}
	if err := RenderCharTable(&buf, aggs); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[2], "ぬ") || !strings.HasPrefix(lines[3], "め") || !strings.HasPrefix(lines[4], "あ") {
		t.Fatalf("unexpected order:\n%s", buf.String())
	}
	if !strings.Contains(lines[2], "25.00%") {
		t.Fatalf("expected 25.00%% for ぬ, got %q", lines[2])
	}
}

func TestRenderCharTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderCharTable(&buf, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "No answers yet.\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestRenderSubsetTable(t *testing.T) {
	var buf bytes.Buffer
	tbl := kana.FromMap(map[string]string{"か": "ka", "あ": "a"})
	if err := RenderSubsetTable(&buf, "test", tbl); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "test (2)\n") {
		t.Fatalf("missing title: %q", out)
	}
	if strings.Index(out, "あ") > strings.Index(out, "か") {
		t.Fatalf("expected grapheme order: %q", out)
	}
}

func TestSelectWeakChars(t *testing.T) {
	aggs := []model.CharAggregate{
		{Char: "あ", Correct: 5},
		{Char: "ぬ", Correct: 1, Incorrect: 3},
		{Char: "め", Correct: 2, Incorrect: 2},
		{Char: "ね", Correct: 0, Incorrect: 1},
	}
	got := SelectWeakChars(aggs, 2)
	if len(got) != 2 || got[0] != "ね" || got[1] != "ぬ" {
		t.Fatalf("unexpected weak chars: %v", got)
	}
	if all := SelectWeakChars(aggs, 0); len(all) != 3 {
		t.Fatalf("expected 3 weak chars, got %v", all)
	}
	if none := SelectWeakChars([]model.CharAggregate{{Char: "あ", Correct: 1}}, 3); none != nil {
		t.Fatalf("expected no weak chars, got %v", none)
	}
}
