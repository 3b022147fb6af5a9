package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/kanadrill/internal/drill"
	"github.com/verte-zerg/kanadrill/internal/model"
)

// historyLine formats one answer the way the feedback list shows it:
// "✅ input" or "❌ input:grapheme・romaji".
func historyLine(rec model.Record) string {
	if rec.Correct {
		return fmt.Sprintf("✅ %s", rec.Input)
	}
	return fmt.Sprintf("❌ %s:%s・%s", rec.Input, rec.Grapheme, rec.Expected)
}

func renderHistory(records []model.Record, width int) string {
	if len(records) == 0 {
		return pendingStyle.Render("No answers yet.")
	}
	lines := make([]string, 0, len(records))
	for _, rec := range records {
		line := historyLine(rec)
		if width > 0 && runewidth.StringWidth(line) > width {
			line = runewidth.Truncate(line, width, "…")
		}
		style := incorrectStyle
		if rec.Correct {
			style = correctStyle
		}
		lines = append(lines, style.Render(line))
	}
	return strings.Join(lines, "\n")
}

func promptLabel(previous drill.Verdict) string {
	switch previous {
	case drill.VerdictCorrect:
		return "Correct! Next:"
	case drill.VerdictIncorrect:
		return "Not quite. Next:"
	default:
		return "Type the romaji for:"
	}
}

// centerGlyph pads a grapheme to a fixed cell width so one- and two-kana
// prompts sit in the same box.
func centerGlyph(grapheme string, width int) string {
	w := runewidth.StringWidth(grapheme)
	if w >= width {
		return grapheme
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + grapheme + strings.Repeat(" ", width-w-left)
}
