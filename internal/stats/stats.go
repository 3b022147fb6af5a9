// Package stats contains accuracy calculations and text reports.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/verte-zerg/kanadrill/internal/kana"
	"github.com/verte-zerg/kanadrill/internal/model"
)

// Accuracy returns correct/total as a percentage rounded to two decimals.
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	pct := float64(correct) / float64(total) * 100
	return math.Round(pct*100) / 100
}

// RenderCharTable prints per-grapheme aggregates, weakest first.
func RenderCharTable(w io.Writer, aggs []model.CharAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No answers yet.")
		return err
	}
	rows := WeakestFirst(aggs)

	headers := []string{"Kana", "Accuracy", "Correct", "Incorrect"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			r.Char,
			fmt.Sprintf("%.2f%%", Accuracy(r.Correct, r.Correct+r.Incorrect)),
			fmt.Sprintf("%d", r.Correct),
			fmt.Sprintf("%d", r.Incorrect),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, tableRows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderSubsetTable prints the graphemes of a kana table with their transliterations.
func RenderSubsetTable(w io.Writer, title string, table kana.Table) error {
	if _, err := fmt.Fprintf(w, "%s (%d)\n", title, table.Len()); err != nil {
		return err
	}
	entries := table.Entries()
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Grapheme, e.Transliteration})
	}
	for _, line := range formatTable([]string{"Kana", "Romaji"}, rows, nil) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// WeakestFirst returns a copy of aggs ordered by ascending accuracy.
func WeakestFirst(aggs []model.CharAggregate) []model.CharAggregate {
	out := append([]model.CharAggregate(nil), aggs...)
	sortWeakestFirst(out)
	return out
}

func sortWeakestFirst(aggs []model.CharAggregate) {
	sort.Slice(aggs, func(i, j int) bool {
		ai := accuracy(aggs[i])
		aj := accuracy(aggs[j])
		if ai == aj {
			return aggs[i].Char < aggs[j].Char
		}
		return ai < aj
	})
}
