// Package kana holds the static grapheme to transliteration tables.
package kana

import (
	"fmt"
	"sort"
	"strings"
)

// Name identifies one of the fixed kana subsets.
type Name string

// Subset names, matching the set selectors of the drill.
const (
	HiraganaMonographs Name = "hiragana-monographs"
	HiraganaDigraphs   Name = "hiragana-digraphs"
	KatakanaMonographs Name = "katakana-monographs"
	KatakanaDigraphs   Name = "katakana-digraphs"
	KatakanaTrigraphs  Name = "katakana-trigraphs"
)

var names = []Name{
	HiraganaMonographs,
	HiraganaDigraphs,
	KatakanaMonographs,
	KatakanaDigraphs,
	KatakanaTrigraphs,
}

var subsets = map[Name]map[string]string{
	HiraganaMonographs: hiraganaMonographs,
	HiraganaDigraphs:   hiraganaDigraphs,
	KatakanaMonographs: katakanaMonographs,
	KatakanaDigraphs:   katakanaDigraphs,
	KatakanaTrigraphs:  katakanaTrigraphs,
}

// Table maps graphemes to their transliteration. The zero value is an empty table.
type Table struct {
	entries map[string]string
	keys    []string
}

// Entry is a single grapheme and its transliteration.
type Entry struct {
	Grapheme        string
	Transliteration string
}

func newTable(entries map[string]string) Table {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return Table{entries: entries, keys: keys}
}

// Len returns the number of graphemes in the table.
func (t Table) Len() int {
	return len(t.keys)
}

// Lookup returns the transliteration for a grapheme.
func (t Table) Lookup(grapheme string) (string, bool) {
	v, ok := t.entries[grapheme]
	return v, ok
}

// Graphemes returns the table keys in a stable order. The slice is shared and must not be modified.
func (t Table) Graphemes() []string {
	return t.keys
}

// Entries returns the table contents in grapheme order.
func (t Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.keys))
	for _, k := range t.keys {
		out = append(out, Entry{Grapheme: k, Transliteration: t.entries[k]})
	}
	return out
}

// Names returns every subset name in display order.
func Names() []Name {
	return append([]Name(nil), names...)
}

// ParseName resolves user input to a subset name.
func ParseName(s string) (Name, error) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := subsets[n]; ok {
		return n, nil
	}
	valid := make([]string, len(names))
	for i, name := range names {
		valid[i] = string(name)
	}
	return "", fmt.Errorf("unknown kana set %q (available: %s)", s, strings.Join(valid, ", "))
}

// ParseNames resolves a list of user supplied names, dropping duplicates.
func ParseNames(values []string) ([]Name, error) {
	seen := make(map[Name]struct{}, len(values))
	out := make([]Name, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		n, err := ParseName(v)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out, nil
}

// Subset returns the named table. Names outside the fixed set are a programming error.
func Subset(name Name) Table {
	entries, ok := subsets[name]
	if !ok {
		panic(fmt.Sprintf("kana: unknown subset %q", name))
	}
	return newTable(entries)
}

// Union merges the named subsets into one table.
func Union(selected ...Name) Table {
	merged := map[string]string{}
	for _, name := range selected {
		entries, ok := subsets[name]
		if !ok {
			panic(fmt.Sprintf("kana: unknown subset %q", name))
		}
		for k, v := range entries {
			merged[k] = v
		}
	}
	return newTable(merged)
}

// FromMap builds a table from arbitrary entries. The map is copied.
func FromMap(entries map[string]string) Table {
	copied := make(map[string]string, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return newTable(copied)
}
