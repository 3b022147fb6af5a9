package kana

import "testing"

func TestSubsetSizes(t *testing.T) {
	want := map[Name]int{
		HiraganaMonographs: 71,
		HiraganaDigraphs:   33,
		KatakanaMonographs: 71,
		KatakanaDigraphs:   33,
		KatakanaTrigraphs:  28,
	}
	for name, n := range want {
		if got := Subset(name).Len(); got != n {
			t.Fatalf("%s: expected %d entries, got %d", name, n, got)
		}
	}
}

func TestSubsetsAreDisjoint(t *testing.T) {
	owner := map[string]Name{}
	for _, name := range Names() {
		for _, g := range Subset(name).Graphemes() {
			if prev, ok := owner[g]; ok {
				t.Fatalf("grapheme %q in both %s and %s", g, prev, name)
			}
			owner[g] = name
		}
	}
}

func TestUnion(t *testing.T) {
	u := Union(HiraganaMonographs, KatakanaTrigraphs)
	if u.Len() != 71+28 {
		t.Fatalf("expected %d entries, got %d", 71+28, u.Len())
	}
	if v, ok := u.Lookup("あ"); !ok || v != "a" {
		t.Fatalf("expected あ -> a, got %q %v", v, ok)
	}
	if v, ok := u.Lookup("ファ"); !ok || v != "fa" {
		t.Fatalf("expected ファ -> fa, got %q %v", v, ok)
	}
	if _, ok := u.Lookup("ア"); ok {
		t.Fatalf("katakana monographs should not be in the union")
	}
	if Union().Len() != 0 {
		t.Fatalf("expected empty union")
	}
}

func TestTransliterationsAreLowerASCII(t *testing.T) {
	for _, name := range Names() {
		for _, e := range Subset(name).Entries() {
			if e.Transliteration == "" {
				t.Fatalf("%s: empty transliteration for %q", name, e.Grapheme)
			}
			for i := 0; i < len(e.Transliteration); i++ {
				if c := e.Transliteration[i]; c < 'a' || c > 'z' {
					t.Fatalf("%s: %q has non-ascii transliteration %q", name, e.Grapheme, e.Transliteration)
				}
			}
		}
	}
}

func TestParseNames(t *testing.T) {
	got, err := ParseNames([]string{" Hiragana-Monographs", "katakana-digraphs", "hiragana-monographs", ""})
	if err != nil {
		t.Fatalf("parse names: %v", err)
	}
	if len(got) != 2 || got[0] != HiraganaMonographs || got[1] != KatakanaDigraphs {
		t.Fatalf("unexpected names: %v", got)
	}
	if _, err := ParseNames([]string{"kanji"}); err == nil {
		t.Fatalf("expected error for unknown set")
	}
}

func TestSubsetPanicsOnUnknownName(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Subset("kanji")
}

func TestFromMapCopies(t *testing.T) {
	src := map[string]string{"あ": "a"}
	tbl := FromMap(src)
	src["い"] = "i"
	if tbl.Len() != 1 {
		t.Fatalf("table should not see later map writes")
	}
}
