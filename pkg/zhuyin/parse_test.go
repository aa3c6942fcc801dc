package zhuyin

import (
	"fmt"
	"testing"
)

func TestParseSyllableRoundTrip(t *testing.T) {
	cases := []Syllable{
		New(InitialG, MedialU, FinalO, Tone2),    // guo2
		New(InitialNone, MedialNone, FinalAn, Tone1), // an1
		New(InitialD, MedialNone, FinalA, Tone4),  // da4
		New(InitialH, MedialU, FinalEi, Tone4),    // huei4
		New(InitialNone, MedialI, FinalNone, Tone4), // i4
	}
	for _, want := range cases {
		tok := fmt.Sprintf("%s%s%s%d", want.Initial, want.Medial, want.Final, want.Tone)
		got, ok := ParseSyllable(tok)
		if !ok {
			t.Errorf("ParseSyllable(%q) = not ok, want %v", tok, want)
			continue
		}
		if got != want {
			t.Errorf("ParseSyllable(%q) = %v, want %v", tok, got, want)
		}
	}
}

func TestParseSyllableDefaultsToTone1(t *testing.T) {
	got, ok := ParseSyllable("da")
	if !ok {
		t.Fatalf("ParseSyllable(%q) = not ok", "da")
	}
	if got.Tone != Tone1 {
		t.Errorf("ParseSyllable(%q).Tone = %v, want Tone1 (default)", "da", got.Tone)
	}
}

func TestParseSyllableRejectsGarbage(t *testing.T) {
	for _, tok := range []string{"", "zzz9", "guo9x"} {
		if _, ok := ParseSyllable(tok); ok {
			t.Errorf("ParseSyllable(%q) = ok, want rejected", tok)
		}
	}
}

func TestParseBufferMixesSyllablesAndLiterals(t *testing.T) {
	tokens := ParseBuffer("guo2 an1 , da4")
	if len(tokens) == 0 {
		t.Fatal("ParseBuffer returned no tokens")
	}

	var sawLiteral, sawSyllable bool
	for _, tok := range tokens {
		if tok.IsSyllable {
			sawSyllable = true
		} else if tok.Char == ',' {
			sawLiteral = true
		}
	}
	if !sawSyllable {
		t.Error("expected at least one parsed syllable token")
	}
	if !sawLiteral {
		t.Error("expected the literal comma to pass through as a Char token")
	}
}

func TestParseBufferEmpty(t *testing.T) {
	if tokens := ParseBuffer("   "); len(tokens) != 0 {
		t.Errorf("ParseBuffer(whitespace) = %v, want empty", tokens)
	}
}
