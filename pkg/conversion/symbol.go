// Package conversion implements the phrase segmentation engine: turning a
// Composition of syllables and literal characters into a sequence of
// dictionary-backed Intervals, subject to user breaks, glues and pinned
// selections.
package conversion

import "github.com/hanzikit/chewing/pkg/zhuyin"

// Symbol is one buffer position: either a phonetic Syllable or a literal
// character (inline punctuation or ASCII passed through untouched).
type Symbol struct {
	syllable zhuyin.Syllable
	char     rune
	isChar   bool
}

// SyllableSymbol wraps a Syllable as a buffer Symbol.
func SyllableSymbol(s zhuyin.Syllable) Symbol {
	return Symbol{syllable: s}
}

// CharSymbol wraps a literal character as a buffer Symbol.
func CharSymbol(c rune) Symbol {
	return Symbol{char: c, isChar: true}
}

// IsSyllable reports whether this Symbol carries a Syllable.
func (s Symbol) IsSyllable() bool { return !s.isChar }

// IsChar reports whether this Symbol carries a literal character.
func (s Symbol) IsChar() bool { return s.isChar }

// Syllable returns the carried Syllable; only valid when IsSyllable.
func (s Symbol) Syllable() zhuyin.Syllable { return s.syllable }

// Char returns the carried character; only valid when IsChar.
func (s Symbol) Char() rune { return s.char }

func (s Symbol) String() string {
	if s.isChar {
		return string(s.char)
	}
	return s.syllable.String()
}
