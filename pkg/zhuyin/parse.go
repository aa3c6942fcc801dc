package zhuyin

import (
	"cmp"
	"slices"
	"strings"
)

// ParseSyllable parses one romanized syllable token of the form
// initial+medial+final+tone (e.g. "guo2", "an1", "i4"), using the same
// spellings Initial/Medial/Final.String() produce. The tone digit is
// optional and defaults to Tone1. ParseSyllable reports false if tok is
// not a well-formed syllable (leftover characters, or an empty
// initial/medial/final triple, which would not distinguish from a
// literal character).
func ParseSyllable(tok string) (Syllable, bool) {
	rest := tok
	initial, rest := matchLongestPrefix(rest, initialNames)
	medial, rest := matchLongestPrefix(rest, medialNames)
	final, rest := matchLongestPrefix(rest, finalNames)

	tone := Tone1
	if len(rest) == 1 && rest[0] >= '1' && rest[0] <= '5' {
		tone = Tone(rest[0] - '0')
		rest = rest[1:]
	}
	if rest != "" {
		return Syllable{}, false
	}
	if initial == InitialNone && medial == MedialNone && final == FinalNone {
		return Syllable{}, false
	}
	return New(initial, medial, final, tone), true
}

// matchLongestPrefix finds the longest name in names whose spelling
// prefixes s, returning its key and the remainder of s. The empty
// spelling (name "") always "matches" with zero length, so absence of
// a component is not an error.
func matchLongestPrefix[K cmp.Ordered](s string, names map[K]string) (K, string) {
	type candidate struct {
		key  K
		name string
	}
	candidates := make([]candidate, 0, len(names))
	for k, name := range names {
		if name != "" && strings.HasPrefix(s, name) {
			candidates = append(candidates, candidate{k, name})
		}
	}
	if len(candidates) == 0 {
		var zero K
		return zero, s
	}
	slices.SortFunc(candidates, func(a, b candidate) int { return cmp.Compare(len(b.name), len(a.name)) })
	best := candidates[0]
	return best.key, s[len(best.name):]
}

// ParseBuffer splits a whitespace-separated line of tokens into
// syllables and literal runes, for CLI/test input where syllables are
// typed as romanized tokens (see ParseSyllable) and anything else is
// passed through character by character.
func ParseBuffer(line string) []Token {
	var tokens []Token
	for _, tok := range strings.Fields(line) {
		if syl, ok := ParseSyllable(tok); ok {
			tokens = append(tokens, Token{Syllable: syl, IsSyllable: true})
			continue
		}
		for _, r := range tok {
			tokens = append(tokens, Token{Char: r})
		}
	}
	return tokens
}

// Token is a parsed buffer position: either a Syllable or a literal
// rune, mirroring conversion.Symbol without importing it (zhuyin sits
// below conversion in the package graph).
type Token struct {
	Syllable   Syllable
	Char       rune
	IsSyllable bool
}
