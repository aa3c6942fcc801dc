package conversion

import (
	"fmt"
	"strconv"
)

// Interval is one segment of a conversion result: a half-open span
// [Start, End) of the buffer rendered as Phrase, with IsPhrase telling
// whether it came from a dictionary lookup or is a literal passthrough.
type Interval struct {
	Start    int
	End      int
	IsPhrase bool
	Phrase   string
}

// possiblePhrase is the internal, unscored candidate for one span: either
// a borrowed literal Symbol (freq 0) or a dictionary Phrase. It is shared
// by value across candidate paths and never mutated after construction.
type possiblePhrase struct {
	text     string
	freq     uint32
	isLiteral bool
}

func literalPossiblePhrase(s Symbol) possiblePhrase {
	return possiblePhrase{text: s.String(), isLiteral: true}
}

func dictPossiblePhrase(text string, freq uint32) possiblePhrase {
	return possiblePhrase{text: text, freq: freq}
}

func (p possiblePhrase) String() string { return p.text }

// GoString gives a trace-friendly dump including freq, for Debug-level
// candidate scan logging.
func (p possiblePhrase) GoString() string {
	if p.isLiteral {
		return fmt.Sprintf("%q(literal)", p.text)
	}
	return fmt.Sprintf("%q(freq=%d)", p.text, p.freq)
}

// possibleInterval is the internal counterpart of Interval during path
// search: end - start always equals the number of buffer positions it
// covers (a literal char counts as 1, same as one syllable).
type possibleInterval struct {
	start  int
	end    int
	phrase possiblePhrase
}

func (iv possibleInterval) length() int { return iv.end - iv.start }

// contains reports whether iv fully contains other when both are viewed
// as spans, used by trim_paths' path-containment check.
func (iv possibleInterval) contains(other possibleInterval) bool {
	return iv.start <= other.start && other.end <= iv.end
}

func (iv possibleInterval) toInterval() Interval {
	return Interval{
		Start:    iv.start,
		End:      iv.end,
		IsPhrase: !iv.phrase.isLiteral,
		Phrase:   iv.phrase.text,
	}
}

func (iv possibleInterval) String() string {
	return "[" + strconv.Itoa(iv.start) + "," + strconv.Itoa(iv.end) + ":" + iv.phrase.text + "]"
}

// GoString gives a trace-friendly dump including freq, for Debug-level
// trim_paths logging.
func (iv possibleInterval) GoString() string {
	return fmt.Sprintf("[%d,%d:%#v]", iv.start, iv.end, iv.phrase)
}
