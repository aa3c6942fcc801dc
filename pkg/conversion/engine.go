package conversion

import (
	"slices"

	"github.com/charmbracelet/log"
	"golang.org/x/text/unicode/norm"

	"github.com/hanzikit/chewing/pkg/dictionary"
	"github.com/hanzikit/chewing/pkg/zhuyin"
)

// Engine is the conversion contract the editor drives: segment a
// Composition into Intervals, or cycle through alternative
// segmentations in a stable order.
type Engine interface {
	Convert(dict dictionary.Dictionary, comp Composition) []Interval
	ConvertNext(dict dictionary.Dictionary, comp Composition, n int) []Interval
}

// ChewingEngine is the only Engine implementation: a single-threaded,
// stateless conversion core. It owns no background work and keeps no
// state between calls; each Convert/ConvertNext call runs to completion
// on the caller's goroutine.
type ChewingEngine struct{}

// NewEngine builds a ChewingEngine.
func NewEngine() *ChewingEngine { return &ChewingEngine{} }

// Convert segments comp into the single best-scoring Interval sequence.
func (e *ChewingEngine) Convert(dict dictionary.Dictionary, comp Composition) []Interval {
	if len(comp.Buffer) == 0 {
		return nil
	}
	intervals := findIntervals(dict, comp)
	best := findBestPath(len(comp.Buffer), intervals)
	return applyGlue(comp, toIntervals(best.intervals))
}

// ConvertNext enumerates every candidate segmentation, trims dominated
// ones, and returns the n-th best (cycling modulo the trimmed count).
func (e *ChewingEngine) ConvertNext(dict dictionary.Dictionary, comp Composition, n int) []Interval {
	if len(comp.Buffer) == 0 {
		return nil
	}
	paths := findAllPaths(dict, comp)
	if len(paths) == 0 {
		log.Warnf("conversion: find_all_paths produced no candidates for a non-empty buffer")
		return nil
	}
	trimmed := trimPaths(paths)
	if len(trimmed) == 0 {
		log.Warnf("conversion: trim_paths discarded every candidate path")
		return nil
	}

	slices.SortFunc(trimmed, func(a, b possiblePath) int {
		return a.score() - b.score()
	})
	slices.Reverse(trimmed)

	idx := n % len(trimmed)
	if idx < 0 {
		idx += len(trimmed)
	}
	return applyGlue(comp, toIntervals(trimmed[idx].intervals))
}

func toIntervals(ivs []possibleInterval) []Interval {
	out := make([]Interval, len(ivs))
	for i, iv := range ivs {
		out[i] = iv.toInterval()
	}
	return out
}

// findBestPhrase implements §4.3: break check, literal passthrough,
// all-syllables requirement, then a selection-filtered max-freq scan.
func findBestPhrase(dict dictionary.Dictionary, comp Composition, start, end int) (possiblePhrase, bool) {
	if comp.hasBreakIn(start, end) {
		return possiblePhrase{}, false
	}

	span := comp.Buffer[start:end]

	if len(span) == 1 && span[0].IsChar() {
		return literalPossiblePhrase(span[0]), true
	}

	syllables := make([]zhuyin.Syllable, len(span))
	for i, s := range span {
		if !s.IsSyllable() {
			return possiblePhrase{}, false
		}
		syllables[i] = s.Syllable()
	}

	selections := comp.selectionsWithin(start, end)

	var chosenText string
	var chosenFreq uint32
	found := false
	for _, p := range dict.LookupAllPhrases(syllables) {
		if !compatibleWithSelections(p.Text, start, selections) {
			continue
		}
		if !found || p.Freq > chosenFreq {
			chosenText, chosenFreq = p.Text, p.Freq
			found = true
		}
	}
	if !found {
		return possiblePhrase{}, false
	}
	result := dictPossiblePhrase(chosenText, chosenFreq)
	log.Debugf("conversion: candidate scan [%d,%d) -> %#v", start, end, result)
	return result, true
}

// compatibleWithSelections checks every selection fully inside [start,
// start+runeLen(phrase)) against the candidate phrase's matching
// substring, counted in user-visible characters (runes) after NFC
// normalization so combining sequences compare by visible character.
func compatibleWithSelections(phrase string, start int, selections []Selection) bool {
	if len(selections) == 0 {
		return true
	}
	runes := []rune(norm.NFC.String(phrase))
	for _, s := range selections {
		offset := s.Start - start
		length := s.End - s.Start
		if offset < 0 || offset+length > len(runes) {
			return false
		}
		if string(runes[offset:offset+length]) != norm.NFC.String(s.Phrase) {
			return false
		}
	}
	return true
}

// findIntervals implements §4.4: every (begin, end) span that yields a
// phrase, O(n^2) in buffer length.
func findIntervals(dict dictionary.Dictionary, comp Composition) []possibleInterval {
	n := len(comp.Buffer)
	var intervals []possibleInterval
	for begin := 0; begin <= n; begin++ {
		for end := begin; end <= n; end++ {
			if begin == end {
				continue
			}
			if phrase, ok := findBestPhrase(dict, comp, begin, end); ok {
				intervals = append(intervals, possibleInterval{start: begin, end: end, phrase: phrase})
			}
		}
	}
	return intervals
}

// findBestPath implements §4.5: a single-pass DP over intervals sorted
// by end position. Scores are recomputed in full for every candidate;
// they are never treated as additive across intervals.
func findBestPath(bufferLen int, intervals []possibleInterval) possiblePath {
	sorted := append([]possibleInterval(nil), intervals...)
	slices.SortFunc(sorted, func(a, b possibleInterval) int { return a.end - b.end })

	best := make([]possiblePath, bufferLen+1)
	for _, iv := range sorted {
		cand := best[iv.start].withInterval(iv)
		if cand.score() > best[iv.end].score() {
			best[iv.end] = cand
		}
	}
	return best[bufferLen]
}

// pathGraphKey is the memoization key for find_all_paths: a (start, end)
// span.
type pathGraphKey struct {
	start, end int
}

// findAllPaths implements §4.6: a memoized recursive enumeration of
// every contiguous segmentation whose every segment is the best phrase
// for its span, in the deterministic order produced by recursing end =
// start+1 .. target ascending.
func findAllPaths(dict dictionary.Dictionary, comp Composition) []possiblePath {
	target := len(comp.Buffer)
	graph := make(map[pathGraphKey]*possiblePhraseResult)

	var paths []possiblePath
	var recurse func(start int, prefix possiblePath)
	recurse = func(start int, prefix possiblePath) {
		if start == target {
			paths = append(paths, prefix)
			return
		}
		for end := start + 1; end <= target; end++ {
			key := pathGraphKey{start, end}
			result, cached := graph[key]
			if !cached {
				phrase, ok := findBestPhrase(dict, comp, start, end)
				result = &possiblePhraseResult{phrase: phrase, ok: ok}
				graph[key] = result
			}
			if !result.ok {
				continue
			}
			recurse(end, prefix.withInterval(possibleInterval{start: start, end: end, phrase: result.phrase}))
		}
	}
	recurse(0, possiblePath{})
	return paths
}

type possiblePhraseResult struct {
	phrase possiblePhrase
	ok     bool
}

// trimPaths implements §4.7: drop any path that is a refinement (fully
// contained within) an already-kept path, and in turn drop any
// previously kept path that the new candidate contains. This order is
// taken verbatim from the documented algorithm; do not "fix" it.
func trimPaths(paths []possiblePath) []possiblePath {
	var kept []possiblePath
	for _, cand := range paths {
		dropped := false
		for _, p := range kept {
			if p.contains(cand) {
				dropped = true
			}
		}
		if dropped {
			log.Debugf("conversion: trim_paths dropped %#v", cand)
			continue
		}
		filtered := kept[:0]
		for _, p := range kept {
			if !cand.contains(p) {
				filtered = append(filtered, p)
			} else {
				log.Debugf("conversion: trim_paths dropped %#v (superseded by %#v)", p, cand)
			}
		}
		kept = append(filtered, cand)
	}
	return kept
}

// applyGlue implements §4.9: fold intervals left, merging a new interval
// into the previous one when the previous one ends at a recorded glue
// point.
func applyGlue(comp Composition, intervals []Interval) []Interval {
	var out []Interval
	for _, iv := range intervals {
		if len(out) > 0 && comp.isGlue(out[len(out)-1].End) {
			prev := out[len(out)-1]
			out[len(out)-1] = Interval{
				Start:    prev.Start,
				End:      iv.End,
				IsPhrase: true,
				Phrase:   prev.Phrase + iv.Phrase,
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}
