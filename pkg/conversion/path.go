package conversion

import (
	"fmt"
	"strings"
)

// possiblePath is an ordered, contiguous segmentation of the buffer: a
// list of possibleIntervals covering [0, bufferLen). It is comparable by
// its computed score, which is global to the whole path and must never
// be approximated as a sum of per-interval contributions.
type possiblePath struct {
	intervals []possibleInterval
}

func (p possiblePath) withInterval(iv possibleInterval) possiblePath {
	next := make([]possibleInterval, len(p.intervals), len(p.intervals)+1)
	copy(next, p.intervals)
	next = append(next, iv)
	return possiblePath{intervals: next}
}

func (p possiblePath) end() int {
	if len(p.intervals) == 0 {
		return 0
	}
	return p.intervals[len(p.intervals)-1].end
}

func (p possiblePath) String() string {
	var b strings.Builder
	for i, iv := range p.intervals {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(iv.String())
	}
	return b.String()
}

// GoString gives a trace-friendly dump including the computed score, for
// Debug-level trim_paths logging.
func (p possiblePath) GoString() string {
	parts := make([]string, len(p.intervals))
	for i, iv := range p.intervals {
		parts[i] = iv.GoString()
	}
	return fmt.Sprintf("%s (score=%d)", strings.Join(parts, " "), p.score())
}

// score implements the fixed four-term weighted sum from the scoring
// rules: rule_largest_sum, rule_largest_avgwordlen, rule_smallest_
// lenvariance and rule_largest_freqsum. Higher is better. This is
// computed fresh over the whole path every time; it is not additive
// across intervals and must not be cached incrementally.
func (p possiblePath) score() int {
	n := len(p.intervals)
	if n == 0 {
		return 0
	}

	sum := 0
	for _, iv := range p.intervals {
		sum += iv.length()
	}

	avgWordLen := 6 * sum / n

	lenVariance := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := p.intervals[i].length() - p.intervals[j].length()
			if d < 0 {
				d = -d
			}
			lenVariance -= d
		}
	}

	freqSum := 0
	for _, iv := range p.intervals {
		f := int(iv.phrase.freq)
		if iv.length() == 1 {
			f /= 512
		}
		freqSum += f
	}

	return 1000*sum + 1000*avgWordLen + 100*lenVariance + freqSum
}

// contains implements the path-containment check from trim_paths: A
// contains B iff every interval of B is covered by some interval of A,
// walked in parallel as the intervals of both paths are sorted by start.
func (a possiblePath) contains(b possiblePath) bool {
	big := 0
	for sml := 0; sml < len(b.intervals); sml++ {
		for {
			if big >= len(a.intervals) {
				return false
			}
			if a.intervals[big].start >= b.intervals[sml].end {
				return false
			}
			if a.intervals[big].contains(b.intervals[sml]) {
				break
			}
			big++
		}
	}
	return true
}
