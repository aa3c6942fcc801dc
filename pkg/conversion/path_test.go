package conversion

import "testing"

func iv(start, end int, freq uint32) possibleInterval {
	return possibleInterval{start: start, end: end, phrase: dictPossiblePhrase("x", freq)}
}

func TestScorePrefersFewerFlatterIntervals(t *testing.T) {
	twoEven := possiblePath{intervals: []possibleInterval{iv(0, 2, 200), iv(2, 4, 200)}}
	fourSingles := possiblePath{intervals: []possibleInterval{iv(0, 1, 1), iv(1, 2, 1), iv(2, 3, 1), iv(3, 4, 1)}}

	if twoEven.score() <= fourSingles.score() {
		t.Fatalf("score(twoEven)=%d should beat score(fourSingles)=%d", twoEven.score(), fourSingles.score())
	}
}

func TestScoreSingleSyllablePenalty(t *testing.T) {
	single := possiblePath{intervals: []possibleInterval{iv(0, 1, 512)}}
	// 512/512 == 1, so the freqsum term contributes exactly 1.
	if got, want := single.score(), 1000+1000*6+0+1; got != want {
		t.Fatalf("score(single) = %d, want %d", got, want)
	}
}

func TestPathContainsRefinement(t *testing.T) {
	coarse := possiblePath{intervals: []possibleInterval{iv(0, 4, 1)}}
	fine := possiblePath{intervals: []possibleInterval{iv(0, 2, 1), iv(2, 4, 1)}}

	if !coarse.contains(fine) {
		t.Fatalf("coarse path should contain its own refinement")
	}
	if fine.contains(coarse) {
		t.Fatalf("a refinement should not contain its coarser parent")
	}
}

func TestTrimPathsDropsRefinements(t *testing.T) {
	coarse := possiblePath{intervals: []possibleInterval{iv(0, 4, 1)}}
	fine := possiblePath{intervals: []possibleInterval{iv(0, 2, 1), iv(2, 4, 1)}}
	unrelated := possiblePath{intervals: []possibleInterval{iv(0, 1, 1), iv(1, 4, 1)}}

	kept := trimPaths([]possiblePath{coarse, fine, unrelated})

	for _, p := range kept {
		if len(p.intervals) == 2 && p.intervals[0].end == 2 {
			t.Fatalf("trim_paths should have dropped the refinement of an already-kept coarser path: %v", kept)
		}
	}
}

func TestGlueFoldMergesAdjacentIntervals(t *testing.T) {
	comp := Composition{Glues: []int{2}}
	merged := applyGlue(comp, []Interval{
		{Start: 0, End: 2, IsPhrase: true, Phrase: "測試"},
		{Start: 2, End: 4, IsPhrase: true, Phrase: "一下"},
	})
	if len(merged) != 1 {
		t.Fatalf("applyGlue: got %d intervals, want 1", len(merged))
	}
	if merged[0].Phrase != "測試一下" || merged[0].Start != 0 || merged[0].End != 4 {
		t.Fatalf("applyGlue: got %+v, want merged [0,4) 測試一下", merged[0])
	}
}

func TestGlueFoldLeavesNonGluedIntervalsAlone(t *testing.T) {
	comp := Composition{}
	merged := applyGlue(comp, []Interval{
		{Start: 0, End: 2, IsPhrase: true, Phrase: "測試"},
		{Start: 2, End: 4, IsPhrase: true, Phrase: "一下"},
	})
	if len(merged) != 2 {
		t.Fatalf("applyGlue without a glue point should not merge: got %v", merged)
	}
}
