// Package zhuyin holds the phonetic value types shared by the dictionary
// and conversion packages: the Bopomofo component alphabet and the
// Syllable it composes into.
package zhuyin

// Initial is the leading consonant of a syllable, or InitialNone for a
// syllable that starts directly on its medial/final (e.g. "an").
type Initial uint8

// Medial is the glide between the initial and the final.
type Medial uint8

// Final is the vowel/coda part of a syllable.
type Final uint8

// Tone is the tone mark. Tone1 is the unmarked (first) tone.
type Tone uint8

const (
	InitialNone Initial = iota
	InitialB
	InitialP
	InitialM
	InitialF
	InitialD
	InitialT
	InitialN
	InitialL
	InitialG
	InitialK
	InitialH
	InitialJ
	InitialQ
	InitialX
	InitialZh
	InitialCh
	InitialSh
	InitialR
	InitialZ
	InitialC
	InitialS
)

const (
	MedialNone Medial = iota
	MedialI
	MedialU
	MedialU2 // ㄩ
)

const (
	FinalNone Final = iota
	FinalA
	FinalO
	FinalE
	FinalEh
	FinalAi
	FinalEi
	FinalAo
	FinalOu
	FinalAn
	FinalEn
	FinalAng
	FinalEng
	FinalEr
)

const (
	Tone1 Tone = iota + 1
	Tone2
	Tone3
	Tone4
	Tone5
)

var initialNames = map[Initial]string{
	InitialNone: "", InitialB: "b", InitialP: "p", InitialM: "m", InitialF: "f",
	InitialD: "d", InitialT: "t", InitialN: "n", InitialL: "l",
	InitialG: "g", InitialK: "k", InitialH: "h",
	InitialJ: "j", InitialQ: "q", InitialX: "x",
	InitialZh: "zh", InitialCh: "ch", InitialSh: "sh", InitialR: "r",
	InitialZ: "z", InitialC: "c", InitialS: "s",
}

var medialNames = map[Medial]string{
	MedialNone: "", MedialI: "i", MedialU: "u", MedialU2: "ü",
}

var finalNames = map[Final]string{
	FinalNone: "", FinalA: "a", FinalO: "o", FinalE: "e", FinalEh: "ê",
	FinalAi: "ai", FinalEi: "ei", FinalAo: "ao", FinalOu: "ou",
	FinalAn: "an", FinalEn: "en", FinalAng: "ang", FinalEng: "eng", FinalEr: "er",
}

func (i Initial) String() string { return initialNames[i] }
func (m Medial) String() string  { return medialNames[m] }
func (f Final) String() string   { return finalNames[f] }
