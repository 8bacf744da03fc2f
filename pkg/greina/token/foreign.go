package token

import "strings"

// DefaultNativeRatio is the minimum ratio of recognized-language word
// tokens below which a sentence is classified as foreign.
const DefaultNativeRatio = 0.5

// Characters that only occur in the target language's orthography.
// A word containing one of these is counted as native even when it is
// not found in the lexicon.
const nativeLetters = "áðéíóúýþæöÁÐÉÍÓÚÝÞÆÖ"

// AreForeign classifies a token sequence as foreign-language: the ratio
// of native-looking word tokens to all word tokens falls below minRatio.
// Person and entity names, numbers and punctuation are not counted.
// A sequence without word tokens is never foreign.
func AreForeign(seq Sequence, minRatio float64) bool {
	if minRatio <= 0 {
		minRatio = DefaultNativeRatio
	}
	words, native := 0, 0
	for _, t := range seq {
		if t.Kind != Word {
			continue
		}
		words++
		if t.Val != "" || strings.ContainsAny(t.Text, nativeLetters) {
			native++
		}
	}
	if words == 0 {
		return false
	}
	return float64(native)/float64(words) < minRatio
}
