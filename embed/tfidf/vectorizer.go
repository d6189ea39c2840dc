// Package tfidf provides a deterministic TF-IDF embedding provider.
// It is fitted on the candidate corpus at index build time, lower-casing
// input, splitting on non-alphanumeric boundaries, and removing stop-words.
// The fitted state serializes into the semantic index segment so queries
// embed consistently across restarts.
package tfidf

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
)

// ErrEmptyCorpus is returned by Fit when the corpus contains no usable terms.
var ErrEmptyCorpus = errors.New("tfidf: corpus contains no usable terms")

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "by": {}, "for": {}, "from": {}, "has": {}, "he": {},
	"in": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {},
	"or": {}, "that": {}, "the": {}, "to": {}, "was": {}, "were": {},
	"will": {}, "with": {}, "this": {}, "but": {}, "they": {},
	"have": {}, "had": {}, "i": {}, "my": {}, "our": {}, "we": {},
}

// analyze lower-cases text, splits on non-alphanumeric boundaries, and
// removes stop-words and single-character fragments. Terms are kept
// unstemmed so technical vocabulary ("kubernetes", "postgresql") stays
// intact.
func analyze(text string) []string {
	text = strings.ToLower(text)
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	terms := make([]string, 0, len(words)/2)
	for _, word := range words {
		if len(word) < 2 {
			continue
		}
		if _, isStop := stopWords[word]; isStop {
			continue
		}
		terms = append(terms, word)
	}
	return terms
}

// Vectorizer is a corpus-fitted TF-IDF embedder. It implements the
// embed.Embedder interface. A Vectorizer is immutable after Fit and safe
// for concurrent use.
type Vectorizer struct {
	vocab map[string]int // term -> row
	terms []string       // row -> term, sorted alphabetically
	idf   []float64
}

// Fit builds a Vectorizer from the given corpus. maxFeatures caps the
// vocabulary: when the corpus has more distinct terms, the most frequent
// ones across the corpus are kept (ties broken alphabetically). The
// selected terms are assigned rows in alphabetical order, so fitting the
// same corpus always yields the same model.
func Fit(texts []string, maxFeatures int) (*Vectorizer, error) {
	if maxFeatures <= 0 {
		return nil, fmt.Errorf("tfidf: maxFeatures must be positive, got %d", maxFeatures)
	}

	df := make(map[string]int) // documents containing term
	cf := make(map[string]int) // total occurrences across corpus
	docs := 0
	for _, text := range texts {
		terms := analyze(text)
		if len(terms) == 0 {
			continue
		}
		docs++
		seen := make(map[string]struct{}, len(terms))
		for _, term := range terms {
			cf[term]++
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				df[term]++
			}
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyCorpus
	}

	selected := make([]string, 0, len(df))
	for term := range df {
		selected = append(selected, term)
	}
	if len(selected) > maxFeatures {
		sort.Slice(selected, func(a, b int) bool {
			if cf[selected[a]] != cf[selected[b]] {
				return cf[selected[a]] > cf[selected[b]]
			}
			return selected[a] < selected[b]
		})
		selected = selected[:maxFeatures]
	}
	sort.Strings(selected)

	v := &Vectorizer{
		vocab: make(map[string]int, len(selected)),
		terms: selected,
		idf:   make([]float64, len(selected)),
	}
	for row, term := range selected {
		v.vocab[term] = row
		// Smoothed idf keeps weights finite for terms present in every document.
		v.idf[row] = math.Log(float64(1+docs)/float64(1+df[term])) + 1
	}
	return v, nil
}

// Dimensions returns the length of produced vectors, which is the fitted
// vocabulary size (at most the maxFeatures passed to Fit).
func (v *Vectorizer) Dimensions() int {
	return len(v.terms)
}

// EmbedText generates an L2-normalized TF-IDF vector for the given text.
// Text sharing no vocabulary with the fitted corpus embeds to a zero vector.
func (v *Vectorizer) EmbedText(ctx context.Context, text string) ([]float32, error) {
	counts := make(map[int]int)
	for _, term := range analyze(text) {
		if row, ok := v.vocab[term]; ok {
			counts[row]++
		}
	}

	weights := make([]float64, len(v.terms))
	var sumSquares float64
	for row, count := range counts {
		w := float64(count) * v.idf[row]
		weights[row] = w
		sumSquares += w * w
	}

	vector := make([]float32, len(v.terms))
	if sumSquares > 0 {
		norm := math.Sqrt(sumSquares)
		for row, w := range weights {
			vector[row] = float32(w / norm)
		}
	}
	return vector, nil
}

// EmbedTexts generates vectors for multiple texts.
func (v *Vectorizer) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := v.EmbedText(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// MarshalBinary stores: vocabSize(uint32), then for each row:
// termLen(uint32), term bytes, idf(float64).
func (v *Vectorizer) MarshalBinary() ([]byte, error) {
	size := 4
	for _, term := range v.terms {
		size += 4 + len(term) + 8
	}
	out := make([]byte, 0, size)
	putU32 := func(val uint32) { b := make([]byte, 4); binary.LittleEndian.PutUint32(b, val); out = append(out, b...) }
	putF64 := func(val float64) {
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, math.Float64bits(val))
		out = append(out, b...)
	}
	putU32(uint32(len(v.terms)))
	for row, term := range v.terms {
		putU32(uint32(len(term)))
		out = append(out, []byte(term)...)
		putF64(v.idf[row])
	}
	return out, nil
}

// UnmarshalBinary restores a fitted Vectorizer from bytes.
func (v *Vectorizer) UnmarshalBinary(data []byte) error {
	if len(data) < 4 {
		return errors.New("tfidf: invalid data")
	}
	off := 0
	getU32 := func() uint32 { val := binary.LittleEndian.Uint32(data[off : off+4]); off += 4; return val }
	getF64 := func() float64 {
		val := math.Float64frombits(binary.LittleEndian.Uint64(data[off : off+8]))
		off += 8
		return val
	}
	n := int(getU32())
	terms := make([]string, n)
	idf := make([]float64, n)
	vocab := make(map[string]int, n)
	for row := 0; row < n; row++ {
		if off+4 > len(data) {
			return errors.New("tfidf: truncated")
		}
		termLen := int(getU32())
		if off+termLen > len(data) {
			return errors.New("tfidf: truncated term")
		}
		terms[row] = string(data[off : off+termLen])
		off += termLen
		if off+8 > len(data) {
			return errors.New("tfidf: truncated idf")
		}
		idf[row] = getF64()
		vocab[terms[row]] = row
	}
	v.terms = terms
	v.idf = idf
	v.vocab = vocab
	return nil
}
