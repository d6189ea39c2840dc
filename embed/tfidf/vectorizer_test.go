package tfidf

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}

var corpus = []string{
	"Senior data engineer with Python, SQL and Airflow. Built ETL pipelines on AWS.",
	"Data engineer experienced in Python, Spark and SQL data warehousing.",
	"Product designer focused on Figma, user research and visual design systems.",
	"Frontend developer working with React, TypeScript and CSS.",
}

func TestFit_Deterministic(t *testing.T) {
	v1, err := Fit(corpus, 384)
	require.NoError(t, err)
	v2, err := Fit(corpus, 384)
	require.NoError(t, err)

	require.Equal(t, v1.terms, v2.terms)
	require.Equal(t, v1.idf, v2.idf)

	ctx := context.Background()
	e1, err := v1.EmbedText(ctx, corpus[0])
	require.NoError(t, err)
	e2, err := v2.EmbedText(ctx, corpus[0])
	require.NoError(t, err)
	assert.Equal(t, e1, e2)
}

func TestFit_EmptyCorpus(t *testing.T) {
	_, err := Fit(nil, 384)
	assert.ErrorIs(t, err, ErrEmptyCorpus)

	// Stop-words only is as empty as no text at all.
	_, err = Fit([]string{"the and of", "a an"}, 384)
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestFit_InvalidMaxFeatures(t *testing.T) {
	_, err := Fit(corpus, 0)
	assert.Error(t, err)
}

func TestFit_CapsVocabulary(t *testing.T) {
	v, err := Fit(corpus, 5)
	require.NoError(t, err)

	assert.Equal(t, 5, v.Dimensions())
	// "data" appears most often across the corpus and must survive the cap.
	assert.Contains(t, v.terms, "data")
}

func TestEmbedText_UnitLength(t *testing.T) {
	v, err := Fit(corpus, 384)
	require.NoError(t, err)

	vec, err := v.EmbedText(context.Background(), corpus[1])
	require.NoError(t, err)
	require.Len(t, vec, v.Dimensions())

	assert.InDelta(t, 1.0, math.Sqrt(dot(vec, vec)), 1e-5)
}

func TestEmbedText_OutOfVocabulary(t *testing.T) {
	v, err := Fit(corpus, 384)
	require.NoError(t, err)

	vec, err := v.EmbedText(context.Background(), "zzzz qqqq")
	require.NoError(t, err)

	assert.Equal(t, 0.0, dot(vec, vec))
}

func TestEmbedText_SimilarityOrdering(t *testing.T) {
	v, err := Fit(corpus, 384)
	require.NoError(t, err)

	ctx := context.Background()
	query, err := v.EmbedText(ctx, "python sql data pipelines")
	require.NoError(t, err)
	engineer, err := v.EmbedText(ctx, corpus[0])
	require.NoError(t, err)
	designer, err := v.EmbedText(ctx, corpus[2])
	require.NoError(t, err)

	assert.Greater(t, dot(query, engineer), dot(query, designer),
		"a data engineering query must score the data engineer above the designer")
}

func TestEmbedTexts(t *testing.T) {
	v, err := Fit(corpus, 384)
	require.NoError(t, err)

	vecs, err := v.EmbedTexts(context.Background(), corpus)
	require.NoError(t, err)
	require.Len(t, vecs, len(corpus))
	for _, vec := range vecs {
		assert.Len(t, vec, v.Dimensions())
	}
}

func TestVectorizer_BinaryRoundTrip(t *testing.T) {
	v, err := Fit(corpus, 384)
	require.NoError(t, err)

	data, err := v.MarshalBinary()
	require.NoError(t, err)

	restored := &Vectorizer{}
	require.NoError(t, restored.UnmarshalBinary(data))

	assert.Equal(t, v.terms, restored.terms)
	assert.Equal(t, v.idf, restored.idf)

	ctx := context.Background()
	want, err := v.EmbedText(ctx, "python sql data pipelines")
	require.NoError(t, err)
	got, err := restored.EmbedText(ctx, "python sql data pipelines")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestVectorizer_UnmarshalTruncated(t *testing.T) {
	v, err := Fit(corpus, 384)
	require.NoError(t, err)

	data, err := v.MarshalBinary()
	require.NoError(t, err)

	restored := &Vectorizer{}
	assert.Error(t, restored.UnmarshalBinary(data[:len(data)/2]))
	assert.Error(t, restored.UnmarshalBinary(data[:2]))
}
