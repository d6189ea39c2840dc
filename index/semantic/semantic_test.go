package semantic

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/embed/mock"
	"github.com/Swetcha17/recruitment-automation/index"
)

func testProfile(source, name, role, text string) *core.CandidateProfile {
	return &core.CandidateProfile{
		Id:           core.IDFromContent(source),
		Name:         name,
		RoleCategory: role,
		ResumeText:   text,
		SourceFile:   source,
		ContentHash:  core.HashContent(text),
		Stage:        core.StageUploaded,
		IngestedAt:   time.Now().UTC(),
	}
}

func testCorpus() []*core.CandidateProfile {
	return []*core.CandidateProfile{
		testProfile("data/alice.txt", "Alice", "data-engineering",
			"Senior data engineer. Python, SQL, Airflow, dbt. Built ETL pipelines on AWS Redshift."),
		testProfile("design/bob.txt", "Bob", "design",
			"Product designer. Figma, user research, wireframes, design systems and prototyping."),
		testProfile("frontend/carol.txt", "Carol", "frontend",
			"Frontend developer. React, TypeScript, CSS, accessibility and performance tuning."),
		testProfile("data/dave.txt", "Dave", "data-engineering",
			"Data engineer with Spark, Python and SQL. Streaming pipelines with Kafka."),
	}
}

func TestBuildAndSearch(t *testing.T) {
	idx, err := New("")
	require.NoError(t, err)

	info, err := idx.Build(context.Background(), testCorpus())
	require.NoError(t, err)
	assert.Equal(t, 4, info.Documents)
	assert.Equal(t, 0, info.Skipped)
	assert.Equal(t, 4, idx.Documents())

	hits, err := idx.Search(context.Background(), "python sql data pipelines", 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	dataIds := map[core.ID]bool{
		core.IDFromContent("data/alice.txt"): true,
		core.IDFromContent("data/dave.txt"):  true,
	}
	assert.True(t, dataIds[hits[0].Id], "a data engineer should rank first")
	for _, h := range hits {
		assert.GreaterOrEqual(t, h.Score, 0.0)
		assert.LessOrEqual(t, h.Score, 1.0)
	}
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}
}

func TestSearch_EmptyIndex(t *testing.T) {
	idx, err := New("")
	require.NoError(t, err)

	_, err = idx.Search(context.Background(), "anything", 5)
	assert.ErrorIs(t, err, index.ErrEmptyIndex)

	// Building zero documents still leaves the index empty.
	_, err = idx.Build(context.Background(), nil)
	require.NoError(t, err)
	_, err = idx.Search(context.Background(), "anything", 5)
	assert.ErrorIs(t, err, index.ErrEmptyIndex)
}

func TestSearch_InvalidK(t *testing.T) {
	idx, err := New("")
	require.NoError(t, err)
	_, err = idx.Build(context.Background(), testCorpus())
	require.NoError(t, err)

	_, err = idx.Search(context.Background(), "python", 0)
	assert.Error(t, err)
}

func TestBuild_SkipsShortDocuments(t *testing.T) {
	docs := testCorpus()
	docs = append(docs, testProfile("data/empty.txt", "", "", ""))

	idx, err := New("")
	require.NoError(t, err)
	info, err := idx.Build(context.Background(), docs)
	require.NoError(t, err)

	assert.Equal(t, 4, info.Documents)
	assert.Equal(t, 1, info.Skipped)

	hits, err := idx.Search(context.Background(), "python sql", 10)
	require.NoError(t, err)
	for _, h := range hits {
		assert.NotEqual(t, core.IDFromContent("data/empty.txt"), h.Id)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	ctx := context.Background()

	run := func() []index.Hit {
		idx, err := New("")
		require.NoError(t, err)
		_, err = idx.Build(ctx, testCorpus())
		require.NoError(t, err)
		hits, err := idx.Search(ctx, "react frontend developer", 4)
		require.NoError(t, err)
		return hits
	}

	first := run()
	second := run()
	assert.Equal(t, first, second, "rebuilding the same corpus must reproduce the same ranking")
}

func TestSearch_TieBreakById(t *testing.T) {
	// Two distinct files with identical content embed to identical vectors.
	a := testProfile("data/twin_a.txt", "Twin", "data-engineering", "Go developer building backend services.")
	b := testProfile("data/twin_b.txt", "Twin", "data-engineering", "Go developer building backend services.")
	require.NotEqual(t, a.Id, b.Id)

	idx, err := New("")
	require.NoError(t, err)
	_, err = idx.Build(context.Background(), []*core.CandidateProfile{a, b})
	require.NoError(t, err)

	hits, err := idx.Search(context.Background(), "go backend developer", 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, hits[0].Score, hits[1].Score)

	lo, hi := a.Id, b.Id
	if hi < lo {
		lo, hi = hi, lo
	}
	assert.Equal(t, lo, hits[0].Id)
	assert.Equal(t, hi, hits[1].Id)
}

func TestPersistence_Reload(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	idx, err := New(dir)
	require.NoError(t, err)
	_, err = idx.Build(ctx, testCorpus())
	require.NoError(t, err)

	want, err := idx.Search(ctx, "python sql data pipelines", 4)
	require.NoError(t, err)

	// A fresh Index over the same directory serves identical results.
	reopened, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, 4, reopened.Documents())
	got, err := reopened.Search(ctx, "python sql data pipelines", 4)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPersistence_CleansOldSegments(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	idx, err := New(dir)
	require.NoError(t, err)
	_, err = idx.Build(ctx, testCorpus())
	require.NoError(t, err)
	_, err = idx.Build(ctx, testCorpus())
	require.NoError(t, err)

	// A leftover temp file from an interrupted run is swept by the next build.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seg_1.vec.tmp"), []byte("junk"), 0o644))
	_, err = idx.Build(ctx, testCorpus())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var segs, tmps int
	for _, e := range entries {
		switch {
		case e.Name() == currentFile:
		case filepath.Ext(e.Name()) == ".tmp":
			tmps++
		default:
			segs++
		}
	}
	assert.Equal(t, 1, segs, "only the live segment should remain")
	assert.Equal(t, 0, tmps)
}

func TestStale(t *testing.T) {
	docs := testCorpus()
	idx, err := New("")
	require.NoError(t, err)

	// Before any build everything is stale.
	stale := idx.Stale(docs)
	assert.Len(t, stale, len(docs))

	_, err = idx.Build(context.Background(), docs)
	require.NoError(t, err)
	assert.Empty(t, idx.Stale(docs))

	// Changed text and a brand-new document both show up.
	docs[0].ResumeText = "Completely rewritten resume text about data engineering."
	docs[0].ContentHash = core.HashContent(docs[0].ResumeText)
	newDoc := testProfile("data/erin.txt", "Erin", "data-engineering", "MLOps engineer, Python and Kubernetes.")

	stale = idx.Stale(append(docs, newDoc))
	require.Len(t, stale, 2)
	assert.True(t, sort.SliceIsSorted(stale, func(a, b int) bool { return stale[a] < stale[b] }))
	assert.Contains(t, stale, docs[0].Id)
	assert.Contains(t, stale, newDoc.Id)
}

func TestBuild_ExternalEmbedder(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	embedder := mock.NewMockEmbedder()

	idx, err := New(dir, WithEmbedder(embedder))
	require.NoError(t, err)
	_, err = idx.Build(ctx, testCorpus())
	require.NoError(t, err)

	hits, err := idx.Search(ctx, "python sql", 3)
	require.NoError(t, err)
	assert.Len(t, hits, 3)

	// Reopening without an embedder cannot serve queries for this segment.
	_, err = New(dir)
	assert.ErrorIs(t, err, ErrExternalEmbedderRequired)

	// With one configured, reopening works.
	reopened, err := New(dir, WithEmbedder(mock.NewMockEmbedder()))
	require.NoError(t, err)
	got, err := reopened.Search(ctx, "python sql", 3)
	require.NoError(t, err)
	assert.Equal(t, hits, got)
}

func TestVPTreeMatchesFullScan(t *testing.T) {
	// Enough documents to cross the VP-tree threshold.
	n := vpTreeMinDocs + 44
	docs := make([]*core.CandidateProfile, n)
	for i := 0; i < n; i++ {
		docs[i] = testProfile(
			fmt.Sprintf("bulk/candidate_%03d.txt", i),
			fmt.Sprintf("Candidate %d", i),
			"bulk",
			fmt.Sprintf("Engineer number %d with skill-%d and skill-%d.", i, i%17, i%23),
		)
	}

	idx, err := New("", WithEmbedder(mock.NewMockEmbedder()))
	require.NoError(t, err)
	_, err = idx.Build(context.Background(), docs)
	require.NoError(t, err)

	s := idx.snap.Load()
	require.NotNil(t, s.root, "corpus of this size must build a VP-tree")

	for _, query := range []string{"skill-3 engineer", "skill-11", "number 200"} {
		q, err := s.querier.EmbedText(context.Background(), query)
		require.NoError(t, err)

		// Reference ranking from a full scan with the same tie rule.
		qm := magnitude(q)
		require.NotZero(t, qm)
		expected := make([]candidate, 0, n)
		for row := range s.vecs {
			if s.mags[row] == 0 {
				continue
			}
			expected = append(expected, candidate{row: row, dist: chordDist(dot(q, s.vecs[row]) / (qm * s.mags[row]))})
		}
		sort.Slice(expected, func(a, b int) bool { return worse(expected[b], expected[a]) })

		const k = 10
		hits := s.search(q, k)
		require.Len(t, hits, k)
		for i := 0; i < k; i++ {
			assert.Equal(t, s.ids[expected[i].row], hits[i].Id, "query %q rank %d", query, i)
		}
	}
}
