package differ

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/uidiff/internal/models"
)

func seq(hashes ...string) models.HashSequence {
	s := make(models.HashSequence, 0, len(hashes))
	for _, h := range hashes {
		s = append(s, models.FrameHash(h))
	}
	return s
}

// repeatedSeq builds a sequence of count frames all carrying the same hash,
// like a static scene in a screen recording.
func repeatedSeq(hash string, count int) models.HashSequence {
	s := make(models.HashSequence, count)
	for i := range s {
		s[i] = models.FrameHash(hash)
	}
	return s
}

// assertCoverage checks the partition invariant: concatenating all a-ranges
// reconstructs [0, len(a)) exactly once, likewise for b-ranges.
func assertCoverage(t *testing.T, ops []models.EditOperation, lenA, lenB int) {
	t.Helper()

	ai, bj := 0, 0
	for _, op := range ops {
		require.Equal(t, ai, op.AStart, "a-ranges must be contiguous")
		require.Equal(t, bj, op.BStart, "b-ranges must be contiguous")
		require.LessOrEqual(t, op.AStart, op.AEnd)
		require.LessOrEqual(t, op.BStart, op.BEnd)
		ai, bj = op.AEnd, op.BEnd
	}
	assert.Equal(t, lenA, ai, "a-ranges must cover the full sequence")
	assert.Equal(t, lenB, bj, "b-ranges must cover the full sequence")
}

func TestAligner_Identity(t *testing.T) {
	aligner := NewAligner()
	a := seq("x", "y", "z", "y", "x")

	ops := aligner.Align(a, a)

	require.Len(t, ops, 1)
	assert.Equal(t, models.EditEqual, ops[0].Kind)
	assert.Equal(t, 0, ops[0].AStart)
	assert.Equal(t, len(a), ops[0].AEnd)
	assertCoverage(t, ops, len(a), len(a))
}

func TestAligner_BothEmpty(t *testing.T) {
	aligner := NewAligner()

	ops := aligner.Align(nil, nil)

	assert.Empty(t, ops)
}

func TestAligner_EmptyAgainstNonEmpty(t *testing.T) {
	aligner := NewAligner()
	b := seq("a", "b", "c")

	ops := aligner.Align(nil, b)
	require.Len(t, ops, 1)
	assert.Equal(t, models.EditInsert, ops[0].Kind)
	assert.Equal(t, 0, ops[0].ALen())
	assert.Equal(t, len(b), ops[0].BLen())
	assertCoverage(t, ops, 0, len(b))

	ops = aligner.Align(b, nil)
	require.Len(t, ops, 1)
	assert.Equal(t, models.EditDelete, ops[0].Kind)
	assert.Equal(t, len(b), ops[0].ALen())
	assert.Equal(t, 0, ops[0].BLen())
	assertCoverage(t, ops, len(b), 0)
}

func TestAligner_SingleSubstitution(t *testing.T) {
	aligner := NewAligner()
	a := seq("a", "b", "c", "d", "e")
	b := seq("a", "b", "X", "d", "e")

	ops := aligner.Align(a, b)

	assertCoverage(t, ops, len(a), len(b))
	require.Len(t, ops, 3)
	assert.Equal(t, models.EditEqual, ops[0].Kind)
	assert.Equal(t, models.EditReplace, ops[1].Kind)
	assert.Equal(t, 2, ops[1].AStart)
	assert.Equal(t, 3, ops[1].AEnd)
	assert.Equal(t, 2, ops[1].BStart)
	assert.Equal(t, 3, ops[1].BEnd)
	assert.Equal(t, models.EditEqual, ops[2].Kind)
}

func TestAligner_AppendedFrames(t *testing.T) {
	aligner := NewAligner()
	a := repeatedSeq("static", 10)
	b := append(repeatedSeq("static", 10), seq("n1", "n2", "n3")...)

	ops := aligner.Align(a, b)

	assertCoverage(t, ops, len(a), len(b))
	require.Len(t, ops, 2)
	assert.Equal(t, models.EditEqual, ops[0].Kind)
	assert.Equal(t, models.EditInsert, ops[1].Kind)
	assert.Equal(t, 10, ops[1].BStart)
	assert.Equal(t, 13, ops[1].BEnd)
}

func TestAligner_RepeatedHashesNotDiscounted(t *testing.T) {
	// A 500-frame static scene is a "popular" element that a junk
	// heuristic would filter out; the aligner must still match it.
	aligner := NewAligner()
	a := repeatedSeq("static", 500)
	b := append(models.HashSequence{"intro"}, repeatedSeq("static", 500)...)

	ops := aligner.Align(a, b)

	assertCoverage(t, ops, len(a), len(b))
	require.Len(t, ops, 2)
	assert.Equal(t, models.EditInsert, ops[0].Kind)
	assert.Equal(t, 1, ops[0].BLen())
	assert.Equal(t, models.EditEqual, ops[1].Kind)
	assert.Equal(t, 500, ops[1].ALen())
}

func TestAligner_Deterministic(t *testing.T) {
	aligner := NewAligner()
	a := seq("a", "b", "a", "b", "a", "c", "a", "b")
	b := seq("b", "a", "b", "c", "a", "a", "b")

	first := aligner.Align(a, b)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, aligner.Align(a, b))
	}
	assertCoverage(t, first, len(a), len(b))
}

func TestAligner_CoverageProperty(t *testing.T) {
	aligner := NewAligner()

	// A small corpus of hash alphabets exercised pairwise.
	var cases []models.HashSequence
	cases = append(cases,
		nil,
		seq("a"),
		seq("a", "a", "a"),
		seq("a", "b", "c", "d"),
		seq("d", "c", "b", "a"),
		seq("a", "b", "a", "b", "a"),
		repeatedSeq("x", 20),
	)

	for i, a := range cases {
		for j, b := range cases {
			t.Run(fmt.Sprintf("pair_%d_%d", i, j), func(t *testing.T) {
				assertCoverage(t, aligner.Align(a, b), len(a), len(b))
			})
		}
	}
}
