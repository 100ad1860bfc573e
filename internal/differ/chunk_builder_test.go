package differ

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/uidiff/internal/models"
)

func TestChunkBuilder_DropsEqualOperations(t *testing.T) {
	builder := NewChunkBuilder()
	ops := []models.EditOperation{
		{Kind: models.EditEqual, AStart: 0, AEnd: 5, BStart: 0, BEnd: 5},
		{Kind: models.EditReplace, AStart: 5, AEnd: 7, BStart: 5, BEnd: 8},
		{Kind: models.EditEqual, AStart: 7, AEnd: 10, BStart: 8, BEnd: 11},
	}

	chunks := builder.BuildChunks(ops)

	require.Len(t, chunks, 1)
	assert.Equal(t, models.ChunkReplace, chunks[0].Type)
	assert.Equal(t, 5, chunks[0].V1Start)
	assert.Equal(t, 6, chunks[0].V1End)
	assert.Equal(t, 2, chunks[0].V1Count)
	assert.Equal(t, 5, chunks[0].V2Start)
	assert.Equal(t, 7, chunks[0].V2End)
	assert.Equal(t, 3, chunks[0].V2Count)
}

func TestChunkBuilder_TypeCountInvariant(t *testing.T) {
	aligner := NewAligner()
	builder := NewChunkBuilder()

	a := seq("a", "b", "c", "d", "e", "f")
	b := seq("a", "X", "c", "e", "f", "g", "h")

	chunks := builder.BuildChunks(aligner.Align(a, b))
	require.NotEmpty(t, chunks)

	for _, c := range chunks {
		assert.Equal(t, c.Type == models.ChunkInsert, c.V1Count == 0)
		assert.Equal(t, c.Type == models.ChunkDelete, c.V2Count == 0)
		if c.Type == models.ChunkReplace {
			assert.GreaterOrEqual(t, c.V1Count, 1)
			assert.GreaterOrEqual(t, c.V2Count, 1)
		}
	}
}

func TestChunkBuilder_TotalInsertAndDelete(t *testing.T) {
	aligner := NewAligner()
	builder := NewChunkBuilder()
	b := seq("a", "b", "c", "d")

	chunks := builder.BuildChunks(aligner.Align(nil, b))
	require.Len(t, chunks, 1)
	assert.Equal(t, models.ChunkInsert, chunks[0].Type)
	assert.Equal(t, len(b), chunks[0].V2Count)
	assert.Equal(t, 0, chunks[0].V1Count)

	chunks = builder.BuildChunks(aligner.Align(b, nil))
	require.Len(t, chunks, 1)
	assert.Equal(t, models.ChunkDelete, chunks[0].Type)
	assert.Equal(t, len(b), chunks[0].V1Count)
	assert.Equal(t, 0, chunks[0].V2Count)
}

func TestChunkBuilder_CountDifferingFrames(t *testing.T) {
	builder := NewChunkBuilder()

	tests := []struct {
		name     string
		chunks   []models.Chunk
		expected int
	}{
		{
			name:     "no chunks",
			chunks:   nil,
			expected: 0,
		},
		{
			name: "single substitution",
			chunks: []models.Chunk{
				{Type: models.ChunkReplace, V1Count: 1, V2Count: 1},
			},
			expected: 1,
		},
		{
			name: "replace counts the larger side",
			chunks: []models.Chunk{
				{Type: models.ChunkReplace, V1Count: 2, V2Count: 5},
			},
			expected: 5,
		},
		{
			name: "mixed chunks sum",
			chunks: []models.Chunk{
				{Type: models.ChunkReplace, V1Count: 5, V2Count: 5},
				{Type: models.ChunkInsert, V1Count: 0, V2Count: 3},
				{Type: models.ChunkDelete, V1Count: 2, V2Count: 0},
			},
			expected: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, builder.CountDifferingFrames(tt.chunks))
		})
	}
}

func TestChunkBuilder_MergeDifferingIndices(t *testing.T) {
	builder := NewChunkBuilder()

	tests := []struct {
		name          string
		indices       []int
		maxSameFrames int
		expected      [][]int
	}{
		{
			name:          "empty",
			indices:       nil,
			maxSameFrames: 0,
			expected:      nil,
		},
		{
			name:          "tolerance merges small gaps",
			indices:       []int{5, 6, 9, 20},
			maxSameFrames: 2,
			expected:      [][]int{{5, 6, 9}, {20}},
		},
		{
			name:          "zero tolerance splits on any gap",
			indices:       []int{5, 6, 9, 20},
			maxSameFrames: 0,
			expected:      [][]int{{5, 6}, {9}, {20}},
		},
		{
			name:          "large tolerance merges everything",
			indices:       []int{5, 6, 9, 20},
			maxSameFrames: 100,
			expected:      [][]int{{5, 6, 9, 20}},
		},
		{
			name:          "single index",
			indices:       []int{42},
			maxSameFrames: 0,
			expected:      [][]int{{42}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, builder.MergeDifferingIndices(tt.indices, tt.maxSameFrames))
		})
	}
}

func TestDiffPipeline_EndToEndScenario(t *testing.T) {
	// Video 1: 100 frames. Video 2: the same frames, but 40-44 replaced
	// with different content and 3 extra frames appended at the end.
	var a, b models.HashSequence
	for i := 0; i < 100; i++ {
		a = append(a, models.FrameHash(fmt.Sprintf("frame-%03d", i)))
	}
	b = append(b, a...)
	for i := 40; i <= 44; i++ {
		b[i] = models.FrameHash(fmt.Sprintf("changed-%03d", i))
	}
	b = append(b, "extra-0", "extra-1", "extra-2")

	aligner := NewAligner()
	builder := NewChunkBuilder()

	chunks := builder.BuildChunks(aligner.Align(a, b))
	require.Len(t, chunks, 2)

	replace := chunks[0]
	assert.Equal(t, models.ChunkReplace, replace.Type)
	assert.Equal(t, 40, replace.V1Start)
	assert.Equal(t, 44, replace.V1End)
	assert.Equal(t, 5, replace.V1Count)
	assert.Equal(t, 40, replace.V2Start)
	assert.Equal(t, 44, replace.V2End)
	assert.Equal(t, 5, replace.V2Count)

	insert := chunks[1]
	assert.Equal(t, models.ChunkInsert, insert.Type)
	assert.Equal(t, 100, insert.V2Start)
	assert.Equal(t, 102, insert.V2End)
	assert.Equal(t, 3, insert.V2Count)
	assert.Equal(t, 0, insert.V1Count)

	differing := builder.CountDifferingFrames(chunks)
	assert.Equal(t, 8, differing)

	summary := BuildSummary(len(a), len(b), differing)
	assert.False(t, summary.Identical)
	assert.Equal(t, 3, summary.FrameDelta)
	assert.Equal(t, 103, summary.TotalFrames)
	assert.Contains(t, summary.ResultText(), "Video 2 is longer by 3 frames")
}
