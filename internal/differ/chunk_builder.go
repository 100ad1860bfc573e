package differ

import (
	"github.com/aleister1102/uidiff/internal/models"
)

// ChunkBuilder converts aligner output into reportable diff chunks and
// computes the headline differing-frame count.
type ChunkBuilder struct{}

// NewChunkBuilder creates a new ChunkBuilder.
func NewChunkBuilder() *ChunkBuilder {
	return &ChunkBuilder{}
}

// BuildChunks drops equal operations and maps each remaining operation to
// exactly one Chunk, preserving sequence order. Inclusive frame ranges are
// derived from the half-open operation ranges.
func (cb *ChunkBuilder) BuildChunks(ops []models.EditOperation) []models.Chunk {
	var chunks []models.Chunk
	for _, op := range ops {
		if op.Kind == models.EditEqual {
			continue
		}
		chunks = append(chunks, models.Chunk{
			Type:    models.ChunkType(op.Kind),
			V1Start: op.AStart,
			V1End:   op.AEnd - 1,
			V1Count: op.ALen(),
			V2Start: op.BStart,
			V2End:   op.BEnd - 1,
			V2Count: op.BLen(),
		})
	}
	return chunks
}

// CountDifferingFrames returns the headline differing-frame count: the sum
// over chunks of the larger side. A replace of unequal block lengths counts
// the larger side, the number of frame slots touched by the discrepancy.
func (cb *ChunkBuilder) CountDifferingFrames(chunks []models.Chunk) int {
	total := 0
	for _, c := range chunks {
		total += c.MaxCount()
	}
	return total
}

// MergeDifferingIndices groups individually-differing frame indices into
// chunks, merging two neighbours whenever the run of identical frames
// between them is at most maxSameFrames. This is the simpler chunking mode
// used when both videos have the same frame count and a per-frame equality
// comparison was done instead of full alignment.
//
// Indices must be in increasing order.
func (cb *ChunkBuilder) MergeDifferingIndices(indices []int, maxSameFrames int) [][]int {
	if len(indices) == 0 {
		return nil
	}

	var groups [][]int
	current := []int{indices[0]}
	for _, idx := range indices[1:] {
		gap := idx - current[len(current)-1] - 1
		if gap <= maxSameFrames {
			current = append(current, idx)
			continue
		}
		groups = append(groups, current)
		current = []int{idx}
	}
	groups = append(groups, current)
	return groups
}
