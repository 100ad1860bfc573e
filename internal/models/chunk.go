package models

// ChunkType is the retained (non-equal) edit kind of a diff chunk.
type ChunkType string

const (
	// ChunkReplace marks a region whose frames differ between both videos.
	ChunkReplace ChunkType = "replace"
	// ChunkInsert marks frames present only in video 2.
	ChunkInsert ChunkType = "insert"
	// ChunkDelete marks frames present only in video 1.
	ChunkDelete ChunkType = "delete"
)

// Chunk is a non-equal edit operation retained for reporting, with
// denormalized frame counts. V1Start/V1End and V2Start/V2End are inclusive
// frame indices; the video-1 range is unused for ChunkInsert and the
// video-2 range is unused for ChunkDelete.
//
// Invariant: V1Count == 0 iff Type == ChunkInsert, V2Count == 0 iff
// Type == ChunkDelete; for ChunkReplace both counts are >= 1.
type Chunk struct {
	Type    ChunkType `json:"type"`
	V1Start int       `json:"v1_start"`
	V1End   int       `json:"v1_end"`
	V1Count int       `json:"v1_count"`
	V2Start int       `json:"v2_start"`
	V2End   int       `json:"v2_end"`
	V2Count int       `json:"v2_count"`
}

// MaxCount returns the number of frame slots touched by the chunk, the
// larger of the two sides.
func (c Chunk) MaxCount() int {
	if c.V1Count > c.V2Count {
		return c.V1Count
	}
	return c.V2Count
}
