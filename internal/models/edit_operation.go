package models

// EditKind classifies one aligned region between two hash sequences.
type EditKind string

const (
	// EditEqual indicates a region that is identical in both sequences.
	EditEqual EditKind = "equal"
	// EditReplace indicates a region whose content differs between sequences.
	EditReplace EditKind = "replace"
	// EditInsert indicates a region present only in sequence b.
	EditInsert EditKind = "insert"
	// EditDelete indicates a region present only in sequence a.
	EditDelete EditKind = "delete"
)

// EditOperation is one aligned region produced by the sequence aligner.
// Ranges are half-open index intervals: [AStart, AEnd) into sequence a and
// [BStart, BEnd) into sequence b. The a-range is empty iff Kind is
// EditInsert and the b-range is empty iff Kind is EditDelete.
//
// Operations are emitted in increasing, non-overlapping, contiguous order:
// concatenating all a-ranges covers [0, len(a)) exactly once, likewise for
// b-ranges over [0, len(b)).
type EditOperation struct {
	Kind   EditKind `json:"kind"`
	AStart int      `json:"a_start"`
	AEnd   int      `json:"a_end"`
	BStart int      `json:"b_start"`
	BEnd   int      `json:"b_end"`
}

// ALen returns the length of the operation's a-range.
func (op EditOperation) ALen() int {
	return op.AEnd - op.AStart
}

// BLen returns the length of the operation's b-range.
func (op EditOperation) BLen() int {
	return op.BEnd - op.BStart
}
