package models

// FrameHash is an opaque content digest of one decoded video frame.
// Equality is exact; there is no similarity metric between hashes.
type FrameHash string

// HashSequence is the ordered list of per-frame hashes for one video.
// The slice index is the 0-based frame index in capture order.
type HashSequence []FrameHash

// Len returns the frame count of the hashed video.
func (hs HashSequence) Len() int {
	return len(hs)
}

// Equal reports whether two sequences are identical frame for frame.
func (hs HashSequence) Equal(other HashSequence) bool {
	if len(hs) != len(other) {
		return false
	}
	for i := range hs {
		if hs[i] != other[i] {
			return false
		}
	}
	return true
}

// DifferingIndices returns the frame indices at which two equal-length
// sequences disagree. It is only meaningful for the pairwise comparison
// chunking mode; callers must ensure both sequences have the same length.
func (hs HashSequence) DifferingIndices(other HashSequence) []int {
	var indices []int
	for i := range hs {
		if hs[i] != other[i] {
			indices = append(indices, i)
		}
	}
	return indices
}
