package config

// DiffConfig defines configuration for the frame-diff engine
type DiffConfig struct {
	// ClipPaddingBefore/After are extra frames of context included around
	// each extracted chunk clip.
	ClipPaddingBefore int `json:"clip_padding_before,omitempty" yaml:"clip_padding_before,omitempty" validate:"min=0"`
	ClipPaddingAfter  int `json:"clip_padding_after,omitempty" yaml:"clip_padding_after,omitempty" validate:"min=0"`

	// ChunkPolicy selects the chunking mode: "align" (sequence alignment,
	// any video lengths) or "tolerance" (pairwise comparison with gap
	// merging, equal-length videos only).
	ChunkPolicy string `json:"chunk_policy,omitempty" yaml:"chunk_policy,omitempty" validate:"omitempty,chunkpolicy"`

	// MaxSameFrames is the tolerance of the "tolerance" policy: the
	// longest run of identical frames allowed inside one chunk.
	MaxSameFrames int `json:"max_same_frames,omitempty" yaml:"max_same_frames,omitempty" validate:"min=0"`

	// ExtractionWorkers bounds the parallel clip extractions per run.
	ExtractionWorkers int `json:"extraction_workers,omitempty" yaml:"extraction_workers,omitempty" validate:"min=1"`
}

// NewDefaultDiffConfig creates default diff configuration
func NewDefaultDiffConfig() DiffConfig {
	return DiffConfig{
		ClipPaddingBefore: DefaultClipPaddingBefore,
		ClipPaddingAfter:  DefaultClipPaddingAfter,
		ChunkPolicy:       DefaultChunkPolicy,
		MaxSameFrames:     DefaultMaxSameFrames,
		ExtractionWorkers: DefaultExtractionWorkers,
	}
}
