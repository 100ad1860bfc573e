package models

import "encoding/json"

// ClipPaths holds the report-relative paths of the extracted clips for one
// chunk. Paths are empty when the clip does not apply to the chunk type:
// Video1 is empty for inserts, Video2 for deletes, and Diff exists only
// for replacements.
type ClipPaths struct {
	Video1 string `json:"video1"`
	Video2 string `json:"video2"`
	Diff   string `json:"diff"`
}

// MarshalJSON always emits all three clip keys, with null for clips the
// chunk type does not produce. Report consumers key off null, not key
// absence.
func (cp ClipPaths) MarshalJSON() ([]byte, error) {
	wire := struct {
		Video1 *string `json:"video1"`
		Video2 *string `json:"video2"`
		Diff   *string `json:"diff"`
	}{
		Video1: nullableClip(cp.Video1),
		Video2: nullableClip(cp.Video2),
		Diff:   nullableClip(cp.Diff),
	}
	return json.Marshal(wire)
}

func nullableClip(path string) *string {
	if path == "" {
		return nil
	}
	return &path
}

// ClipSet is the per-chunk playback metadata consumed by the report. The
// headline StartFrame/EndFrame are expressed in video-1 coordinates, or in
// video-2 coordinates for a pure insert. Duration is the larger of the two
// side counts.
type ClipSet struct {
	Type       ChunkType `json:"type"`
	StartFrame int       `json:"start_frame"`
	EndFrame   int       `json:"end_frame"`
	Duration   int       `json:"duration"`
	V1Count    int       `json:"v1_count"`
	V2Count    int       `json:"v2_count"`
	Clips      ClipPaths `json:"clips"`
	Thumb      string    `json:"thumb"`
}

// ClipPlan describes the extraction work for one chunk before any external
// tool runs: which clips to pull, their padded source ranges, the thumbnail
// position inside the padded clip, and the stable artifact names.
type ClipPlan struct {
	ChunkIndex int
	Chunk      Chunk

	// Extraction flags derived from the chunk type.
	WantVideo1 bool
	WantVideo2 bool
	WantDiff   bool

	// PaddingUsed is the before-padding actually available once clamped at
	// frame 0 of the thumbnail source video.
	PaddingUsed int

	// ThumbFrame is the thumbnail frame in the extracted clip's local
	// numbering: the middle frame of the chunk's own content region.
	ThumbFrame int

	// Artifact file names, unique per chunk (zero-padded index prefix).
	Video1Name string
	Video2Name string
	DiffName   string
	ThumbName  string
}
