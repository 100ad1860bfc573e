package models

import "fmt"

// DiffSummary holds the headline statistics of one diff run.
type DiffSummary struct {
	Video1Frames    int  `json:"video1_frames"`
	Video2Frames    int  `json:"video2_frames"`
	TotalFrames     int  `json:"total_frames"`
	FrameDelta      int  `json:"frame_delta"`
	DifferingFrames int  `json:"differing_frames"`
	Identical       bool `json:"identical"`
}

// DifferingPercent returns the differing-frame share of the total, in
// percent. Zero when the videos are empty.
func (s DiffSummary) DifferingPercent() float64 {
	if s.TotalFrames == 0 {
		return 0
	}
	return float64(s.DifferingFrames) / float64(s.TotalFrames) * 100
}

// ResultText renders the one-line verdict shown at the top of the report.
func (s DiffSummary) ResultText() string {
	if s.Identical {
		return fmt.Sprintf("✅ Videos are identical! (%d frames)", s.TotalFrames)
	}
	text := fmt.Sprintf("❌ Found %d different frames out of %d total (%.1f%%).",
		s.DifferingFrames, s.TotalFrames, s.DifferingPercent())
	if s.FrameDelta != 0 {
		longer := "1"
		if s.FrameDelta > 0 {
			longer = "2"
		}
		delta := s.FrameDelta
		if delta < 0 {
			delta = -delta
		}
		text += fmt.Sprintf(" Video %s is longer by %d frames.", longer, delta)
	}
	return text
}

// DiffRunResult bundles everything the report assembler consumes.
type DiffRunResult struct {
	Video1Path string      `json:"video1_path"`
	Video2Path string      `json:"video2_path"`
	Summary    DiffSummary `json:"summary"`
	Chunks     []Chunk     `json:"chunks"`
	ClipSets   []ClipSet   `json:"clip_sets"`
}
