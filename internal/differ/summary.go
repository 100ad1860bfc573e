package differ

import (
	"github.com/aleister1102/uidiff/internal/models"
)

// BuildSummary computes the headline statistics of a diff run. The result
// is classified identical only when no frame differs and both videos have
// the same length.
func BuildSummary(frames1, frames2, differingFrames int) models.DiffSummary {
	total := frames1
	if frames2 > total {
		total = frames2
	}
	delta := frames2 - frames1

	return models.DiffSummary{
		Video1Frames:    frames1,
		Video2Frames:    frames2,
		TotalFrames:     total,
		FrameDelta:      delta,
		DifferingFrames: differingFrames,
		Identical:       differingFrames == 0 && delta == 0,
	}
}
