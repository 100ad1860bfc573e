package differ

import (
	"fmt"

	"github.com/aleister1102/uidiff/internal/models"
)

// PlannerConfig holds the context-padding constants applied to every
// extracted clip.
type PlannerConfig struct {
	PaddingBefore int
	PaddingAfter  int
}

// DefaultPlannerConfig returns the default planner configuration.
func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		PaddingBefore: 0,
		PaddingAfter:  0,
	}
}

// ClipPlanner derives per-chunk playback metadata: which clips apply to
// the chunk type, padded ranges, thumbnail position, and stable artifact
// names. It performs no extraction itself.
type ClipPlanner struct {
	config PlannerConfig
}

// NewClipPlanner creates a new ClipPlanner.
func NewClipPlanner(config PlannerConfig) *ClipPlanner {
	return &ClipPlanner{config: config}
}

// Plan produces one ClipPlan per chunk, in chunk order.
func (cp *ClipPlanner) Plan(chunks []models.Chunk) []models.ClipPlan {
	plans := make([]models.ClipPlan, 0, len(chunks))
	for i, chunk := range chunks {
		plans = append(plans, cp.planChunk(i, chunk))
	}
	return plans
}

func (cp *ClipPlanner) planChunk(index int, chunk models.Chunk) models.ClipPlan {
	plan := models.ClipPlan{
		ChunkIndex: index,
		Chunk:      chunk,
		WantVideo1: chunk.Type != models.ChunkInsert,
		WantVideo2: chunk.Type != models.ChunkDelete,
		WantDiff:   chunk.Type == models.ChunkReplace,
		Video1Name: fmt.Sprintf("%03d_video1.mp4", index),
		Video2Name: fmt.Sprintf("%03d_video2.mp4", index),
		DiffName:   fmt.Sprintf("%03d_diff.mp4", index),
		ThumbName:  fmt.Sprintf("%03d_thumb.png", index),
	}

	// The thumbnail is the middle frame of the chunk's own content region
	// within the padded clip, independent of the after-padding. The
	// before-padding shrinks when the chunk starts near frame 0.
	startFrame := chunk.V1Start
	contentCount := chunk.V1Count
	if chunk.Type == models.ChunkInsert {
		startFrame = chunk.V2Start
		contentCount = chunk.V2Count
	}
	plan.PaddingUsed = min(startFrame, cp.config.PaddingBefore)
	plan.ThumbFrame = plan.PaddingUsed + contentCount/2

	return plan
}

// ThumbSource tells which extracted clip the thumbnail is rendered from:
// the diff clip for replacements, the video-1 clip for deletions, and the
// video-2 clip for insertions.
func (cp *ClipPlanner) ThumbSource(plan models.ClipPlan) string {
	switch plan.Chunk.Type {
	case models.ChunkReplace:
		return plan.DiffName
	case models.ChunkDelete:
		return plan.Video1Name
	default:
		return plan.Video2Name
	}
}

// BuildClipSet assembles the report record for one extracted chunk. The
// clip paths are report-relative and already include the chunk directory.
func (cp *ClipPlanner) BuildClipSet(plan models.ClipPlan, clips models.ClipPaths, thumb string) models.ClipSet {
	chunk := plan.Chunk

	// Headline range in video-1 coordinates, video-2 for pure inserts.
	displayStart, displayEnd := chunk.V1Start, chunk.V1End
	if chunk.Type == models.ChunkInsert {
		displayStart, displayEnd = chunk.V2Start, chunk.V2End
	}

	return models.ClipSet{
		Type:       chunk.Type,
		StartFrame: displayStart,
		EndFrame:   displayEnd,
		Duration:   chunk.MaxCount(),
		V1Count:    chunk.V1Count,
		V2Count:    chunk.V2Count,
		Clips:      clips,
		Thumb:      thumb,
	}
}

// PaddedRange returns the padded extraction range for a clip starting at
// start and ending at end (inclusive), along with the total frame count to
// write. The before-padding is clamped so the range never starts below
// frame 0; the after-padding is not extended to compensate.
func (cp *ClipPlanner) PaddedRange(start, end int) (paddedStart, totalFrames int) {
	paddedStart = start - cp.config.PaddingBefore
	if paddedStart < 0 {
		paddedStart = 0
	}
	paddingBefore := start - paddedStart
	totalFrames = (end - start + 1) + paddingBefore + cp.config.PaddingAfter
	return paddedStart, totalFrames
}
