package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/uidiff/internal/models"
)

func TestClipPlanner_ClipApplicabilityByType(t *testing.T) {
	planner := NewClipPlanner(DefaultPlannerConfig())

	chunks := []models.Chunk{
		{Type: models.ChunkReplace, V1Start: 10, V1End: 14, V1Count: 5, V2Start: 10, V2End: 12, V2Count: 3},
		{Type: models.ChunkDelete, V1Start: 20, V1End: 21, V1Count: 2, V2Start: 20, V2End: 19, V2Count: 0},
		{Type: models.ChunkInsert, V1Start: 30, V1End: 29, V1Count: 0, V2Start: 28, V2End: 30, V2Count: 3},
	}

	plans := planner.Plan(chunks)
	require.Len(t, plans, 3)

	replace := plans[0]
	assert.True(t, replace.WantVideo1)
	assert.True(t, replace.WantVideo2)
	assert.True(t, replace.WantDiff)

	del := plans[1]
	assert.True(t, del.WantVideo1)
	assert.False(t, del.WantVideo2)
	assert.False(t, del.WantDiff)

	insert := plans[2]
	assert.False(t, insert.WantVideo1)
	assert.True(t, insert.WantVideo2)
	assert.False(t, insert.WantDiff)
}

func TestClipPlanner_ArtifactNamesUniquePerChunk(t *testing.T) {
	planner := NewClipPlanner(DefaultPlannerConfig())
	chunks := []models.Chunk{
		{Type: models.ChunkReplace, V1Count: 1, V2Count: 1},
		{Type: models.ChunkReplace, V1Count: 1, V2Count: 1},
	}

	plans := planner.Plan(chunks)

	assert.Equal(t, "000_video1.mp4", plans[0].Video1Name)
	assert.Equal(t, "001_video1.mp4", plans[1].Video1Name)
	assert.Equal(t, "000_thumb.png", plans[0].ThumbName)
	assert.Equal(t, "001_thumb.png", plans[1].ThumbName)
}

func TestClipPlanner_ThumbnailFrameSelection(t *testing.T) {
	planner := NewClipPlanner(PlannerConfig{PaddingBefore: 30, PaddingAfter: 10})

	tests := []struct {
		name            string
		chunk           models.Chunk
		expectedPadding int
		expectedThumb   int
	}{
		{
			name:            "padding fully available",
			chunk:           models.Chunk{Type: models.ChunkReplace, V1Start: 100, V1End: 109, V1Count: 10, V2Start: 100, V2End: 109, V2Count: 10},
			expectedPadding: 30,
			expectedThumb:   35,
		},
		{
			name:            "padding clamped at video start",
			chunk:           models.Chunk{Type: models.ChunkReplace, V1Start: 0, V1End: 9, V1Count: 10, V2Start: 0, V2End: 9, V2Count: 10},
			expectedPadding: 0,
			expectedThumb:   5,
		},
		{
			name:            "padding partially clamped",
			chunk:           models.Chunk{Type: models.ChunkDelete, V1Start: 12, V1End: 15, V1Count: 4, V2Count: 0},
			expectedPadding: 12,
			expectedThumb:   14,
		},
		{
			name:            "insert uses video2 coordinates",
			chunk:           models.Chunk{Type: models.ChunkInsert, V1Count: 0, V2Start: 50, V2End: 56, V2Count: 7},
			expectedPadding: 30,
			expectedThumb:   33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := planner.Plan([]models.Chunk{tt.chunk})[0]
			assert.Equal(t, tt.expectedPadding, plan.PaddingUsed)
			assert.Equal(t, tt.expectedThumb, plan.ThumbFrame)
		})
	}
}

func TestClipPlanner_ThumbSourceByType(t *testing.T) {
	planner := NewClipPlanner(DefaultPlannerConfig())

	plans := planner.Plan([]models.Chunk{
		{Type: models.ChunkReplace, V1Count: 1, V2Count: 1},
		{Type: models.ChunkDelete, V1Count: 1, V2Count: 0},
		{Type: models.ChunkInsert, V1Count: 0, V2Count: 1},
	})

	assert.Equal(t, plans[0].DiffName, planner.ThumbSource(plans[0]))
	assert.Equal(t, plans[1].Video1Name, planner.ThumbSource(plans[1]))
	assert.Equal(t, plans[2].Video2Name, planner.ThumbSource(plans[2]))
}

func TestClipPlanner_PaddedRangeClamp(t *testing.T) {
	planner := NewClipPlanner(PlannerConfig{PaddingBefore: 30, PaddingAfter: 5})

	// Chunk starting at frame 0: before-padding is clamped away entirely
	// and the after-padding is not extended to compensate.
	start, total := planner.PaddedRange(0, 9)
	assert.Equal(t, 0, start)
	assert.Equal(t, 15, total)

	// Chunk starting at frame 10: only 10 frames of before-padding fit.
	start, total = planner.PaddedRange(10, 19)
	assert.Equal(t, 0, start)
	assert.Equal(t, 25, total)

	// Deep into the video the full padding applies.
	start, total = planner.PaddedRange(100, 109)
	assert.Equal(t, 70, start)
	assert.Equal(t, 45, total)
}

func TestClipPlanner_BuildClipSetHeadlineRange(t *testing.T) {
	planner := NewClipPlanner(DefaultPlannerConfig())

	replace := models.Chunk{Type: models.ChunkReplace, V1Start: 10, V1End: 14, V1Count: 5, V2Start: 12, V2End: 13, V2Count: 2}
	plan := planner.Plan([]models.Chunk{replace})[0]
	cs := planner.BuildClipSet(plan, models.ClipPaths{Video1: "c/000_video1.mp4"}, "c/000_thumb.png")
	assert.Equal(t, 10, cs.StartFrame)
	assert.Equal(t, 14, cs.EndFrame)
	assert.Equal(t, 5, cs.Duration)
	assert.Equal(t, "c/000_thumb.png", cs.Thumb)

	insert := models.Chunk{Type: models.ChunkInsert, V1Count: 0, V2Start: 100, V2End: 102, V2Count: 3}
	plan = planner.Plan([]models.Chunk{insert})[0]
	cs = planner.BuildClipSet(plan, models.ClipPaths{Video2: "c/000_video2.mp4"}, "c/000_thumb.png")
	assert.Equal(t, 100, cs.StartFrame)
	assert.Equal(t, 102, cs.EndFrame)
	assert.Equal(t, 3, cs.Duration)
}
