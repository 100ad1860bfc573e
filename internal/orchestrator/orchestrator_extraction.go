package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/aleister1102/uidiff/internal/common/errorwrapper"
	"github.com/aleister1102/uidiff/internal/differ"
	"github.com/aleister1102/uidiff/internal/models"
)

// chunkArtifacts is the output of one extraction job.
type chunkArtifacts struct {
	clips models.ClipPaths
	thumb string
}

// extractChunkArtifacts extracts the per-chunk clips and thumbnails with a
// bounded worker pool and assembles the clip sets in chunk order. The first
// extraction failure cancels the remaining jobs.
func (o *DiffOrchestrator) extractChunkArtifacts(ctx context.Context, video1Path, video2Path, diffVideoName string, chunks []models.Chunk) ([]models.ClipSet, error) {
	fps, err := o.mediaTool.FrameRate(ctx, video1Path)
	if err != nil {
		return nil, err
	}

	chunkDir, err := o.reportGenerator.EnsureChunkDirectory(diffVideoName)
	if err != nil {
		return nil, err
	}

	diffCfg := o.globalConfig.DiffConfig
	planner := differ.NewClipPlanner(differ.PlannerConfig{
		PaddingBefore: diffCfg.ClipPaddingBefore,
		PaddingAfter:  diffCfg.ClipPaddingAfter,
	})
	plans := planner.Plan(chunks)

	workers := o.extractionWorkerCount(len(plans))
	o.logger.Debug().
		Int("chunks", len(plans)).
		Int("workers", workers).
		Float64("fps", fps).
		Msg("Starting chunk extraction pool")

	poolCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan models.ClipPlan)
	artifacts := make([]chunkArtifacts, len(plans))
	jobErrs := make([]error, len(plans))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for plan := range jobs {
				art, err := o.extractPlan(poolCtx, plan, planner, video1Path, video2Path, chunkDir, fps)
				if err != nil {
					jobErrs[plan.ChunkIndex] = err
					cancel()
					continue
				}
				artifacts[plan.ChunkIndex] = art
			}
		}()
	}

dispatch:
	for _, plan := range plans {
		select {
		case jobs <- plan:
		case <-poolCtx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	for _, err := range jobErrs {
		if err != nil {
			return nil, err
		}
	}
	if err := poolCtx.Err(); err != nil {
		return nil, err
	}

	clipSets := make([]models.ClipSet, 0, len(plans))
	for i, plan := range plans {
		clipSets = append(clipSets, planner.BuildClipSet(plan, artifacts[i].clips, artifacts[i].thumb))
	}
	return clipSets, nil
}

func (o *DiffOrchestrator) extractionWorkerCount(jobs int) int {
	workers := min(o.globalConfig.DiffConfig.ExtractionWorkers, jobs)
	if workers < 1 {
		workers = 1
	}
	if o.resourceLimiter != nil {
		workers = o.resourceLimiter.AdjustWorkerCount(workers)
	}
	return workers
}

// extractPlan produces all artifacts for one chunk: the applicable source
// clips, the pixel-difference blend for replacements, and the thumbnail
// rendered from the chunk's thumbnail source clip.
func (o *DiffOrchestrator) extractPlan(ctx context.Context, plan models.ClipPlan, planner *differ.ClipPlanner, video1Path, video2Path, chunkDir string, fps float64) (chunkArtifacts, error) {
	chunk := plan.Chunk
	chunkDirName := filepath.Base(chunkDir)
	var art chunkArtifacts

	v1ClipPath := filepath.Join(chunkDir, plan.Video1Name)
	if plan.WantVideo1 {
		paddedStart, totalFrames := planner.PaddedRange(chunk.V1Start, chunk.V1End)
		if _, err := o.mediaTool.ExtractClip(ctx, video1Path, paddedStart, totalFrames, fps, v1ClipPath); err != nil {
			return art, attachChunkIndex(err, plan.ChunkIndex)
		}
		art.clips.Video1 = chunkDirName + "/" + plan.Video1Name
	}

	v2ClipPath := filepath.Join(chunkDir, plan.Video2Name)
	if plan.WantVideo2 {
		paddedStart, totalFrames := planner.PaddedRange(chunk.V2Start, chunk.V2End)
		if _, err := o.mediaTool.ExtractClip(ctx, video2Path, paddedStart, totalFrames, fps, v2ClipPath); err != nil {
			return art, attachChunkIndex(err, plan.ChunkIndex)
		}
		art.clips.Video2 = chunkDirName + "/" + plan.Video2Name
	}

	if plan.WantDiff {
		diffClipPath := filepath.Join(chunkDir, plan.DiffName)
		if err := o.mediaTool.BlendDifference(ctx, v1ClipPath, v2ClipPath, diffClipPath); err != nil {
			return art, attachChunkIndex(err, plan.ChunkIndex)
		}
		art.clips.Diff = chunkDirName + "/" + plan.DiffName
	}

	thumbSource := filepath.Join(chunkDir, planner.ThumbSource(plan))
	thumbPath := filepath.Join(chunkDir, plan.ThumbName)
	if err := o.mediaTool.RenderThumbnail(ctx, thumbSource, plan.ThumbFrame, fps, thumbPath); err != nil {
		return art, attachChunkIndex(err, plan.ChunkIndex)
	}
	art.thumb = chunkDirName + "/" + plan.ThumbName

	return art, nil
}

// attachChunkIndex tags the failing chunk on external tool errors so the
// caller can report which section broke.
func attachChunkIndex(err error, index int) error {
	var toolErr *errorwrapper.ExternalToolError
	if errors.As(err, &toolErr) {
		return toolErr.WithChunkIndex(index)
	}
	return errorwrapper.WrapError(err, fmt.Sprintf("chunk %d extraction failed", index))
}
