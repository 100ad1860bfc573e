package orchestrator

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aleister1102/uidiff/internal/common/contextutils"
	"github.com/aleister1102/uidiff/internal/common/errorwrapper"
	"github.com/aleister1102/uidiff/internal/config"
	"github.com/aleister1102/uidiff/internal/datastore"
	"github.com/aleister1102/uidiff/internal/differ"
	"github.com/aleister1102/uidiff/internal/history"
	"github.com/aleister1102/uidiff/internal/models"
	"github.com/aleister1102/uidiff/internal/reporter"
	"github.com/aleister1102/uidiff/internal/rslimiter"
)

// MediaTool abstracts the external media commands the workflow invokes.
// The ffmpeg package provides the production implementation.
type MediaTool interface {
	HashFrames(ctx context.Context, videoPath string) (models.HashSequence, error)
	FrameRate(ctx context.Context, videoPath string) (float64, error)
	ExtractClip(ctx context.Context, videoPath string, startFrame, totalFrames int, fps float64, outputPath string) (int, error)
	RenderThumbnail(ctx context.Context, videoPath string, frame int, fps float64, outputPath string) error
	BlendDifference(ctx context.Context, clip1, clip2, outputPath string) error
	CreateDiffVideo(ctx context.Context, video1, video2, outputPath string) error
}

// DiffOrchestrator drives the full compare workflow: hash both videos,
// chunk the differences, extract per-chunk clips, and assemble the report.
type DiffOrchestrator struct {
	globalConfig    *config.GlobalConfig
	logger          zerolog.Logger
	mediaTool       MediaTool
	cacheReader     *datastore.HashCacheReader
	cacheWriter     *datastore.HashCacheWriter
	historyDB       *history.DB
	reportGenerator *reporter.DiffReportGenerator
	resourceLimiter *rslimiter.ResourceLimiter
}

// DiffOrchestratorBuilder constructs a DiffOrchestrator.
type DiffOrchestratorBuilder struct {
	orchestrator *DiffOrchestrator
}

// NewDiffOrchestratorBuilder creates a new DiffOrchestratorBuilder.
func NewDiffOrchestratorBuilder(logger zerolog.Logger) *DiffOrchestratorBuilder {
	return &DiffOrchestratorBuilder{
		orchestrator: &DiffOrchestrator{
			logger: logger.With().Str("component", "DiffOrchestrator").Logger(),
		},
	}
}

// WithConfig sets the global configuration.
func (b *DiffOrchestratorBuilder) WithConfig(cfg *config.GlobalConfig) *DiffOrchestratorBuilder {
	b.orchestrator.globalConfig = cfg
	return b
}

// WithMediaTool sets the media tool implementation.
func (b *DiffOrchestratorBuilder) WithMediaTool(tool MediaTool) *DiffOrchestratorBuilder {
	b.orchestrator.mediaTool = tool
	return b
}

// WithHashCache wires the optional parquet frame-hash cache. Either side
// may be nil to disable reads or writes independently.
func (b *DiffOrchestratorBuilder) WithHashCache(reader *datastore.HashCacheReader, writer *datastore.HashCacheWriter) *DiffOrchestratorBuilder {
	b.orchestrator.cacheReader = reader
	b.orchestrator.cacheWriter = writer
	return b
}

// WithHistoryDB wires the optional run-history database.
func (b *DiffOrchestratorBuilder) WithHistoryDB(db *history.DB) *DiffOrchestratorBuilder {
	b.orchestrator.historyDB = db
	return b
}

// WithReportGenerator sets the HTML report generator.
func (b *DiffOrchestratorBuilder) WithReportGenerator(gen *reporter.DiffReportGenerator) *DiffOrchestratorBuilder {
	b.orchestrator.reportGenerator = gen
	return b
}

// WithResourceLimiter wires the optional resource limiter used to bound
// the extraction worker pool.
func (b *DiffOrchestratorBuilder) WithResourceLimiter(limiter *rslimiter.ResourceLimiter) *DiffOrchestratorBuilder {
	b.orchestrator.resourceLimiter = limiter
	return b
}

// Build validates and returns the DiffOrchestrator.
func (b *DiffOrchestratorBuilder) Build() (*DiffOrchestrator, error) {
	if b.orchestrator.globalConfig == nil {
		return nil, errorwrapper.NewError("global config is required")
	}
	if b.orchestrator.mediaTool == nil {
		return nil, errorwrapper.NewError("media tool is required")
	}
	if b.orchestrator.reportGenerator == nil {
		return nil, errorwrapper.NewError("report generator is required")
	}
	return b.orchestrator, nil
}

// DiffRunOutcome bundles the results of one completed workflow run.
type DiffRunOutcome struct {
	RunID         string
	Result        *models.DiffRunResult
	ReportPath    string
	DiffVideoPath string
}

// ExecuteDiffWorkflow runs the full compare workflow for two videos.
// reportName is the output HTML file name; the whole-video diff render is
// named after its stem. The report is generated even when the videos turn
// out identical.
func (o *DiffOrchestrator) ExecuteDiffWorkflow(ctx context.Context, video1Path, video2Path, reportName string) (*DiffRunOutcome, error) {
	runID := time.Now().Format("20060102-150405")
	startTime := time.Now()
	o.logger.Info().
		Str("run_id", runID).
		Str("video1", video1Path).
		Str("video2", video2Path).
		Msg("Starting diff workflow")

	dbRunID := o.recordRunStart(runID, video1Path, video2Path, startTime)

	outcome, err := o.runWorkflow(ctx, runID, video1Path, video2Path, reportName)
	if err != nil {
		o.recordRunFailure(dbRunID, err)
		return nil, err
	}

	o.recordRunSuccess(dbRunID, outcome)
	o.logger.Info().
		Str("run_id", runID).
		Int("differing_frames", outcome.Result.Summary.DifferingFrames).
		Int("chunks", len(outcome.Result.Chunks)).
		Dur("elapsed", time.Since(startTime)).
		Msg("Diff workflow completed")
	return outcome, nil
}

func (o *DiffOrchestrator) runWorkflow(ctx context.Context, runID, video1Path, video2Path, reportName string) (*DiffRunOutcome, error) {
	diffVideoName := diffVideoNameFor(reportName)
	diffVideoPath, err := o.renderDiffVideo(ctx, video1Path, video2Path, diffVideoName)
	if err != nil {
		return nil, err
	}

	if err := contextutils.CheckCancellation(ctx, o.logger, "diff workflow"); err != nil {
		return nil, err
	}

	hashes1, hashes2, err := o.hashVideos(ctx, video1Path, video2Path)
	if err != nil {
		return nil, err
	}

	chunks, err := o.buildChunks(hashes1, hashes2)
	if err != nil {
		return nil, err
	}
	differingFrames := differ.NewChunkBuilder().CountDifferingFrames(chunks)
	summary := differ.BuildSummary(hashes1.Len(), hashes2.Len(), differingFrames)

	var clipSets []models.ClipSet
	if len(chunks) > 0 {
		o.logger.Info().Int("chunks", len(chunks)).Msg("Extracting differing sections")
		clipSets, err = o.extractChunkArtifacts(ctx, video1Path, video2Path, diffVideoName, chunks)
		if err != nil {
			return nil, err
		}
	}

	result := &models.DiffRunResult{
		Video1Path: video1Path,
		Video2Path: video2Path,
		Summary:    summary,
		Chunks:     chunks,
		ClipSets:   clipSets,
	}

	reportPath, err := o.reportGenerator.GenerateReport(result, diffVideoName, reportName)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to generate diff report")
	}

	return &DiffRunOutcome{
		RunID:         runID,
		Result:        result,
		ReportPath:    reportPath,
		DiffVideoPath: diffVideoPath,
	}, nil
}

// renderDiffVideo produces the whole-video pixel-difference render in the
// report output directory. It runs before hashing so the render exists even
// for runs that abort mid-comparison.
func (o *DiffOrchestrator) renderDiffVideo(ctx context.Context, video1Path, video2Path, diffVideoName string) (string, error) {
	if err := o.reportGenerator.EnsureOutputDirectory(); err != nil {
		return "", err
	}
	diffVideoPath := filepath.Join(o.reportGenerator.OutputDir(), diffVideoName)
	if err := o.mediaTool.CreateDiffVideo(ctx, video1Path, video2Path, diffVideoPath); err != nil {
		return "", err
	}
	return diffVideoPath, nil
}

// hashVideos hashes both videos concurrently, consulting the parquet cache
// when wired. Cache write failures are logged and do not fail the run.
func (o *DiffOrchestrator) hashVideos(ctx context.Context, video1Path, video2Path string) (models.HashSequence, models.HashSequence, error) {
	var wg sync.WaitGroup
	sequences := make([]models.HashSequence, 2)
	errs := make([]error, 2)

	for i, videoPath := range []string{video1Path, video2Path} {
		wg.Add(1)
		go func(idx int, path string) {
			defer wg.Done()
			sequences[idx], errs[idx] = o.hashVideoCached(ctx, path)
		}(i, videoPath)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, nil, err
		}
	}
	return sequences[0], sequences[1], nil
}

func (o *DiffOrchestrator) hashVideoCached(ctx context.Context, videoPath string) (models.HashSequence, error) {
	hashAlgorithm := o.globalConfig.FFmpegConfig.HashAlgorithm

	if o.cacheReader != nil {
		hashes, hit, err := o.cacheReader.Lookup(videoPath, hashAlgorithm)
		if err != nil {
			return nil, err
		}
		if hit {
			o.logger.Debug().Str("video", videoPath).Int("frames", hashes.Len()).Msg("Frame hash cache hit")
			return hashes, nil
		}
	}

	hashes, err := o.mediaTool.HashFrames(ctx, videoPath)
	if err != nil {
		return nil, err
	}

	if o.cacheWriter != nil {
		if err := o.cacheWriter.Write(ctx, videoPath, hashes, hashAlgorithm); err != nil {
			o.logger.Warn().Err(err).Str("video", videoPath).Msg("Failed to write frame hash cache")
		}
	}
	return hashes, nil
}

// buildChunks turns the two hash sequences into diff chunks using the
// configured chunking policy.
func (o *DiffOrchestrator) buildChunks(hashes1, hashes2 models.HashSequence) ([]models.Chunk, error) {
	diffCfg := o.globalConfig.DiffConfig
	switch diffCfg.ChunkPolicy {
	case config.ChunkPolicyTolerance:
		return o.buildToleranceChunks(hashes1, hashes2, diffCfg.MaxSameFrames)
	default:
		ops := differ.NewAligner().Align(hashes1, hashes2)
		return differ.NewChunkBuilder().BuildChunks(ops), nil
	}
}

// buildToleranceChunks runs the pairwise comparison mode: equal-length
// sequences only, differing indices merged across gaps of identical frames
// no longer than maxSameFrames.
func (o *DiffOrchestrator) buildToleranceChunks(hashes1, hashes2 models.HashSequence, maxSameFrames int) ([]models.Chunk, error) {
	if hashes1.Len() != hashes2.Len() {
		return nil, errorwrapper.NewValidationError(
			"chunk_policy", config.ChunkPolicyTolerance,
			"tolerance chunking requires equal-length videos")
	}

	indices := hashes1.DifferingIndices(hashes2)
	groups := differ.NewChunkBuilder().MergeDifferingIndices(indices, maxSameFrames)

	chunks := make([]models.Chunk, 0, len(groups))
	for _, group := range groups {
		start, end := group[0], group[len(group)-1]
		count := end - start + 1
		chunks = append(chunks, models.Chunk{
			Type:    models.ChunkReplace,
			V1Start: start,
			V1End:   end,
			V1Count: count,
			V2Start: start,
			V2End:   end,
			V2Count: count,
		})
	}
	return chunks, nil
}

func (o *DiffOrchestrator) recordRunStart(runID, video1Path, video2Path string, startTime time.Time) int64 {
	if o.historyDB == nil {
		return 0
	}
	dbRunID, err := o.historyDB.RecordRunStart(runID, video1Path, video2Path, startTime)
	if err != nil {
		o.logger.Warn().Err(err).Str("run_id", runID).Msg("Failed to record run start in history")
		return 0
	}
	return dbRunID
}

func (o *DiffOrchestrator) recordRunFailure(dbRunID int64, runErr error) {
	if o.historyDB == nil || dbRunID == 0 {
		return
	}
	completion := history.RunCompletion{
		Status:     history.StatusFailed,
		LogSummary: runErr.Error(),
	}
	if err := o.historyDB.UpdateRunCompletion(dbRunID, time.Now(), completion); err != nil {
		o.logger.Warn().Err(err).Msg("Failed to record run failure in history")
	}
}

func (o *DiffOrchestrator) recordRunSuccess(dbRunID int64, outcome *DiffRunOutcome) {
	if o.historyDB == nil || dbRunID == 0 {
		return
	}
	summary := outcome.Result.Summary
	status := history.StatusDifferent
	if summary.Identical {
		status = history.StatusIdentical
	}
	completion := history.RunCompletion{
		Status:          status,
		Video1Frames:    summary.Video1Frames,
		Video2Frames:    summary.Video2Frames,
		DifferingFrames: summary.DifferingFrames,
		ChunkCount:      len(outcome.Result.Chunks),
		ReportPath:      outcome.ReportPath,
		LogSummary:      summary.ResultText(),
	}
	if err := o.historyDB.UpdateRunCompletion(dbRunID, time.Now(), completion); err != nil {
		o.logger.Warn().Err(err).Msg("Failed to record run completion in history")
	}
}

// diffVideoNameFor derives the whole-video diff render name from the report
// file name: same stem, .mp4 extension.
func diffVideoNameFor(reportName string) string {
	stem := strings.TrimSuffix(reportName, filepath.Ext(reportName))
	return stem + ".mp4"
}
