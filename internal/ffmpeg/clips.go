package ffmpeg

import (
	"context"
	"fmt"
)

// ExtractClip writes totalFrames frames of the video starting at startFrame
// into outputPath. Frame positions are converted to a seek timestamp using
// fps. Returns the number of frames requested.
func (r *Runner) ExtractClip(ctx context.Context, videoPath string, startFrame, totalFrames int, fps float64, outputPath string) (int, error) {
	startTime := float64(startFrame) / fps
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", videoPath,
		"-ss", fmt.Sprintf("%.6f", startTime),
		"-frames:v", fmt.Sprintf("%d", totalFrames),
		"-vsync", "0",
		"-y", outputPath,
	}

	if _, err := r.run(ctx, "ffmpeg", "extract clip", videoPath, args); err != nil {
		return 0, err
	}
	return totalFrames, nil
}

// RenderThumbnail writes a single-frame PNG of the video at the given frame index.
func (r *Runner) RenderThumbnail(ctx context.Context, videoPath string, frame int, fps float64, outputPath string) error {
	t := float64(frame) / fps
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", videoPath,
		"-ss", fmt.Sprintf("%.6f", t),
		"-frames:v", "1",
		"-y", outputPath,
	}

	_, err := r.run(ctx, "ffmpeg", "render thumbnail", videoPath, args)
	return err
}

// BlendDifference renders a pixel-difference blend of two clips. Output stops
// at the shorter input.
func (r *Runner) BlendDifference(ctx context.Context, clip1, clip2, outputPath string) error {
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", clip1,
		"-i", clip2,
		"-filter_complex", "blend=all_mode=difference",
		"-vsync", "0",
		"-y", outputPath,
	}

	_, err := r.run(ctx, "ffmpeg", "blend difference", clip1, args)
	return err
}

// CreateDiffVideo renders a whole-video pixel-difference blend of the two inputs.
func (r *Runner) CreateDiffVideo(ctx context.Context, video1, video2, outputPath string) error {
	args := []string{
		"-i", video1,
		"-i", video2,
		"-filter_complex", "[0:v]blend=all_mode=difference",
		"-vsync", "0",
		"-y", outputPath,
	}

	_, err := r.run(ctx, "ffmpeg", "create diff video", video1, args)
	return err
}
