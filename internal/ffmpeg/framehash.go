package ffmpeg

import (
	"context"
	"strings"

	"github.com/aleister1102/uidiff/internal/models"
)

// HashFrames returns one content hash per decoded frame of the video,
// using the framehash muxer so every frame is accounted for exactly once.
func (r *Runner) HashFrames(ctx context.Context, videoPath string) (models.HashSequence, error) {
	args := []string{
		"-i", videoPath,
		"-map", "0:v:0",
		"-vsync", "0",
		"-f", "framehash",
		"-hash", r.hashAlgorithm,
		"-",
	}

	out, err := r.run(ctx, "ffmpeg", "hash frames", videoPath, args)
	if err != nil {
		return nil, err
	}

	hashes := parseFramehashOutput(string(out))
	r.logger.Debug().
		Str("video", videoPath).
		Int("frames", len(hashes)).
		Msg("Hashed video frames")

	return hashes, nil
}

// parseFramehashOutput extracts the per-frame digest from framehash muxer
// output. Comment lines start with '#'; data lines are CSV with the hash in
// the last field.
func parseFramehashOutput(out string) models.HashSequence {
	var hashes models.HashSequence
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 4 {
			continue
		}
		hashes = append(hashes, models.FrameHash(strings.TrimSpace(parts[len(parts)-1])))
	}
	return hashes
}
