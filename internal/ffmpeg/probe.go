package ffmpeg

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/aleister1102/uidiff/internal/common/errorwrapper"
)

type probeOutput struct {
	Streams []struct {
		RFrameRate string `json:"r_frame_rate"`
	} `json:"streams"`
}

// FrameRate returns the frame rate of the first video stream.
func (r *Runner) FrameRate(ctx context.Context, videoPath string) (float64, error) {
	args := []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=r_frame_rate",
		"-of", "json",
		videoPath,
	}

	out, err := r.run(ctx, "ffprobe", "probe frame rate", videoPath, args)
	if err != nil {
		return 0, err
	}

	return parseFrameRate(out, videoPath)
}

// parseFrameRate extracts fps from ffprobe JSON output. The rate is reported
// as a "num/den" rational.
func parseFrameRate(out []byte, videoPath string) (float64, error) {
	var probe probeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return 0, errorwrapper.WrapError(err, "failed to parse ffprobe output for: "+videoPath)
	}
	if len(probe.Streams) == 0 {
		return 0, errorwrapper.NewError("no video stream found in '%s'", videoPath)
	}

	rate := probe.Streams[0].RFrameRate
	num, den, ok := strings.Cut(rate, "/")
	if !ok {
		return 0, errorwrapper.NewError("unexpected frame rate format '%s' for '%s'", rate, videoPath)
	}

	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, errorwrapper.WrapError(err, "invalid frame rate numerator: "+rate)
	}
	d, err := strconv.Atoi(den)
	if err != nil {
		return 0, errorwrapper.WrapError(err, "invalid frame rate denominator: "+rate)
	}
	if d == 0 {
		return 0, errorwrapper.NewError("zero frame rate denominator for '%s'", videoPath)
	}

	return float64(n) / float64(d), nil
}
