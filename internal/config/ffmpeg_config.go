package config

// FFmpegConfig defines how the external media tool is invoked
type FFmpegConfig struct {
	FFmpegPath  string `json:"ffmpeg_path,omitempty" yaml:"ffmpeg_path,omitempty"`
	FFprobePath string `json:"ffprobe_path,omitempty" yaml:"ffprobe_path,omitempty"`

	// HashAlgorithm is the framehash muxer's digest (md5, sha256, ...).
	HashAlgorithm string `json:"hash_algorithm,omitempty" yaml:"hash_algorithm,omitempty"`
}

// NewDefaultFFmpegConfig creates default ffmpeg configuration
func NewDefaultFFmpegConfig() FFmpegConfig {
	return FFmpegConfig{
		FFmpegPath:    DefaultFFmpegPath,
		FFprobePath:   DefaultFFprobePath,
		HashAlgorithm: DefaultHashAlgorithm,
	}
}
