package config

const (
	// Diff defaults
	DefaultClipPaddingBefore = 0
	DefaultClipPaddingAfter  = 0
	DefaultMaxSameFrames     = 0
	DefaultChunkPolicy       = ChunkPolicyAlign

	// Chunking policies
	ChunkPolicyAlign     = "align"
	ChunkPolicyTolerance = "tolerance"

	// FFmpeg defaults
	DefaultFFmpegPath    = "ffmpeg"
	DefaultFFprobePath   = "ffprobe"
	DefaultHashAlgorithm = "md5"

	// Reporter defaults
	DefaultReporterOutputDir = "report"
	DefaultReportTitle       = "Video Diff Report"

	// Storage defaults
	DefaultStorageParquetBasePath  = "database/framehashes"
	DefaultStorageCompressionCodec = "zstd"

	// History defaults
	DefaultHistorySQLiteDBPath = "database/history/diff_history.db"

	// Log defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Extraction defaults
	DefaultExtractionWorkers = 4

	// Replay defaults
	DefaultReplayFPS          = 60
	DefaultReplayWarmupFrames = 30
	DefaultReplaySettleFrames = 60
	DefaultReplayRecordOutput = "ui_replay.mp4"
)
