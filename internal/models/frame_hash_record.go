package models

// ParquetFrameRecord is the storage representation of a single frame hash.
// VideoSize and VideoModTime form the cache signature: records are only
// valid while the source file is unchanged.
type ParquetFrameRecord struct {
	VideoPath     string `parquet:"video_path"`
	VideoSize     int64  `parquet:"video_size"`
	VideoModTime  int64  `parquet:"video_mod_time_ms"`
	FrameIndex    int32  `parquet:"frame_index"`
	Hash          string `parquet:"hash"`
	HashAlgorithm string `parquet:"hash_algorithm"`
	CachedAt      int64  `parquet:"cached_at_ms"`
}
