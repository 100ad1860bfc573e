package datastore

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/aleister1102/uidiff/internal/common/errorwrapper"
	"github.com/aleister1102/uidiff/internal/config"
	"github.com/aleister1102/uidiff/internal/models"
	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

// HashCacheReader loads cached frame hash sequences from Parquet files
type HashCacheReader struct {
	storageConfig *config.StorageConfig
	logger        zerolog.Logger
	keyGenerator  *VideoKeyGenerator
}

// NewHashCacheReader creates a new HashCacheReader
func NewHashCacheReader(cfg *config.StorageConfig, logger zerolog.Logger) *HashCacheReader {
	if cfg == nil || cfg.ParquetBasePath == "" {
		logger.Warn().Msg("HashCacheReader: StorageConfig or ParquetBasePath is not properly configured")
	}
	return &HashCacheReader{
		storageConfig: cfg,
		logger:        logger.With().Str("component", "HashCacheReader").Logger(),
		keyGenerator:  NewVideoKeyGenerator(16),
	}
}

// Lookup returns the cached hash sequence for the video if the cache entry
// matches the file's current size and modification time. A stale or missing
// entry is a cache miss, not an error.
func (hcr *HashCacheReader) Lookup(videoPath string, hashAlgorithm string) (models.HashSequence, bool, error) {
	if hcr.storageConfig == nil || hcr.storageConfig.ParquetBasePath == "" {
		return nil, false, nil
	}

	stat, err := os.Stat(videoPath)
	if err != nil {
		return nil, false, errorwrapper.WrapError(err, "failed to stat video for cache lookup: "+videoPath)
	}

	cachePath := filepath.Join(hcr.storageConfig.ParquetBasePath, hcr.keyGenerator.GenerateKey(videoPath)+".parquet")
	if _, err := os.Stat(cachePath); os.IsNotExist(err) {
		hcr.logger.Debug().Str("video", videoPath).Msg("No cache entry for video")
		return nil, false, nil
	}

	records, err := hcr.readRecords(cachePath)
	if err != nil {
		hcr.logger.Warn().Err(err).Str("file", cachePath).Msg("Failed to read cache file, treating as miss")
		return nil, false, nil
	}
	if len(records) == 0 {
		return nil, false, nil
	}

	// Signature check against the first record; all records of one file
	// share the same signature.
	if records[0].VideoSize != stat.Size() || records[0].VideoModTime != stat.ModTime().UnixMilli() {
		hcr.logger.Debug().Str("video", videoPath).Msg("Cache entry is stale")
		return nil, false, nil
	}
	if hashAlgorithm != "" && records[0].HashAlgorithm != hashAlgorithm {
		hcr.logger.Debug().
			Str("video", videoPath).
			Str("cached_algorithm", records[0].HashAlgorithm).
			Str("requested_algorithm", hashAlgorithm).
			Msg("Cache entry uses a different hash algorithm")
		return nil, false, nil
	}

	sort.Slice(records, func(i, j int) bool { return records[i].FrameIndex < records[j].FrameIndex })

	hashes := make(models.HashSequence, 0, len(records))
	for _, rec := range records {
		hashes = append(hashes, models.FrameHash(rec.Hash))
	}

	hcr.logger.Info().
		Str("video", videoPath).
		Int("frames", len(hashes)).
		Msg("Loaded frame hashes from cache")

	return hashes, true, nil
}

// readRecords reads all frame records from a cache file
func (hcr *HashCacheReader) readRecords(filePath string) ([]models.ParquetFrameRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to open parquet file: "+filePath)
	}
	defer file.Close()

	reader := parquet.NewReader(file)
	defer reader.Close()

	var records []models.ParquetFrameRecord
	for {
		var row models.ParquetFrameRecord
		if err := reader.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errorwrapper.WrapError(err, "failed to read row from: "+filePath)
		}
		records = append(records, row)
	}

	return records, nil
}
