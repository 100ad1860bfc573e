package datastore

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/aleister1102/uidiff/internal/common/contextutils"
	"github.com/aleister1102/uidiff/internal/common/errorwrapper"
	"github.com/aleister1102/uidiff/internal/common/filemanager"
	"github.com/aleister1102/uidiff/internal/config"
	"github.com/aleister1102/uidiff/internal/models"
	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

// HashCacheWriter persists frame hash sequences to Parquet files
type HashCacheWriter struct {
	config       *config.StorageConfig
	logger       zerolog.Logger
	fileManager  *filemanager.FileManager
	keyGenerator *VideoKeyGenerator
}

// HashCacheWriterBuilder provides a fluent interface for creating HashCacheWriter
type HashCacheWriterBuilder struct {
	config *config.StorageConfig
	logger zerolog.Logger
}

// NewHashCacheWriterBuilder creates a new HashCacheWriterBuilder
func NewHashCacheWriterBuilder(logger zerolog.Logger) *HashCacheWriterBuilder {
	return &HashCacheWriterBuilder{
		logger: logger.With().Str("component", "HashCacheWriter").Logger(),
	}
}

// WithStorageConfig sets the storage configuration
func (b *HashCacheWriterBuilder) WithStorageConfig(cfg *config.StorageConfig) *HashCacheWriterBuilder {
	b.config = cfg
	return b
}

// Build creates a new HashCacheWriter instance
func (b *HashCacheWriterBuilder) Build() (*HashCacheWriter, error) {
	if b.config == nil {
		return nil, errorwrapper.NewValidationError("config", b.config, "storage config cannot be nil")
	}

	if b.config.ParquetBasePath == "" {
		b.logger.Warn().Msg("ParquetBasePath is empty in config")
	}

	return &HashCacheWriter{
		config:       b.config,
		logger:       b.logger,
		fileManager:  filemanager.NewFileManager(b.logger),
		keyGenerator: NewVideoKeyGenerator(16),
	}, nil
}

// Write stores the hash sequence for a video together with its cache signature
func (hcw *HashCacheWriter) Write(ctx context.Context, videoPath string, hashes models.HashSequence, hashAlgorithm string) error {
	if hcw.config.ParquetBasePath == "" {
		return errorwrapper.NewValidationError("parquet_base_path", hcw.config.ParquetBasePath, "ParquetBasePath is not configured")
	}

	if err := contextutils.CheckCancellation(ctx, hcw.logger, "hash cache write"); err != nil {
		return err
	}

	stat, err := os.Stat(videoPath)
	if err != nil {
		return errorwrapper.WrapError(err, "failed to stat video for cache signature: "+videoPath)
	}

	records := hcw.buildRecords(videoPath, stat.Size(), stat.ModTime(), hashes, hashAlgorithm)

	filePath, err := hcw.prepareOutputFile(videoPath)
	if err != nil {
		return err
	}

	recordsWritten, err := hcw.writeToParquetFile(filePath, records)
	if err != nil {
		return err
	}

	hcw.logger.Info().
		Str("file_path", filePath).
		Int("records_written", recordsWritten).
		Msg("Cached frame hashes to Parquet file")

	return nil
}

// buildRecords converts the hash sequence into storage records
func (hcw *HashCacheWriter) buildRecords(videoPath string, size int64, modTime time.Time, hashes models.HashSequence, hashAlgorithm string) []models.ParquetFrameRecord {
	now := time.Now().UnixMilli()
	records := make([]models.ParquetFrameRecord, 0, len(hashes))
	for i, h := range hashes {
		records = append(records, models.ParquetFrameRecord{
			VideoPath:     videoPath,
			VideoSize:     size,
			VideoModTime:  modTime.UnixMilli(),
			FrameIndex:    int32(i),
			Hash:          string(h),
			HashAlgorithm: hashAlgorithm,
			CachedAt:      now,
		})
	}
	return records
}

// prepareOutputFile prepares the output directory and cache file path
func (hcw *HashCacheWriter) prepareOutputFile(videoPath string) (string, error) {
	if err := hcw.fileManager.EnsureDirectory(hcw.config.ParquetBasePath, 0755); err != nil {
		return "", errorwrapper.WrapError(err, "failed to create Parquet cache directory: "+hcw.config.ParquetBasePath)
	}

	fileName := hcw.keyGenerator.GenerateKey(videoPath) + ".parquet"
	return filepath.Join(hcw.config.ParquetBasePath, fileName), nil
}

// writeToParquetFile writes the records to a Parquet file
func (hcw *HashCacheWriter) writeToParquetFile(filePath string, records []models.ParquetFrameRecord) (int, error) {
	file, err := os.Create(filePath)
	if err != nil {
		return 0, errorwrapper.WrapError(err, "failed to create/truncate parquet file: "+filePath)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[models.ParquetFrameRecord](file, hcw.getCompressionOption())
	defer writer.Close()

	recordsWritten, err := writer.Write(records)
	if err != nil {
		return 0, errorwrapper.WrapError(err, "failed to write frame hashes to parquet file")
	}

	return recordsWritten, nil
}

// getCompressionOption returns the compression option based on configuration
func (hcw *HashCacheWriter) getCompressionOption() parquet.WriterOption {
	switch hcw.config.CompressionCodec {
	case "gzip":
		return parquet.Compression(&parquet.Gzip)
	case "snappy":
		return parquet.Compression(&parquet.Snappy)
	case "none":
		return parquet.Compression(&parquet.Uncompressed)
	case "zstd":
		return parquet.Compression(&parquet.Zstd)
	default:
		return parquet.Compression(&parquet.Zstd) // Default to Zstd
	}
}
