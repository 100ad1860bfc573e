package datastore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/uidiff/internal/config"
	"github.com/aleister1102/uidiff/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempVideo(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func newTestStorageConfig(t *testing.T) *config.StorageConfig {
	t.Helper()
	cfg := config.NewDefaultStorageConfig()
	cfg.ParquetBasePath = filepath.Join(t.TempDir(), "framehashes")
	return &cfg
}

func TestVideoKeyGenerator(t *testing.T) {
	gen := NewVideoKeyGenerator(16)

	key1 := gen.GenerateKey("/tmp/a/route.mp4")
	key2 := gen.GenerateKey("/tmp/b/route.mp4")

	assert.NotEqual(t, key1, key2, "same base name in different directories must map to different keys")
	assert.Contains(t, key1, "route-")
	assert.Equal(t, key1, gen.GenerateKey("/tmp/a/route.mp4"), "keys must be deterministic")
}

func TestVideoKeyGenerator_SanitizesName(t *testing.T) {
	gen := NewVideoKeyGenerator(8)

	key := gen.GenerateKey("/tmp/ui replay (v2).mp4")

	assert.NotContains(t, key, " ")
	assert.NotContains(t, key, "(")
}

func TestHashCache_WriteThenLookup(t *testing.T) {
	logger := zerolog.Nop()
	cfg := newTestStorageConfig(t)
	video := writeTempVideo(t, t.TempDir(), "route.mp4", []byte("fake video bytes"))

	writer, err := NewHashCacheWriterBuilder(logger).WithStorageConfig(cfg).Build()
	require.NoError(t, err)

	hashes := models.HashSequence{"h0", "h1", "h2"}
	require.NoError(t, writer.Write(context.Background(), video, hashes, "md5"))

	reader := NewHashCacheReader(cfg, logger)
	got, hit, err := reader.Lookup(video, "md5")

	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, hashes, got)
}

func TestHashCache_MissWhenNoEntry(t *testing.T) {
	logger := zerolog.Nop()
	cfg := newTestStorageConfig(t)
	video := writeTempVideo(t, t.TempDir(), "route.mp4", []byte("fake video bytes"))

	reader := NewHashCacheReader(cfg, logger)
	got, hit, err := reader.Lookup(video, "md5")

	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, got)
}

func TestHashCache_StaleWhenVideoChanges(t *testing.T) {
	logger := zerolog.Nop()
	cfg := newTestStorageConfig(t)
	videoDir := t.TempDir()
	video := writeTempVideo(t, videoDir, "route.mp4", []byte("original"))

	writer, err := NewHashCacheWriterBuilder(logger).WithStorageConfig(cfg).Build()
	require.NoError(t, err)
	require.NoError(t, writer.Write(context.Background(), video, models.HashSequence{"h0"}, "md5"))

	// Rewriting the file changes the size signature.
	require.NoError(t, os.WriteFile(video, []byte("rewritten with new length"), 0644))

	reader := NewHashCacheReader(cfg, logger)
	_, hit, err := reader.Lookup(video, "md5")

	require.NoError(t, err)
	assert.False(t, hit)
}

func TestHashCache_MissOnAlgorithmMismatch(t *testing.T) {
	logger := zerolog.Nop()
	cfg := newTestStorageConfig(t)
	video := writeTempVideo(t, t.TempDir(), "route.mp4", []byte("fake video bytes"))

	writer, err := NewHashCacheWriterBuilder(logger).WithStorageConfig(cfg).Build()
	require.NoError(t, err)
	require.NoError(t, writer.Write(context.Background(), video, models.HashSequence{"h0"}, "md5"))

	reader := NewHashCacheReader(cfg, logger)
	_, hit, err := reader.Lookup(video, "sha256")

	require.NoError(t, err)
	assert.False(t, hit)
}

func TestHashCacheWriter_NilConfig(t *testing.T) {
	writer, err := NewHashCacheWriterBuilder(zerolog.Nop()).Build()

	assert.Error(t, err)
	assert.Nil(t, writer)
}
