package datastore

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
)

// VideoKeyGenerator derives cache file names from video paths
type VideoKeyGenerator struct {
	hashLength int
}

// NewVideoKeyGenerator creates a new video key generator
func NewVideoKeyGenerator(hashLength int) *VideoKeyGenerator {
	if hashLength <= 0 || hashLength > 64 {
		hashLength = 16 // Default hash length
	}
	return &VideoKeyGenerator{
		hashLength: hashLength,
	}
}

// GenerateKey creates a file-system safe cache key for the video path.
// The base name is kept for readability, a path hash keeps keys unique
// across directories.
func (vkg *VideoKeyGenerator) GenerateKey(videoPath string) string {
	abs, err := filepath.Abs(videoPath)
	if err != nil {
		abs = videoPath
	}

	hasher := sha256.New()
	hasher.Write([]byte(abs))
	digest := hex.EncodeToString(hasher.Sum(nil))[:vkg.hashLength]

	base := filepath.Base(videoPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = sanitizeKeyPart(base)
	if base == "" {
		return digest
	}
	return base + "-" + digest
}

func sanitizeKeyPart(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
