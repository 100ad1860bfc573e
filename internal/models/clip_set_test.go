package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClipPathsMarshalJSON_InsertChunk(t *testing.T) {
	clips := ClipPaths{Video2: "run-chunks/002_video2.mp4"}

	data, err := json.Marshal(clips)

	require.NoError(t, err)
	assert.JSONEq(t, `{"video1":null,"video2":"run-chunks/002_video2.mp4","diff":null}`, string(data))
}

func TestClipPathsMarshalJSON_ReplaceChunk(t *testing.T) {
	clips := ClipPaths{
		Video1: "run-chunks/000_video1.mp4",
		Video2: "run-chunks/000_video2.mp4",
		Diff:   "run-chunks/000_diff.mp4",
	}

	data, err := json.Marshal(clips)

	require.NoError(t, err)
	assert.JSONEq(t, `{"video1":"run-chunks/000_video1.mp4","video2":"run-chunks/000_video2.mp4","diff":"run-chunks/000_diff.mp4"}`, string(data))
}

func TestClipSetMarshalJSON_AbsentClipsStayNull(t *testing.T) {
	set := ClipSet{
		Type:       ChunkDelete,
		StartFrame: 4,
		EndFrame:   6,
		Duration:   3,
		V1Count:    3,
		Clips:      ClipPaths{Video1: "run-chunks/001_video1.mp4"},
		Thumb:      "run-chunks/001_thumb.png",
	}

	data, err := json.Marshal(set)

	require.NoError(t, err)
	assert.Contains(t, string(data), `"video2":null`)
	assert.Contains(t, string(data), `"diff":null`)
	assert.Contains(t, string(data), `"video1":"run-chunks/001_video1.mp4"`)
}
