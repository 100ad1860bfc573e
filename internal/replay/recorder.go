package replay

import (
	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/aleister1102/uidiff/internal/common/errorwrapper"
	"github.com/aleister1102/uidiff/internal/common/filemanager"
)

// Recorder persists and restores action-log recordings as JSON files.
type Recorder struct {
	logger      zerolog.Logger
	fileManager *filemanager.FileManager
	dmp         *diffmatchpatch.DiffMatchPatch
}

// NewRecorder creates a new Recorder.
func NewRecorder(logger zerolog.Logger) *Recorder {
	componentLogger := logger.With().Str("component", "ReplayRecorder").Logger()
	return &Recorder{
		logger:      componentLogger,
		fileManager: filemanager.NewFileManager(componentLogger),
		dmp:         diffmatchpatch.New(),
	}
}

// Save writes actions to path as an indented JSON array.
func (r *Recorder) Save(path string, actions []Action) error {
	data, err := EncodeRecording(actions)
	if err != nil {
		return err
	}
	if err := r.fileManager.WriteFile(path, data, filemanager.DefaultFileWriteOptions()); err != nil {
		return errorwrapper.WrapError(err, "failed to save recording")
	}
	r.logger.Info().Str("path", path).Int("actions", len(actions)).Msg("Saved recording")
	return nil
}

// Load reads a recording from path.
func (r *Recorder) Load(path string) ([]Action, error) {
	data, err := r.fileManager.ReadFile(path, filemanager.DefaultFileReadOptions())
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to read recording")
	}
	return DecodeRecording(data)
}

// Compare checks two action logs for byte-identical serialization and, on
// mismatch, returns a character-level diff of the two encodings. Used to
// verify a replay reproduced the recorded session deterministically.
func (r *Recorder) Compare(expected, actual []Action) (bool, string, error) {
	expectedJSON, err := EncodeRecording(expected)
	if err != nil {
		return false, "", err
	}
	actualJSON, err := EncodeRecording(actual)
	if err != nil {
		return false, "", err
	}

	if string(expectedJSON) == string(actualJSON) {
		return true, "", nil
	}

	diffs := r.dmp.DiffMain(string(expectedJSON), string(actualJSON), true)
	return false, r.dmp.DiffPrettyText(diffs), nil
}
