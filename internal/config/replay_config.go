package config

// ReplayConfig defines configuration for the UI replay harness
type ReplayConfig struct {
	// FPS is the render-loop frame rate; script timings are expressed in
	// frames relative to it.
	FPS int `json:"fps,omitempty" yaml:"fps,omitempty" validate:"min=1"`

	// Headless hides the UI window during replay.
	Headless bool `json:"headless" yaml:"headless"`

	// RecordOutput is the screen-recording file written during replay,
	// relative to the reporter output directory.
	RecordOutput string `json:"record_output,omitempty" yaml:"record_output,omitempty"`

	// WarmupFrames are pumped before the first action so widgets lay out;
	// SettleFrames are pumped after the last action.
	WarmupFrames int `json:"warmup_frames,omitempty" yaml:"warmup_frames,omitempty" validate:"min=0"`
	SettleFrames int `json:"settle_frames,omitempty" yaml:"settle_frames,omitempty" validate:"min=0"`
}

// NewDefaultReplayConfig creates default replay configuration
func NewDefaultReplayConfig() ReplayConfig {
	return ReplayConfig{
		FPS:          DefaultReplayFPS,
		Headless:     true,
		RecordOutput: DefaultReplayRecordOutput,
		WarmupFrames: DefaultReplayWarmupFrames,
		SettleFrames: DefaultReplaySettleFrames,
	}
}
