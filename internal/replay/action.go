package replay

import (
	"encoding/json"

	"github.com/aleister1102/uidiff/internal/common/errorwrapper"
)

// Action types.
const (
	ActionClick     = "click"
	ActionLongPress = "long_press"
	ActionSwipe     = "swipe"
	ActionSetParam  = "set_param"
	ActionPump      = "pump"
)

// Param value types for ActionSetParam.
const (
	ParamTypeString = "string"
	ParamTypeBool   = "bool"
	ParamTypeRemove = "remove"
)

// Defaults applied to absent optional fields when executing recordings.
const (
	DefaultLongPressMS = 600
	DefaultSwipeSteps  = 5
	DefaultPumpFrames  = 30
)

// Action is one recorded input step. Only the fields relevant to the
// action type are serialized, matching the recording format: a click is
// `{"action":"click","x":..,"y":..}`.
type Action struct {
	Action string `json:"action"`

	// Click and long-press target.
	X int `json:"x,omitempty"`
	Y int `json:"y,omitempty"`

	// Swipe endpoints and interpolation step count.
	X1    int `json:"x1,omitempty"`
	Y1    int `json:"y1,omitempty"`
	X2    int `json:"x2,omitempty"`
	Y2    int `json:"y2,omitempty"`
	Steps int `json:"steps,omitempty"`

	// Long-press hold time.
	DurationMS int `json:"duration_ms,omitempty"`

	// Pump frame count.
	Frames int `json:"frames,omitempty"`

	// Param key/value for set_param.
	Key       string `json:"key,omitempty"`
	Value     string `json:"value,omitempty"`
	ParamType string `json:"param_type,omitempty"`
}

// Click builds a click action at (x, y).
func Click(x, y int) Action {
	return Action{Action: ActionClick, X: x, Y: y}
}

// LongPress builds a long-press action held for durationMS milliseconds.
func LongPress(x, y, durationMS int) Action {
	return Action{Action: ActionLongPress, X: x, Y: y, DurationMS: durationMS}
}

// Swipe builds a swipe from (x1, y1) to (x2, y2) interpolated over steps
// intermediate positions.
func Swipe(x1, y1, x2, y2, steps int) Action {
	return Action{Action: ActionSwipe, X1: x1, Y1: y1, X2: x2, Y2: y2, Steps: steps}
}

// SetParam builds a persisted-param mutation action.
func SetParam(key, value, paramType string) Action {
	return Action{Action: ActionSetParam, Key: key, Value: value, ParamType: paramType}
}

// Pump builds an action that advances the render loop by frames without
// injecting input.
func Pump(frames int) Action {
	return Action{Action: ActionPump, Frames: frames}
}

// DecodeRecording parses a recording: a JSON array of actions.
func DecodeRecording(data []byte) ([]Action, error) {
	var actions []Action
	if err := json.Unmarshal(data, &actions); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to parse recording JSON")
	}
	return actions, nil
}

// EncodeRecording serializes actions as indented JSON, the recording file
// format.
func EncodeRecording(actions []Action) ([]byte, error) {
	data, err := json.MarshalIndent(actions, "", "  ")
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to encode recording JSON")
	}
	return data, nil
}
