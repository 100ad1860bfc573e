package replay

// Point is a screen coordinate.
type Point struct {
	X int
	Y int
}

// Event is one scripted stimulus: an optional click or swipe plus an
// optional setup callback that mutates run state (params, frame sender)
// before the frame is rendered.
type Event struct {
	ClickPos   *Point
	SwipeLeft  bool
	SwipeRight bool
	SwipeDown  bool
	Setup      func(*ReplayContext)
}

// ScriptStep binds an event to the absolute frame it fires on.
type ScriptStep struct {
	Frame int
	Event Event
}

// ScriptBuilder accumulates a replay script as frame offsets relative to
// the previous step, the way scenario scripts are written.
type ScriptBuilder struct {
	fps   int
	frame int
	steps []ScriptStep
}

// NewScriptBuilder creates a builder for a script running at fps.
func NewScriptBuilder(fps int) *ScriptBuilder {
	return &ScriptBuilder{fps: fps}
}

// Add appends an event deltaFrames after the previous step.
func (b *ScriptBuilder) Add(deltaFrames int, event Event) *ScriptBuilder {
	b.frame += deltaFrames
	b.steps = append(b.steps, ScriptStep{Frame: b.frame, Event: event})
	return b
}

// AddSeconds appends an event after a delay given in seconds.
func (b *ScriptBuilder) AddSeconds(seconds float64, event Event) *ScriptBuilder {
	return b.Add(int(float64(b.fps)*seconds), event)
}

// Hold appends an empty event a quarter second after the previous step,
// letting the scene settle on screen.
func (b *ScriptBuilder) Hold() *ScriptBuilder {
	return b.Add(b.fps/4, Event{})
}

// Build returns the accumulated steps in frame order.
func (b *ScriptBuilder) Build() []ScriptStep {
	return b.steps
}
