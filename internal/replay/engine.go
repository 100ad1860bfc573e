package replay

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aleister1102/uidiff/internal/common/errorwrapper"
	"github.com/aleister1102/uidiff/internal/config"
)

// Engine executes replay scripts and recorded action logs against a
// Driver, reproducing the frame-accurate input timing the recordings were
// captured with.
type Engine struct {
	config    *config.ReplayConfig
	logger    zerolog.Logger
	driver    Driver
	replayCtx *ReplayContext
	actionLog []Action
}

// EngineBuilder constructs an Engine.
type EngineBuilder struct {
	config *config.ReplayConfig
	logger zerolog.Logger
	driver Driver
}

// NewEngineBuilder creates a new EngineBuilder.
func NewEngineBuilder(logger zerolog.Logger) *EngineBuilder {
	return &EngineBuilder{
		logger: logger.With().Str("component", "ReplayEngine").Logger(),
	}
}

// WithConfig sets the replay configuration.
func (b *EngineBuilder) WithConfig(cfg *config.ReplayConfig) *EngineBuilder {
	b.config = cfg
	return b
}

// WithDriver sets the UI driver.
func (b *EngineBuilder) WithDriver(driver Driver) *EngineBuilder {
	b.driver = driver
	return b
}

// Build validates and returns the Engine.
func (b *EngineBuilder) Build() (*Engine, error) {
	if b.config == nil {
		return nil, errorwrapper.NewError("replay config is required")
	}
	if b.driver == nil {
		return nil, errorwrapper.NewError("driver is required")
	}
	return &Engine{
		config:    b.config,
		logger:    b.logger,
		driver:    b.driver,
		replayCtx: NewReplayContext(),
	}, nil
}

// Context returns the run's replay context, for script setup callbacks
// installed outside the engine.
func (e *Engine) Context() *ReplayContext {
	return e.replayCtx
}

// Frame returns the driver's rendered frame count.
func (e *Engine) Frame() int {
	return e.driver.Frame()
}

// ActionLog returns the actions executed so far, in order.
func (e *Engine) ActionLog() []Action {
	return e.actionLog
}

// Pump advances the render loop by frames, invoking the persistent frame
// sender before each frame.
func (e *Engine) Pump(ctx context.Context, frames int) error {
	for i := 0; i < frames; i++ {
		e.replayCtx.SendFrame(e.driver.Frame())
		if err := e.driver.AdvanceFrame(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteAction performs one action with its recorded timing and appends
// it to the action log.
func (e *Engine) ExecuteAction(ctx context.Context, action Action) error {
	var err error
	switch action.Action {
	case ActionClick:
		err = e.executeClick(ctx, action)
	case ActionLongPress:
		err = e.executeLongPress(ctx, action)
	case ActionSwipe:
		err = e.executeSwipe(ctx, action)
	case ActionSetParam:
		err = e.executeSetParam(ctx, action)
	case ActionPump:
		frames := action.Frames
		if frames <= 0 {
			frames = DefaultPumpFrames
		}
		err = e.Pump(ctx, frames)
	default:
		return errorwrapper.NewValidationError("action", action.Action, "unknown action type")
	}
	if err != nil {
		return err
	}

	e.actionLog = append(e.actionLog, action)
	return nil
}

func (e *Engine) executeClick(ctx context.Context, action Action) error {
	e.driver.InjectPress(action.X, action.Y)
	e.driver.InjectRelease(action.X, action.Y)
	return e.Pump(ctx, 8)
}

func (e *Engine) executeLongPress(ctx context.Context, action Action) error {
	durationMS := action.DurationMS
	if durationMS <= 0 {
		durationMS = DefaultLongPressMS
	}
	holdFrames := durationMS * e.config.FPS / 1000
	if holdFrames < 1 {
		holdFrames = 1
	}

	e.driver.InjectPress(action.X, action.Y)
	if err := e.Pump(ctx, holdFrames); err != nil {
		return err
	}
	e.driver.InjectRelease(action.X, action.Y)
	return e.Pump(ctx, 8)
}

// executeSwipe spreads the drag across frames so scroll panels see a
// sustained manual-scroll gesture instead of a click.
func (e *Engine) executeSwipe(ctx context.Context, action Action) error {
	steps := action.Steps
	if steps <= 0 {
		steps = DefaultSwipeSteps
	}

	e.driver.InjectPress(action.X1, action.Y1)
	if err := e.Pump(ctx, 2); err != nil {
		return err
	}

	for i := 1; i <= steps; i++ {
		x := action.X1 + (action.X2-action.X1)*i/steps
		y := action.Y1 + (action.Y2-action.Y1)*i/steps
		e.driver.InjectMove(x, y)
		if err := e.Pump(ctx, 2); err != nil {
			return err
		}
	}

	e.driver.InjectRelease(action.X2, action.Y2)
	return e.Pump(ctx, 16)
}

func (e *Engine) executeSetParam(ctx context.Context, action Action) error {
	paramType := action.ParamType
	if paramType == "" {
		paramType = ParamTypeString
	}
	if err := e.driver.SetParam(action.Key, action.Value, paramType); err != nil {
		return err
	}
	return e.Pump(ctx, 8)
}

// ReplayRecording replays a recorded action log: warmup frames so widgets
// lay out, the actions in order, then settle frames for the final scene.
func (e *Engine) ReplayRecording(ctx context.Context, actions []Action) error {
	e.logger.Info().Int("actions", len(actions)).Msg("Replaying recording")

	if err := e.Pump(ctx, e.config.WarmupFrames); err != nil {
		return err
	}
	for i, action := range actions {
		e.logger.Debug().Int("index", i).Str("action", action.Action).Msg("Executing action")
		if err := e.ExecuteAction(ctx, action); err != nil {
			return errorwrapper.WrapError(err, "recording replay failed at action "+action.Action)
		}
	}
	return e.Pump(ctx, e.config.SettleFrames)
}

// RunScript executes a frame-indexed script: each frame, every step bound
// to that frame fires (setup callback first, then input), then the frame
// renders. The run ends once all steps have fired and their frame passed.
func (e *Engine) RunScript(ctx context.Context, steps []ScriptStep) error {
	e.logger.Info().Int("steps", len(steps)).Msg("Running replay script")

	frame := 0
	index := 0
	for index < len(steps) {
		for index < len(steps) && steps[index].Frame == frame {
			e.handleEvent(steps[index].Event)
			index++
		}
		e.replayCtx.SendFrame(e.driver.Frame())
		if err := e.driver.AdvanceFrame(ctx); err != nil {
			return err
		}
		frame++
	}

	e.logger.Info().Int("frames", frame).Msg("Replay script finished")
	return nil
}

// handleEvent injects a scripted event's input. All touch events of one
// gesture land on the same frame, matching the scripted capture timing.
func (e *Engine) handleEvent(event Event) {
	if event.Setup != nil {
		event.Setup(e.replayCtx)
	}

	width, height := e.driver.ScreenSize()
	switch {
	case event.ClickPos != nil:
		e.driver.InjectPress(event.ClickPos.X, event.ClickPos.Y)
		e.driver.InjectRelease(event.ClickPos.X, event.ClickPos.Y)
	case event.SwipeLeft:
		e.injectDrag(Point{width * 3 / 4, height / 2}, Point{width / 4, height / 2}, Point{0, height / 2})
	case event.SwipeRight:
		e.injectDrag(Point{width / 4, height / 2}, Point{width * 3 / 4, height / 2}, Point{width, height / 2})
	case event.SwipeDown:
		e.injectDrag(Point{width / 2, height / 4}, Point{width / 2, height * 3 / 4}, Point{width / 2, height})
	}
}

func (e *Engine) injectDrag(points ...Point) {
	e.driver.InjectPress(points[0].X, points[0].Y)
	for _, p := range points[1 : len(points)-1] {
		e.driver.InjectMove(p.X, p.Y)
	}
	last := points[len(points)-1]
	e.driver.InjectRelease(last.X, last.Y)
}
