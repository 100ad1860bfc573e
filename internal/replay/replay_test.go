package replay

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/uidiff/internal/config"
	"github.com/aleister1102/uidiff/internal/introspect"
)

type injection struct {
	kind  string
	x     int
	y     int
	frame int
}

// fakeDriver records every injected event with the frame it landed on.
type fakeDriver struct {
	width  int
	height int
	frame  int

	injections []injection
	params     map[string]string
	removed    []string
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{width: 536, height: 240, params: make(map[string]string)}
}

func (d *fakeDriver) ScreenSize() (int, int) { return d.width, d.height }
func (d *fakeDriver) Frame() int             { return d.frame }

func (d *fakeDriver) AdvanceFrame(_ context.Context) error {
	d.frame++
	return nil
}

func (d *fakeDriver) InjectPress(x, y int) {
	d.injections = append(d.injections, injection{"press", x, y, d.frame})
}

func (d *fakeDriver) InjectMove(x, y int) {
	d.injections = append(d.injections, injection{"move", x, y, d.frame})
}

func (d *fakeDriver) InjectRelease(x, y int) {
	d.injections = append(d.injections, injection{"release", x, y, d.frame})
}

func (d *fakeDriver) SetParam(key, value, paramType string) error {
	if paramType == ParamTypeRemove {
		delete(d.params, key)
		d.removed = append(d.removed, key)
		return nil
	}
	d.params[key] = value
	return nil
}

func (d *fakeDriver) Root() introspect.Widget         { return nil }
func (d *fakeDriver) ModalOverlay() introspect.Widget { return nil }

func newTestEngine(t *testing.T, driver *fakeDriver) *Engine {
	t.Helper()
	cfg := config.NewDefaultReplayConfig()
	engine, err := NewEngineBuilder(zerolog.Nop()).
		WithConfig(&cfg).
		WithDriver(driver).
		Build()
	require.NoError(t, err)
	return engine
}

func TestEngineBuilder_MissingDependencies(t *testing.T) {
	_, err := NewEngineBuilder(zerolog.Nop()).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "replay config")

	cfg := config.NewDefaultReplayConfig()
	_, err = NewEngineBuilder(zerolog.Nop()).WithConfig(&cfg).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "driver")
}

func TestExecuteAction_Click(t *testing.T) {
	driver := newFakeDriver()
	engine := newTestEngine(t, driver)

	require.NoError(t, engine.ExecuteAction(context.Background(), Click(100, 120)))

	require.Len(t, driver.injections, 2)
	assert.Equal(t, injection{"press", 100, 120, 0}, driver.injections[0])
	assert.Equal(t, injection{"release", 100, 120, 0}, driver.injections[1])
	assert.Equal(t, 8, driver.frame)
	require.Len(t, engine.ActionLog(), 1)
	assert.Equal(t, ActionClick, engine.ActionLog()[0].Action)
}

func TestExecuteAction_LongPress(t *testing.T) {
	driver := newFakeDriver()
	engine := newTestEngine(t, driver)

	require.NoError(t, engine.ExecuteAction(context.Background(), LongPress(50, 60, 500)))

	// 500ms at 60fps holds for 30 frames between press and release.
	require.Len(t, driver.injections, 2)
	press, release := driver.injections[0], driver.injections[1]
	assert.Equal(t, "press", press.kind)
	assert.Equal(t, "release", release.kind)
	assert.Equal(t, 30, release.frame-press.frame)
	assert.Equal(t, 38, driver.frame)
}

func TestExecuteAction_Swipe(t *testing.T) {
	driver := newFakeDriver()
	engine := newTestEngine(t, driver)

	require.NoError(t, engine.ExecuteAction(context.Background(), Swipe(400, 120, 0, 120, 4)))

	// press + 4 moves + release, drag spread across frames.
	require.Len(t, driver.injections, 6)
	assert.Equal(t, injection{"press", 400, 120, 0}, driver.injections[0])
	assert.Equal(t, injection{"move", 300, 120, 2}, driver.injections[1])
	assert.Equal(t, injection{"move", 200, 120, 4}, driver.injections[2])
	assert.Equal(t, injection{"move", 100, 120, 6}, driver.injections[3])
	assert.Equal(t, injection{"move", 0, 120, 8}, driver.injections[4])
	assert.Equal(t, injection{"release", 0, 120, 10}, driver.injections[5])

	// 2 after press, 2 per step, 16 after release.
	assert.Equal(t, 2+4*2+16, driver.frame)
}

func TestExecuteAction_SetParam(t *testing.T) {
	driver := newFakeDriver()
	engine := newTestEngine(t, driver)

	require.NoError(t, engine.ExecuteAction(context.Background(), SetParam("OpenpilotEnabledToggle", "true", ParamTypeBool)))
	assert.Equal(t, "true", driver.params["OpenpilotEnabledToggle"])
	assert.Equal(t, 8, driver.frame)

	require.NoError(t, engine.ExecuteAction(context.Background(), SetParam("OpenpilotEnabledToggle", "", ParamTypeRemove)))
	assert.NotContains(t, driver.params, "OpenpilotEnabledToggle")
	assert.Equal(t, []string{"OpenpilotEnabledToggle"}, driver.removed)
}

func TestExecuteAction_PumpDefaultFrames(t *testing.T) {
	driver := newFakeDriver()
	engine := newTestEngine(t, driver)

	require.NoError(t, engine.ExecuteAction(context.Background(), Action{Action: ActionPump}))
	assert.Equal(t, DefaultPumpFrames, driver.frame)
}

func TestExecuteAction_Unknown(t *testing.T) {
	driver := newFakeDriver()
	engine := newTestEngine(t, driver)

	err := engine.ExecuteAction(context.Background(), Action{Action: "teleport"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown action type")
	assert.Empty(t, engine.ActionLog())
}

func TestReplayRecording(t *testing.T) {
	driver := newFakeDriver()
	engine := newTestEngine(t, driver)

	actions := []Action{
		Click(100, 100),
		Pump(10),
	}
	require.NoError(t, engine.ReplayRecording(context.Background(), actions))

	// warmup 30 + click 8 + pump 10 + settle 60.
	assert.Equal(t, 30+8+10+60, driver.frame)
	assert.Len(t, engine.ActionLog(), 2)
}

func TestRunScript(t *testing.T) {
	driver := newFakeDriver()
	engine := newTestEngine(t, driver)

	script := NewScriptBuilder(60).
		Add(0, Event{}).
		Add(60, Event{ClickPos: &Point{268, 120}}).
		Add(60, Event{ClickPos: &Point{268, 120}}).
		Add(60, Event{}).
		Build()

	require.NoError(t, engine.RunScript(context.Background(), script))

	// The run ends after the frame carrying the last step renders.
	assert.Equal(t, 181, driver.frame)

	require.Len(t, driver.injections, 4)
	assert.Equal(t, injection{"press", 268, 120, 60}, driver.injections[0])
	assert.Equal(t, injection{"release", 268, 120, 60}, driver.injections[1])
	assert.Equal(t, 120, driver.injections[2].frame)
}

func TestRunScript_SwipeEvents(t *testing.T) {
	driver := newFakeDriver()
	engine := newTestEngine(t, driver)

	script := NewScriptBuilder(60).
		Add(0, Event{SwipeDown: true}).
		Build()
	require.NoError(t, engine.RunScript(context.Background(), script))

	// All touch events of the gesture land on the same frame.
	require.Len(t, driver.injections, 3)
	assert.Equal(t, injection{"press", 268, 60, 0}, driver.injections[0])
	assert.Equal(t, injection{"move", 268, 180, 0}, driver.injections[1])
	assert.Equal(t, injection{"release", 268, 240, 0}, driver.injections[2])
}

func TestRunScript_SetupInstallsFrameSender(t *testing.T) {
	driver := newFakeDriver()
	engine := newTestEngine(t, driver)

	var sentFrames []int
	script := NewScriptBuilder(60).
		Add(0, Event{}).
		Add(10, Event{Setup: func(rc *ReplayContext) {
			rc.SetFrameSender(func(frame int) {
				sentFrames = append(sentFrames, frame)
			})
		}}).
		Add(5, Event{}).
		Build()

	require.NoError(t, engine.RunScript(context.Background(), script))

	// The sender fires on every frame from installation to the end.
	require.Len(t, sentFrames, 6)
	assert.Equal(t, 10, sentFrames[0])
	assert.Equal(t, 15, sentFrames[5])
}

func TestScriptBuilder(t *testing.T) {
	script := NewScriptBuilder(60).
		Add(0, Event{}).
		Hold().
		AddSeconds(1.5, Event{ClickPos: &Point{10, 10}}).
		Build()

	require.Len(t, script, 3)
	assert.Equal(t, 0, script[0].Frame)
	assert.Equal(t, 15, script[1].Frame)
	assert.Equal(t, 105, script[2].Frame)
}

func TestActionJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(Click(100, 200))
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"click","x":100,"y":200}`, string(data))

	data, err = json.Marshal(Swipe(400, 120, 50, 120, 5))
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"swipe","x1":400,"y1":120,"x2":50,"y2":120,"steps":5}`, string(data))

	data, err = json.Marshal(SetParam("UpdateAvailable", "true", ParamTypeBool))
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"set_param","key":"UpdateAvailable","value":"true","param_type":"bool"}`, string(data))
}

func TestRecorder_SaveLoadRoundtrip(t *testing.T) {
	recorder := NewRecorder(zerolog.Nop())
	path := filepath.Join(t.TempDir(), "recording.json")

	actions := []Action{
		Click(100, 100),
		LongPress(268, 120, 700),
		Swipe(400, 120, 50, 120, 5),
		SetParam("UpdateAvailable", "true", ParamTypeBool),
		Pump(30),
	}
	require.NoError(t, recorder.Save(path, actions))

	loaded, err := recorder.Load(path)
	require.NoError(t, err)
	assert.Equal(t, actions, loaded)
}

func TestRecorder_Load_MissingFile(t *testing.T) {
	recorder := NewRecorder(zerolog.Nop())
	_, err := recorder.Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestRecorder_Compare(t *testing.T) {
	recorder := NewRecorder(zerolog.Nop())
	a := []Action{Click(100, 100), Pump(30)}
	b := []Action{Click(100, 100), Pump(30)}

	identical, diffText, err := recorder.Compare(a, b)
	require.NoError(t, err)
	assert.True(t, identical)
	assert.Empty(t, diffText)

	b[1] = Pump(31)
	identical, diffText, err = recorder.Compare(a, b)
	require.NoError(t, err)
	assert.False(t, identical)
	assert.NotEmpty(t, diffText)
}

func TestDecodeRecording_Invalid(t *testing.T) {
	_, err := DecodeRecording([]byte(`{"action":"click"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse recording JSON")
}
