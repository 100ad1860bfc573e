package replay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"

	"github.com/rs/zerolog"

	"github.com/aleister1102/uidiff/internal/common/errorwrapper"
	"github.com/aleister1102/uidiff/internal/config"
	"github.com/aleister1102/uidiff/internal/introspect"
)

// Wire commands understood by the UI harness process.
const (
	cmdScreen     = "screen"
	cmdAdvance    = "advance"
	cmdPress      = "press"
	cmdMove       = "move"
	cmdRelease    = "release"
	cmdSetParam   = "set_param"
	cmdIntrospect = "introspect"
)

type driverRequest struct {
	Cmd       string `json:"cmd"`
	X         int    `json:"x,omitempty"`
	Y         int    `json:"y,omitempty"`
	Key       string `json:"key,omitempty"`
	Value     string `json:"value,omitempty"`
	ParamType string `json:"param_type,omitempty"`
}

type driverResponse struct {
	OK     bool        `json:"ok"`
	Error  string      `json:"error,omitempty"`
	Frame  int         `json:"frame,omitempty"`
	Width  int         `json:"width,omitempty"`
	Height int         `json:"height,omitempty"`
	Tree   *widgetNode `json:"tree,omitempty"`
	Modal  *widgetNode `json:"modal,omitempty"`
}

// widgetNode is the wire form of one widget in an introspection dump. It
// satisfies introspect.Widget so captured trees feed straight into the
// walker.
type widgetNode struct {
	Name      string `json:"name"`
	ClassName string `json:"class_name"`

	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`

	IsVisible bool `json:"visible"`
	IsEnabled bool `json:"enabled"`
	IsPressed bool `json:"pressed"`

	Text    string   `json:"text,omitempty"`
	Value   string   `json:"value,omitempty"`
	Checked *bool    `json:"checked,omitempty"`
	Options []string `json:"options,omitempty"`
	Param   string   `json:"param,omitempty"`

	Clickable        bool `json:"clickable,omitempty"`
	Scrollable       bool `json:"scrollable,omitempty"`
	ScrollHorizontal bool `json:"scroll_horizontal,omitempty"`
	SwipeToDismiss   bool `json:"swipe_to_dismiss,omitempty"`
	HasBack          bool `json:"has_back,omitempty"`
	Modal            bool `json:"modal,omitempty"`

	Nodes []*widgetNode `json:"children,omitempty"`
}

func (n *widgetNode) Rect() introspect.Rect {
	return introspect.Rect{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}

func (n *widgetNode) Visible() bool { return n.IsVisible }
func (n *widgetNode) Enabled() bool { return n.IsEnabled }
func (n *widgetNode) Pressed() bool { return n.IsPressed }

func (n *widgetNode) Traits() introspect.Traits {
	return introspect.Traits{
		ClassName:        n.ClassName,
		Text:             n.Text,
		Value:            n.Value,
		Checked:          n.Checked,
		Options:          n.Options,
		Param:            n.Param,
		Clickable:        n.Clickable,
		Scrollable:       n.Scrollable,
		ScrollHorizontal: n.ScrollHorizontal,
		SwipeToDismiss:   n.SwipeToDismiss,
		HasBack:          n.HasBack,
		Modal:            n.Modal,
	}
}

func (n *widgetNode) Children() []introspect.ChildWidget {
	children := make([]introspect.ChildWidget, 0, len(n.Nodes))
	for _, node := range n.Nodes {
		children = append(children, introspect.ChildWidget{Name: node.Name, Widget: node})
	}
	return children
}

// ProcessDriver drives a UI harness subprocess over a JSON-lines protocol
// on its stdin/stdout: one request object per line, one response per line.
// Touch events are queued synchronously; advance renders one frame.
type ProcessDriver struct {
	logger zerolog.Logger
	cmd    *exec.Cmd
	enc    *json.Encoder
	dec    *json.Decoder

	frame        int
	screenWidth  int
	screenHeight int

	// lastModal caches whether the last introspection saw a modal overlay.
	lastModal *widgetNode
}

// ProcessDriverBuilder constructs a ProcessDriver.
type ProcessDriverBuilder struct {
	logger  zerolog.Logger
	config  *config.ReplayConfig
	command []string
}

// NewProcessDriverBuilder creates a new ProcessDriverBuilder.
func NewProcessDriverBuilder(logger zerolog.Logger) *ProcessDriverBuilder {
	return &ProcessDriverBuilder{
		logger: logger.With().Str("component", "ProcessDriver").Logger(),
	}
}

// WithReplayConfig sets the replay configuration applied to the spawned
// process environment.
func (b *ProcessDriverBuilder) WithReplayConfig(cfg *config.ReplayConfig) *ProcessDriverBuilder {
	b.config = cfg
	return b
}

// WithCommand sets the UI harness command line.
func (b *ProcessDriverBuilder) WithCommand(command ...string) *ProcessDriverBuilder {
	b.command = command
	return b
}

// Build spawns the harness process and performs the initial screen query.
func (b *ProcessDriverBuilder) Build() (*ProcessDriver, error) {
	if len(b.command) == 0 {
		return nil, errorwrapper.NewError("UI harness command is required")
	}
	if b.config == nil {
		return nil, errorwrapper.NewError("replay config is required")
	}

	cmd := exec.Command(b.command[0], b.command[1:]...)
	cmd.Env = append(cmd.Environ(),
		"RECORD=1",
		"RECORD_OUTPUT="+b.config.RecordOutput,
		fmt.Sprintf("FPS=%d", b.config.FPS),
		fmt.Sprintf("WINDOWED=%s", windowedEnv(b.config.Headless)),
	)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to open harness stdin")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to open harness stdout")
	}
	if err := cmd.Start(); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to start UI harness '"+b.command[0]+"'")
	}

	driver := newProcessDriver(b.logger, stdin, stdout)
	driver.cmd = cmd
	if err := driver.queryScreen(); err != nil {
		_ = cmd.Process.Kill()
		return nil, err
	}

	b.logger.Info().
		Str("harness", b.command[0]).
		Int("width", driver.screenWidth).
		Int("height", driver.screenHeight).
		Msg("UI harness started")
	return driver, nil
}

func windowedEnv(headless bool) string {
	if headless {
		return "0"
	}
	return "1"
}

// newProcessDriver wires a driver over raw streams. Split out so tests can
// drive the protocol without a subprocess.
func newProcessDriver(logger zerolog.Logger, in io.Writer, out io.Reader) *ProcessDriver {
	return &ProcessDriver{
		logger: logger,
		enc:    json.NewEncoder(in),
		dec:    json.NewDecoder(out),
	}
}

func (d *ProcessDriver) roundTrip(req driverRequest) (*driverResponse, error) {
	if err := d.enc.Encode(req); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to send '"+req.Cmd+"' to UI harness")
	}
	var resp driverResponse
	if err := d.dec.Decode(&resp); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to read '"+req.Cmd+"' response from UI harness")
	}
	if !resp.OK {
		return nil, errorwrapper.NewError("UI harness rejected '%s': %s", req.Cmd, resp.Error)
	}
	return &resp, nil
}

func (d *ProcessDriver) queryScreen() error {
	resp, err := d.roundTrip(driverRequest{Cmd: cmdScreen})
	if err != nil {
		return err
	}
	d.screenWidth = resp.Width
	d.screenHeight = resp.Height
	return nil
}

// ScreenSize returns the harness surface dimensions.
func (d *ProcessDriver) ScreenSize() (int, int) {
	return d.screenWidth, d.screenHeight
}

// Frame returns the frames rendered so far.
func (d *ProcessDriver) Frame() int {
	return d.frame
}

// AdvanceFrame renders one frame in the harness.
func (d *ProcessDriver) AdvanceFrame(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	resp, err := d.roundTrip(driverRequest{Cmd: cmdAdvance})
	if err != nil {
		return err
	}
	d.frame = resp.Frame
	return nil
}

// InjectPress queues a touch press for the next frame.
func (d *ProcessDriver) InjectPress(x, y int) {
	d.inject(cmdPress, x, y)
}

// InjectMove queues a touch move for the next frame.
func (d *ProcessDriver) InjectMove(x, y int) {
	d.inject(cmdMove, x, y)
}

// InjectRelease queues a touch release for the next frame.
func (d *ProcessDriver) InjectRelease(x, y int) {
	d.inject(cmdRelease, x, y)
}

// inject sends a touch event. Injection failures surface on the next
// AdvanceFrame since the Driver input methods do not return errors.
func (d *ProcessDriver) inject(cmd string, x, y int) {
	if _, err := d.roundTrip(driverRequest{Cmd: cmd, X: x, Y: y}); err != nil {
		d.logger.Error().Err(err).Str("event", cmd).Msg("Touch injection failed")
	}
}

// SetParam mutates a persisted param in the harness.
func (d *ProcessDriver) SetParam(key, value, paramType string) error {
	_, err := d.roundTrip(driverRequest{Cmd: cmdSetParam, Key: key, Value: value, ParamType: paramType})
	return err
}

// Root fetches the current widget tree. A failed or empty dump yields an
// empty root so callers always get a walkable widget.
func (d *ProcessDriver) Root() introspect.Widget {
	resp, err := d.roundTrip(driverRequest{Cmd: cmdIntrospect})
	if err != nil {
		d.logger.Error().Err(err).Msg("Introspection dump failed")
		d.lastModal = nil
		return &widgetNode{Name: "root"}
	}
	d.lastModal = resp.Modal
	if resp.Tree == nil {
		return &widgetNode{Name: "root"}
	}
	return resp.Tree
}

// ModalOverlay returns the modal overlay seen by the most recent Root
// call, or nil.
func (d *ProcessDriver) ModalOverlay() introspect.Widget {
	if d.lastModal == nil {
		return nil
	}
	return d.lastModal
}

// Close terminates the harness process.
func (d *ProcessDriver) Close() error {
	if d.cmd == nil {
		return nil
	}
	if err := d.cmd.Process.Kill(); err != nil {
		return errorwrapper.WrapError(err, "failed to stop UI harness")
	}
	_ = d.cmd.Wait()
	return nil
}
