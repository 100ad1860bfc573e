package replay

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/uidiff/internal/introspect"
)

// scriptedStreams returns a driver over canned harness responses plus the
// buffer its requests are written to.
func scriptedStreams(t *testing.T, responses ...driverResponse) (*ProcessDriver, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	enc := json.NewEncoder(&out)
	for _, resp := range responses {
		require.NoError(t, enc.Encode(resp))
	}
	var in bytes.Buffer
	return newProcessDriver(zerolog.Nop(), &in, &out), &in
}

func sentRequests(t *testing.T, in *bytes.Buffer) []driverRequest {
	t.Helper()
	var requests []driverRequest
	dec := json.NewDecoder(strings.NewReader(in.String()))
	for dec.More() {
		var req driverRequest
		require.NoError(t, dec.Decode(&req))
		requests = append(requests, req)
	}
	return requests
}

func TestProcessDriver_ScreenAndAdvance(t *testing.T) {
	driver, in := scriptedStreams(t,
		driverResponse{OK: true, Width: 536, Height: 240},
		driverResponse{OK: true, Frame: 1},
		driverResponse{OK: true, Frame: 2},
	)

	require.NoError(t, driver.queryScreen())
	w, h := driver.ScreenSize()
	assert.Equal(t, 536, w)
	assert.Equal(t, 240, h)

	require.NoError(t, driver.AdvanceFrame(context.Background()))
	require.NoError(t, driver.AdvanceFrame(context.Background()))
	assert.Equal(t, 2, driver.Frame())

	requests := sentRequests(t, in)
	require.Len(t, requests, 3)
	assert.Equal(t, cmdScreen, requests[0].Cmd)
	assert.Equal(t, cmdAdvance, requests[1].Cmd)
}

func TestProcessDriver_TouchInjection(t *testing.T) {
	driver, in := scriptedStreams(t,
		driverResponse{OK: true},
		driverResponse{OK: true},
		driverResponse{OK: true},
	)

	driver.InjectPress(100, 120)
	driver.InjectMove(150, 120)
	driver.InjectRelease(150, 120)

	requests := sentRequests(t, in)
	require.Len(t, requests, 3)
	assert.Equal(t, driverRequest{Cmd: cmdPress, X: 100, Y: 120}, requests[0])
	assert.Equal(t, driverRequest{Cmd: cmdMove, X: 150, Y: 120}, requests[1])
	assert.Equal(t, driverRequest{Cmd: cmdRelease, X: 150, Y: 120}, requests[2])
}

func TestProcessDriver_SetParam(t *testing.T) {
	driver, in := scriptedStreams(t, driverResponse{OK: true})

	require.NoError(t, driver.SetParam("UpdateAvailable", "true", ParamTypeBool))

	requests := sentRequests(t, in)
	require.Len(t, requests, 1)
	assert.Equal(t, cmdSetParam, requests[0].Cmd)
	assert.Equal(t, "UpdateAvailable", requests[0].Key)
	assert.Equal(t, ParamTypeBool, requests[0].ParamType)
}

func TestProcessDriver_RejectedCommand(t *testing.T) {
	driver, _ := scriptedStreams(t, driverResponse{OK: false, Error: "param store locked"})

	err := driver.SetParam("DongleId", "x", ParamTypeString)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "param store locked")
}

func TestProcessDriver_AdvanceFrame_Cancelled(t *testing.T) {
	driver, _ := scriptedStreams(t, driverResponse{OK: true, Frame: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, driver.AdvanceFrame(ctx), context.Canceled)
}

func TestProcessDriver_IntrospectionDump(t *testing.T) {
	checked := true
	tree := &widgetNode{
		Name:      "root",
		ClassName: "MainLayout",
		Width:     536, Height: 240,
		IsVisible: true, IsEnabled: true,
		Nodes: []*widgetNode{
			{
				Name:      "_toggle",
				ClassName: "ExperimentalToggle",
				X:         20, Y: 20, Width: 100, Height: 50,
				IsVisible: true, IsEnabled: true,
				Text:    "Experimental Mode",
				Checked: &checked, Clickable: true,
			},
		},
	}
	driver, _ := scriptedStreams(t, driverResponse{OK: true, Tree: tree})

	root := driver.Root()
	assert.Nil(t, driver.ModalOverlay())

	state := introspect.CaptureScreenState(root, nil, 0, 536, 240)
	interactive := state.InteractiveWidgets()
	require.Len(t, interactive, 1)
	assert.Equal(t, introspect.KindToggle, interactive[0].Kind)
	assert.Equal(t, "_toggle", interactive[0].AttrName)
}

func TestProcessDriver_IntrospectionModal(t *testing.T) {
	driver, _ := scriptedStreams(t, driverResponse{
		OK:    true,
		Tree:  &widgetNode{Name: "root", IsVisible: true, Width: 536, Height: 240},
		Modal: &widgetNode{Name: "dialog", IsVisible: true, Width: 300, Height: 150, Modal: true},
	})

	root := driver.Root()
	modal := driver.ModalOverlay()
	require.NotNil(t, modal)

	state := introspect.CaptureScreenState(root, modal, 0, 536, 240)
	assert.True(t, state.HasModal())
	assert.Equal(t, introspect.KindDialog, state.ModalOverlay.Kind)
}

func TestProcessDriver_IntrospectionFailureYieldsEmptyRoot(t *testing.T) {
	driver, _ := scriptedStreams(t) // no responses, decode fails

	root := driver.Root()
	require.NotNil(t, root)
	assert.Empty(t, root.Children())
}

func TestProcessDriverBuilder_Validation(t *testing.T) {
	_, err := NewProcessDriverBuilder(zerolog.Nop()).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command is required")
}
