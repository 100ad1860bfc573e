package replay

import (
	"context"

	"github.com/aleister1102/uidiff/internal/introspect"
)

// Driver abstracts the live UI the harness drives: touch event injection,
// render-loop advancement, persisted params, and introspection access.
// Implementations wrap the actual GUI process; tests use a scripted fake.
type Driver interface {
	// ScreenSize returns the UI surface dimensions in pixels.
	ScreenSize() (width, height int)

	// Frame returns the number of frames rendered so far.
	Frame() int

	// AdvanceFrame renders exactly one frame.
	AdvanceFrame(ctx context.Context) error

	// InjectPress, InjectMove, and InjectRelease queue touch events for the
	// next rendered frame.
	InjectPress(x, y int)
	InjectMove(x, y int)
	InjectRelease(x, y int)

	// SetParam mutates a persisted param. paramType is one of the
	// ParamType constants; ParamTypeRemove deletes the key.
	SetParam(key, value, paramType string) error

	// Root returns the main widget tree for introspection.
	Root() introspect.Widget

	// ModalOverlay returns the active modal overlay, or nil.
	ModalOverlay() introspect.Widget
}
