package introspect

// Rect is a widget's position and size in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Traits describes a widget's content and interaction surface. Kind
// classification is derived from traits alone, never from concrete types.
type Traits struct {
	// ClassName is the implementation type name, kept for diagnostics only.
	ClassName string

	// Content.
	Text    string
	Value   string
	Checked *bool
	Options []string
	Param   string

	// Interaction surface.
	Clickable        bool
	Scrollable       bool
	ScrollHorizontal bool
	SwipeToDismiss   bool
	HasBack          bool
	Modal            bool
}

// ChildWidget pairs a child with the name it is reachable by on its
// parent, for stable identification across frames.
type ChildWidget struct {
	Name   string
	Widget Widget
}

// Widget is the read-only surface the introspection walker needs from a
// live UI element. Implementations expose layout state as of the most
// recently rendered frame.
type Widget interface {
	Rect() Rect
	Visible() bool
	Enabled() bool
	Pressed() bool
	Traits() Traits
	Children() []ChildWidget
}
