package introspect

// DefaultMaxDepth bounds the tree walk against accidental widget cycles.
const DefaultMaxDepth = 15

// WidgetInfo is a structured snapshot of one widget, detached from the
// live tree so it can outlive the frame it was captured on.
type WidgetInfo struct {
	Kind      WidgetKind `json:"kind"`
	ClassName string     `json:"class_name"`

	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`

	Visible bool `json:"visible"`
	Enabled bool `json:"enabled"`
	Pressed bool `json:"pressed"`

	Text    string   `json:"text,omitempty"`
	Value   string   `json:"value,omitempty"`
	Checked *bool    `json:"checked,omitempty"`
	Options []string `json:"options,omitempty"`
	Param   string   `json:"param,omitempty"`

	Clickable        bool `json:"clickable"`
	Scrollable       bool `json:"scrollable"`
	ScrollHorizontal bool `json:"scroll_horizontal,omitempty"`
	SwipeToDismiss   bool `json:"swipe_to_dismiss,omitempty"`
	HasBack          bool `json:"has_back,omitempty"`

	AttrName string       `json:"attr_name"`
	Depth    int          `json:"depth"`
	Children []WidgetInfo `json:"children,omitempty"`
}

// Center returns the widget's center coordinates, the default click target.
func (wi *WidgetInfo) Center() (int, int) {
	return wi.X + wi.Width/2, wi.Y + wi.Height/2
}

// OnScreen reports whether the widget has non-zero size and at least
// partially overlaps the screen.
func (wi *WidgetInfo) OnScreen(screenWidth, screenHeight int) bool {
	return wi.Width > 0 && wi.Height > 0 &&
		wi.X+wi.Width > 0 && wi.X < screenWidth &&
		wi.Y+wi.Height > 0 && wi.Y < screenHeight
}

// TreeWalker captures widget trees into WidgetInfo snapshots.
type TreeWalker struct {
	maxDepth int
}

// NewTreeWalker creates a TreeWalker with the given depth bound. A
// non-positive bound falls back to DefaultMaxDepth.
func NewTreeWalker(maxDepth int) *TreeWalker {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &TreeWalker{maxDepth: maxDepth}
}

// Walk captures the tree rooted at widget. Children below the depth bound
// are dropped, not errored on.
func (tw *TreeWalker) Walk(widget Widget) WidgetInfo {
	return tw.walk(widget, "root", 0)
}

func (tw *TreeWalker) walk(widget Widget, attrName string, depth int) WidgetInfo {
	info := snapshotWidget(widget, attrName, depth)
	if depth < tw.maxDepth {
		for _, child := range widget.Children() {
			info.Children = append(info.Children, tw.walk(child.Widget, child.Name, depth+1))
		}
	}
	return info
}

func snapshotWidget(widget Widget, attrName string, depth int) WidgetInfo {
	rect := widget.Rect()
	traits := widget.Traits()
	return WidgetInfo{
		Kind:             Classify(traits),
		ClassName:        traits.ClassName,
		X:                rect.X,
		Y:                rect.Y,
		Width:            rect.Width,
		Height:           rect.Height,
		Visible:          widget.Visible(),
		Enabled:          widget.Enabled(),
		Pressed:          widget.Pressed(),
		Text:             traits.Text,
		Value:            traits.Value,
		Checked:          traits.Checked,
		Options:          traits.Options,
		Param:            traits.Param,
		Clickable:        traits.Clickable,
		Scrollable:       traits.Scrollable,
		ScrollHorizontal: traits.ScrollHorizontal,
		SwipeToDismiss:   traits.SwipeToDismiss,
		HasBack:          traits.HasBack,
		AttrName:         attrName,
		Depth:            depth,
	}
}
