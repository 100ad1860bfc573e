package introspect

// ScreenState is the full picture of the UI at one frame: the main widget
// tree plus the modal overlay, if one is up. When a modal is active, the
// widget collections only consider the overlay, since the main tree is
// blocked from input.
type ScreenState struct {
	Frame        int         `json:"frame"`
	ScreenWidth  int         `json:"screen_width"`
	ScreenHeight int         `json:"screen_height"`
	WidgetTree   WidgetInfo  `json:"widget_tree"`
	ModalOverlay *WidgetInfo `json:"modal_overlay,omitempty"`
}

// CaptureScreenState walks the main tree and the optional modal overlay.
// modal may be nil.
func CaptureScreenState(root, modal Widget, frame, screenWidth, screenHeight int) ScreenState {
	walker := NewTreeWalker(DefaultMaxDepth)
	state := ScreenState{
		Frame:        frame,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		WidgetTree:   walker.Walk(root),
	}
	if modal != nil {
		overlay := walker.walk(modal, "modal_overlay", 0)
		state.ModalOverlay = &overlay
	}
	return state
}

// HasModal reports whether a modal overlay is active.
func (s *ScreenState) HasModal() bool {
	return s.ModalOverlay != nil
}

func (s *ScreenState) activeTree() *WidgetInfo {
	if s.ModalOverlay != nil {
		return s.ModalOverlay
	}
	return &s.WidgetTree
}

// InteractiveWidgets returns every visible, enabled, on-screen widget that
// accepts input, in tree order.
func (s *ScreenState) InteractiveWidgets() []WidgetInfo {
	var result []WidgetInfo
	s.collect(s.activeTree(), &result, func(info *WidgetInfo) bool {
		return (info.Clickable || info.Scrollable || info.SwipeToDismiss) &&
			info.Enabled && info.OnScreen(s.ScreenWidth, s.ScreenHeight)
	})
	return result
}

// VisibleWidgets returns every visible, on-screen widget in tree order.
func (s *ScreenState) VisibleWidgets() []WidgetInfo {
	var result []WidgetInfo
	s.collect(s.activeTree(), &result, func(info *WidgetInfo) bool {
		return info.OnScreen(s.ScreenWidth, s.ScreenHeight)
	})
	return result
}

// collect walks the snapshot tree, pruning invisible subtrees and subtrees
// under zero-size parents (not laid out), and appends every node the
// predicate accepts.
func (s *ScreenState) collect(info *WidgetInfo, result *[]WidgetInfo, accept func(*WidgetInfo) bool) {
	if !info.Visible {
		return
	}
	if info.Width <= 0 && info.Height <= 0 && info.Depth > 0 {
		return
	}
	if accept(info) {
		*result = append(*result, *info)
	}
	for i := range info.Children {
		s.collect(&info.Children[i], result, accept)
	}
}
