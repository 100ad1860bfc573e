package introspect

// WidgetKind is the closed set of widget categories the harness reasons
// about. Classification is a pure function of the widget's traits.
type WidgetKind string

const (
	// KindDialog is a modal surface blocking the UI behind it.
	KindDialog WidgetKind = "dialog"
	// KindNav is a swipe-to-dismiss navigation surface.
	KindNav WidgetKind = "nav"
	// KindScroller is a scrollable item container.
	KindScroller WidgetKind = "scroller"
	// KindMultiToggle cycles through a fixed option list.
	KindMultiToggle WidgetKind = "multi_toggle"
	// KindToggle is a two-state switch.
	KindToggle WidgetKind = "toggle"
	// KindParamControl is a clickable control backed by a persisted param.
	KindParamControl WidgetKind = "param_control"
	// KindButton is a plain clickable element.
	KindButton WidgetKind = "button"
	// KindContainer is a non-interactive layout element.
	KindContainer WidgetKind = "container"
)

// Classify maps traits to a widget kind. The checks run from most to
// least specific: modal and navigation surfaces first, then stateful
// controls, then plain clickables.
func Classify(t Traits) WidgetKind {
	switch {
	case t.Modal:
		return KindDialog
	case t.SwipeToDismiss:
		return KindNav
	case t.Scrollable:
		return KindScroller
	case len(t.Options) > 0:
		return KindMultiToggle
	case t.Checked != nil:
		return KindToggle
	case t.Param != "":
		return KindParamControl
	case t.Clickable:
		return KindButton
	default:
		return KindContainer
	}
}
