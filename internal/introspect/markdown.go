package introspect

import (
	"fmt"
	"strings"
)

// RenderWidgetTree renders a WidgetInfo tree as indented markdown. Hidden
// widgets and their subtrees are skipped unless showHidden is set.
func RenderWidgetTree(info *WidgetInfo, showHidden bool) string {
	var sb strings.Builder
	renderWidget(&sb, info, 0, showHidden)
	return strings.TrimRight(sb.String(), "\n")
}

func renderWidget(sb *strings.Builder, info *WidgetInfo, indent int, showHidden bool) {
	if !info.Visible && !showHidden {
		return
	}

	pad := strings.Repeat("  ", indent)
	sb.WriteString(fmt.Sprintf("%s- **%s** (%d,%d %dx%d)%s\n",
		pad, widgetLabel(info), info.X, info.Y, info.Width, info.Height, widgetBadges(info)))

	for i := range info.Children {
		renderWidget(sb, &info.Children[i], indent+1, showHidden)
	}
}

func widgetLabel(info *WidgetInfo) string {
	parts := []string{string(info.Kind)}
	if info.Text != "" {
		parts = append(parts, fmt.Sprintf("%q", info.Text))
	}
	if info.Value != "" {
		parts = append(parts, fmt.Sprintf("value=%q", info.Value))
	}
	if info.Checked != nil {
		state := "off"
		if *info.Checked {
			state = "on"
		}
		parts = append(parts, "checked="+state)
	}
	if info.Param != "" {
		parts = append(parts, "param="+info.Param)
	}
	if len(info.Options) > 0 {
		parts = append(parts, "options=["+strings.Join(info.Options, ", ")+"]")
	}
	return strings.Join(parts, " ")
}

func widgetBadges(info *WidgetInfo) string {
	var badges []string
	if !info.Visible {
		badges = append(badges, "HIDDEN")
	}
	if !info.Enabled {
		badges = append(badges, "DISABLED")
	}
	if info.Clickable && info.Enabled && info.Visible {
		badges = append(badges, "clickable")
	}
	if info.Scrollable {
		direction := "vertical"
		if info.ScrollHorizontal {
			direction = "horizontal"
		}
		badges = append(badges, "scroll-"+direction)
	}
	if info.SwipeToDismiss && info.HasBack {
		badges = append(badges, "swipe-to-dismiss")
	}
	if len(badges) == 0 {
		return ""
	}
	return " [" + strings.Join(badges, ", ") + "]"
}

// RenderScreenState renders a full screen state as markdown: the widget
// tree (modal overlay first when active) followed by a numbered summary of
// the interactive elements and their suggested actions.
func RenderScreenState(state *ScreenState) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# UI State - Frame %d\n", state.Frame)
	fmt.Fprintf(&sb, "Screen: %dx%d\n\n", state.ScreenWidth, state.ScreenHeight)

	if state.HasModal() {
		sb.WriteString("## Modal Overlay Active\n")
		sb.WriteString("*Main UI is blocked. Interact with modal or dismiss it.*\n\n")
		sb.WriteString(RenderWidgetTree(state.ModalOverlay, false))
		sb.WriteString("\n\n---\n## Main UI (behind modal)\n")
	}

	sb.WriteString(RenderWidgetTree(&state.WidgetTree, false))

	interactive := state.InteractiveWidgets()
	fmt.Fprintf(&sb, "\n\n## Interactive Elements (%d available)\n\n", len(interactive))
	for i := range interactive {
		w := &interactive[i]
		cx, cy := w.Center()

		desc := string(w.Kind)
		if w.Text != "" {
			desc += fmt.Sprintf(" %q", w.Text)
		}
		if w.Checked != nil {
			state := "OFF"
			if *w.Checked {
				state = "ON"
			}
			desc += " [" + state + "]"
		}

		var actions []string
		if w.Clickable {
			actions = append(actions, fmt.Sprintf("click(%d,%d)", cx, cy))
		}
		if w.Scrollable {
			direction := "vertical"
			if w.ScrollHorizontal {
				direction = "horizontal"
			}
			actions = append(actions, "scroll_"+direction)
		}
		if w.SwipeToDismiss {
			actions = append(actions, "swipe_down_to_dismiss")
		}
		fmt.Fprintf(&sb, "  %d. %s -> %s\n", i+1, desc, strings.Join(actions, ", "))
	}

	return strings.TrimRight(sb.String(), "\n")
}
