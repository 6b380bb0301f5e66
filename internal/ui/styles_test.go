package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestColors(t *testing.T) {
	colors := []lipgloss.Color{
		Primary, Secondary, Success, Warning, Error,
		Muted, Foreground, Border, Selected,
	}

	for _, c := range colors {
		if c == "" {
			t.Error("Color should not be empty")
		}
	}
}

func TestStylesRender(t *testing.T) {
	styles := map[string]lipgloss.Style{
		"AppStyle":          AppStyle,
		"HeaderStyle":       HeaderStyle,
		"TitleStyle":        TitleStyle,
		"VersionStyle":      VersionStyle,
		"PanelStyle":        PanelStyle,
		"PanelTitleStyle":   PanelTitleStyle,
		"ActivePanelStyle":  ActivePanelStyle,
		"ItemStyle":         ItemStyle,
		"SelectedItemStyle": SelectedItemStyle,
		"StatusBarStyle":    StatusBarStyle,
		"HelpBarStyle":      HelpBarStyle,
		"DialogStyle":       DialogStyle,
	}

	for name, style := range styles {
		if style.Render("test") == "" {
			t.Errorf("%s should render content", name)
		}
	}
}

func TestRenderCheckbox(t *testing.T) {
	checked := RenderCheckbox(true)
	unchecked := RenderCheckbox(false)

	if !strings.Contains(checked, "✓") {
		t.Errorf("checked checkbox should contain a check mark: %q", checked)
	}
	if strings.Contains(unchecked, "✓") {
		t.Errorf("unchecked checkbox should not contain a check mark: %q", unchecked)
	}
}

func TestRenderTab(t *testing.T) {
	active := RenderTab("Extensions", true)
	inactive := RenderTab("Extensions", false)

	if active == "" || inactive == "" {
		t.Fatal("RenderTab should render content")
	}
	if active == inactive {
		t.Error("active tab should render differently from inactive")
	}
}

func TestRenderNotification(t *testing.T) {
	for _, msgType := range []string{"success", "error", "warning", "info", "other"} {
		rendered := RenderNotification(msgType, "message")
		if !strings.Contains(rendered, "message") {
			t.Errorf("notification %s should contain the message: %q", msgType, rendered)
		}
	}
}

func TestRenderHelpItem(t *testing.T) {
	rendered := RenderHelpItem("a", "apply")
	if !strings.Contains(rendered, "a") || !strings.Contains(rendered, "apply") {
		t.Errorf("help item should contain key and description: %q", rendered)
	}
}

func TestRenderButton(t *testing.T) {
	if RenderButton("OK", true) == RenderButton("OK", false) {
		t.Error("active button should render differently")
	}
}
