package components

import (
	"strings"

	"spiceman/internal/ui"
)

// Confirm is a yes/no dialog shown before destructive operations like
// restore.
type Confirm struct {
	Title   string
	Message string
	Visible bool
	Width   int

	// Kind tags what the answer is for so the model can route it.
	Kind string

	yesActive bool
}

// NewConfirm creates a hidden confirm dialog
func NewConfirm() *Confirm {
	return &Confirm{
		Width: 60,
	}
}

// Show opens the dialog. The "no" button starts active.
func (c *Confirm) Show(kind, title, message string) {
	c.Kind = kind
	c.Title = title
	c.Message = message
	c.Visible = true
	c.yesActive = false
}

// Hide closes the dialog
func (c *Confirm) Hide() {
	c.Visible = false
}

// ToggleChoice switches between the yes and no buttons
func (c *Confirm) ToggleChoice() {
	c.yesActive = !c.yesActive
}

// Accepted returns whether the yes button is active
func (c *Confirm) Accepted() bool {
	return c.yesActive
}

// View renders the dialog
func (c *Confirm) View() string {
	if !c.Visible {
		return ""
	}

	var b strings.Builder
	b.WriteString(ui.PanelTitleStyle.Render(c.Title))
	b.WriteString("\n\n")
	b.WriteString(c.Message)
	b.WriteString("\n\n")

	yes := ui.RenderButton("Yes", c.yesActive)
	no := ui.RenderButton("No", !c.yesActive)
	b.WriteString(yes + "  " + no)
	b.WriteString("\n\n")

	items := []string{
		ui.RenderHelpItem("←/→", "choose"),
		ui.RenderHelpItem("Enter", "confirm"),
		ui.RenderHelpItem("Esc", "cancel"),
	}
	b.WriteString(ui.HelpBarStyle.Render(strings.Join(items, "  ")))

	return ui.DialogStyle.Width(c.Width).Render(b.String())
}
