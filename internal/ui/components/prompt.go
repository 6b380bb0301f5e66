package components

import (
	"strings"

	"spiceman/internal/ui"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Prompt is a single-line input dialog used for git URLs, search
// queries, tokens and passwords.
type Prompt struct {
	input textinput.Model

	Title   string
	Visible bool
	Width   int

	// Kind tags what the answer is for so the model can route it.
	Kind string
}

// NewPrompt creates a hidden prompt
func NewPrompt() *Prompt {
	ti := textinput.New()
	ti.CharLimit = 512

	return &Prompt{
		input: ti,
		Width: 60,
	}
}

// Show opens the prompt with a title and routing kind. Secret inputs
// are masked.
func (p *Prompt) Show(kind, title, placeholder string, secret bool) {
	p.Kind = kind
	p.Title = title
	p.Visible = true

	p.input.Placeholder = placeholder
	p.input.SetValue("")
	if secret {
		p.input.EchoMode = textinput.EchoPassword
	} else {
		p.input.EchoMode = textinput.EchoNormal
	}
	p.input.Focus()
}

// Hide closes the prompt
func (p *Prompt) Hide() {
	p.Visible = false
	p.input.Blur()
}

// Value returns the entered text
func (p *Prompt) Value() string {
	return strings.TrimSpace(p.input.Value())
}

// Update forwards messages to the input field
func (p *Prompt) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// View renders the prompt dialog
func (p *Prompt) View() string {
	if !p.Visible {
		return ""
	}

	var b strings.Builder
	b.WriteString(ui.PanelTitleStyle.Render(p.Title))
	b.WriteString("\n\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")

	items := []string{
		ui.RenderHelpItem("Enter", "confirm"),
		ui.RenderHelpItem("Esc", "cancel"),
	}
	b.WriteString(ui.HelpBarStyle.Render(strings.Join(items, "  ")))

	return ui.DialogStyle.Width(p.Width).Render(b.String())
}
