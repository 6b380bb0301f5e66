package components

import (
	"fmt"
	"strings"

	"spiceman/internal/ui"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Editor is the raw config editor backed by a textarea. Edits are
// reviewed as a diff before they reach the file.
type Editor struct {
	textarea textarea.Model

	FileName string
	original string

	Width  int
	Height int

	headerStyle lipgloss.Style
}

// NewEditor creates a new config editor
func NewEditor() *Editor {
	ta := textarea.New()
	ta.Placeholder = "No config loaded"
	ta.ShowLineNumbers = true
	ta.CharLimit = 0

	return &Editor{
		textarea: ta,
		Width:    80,
		Height:   20,
		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#89b4fa")),
	}
}

// SetSize updates the editor dimensions
func (e *Editor) SetSize(width, height int) {
	e.Width = width
	e.Height = height

	contentHeight := height - 4
	if contentHeight < 5 {
		contentHeight = 5
	}
	contentWidth := width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	e.textarea.SetWidth(contentWidth)
	e.textarea.SetHeight(contentHeight)
}

// Load replaces the editor content with the given file text.
func (e *Editor) Load(fileName, text string) {
	e.FileName = fileName
	e.original = text
	e.textarea.SetValue(text)
	e.textarea.CursorStart()
}

// Focus gives the textarea keyboard focus
func (e *Editor) Focus() {
	e.textarea.Focus()
}

// Blur removes keyboard focus
func (e *Editor) Blur() {
	e.textarea.Blur()
}

// Focused reports whether the textarea has focus
func (e *Editor) Focused() bool {
	return e.textarea.Focused()
}

// Update forwards messages to the textarea
func (e *Editor) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.textarea, cmd = e.textarea.Update(msg)
	return cmd
}

// Text returns the current editor content
func (e *Editor) Text() string {
	return e.textarea.Value()
}

// Dirty reports whether the content differs from what was loaded.
func (e *Editor) Dirty() bool {
	return e.textarea.Value() != e.original
}

// MarkSaved records the current content as the on-disk state.
func (e *Editor) MarkSaved() {
	e.original = e.textarea.Value()
}

// View renders the editor
func (e *Editor) View() string {
	var b strings.Builder

	title := e.headerStyle.Render("Config editor")
	name := e.FileName
	if name == "" {
		name = "(no file)"
	}
	status := ""
	if e.Dirty() {
		status = ui.WarningNotifyStyle.Render(" modified ")
	}
	b.WriteString(fmt.Sprintf("%s  %s  %s", title, ui.MutedStyle.Render(name), status))
	b.WriteString("\n\n")

	b.WriteString(e.textarea.View())

	b.WriteString("\n")
	items := []string{
		ui.RenderHelpItem("ctrl+s", "review & save"),
		ui.RenderHelpItem("ESC", "leave editor"),
	}
	b.WriteString(ui.HelpBarStyle.Render(strings.Join(items, "  ")))

	return b.String()
}
