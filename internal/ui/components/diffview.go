package components

import (
	"fmt"
	"strings"

	"spiceman/internal/config"
	"spiceman/internal/ui"

	"github.com/charmbracelet/lipgloss"
)

// DiffView shows the pending config edit against the file on disk
// before it is saved.
type DiffView struct {
	Width  int
	Height int

	FileName   string
	DiffResult *config.DiffResult

	ScrollOffset int

	highlighter     *ui.Highlighter
	enableHighlight bool

	addStyle     lipgloss.Style
	deleteStyle  lipgloss.Style
	contextStyle lipgloss.Style
	headerStyle  lipgloss.Style
}

// NewDiffView creates a new DiffView
func NewDiffView() *DiffView {
	return &DiffView{
		Width:           80,
		Height:          20,
		highlighter:     ui.NewHighlighter(),
		enableHighlight: true,
		addStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a6e3a1")),
		deleteStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f38ba8")),
		contextStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6c7086")),
		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#89b4fa")),
	}
}

// SetDiff sets the diff result to display
func (d *DiffView) SetDiff(result *config.DiffResult, fileName string) {
	d.DiffResult = result
	d.FileName = fileName
	d.ScrollOffset = 0
}

// ScrollUp scrolls the view up
func (d *DiffView) ScrollUp() {
	if d.ScrollOffset > 0 {
		d.ScrollOffset--
	}
}

// ScrollDown scrolls the view down
func (d *DiffView) ScrollDown() {
	d.ScrollOffset++
}

// ToggleHighlight toggles syntax highlighting
func (d *DiffView) ToggleHighlight() {
	d.enableHighlight = !d.enableHighlight
}

// HasChanges returns true if the pending edit differs from disk
func (d *DiffView) HasChanges() bool {
	return d.DiffResult != nil && d.DiffResult.HasChanges()
}

// View renders the diff view
func (d *DiffView) View() string {
	if d.DiffResult == nil {
		return "No pending changes"
	}

	var b strings.Builder

	b.WriteString(d.renderHeader())
	b.WriteString("\n\n")

	b.WriteString(d.renderStats())
	b.WriteString("\n\n")

	b.WriteString(d.renderDiff())

	b.WriteString("\n")
	b.WriteString(d.renderFooter())

	return b.String()
}

func (d *DiffView) renderHeader() string {
	title := d.headerStyle.Render("Review changes")

	fileType := ui.GetFileType(d.FileName)
	highlightStatus := ""
	if d.enableHighlight {
		highlightStatus = " [syntax on]"
	}

	return fmt.Sprintf("%s  %s  %s%s", title, ui.MutedStyle.Render(d.FileName),
		ui.EnabledStyle.Render(fileType), ui.MutedStyle.Render(highlightStatus))
}

func (d *DiffView) renderStats() string {
	if d.DiffResult.Identical {
		return ui.EnabledStyle.Render("✓ No changes to save")
	}

	var parts []string
	if d.DiffResult.LinesAdded > 0 {
		parts = append(parts, d.addStyle.Render(fmt.Sprintf("+%d", d.DiffResult.LinesAdded)))
	}
	if d.DiffResult.LinesRemoved > 0 {
		parts = append(parts, d.deleteStyle.Render(fmt.Sprintf("-%d", d.DiffResult.LinesRemoved)))
	}
	return strings.Join(parts, " ")
}

func (d *DiffView) renderDiff() string {
	if d.DiffResult.Identical {
		return ui.MutedStyle.Render("No differences found")
	}

	lines := make([]string, 0, len(d.DiffResult.Lines))
	lineWidth := d.Width - 4
	for _, diffLine := range d.DiffResult.Lines {
		lines = append(lines, d.formatDiffLine(diffLine, lineWidth))
	}

	// Apply scroll offset
	visibleLines := d.Height - 6
	if visibleLines < 1 {
		visibleLines = 10
	}

	start := d.ScrollOffset
	if start >= len(lines) {
		start = 0
	}
	end := start + visibleLines
	if end > len(lines) {
		end = len(lines)
	}

	return strings.Join(lines[start:end], "\n")
}

func (d *DiffView) formatDiffLine(line config.DiffLine, maxWidth int) string {
	content := line.Content
	if maxWidth > 5 && len(content) > maxWidth-2 {
		content = content[:maxWidth-5] + "..."
	}

	// Only context lines get highlighted; added and removed lines keep
	// their diff color.
	if d.enableHighlight && line.Type == config.DiffEqual && d.highlighter != nil {
		content = d.highlighter.HighlightLine(content, d.FileName)
	}

	switch line.Type {
	case config.DiffInsert:
		return d.addStyle.Render("+ " + content)
	case config.DiffDelete:
		return d.deleteStyle.Render("- " + content)
	default:
		return d.contextStyle.Render("  ") + content
	}
}

func (d *DiffView) renderFooter() string {
	items := []string{
		ui.RenderHelpItem("j/k", "scroll"),
		ui.RenderHelpItem("enter", "save"),
		ui.RenderHelpItem("h", "highlight"),
		ui.RenderHelpItem("ESC", "back to editor"),
	}
	return ui.HelpBarStyle.Render(strings.Join(items, "  "))
}
