package components

import (
	"fmt"
	"strings"
	"time"

	"spiceman/internal/ui"

	"github.com/charmbracelet/bubbles/viewport"
)

// LogLevel classifies log pane entries.
type LogLevel int

const (
	LogInfo LogLevel = iota
	LogSuccess
	LogWarning
	LogError
)

// LogEntry is one line in the activity log.
type LogEntry struct {
	Time    time.Time
	Level   LogLevel
	Message string
}

// LogPane shows the recent activity: apply runs, installs, backups and
// failures.
type LogPane struct {
	viewport viewport.Model
	entries  []LogEntry

	Width  int
	Height int

	maxEntries int
}

// NewLogPane creates an empty log pane
func NewLogPane() *LogPane {
	vp := viewport.New(80, 6)

	return &LogPane{
		viewport:   vp,
		Width:      80,
		Height:     6,
		maxEntries: 200,
	}
}

// SetSize updates the pane dimensions
func (p *LogPane) SetSize(width, height int) {
	p.Width = width
	p.Height = height

	contentHeight := height - 2
	if contentHeight < 1 {
		contentHeight = 1
	}
	p.viewport.Width = width - 4
	p.viewport.Height = contentHeight
	p.refresh()
}

// Add appends an entry and scrolls to the bottom.
func (p *LogPane) Add(level LogLevel, message string) {
	p.entries = append(p.entries, LogEntry{
		Time:    time.Now(),
		Level:   level,
		Message: message,
	})
	if len(p.entries) > p.maxEntries {
		p.entries = p.entries[len(p.entries)-p.maxEntries:]
	}
	p.refresh()
	p.viewport.GotoBottom()
}

// Infof logs a formatted info entry.
func (p *LogPane) Infof(format string, args ...any) {
	p.Add(LogInfo, fmt.Sprintf(format, args...))
}

// Errorf logs a formatted error entry.
func (p *LogPane) Errorf(format string, args ...any) {
	p.Add(LogError, fmt.Sprintf(format, args...))
}

// Successf logs a formatted success entry.
func (p *LogPane) Successf(format string, args ...any) {
	p.Add(LogSuccess, fmt.Sprintf(format, args...))
}

// Entries returns the logged entries, oldest first.
func (p *LogPane) Entries() []LogEntry {
	return p.entries
}

// Last returns the most recent entry, nil when the log is empty.
func (p *LogPane) Last() *LogEntry {
	if len(p.entries) == 0 {
		return nil
	}
	return &p.entries[len(p.entries)-1]
}

// ScrollUp scrolls the log up
func (p *LogPane) ScrollUp() {
	p.viewport.LineUp(1)
}

// ScrollDown scrolls the log down
func (p *LogPane) ScrollDown() {
	p.viewport.LineDown(1)
}

// refresh rebuilds the viewport content from the entries.
func (p *LogPane) refresh() {
	lines := make([]string, 0, len(p.entries))
	for _, entry := range p.entries {
		lines = append(lines, p.renderEntry(entry))
	}
	p.viewport.SetContent(strings.Join(lines, "\n"))
}

func (p *LogPane) renderEntry(entry LogEntry) string {
	stamp := ui.MutedStyle.Render(entry.Time.Format("15:04:05"))

	var message string
	switch entry.Level {
	case LogSuccess:
		message = ui.EnabledStyle.Render("✓ " + entry.Message)
	case LogWarning:
		message = ui.WarningNotifyStyle.Render("⚠ " + entry.Message)
	case LogError:
		message = ui.LogErrorStyle.Render("✗ " + entry.Message)
	default:
		message = ui.LogInfoStyle.Render(entry.Message)
	}

	return stamp + " " + message
}

// View renders the log pane
func (p *LogPane) View() string {
	var b strings.Builder

	b.WriteString(ui.PanelTitleStyle.Render("Activity"))
	b.WriteString("\n")

	if len(p.entries) == 0 {
		b.WriteString(ui.MutedStyle.Render("Nothing yet"))
	} else {
		b.WriteString(p.viewport.View())
	}

	return ui.PanelStyle.Width(p.Width).Render(b.String())
}
