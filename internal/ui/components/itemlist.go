package components

import (
	"fmt"
	"strings"

	"spiceman/internal/ui"
)

// Item is one row in a list: an extension, theme, custom app or
// marketplace listing.
type Item struct {
	Title   string
	Desc    string
	Checked bool
	Marker  string // short trailing annotation, e.g. "current"
}

// ItemList is the shared list component for the main tabs.
type ItemList struct {
	Items   []Item
	Cursor  int
	Width   int
	Height  int
	Focused bool
	Title   string

	filter   string
	filtered []int // indexes into Items, nil when no filter
}

// NewItemList creates a list with the given panel title.
func NewItemList(title string) *ItemList {
	return &ItemList{
		Width:  40,
		Height: 15,
		Title:  title,
	}
}

// SetItems replaces the list contents and resets cursor and filter.
func (l *ItemList) SetItems(items []Item) {
	l.Items = items
	l.Cursor = 0
	l.filter = ""
	l.filtered = nil
}

// SetFilter narrows the visible rows to titles containing the query,
// case-insensitively. An empty query clears the filter.
func (l *ItemList) SetFilter(query string) {
	l.filter = query
	l.Cursor = 0

	if query == "" {
		l.filtered = nil
		return
	}

	query = strings.ToLower(query)
	l.filtered = []int{}
	for i, item := range l.Items {
		if strings.Contains(strings.ToLower(item.Title), query) {
			l.filtered = append(l.filtered, i)
		}
	}
}

// Filter returns the active filter query.
func (l *ItemList) Filter() string {
	return l.filter
}

// visible returns the indexes of the rows currently shown.
func (l *ItemList) visible() []int {
	if l.filtered != nil {
		return l.filtered
	}
	idx := make([]int, len(l.Items))
	for i := range l.Items {
		idx[i] = i
	}
	return idx
}

// Len returns the number of visible rows.
func (l *ItemList) Len() int {
	return len(l.visible())
}

// MoveUp moves cursor up
func (l *ItemList) MoveUp() {
	if l.Cursor > 0 {
		l.Cursor--
	}
}

// MoveDown moves cursor down
func (l *ItemList) MoveDown() {
	if l.Cursor < l.Len()-1 {
		l.Cursor++
	}
}

// PageUp moves cursor up by a page
func (l *ItemList) PageUp() {
	pageSize := l.Height - 3
	if pageSize < 1 {
		pageSize = 10
	}
	l.Cursor -= pageSize
	if l.Cursor < 0 {
		l.Cursor = 0
	}
}

// PageDown moves cursor down by a page
func (l *ItemList) PageDown() {
	pageSize := l.Height - 3
	if pageSize < 1 {
		pageSize = 10
	}
	l.Cursor += pageSize
	if l.Cursor >= l.Len() {
		l.Cursor = max(0, l.Len()-1)
	}
}

// GoToFirst moves cursor to the first item
func (l *ItemList) GoToFirst() {
	l.Cursor = 0
}

// GoToLast moves cursor to the last item
func (l *ItemList) GoToLast() {
	if l.Len() > 0 {
		l.Cursor = l.Len() - 1
	}
}

// Toggle flips the checked state of the row under the cursor.
func (l *ItemList) Toggle() {
	if item := l.Current(); item != nil {
		item.Checked = !item.Checked
	}
}

// Current returns the item under the cursor, nil when the list is
// empty.
func (l *ItemList) Current() *Item {
	visible := l.visible()
	if l.Cursor < 0 || l.Cursor >= len(visible) {
		return nil
	}
	return &l.Items[visible[l.Cursor]]
}

// CheckedTitles returns the titles of all checked items, unfiltered.
func (l *ItemList) CheckedTitles() []string {
	var out []string
	for _, item := range l.Items {
		if item.Checked {
			out = append(out, item.Title)
		}
	}
	return out
}

// View renders the list
func (l *ItemList) View() string {
	var b strings.Builder

	title := l.Title
	if checked := len(l.CheckedTitles()); checked > 0 {
		title = fmt.Sprintf("%s (%d/%d)", l.Title, checked, len(l.Items))
	} else if len(l.Items) > 0 {
		title = fmt.Sprintf("%s (%d)", l.Title, len(l.Items))
	}
	if l.filter != "" {
		title += "  /" + l.filter
	}
	b.WriteString(ui.PanelTitleStyle.Render(title))
	b.WriteString("\n")

	visible := l.visible()
	if len(visible) == 0 {
		if l.filter != "" {
			b.WriteString(ui.ItemStyle.Render("No matches"))
		} else {
			b.WriteString(ui.ItemStyle.Render("Nothing installed"))
		}
		return l.wrapInPanel(b.String())
	}

	// Calculate visible range
	visibleHeight := l.Height - 3
	startIdx := 0
	if l.Cursor >= visibleHeight {
		startIdx = l.Cursor - visibleHeight + 1
	}
	endIdx := min(startIdx+visibleHeight, len(visible))

	if startIdx > 0 {
		b.WriteString(ui.MutedStyle.Render("  ↑ more"))
		b.WriteString("\n")
	}

	for i := startIdx; i < endIdx; i++ {
		b.WriteString(l.renderItem(&l.Items[visible[i]], i == l.Cursor))
		if i < endIdx-1 {
			b.WriteString("\n")
		}
	}

	if endIdx < len(visible) {
		b.WriteString("\n")
		b.WriteString(ui.MutedStyle.Render("  ↓ more"))
	}

	return l.wrapInPanel(b.String())
}

// renderItem renders a single row
func (l *ItemList) renderItem(item *Item, isCursor bool) string {
	checkbox := ui.RenderCheckbox(item.Checked)

	name := item.Title
	maxNameLen := l.Width - 12
	if maxNameLen > 3 && len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	content := fmt.Sprintf("%s %s", checkbox, ui.NameStyle.Render(name))
	if item.Marker != "" {
		content += " " + ui.CurrentThemeStyle.Render(item.Marker)
	}
	if item.Desc != "" {
		content += " " + ui.PathStyle.Render(item.Desc)
	}

	if isCursor && l.Focused {
		return ui.SelectedItemStyle.Width(l.Width - 4).Render(content)
	}
	return ui.ItemStyle.Render(content)
}

// wrapInPanel wraps content in a panel border
func (l *ItemList) wrapInPanel(content string) string {
	style := ui.PanelStyle
	if l.Focused {
		style = ui.ActivePanelStyle
	}
	return style.Width(l.Width).Height(l.Height).Render(content)
}
