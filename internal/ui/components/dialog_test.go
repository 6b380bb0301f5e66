package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestPromptShowHide(t *testing.T) {
	p := NewPrompt()

	if p.Visible {
		t.Fatal("prompt should start hidden")
	}
	if p.View() != "" {
		t.Error("hidden prompt should render nothing")
	}

	p.Show("install", "Install from git", "https://github.com/user/theme", false)
	if !p.Visible || p.Kind != "install" {
		t.Errorf("Show should open the prompt: visible=%v kind=%q", p.Visible, p.Kind)
	}
	if !strings.Contains(p.View(), "Install from git") {
		t.Error("View should contain the title")
	}

	p.Hide()
	if p.Visible {
		t.Error("Hide should close the prompt")
	}
}

func TestPromptValueTrimsSpace(t *testing.T) {
	p := NewPrompt()
	p.Show("search", "Search marketplace", "", false)

	for _, r := range "  shuffle  " {
		p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	if p.Value() != "shuffle" {
		t.Errorf("Value should trim whitespace, got %q", p.Value())
	}
}

func TestPromptShowResetsValue(t *testing.T) {
	p := NewPrompt()
	p.Show("token", "GitHub token", "", true)
	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")})

	p.Show("password", "Password", "", true)
	if p.Value() != "" {
		t.Errorf("Show should clear the previous value, got %q", p.Value())
	}
}

func TestConfirmChoice(t *testing.T) {
	c := NewConfirm()

	if c.Visible {
		t.Fatal("confirm should start hidden")
	}
	if c.View() != "" {
		t.Error("hidden confirm should render nothing")
	}

	c.Show("restore", "Restore backup", "Overwrite the current setup?")
	if c.Accepted() {
		t.Error("the no button should start active")
	}

	c.ToggleChoice()
	if !c.Accepted() {
		t.Error("ToggleChoice should activate yes")
	}

	view := c.View()
	if !strings.Contains(view, "Restore backup") || !strings.Contains(view, "Overwrite the current setup?") {
		t.Error("View should contain title and message")
	}

	c.Hide()
	if c.Visible {
		t.Error("Hide should close the dialog")
	}

	// Reopening resets the choice.
	c.Show("restore", "Restore backup", "again")
	if c.Accepted() {
		t.Error("Show should reset the choice to no")
	}
}
