package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	// Test all key bindings are defined
	bindings := []struct {
		name    string
		binding key.Binding
	}{
		{"Up", km.Up},
		{"Down", km.Down},
		{"PageUp", km.PageUp},
		{"PageDown", km.PageDown},
		{"Home", km.Home},
		{"End", km.End},
		{"Tab", km.Tab},
		{"ShiftTab", km.ShiftTab},
		{"Space", km.Space},
		{"Enter", km.Enter},
		{"Help", km.Help},
		{"Quit", km.Quit},
		{"Escape", km.Escape},
		{"Apply", km.Apply},
		{"Refresh", km.Refresh},
		{"Filter", km.Filter},
		{"SortKey", km.SortKey},
		{"Install", km.Install},
		{"Search", km.Search},
		{"Diff", km.Diff},
		{"Backup", km.Backup},
		{"Restore", km.Restore},
		{"Updates", km.Updates},
		{"Token", km.Token},
	}

	for _, b := range bindings {
		if len(b.binding.Keys()) == 0 {
			t.Errorf("%s binding should have keys", b.name)
		}
		if b.binding.Help().Key == "" {
			t.Errorf("%s binding should have help key", b.name)
		}
		if b.binding.Help().Desc == "" {
			t.Errorf("%s binding should have help description", b.name)
		}
	}
}

func TestNoConflictingSingleKeys(t *testing.T) {
	km := DefaultKeyMap()

	// Keys active on the main list screens must not collide.
	listBindings := []key.Binding{
		km.Space, km.Apply, km.Refresh, km.Filter, km.SortKey,
		km.Install, km.Search, km.Diff, km.Backup, km.Restore,
		km.Updates, km.Token, km.Help, km.Quit,
	}

	seen := map[string]bool{}
	for _, b := range listBindings {
		for _, k := range b.Keys() {
			if seen[k] {
				t.Errorf("key %q bound twice", k)
			}
			seen[k] = true
		}
	}
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	short := km.ShortHelp()
	if len(short) == 0 {
		t.Fatal("ShortHelp should return bindings")
	}
	for i, b := range short {
		if len(b.Keys()) == 0 {
			t.Errorf("short help binding %d has no keys", i)
		}
	}
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	full := km.FullHelp()
	if len(full) == 0 {
		t.Fatal("FullHelp should return binding groups")
	}
	for i, group := range full {
		if len(group) == 0 {
			t.Errorf("full help group %d is empty", i)
		}
	}
}
