package components

import (
	"strings"
	"testing"
)

func TestLogPaneAdd(t *testing.T) {
	p := NewLogPane()

	p.Infof("scanned %d extensions", 3)
	p.Successf("applied")
	p.Errorf("spicetify failed: %s", "exit status 1")

	entries := p.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Level != LogInfo || entries[1].Level != LogSuccess || entries[2].Level != LogError {
		t.Errorf("entry levels wrong: %+v", entries)
	}

	last := p.Last()
	if last == nil || !strings.Contains(last.Message, "exit status 1") {
		t.Errorf("Last should be the error entry: %+v", last)
	}
}

func TestLogPaneEmpty(t *testing.T) {
	p := NewLogPane()

	if p.Last() != nil {
		t.Error("Last on empty log should be nil")
	}
	if !strings.Contains(p.View(), "Nothing yet") {
		t.Error("empty log should render a placeholder")
	}
}

func TestLogPaneCapsEntries(t *testing.T) {
	p := NewLogPane()
	p.maxEntries = 5

	for i := 0; i < 10; i++ {
		p.Infof("entry %d", i)
	}

	entries := p.Entries()
	if len(entries) != 5 {
		t.Fatalf("expected the log to cap at 5 entries, got %d", len(entries))
	}
	if !strings.Contains(entries[0].Message, "entry 5") {
		t.Errorf("oldest entries should be dropped first: %+v", entries[0])
	}
}

func TestLogPaneViewContainsMessages(t *testing.T) {
	p := NewLogPane()
	p.SetSize(80, 8)
	p.Successf("backup written to backup.zip")

	if !strings.Contains(p.View(), "backup.zip") {
		t.Error("View should include logged messages")
	}
}
