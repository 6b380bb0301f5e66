package config

import (
	"strconv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffType classifies a diff line.
type DiffType int

const (
	DiffEqual DiffType = iota
	DiffInsert
	DiffDelete
)

// DiffLine is a single line of a config diff.
type DiffLine struct {
	Type    DiffType
	Content string
}

// DiffResult is the line diff between the on-disk config and a pending
// edit, shown before the edit is saved.
type DiffResult struct {
	Identical    bool
	Lines        []DiffLine
	LinesAdded   int
	LinesRemoved int
}

// Diff computes the line diff between the current config text and the
// pending replacement.
func Diff(current, pending string) *DiffResult {
	result := &DiffResult{}

	if current == pending {
		result.Identical = true
		return result
	}

	dmp := diffmatchpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(current, pending)
	diffs := dmp.DiffMain(chars1, chars2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)
	diffs = dmp.DiffCleanupSemantic(diffs)

	for _, d := range diffs {
		var typ DiffType
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			typ = DiffInsert
		case diffmatchpatch.DiffDelete:
			typ = DiffDelete
		default:
			typ = DiffEqual
		}

		for _, line := range splitDiffLines(d.Text) {
			result.Lines = append(result.Lines, DiffLine{Type: typ, Content: line})
			switch typ {
			case DiffInsert:
				result.LinesAdded++
			case DiffDelete:
				result.LinesRemoved++
			}
		}
	}

	result.Identical = result.LinesAdded == 0 && result.LinesRemoved == 0
	return result
}

// splitDiffLines splits diff segment text into lines, dropping the
// trailing empty line produced by a final newline.
func splitDiffLines(text string) []string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}
	return lines
}

// HasChanges reports whether the pending edit differs from disk.
func (d *DiffResult) HasChanges() bool {
	return !d.Identical
}

// Unified renders the diff in unified format for display.
func (d *DiffResult) Unified() string {
	var sb strings.Builder
	for _, line := range d.Lines {
		switch line.Type {
		case DiffInsert:
			sb.WriteString("+" + line.Content + "\n")
		case DiffDelete:
			sb.WriteString("-" + line.Content + "\n")
		default:
			sb.WriteString(" " + line.Content + "\n")
		}
	}
	return sb.String()
}

// Summary returns a short +n -m change summary.
func (d *DiffResult) Summary() string {
	if d.Identical {
		return "No changes"
	}

	var parts []string
	if d.LinesAdded > 0 {
		parts = append(parts, "+"+strconv.Itoa(d.LinesAdded))
	}
	if d.LinesRemoved > 0 {
		parts = append(parts, "-"+strconv.Itoa(d.LinesRemoved))
	}
	return strings.Join(parts, " ")
}
