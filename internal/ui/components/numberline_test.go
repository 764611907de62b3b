package components

import (
	"strings"
	"testing"

	"github.com/abhisek/numline/internal/stage"
)

func TestNumberLineCursorStart(t *testing.T) {
	tests := []struct {
		name  string
		stage stage.Stage
		want  int
	}{
		{"contains zero", stage.Stage{Min: -10, Max: 10}, 0},
		{"positive only", stage.Stage{Min: 1, Max: 10}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNumberLine(tt.stage)
			if n.Cursor != tt.want {
				t.Errorf("Cursor = %d, want %d", n.Cursor, tt.want)
			}
		})
	}
}

func TestNumberLineMoveClamps(t *testing.T) {
	n := NewNumberLine(stage.Stage{Min: 0, Max: 3})
	n.Move(-1)
	if n.Cursor != 0 {
		t.Errorf("Cursor = %d after moving below Min, want 0", n.Cursor)
	}
	n.Move(10)
	if n.Cursor != 3 {
		t.Errorf("Cursor = %d after moving past Max, want 3", n.Cursor)
	}
}

func TestNumberLineSetStageKeepsCursorAndClearsHighlight(t *testing.T) {
	n := NewNumberLine(stage.Stage{Min: 0, Max: 10})
	n.Move(5)
	n.Highlight(func(v int) bool { return v == 5 })
	if !n.Highlighted(5) {
		t.Fatal("expected 5 to be highlighted")
	}

	n.SetStage(stage.Stage{Min: -10, Max: 10})
	if n.Cursor != 5 {
		t.Errorf("Cursor = %d, want 5 kept", n.Cursor)
	}
	if n.Highlighted(5) {
		t.Error("highlight should be cleared by SetStage")
	}

	n.SetStage(stage.Stage{Min: 1, Max: 4})
	if n.Cursor != 1 {
		t.Errorf("Cursor = %d, want reset to Min", n.Cursor)
	}
}

func TestNumberLineHighlightStaysOnLine(t *testing.T) {
	n := NewNumberLine(stage.Stage{Min: 1, Max: 10})
	n.Highlight(func(v int) bool { return v > 8 })
	if n.Highlighted(11) {
		t.Error("values off the line must not be highlighted")
	}
	if !n.Highlighted(9) || !n.Highlighted(10) {
		t.Error("expected 9 and 10 highlighted")
	}
}

func TestNumberLineRowsWrap(t *testing.T) {
	n := NewNumberLine(stage.Stage{Min: -20, Max: 20})
	// Labels are at most 3 wide, so each cell takes 5 columns.
	rows := n.Rows(50)
	if len(rows) != 5 {
		t.Fatalf("rows = %d, want 5", len(rows))
	}
	if len(rows[0]) != 10 || len(rows[4]) != 1 {
		t.Errorf("row sizes = %d..%d, want 10..1", len(rows[0]), len(rows[4]))
	}
	if rows[4][0] != 20 {
		t.Errorf("last value = %d, want 20", rows[4][0])
	}

	total := 0
	for _, r := range n.Rows(3) {
		total += len(r)
	}
	if total != 41 {
		t.Errorf("narrow width lost values: got %d, want 41", total)
	}
}

func TestNumberLineViewShowsLabels(t *testing.T) {
	n := NewNumberLine(stage.Stage{Min: 1, Max: 10})
	view := n.View(80)
	for _, label := range []string{" 1", " 5", "10"} {
		if !strings.Contains(view, label) {
			t.Errorf("view missing label %q", label)
		}
	}
	if !strings.Contains(view, "▲") {
		t.Error("view missing cursor caret")
	}
}

func TestIsNumericKey(t *testing.T) {
	tests := []struct {
		c       byte
		current string
		want    bool
	}{
		{'7', "", true},
		{'-', "", true},
		{'-', "3", false},
		{'a', "", false},
		{'0', "-", true},
	}
	for _, tt := range tests {
		if got := isNumericKey(tt.c, tt.current); got != tt.want {
			t.Errorf("isNumericKey(%q, %q) = %v, want %v", tt.c, tt.current, got, tt.want)
		}
	}
}
