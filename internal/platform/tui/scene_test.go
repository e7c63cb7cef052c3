package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/chaos-rings/internal/app"
	"github.com/vovakirdan/chaos-rings/internal/core"
	"github.com/vovakirdan/chaos-rings/internal/sim"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "00:00"},
		{999 * time.Millisecond, "00:00"},
		{65 * time.Second, "01:05"},
		{59*time.Minute + 59*time.Second + 900*time.Millisecond, "59:59"},
		{61 * time.Minute, "61:00"},
	}

	for _, tt := range tests {
		if got := FormatElapsed(tt.d); got != tt.expected {
			t.Errorf("FormatElapsed(%v) = %q, expected %q", tt.d, got, tt.expected)
		}
	}
}

func TestFieldRows(t *testing.T) {
	tests := []struct {
		h, expected int
	}{
		{24, 21},
		{3, 0},
		{2, 0},
		{0, 0},
	}

	for _, tt := range tests {
		if got := FieldRows(tt.h); got != tt.expected {
			t.Errorf("FieldRows(%d) = %d, expected %d", tt.h, got, tt.expected)
		}
	}
}

// testScene is a 60x20 frame with one ring of radius 10 drawn at one cell
// per unit. The ring center lands on cell (30, 10).
func testScene() Scene {
	return Scene{
		Question: "Tea?",
		Left:     sim.SideInfo{Label: "Yes", Color: "#00ff00"},
		Right:    sim.SideInfo{Label: "No", Color: "#ff0000"},
		Scores:   sim.Scores{Left: 3, Right: 1},
		Rings: []sim.Ring{
			{Radius: 10, Active: true, GapAngle: 180},
			{Radius: 40, Active: false, GapAngle: 0},
		},
		Balls: [2]sim.Ball{
			{Pos: core.V(0, 5), Radius: 0.5, Color: "#00ff00"},
			{Pos: core.V(0, -5), Radius: 0.5, Color: "#ff0000"},
		},
		GapSize: 30,
		Zoom:    1,
		Elapsed: 75 * time.Second,
		FPS:     60,
		CellW:   1,
		CellH:   1,
	}
}

func TestDrawSceneHUD(t *testing.T) {
	s := core.NewScreen(60, 20)
	DrawScene(s, testScene())

	if row := s.Row(0); !strings.Contains(row, "Tea?") {
		t.Errorf("Row(0) = %q, expected the question", row)
	}
	row := s.Row(1)
	for _, want := range []string{"Yes: 3", "No: 1", "01:15"} {
		if !strings.Contains(row, want) {
			t.Errorf("Row(1) = %q, expected it to contain %q", row, want)
		}
	}
	if got := s.GetCell(1, 1).Color; got != core.Color("#00ff00") {
		t.Errorf("left label color = %q, expected %q", got, "#00ff00")
	}
	if row := s.Row(19); !strings.Contains(row, "FPS: 60  Rings: 1/2") {
		t.Errorf("Row(19) = %q, expected status line", row)
	}
}

func TestDrawSceneRingsAndBalls(t *testing.T) {
	s := core.NewScreen(60, 20)
	DrawScene(s, testScene())

	// Angle 0 of the ring
	if cell := s.GetCell(40, 10); cell.Rune != '·' || cell.Color != core.ColorWhite {
		t.Errorf("ring cell = %q/%q, expected '·'/%q", cell.Rune, cell.Color, core.ColorWhite)
	}
	// Angle 180 is inside the gap
	if r := s.GetCell(20, 10).Rune; r != ' ' {
		t.Errorf("gap cell = %q, expected blank", r)
	}
	// Balls
	if cell := s.GetCell(30, 15); cell.Rune != '●' || cell.Color != core.Color("#00ff00") {
		t.Errorf("left ball cell = %q/%q, expected '●'/#00ff00", cell.Rune, cell.Color)
	}
	if cell := s.GetCell(30, 5); cell.Rune != '●' || cell.Color != core.Color("#ff0000") {
		t.Errorf("right ball cell = %q/%q, expected '●'/#ff0000", cell.Rune, cell.Color)
	}
}

func TestDrawScenePanels(t *testing.T) {
	paused := testScene()
	paused.Paused = true
	s := core.NewScreen(60, 20)
	DrawScene(s, paused)
	if !strings.Contains(s.String(), "PAUSED") {
		t.Error("paused scene should show PAUSED panel")
	}

	over := testScene()
	over.Paused = true
	over.Summary = &app.Summary{
		Result: app.GameResult{LeftLabel: "Yes", RightLabel: "No", LeftScore: 3, RightScore: 1},
		Winner: "Yes",
	}
	DrawScene(s, over)
	out := s.String()
	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "Yes wins!") {
		t.Errorf("summary panel missing, got:\n%s", out)
	}
	if strings.Contains(out, "PAUSED") {
		t.Error("summary panel should replace the paused panel")
	}

	over.Summary.Winner = ""
	DrawScene(s, over)
	if !strings.Contains(s.String(), "Draw!") {
		t.Error("tied summary should show Draw!")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd", core.Color("#123456"))

	out := RenderScreen(s)
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("RenderScreen() has %d newlines, expected 1", got)
	}
	for _, want := range []string{"ab", "cd"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() = %q, expected it to contain %q", out, want)
		}
	}
}
