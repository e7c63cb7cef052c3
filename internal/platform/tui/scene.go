package tui

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/chaos-rings/internal/app"
	"github.com/vovakirdan/chaos-rings/internal/core"
	"github.com/vovakirdan/chaos-rings/internal/sim"
)

// HUD layout: question and scores on top, status line at the bottom.
const (
	hudTopRows    = 2
	hudBottomRows = 1
)

// Scene is a snapshot of everything drawn in one frame.
type Scene struct {
	Question string
	Left     sim.SideInfo
	Right    sim.SideInfo
	Scores   sim.Scores
	Rings    []sim.Ring
	Balls    [2]sim.Ball
	GapSize  float64
	Zoom     float64
	Elapsed  time.Duration
	FPS      int
	Paused   bool
	Summary  *app.Summary
	CellW    float64
	CellH    float64
}

// SceneFrom captures the controller state for drawing.
func SceneFrom(ctrl *app.Controller, fps int) Scene {
	s := ctrl.Sim()
	cfg := ctrl.Config()
	simCfg := s.Config()

	scene := Scene{
		Question: cfg.Question,
		Left:     simCfg.Left,
		Right:    simCfg.Right,
		Scores:   s.Scores(),
		Rings:    s.Rings(),
		Balls:    s.Balls(),
		GapSize:  simCfg.GapSize,
		Zoom:     s.Zoom(),
		Elapsed:  ctrl.Elapsed(),
		FPS:      fps,
		Paused:   ctrl.Paused(),
		CellW:    cfg.View.CellWidth,
		CellH:    cfg.View.CellHeight,
	}
	if sum, ok := ctrl.Summary(); ok {
		scene.Summary = &sum
	}
	return scene
}

// FieldRows returns the rows available to the rings for a screen height.
func FieldRows(screenH int) int {
	return max(0, screenH-hudTopRows-hudBottomRows)
}

// FormatElapsed renders a duration as mm:ss.
func FormatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func msDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// DrawScene renders a frame into the screen buffer.
func DrawScene(s *core.Screen, sc Scene) {
	s.Clear()

	v := newViewport(s, sc)
	for _, r := range sc.Rings {
		if r.Active {
			v.drawRing(s, r, sc.GapSize)
		}
	}
	for _, b := range sc.Balls {
		v.drawBall(s, b)
	}

	drawHUD(s, sc)

	switch {
	case sc.Summary != nil:
		drawSummary(s, *sc.Summary)
	case sc.Paused:
		drawPaused(s)
	}
}

// viewport maps world units onto screen cells.
type viewport struct {
	cx, cy float64 // Screen position of the ring center
	sx, sy float64 // Cells per world unit
}

func newViewport(s *core.Screen, sc Scene) viewport {
	cellW, cellH := sc.CellW, sc.CellH
	if cellW <= 0 {
		cellW = 1
	}
	if cellH <= 0 {
		cellH = 1
	}
	return viewport{
		cx: float64(s.Width()) / 2,
		cy: float64(hudTopRows) + float64(FieldRows(s.Height()))/2,
		sx: sc.Zoom / cellW,
		sy: sc.Zoom / cellH,
	}
}

func (v viewport) project(p core.Vec2) (int, int) {
	return int(math.Floor(v.cx + p.X*v.sx)), int(math.Floor(v.cy + p.Y*v.sy))
}

// inField reports whether a cell lies between the HUD rows.
func (v viewport) inField(s *core.Screen, x, y int) bool {
	return core.NewRect(0, hudTopRows, s.Width(), FieldRows(s.Height())).Contains(x, y)
}

// drawRing plots the ring outline, leaving the gap arc open.
func (v viewport) drawRing(s *core.Screen, r sim.Ring, gapSize float64) {
	cells := 2 * math.Pi * r.Radius * math.Max(math.Abs(v.sx), math.Abs(v.sy))
	steps := max(24, int(cells*2))

	for k := 0; k < steps; k++ {
		deg := 360 * float64(k) / float64(steps)
		if sim.InGap(deg, r.GapAngle, gapSize) {
			continue
		}
		x, y := v.project(core.FromAngle(deg*math.Pi/180, r.Radius))
		if v.inField(s, x, y) {
			s.SetColored(x, y, '·', core.ColorWhite)
		}
	}
}

// drawBall fills the ball's disk and marks its center.
func (v viewport) drawBall(s *core.Screen, b sim.Ball) {
	c := core.Color(b.Color)
	cx, cy := v.project(b.Pos)

	rx := b.Radius * math.Abs(v.sx)
	ry := b.Radius * math.Abs(v.sy)
	if rx >= 1 && ry >= 1 {
		for dy := -int(ry); dy <= int(ry); dy++ {
			for dx := -int(rx); dx <= int(rx); dx++ {
				nx, ny := float64(dx)/rx, float64(dy)/ry
				if nx*nx+ny*ny <= 1 && v.inField(s, cx+dx, cy+dy) {
					s.SetColored(cx+dx, cy+dy, '█', c)
				}
			}
		}
	}
	if v.inField(s, cx, cy) {
		s.SetColored(cx, cy, '●', c)
	}
}

func drawHUD(s *core.Screen, sc Scene) {
	s.DrawTextCentered(0, sc.Question, core.ColorBrightWhite)

	left := fmt.Sprintf("%s: %d", sc.Left.Label, sc.Scores.Left)
	right := fmt.Sprintf("%s: %d", sc.Right.Label, sc.Scores.Right)
	s.DrawText(1, 1, left, core.Color(sc.Left.Color))
	s.DrawText(s.Width()-1-len([]rune(right)), 1, right, core.Color(sc.Right.Color))
	s.DrawTextCentered(1, FormatElapsed(sc.Elapsed), core.ColorYellow)

	active := 0
	for _, r := range sc.Rings {
		if r.Active {
			active++
		}
	}
	status := fmt.Sprintf("FPS: %d  Rings: %d/%d", sc.FPS, active, len(sc.Rings))
	s.DrawText(1, s.Height()-1, status, core.ColorGray)
}

// drawPanel draws a bordered, cleared panel with centered lines.
func drawPanel(s *core.Screen, lines []string, colors []core.Color) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	w, h := width+4, len(lines)+2
	r := core.NewRect((s.Width()-w)/2, (s.Height()-h)/2, w, h)

	s.DrawRect(r, ' ')
	s.DrawBox(r, core.ColorWhite)
	for i, l := range lines {
		x := r.X + (w-len([]rune(l)))/2
		s.DrawText(x, r.Y+1+i, l, colors[i])
	}
}

func drawPaused(s *core.Screen) {
	drawPanel(s, []string{"PAUSED", "press space to resume"}, []core.Color{core.ColorYellow, core.ColorGray})
}

func drawSummary(s *core.Screen, sum app.Summary) {
	res := sum.Result
	verdict := "Draw!"
	if sum.Winner != "" {
		verdict = sum.Winner + " wins!"
	}
	drawPanel(s,
		[]string{
			"GAME OVER",
			fmt.Sprintf("%s: %d", res.LeftLabel, res.LeftScore),
			fmt.Sprintf("%s: %d", res.RightLabel, res.RightScore),
			verdict,
		},
		[]core.Color{core.ColorRed, core.ColorWhite, core.ColorWhite, core.ColorBrightWhite},
	)
}
