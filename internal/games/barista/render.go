package barista

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/Dotan232/SweetBarista/internal/core"
)

// hudRows is the number of rows reserved above the playfield.
const hudRows = 1

// viewport maps world pixels onto a block of screen cells.
type viewport struct {
	x0, y0 int
	w, h   int
	worldW float64
	worldH float64
}

func (v viewport) cellX(x float64) int {
	return v.x0 + int(math.Floor(x/v.worldW*float64(v.w)))
}

func (v viewport) cellY(y float64) int {
	return v.y0 + int(math.Floor(y/v.worldH*float64(v.h)))
}

// worldX returns the world x at the center of a screen column.
func (v viewport) worldX(col int) float64 {
	return (float64(col-v.x0) + 0.5) * v.worldW / float64(v.w)
}

var timerColors = map[TimerColor]core.Color{
	TimerNormal:  core.ColorGreen,
	TimerWarning: core.ColorYellow,
	TimerDanger:  core.ColorBrightRed,
}

// Render draws the current frame into dst. The screen is pre-cleared.
func (g *Game) Render(dst *core.Screen) {
	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small", core.ColorRed)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("need %dx%d", MinScreenW, MinScreenH), core.ColorGray)
		return
	}

	snap := g.session.Snapshot()
	cfg := g.session.Config()
	vp := viewport{
		x0:     0,
		y0:     hudRows,
		w:      dst.Width(),
		h:      dst.Height() - hudRows,
		worldW: cfg.World.Width,
		worldH: cfg.World.Height,
	}

	g.renderHUD(dst, &snap)
	g.renderBelt(dst, vp, &snap)
	g.renderFloor(dst, vp)
	for i := range snap.Cups {
		g.renderCup(dst, vp, &snap.Cups[i])
	}
	g.renderHand(dst, vp, &snap)
	for i := range snap.Cubes {
		g.renderCube(dst, vp, &snap.Cubes[i])
	}
	g.renderOverlay(dst, &snap)
}

func (g *Game) glyph(name string) rune {
	if r, ok := g.session.Images().Glyph(name); ok {
		return r
	}
	return DefaultGlyphs[name]
}

func (g *Game) renderHUD(dst *core.Screen, snap *Snapshot) {
	if snap.State == StateMenu || snap.State == StateGameComplete {
		dst.DrawTextColored(1, 0, "SWEET BARISTA", core.ColorBrightYellow)
		dst.DrawTextColored(dst.Width()-14, 0, fmt.Sprintf("Score %6d", snap.TotalScore), core.ColorWhite)
		return
	}

	x := 1
	put := func(text string, c core.Color) {
		dst.DrawTextColored(x, 0, text, c)
		x += utf8.RuneCountInString(text) + 2
	}
	put(fmt.Sprintf("Level %d/%d", snap.Level, snap.LastLevel), core.ColorBrightWhite)
	put(snap.Difficulty, core.ColorGray)
	put("Time "+snap.DisplayTime, timerColors[snap.TimerColor])
	put(fmt.Sprintf("Cups %d/%d", snap.CupsCompleted, snap.CupsNeeded), core.ColorCyan)
	put(fmt.Sprintf("Sugar %d", snap.SugarDelivered), core.ColorCream)
	put(fmt.Sprintf("Score %d", snap.TotalScore), core.ColorWhite)
}

func (g *Game) renderFloor(dst *core.Screen, vp viewport) {
	y := vp.cellY(g.session.Config().World.FloorY())
	dst.DrawHLine(0, y, dst.Width(), g.glyph(AssetFloor), core.ColorGray)
}

func (g *Game) renderBelt(dst *core.Screen, vp viewport, snap *Snapshot) {
	cfg := g.session.Config()
	tallest := 0.0
	for _, s := range cfg.Cups.Sizes {
		tallest = math.Max(tallest, s.Height)
	}
	y := vp.cellY(cfg.Cups.Y+tallest/2) + 1

	period := cfg.Conveyor.TextureWidth / 2
	cellPx := vp.worldW / float64(vp.w)
	belt, stripe := g.glyph(AssetBelt), g.glyph(AssetBeltStripe)
	for col := 0; col < dst.Width(); col++ {
		r := belt
		if math.Mod(vp.worldX(col)-snap.ConveyorOffset+period*8, period) < cellPx {
			r = stripe
		}
		dst.SetColored(col, y, r, core.ColorBrown)
	}
}

func (g *Game) renderCup(dst *core.Screen, vp viewport, cup *CupView) {
	left := vp.cellX(cup.X - cup.Width/2)
	right := vp.cellX(cup.X + cup.Width/2)
	top := vp.cellY(cup.Y - cup.Height/2)
	bottom := vp.cellY(cup.Y + cup.Height/2)
	if right <= left {
		right = left + 1
	}
	if bottom <= top {
		bottom = top + 1
	}
	if right < 0 || left >= dst.Width() {
		return
	}

	color := core.ColorWhite
	switch {
	case cup.Flashing:
		color = core.ColorBrightRed
	case cup.Completed:
		color = core.ColorBrightGreen
	}

	for y := top; y < bottom; y++ {
		dst.SetColored(left, y, '│', color)
		dst.SetColored(right, y, '│', color)
	}
	dst.SetColored(left, bottom, '╰', color)
	dst.SetColored(right, bottom, '╯', color)
	for x := left + 1; x < right; x++ {
		dst.SetColored(x, bottom, '─', color)
	}

	// Fill from the bottom up in proportion to progress
	inner := bottom - top
	filled := core.Round(cup.Progress * float64(inner))
	fill := g.glyph(AssetCupFill)
	for i := 0; i < filled; i++ {
		y := bottom - 1 - i
		for x := left + 1; x < right; x++ {
			dst.SetColored(x, y, fill, core.ColorBrown)
		}
	}

	label := fmt.Sprintf("%d/%d", cup.Current, cup.Required)
	dst.DrawTextColored(left+1, top-1, label, color)
	name := cup.Name
	if w := right - left + 1; utf8.RuneCountInString(name) > w {
		name = string([]rune(name)[:w])
	}
	dst.DrawTextColored(left, top-2, name, core.ColorGray)
}

func (g *Game) renderHand(dst *core.Screen, vp viewport, snap *Snapshot) {
	x := vp.cellX(snap.HandX)
	y := vp.cellY(snap.HandY + g.session.Config().Hand.Height/2)

	hand := g.glyph(AssetHandEmpty)
	if snap.HandHasSugar {
		hand = g.glyph(AssetHand)
	}
	if snap.HandState == HandDropping {
		y++
	}
	dst.SetColored(x, y, hand, core.ColorOrange)
	if snap.HandHasSugar {
		dst.SetColored(x, y+1, g.glyph(AssetSugar), core.ColorCream)
	}
}

func (g *Game) renderCube(dst *core.Screen, vp viewport, cube *CubeView) {
	x, y := vp.cellX(cube.X), vp.cellY(cube.Y)
	switch cube.State {
	case CubeFalling:
		dst.SetColored(x, y, g.glyph(AssetSugar), core.ColorCream)
	case CubeSplashing:
		r := g.glyph(AssetSplash)
		dst.SetColored(x, y, r, core.ColorGray)
		if cube.Scale > 1.5 {
			dst.SetColored(x-1, y, r, core.ColorGray)
			dst.SetColored(x+1, y, r, core.ColorGray)
		}
	case CubeBouncing:
		dst.SetColored(x, y, g.glyph(AssetBounce), core.ColorRed)
	}
}

func (g *Game) renderOverlay(dst *core.Screen, snap *Snapshot) {
	var lines []string
	color := core.ColorBrightWhite

	switch snap.State {
	case StateMenu:
		lines = []string{
			"SWEET BARISTA",
			"",
			fmt.Sprintf("Level %d", snap.Level),
			"Drop sugar into every cup before time runs out.",
			"Too much sugar spoils a finished cup!",
			"",
			"SPACE to start",
		}
		color = core.ColorBrightYellow
	case StatePaused:
		lines = []string{"PAUSED", "", "P to resume"}
	case StateLevelComplete:
		lines = []string{
			fmt.Sprintf("Level %d complete!", snap.Level),
			fmt.Sprintf("Level score %d", snap.LevelScore),
			fmt.Sprintf("Total %d", snap.TotalScore),
			"",
			"SPACE for the next level",
		}
		color = core.ColorBrightGreen
	case StateLevelFailed:
		lines = []string{
			"Time's up!",
			fmt.Sprintf("%d of %d cups served", snap.CupsCompleted, snap.CupsNeeded),
			"",
			"SPACE to retry",
		}
		color = core.ColorBrightRed
	case StateGameComplete:
		lines = []string{
			"Every order served!",
			fmt.Sprintf("Final score %d", snap.TotalScore),
			"",
			"SPACE to play again",
		}
		color = core.ColorBrightYellow
	default:
		return
	}

	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}
	box := core.NewRect((dst.Width()-width-4)/2, (dst.Height()-len(lines)-2)/2, width+4, len(lines)+2)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+i, l, color)
	}
}
