package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/enemycore/common"
	"github.com/milk9111/enemycore/ecs/component"
	"github.com/milk9111/enemycore/encounter"
	"github.com/milk9111/enemycore/levels"
)

var (
	backgroundColor = color.RGBA{R: 24, G: 28, B: 40, A: 255}
	zoneFill        = color.RGBA{R: 255, G: 105, B: 180, A: 32}
	zoneStroke      = color.RGBA{R: 255, G: 105, B: 180, A: 160}
	visionColor     = color.RGBA{R: 255, G: 255, B: 255, A: 48}
	meleeColor      = color.RGBA{R: 255, G: 64, B: 64, A: 96}
)

func archetypeColor(a component.Archetype) color.Color {
	switch a {
	case component.FierceTooth:
		return colornames.Steelblue
	case component.SeashellPearl:
		return colornames.Goldenrod
	case component.PinkStar:
		return colornames.Hotpink
	default:
		return colornames.Lightgrey
	}
}

func stateColor(s component.StateID) color.Color {
	switch s {
	case component.StateChase:
		return colornames.Orange
	case component.StateAttackShoot, component.StateAttackBite:
		return colornames.Crimson
	case component.StateRecover:
		return colornames.Mediumpurple
	case component.StateReturn:
		return colornames.Lightseagreen
	default:
		return colornames.Lightgrey
	}
}

// renderTiles draws the level's solid tiles once into an offscreen image.
func renderTiles(lvl *levels.Level) *ebiten.Image {
	cs := lvl.CellSize
	img := ebiten.NewImage(int(float64(lvl.Width)*cs), int(float64(lvl.Height)*cs))
	for y, row := range lvl.Tiles {
		for x, code := range row {
			if !levels.IsSolidTile(code) {
				continue
			}
			vector.FillRect(img, float32(float64(x)*cs), float32(float64(y)*cs), float32(cs), float32(cs), colornames.Slategray, false)
			vector.StrokeRect(img, float32(float64(x)*cs), float32(float64(y)*cs), float32(cs), float32(cs), 1, colornames.Darkslategray, false)
		}
	}
	return img
}

func drawZones(screen *ebiten.Image, lvl *levels.Level) {
	for _, z := range lvl.Zones {
		vector.FillRect(screen, float32(z.X), float32(z.Y), float32(z.W), float32(z.H), zoneFill, false)
		vector.StrokeRect(screen, float32(z.X), float32(z.Y), float32(z.W), float32(z.H), 1, zoneStroke, false)
	}
}

func drawEnemy(screen *ebiten.Image, v encounter.EnemyView, debug bool) {
	x := v.Position.X - v.HalfWidth
	y := v.Position.Y - v.HalfHeight
	w, h := 2*v.HalfWidth, 2*v.HalfHeight

	if debug {
		vector.StrokeCircle(screen, float32(v.Position.X), float32(v.Position.Y), float32(v.VisionRange), 1, visionColor, true)
		vector.StrokeCircle(screen, float32(v.Position.X), float32(v.Position.Y), float32(v.MeleeRange), 1, meleeColor, true)
		drawPath(screen, v.Position, v.Path)
		if v.Estimate != nil {
			drawCross(screen, *v.Estimate, colornames.Yellow)
		}
	}

	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), archetypeColor(v.Archetype), false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, stateColor(v.State), false)

	eyeX := v.Position.X + v.HalfWidth*0.5
	if v.FacingLeft {
		eyeX = v.Position.X - v.HalfWidth*0.5
	}
	vector.FillRect(screen, float32(eyeX-2), float32(y+4), 4, 4, colornames.White, false)

	if v.MaxHealth > 0 {
		frac := common.Clamp(v.Health/v.MaxHealth, 0, 1)
		vector.FillRect(screen, float32(x), float32(y-6), float32(w), 3, colornames.Darkred, false)
		vector.FillRect(screen, float32(x), float32(y-6), float32(w*frac), 3, colornames.Limegreen, false)
	}

	if debug {
		ebitenutil.DebugPrintAt(screen, string(v.State), int(x), int(y)-20)
	}
}

func drawPath(screen *ebiten.Image, from common.Vec2, path []common.Vec2) {
	prev := from
	for _, wp := range path {
		vector.StrokeLine(screen, float32(prev.X), float32(prev.Y), float32(wp.X), float32(wp.Y), 1, colornames.Lightgreen, true)
		prev = wp
	}
}

func drawCross(screen *ebiten.Image, p common.Vec2, clr color.Color) {
	const r = 5
	vector.StrokeLine(screen, float32(p.X-r), float32(p.Y-r), float32(p.X+r), float32(p.Y+r), 2, clr, true)
	vector.StrokeLine(screen, float32(p.X-r), float32(p.Y+r), float32(p.X+r), float32(p.Y-r), 2, clr, true)
}

func drawPlayer(screen *ebiten.Image, p *Player) {
	b := p.Bounds()
	var clr color.Color = colornames.Mintcream
	switch {
	case !p.Alive():
		clr = colornames.Dimgray
	case p.hurtFlash > 0:
		clr = colornames.Red
	case p.SprintSuppressed():
		clr = colornames.Plum
	}
	vector.FillRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), clr, false)
}

func drawArsenal(screen *ebiten.Image, a *Arsenal) {
	for _, s := range a.shots {
		vector.FillCircle(screen, float32(s.position.X), float32(s.position.Y), 3, colornames.Yellow, true)
	}
	for _, g := range a.grenades {
		vector.FillCircle(screen, float32(g.position.X), float32(g.position.Y), 5, colornames.Olivedrab, true)
	}
	for _, e := range a.explosions {
		alpha := uint8(200 * e.frames / explosionFrames)
		vector.FillCircle(screen, float32(e.position.X), float32(e.position.Y), grenadeRadius, color.RGBA{R: 255, G: 140, B: 0, A: alpha}, true)
	}
}

func drawHUD(screen *ebiten.Image, g *Game) {
	msg := fmt.Sprintf("TPS: %.0f  t=%.1fs  HP: %.0f  enemies: %d  searches: %d",
		ebiten.ActualTPS(), g.enc.Now(), g.player.Health, len(g.views), g.enc.Planner().Searches())
	if g.player.SprintSuppressed() {
		msg += "  [sprint suppressed]"
	}
	if !g.player.Alive() {
		msg += "  YOU DIED (R to restart)"
	}
	if g.status != "" {
		msg += "\n" + g.status
	}
	ebitenutil.DebugPrint(screen, msg)
}
