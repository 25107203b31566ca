package tui

import (
	"github.com/vovakirdan/merge2048/internal/core"
	"github.com/vovakirdan/merge2048/internal/engine"
)

// Animation lengths in ticks.
const (
	slideTicks = 8 // ~133ms at 60fps
	popTicks   = 6 // ~100ms at 60fps
)

type animPhase int

const (
	phaseNone animPhase = iota
	phaseSlide
	phasePop
)

// tileAnim moves one tile between two cells.
type tileAnim struct {
	tile         engine.Tile
	fromX, fromY int
	toX, toY     int
	progress     float64 // 0.0 → 1.0
}

// position calculates the current board position during the slide.
func (a tileAnim) position() (x, y float64) {
	t := easeOutQuad(a.progress)
	x = float64(a.fromX) + (float64(a.toX)-float64(a.fromX))*t
	y = float64(a.fromY) + (float64(a.toY)-float64(a.fromY))*t
	return x, y
}

// animation plays the transition between two boards: tiles slide to their
// new cells, then merged and spawned tiles pop.
type animation struct {
	phase  animPhase
	ticks  int
	slides []tileAnim
	pops   []engine.PlacedTile
	target engine.Board
}

// newAnimation builds the transition from prev to next using tile ids.
func newAnimation(prev, next engine.Board) *animation {
	a := &animation{phase: phaseSlide, target: next}

	for _, tr := range engine.Diff(prev, next) {
		switch tr.Kind {
		case engine.TransitionSlid:
			a.slides = append(a.slides, slide(tr.Tile, tr.From, tr.To))
		case engine.TransitionMerged:
			// Both parents carried the previous exponent.
			parent := engine.Tile{Value: tr.Tile.Value - 1}
			a.slides = append(a.slides,
				slide(parent, tr.From, tr.To),
				slide(parent, tr.SacrificeFrom, tr.To),
			)
			a.pops = append(a.pops, engine.PlacedTile{Tile: tr.Tile, At: tr.To})
		case engine.TransitionSpawned:
			a.pops = append(a.pops, engine.PlacedTile{Tile: tr.Tile, At: tr.To})
		}
	}

	if len(a.slides) == 0 {
		a.phase = phasePop
		if len(a.pops) == 0 {
			a.phase = phaseNone
		}
	}
	return a
}

func slide(t engine.Tile, from, to engine.Coord) tileAnim {
	return tileAnim{tile: t, fromX: from.X, fromY: from.Y, toX: to.X, toY: to.Y}
}

// running reports whether frames remain.
func (a *animation) running() bool {
	return a != nil && a.phase != phaseNone
}

// step advances the animation by one tick.
// Returns true if animation is still in progress.
func (a *animation) step() bool {
	if !a.running() {
		return false
	}

	a.ticks++

	duration := slideTicks
	if a.phase == phasePop {
		duration = popTicks
	}

	progress := float64(a.ticks) / float64(duration)
	if progress > 1.0 {
		progress = 1.0
	}
	for i := range a.slides {
		a.slides[i].progress = progress
	}

	if a.ticks >= duration {
		return a.finishPhase()
	}
	return true
}

// finishPhase moves from slide to pop, or ends the animation.
func (a *animation) finishPhase() bool {
	if a.phase == phaseSlide && len(a.pops) > 0 {
		a.phase = phasePop
		a.ticks = 0
		return true
	}
	a.phase = phaseNone
	return false
}

// draw renders the current frame.
func (a *animation) draw(dst *core.Screen, l boardLayout) {
	switch a.phase {
	case phaseSlide:
		drawGrid(dst, l)
		for _, s := range a.slides {
			x, y := s.position()
			drawTile(dst, l, x, y, s.tile, core.TileColor(s.tile.Value))
		}
	case phasePop:
		drawBoard(dst, l, a.target)
		for _, p := range a.pops {
			drawTile(dst, l, float64(p.At.X), float64(p.At.Y), p.Tile, core.ColorBrightWhite)
		}
	default:
		drawBoard(dst, l, a.target)
	}
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}
