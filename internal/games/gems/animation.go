package gems

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/gemduel/internal/match3"
)

// fall is one gem sliding down its column during a drop step.
type fall struct {
	col   int
	to    int
	tile  match3.Tile
	row   float32 // current interpolated row
	tween *gween.Tween
}

// animator plays back resolution steps one after another. Each step stays
// on screen for a fixed number of ticks; drop steps also move the falling
// gems along an eased path.
type animator struct {
	stepTicks int
	dropTicks int

	queue   []match3.Step
	current *match3.Step
	left    int // ticks left on current
	falls   []fall
}

func newAnimator(stepTicks, dropTicks int) *animator {
	return &animator{
		stepTicks: max(1, stepTicks),
		dropTicks: max(1, dropTicks),
	}
}

// push queues a step for playback.
func (a *animator) push(s match3.Step) {
	a.queue = append(a.queue, s)
}

// busy reports whether a step is playing or waiting.
func (a *animator) busy() bool {
	return a.current != nil || len(a.queue) > 0
}

// advance moves playback forward by one tick.
func (a *animator) advance() {
	if a.current == nil {
		if len(a.queue) == 0 {
			return
		}
		a.start(a.queue[0])
		a.queue = a.queue[1:]
	}

	for i := range a.falls {
		f := &a.falls[i]
		if f.tween != nil {
			row, done := f.tween.Update(1)
			f.row = row
			if done {
				f.tween = nil
			}
		}
	}

	a.left--
	if a.left <= 0 {
		a.current = nil
		a.falls = nil
	}
}

func (a *animator) start(s match3.Step) {
	a.current = &s
	a.left = a.stepTicks
	a.falls = nil

	if s.Kind != match3.StepDrop || len(s.Drops) == 0 {
		return
	}
	a.left = a.dropTicks
	for _, d := range s.Drops {
		a.falls = append(a.falls, fall{
			col:   d.Col,
			to:    d.ToRow,
			tile:  d.Tile,
			row:   float32(d.FromRow),
			tween: gween.New(float32(d.FromRow), float32(d.ToRow), float32(a.dropTicks), ease.OutQuad),
		})
	}
}

// step returns the step on screen, or nil when idle.
func (a *animator) step() *match3.Step {
	return a.current
}

// override returns what an in-flight drop shows at (row, col). Falling
// gems are drawn at their interpolated row and their destinations read as
// empty until they land. ok is false when no drop touches the cell.
func (a *animator) override(row, col int) (t match3.Tile, ok bool) {
	hidden := false
	for _, f := range a.falls {
		if f.col != col {
			continue
		}
		if int(f.row+0.5) == row {
			return f.tile, true
		}
		if f.to == row && f.tween != nil {
			hidden = true
		}
	}
	return match3.Empty, hidden
}
