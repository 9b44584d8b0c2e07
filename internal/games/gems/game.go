// Package gems adapts the match-three engine to the terminal platform. It
// owns the cursor used to pick swaps, the CPU that can take the second
// seat, playback of resolution steps and rendering into a core.Screen.
package gems

import (
	"fmt"

	"github.com/vovakirdan/gemduel/internal/config"
	"github.com/vovakirdan/gemduel/internal/core"
	"github.com/vovakirdan/gemduel/internal/match3"
	"github.com/vovakirdan/gemduel/internal/multiplayer"
	"github.com/vovakirdan/gemduel/internal/registry"
)

// Variant selects the rules and who plays the second seat.
type Variant int

const (
	// VariantDuel is a hot-seat score race.
	VariantDuel Variant = iota
	// VariantCPU is a score race against the computer.
	VariantCPU
	// VariantMoves is the hot-seat game with a shared move budget.
	VariantMoves
)

// Publisher receives the live state of a game, typically to forward it to
// spectators.
type Publisher interface {
	PublishStep(match multiplayer.MatchID, s match3.Step)
	PublishTurn(match multiplayer.MatchID, out match3.TurnOutcome)
	PublishSnapshot(match multiplayer.MatchID, snap match3.Snapshot)
}

// Game implements registry.Game for the gem duel.
type Game struct {
	variant Variant
	cfg     config.GemsConfig

	engine *match3.Engine
	match  *multiplayer.Match
	cpu    *CPU
	anim   *animator
	err    error // engine stalled or could not deal

	cursor   match3.Cell
	selected match3.Cell
	hasSel   bool
	cpuWait  int

	message      string
	messageColor core.Color
	messageTicks int

	difficulty *config.DifficultyPreset // overrides the package preset

	tick     uint64
	tickRate int
	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

// Package-level settings applied on the next Reset. The CLI sets them
// before creating a game.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	publisher        Publisher
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back
// to the config as loaded.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficultyPreset(preset)
	if err != nil {
		p = config.DifficultyFixed
	}
	difficultyPreset = p
}

// SetPublisher installs the receiver of live game events. nil disables
// publishing.
func SetPublisher(p Publisher) {
	publisher = p
}

// SetDifficulty sets the preset used by this game from the next Reset on,
// overriding SetDifficultyPreset.
func (g *Game) SetDifficulty(preset config.DifficultyPreset) {
	g.difficulty = &preset
}

// New creates a hot-seat duel.
func New() *Game {
	return &Game{variant: VariantDuel}
}

// NewVsCPU creates a duel against the computer.
func NewVsCPU() *Game {
	return &Game{variant: VariantCPU}
}

// NewMoves creates a hot-seat game with a shared move budget.
func NewMoves() *Game {
	return &Game{variant: VariantMoves}
}

func init() {
	registry.Register("gems", func() registry.Game {
		return New()
	})
	registry.Register("gems_cpu", func() registry.Game {
		return NewVsCPU()
	})
	registry.Register("gems_moves", func() registry.Game {
		return NewMoves()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	switch g.variant {
	case VariantCPU:
		return "gems_cpu"
	case VariantMoves:
		return "gems_moves"
	default:
		return "gems"
	}
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.variant {
	case VariantCPU:
		return "Gem Duel (vs CPU)"
	case VariantMoves:
		return "Gem Duel (Move Limit)"
	default:
		return "Gem Duel"
	}
}

// Summary returns a one-line description for listings.
func (g *Game) Summary() string {
	switch g.variant {
	case VariantCPU:
		return "Race the computer to the winning score"
	case VariantMoves:
		return "Two players share a move budget to reach the target"
	default:
		return "Two players race to the winning score on one board"
	}
}

// Mode returns the engine rules used by the variant.
func (g *Game) Mode() match3.Mode {
	if g.variant == VariantMoves {
		return match3.ModeMoves
	}
	return match3.ModeDuel
}

// MatchMode returns who sits in the second seat.
func (g *Game) MatchMode() multiplayer.MatchMode {
	if g.variant == VariantCPU {
		return multiplayer.MatchModeVsCPU
	}
	return multiplayer.MatchModeHotSeat
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.tickRate = max(1, rc.TickRate)
	g.tick = 0
	g.paused = false
	g.err = nil
	g.hasSel = false
	g.cpuWait = 0
	g.message = ""
	g.messageTicks = 0

	cfg, err := config.LoadGems(configPath)
	if err != nil {
		cfg = config.DefaultGemsConfig()
	}
	preset := difficultyPreset
	if g.difficulty != nil {
		preset = *g.difficulty
	}
	if !config.IsFixedPreset(preset) {
		config.ApplyGemsPreset(&cfg, preset)
	}

	engineCfg, cfgErr := cfg.EngineConfig(g.Mode(), rc.Seed)
	if cfgErr != nil {
		cfg = config.DefaultGemsConfig()
		engineCfg, _ = cfg.EngineConfig(g.Mode(), rc.Seed)
	}
	g.cfg = cfg
	if cfgErr != nil {
		g.flash(fmt.Sprintf("Config rejected, using defaults: %v", cfgErr), core.ColorYellow)
	}
	g.anim = newAnimator(cfg.Animation.StepTicks, cfg.Animation.DropTicks)
	g.match = multiplayer.NewMatch("", g.MatchMode())

	g.cpu = nil
	if g.variant == VariantCPU {
		g.cpu = NewCPU(rc.Seed+1, cfg.CPU.Skill)
	}

	g.engine, err = match3.New(engineCfg)
	if err != nil {
		g.err = err
		return
	}
	g.engine.Observe(g.onStep)

	rows, cols := g.engine.Board().Dimensions()
	g.cursor = match3.Cell{Row: rows / 2, Col: cols / 2}
	g.checkScreenSize()

	if publisher != nil {
		publisher.PublishSnapshot(g.match.ID(), g.engine.Snapshot())
	}
}

// onStep receives every resolution step from the engine.
func (g *Game) onStep(s match3.Step) {
	g.anim.push(s)
	if publisher != nil {
		publisher.PublishStep(g.match.ID(), s)
	}
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	rows, cols := g.engine.Board().Dimensions()
	minW := max(cols*cellWidth+2, 44)
	minH := rows + hudHeight + 4
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Resize follows a terminal resize without restarting the game.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	if g.engine != nil {
		g.checkScreenSize()
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.messageTicks > 0 {
		g.messageTicks--
	}

	if g.engine == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.over() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.anim.busy() {
		g.anim.advance()
		return core.StepResult{State: g.State(), Busy: g.anim.busy()}
	}

	if g.over() {
		return core.StepResult{State: g.State()}
	}

	if g.cpuTurn() {
		g.stepCPU()
	} else {
		g.handleInput(in)
	}

	return core.StepResult{State: g.State(), Busy: g.anim.busy()}
}

// over reports whether the engine has finished or failed.
func (g *Game) over() bool {
	return g.err != nil || g.engine.Status().Over()
}

// cpuTurn reports whether the computer moves next.
func (g *Game) cpuTurn() bool {
	return g.cpu != nil && g.engine.ActivePlayer() == core.Player2
}

// stepCPU waits out the think delay, then plays the CPU's move.
func (g *Game) stepCPU() {
	g.cpuWait++
	if g.cpuWait < g.cfg.CPU.ThinkTicks {
		return
	}
	g.cpuWait = 0

	m, ok := g.cpu.Choose(g.engine.Board())
	if !ok {
		return
	}
	g.cursor = m.B
	g.submit(m.A, m.B)
}

// submit plays a swap for the active player.
func (g *Game) submit(a, b match3.Cell) {
	player := g.engine.ActivePlayer()
	out, err := g.engine.SubmitMove(player, a, b)
	if err != nil {
		g.err = err
		g.flash("The board could not be settled", core.ColorRed)
		return
	}

	if !out.Accepted {
		g.flash(rejectMessage(out.Reason), core.ColorRed)
		return
	}

	g.hasSel = false
	switch {
	case out.Reshuffled:
		g.flash(fmt.Sprintf("%s +%d  No moves left, board reshuffled", player, out.Points), core.ColorCyan)
	case out.Passes > 1:
		g.flash(fmt.Sprintf("%s +%d  Cascade x%d", player, out.Points, out.Passes), core.ColorBrightYellow)
	default:
		g.flash(fmt.Sprintf("%s +%d", player, out.Points), core.ColorGreen)
	}

	if publisher != nil {
		publisher.PublishTurn(g.match.ID(), out)
		publisher.PublishSnapshot(g.match.ID(), g.engine.Snapshot())
	}
}

// flash shows a message in the HUD for the configured number of ticks.
func (g *Game) flash(msg string, c core.Color) {
	g.message = msg
	g.messageColor = c
	g.messageTicks = max(1, g.cfg.Animation.FlashTicks)
}

func rejectMessage(r match3.Reason) string {
	switch r {
	case match3.ReasonNoMatch:
		return "That swap makes no match"
	case match3.ReasonNotAdjacent:
		return "Pick a gem next to the selected one"
	case match3.ReasonOutOfBounds:
		return "Outside the board"
	case match3.ReasonNotYourTurn:
		return "Not your turn"
	case match3.ReasonGameOver:
		return "Game over"
	default:
		return r.String()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{GameOver: true}
	}
	return core.GameState{
		Score:    g.engine.Scores().Max(),
		GameOver: g.over() && !g.anim.busy(),
		Paused:   g.paused || g.tooSmall,
	}
}
