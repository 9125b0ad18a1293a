package rush

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-rush/internal/config"
	"github.com/vovakirdan/lane-rush/internal/core"
	"github.com/vovakirdan/lane-rush/internal/registry"
	"github.com/vovakirdan/lane-rush/internal/storage"
)

// GameID is the registry and score-storage id of the runner.
const GameID = "rush"

func init() {
	registry.Register(GameID, func() registry.Game {
		return NewGame()
	})
}

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	character        = DefaultSkin
	engineLogger     *log.Logger
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back to
// the config file.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// DifficultyPreset returns the preset applied to new games.
func DifficultyPreset() config.DifficultyPreset {
	return difficultyPreset
}

// SetCharacter sets the skin new games start with.
func SetCharacter(id string) {
	if _, ok := LookupSkin(id); ok {
		character = id
	}
}

// SetLogger sets the logger handed to engines created by Reset.
func SetLogger(l *log.Logger) {
	engineLogger = l
}

// Game adapts the Engine to the fixed-step loop of the front ends.
type Game struct {
	engine  *Engine
	runtime core.RuntimeConfig
	notices []core.Notice
	unsub   func()

	// Per-instance choices; when fixed is false the package defaults apply.
	fixed  bool
	skin   string
	preset config.DifficultyPreset
}

// NewGame creates an unstarted game using the package defaults. Reset must
// be called before Step.
func NewGame() *Game {
	return &Game{}
}

// NewGameWith creates a game with its own skin and difficulty. Used by
// front ends that host several players in one process.
func NewGameWith(skin string, preset config.DifficultyPreset) *Game {
	if _, ok := LookupSkin(skin); !ok {
		skin = DefaultSkin
	}
	return &Game{fixed: true, skin: skin, preset: preset}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Lane Rush"
}

// Engine exposes the underlying engine.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Reset builds a fresh engine in the NotStarted phase.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadRush(configPath)
	if err != nil {
		if engineLogger != nil {
			engineLogger.Warn("using default config", "err", err)
		}
		cfg = config.DefaultRushConfig()
	}
	skin, preset := character, difficultyPreset
	if g.fixed {
		skin, preset = g.skin, g.preset
	}
	config.ApplyRushPreset(&cfg, preset)
	g.preset = preset

	if g.engine != nil {
		skin = g.engine.Snapshot().Skin
		g.engine.Close()
	}

	var opts []Option
	if engineLogger != nil {
		opts = append(opts, WithLogger(engineLogger))
	}
	g.engine = New(cfg, runtime.Seed, opts...)
	g.engine.SelectCharacter(skin)
	g.notices = nil
	g.unsub = g.engine.Subscribe(g.onEvent)
}

// onEvent turns engine events into toast notices.
func (g *Game) onEvent(ev Event) {
	var n core.Notice
	switch ev := ev.(type) {
	case GameStarted:
		n = core.Notice{Level: core.NoticeSuccess, Text: "Game started! Good luck!"}
	case GamePaused:
		n = core.Notice{Level: core.NoticeInfo, Text: "Game paused"}
	case GameResumed:
		n = core.Notice{Level: core.NoticeInfo, Text: "Game resumed"}
	case GameReset:
		n = core.Notice{Level: core.NoticeInfo, Text: "Game reset. Ready to play again!"}
	case GameOver:
		n = core.Notice{Level: core.NoticeError, Text: fmt.Sprintf("Game over! Your final score: %d", ev.FinalScore)}
	case Hit:
		if ev.LivesRemaining == 0 {
			return
		}
		n = core.Notice{Level: core.NoticeWarning, Text: fmt.Sprintf("Ouch! Lives remaining: %d", ev.LivesRemaining)}
	case PowerUpActivated:
		n = core.Notice{Level: core.NoticeSuccess, Text: activationText(ev.Kind)}
	case PowerUpExpired:
		n = core.Notice{Level: core.NoticeInfo, Text: powerUpName(ev.Kind) + " wore off"}
	case MilestoneReached:
		n = core.Notice{Level: core.NoticeSuccess, Text: fmt.Sprintf("Milestone! %d points", ev.Score)}
	default:
		return
	}
	g.notices = append(g.notices, n)
}

func activationText(k Kind) string {
	switch k {
	case KindMagnet:
		return "Magnet activated! Coins are attracted to you!"
	case KindShield:
		return "Shield activated! You're invincible for a short time!"
	case KindSpeedBoost:
		return "Speed boost activated! Running faster!"
	default:
		return "Power-up activated!"
	}
}

func powerUpName(k Kind) string {
	switch k {
	case KindMagnet:
		return "Magnet"
	case KindShield:
		return "Shield"
	case KindSpeedBoost:
		return "Speed boost"
	default:
		return "Power-up"
	}
}

// Step applies one frame of input and advances the engine by one platform
// tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.engine == nil {
		g.Reset(g.runtime)
	}
	e := g.engine

	if in.Has(core.ActionRestart) {
		e.Reset()
	}
	if in.Has(core.ActionStart) {
		e.Start()
	}
	if in.Has(core.ActionPause) {
		e.TogglePause()
	}
	if in.Has(core.ActionNextSkin) {
		e.SelectCharacter(NextSkin(e.Snapshot().Skin))
	}
	if in.Has(core.ActionLeft) {
		e.MoveLeft()
	}
	if in.Has(core.ActionRight) {
		e.MoveRight()
	}
	if in.Has(core.ActionJump) {
		e.Jump()
	}
	if in.Has(core.ActionSlide) {
		e.Slide()
	}
	for _, sw := range in.Swipes {
		e.Swipe(sw.DX, sw.DY)
	}

	e.Advance(g.tickDuration())

	res := core.StepResult{State: g.State(), Notices: g.notices}
	g.notices = nil
	return res
}

func (g *Game) tickDuration() time.Duration {
	rate := g.runtime.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// RunRecord summarizes the current run for score storage.
func (g *Game) RunRecord() storage.RunRecord {
	if g.engine == nil {
		return storage.RunRecord{GameID: GameID}
	}
	snap := g.engine.Snapshot()
	score := snap.Score
	if snap.Phase == PhaseOver {
		score = snap.FinalScore
	}
	// Without a preset the run uses the config file's difficulty as is.
	difficulty := string(g.preset)
	if difficulty == "" {
		difficulty = "default"
	}
	return storage.RunRecord{
		GameID:     GameID,
		Score:      score,
		Skin:       snap.Skin,
		Coins:      snap.Stats.CoinsCollected,
		PowerUps:   snap.Stats.PowerUpsCollected,
		Hits:       snap.Stats.Hits,
		Duration:   snap.GameTime,
		Difficulty: difficulty,
		Seed:       g.engine.Seed(),
	}
}

// State returns the platform view of the session.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	s := &g.engine.session
	return core.GameState{
		Score:    s.Score,
		Lives:    s.Character.Lives,
		Started:  s.Phase == PhaseRunning || s.Phase == PhasePaused,
		GameOver: s.Phase == PhaseOver,
		Paused:   s.Phase == PhasePaused,
	}
}

// Close releases the engine.
func (g *Game) Close() {
	if g.unsub != nil {
		g.unsub()
		g.unsub = nil
	}
	if g.engine != nil {
		g.engine.Close()
	}
}
