package rush

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-rush/internal/config"
)

// Engine owns one Session and the scheduler that drives it. It is not safe
// for concurrent use; front ends serialize commands onto a single goroutine.
type Engine struct {
	cfg        config.RushConfig
	seed       int64
	rng        *rand.Rand
	sched      *Scheduler
	difficulty *config.DifficultyManager
	events     bus
	logger     *log.Logger

	session     Session
	actionTimer TimerID
	powerTimer  TimerID
	closed      bool
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for lifecycle transitions.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine in the NotStarted phase. The config is assumed to
// have passed Validate.
func New(cfg config.RushConfig, seed int64, opts ...Option) *Engine {
	e := &Engine{
		cfg:        cfg,
		seed:       seed,
		rng:        rand.New(rand.NewSource(seed)),
		sched:      NewScheduler(),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.session.Character.Skin = DefaultSkin
	e.resetSession()
	return e
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.RushConfig {
	return e.cfg
}

// Seed returns the random seed.
func (e *Engine) Seed() int64 {
	return e.seed
}

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() Phase {
	return e.session.Phase
}

// Now returns the elapsed game time of the current run.
func (e *Engine) Now() time.Duration {
	return e.sched.Now()
}

// Subscribe registers fn for every event. The returned func unsubscribes.
func (e *Engine) Subscribe(fn func(Event)) func() {
	if e.closed {
		return func() {}
	}
	return e.events.subscribe(fn)
}

func (e *Engine) emit(ev Event) {
	e.events.emit(ev)
}

func (e *Engine) movementInterval() time.Duration {
	return ms(e.cfg.Timing.MovementIntervalMs)
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// resetSession restores the not-started baseline and cancels all timers.
// The skin and the entity id counter survive.
func (e *Engine) resetSession() {
	e.sched.Reset()
	e.actionTimer = 0
	e.powerTimer = 0

	prev := e.session
	e.session = Session{
		Phase: PhaseNotStarted,
		Character: Character{
			Lane:   LaneCenter,
			Action: ActionGrounded,
			Lives:  e.cfg.Gameplay.Lives,
			Skin:   prev.Character.Skin,
		},
		BaseSpeed:   e.difficulty.Speed(e.cfg.Speed.Base, 0, 0),
		BoostFactor: 1.0,
		nextID:      prev.nextID,
	}
}

// Start begins a run from NotStarted or Over. Starting from Over resets
// the session first.
func (e *Engine) Start() {
	if e.closed {
		return
	}
	switch e.session.Phase {
	case PhaseNotStarted:
	case PhaseOver:
		e.resetSession()
	default:
		return
	}

	e.session.Phase = PhaseRunning
	e.sched.every(e.movementInterval(), classMovement, e.movementTick)
	e.sched.every(ms(e.cfg.Spawn.Obstacles.IntervalMs), classSpawner, func() { e.spawn(FamilyObstacle) })
	e.sched.every(ms(e.cfg.Spawn.Coins.IntervalMs), classSpawner, func() { e.spawn(FamilyCoin) })
	e.sched.every(ms(e.cfg.Spawn.PowerUps.IntervalMs), classSpawner, func() { e.spawn(FamilyPowerUp) })

	e.logger.Debug("game started", "seed", e.seed, "lives", e.session.Character.Lives)
	e.emit(GameStarted{})
}

// Pause freezes a running game.
func (e *Engine) Pause() {
	if e.closed || e.session.Phase != PhaseRunning {
		return
	}
	e.session.Phase = PhasePaused
	e.sched.Interrupt()
	e.logger.Debug("game paused", "time", e.sched.Now())
	e.emit(GamePaused{})
}

// Resume continues a paused game.
func (e *Engine) Resume() {
	if e.closed || e.session.Phase != PhasePaused {
		return
	}
	e.session.Phase = PhaseRunning
	e.logger.Debug("game resumed", "time", e.sched.Now())
	e.emit(GameResumed{})
}

// TogglePause pauses a running game or resumes a paused one.
func (e *Engine) TogglePause() {
	switch e.session.Phase {
	case PhaseRunning:
		e.Pause()
	case PhasePaused:
		e.Resume()
	}
}

// EndGame finishes a running or paused game and records the final score.
func (e *Engine) EndGame() {
	if e.closed {
		return
	}
	if e.session.Phase != PhaseRunning && e.session.Phase != PhasePaused {
		return
	}
	e.sched.CancelAll()
	e.actionTimer = 0
	e.powerTimer = 0

	e.session.Phase = PhaseOver
	e.session.FinalScore = e.session.Score
	e.logger.Debug("game over", "score", e.session.FinalScore, "time", e.sched.Now())
	e.emit(GameOver{FinalScore: e.session.FinalScore})
}

// Reset returns the session to the NotStarted baseline from any phase.
func (e *Engine) Reset() {
	if e.closed {
		return
	}
	e.resetSession()
	e.logger.Debug("game reset")
	e.emit(GameReset{})
}

// Close cancels all timers and detaches subscribers. Every later command is
// ignored.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.sched.CancelAll()
	e.actionTimer = 0
	e.powerTimer = 0
	e.events.clear()
	e.closed = true
}

// Advance moves game time forward by dt. Time only passes while Running.
func (e *Engine) Advance(dt time.Duration) {
	if e.closed || e.session.Phase != PhaseRunning {
		return
	}
	e.sched.Advance(dt)
}

// Tick advances n movement intervals.
func (e *Engine) Tick(n int) {
	if n <= 0 {
		return
	}
	e.Advance(time.Duration(n) * e.movementInterval())
}

// movementTick ramps the base speed, moves every entity and resolves
// collisions, all within one scheduler event.
func (e *Engine) movementTick() {
	s := &e.session
	s.MovementTicks++
	if base := e.difficulty.Speed(e.cfg.Speed.Base, s.Score, s.MovementTicks); base > s.BaseSpeed {
		s.BaseSpeed = base
	}
	e.moveEntities()
	e.detectCollisions()
}
