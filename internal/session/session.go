// Package session owns the per-session mutable state of the analysis
// core: smoothing state, repetition state machines, the plank hold
// timer, and the event fan-out to collaborators. A single mutex
// serialises the two tick sources (the per-frame callback from the
// pose estimator and the wall-clock tick loop).
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fitmotion/repcore/internal/exercise"
	"github.com/fitmotion/repcore/internal/pose"
	"github.com/fitmotion/repcore/internal/timeutil"
)

// DefaultTickInterval is the wall-clock tick period for plank elapsed
// time updates (~10 Hz).
const DefaultTickInterval = 100 * time.Millisecond

// StatsRecorder is the external stats collaborator. Implementations
// must tolerate being called from the session goroutine holding no
// session lock guarantees beyond serialisation.
type StatsRecorder interface {
	AddExerciseCount(ex exercise.Exercise, n int) error
	AddPlankTime(d time.Duration) error
}

// Event handlers. Handlers are invoked after the session mutex is
// released, in the order events occurred.
type (
	RepetitionHandler   func(ex exercise.Exercise, count int)
	FormStatusHandler   func(ex exercise.Exercise, valid bool, fb exercise.Feedback)
	PlankElapsedHandler func(elapsed time.Duration)
)

// Config holds session tuning.
type Config struct {
	TickInterval   time.Duration
	SmoothingAlpha float64
	Pushup         exercise.PushupConfig
	Squat          exercise.SquatConfig
	Plank          exercise.PlankConfig
}

// DefaultConfig returns production-default session tuning.
func DefaultConfig() Config {
	return Config{
		TickInterval:   DefaultTickInterval,
		SmoothingAlpha: pose.DefaultSmoothingAlpha,
		Pushup:         exercise.DefaultPushupConfig(),
		Squat:          exercise.DefaultSquatConfig(),
		Plank:          exercise.DefaultPlankConfig(),
	}
}

// Snapshot is a point-in-time copy of session state, safe to hand to
// API handlers.
type Snapshot struct {
	SessionID    string                    `json:"session_id"`
	Exercise     exercise.Exercise         `json:"exercise"`
	Running      bool                      `json:"running"`
	Paused       bool                      `json:"paused"`
	Phase        exercise.Phase            `json:"phase"`
	Counts       map[exercise.Exercise]int `json:"counts"`
	PlankMillis  int64                     `json:"plank_ms"`
	LastFeedback exercise.Feedback         `json:"last_feedback"`
}

// Manager drives the analysis core for one user session.
type Manager struct {
	mu    sync.Mutex
	id    string
	clock timeutil.Clock
	stats StatsRecorder
	cfg   Config

	smoother *pose.Smoother
	pushup   *exercise.PushupAnalyzer
	squat    *exercise.SquatAnalyzer
	plank    *exercise.PlankAnalyzer

	current   exercise.Exercise
	repStates map[exercise.Exercise]*exercise.RepState
	timer     PlankTimer

	running        bool
	paused         bool
	plankFormValid bool
	lastFeedback   exercise.Feedback

	onRepetition   RepetitionHandler
	onFormStatus   FormStatusHandler
	onPlankElapsed PlankElapsedHandler

	stopCh chan struct{}
	doneCh chan struct{}
	loopUp bool
}

// NewManager creates a session manager. stats may be nil, in which
// case rep counts and plank time are not persisted.
func NewManager(clock timeutil.Clock, stats StatsRecorder, cfg Config) *Manager {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	return &Manager{
		id:       uuid.New().String(),
		clock:    clock,
		stats:    stats,
		cfg:      cfg,
		smoother: pose.NewSmoother(cfg.SmoothingAlpha),
		pushup:   exercise.NewPushupAnalyzer(cfg.Pushup),
		squat:    exercise.NewSquatAnalyzer(cfg.Squat),
		plank:    exercise.NewPlankAnalyzer(cfg.Plank),
		current:  exercise.Pushup,
		repStates: map[exercise.Exercise]*exercise.RepState{
			exercise.Pushup: exercise.NewRepState(),
			exercise.Squat:  exercise.NewRepState(),
		},
	}
}

// ID returns the session identifier.
func (m *Manager) ID() string { return m.id }

// SetRepetitionHandler registers the rep-counted event handler.
func (m *Manager) SetRepetitionHandler(h RepetitionHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onRepetition = h
}

// SetFormStatusHandler registers the per-frame form status handler.
func (m *Manager) SetFormStatusHandler(h FormStatusHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onFormStatus = h
}

// SetPlankElapsedHandler registers the elapsed-time update handler.
func (m *Manager) SetPlankElapsedHandler(h PlankElapsedHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onPlankElapsed = h
}

// Start begins (or restarts) the session for the given exercise. All
// per-session state is cleared first.
func (m *Manager) Start(ex exercise.Exercise) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.resetStateLocked()
	m.current = ex
	m.running = true
	m.paused = false
}

// Exercise returns the currently selected exercise.
func (m *Manager) Exercise() exercise.Exercise {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// ProcessFrame feeds one raw frame from the pose collaborator through
// smoothing, the selected analyzer and its state machine. It is a
// no-op while the session is stopped or paused.
func (m *Manager) ProcessFrame(raw pose.Frame) {
	m.mu.Lock()

	if !m.running || m.paused {
		m.mu.Unlock()
		return
	}

	now := m.clock.Now()
	smoothed := m.smoother.Smooth(raw)

	ex := m.current
	var result exercise.Result
	var repCount int
	var repEvent bool

	switch ex {
	case exercise.Pushup:
		st := m.repStates[exercise.Pushup]
		result, repEvent = m.pushup.Analyze(&smoothed, st)
		repCount = st.Count
	case exercise.Squat:
		st := m.repStates[exercise.Squat]
		result, repEvent = m.squat.Analyze(&smoothed, st)
		repCount = st.Count
	case exercise.Plank:
		result = m.plank.Analyze(&smoothed)
		m.plankFormValid = result.Valid
		m.syncPlankCountingLocked(now)
	}

	fb := exercise.Synthesize(ex, result)
	m.lastFeedback = fb

	if repEvent && m.stats != nil {
		if err := m.stats.AddExerciseCount(ex, 1); err != nil {
			log.Printf("session %s: failed to record %s rep: %v", m.id, ex, err)
		}
	}

	onRep := m.onRepetition
	onForm := m.onFormStatus
	m.mu.Unlock()

	if repEvent && onRep != nil {
		onRep(ex, repCount)
	}
	if onForm != nil {
		onForm(ex, result.Valid, fb)
	}
}

// Pause suspends the session: frames are ignored and plank elapsed
// time freezes until Resume.
func (m *Manager) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running || m.paused {
		return
	}
	m.paused = true
	m.syncPlankCountingLocked(m.clock.Now())
}

// Resume lifts a user pause. Plank counting restarts only once the
// form is observed valid again (or immediately, if the form was valid
// when the pause began).
func (m *Manager) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running || !m.paused {
		return
	}
	m.paused = false
	m.syncPlankCountingLocked(m.clock.Now())
}

// Stop ends the run: pending plank time is flushed exactly once and
// frame processing stops. The session can be started again with Start.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}
	m.flushPlankLocked(m.clock.Now())
	m.running = false
}

// Reset flushes pending plank time and clears all per-session state:
// counters to zero, baselines and smoothing state discarded, timer
// zeroed. The running/paused flags are preserved.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetStateLocked()
}

// SwitchExercise flushes pending plank time, clears per-session state
// and selects the new exercise.
func (m *Manager) SwitchExercise(ex exercise.Exercise) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ex == m.current {
		return
	}
	m.resetStateLocked()
	m.current = ex
}

// Snapshot returns a copy of the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := make(map[exercise.Exercise]int, len(m.repStates))
	for ex, st := range m.repStates {
		counts[ex] = st.Count
	}
	phase := exercise.PhaseUp
	if st, ok := m.repStates[m.current]; ok {
		phase = st.Phase
	}

	return Snapshot{
		SessionID:    m.id,
		Exercise:     m.current,
		Running:      m.running,
		Paused:       m.paused,
		Phase:        phase,
		Counts:       counts,
		PlankMillis:  m.timer.Elapsed().Milliseconds(),
		LastFeedback: m.lastFeedback,
	}
}

// Run drives the wall-clock tick loop on the injected clock. It blocks
// until the context is cancelled or Stop is signalled through ctx; on
// exit any pending plank time is flushed.
func (m *Manager) Run(ctx context.Context) error {
	m.mu.Lock()
	if m.loopUp {
		m.mu.Unlock()
		return nil
	}
	m.loopUp = true
	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})
	m.mu.Unlock()

	defer func() {
		close(m.doneCh)
		m.mu.Lock()
		m.loopUp = false
		m.mu.Unlock()
	}()

	ticker := m.clock.NewTicker(m.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.Stop()
			return nil
		case <-m.stopCh:
			m.Stop()
			return nil
		case now := <-ticker.C():
			m.tick(now)
		}
	}
}

// StopLoop requests the tick loop to exit and waits for it to finish
// flushing. Safe to call multiple times.
func (m *Manager) StopLoop() {
	m.mu.Lock()
	if !m.loopUp {
		m.mu.Unlock()
		return
	}
	select {
	case <-m.stopCh:
	default:
		close(m.stopCh)
	}
	done := m.doneCh
	m.mu.Unlock()

	<-done
}

// Tick performs one wall-clock tick at the given time. Exposed so
// tests and alternative schedulers can drive the timer directly.
func (m *Manager) Tick(now time.Time) {
	m.tick(now)
}

func (m *Manager) tick(now time.Time) {
	m.mu.Lock()

	if !m.running || m.current != exercise.Plank {
		m.mu.Unlock()
		return
	}
	elapsed := m.timer.Tick(now)
	onElapsed := m.onPlankElapsed
	m.mu.Unlock()

	if onElapsed != nil {
		onElapsed(elapsed)
	}
}

// syncPlankCountingLocked recomputes whether plank elapsed time should
// be advancing. Must be called with m.mu held.
func (m *Manager) syncPlankCountingLocked(now time.Time) {
	counting := m.running && !m.paused && m.current == exercise.Plank && m.plankFormValid
	m.timer.SetCounting(counting, now)
}

// flushPlankLocked persists any unpersisted plank hold time. Must be
// called with m.mu held.
func (m *Manager) flushPlankLocked(now time.Time) {
	d := m.timer.Flush(now)
	if d <= 0 || m.stats == nil {
		return
	}
	if err := m.stats.AddPlankTime(d); err != nil {
		log.Printf("session %s: failed to persist plank time %v: %v", m.id, d, err)
	}
}

// resetStateLocked flushes pending plank time and clears all mutable
// per-session state. Must be called with m.mu held.
func (m *Manager) resetStateLocked() {
	m.flushPlankLocked(m.clock.Now())
	for _, st := range m.repStates {
		st.Reset()
	}
	m.smoother.Reset()
	m.timer.Reset()
	m.plankFormValid = false
	m.lastFeedback = exercise.Feedback{}
}
