package playback

import (
	"context"
	"image"
	"log/slog"
	"sync"
	"time"

	"splice/internal/logging"
	"splice/internal/media"
	"splice/internal/timeline"
)

// State is the playback state machine position.
type State string

const (
	// StateStopped means no frame loop runs and the playhead may be nonzero.
	StateStopped State = "stopped"
	// StatePlaying means the frame loop is scheduled.
	StatePlaying State = "playing"
	// StatePaused means the frame loop is cancelled and resources are frozen.
	StatePaused State = "paused"
)

// Engine drives the playback frame loop: it advances the playhead by
// measured wall-clock delta, synchronizes the active resource set, and
// composites the visible layers, in that fixed order, once per tick.
//
// All engine state is guarded by one mutex; external operations and the
// scheduled tick serialize through it, and the next tick is only scheduled
// after the current one finishes.
type Engine struct {
	mu sync.Mutex

	state    State
	playhead int64
	lastTick time.Time
	total    int64
	tracks   []timeline.Track

	tracker      *Tracker
	synchronizer *Synchronizer
	compositor   *Compositor
	scheduler    Scheduler
	logger       *slog.Logger
	now          func() time.Time
}

// EngineOptions configures engine construction.
type EngineOptions struct {
	Allocator      media.Allocator
	Scheduler      Scheduler
	Compositor     *Compositor
	DriftTolerance time.Duration
	Logger         *slog.Logger
}

// NewEngine builds a stopped engine.
func NewEngine(opts EngineOptions) *Engine {
	logger := logging.NewComponentLogger(opts.Logger, "playback")
	tracker := NewTracker(opts.Allocator, opts.Logger)
	compositor := opts.Compositor
	if compositor == nil {
		compositor = NewCompositor(defaultBackground)
	}
	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = NewFrameScheduler(60)
	}
	return &Engine{
		state:        StateStopped,
		tracker:      tracker,
		synchronizer: NewSynchronizer(tracker, opts.DriftTolerance, opts.Logger),
		compositor:   compositor,
		scheduler:    scheduler,
		logger:       logger,
		now:          time.Now,
	}
}

// SetOutputSurface installs the surface that Paint targets. Until a surface
// is supplied, painting is a no-op.
func (e *Engine) SetOutputSurface(surface *image.RGBA) {
	e.compositor.SetSurface(surface)
}

// Position returns the current playhead position in timeline milliseconds.
func (e *Engine) Position() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playhead
}

// IsPlaying reports whether the frame loop is running.
func (e *Engine) IsPlaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == StatePlaying
}

// CurrentState returns the state machine position.
func (e *Engine) CurrentState() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// ActiveItemIDs returns the ids of currently materialized items.
func (e *Engine) ActiveItemIDs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	ids := make([]string, 0, e.tracker.Len())
	for _, entry := range e.tracker.Entries() {
		ids = append(ids, entry.Item.ID)
	}
	return ids
}

// Play transitions to Playing and schedules the frame loop. Handles that
// were pre-positioned by a seek while paused are started here: loading never
// auto-plays, pressing Play must.
func (e *Engine) Play(ctx context.Context, tracks []timeline.Track, totalDuration int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StatePlaying {
		return
	}

	e.tracks = tracks
	e.total = totalDuration
	e.state = StatePlaying
	e.lastTick = e.now()

	for _, entry := range e.tracker.Entries() {
		entry.start(ctx, e.logger)
	}
	e.synchronizer.Synchronize(ctx, e.tracks, e.playhead, true)
	e.compositor.Paint(e.tracker.Entries())

	logging.WithContext(ctx, e.logger).Info("playback started",
		logging.Int64("position_ms", e.playhead),
		logging.Int64("total_ms", e.total))
	e.scheduler.ScheduleTick(e.tick)
}

// tick is the frame callback: position update, synchronization, paint, then
// reschedule while still playing. This is the only place the playhead
// advances autonomously.
func (e *Engine) tick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StatePlaying {
		return
	}

	now := e.now()
	delta := now.Sub(e.lastTick).Milliseconds()
	e.lastTick = now

	newPosition := e.playhead + delta
	if newPosition >= e.total {
		newPosition = e.total
		e.state = StatePaused
		e.scheduler.CancelTick()
		for _, entry := range e.tracker.Entries() {
			entry.Resource.Pause()
		}
		e.logger.Info("playback reached end", logging.Int64("position_ms", newPosition))
	}

	e.playhead = newPosition
	e.synchronizer.Synchronize(context.Background(), e.tracks, e.playhead, e.state == StatePlaying)
	e.compositor.Paint(e.tracker.Entries())

	if e.state == StatePlaying {
		e.scheduler.ScheduleTick(e.tick)
	}
}

// Pause cancels the pending tick and freezes every active resource without
// destroying its entry. Idempotent.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StatePlaying {
		return
	}
	e.scheduler.CancelTick()
	for _, entry := range e.tracker.Entries() {
		entry.Resource.Pause()
	}
	e.state = StatePaused
	e.logger.Info("playback paused", logging.Int64("position_ms", e.playhead))
}

// Stop pauses, resets the playhead to zero, and destroys every active entry.
func (e *Engine) Stop(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scheduler.CancelTick()
	e.playhead = 0
	e.state = StateStopped
	e.tracker.Reconcile(ctx, nil)
	e.compositor.Paint(nil)
	logging.WithContext(ctx, e.logger).Info("playback stopped")
}

// Seek sets the playhead directly, playing or not. Entries whose interval no
// longer contains the position are destroyed, continuing entries are
// repositioned, and newly covered items are materialized: positioned but
// started only while playing.
func (e *Engine) Seek(ctx context.Context, tracks []timeline.Track, position int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if position < 0 {
		position = 0
	}

	e.tracks = tracks
	e.playhead = position
	e.lastTick = e.now()

	for _, entry := range e.tracker.Entries() {
		if entry.Item.ActiveAt(position) {
			expected := time.Duration(entry.Item.SourceOffset(position)) * time.Millisecond
			entry.Resource.SeekTo(expected)
		}
	}
	e.synchronizer.Synchronize(ctx, e.tracks, e.playhead, e.state == StatePlaying)
	e.compositor.Paint(e.tracker.Entries())
}

// SetPlayheadPosition sets the playhead without resynchronizing, used for
// scrubbing previews where the UI only needs the readout to move.
func (e *Engine) SetPlayheadPosition(position int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if position < 0 {
		position = 0
	}
	e.playhead = position
}

// RenderCurrentFrame repaints the surface without advancing the playhead,
// for when the tracks changed while paused.
func (e *Engine) RenderCurrentFrame() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.compositor.Paint(e.tracker.Entries())
}

// Snapshot returns a copy of the current output surface.
func (e *Engine) Snapshot() *image.RGBA {
	return e.compositor.Snapshot()
}
