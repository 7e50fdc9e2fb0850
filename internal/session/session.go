package session

import (
	"context"
	"image"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"splice/internal/config"
	"splice/internal/history"
	"splice/internal/logging"
	"splice/internal/media"
	"splice/internal/playback"
	"splice/internal/services"
	"splice/internal/timeline"
)

// Notifier receives playback lifecycle events. Implementations must tolerate
// being called from the session lock.
type Notifier interface {
	PlaybackStarted(ctx context.Context, projectName string, positionMS int64)
	PlaybackPaused(ctx context.Context, projectName string, positionMS int64)
	PlaybackStopped(ctx context.Context, projectName string)
}

// Options configures session construction. Allocator is required; the other
// fields default sensibly when unset.
type Options struct {
	Allocator media.Allocator
	Scheduler playback.Scheduler
	Notifier  Notifier
	Logger    *slog.Logger
}

// Session owns one open document and the engine playing it. Edits flow
// through the session so history stays consistent with what the engine sees.
type Session struct {
	id     string
	logger *slog.Logger

	mu       sync.Mutex
	name     string
	document timeline.Document
	history  *history.Stack

	engine   *playback.Engine
	notifier Notifier
}

// Status is a point-in-time snapshot of a session for the control surfaces.
type Status struct {
	SessionID   string   `json:"session_id"`
	ProjectName string   `json:"project_name"`
	State       string   `json:"state"`
	PositionMS  int64    `json:"position_ms"`
	DurationMS  int64    `json:"duration_ms"`
	ActiveItems []string `json:"active_items"`
	CanUndo     bool     `json:"can_undo"`
	CanRedo     bool     `json:"can_redo"`
}

// New opens a session on the given document.
func New(cfg *config.Config, name string, doc timeline.Document, opts Options) (*Session, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	stack, err := history.NewStack(doc, 0)
	if err != nil {
		return nil, err
	}

	background, err := config.ParseBackground(cfg.Compositor.Background)
	if err != nil {
		return nil, err
	}
	compositor := playback.NewCompositor(background)

	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = playback.NewFrameScheduler(cfg.Playback.FrameRate)
	}

	engine := playback.NewEngine(playback.EngineOptions{
		Allocator:      opts.Allocator,
		Scheduler:      scheduler,
		Compositor:     compositor,
		DriftTolerance: cfg.DriftTolerance(),
		Logger:         opts.Logger,
	})
	engine.SetOutputSurface(image.NewRGBA(image.Rect(0, 0, cfg.Compositor.SurfaceWidth, cfg.Compositor.SurfaceHeight)))

	id := uuid.NewString()
	logger := logging.NewComponentLogger(opts.Logger, "session")
	logger = logger.With(logging.FieldSessionID, id, logging.FieldProject, name)

	return &Session{
		id:       id,
		logger:   logger,
		name:     name,
		document: doc,
		history:  stack,
		engine:   engine,
		notifier: opts.Notifier,
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Name returns the project name the session was opened with.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Document returns the current document.
func (s *Session) Document() timeline.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document
}

// ReplaceDocument applies an edited document. The previous state becomes
// undoable, and an in-flight playback re-synchronizes against the new
// timeline at the current playhead.
func (s *Session) ReplaceDocument(ctx context.Context, doc timeline.Document) error {
	ctx = services.WithSessionID(ctx, s.id)
	if err := doc.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.history.Push(doc); err != nil {
		return err
	}
	s.document = doc
	s.resyncLocked(ctx)
	s.logger.Info("document replaced", "tracks", len(doc.Tracks))
	return nil
}

// Undo restores the previous document state.
func (s *Session) Undo(ctx context.Context) (timeline.Document, error) {
	ctx = services.WithSessionID(ctx, s.id)
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.history.Undo()
	if err != nil {
		return timeline.Document{}, err
	}
	s.document = doc
	s.resyncLocked(ctx)
	s.logger.Info("undo applied")
	return doc, nil
}

// Redo reapplies the most recently undone document state.
func (s *Session) Redo(ctx context.Context) (timeline.Document, error) {
	ctx = services.WithSessionID(ctx, s.id)
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.history.Redo()
	if err != nil {
		return timeline.Document{}, err
	}
	s.document = doc
	s.resyncLocked(ctx)
	s.logger.Info("redo applied")
	return doc, nil
}

// resyncLocked pushes the current document into a non-stopped engine without
// disturbing the playhead.
func (s *Session) resyncLocked(ctx context.Context) {
	if s.engine.CurrentState() == playback.StateStopped {
		return
	}
	position := s.engine.Position()
	wasPlaying := s.engine.IsPlaying()
	s.engine.Seek(ctx, s.document.Tracks, position)
	if wasPlaying {
		s.engine.Play(ctx, s.document.Tracks, s.document.TotalDuration())
	}
}

// Play starts or resumes playback of the session document.
func (s *Session) Play(ctx context.Context) {
	ctx = services.WithSessionID(ctx, s.id)
	s.mu.Lock()
	doc := s.document
	name := s.name
	s.mu.Unlock()

	s.engine.Play(ctx, doc.Tracks, doc.TotalDuration())
	s.logger.Info("playback started", "position_ms", s.engine.Position())
	if s.notifier != nil {
		s.notifier.PlaybackStarted(ctx, name, s.engine.Position())
	}
}

// Pause freezes playback at the current position.
func (s *Session) Pause(ctx context.Context) {
	s.engine.Pause()
	s.logger.Info("playback paused", "position_ms", s.engine.Position())
	if s.notifier != nil {
		s.notifier.PlaybackPaused(ctx, s.Name(), s.engine.Position())
	}
}

// Stop halts playback and releases all active media resources.
func (s *Session) Stop(ctx context.Context) {
	ctx = services.WithSessionID(ctx, s.id)
	s.engine.Stop(ctx)
	s.logger.Info("playback stopped")
	if s.notifier != nil {
		s.notifier.PlaybackStopped(ctx, s.Name())
	}
}

// Seek repositions playback to the given timeline millisecond.
func (s *Session) Seek(ctx context.Context, positionMS int64) error {
	ctx = services.WithSessionID(ctx, s.id)
	if positionMS < 0 {
		return services.Wrap(services.ErrValidation, "session", "seek", "negative position", nil)
	}

	s.mu.Lock()
	doc := s.document
	s.mu.Unlock()

	if total := doc.TotalDuration(); positionMS > total {
		positionMS = total
	}
	s.engine.Seek(ctx, doc.Tracks, positionMS)
	return nil
}

// Frame returns a copy of the most recently composited frame.
func (s *Session) Frame() *image.RGBA {
	return s.engine.Snapshot()
}

// Status reports the session state for the API and CLI.
func (s *Session) Status() Status {
	s.mu.Lock()
	name := s.name
	total := s.document.TotalDuration()
	canUndo := s.history.CanUndo()
	canRedo := s.history.CanRedo()
	s.mu.Unlock()

	return Status{
		SessionID:   s.id,
		ProjectName: name,
		State:       string(s.engine.CurrentState()),
		PositionMS:  s.engine.Position(),
		DurationMS:  total,
		ActiveItems: s.engine.ActiveItemIDs(),
		CanUndo:     canUndo,
		CanRedo:     canRedo,
	}
}

// Close stops playback and releases resources.
func (s *Session) Close(ctx context.Context) {
	s.engine.Stop(services.WithSessionID(ctx, s.id))
}
