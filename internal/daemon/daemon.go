package daemon

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"log/slog"

	"github.com/gofrs/flock"

	"splice/internal/config"
	"splice/internal/deps"
	"splice/internal/logging"
	"splice/internal/media"
	"splice/internal/notifications"
	"splice/internal/project"
	"splice/internal/services"
	"splice/internal/session"
	"splice/internal/timeline"
)

// Daemon coordinates the playback session, project storage, and the HTTP
// control surface, and enforces single-instance execution.
type Daemon struct {
	cfg       *config.Config
	logger    *slog.Logger
	store     *project.Store
	notifier  notifications.Service
	allocator media.Allocator
	prober    *media.FFprober
	logPath   string

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	api     *apiServer

	mu      sync.Mutex
	session *session.Session

	ctx    context.Context
	cancel context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	DatabasePath string
	LockFilePath string
	Session      *session.Status
	Dependencies []deps.Status
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *project.Store, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil {
		return nil, errors.New("daemon requires config and store")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := cfg.LockPath()
	d := &Daemon{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "daemon"),
		store:     store,
		notifier:  notifications.NewService(cfg),
		allocator: media.NewAllocator(cfg, logger),
		prober:    &media.FFprober{Binary: cfg.Media.FFprobePath, Timeout: cfg.ProbeTimeout()},
		logPath:   cfg.LogFilePath(),
		lockPath:  lockPath,
		lock:      flock.New(lockPath),
	}

	apiSrv, err := newAPIServer(cfg, d, logger)
	if err != nil {
		return nil, err
	}
	d.api = apiSrv
	return d, nil
}

// Start acquires the daemon lock and brings up the HTTP API.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another splice daemon instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	if err := d.api.start(d.ctx); err != nil {
		_ = d.lock.Unlock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return err
	}

	d.running.Store(true)
	d.logger.Info("splice daemon started", "lock", d.lockPath)
	return nil
}

// Stop tears down the open session and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.api.stop()
	d.CloseSession(context.Background())
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("splice daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// OpenProject loads a stored project and opens a playback session on it. Any
// previously open session is closed first.
func (d *Daemon) OpenProject(ctx context.Context, name string) (*session.Session, error) {
	record, err := d.store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return d.OpenDocument(ctx, record.Name, record.Document)
}

// OpenDocument opens a playback session directly on a document, bypassing
// storage. Used for unsaved timelines sent over the API.
func (d *Daemon) OpenDocument(ctx context.Context, name string, doc timeline.Document) (*session.Session, error) {
	sess, err := session.New(d.cfg, name, doc, session.Options{
		Allocator: d.allocator,
		Notifier:  notifications.NewSessionNotifier(d.notifier, d.logger),
		Logger:    d.logger,
	})
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	previous := d.session
	d.session = sess
	d.mu.Unlock()

	if previous != nil {
		previous.Close(ctx)
	}
	d.logger.Info("session opened", logging.FieldSessionID, sess.ID(), logging.FieldProject, name)
	return sess, nil
}

// CloseSession stops playback and discards the open session, if any.
func (d *Daemon) CloseSession(ctx context.Context) {
	d.mu.Lock()
	sess := d.session
	d.session = nil
	d.mu.Unlock()

	if sess != nil {
		sess.Close(ctx)
		d.logger.Info("session closed", logging.FieldSessionID, sess.ID())
	}
}

// Session returns the open session or an error when none exists.
func (d *Daemon) Session() (*session.Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session == nil {
		return nil, services.Wrap(services.ErrNotFound, "daemon", "session", "no open session", nil)
	}
	return d.session, nil
}

// SaveProject validates and persists a document under the given name.
func (d *Daemon) SaveProject(ctx context.Context, name string, doc timeline.Document) (*project.Record, error) {
	record, err := d.store.Save(ctx, name, doc)
	if err != nil {
		return nil, err
	}
	if notifyErr := d.notifier.NotifyProjectSaved(ctx, record.Name); notifyErr != nil {
		d.logger.Warn("project saved notification failed", logging.Error(notifyErr))
	}
	return record, nil
}

// DeleteProject removes a stored project.
func (d *Daemon) DeleteProject(ctx context.Context, name string) error {
	if err := d.store.Delete(ctx, name); err != nil {
		return err
	}
	if notifyErr := d.notifier.NotifyProjectDeleted(ctx, name); notifyErr != nil {
		d.logger.Warn("project deleted notification failed", logging.Error(notifyErr))
	}
	return nil
}

// ListProjects returns all stored projects.
func (d *Daemon) ListProjects(ctx context.Context) ([]project.Record, error) {
	return d.store.List(ctx)
}

// GetProject returns a single stored project.
func (d *Daemon) GetProject(ctx context.Context, name string) (*project.Record, error) {
	return d.store.Get(ctx, name)
}

// ListAssets returns the media catalog, optionally filtered by type.
func (d *Daemon) ListAssets(ctx context.Context, mediaType timeline.MediaType) ([]project.Asset, error) {
	return d.store.ListAssets(ctx, mediaType)
}

// ImportAsset probes a media file and records it in the catalog.
func (d *Daemon) ImportAsset(ctx context.Context, url string, mediaType timeline.MediaType) (*project.Asset, error) {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return nil, services.Wrap(services.ErrValidation, "daemon", "import asset", "url is required", nil)
	}

	asset := project.Asset{URL: trimmed, MediaType: mediaType}
	if mediaType == timeline.MediaVideo || mediaType == timeline.MediaAudio {
		meta, err := d.prober.Probe(ctx, d.resolveMediaPath(trimmed))
		if err != nil {
			return nil, err
		}
		asset.DurationMS = meta.Duration.Milliseconds()
		asset.Width = meta.Width
		asset.Height = meta.Height
	}

	stored, err := d.store.UpsertAsset(ctx, asset)
	if err != nil {
		return nil, err
	}
	d.logger.Info("asset imported", "url", stored.URL, "media_type", string(stored.MediaType))
	return stored, nil
}

func (d *Daemon) resolveMediaPath(url string) string {
	if strings.HasPrefix(url, "file://") {
		return strings.TrimPrefix(url, "file://")
	}
	if filepath.IsAbs(url) {
		return url
	}
	return filepath.Join(d.cfg.Paths.MediaDir, url)
}

// Frame returns the last composited frame of the open session.
func (d *Daemon) Frame() (*image.RGBA, error) {
	sess, err := d.Session()
	if err != nil {
		return nil, err
	}
	return sess.Frame(), nil
}

// TestNotification triggers a test notification using the current configuration.
func (d *Daemon) TestNotification(ctx context.Context) (bool, string, error) {
	if strings.TrimSpace(d.cfg.Notifications.NtfyTopic) == "" {
		return false, "ntfy topic not configured", nil
	}
	if err := d.notifier.TestNotification(ctx); err != nil {
		return false, "failed to send notification", err
	}
	return true, "test notification sent", nil
}

// LogPath returns the path to the daemon log file.
func (d *Daemon) LogPath() string {
	return d.logPath
}

// APIAddr returns the bound address of the HTTP API, or empty before Start.
func (d *Daemon) APIAddr() string {
	return d.api.addr()
}

// Status returns the current daemon status.
func (d *Daemon) Status(ctx context.Context) Status {
	status := Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		DatabasePath: d.store.Path(),
		LockFilePath: d.lockPath,
		Dependencies: deps.CheckBinaries(deps.Default(d.cfg)),
	}
	d.mu.Lock()
	sess := d.session
	d.mu.Unlock()
	if sess != nil {
		snapshot := sess.Status()
		status.Session = &snapshot
	}
	return status
}
