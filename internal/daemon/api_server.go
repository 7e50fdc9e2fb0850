package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"splice/internal/api"
	"splice/internal/config"
	"splice/internal/logging"
	"splice/internal/services"
	"splice/internal/timeline"
)

type apiServer struct {
	bind       string
	logger     *slog.Logger
	daemon     *Daemon
	projectSvc *api.ProjectService
	limiter    *rate.Limiter

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) (*apiServer, error) {
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, errors.New("api bind address is required")
	}

	srv := &apiServer{
		bind:       bind,
		logger:     logger,
		daemon:     d,
		projectSvc: api.NewProjectService(d.store),
	}
	if cfg.API.RateLimitPerSecond > 0 {
		srv.limiter = rate.NewLimiter(rate.Limit(cfg.API.RateLimitPerSecond), cfg.API.RateLimitBurst)
	}

	token := strings.TrimSpace(cfg.Paths.APIToken)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", authMiddleware(token, srv.handleStatus))
	mux.HandleFunc("/api/projects", authMiddleware(token, srv.handleProjects))
	mux.HandleFunc("/api/projects/", authMiddleware(token, srv.handleProject))
	mux.HandleFunc("/api/assets", authMiddleware(token, srv.handleAssets))
	mux.HandleFunc("/api/session", authMiddleware(token, srv.handleSession))
	mux.HandleFunc("/api/session/", authMiddleware(token, srv.handleSessionAction))

	srv.server = &http.Server{
		Handler:           srv.withRequestID(mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

func (s *apiServer) start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.log().Info("api server listening", "address", listener.Addr().String())
	return nil
}

func (s *apiServer) stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// withRequestID tags every request context with a correlation identifier so
// downstream logs can be tied back to the originating HTTP call.
func (s *apiServer) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := services.WithRequestID(r.Context(), uuid.NewString())
		logging.WithContext(ctx, s.log()).Debug("api request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// allowMutation applies the configured rate limit to state-changing requests.
func (s *apiServer) allowMutation(w http.ResponseWriter) bool {
	if s.limiter == nil || s.limiter.Allow() {
		return true
	}
	s.writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
	return false
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	status := s.daemon.Status(r.Context())
	payload := api.DaemonStatus{
		Running:      status.Running,
		PID:          status.PID,
		DatabasePath: status.DatabasePath,
		LockFilePath: status.LockFilePath,
	}
	if status.Session != nil {
		converted := api.FromSessionStatus(*status.Session)
		payload.Session = &converted
	}
	payload.Dependencies = make([]api.DependencyStatus, len(status.Dependencies))
	for i, dep := range status.Dependencies {
		payload.Dependencies[i] = api.DependencyStatus{
			Name:        dep.Name,
			Command:     dep.Command,
			Description: dep.Description,
			Optional:    dep.Optional,
			Available:   dep.Available,
			Detail:      dep.Detail,
		}
	}
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *apiServer) handleProjects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	projects, err := s.projectSvc.List(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.ProjectListResponse{Projects: projects})
}

func (s *apiServer) handleProject(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/projects/")
	name, action, _ := strings.Cut(rest, "/")
	if name == "" {
		s.writeError(w, http.StatusNotFound, "project not found")
		return
	}

	if action == "open" {
		if r.Method != http.MethodPost {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if !s.allowMutation(w) {
			return
		}
		sess, err := s.daemon.OpenProject(r.Context(), name)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, api.FromSessionStatus(sess.Status()))
		return
	}
	if action != "" {
		s.writeError(w, http.StatusNotFound, "unknown project action")
		return
	}

	switch r.Method {
	case http.MethodGet:
		response, err := s.projectSvc.Describe(r.Context(), name)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, response)
	case http.MethodPut:
		if !s.allowMutation(w) {
			return
		}
		var doc api.Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid document payload")
			return
		}
		record, err := s.daemon.SaveProject(r.Context(), name, api.ToDocument(doc))
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, api.ProjectResponse{
			Project:  api.FromRecord(record),
			Document: api.FromDocument(record.Document),
		})
	case http.MethodDelete:
		if !s.allowMutation(w) {
			return
		}
		if err := s.daemon.DeleteProject(r.Context(), name); err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *apiServer) handleAssets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		mediaType := timeline.MediaType(strings.TrimSpace(r.URL.Query().Get("type")))
		assets, err := s.projectSvc.Assets(r.Context(), mediaType)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, api.AssetListResponse{Assets: assets})
	case http.MethodPost:
		if !s.allowMutation(w) {
			return
		}
		var req struct {
			URL       string `json:"url"`
			MediaType string `json:"mediaType"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid asset payload")
			return
		}
		asset, err := s.daemon.ImportAsset(r.Context(), req.URL, timeline.MediaType(req.MediaType))
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, api.FromAsset(asset))
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *apiServer) handleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		sess, err := s.daemon.Session()
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, api.FromSessionStatus(sess.Status()))
	case http.MethodDelete:
		if !s.allowMutation(w) {
			return
		}
		s.daemon.CloseSession(r.Context())
		s.writeJSON(w, http.StatusOK, map[string]bool{"closed": true})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *apiServer) handleSessionAction(w http.ResponseWriter, r *http.Request) {
	action := strings.TrimPrefix(r.URL.Path, "/api/session/")

	if action == "frame" {
		if r.Method != http.MethodGet {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		frame, err := s.daemon.Frame()
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		if err := png.Encode(w, frame); err != nil {
			s.log().Error("failed to encode frame", logging.Error(err))
		}
		return
	}

	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.allowMutation(w) {
		return
	}
	sess, err := s.daemon.Session()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	switch action {
	case "play":
		sess.Play(r.Context())
	case "pause":
		sess.Pause(r.Context())
	case "stop":
		sess.Stop(r.Context())
	case "seek":
		var req api.SeekRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid seek payload")
			return
		}
		if err := sess.Seek(r.Context(), req.PositionMS); err != nil {
			s.writeServiceError(w, err)
			return
		}
	case "undo":
		if _, err := sess.Undo(r.Context()); err != nil {
			s.writeServiceError(w, err)
			return
		}
	case "redo":
		if _, err := sess.Redo(r.Context()); err != nil {
			s.writeServiceError(w, err)
			return
		}
	case "document":
		var doc api.Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid document payload")
			return
		}
		if err := sess.ReplaceDocument(r.Context(), api.ToDocument(doc)); err != nil {
			s.writeServiceError(w, err)
			return
		}
	default:
		s.writeError(w, http.StatusNotFound, "unknown session action")
		return
	}
	s.writeJSON(w, http.StatusOK, api.FromSessionStatus(sess.Status()))
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeServiceError(w http.ResponseWriter, err error) {
	s.writeError(w, services.HTTPStatus(err), err.Error())
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *apiServer) log() *slog.Logger {
	return logging.NewComponentLogger(s.logger, "api-server")
}
