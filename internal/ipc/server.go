package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"strings"
	"sync"

	"log/slog"

	"splice/internal/api"
	"splice/internal/daemon"
	"splice/internal/logging"
	"splice/internal/timeline"
)

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	daemon    *daemon.Daemon
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path. The shutdown
// callback, when non-nil, is invoked by the Shutdown RPC to stop the host
// process.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger, shutdown func()) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{daemon: d, logger: logger, ctx: ctx, shutdown: shutdown}
	if err := rpcServer.RegisterName("Splice", srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		daemon:    d,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", "socket", s.path)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed", logging.Error(err))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket", "socket", s.path, logging.Error(err))
	}
}

type service struct {
	daemon   *daemon.Daemon
	logger   *slog.Logger
	ctx      context.Context
	shutdown func()
}

func (s *service) log() *slog.Logger {
	return logging.NewComponentLogger(s.logger, "ipc")
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status := s.daemon.Status(s.ctx)
	resp.Running = status.Running
	resp.PID = status.PID
	resp.DatabasePath = status.DatabasePath
	resp.LockPath = status.LockFilePath
	resp.APIAddr = s.daemon.APIAddr()
	if status.Session != nil {
		converted := api.FromSessionStatus(*status.Session)
		resp.Session = &converted
	}
	resp.Dependencies = make([]DependencyStatus, 0, len(status.Dependencies))
	for _, dep := range status.Dependencies {
		resp.Dependencies = append(resp.Dependencies, DependencyStatus{
			Name:        dep.Name,
			Command:     dep.Command,
			Description: dep.Description,
			Optional:    dep.Optional,
			Available:   dep.Available,
			Detail:      dep.Detail,
		})
	}
	return nil
}

func (s *service) ProjectList(_ ProjectListRequest, resp *ProjectListResponse) error {
	records, err := s.daemon.ListProjects(s.ctx)
	if err != nil {
		return err
	}
	resp.Projects = api.FromRecords(records)
	return nil
}

func (s *service) ProjectShow(req ProjectShowRequest, resp *ProjectShowResponse) error {
	record, err := s.daemon.GetProject(s.ctx, req.Name)
	if err != nil {
		return err
	}
	resp.Project = api.FromRecord(record)
	resp.Document = api.FromDocument(record.Document)
	return nil
}

func (s *service) ProjectSave(req ProjectSaveRequest, resp *ProjectSaveResponse) error {
	record, err := s.daemon.SaveProject(s.ctx, req.Name, api.ToDocument(req.Document))
	if err != nil {
		return err
	}
	resp.Project = api.FromRecord(record)
	s.log().Info("project saved via IPC", logging.FieldProject, req.Name)
	return nil
}

func (s *service) ProjectOpen(req ProjectOpenRequest, resp *ProjectOpenResponse) error {
	s.log().Debug("project open requested", logging.FieldProject, req.Name)
	sess, err := s.daemon.OpenProject(s.ctx, req.Name)
	if err != nil {
		return err
	}
	resp.Session = api.FromSessionStatus(sess.Status())
	return nil
}

func (s *service) ProjectDelete(req ProjectDeleteRequest, resp *ProjectDeleteResponse) error {
	if err := s.daemon.DeleteProject(s.ctx, req.Name); err != nil {
		return err
	}
	resp.Deleted = true
	s.log().Info("project deleted via IPC", logging.FieldProject, req.Name)
	return nil
}

func (s *service) AssetList(req AssetListRequest, resp *AssetListResponse) error {
	assets, err := s.daemon.ListAssets(s.ctx, timeline.MediaType(strings.TrimSpace(req.MediaType)))
	if err != nil {
		return err
	}
	resp.Assets = api.FromAssets(assets)
	return nil
}

func (s *service) AssetImport(req AssetImportRequest, resp *AssetImportResponse) error {
	asset, err := s.daemon.ImportAsset(s.ctx, req.URL, timeline.MediaType(req.MediaType))
	if err != nil {
		return err
	}
	resp.Asset = api.FromAsset(asset)
	return nil
}

func (s *service) Play(_ PlayRequest, resp *SessionResponse) error {
	sess, err := s.daemon.Session()
	if err != nil {
		return err
	}
	sess.Play(s.ctx)
	resp.Session = api.FromSessionStatus(sess.Status())
	return nil
}

func (s *service) Pause(_ PauseRequest, resp *SessionResponse) error {
	sess, err := s.daemon.Session()
	if err != nil {
		return err
	}
	sess.Pause(s.ctx)
	resp.Session = api.FromSessionStatus(sess.Status())
	return nil
}

func (s *service) Stop(_ StopRequest, resp *SessionResponse) error {
	sess, err := s.daemon.Session()
	if err != nil {
		return err
	}
	sess.Stop(s.ctx)
	resp.Session = api.FromSessionStatus(sess.Status())
	return nil
}

func (s *service) Seek(req SeekRequest, resp *SessionResponse) error {
	sess, err := s.daemon.Session()
	if err != nil {
		return err
	}
	if err := sess.Seek(s.ctx, req.PositionMS); err != nil {
		return err
	}
	resp.Session = api.FromSessionStatus(sess.Status())
	return nil
}

func (s *service) Undo(_ UndoRequest, resp *SessionResponse) error {
	sess, err := s.daemon.Session()
	if err != nil {
		return err
	}
	if _, err := sess.Undo(s.ctx); err != nil {
		return err
	}
	resp.Session = api.FromSessionStatus(sess.Status())
	return nil
}

func (s *service) Redo(_ RedoRequest, resp *SessionResponse) error {
	sess, err := s.daemon.Session()
	if err != nil {
		return err
	}
	if _, err := sess.Redo(s.ctx); err != nil {
		return err
	}
	resp.Session = api.FromSessionStatus(sess.Status())
	return nil
}

func (s *service) SessionClose(_ SessionCloseRequest, resp *SessionCloseResponse) error {
	s.daemon.CloseSession(s.ctx)
	resp.Closed = true
	return nil
}

func (s *service) Shutdown(_ ShutdownRequest, resp *ShutdownResponse) error {
	s.log().Info("daemon shutdown requested via IPC")
	resp.Stopping = true
	if s.shutdown != nil {
		go s.shutdown()
	}
	return nil
}

func (s *service) TestNotification(_ TestNotificationRequest, resp *TestNotificationResponse) error {
	sent, message, err := s.daemon.TestNotification(s.ctx)
	resp.Sent = sent
	resp.Message = message
	return err
}
