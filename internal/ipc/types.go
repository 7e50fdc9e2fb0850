package ipc

import "splice/internal/api"

// SessionStatus mirrors the HTTP API session DTO for internal IPC callers.
type SessionStatus = api.SessionStatus

// ProjectSummary mirrors the HTTP API project summary DTO.
type ProjectSummary = api.ProjectSummary

// DependencyStatus describes availability of an external dependency.
type DependencyStatus = api.DependencyStatus

// Document mirrors the HTTP API document DTO.
type Document = api.Document

// Asset mirrors the HTTP API asset DTO.
type Asset = api.Asset

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// StatusResponse represents combined daemon/session status information.
type StatusResponse struct {
	Running      bool               `json:"running"`
	PID          int                `json:"pid"`
	DatabasePath string             `json:"database_path"`
	LockPath     string             `json:"lock_path"`
	APIAddr      string             `json:"api_addr"`
	Session      *SessionStatus     `json:"session,omitempty"`
	Dependencies []DependencyStatus `json:"dependencies"`
}

// ProjectListRequest lists stored projects.
type ProjectListRequest struct{}

// ProjectListResponse contains stored project summaries.
type ProjectListResponse struct {
	Projects []ProjectSummary `json:"projects"`
}

// ProjectSaveRequest stores a timeline document under a project name,
// replacing any existing document.
type ProjectSaveRequest struct {
	Name     string   `json:"name"`
	Document Document `json:"document"`
}

// ProjectSaveResponse reports the saved project summary.
type ProjectSaveResponse struct {
	Project ProjectSummary `json:"project"`
}

// ProjectOpenRequest opens a playback session on a stored project.
type ProjectOpenRequest struct {
	Name string `json:"name"`
}

// ProjectOpenResponse reports the opened session.
type ProjectOpenResponse struct {
	Session SessionStatus `json:"session"`
}

// ProjectDeleteRequest removes a stored project.
type ProjectDeleteRequest struct {
	Name string `json:"name"`
}

// ProjectDeleteResponse reports deletion.
type ProjectDeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// ProjectShowRequest fetches a stored project with its document.
type ProjectShowRequest struct {
	Name string `json:"name"`
}

// ProjectShowResponse contains the project and its timeline document.
type ProjectShowResponse struct {
	Project  ProjectSummary `json:"project"`
	Document Document       `json:"document"`
}

// AssetListRequest lists catalogued media, optionally filtered by type.
type AssetListRequest struct {
	MediaType string `json:"media_type"`
}

// AssetListResponse contains catalogued assets.
type AssetListResponse struct {
	Assets []Asset `json:"assets"`
}

// AssetImportRequest probes and catalogs a media file.
type AssetImportRequest struct {
	URL       string `json:"url"`
	MediaType string `json:"media_type"`
}

// AssetImportResponse contains the catalogued asset.
type AssetImportResponse struct {
	Asset Asset `json:"asset"`
}

// PlayRequest starts or resumes playback of the open session.
type PlayRequest struct{}

// PauseRequest freezes playback of the open session.
type PauseRequest struct{}

// StopRequest halts playback and releases media resources.
type StopRequest struct{}

// SeekRequest repositions the playhead.
type SeekRequest struct {
	PositionMS int64 `json:"position_ms"`
}

// UndoRequest steps the session document back one edit.
type UndoRequest struct{}

// RedoRequest reapplies the most recently undone edit.
type RedoRequest struct{}

// SessionCloseRequest discards the open session.
type SessionCloseRequest struct{}

// SessionResponse reports session state after a playback operation.
type SessionResponse struct {
	Session SessionStatus `json:"session"`
}

// SessionCloseResponse reports whether a session was closed.
type SessionCloseResponse struct {
	Closed bool `json:"closed"`
}

// ShutdownRequest stops the daemon process.
type ShutdownRequest struct{}

// ShutdownResponse acknowledges shutdown.
type ShutdownResponse struct {
	Stopping bool `json:"stopping"`
}

// TestNotificationRequest triggers a notification test.
type TestNotificationRequest struct{}

// TestNotificationResponse reports notification test outcome.
type TestNotificationResponse struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}
