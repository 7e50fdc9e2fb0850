package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// MediaItem describes a timeline clip in a transport-friendly format.
type MediaItem struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	StartTime      int64  `json:"startTime"`
	Duration       int64  `json:"duration"`
	TrackID        string `json:"trackId"`
	URL            string `json:"url,omitempty"`
	MediaStartTime int64  `json:"mediaStartTime,omitempty"`
	Placeholder    bool   `json:"placeholder,omitempty"`
}

// Track describes one timeline layer and its clips.
type Track struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Order int         `json:"order"`
	Items []MediaItem `json:"items"`
}

// Document is the transport representation of a full timeline.
type Document struct {
	Name     string  `json:"name"`
	Duration int64   `json:"duration"`
	Tracks   []Track `json:"tracks"`
}

// ProjectSummary lists a stored project without its full document.
type ProjectSummary struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	TrackCount int    `json:"trackCount"`
	DurationMS int64  `json:"durationMs"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// Asset describes a catalogued media file.
type Asset struct {
	ID           int64  `json:"id"`
	URL          string `json:"url"`
	MediaType    string `json:"mediaType"`
	DisplayTitle string `json:"displayTitle"`
	DurationMS   int64  `json:"durationMs"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	ProbedAt     string `json:"probedAt,omitempty"`
}

// SessionStatus summarizes the open playback session.
type SessionStatus struct {
	SessionID   string   `json:"sessionId"`
	ProjectName string   `json:"projectName"`
	State       string   `json:"state"`
	PositionMS  int64    `json:"positionMs"`
	DurationMS  int64    `json:"durationMs"`
	ActiveItems []string `json:"activeItems"`
	CanUndo     bool     `json:"canUndo"`
	CanRedo     bool     `json:"canRedo"`
}

// DependencyStatus captures availability of an external dependency.
type DependencyStatus struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// DaemonStatus aggregates daemon runtime information for API consumers.
type DaemonStatus struct {
	Running      bool               `json:"running"`
	PID          int                `json:"pid"`
	DatabasePath string             `json:"databasePath"`
	LockFilePath string             `json:"lockFilePath"`
	Session      *SessionStatus     `json:"session,omitempty"`
	Dependencies []DependencyStatus `json:"dependencies"`
}

// ProjectListResponse wraps stored project summaries.
type ProjectListResponse struct {
	Projects []ProjectSummary `json:"projects"`
}

// ProjectResponse wraps a single stored project with its document.
type ProjectResponse struct {
	Project  ProjectSummary `json:"project"`
	Document Document       `json:"document"`
}

// AssetListResponse wraps catalogued assets.
type AssetListResponse struct {
	Assets []Asset `json:"assets"`
}

// SeekRequest positions the playhead for the open session.
type SeekRequest struct {
	PositionMS int64 `json:"positionMs"`
}
