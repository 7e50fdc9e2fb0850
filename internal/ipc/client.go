package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Splice.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ProjectList returns stored project summaries.
func (c *Client) ProjectList() (*ProjectListResponse, error) {
	var resp ProjectListResponse
	if err := c.client.Call("Splice.ProjectList", ProjectListRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ProjectShow returns a stored project with its document.
func (c *Client) ProjectShow(name string) (*ProjectShowResponse, error) {
	var resp ProjectShowResponse
	if err := c.client.Call("Splice.ProjectShow", ProjectShowRequest{Name: name}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ProjectSave stores a timeline document under a project name.
func (c *Client) ProjectSave(name string, doc Document) (*ProjectSaveResponse, error) {
	var resp ProjectSaveResponse
	if err := c.client.Call("Splice.ProjectSave", ProjectSaveRequest{Name: name, Document: doc}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ProjectOpen opens a playback session on a stored project.
func (c *Client) ProjectOpen(name string) (*ProjectOpenResponse, error) {
	var resp ProjectOpenResponse
	if err := c.client.Call("Splice.ProjectOpen", ProjectOpenRequest{Name: name}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ProjectDelete removes a stored project.
func (c *Client) ProjectDelete(name string) (*ProjectDeleteResponse, error) {
	var resp ProjectDeleteResponse
	if err := c.client.Call("Splice.ProjectDelete", ProjectDeleteRequest{Name: name}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AssetList returns catalogued media, optionally filtered by type.
func (c *Client) AssetList(mediaType string) (*AssetListResponse, error) {
	var resp AssetListResponse
	if err := c.client.Call("Splice.AssetList", AssetListRequest{MediaType: mediaType}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AssetImport probes and catalogs a media file.
func (c *Client) AssetImport(url, mediaType string) (*AssetImportResponse, error) {
	var resp AssetImportResponse
	if err := c.client.Call("Splice.AssetImport", AssetImportRequest{URL: url, MediaType: mediaType}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Play starts or resumes playback.
func (c *Client) Play() (*SessionResponse, error) {
	var resp SessionResponse
	if err := c.client.Call("Splice.Play", PlayRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Pause freezes playback at the current position.
func (c *Client) Pause() (*SessionResponse, error) {
	var resp SessionResponse
	if err := c.client.Call("Splice.Pause", PauseRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stop halts playback and releases media resources.
func (c *Client) Stop() (*SessionResponse, error) {
	var resp SessionResponse
	if err := c.client.Call("Splice.Stop", StopRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Seek repositions the playhead.
func (c *Client) Seek(positionMS int64) (*SessionResponse, error) {
	var resp SessionResponse
	if err := c.client.Call("Splice.Seek", SeekRequest{PositionMS: positionMS}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Undo steps the session document back one edit.
func (c *Client) Undo() (*SessionResponse, error) {
	var resp SessionResponse
	if err := c.client.Call("Splice.Undo", UndoRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Redo reapplies the most recently undone edit.
func (c *Client) Redo() (*SessionResponse, error) {
	var resp SessionResponse
	if err := c.client.Call("Splice.Redo", RedoRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SessionClose discards the open session.
func (c *Client) SessionClose() (*SessionCloseResponse, error) {
	var resp SessionCloseResponse
	if err := c.client.Call("Splice.SessionClose", SessionCloseRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Shutdown stops the daemon process.
func (c *Client) Shutdown() (*ShutdownResponse, error) {
	var resp ShutdownResponse
	if err := c.client.Call("Splice.Shutdown", ShutdownRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TestNotification triggers a notification test via the daemon.
func (c *Client) TestNotification() (*TestNotificationResponse, error) {
	var resp TestNotificationResponse
	if err := c.client.Call("Splice.TestNotification", TestNotificationRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
