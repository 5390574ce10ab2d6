package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dummassdenzel/Klair-AI-sub001/pkg/protocol"
)

// Ping checks if the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/status", nil, nil, nil)
}

// SelectDirectory triggers the server-side directory picker. The result
// shape is backend-controlled, so it is returned as raw JSON.
func (c *Client) SelectDirectory(ctx context.Context) (json.RawMessage, error) {
	return c.doRaw(ctx, http.MethodGet, "/select-directory", nil, nil)
}

// SetDirectory sets the directory the backend indexes.
func (c *Client) SetDirectory(ctx context.Context, path string) (*protocol.DirectoryResponse, error) {
	var resp protocol.DirectoryResponse
	if err := c.do(ctx, http.MethodPost, "/set-directory", nil, protocol.SetDirectoryRequest{Path: path}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetStatus fetches the current server state. Polling cadence is the
// caller's responsibility.
func (c *Client) GetStatus(ctx context.Context) (*protocol.SystemStatus, error) {
	var resp protocol.SystemStatus
	if err := c.do(ctx, http.MethodGet, "/status", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetDocumentStats fetches aggregate index counts.
func (c *Client) GetDocumentStats(ctx context.Context) (*protocol.DocumentStats, error) {
	var resp protocol.DocumentStats
	if err := c.do(ctx, http.MethodGet, "/documents/stats", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchDocuments searches indexed documents. Unset params are left out of
// the query string so the backend applies its own defaults.
func (c *Client) SearchDocuments(ctx context.Context, params protocol.SearchParams) (*protocol.SearchResponse, error) {
	query := url.Values{}
	if params.Query != "" {
		query.Set("query", params.Query)
	}
	if params.FileType != "" {
		query.Set("file_type", params.FileType)
	}
	if params.Limit != nil {
		query.Set("limit", strconv.Itoa(*params.Limit))
	}
	if params.Offset != nil {
		query.Set("offset", strconv.Itoa(*params.Offset))
	}

	var resp protocol.SearchResponse
	if err := c.do(ctx, http.MethodGet, "/documents/search", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ClearIndex removes every indexed document on the server.
func (c *Client) ClearIndex(ctx context.Context) (*protocol.Ack, error) {
	var resp protocol.Ack
	if err := c.do(ctx, http.MethodPost, "/clear-index", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetConfiguration fetches the backend configuration. Keys and value shapes
// are backend-controlled; the client passes the mapping through verbatim.
func (c *Client) GetConfiguration(ctx context.Context) (map[string]any, error) {
	var resp map[string]any
	if err := c.do(ctx, http.MethodGet, "/configuration", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// UpdateConfiguration sends a configuration mapping verbatim and returns the
// backend's view of the updated configuration.
func (c *Client) UpdateConfiguration(ctx context.Context, config map[string]any) (map[string]any, error) {
	var resp map[string]any
	if err := c.do(ctx, http.MethodPost, "/update-configuration", nil, config, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
