package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dummassdenzel/Klair-AI-sub001/pkg/protocol"
)

// SendChatMessage sends one user turn and waits for the backend's reply.
// This is the highest-latency call in the API; no local timeout or retry is
// applied, so upstream model failures surface to the caller unchanged.
func (c *Client) SendChatMessage(ctx context.Context, req protocol.ChatRequest) (*protocol.ChatResponse, error) {
	var resp protocol.ChatResponse
	if err := c.do(ctx, http.MethodPost, "/chat", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetChatSessions lists persisted conversations in backend order.
//
// The backend wraps the list in a {"sessions": [...]} envelope, but that
// envelope has not been stable across backend versions: older builds shipped
// a bare array, and the key has moved before. Any valid JSON body without
// the key yields an empty slice, never an error; only a body that is not
// JSON at all fails.
func (c *Client) GetChatSessions(ctx context.Context) ([]protocol.ChatSession, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, "/chat-sessions", nil, nil)
	if err != nil {
		return nil, err
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		if json.Valid(raw) {
			// Bare array or some other non-object generation: no key.
			return []protocol.ChatSession{}, nil
		}
		return nil, fmt.Errorf("parse response: %w", err)
	}

	data, ok := envelope["sessions"]
	if !ok {
		return []protocol.ChatSession{}, nil
	}
	var sessions []protocol.ChatSession
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if sessions == nil {
		return []protocol.ChatSession{}, nil
	}
	return sessions, nil
}

// CreateChatSession creates a new conversation.
//
// TODO: directoryPath is accepted but not transmitted; the backend ties new
// sessions to its currently active directory. Wire it through once the
// create endpoint accepts a directory field.
func (c *Client) CreateChatSession(ctx context.Context, directoryPath, title string) (*protocol.ChatSession, error) {
	_ = directoryPath

	var resp protocol.ChatSession
	if err := c.do(ctx, http.MethodPost, "/chat-sessions", nil, protocol.CreateSessionRequest{Title: title}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetChatMessages fetches the messages of a session as raw JSON.
//
// The envelope shape of this endpoint has changed over time, so the body is
// handed back exactly as received and callers must inspect it themselves.
func (c *Client) GetChatMessages(ctx context.Context, sessionID int) (json.RawMessage, error) {
	return c.doRaw(ctx, http.MethodGet, idPath("/chat-sessions/", sessionID, "/messages"), nil, nil)
}

// UpdateChatSessionTitle renames a session and returns the updated session.
func (c *Client) UpdateChatSessionTitle(ctx context.Context, sessionID int, title string) (*protocol.ChatSession, error) {
	var resp protocol.ChatSession
	if err := c.do(ctx, http.MethodPut, idPath("/chat-sessions/", sessionID, "/title"), nil, protocol.UpdateTitleRequest{Title: title}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteChatSession deletes a session and its messages.
func (c *Client) DeleteChatSession(ctx context.Context, sessionID int) (*protocol.Ack, error) {
	var resp protocol.Ack
	if err := c.do(ctx, http.MethodDelete, idPath("/chat-sessions/", sessionID, ""), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
