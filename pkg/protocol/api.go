// Package protocol defines the API request/response types.
package protocol

import "time"

// SetDirectoryRequest is the body for POST /set-directory.
type SetDirectoryRequest struct {
	Path string `json:"path"`
}

// DirectoryResponse is returned by POST /set-directory.
type DirectoryResponse struct {
	Status           string `json:"status"`
	Message          string `json:"message"`
	Directory        string `json:"directory"`
	ProcessingStatus string `json:"processing_status"`
}

// SystemStatus is returned by GET /status.
// CurrentDirectory is null until a directory has been selected.
type SystemStatus struct {
	DirectorySet      bool          `json:"directory_set"`
	CurrentDirectory  *string       `json:"current_directory"`
	ProcessorReady    bool          `json:"processor_ready"`
	FileMonitorStatus string        `json:"file_monitor_status"`
	DocumentStats     DocumentStats `json:"document_stats"`
}

// DocumentStats is returned by GET /documents/stats and nested in SystemStatus.
type DocumentStats struct {
	TotalDocuments int            `json:"total_documents"`
	StatusCounts   map[string]int `json:"status_counts"`
	FileTypeCounts map[string]int `json:"file_type_counts"`
}

// ChatRequest is the body for POST /chat.
type ChatRequest struct {
	SessionID int    `json:"session_id"`
	Message   string `json:"message"`
}

// ChatResponse is returned by POST /chat.
type ChatResponse struct {
	Message      string           `json:"message"`
	Sources      []DocumentSource `json:"sources"`
	ResponseTime float64          `json:"response_time"`
}

// DocumentSource describes where a piece of retrieved content came from.
// Produced only by the backend; the client never builds one.
type DocumentSource struct {
	FilePath   string  `json:"file_path"`
	Score      float64 `json:"score"`
	Snippet    string  `json:"snippet"`
	ChunkCount int     `json:"chunk_count"`
	FileType   string  `json:"file_type"`
}

// IndexedDocument is one indexed file in document search results.
type IndexedDocument struct {
	ID             int        `json:"id"`
	FilePath       string     `json:"file_path"`
	FileType       string     `json:"file_type"`
	FileSize       int64      `json:"file_size"`
	LastModified   time.Time  `json:"last_modified"`
	ContentPreview string     `json:"content_preview"`
	Status         string     `json:"status"`
	ChunkCount     *int       `json:"chunk_count,omitempty"`
	IndexedAt      *time.Time `json:"indexed_at,omitempty"`
}

// SearchParams holds the optional query parameters for GET /documents/search.
// Zero-value fields (empty strings, nil pointers) are omitted from the query
// string entirely so the backend applies its own defaults.
type SearchParams struct {
	Query    string
	FileType string
	Limit    *int
	Offset   *int
}

// SearchResponse is returned by GET /documents/search.
type SearchResponse struct {
	Status  string     `json:"status"`
	Results SearchPage `json:"results"`
}

// SearchPage is the offset-paginated payload nested in SearchResponse.
type SearchPage struct {
	Documents []IndexedDocument `json:"documents"`
	Total     int               `json:"total"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
	HasMore   bool              `json:"has_more"`
}

// ChatSession is one persisted conversation.
type ChatSession struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Directory    string    `json:"directory"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}

// SessionListResponse is the envelope returned by GET /chat-sessions.
type SessionListResponse struct {
	Sessions []ChatSession `json:"sessions"`
}

// CreateSessionRequest is the body for POST /chat-sessions.
type CreateSessionRequest struct {
	Title string `json:"title"`
}

// UpdateTitleRequest is the body for PUT /chat-sessions/{id}/title.
type UpdateTitleRequest struct {
	Title string `json:"title"`
}

// ChatMessage is one persisted turn in a session, as stored by the backend.
type ChatMessage struct {
	ID           int              `json:"id"`
	SessionID    int              `json:"session_id"`
	UserMessage  string           `json:"user_message"`
	AIResponse   string           `json:"ai_response"`
	Sources      []DocumentSource `json:"sources"`
	ResponseTime float64          `json:"response_time"`
	Timestamp    time.Time        `json:"timestamp"`
}

// Ack is the generic {status, message} acknowledgment returned by
// POST /clear-index and DELETE /chat-sessions/{id}.
type Ack struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
