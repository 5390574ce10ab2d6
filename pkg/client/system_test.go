package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/dummassdenzel/Klair-AI-sub001/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDirectory(t *testing.T) {
	var calls atomic.Int32
	var gotMethod, gotBody string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		gotMethod = r.Method
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		require.Equal(t, "/set-directory", r.URL.Path)
		json.NewEncoder(w).Encode(protocol.DirectoryResponse{
			Status:           "success",
			Message:          "directory set",
			Directory:        "/home/user/docs",
			ProcessingStatus: "indexing",
		})
	}))

	resp, err := c.SetDirectory(context.Background(), "/home/user/docs")
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load(), "exactly one round trip")
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.JSONEq(t, `{"path":"/home/user/docs"}`, gotBody)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "/home/user/docs", resp.Directory)
	assert.Equal(t, "indexing", resp.ProcessingStatus)
}

func TestGetStatusNullDirectory(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"directory_set": false,
			"current_directory": null,
			"processor_ready": false,
			"file_monitor_status": "stopped",
			"document_stats": {"total_documents": 0, "status_counts": {}, "file_type_counts": {}}
		}`))
	}))

	st, err := c.GetStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, st.DirectorySet)
	assert.Nil(t, st.CurrentDirectory)
	assert.Equal(t, "stopped", st.FileMonitorStatus)
	assert.Zero(t, st.DocumentStats.TotalDocuments)
}

func TestSelectDirectoryReturnsRawBody(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/select-directory", r.URL.Path)
		w.Write([]byte(`{"status":"success","path":"/picked","cancelled":false}`))
	}))

	raw, err := c.SelectDirectory(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"success","path":"/picked","cancelled":false}`, string(raw))
}

func TestSearchDocumentsOmitsUnsetParams(t *testing.T) {
	var gotQuery string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"status":"success","results":{"documents":[],"total":0,"limit":50,"offset":0,"has_more":false}}`))
	})

	c := testClient(t, handler)

	_, err := c.SearchDocuments(context.Background(), protocol.SearchParams{})
	require.NoError(t, err)
	assert.Empty(t, gotQuery, "no params should be sent when all are unset")

	limit := 5
	_, err = c.SearchDocuments(context.Background(), protocol.SearchParams{Query: "budget report", Limit: &limit})
	require.NoError(t, err)
	assert.Equal(t, "limit=5&query=budget+report", gotQuery)
}

func TestSearchDocumentsZeroOffsetIsSent(t *testing.T) {
	var gotQuery string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"status":"success","results":{"documents":[],"total":0,"limit":10,"offset":0,"has_more":false}}`))
	}))

	offset := 0
	_, err := c.SearchDocuments(context.Background(), protocol.SearchParams{Offset: &offset})
	require.NoError(t, err)
	assert.Equal(t, "offset=0", gotQuery, "an explicit zero offset is a value, not an omission")
}

func TestSearchDocumentsPagination(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/documents/search", r.URL.Path)
		w.Write([]byte(`{"status":"success","results":{
			"documents":[
				{"id":1,"file_path":"/docs/a.pdf","file_type":"pdf","file_size":1024,
				 "last_modified":"2026-08-01T10:00:00Z","content_preview":"alpha","status":"indexed","chunk_count":4},
				{"id":2,"file_path":"/docs/b.md","file_type":"md","file_size":256,
				 "last_modified":"2026-08-02T11:30:00Z","content_preview":"beta","status":"pending"}
			],
			"total":12,"limit":2,"offset":0,"has_more":true}}`))
	}))

	resp, err := c.SearchDocuments(context.Background(), protocol.SearchParams{})
	require.NoError(t, err)

	require.Len(t, resp.Results.Documents, 2)
	assert.True(t, resp.Results.HasMore)
	assert.Equal(t, 12, resp.Results.Total)

	first := resp.Results.Documents[0]
	require.NotNil(t, first.ChunkCount)
	assert.Equal(t, 4, *first.ChunkCount)
	assert.Nil(t, resp.Results.Documents[1].ChunkCount)
}

func TestClearIndex(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/clear-index", r.URL.Path)
		json.NewEncoder(w).Encode(protocol.Ack{Status: "success", Message: "index cleared"})
	}))

	ack, err := c.ClearIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "index cleared", ack.Message)
}

func TestConfigurationPassthrough(t *testing.T) {
	var gotBody map[string]any
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			require.Equal(t, "/configuration", r.URL.Path)
			w.Write([]byte(`{"chunk_size":512,"model":"llama3","rerank":true}`))
		case http.MethodPost:
			require.Equal(t, "/update-configuration", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			json.NewEncoder(w).Encode(gotBody)
		}
	}))

	cfg, err := c.GetConfiguration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "llama3", cfg["model"])
	assert.Equal(t, true, cfg["rerank"])

	updated, err := c.UpdateConfiguration(context.Background(), map[string]any{"chunk_size": 1024})
	require.NoError(t, err)
	assert.Equal(t, float64(1024), gotBody["chunk_size"])
	assert.Equal(t, float64(1024), updated["chunk_size"])
}
