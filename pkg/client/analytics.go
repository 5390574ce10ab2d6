package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// Client-side defaults for the metrics and analytics windowing parameters.
// They are filled in before the request goes out, so the backend always sees
// explicit values.
const (
	DefaultTimeWindowMinutes = 60
	DefaultBucketMinutes     = 5
	DefaultRecentQueryLimit  = 20
	DefaultTrendBuckets      = 6
)

// Metrics and analytics payloads are aggregate reports whose shapes evolve
// independently of this client. They cross the boundary as raw JSON and
// consumers narrow them locally.

func windowQuery(minutes int) url.Values {
	if minutes <= 0 {
		minutes = DefaultTimeWindowMinutes
	}
	return url.Values{"time_window_minutes": []string{strconv.Itoa(minutes)}}
}

// GetMetricsSummary fetches the aggregate metrics summary. A non-positive
// window falls back to DefaultTimeWindowMinutes.
func (c *Client) GetMetricsSummary(ctx context.Context, windowMinutes int) (json.RawMessage, error) {
	return c.doRaw(ctx, http.MethodGet, "/metrics/summary", windowQuery(windowMinutes), nil)
}

// GetRetrievalStats fetches retrieval quality statistics.
func (c *Client) GetRetrievalStats(ctx context.Context, windowMinutes int) (json.RawMessage, error) {
	return c.doRaw(ctx, http.MethodGet, "/metrics/retrieval-stats", windowQuery(windowMinutes), nil)
}

// GetTimeSeries fetches bucketed values for one metric type.
func (c *Client) GetTimeSeries(ctx context.Context, metricType string, windowMinutes, bucketMinutes int) (json.RawMessage, error) {
	if bucketMinutes <= 0 {
		bucketMinutes = DefaultBucketMinutes
	}
	query := windowQuery(windowMinutes)
	query.Set("metric_type", metricType)
	query.Set("bucket_minutes", strconv.Itoa(bucketMinutes))
	return c.doRaw(ctx, http.MethodGet, "/metrics/time-series", query, nil)
}

// GetRecentQueries fetches the most recent queries, newest first.
func (c *Client) GetRecentQueries(ctx context.Context, limit int) (json.RawMessage, error) {
	if limit <= 0 {
		limit = DefaultRecentQueryLimit
	}
	query := url.Values{"limit": []string{strconv.Itoa(limit)}}
	return c.doRaw(ctx, http.MethodGet, "/metrics/recent-queries", query, nil)
}

// GetCounters fetches the raw lifetime counters.
func (c *Client) GetCounters(ctx context.Context) (json.RawMessage, error) {
	return c.doRaw(ctx, http.MethodGet, "/metrics/counters", nil, nil)
}

// GetQueryPatterns fetches query pattern analytics.
func (c *Client) GetQueryPatterns(ctx context.Context, windowMinutes int) (json.RawMessage, error) {
	return c.doRaw(ctx, http.MethodGet, "/analytics/query-patterns", windowQuery(windowMinutes), nil)
}

// GetDocumentUsage fetches per-document retrieval usage.
func (c *Client) GetDocumentUsage(ctx context.Context) (json.RawMessage, error) {
	return c.doRaw(ctx, http.MethodGet, "/analytics/document-usage", nil, nil)
}

// GetRetrievalEffectiveness fetches retrieval effectiveness analytics.
func (c *Client) GetRetrievalEffectiveness(ctx context.Context, windowMinutes int) (json.RawMessage, error) {
	return c.doRaw(ctx, http.MethodGet, "/analytics/retrieval-effectiveness", windowQuery(windowMinutes), nil)
}

// GetPerformanceTrends fetches performance trends split into bucket count
// buckets over the window.
func (c *Client) GetPerformanceTrends(ctx context.Context, windowMinutes, buckets int) (json.RawMessage, error) {
	if buckets <= 0 {
		buckets = DefaultTrendBuckets
	}
	query := windowQuery(windowMinutes)
	query.Set("buckets", strconv.Itoa(buckets))
	return c.doRaw(ctx, http.MethodGet, "/analytics/performance-trends", query, nil)
}

// GetQuerySuccess fetches query success-rate analytics.
func (c *Client) GetQuerySuccess(ctx context.Context, windowMinutes int) (json.RawMessage, error) {
	return c.doRaw(ctx, http.MethodGet, "/analytics/query-success", windowQuery(windowMinutes), nil)
}
