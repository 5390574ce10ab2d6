// Package main provides a CLI front end for the Klair AI backend.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dummassdenzel/Klair-AI-sub001/internal/config"
	"github.com/dummassdenzel/Klair-AI-sub001/pkg/client"
	"github.com/dummassdenzel/Klair-AI-sub001/pkg/logging"
	"github.com/dummassdenzel/Klair-AI-sub001/pkg/protocol"
	"github.com/dummassdenzel/Klair-AI-sub001/pkg/retry"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	serverURL := flag.String("server", cfg.ServerURL, "Backend URL")
	token := flag.String("token", cfg.AuthToken, "Bearer token")
	verbose := flag.Bool("v", false, "Debug logging")
	window := flag.Int("window", 0, "Time window in minutes (metrics/analytics)")
	bucket := flag.Int("bucket", 0, "Bucket size in minutes (time-series)")
	buckets := flag.Int("buckets", 0, "Bucket count (performance trends)")
	limit := flag.Int("limit", -1, "Result limit (search, recent queries)")
	offset := flag.Int("offset", -1, "Result offset (search)")
	fileType := flag.String("type", "", "File type filter (search)")

	flag.Parse()

	level := cfg.LogLevel
	if *verbose {
		level = "debug"
	}
	if err := logging.Init(logging.Config{Level: level, Format: cfg.LogFormat, File: cfg.LogFile}); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	c := client.New(client.Config{
		BaseURL:   *serverURL,
		Timeout:   cfg.RequestTimeout,
		AuthToken: *token,
		Logger:    logging.L(),
	})

	ctx := context.Background()
	cmd := args[0]
	cmdArgs := args[1:]

	var err error
	switch cmd {
	case "status":
		err = cmdStatus(ctx, c)
	case "wait":
		err = cmdWait(ctx, c)
	case "set-dir":
		err = cmdSetDir(ctx, c, cmdArgs)
	case "select-dir":
		err = dumpJSON(c.SelectDirectory(ctx))
	case "chat":
		err = cmdChat(ctx, c, cmdArgs)
	case "search":
		err = cmdSearch(ctx, c, *fileType, strings.Join(cmdArgs, " "), *limit, *offset)
	case "stats":
		err = cmdStats(ctx, c)
	case "clear-index":
		err = ackResult(c.ClearIndex(ctx))
	case "sessions", "ls":
		err = cmdSessions(ctx, c)
	case "new-session":
		err = cmdNewSession(ctx, c, cmdArgs)
	case "rename-session":
		err = cmdRenameSession(ctx, c, cmdArgs)
	case "rm-session":
		err = cmdRemoveSession(ctx, c, cmdArgs)
	case "messages":
		err = cmdMessages(ctx, c, cmdArgs)
	case "config":
		err = cmdConfig(ctx, c, cmdArgs)
	case "metrics":
		err = cmdMetrics(ctx, c, cmdArgs, *window, *bucket, *limit)
	case "analytics":
		err = cmdAnalytics(ctx, c, cmdArgs, *window, *buckets)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if ae, ok := client.AsAPIError(err); ok {
			logging.Error("request rejected",
				zap.String("path", ae.Path),
				zap.Int("status", ae.StatusCode))
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Klair AI CLI

Usage: klair-cli [flags] <command> [args]

Commands:
  status                     Show server status
  wait                       Block until the processor is ready
  set-dir <path>             Set the indexed directory
  select-dir                 Trigger the server-side directory picker
  chat <session-id> <text>   Send a chat message
  search [text]              Search indexed documents (-type, -limit, -offset)
  stats                      Show document index stats
  clear-index                Remove all indexed documents
  sessions                   List chat sessions
  new-session <title>        Create a chat session
  rename-session <id> <t>    Rename a chat session
  rm-session <id>            Delete a chat session
  messages <id>              Dump a session's messages (raw JSON)
  config [key=value ...]     Show or update backend configuration
  metrics <report>           summary|retrieval|timeseries|recent|counters
  analytics <report>         patterns|usage|effectiveness|trends|success

Environment: KLAIR_SERVER_URL, KLAIR_AUTH_TOKEN, KLAIR_LOG_LEVEL (or .env)`)
}

func cmdStatus(ctx context.Context, c *client.Client) error {
	st, err := c.GetStatus(ctx)
	if err != nil {
		return err
	}

	dir := "(not set)"
	if st.CurrentDirectory != nil {
		dir = *st.CurrentDirectory
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Directory:\t%s\n", dir)
	fmt.Fprintf(w, "Processor ready:\t%v\n", st.ProcessorReady)
	fmt.Fprintf(w, "File monitor:\t%s\n", st.FileMonitorStatus)
	fmt.Fprintf(w, "Documents:\t%d\n", st.DocumentStats.TotalDocuments)
	return w.Flush()
}

// cmdWait polls /status until the processor reports ready. Retry policy
// lives here in the caller, not in the client.
func cmdWait(ctx context.Context, c *client.Client) error {
	waitCfg := retry.Config{
		MaxAttempts: 0, // poll until ready or interrupted
		InitialWait: time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  1.5,
	}
	st, err := retry.DoWithResult(ctx, waitCfg, func() (*protocol.SystemStatus, error) {
		st, err := c.GetStatus(ctx)
		if err != nil {
			return nil, retry.Retryable(err)
		}
		if !st.ProcessorReady {
			return nil, retry.Retryable(fmt.Errorf("processor not ready"))
		}
		return st, nil
	})
	if err != nil {
		return err
	}
	fmt.Printf("Ready (%d documents indexed)\n", st.DocumentStats.TotalDocuments)
	return nil
}

func cmdSetDir(ctx context.Context, c *client.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: set-dir <path>")
	}
	resp, err := c.SetDirectory(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s (%s)\n", resp.Status, resp.Message, resp.ProcessingStatus)
	return nil
}

func cmdChat(ctx context.Context, c *client.Client, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: chat <session-id> <message>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid session id %q", args[0])
	}

	resp, err := c.SendChatMessage(ctx, protocol.ChatRequest{
		SessionID: id,
		Message:   strings.Join(args[1:], " "),
	})
	if err != nil {
		return err
	}

	fmt.Println(resp.Message)
	if len(resp.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, src := range resp.Sources {
			fmt.Printf("  %s (score %.2f)\n", src.FilePath, src.Score)
		}
	}
	fmt.Printf("\n(%.2fs)\n", resp.ResponseTime)
	return nil
}

func cmdSearch(ctx context.Context, c *client.Client, fileType, query string, limit, offset int) error {
	params := protocol.SearchParams{Query: query, FileType: fileType}
	if limit >= 0 {
		params.Limit = &limit
	}
	if offset >= 0 {
		params.Offset = &offset
	}

	resp, err := c.SearchDocuments(ctx, params)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tSTATUS\tPATH")
	for _, doc := range resp.Results.Documents {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", doc.ID, doc.FileType, doc.Status, doc.FilePath)
	}
	w.Flush()
	fmt.Printf("%d of %d", len(resp.Results.Documents), resp.Results.Total)
	if resp.Results.HasMore {
		fmt.Printf(" (more at offset %d)", resp.Results.Offset+resp.Results.Limit)
	}
	fmt.Println()
	return nil
}

func cmdStats(ctx context.Context, c *client.Client) error {
	stats, err := c.GetDocumentStats(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Total documents: %d\n", stats.TotalDocuments)
	printCounts("By status", stats.StatusCounts)
	printCounts("By type", stats.FileTypeCounts)
	return nil
}

func printCounts(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("%s:\n", title)
	for _, k := range keys {
		fmt.Printf("  %-12s %d\n", k, counts[k])
	}
}

func cmdSessions(ctx context.Context, c *client.Client) error {
	sessions, err := c.GetChatSessions(ctx)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tMESSAGES\tUPDATED\tDIRECTORY")
	for _, s := range sessions {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n",
			s.ID, s.Title, s.MessageCount, s.UpdatedAt.Format("2006-01-02 15:04"), s.Directory)
	}
	return w.Flush()
}

func cmdNewSession(ctx context.Context, c *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: new-session <title>")
	}
	session, err := c.CreateChatSession(ctx, "", strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Printf("Created session %d: %s\n", session.ID, session.Title)
	return nil
}

func cmdRenameSession(ctx context.Context, c *client.Client, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: rename-session <id> <title>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid session id %q", args[0])
	}
	session, err := c.UpdateChatSessionTitle(ctx, id, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	fmt.Printf("Renamed session %d to %q\n", session.ID, session.Title)
	return nil
}

func cmdRemoveSession(ctx context.Context, c *client.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: rm-session <id>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid session id %q", args[0])
	}
	return ackResult(c.DeleteChatSession(ctx, id))
}

func cmdMessages(ctx context.Context, c *client.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: messages <id>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid session id %q", args[0])
	}
	// The messages envelope is not stable across backend versions, so it is
	// dumped as received.
	return dumpJSON(c.GetChatMessages(ctx, id))
}

func cmdConfig(ctx context.Context, c *client.Client, args []string) error {
	if len(args) == 0 {
		cfg, err := c.GetConfiguration(ctx)
		if err != nil {
			return err
		}
		return printJSON(cfg)
	}

	update := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("expected key=value, got %q", arg)
		}
		update[key] = coerce(value)
	}
	cfg, err := c.UpdateConfiguration(ctx, update)
	if err != nil {
		return err
	}
	return printJSON(cfg)
}

// coerce turns CLI strings into JSON-typed values where possible.
func coerce(s string) any {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

func cmdMetrics(ctx context.Context, c *client.Client, args []string, window, bucket, limit int) error {
	report := "summary"
	if len(args) > 0 {
		report = args[0]
	}

	switch report {
	case "summary":
		return dumpJSON(c.GetMetricsSummary(ctx, window))
	case "retrieval":
		return dumpJSON(c.GetRetrievalStats(ctx, window))
	case "timeseries":
		if len(args) < 2 {
			return fmt.Errorf("usage: metrics timeseries <metric-type>")
		}
		return dumpJSON(c.GetTimeSeries(ctx, args[1], window, bucket))
	case "recent":
		return dumpJSON(c.GetRecentQueries(ctx, limit))
	case "counters":
		return dumpJSON(c.GetCounters(ctx))
	default:
		return fmt.Errorf("unknown metrics report %q", report)
	}
}

func cmdAnalytics(ctx context.Context, c *client.Client, args []string, window, buckets int) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: analytics <report>")
	}

	switch args[0] {
	case "patterns":
		return dumpJSON(c.GetQueryPatterns(ctx, window))
	case "usage":
		return dumpJSON(c.GetDocumentUsage(ctx))
	case "effectiveness":
		return dumpJSON(c.GetRetrievalEffectiveness(ctx, window))
	case "trends":
		return dumpJSON(c.GetPerformanceTrends(ctx, window, buckets))
	case "success":
		return dumpJSON(c.GetQuerySuccess(ctx, window))
	default:
		return fmt.Errorf("unknown analytics report %q", args[0])
	}
}

func ackResult(ack *protocol.Ack, err error) error {
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s\n", ack.Status, ack.Message)
	return nil
}

func dumpJSON(raw json.RawMessage, err error) error {
	if err != nil {
		return err
	}
	return printJSON(raw)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
