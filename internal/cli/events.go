package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"
)

func newGameWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <id>",
		Short: "Follow a game's live updates",
		Long: `Connect to the game's SSE endpoint and print updates as they happen.

Events:
  - board-update: the board changed
  - game-over: the game finished; the stream ends

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return streamEvents(ctx, cmd.OutOrStdout(), args[0], cfg.Output == "json")
		},
	}

	return cmd
}

// SSEEvent is a parsed SSE event
type SSEEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Data  string    `json:"data"`
}

func streamEvents(ctx context.Context, w io.Writer, id string, jsonOutput bool) error {
	// SSE is served by the web router, not under /api
	endpoint := client.BaseURL() + "/games/" + url.PathEscape(id) + "/events"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return fmt.Errorf("game %s not found", id)
	default:
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if !jsonOutput {
		_, _ = fmt.Fprintf(w, "Watching game %s\n", id)
	}

	scanner := bufio.NewScanner(resp.Body)
	var currentEvent string
	var dataLines []string

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "event: "):
			currentEvent = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		case line == "":
			if currentEvent != "" {
				printEvent(w, currentEvent, strings.Join(dataLines, "\n"), jsonOutput)
			}
			if currentEvent == "game-over" {
				return nil
			}
			currentEvent = ""
			dataLines = nil
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}

	if !jsonOutput {
		_, _ = fmt.Fprintln(w, "Disconnected")
	}
	return nil
}

func printEvent(w io.Writer, event, data string, jsonOutput bool) {
	now := time.Now()

	if jsonOutput {
		line, _ := json.Marshal(SSEEvent{Time: now, Event: event, Data: data})
		_, _ = fmt.Fprintln(w, string(line))
		return
	}

	timestamp := now.Format("2006-01-02 15:04:05")
	switch event {
	case "board-update":
		board, status := summarizeFragment(data)
		_, _ = fmt.Fprintf(w, "[%s] %s\n", timestamp, status)
		_, _ = fmt.Fprint(w, board)
	case "game-over":
		_, _ = fmt.Fprintf(w, "[%s] game over: %s\n", timestamp, data)
	default:
		_, _ = fmt.Fprintf(w, "[%s] %s: %s\n", timestamp, event, strings.ReplaceAll(data, "\n", " "))
	}
}

// summarizeFragment turns a rendered board fragment back into a text board
// and its status line.
func summarizeFragment(fragment string) (string, string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fragment
	}

	var sb strings.Builder
	doc.Find("#board tr").Each(func(_ int, row *goquery.Selection) {
		row.Find("td.cell").Each(func(_ int, cell *goquery.Selection) {
			text := strings.TrimSpace(cell.Text())
			if text == "" {
				text = "."
			}
			sb.WriteString(text)
		})
		sb.WriteByte('\n')
	})

	status := strings.TrimSpace(doc.Find("#game-status").Text())
	return sb.String(), status
}
