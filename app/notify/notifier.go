package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lysyi3m/rss-digest/app/config"
	"github.com/lysyi3m/rss-digest/app/news"
)

const topStories = 5

type textContent struct {
	Text string `json:"text"`
}

// textMessage is the plain text payload accepted by Feishu/Lark bot webhooks.
type textMessage struct {
	MsgType string      `json:"msg_type"`
	Content textContent `json:"content"`
}

type webhookReply struct {
	Code *int   `json:"code"`
	Msg  string `json:"msg"`
}

// ResolveWebhook picks the webhook from the policy, falling back to
// fallbackURL. An empty result means notifications are off.
func ResolveWebhook(policy config.Notification, fallbackURL string) string {
	if !policy.IsEnabled() {
		return ""
	}
	if url := strings.TrimSpace(policy.WebhookURL); url != "" {
		return url
	}
	return strings.TrimSpace(fallbackURL)
}

type Notifier struct {
	httpClient *http.Client
	webhookURL string
	timeout    time.Duration
	logger     *slog.Logger
}

func NewNotifier(httpClient *http.Client, webhookURL string, timeout time.Duration, logger *slog.Logger) *Notifier {
	return &Notifier{
		httpClient: httpClient,
		webhookURL: webhookURL,
		timeout:    timeout,
		logger:     logger,
	}
}

// Send posts the digest summary with the highest scored items.
func (n *Notifier) Send(ctx context.Context, summary news.Summary, filtered []news.NewsItem) error {
	payload, err := json.Marshal(textMessage{
		MsgType: "text",
		Content: textContent{Text: FormatMessage(summary, filtered)},
	})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post webhook: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read webhook response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var reply webhookReply
	if err := json.Unmarshal(body, &reply); err == nil && reply.Code != nil && *reply.Code != 0 {
		return fmt.Errorf("webhook rejected message: code %d: %s", *reply.Code, reply.Msg)
	}

	n.logger.Info("Notification sent", "filtered", summary.FilteredCount, "sources", len(summary.Sources))
	return nil
}

// FormatMessage renders the notification text.
func FormatMessage(summary news.Summary, filtered []news.NewsItem) string {
	var b strings.Builder

	fmt.Fprintf(&b, "News digest %s\n", summary.Date)
	fmt.Fprintf(&b, "Collected: %d | Filtered: %d\n", summary.TotalCollected, summary.FilteredCount)
	if len(summary.Sources) > 0 {
		fmt.Fprintf(&b, "Sources: %s\n", strings.Join(summary.Sources, ", "))
	}
	if len(summary.Keywords) > 0 {
		fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(summary.Keywords, ", "))
	}

	if len(filtered) > 0 {
		b.WriteString("\nTop stories:\n")
		for i, item := range filtered {
			if i == topStories {
				break
			}
			title := news.StripHTML(item.Title)
			if title == "" {
				title = "Untitled"
			}
			fmt.Fprintf(&b, "%d. %s\n   %s\n", i+1, title, item.Link)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
