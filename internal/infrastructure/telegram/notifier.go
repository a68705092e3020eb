package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"SeoContentEngine/internal/ports"
)

const defaultBaseURL = "https://api.telegram.org"

// messageLimit is Telegram's sendMessage text cap in characters.
const messageLimit = 4096

// Notifier sends batch and analytics digests to a Telegram chat via bot API.
type Notifier struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers bot token and chat identifier.
func NewNotifier(botToken, chatID string) *Notifier {
	return &Notifier{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  defaultBaseURL,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// PublishDigest posts a plain-text message to the configured chat. Digests
// longer than Telegram's limit are truncated rather than rejected.
func (n *Notifier) PublishDigest(ctx context.Context, digest string) error {
	if n.botToken == "" || n.chatID == "" || n.client == nil {
		return fmt.Errorf("telegram notifier misconfigured")
	}

	payload, err := json.Marshal(map[string]any{
		"chat_id":                  n.chatID,
		"text":                     truncate(digest, messageLimit),
		"disable_web_page_preview": true,
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Description string `json:"description"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Description != "" {
			return fmt.Errorf("telegram error %s: %s", resp.Status, apiErr.Description)
		}
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
