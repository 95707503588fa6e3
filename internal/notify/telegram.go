package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const telegramAPIBase = "https://api.telegram.org"

// Telegram delivers messages through the Telegram Bot API sendMessage call
type Telegram struct {
	client  *http.Client
	apiBase string
	token   string
	chatID  string
}

// NewTelegram creates a Telegram notifier for the given bot token and chat
func NewTelegram(token, chatID string) *Telegram {
	return &Telegram{
		client:  &http.Client{Timeout: 10 * time.Second},
		apiBase: telegramAPIBase,
		token:   token,
		chatID:  chatID,
	}
}

type telegramMessage struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// Send posts the message to the configured chat
func (t *Telegram) Send(ctx context.Context, text string) error {
	body, err := json.Marshal(telegramMessage{ChatID: t.chatID, Text: text})
	if err != nil {
		return fmt.Errorf("failed to encode telegram message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram sendMessage returned status %d", resp.StatusCode)
	}
	return nil
}
