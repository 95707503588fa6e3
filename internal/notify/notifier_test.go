package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type recordingNotifier struct {
	sent []string
	err  error
}

func (n *recordingNotifier) Send(ctx context.Context, text string) error {
	n.sent = append(n.sent, text)
	return n.err
}

func TestMultiFansOut(t *testing.T) {
	first := &recordingNotifier{}
	second := &recordingNotifier{}

	m := Multi{first, second}
	if err := m.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if len(first.sent) != 1 || len(second.sent) != 1 {
		t.Errorf("deliveries = %d/%d, want 1/1", len(first.sent), len(second.sent))
	}
}

func TestMultiContinuesPastFailures(t *testing.T) {
	failure := errors.New("channel down")
	broken := &recordingNotifier{err: failure}
	working := &recordingNotifier{}

	m := Multi{broken, working}
	err := m.Send(context.Background(), "hello")

	if !errors.Is(err, failure) {
		t.Errorf("Send error = %v, want the channel failure", err)
	}
	if len(working.sent) != 1 {
		t.Error("failure on one channel stopped delivery to the next")
	}
}

func TestTelegramSend(t *testing.T) {
	var gotPath string
	var gotMessage telegramMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotMessage); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	tg := NewTelegram("bot-token", "42")
	tg.apiBase = server.URL

	if err := tg.Send(context.Background(), "Alice has entered!"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if !strings.Contains(gotPath, "botbot-token/sendMessage") {
		t.Errorf("request path = %q", gotPath)
	}
	if gotMessage.ChatID != "42" || gotMessage.Text != "Alice has entered!" {
		t.Errorf("message = %+v", gotMessage)
	}
}

func TestTelegramSendReportsAPIFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	tg := NewTelegram("bot-token", "42")
	tg.apiBase = server.URL

	if err := tg.Send(context.Background(), "hello"); err == nil {
		t.Error("Send succeeded against a failing API")
	}
}
