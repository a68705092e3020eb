package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func testNotifier(baseURL string) *Notifier {
	return &Notifier{
		botToken: "test-token",
		chatID:   "42",
		baseURL:  baseURL,
		client:   &http.Client{Timeout: time.Second},
	}
}

func TestPublishDigest(t *testing.T) {
	t.Parallel()

	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bottest-token/sendMessage" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	notifier := testNotifier(server.URL)
	if err := notifier.PublishDigest(context.Background(), "batch done"); err != nil {
		t.Fatalf("PublishDigest: %v", err)
	}

	if got["chat_id"] != "42" || got["text"] != "batch done" {
		t.Fatalf("unexpected payload: %v", got)
	}
}

func TestPublishDigestTruncatesLongMessages(t *testing.T) {
	t.Parallel()

	var sentText string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		sentText, _ = body["text"].(string)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	notifier := testNotifier(server.URL)
	digest := strings.Repeat("数", messageLimit+100)
	if err := notifier.PublishDigest(context.Background(), digest); err != nil {
		t.Fatalf("PublishDigest: %v", err)
	}

	if got := utf8.RuneCountInString(sentText); got != messageLimit {
		t.Fatalf("text should be cut at %d runes, got %d", messageLimit, got)
	}
}

func TestPublishDigestAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer server.Close()

	notifier := testNotifier(server.URL)
	err := notifier.PublishDigest(context.Background(), "digest")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "chat not found") {
		t.Fatalf("error should carry the API description: %v", err)
	}
}

func TestPublishDigestMisconfigured(t *testing.T) {
	t.Parallel()

	notifier := NewNotifier("", "")
	if err := notifier.PublishDigest(context.Background(), "digest"); err == nil {
		t.Fatal("expected error without credentials")
	}
}
