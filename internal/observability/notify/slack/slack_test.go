package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tarpehcare/portal/internal/observability/notify"
)

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("expected error when webhook url missing")
	}
}

func TestFormatMessageIncludesFields(t *testing.T) {
	client, err := NewClient(Config{
		WebhookURL: "https://hooks.slack.com/services/test",
		Channel:    "#care-team",
		Username:   "bot",
		Timeout:    time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := client.formatMessage(notify.Event{
		Kind:  notify.KindIntakeReceived,
		Title: "New care inquiry",
		Fields: map[string]string{
			"contact": "Jordan Reed",
			"email":   "jordan@example.com",
			"needs":   "overnight companion care",
		},
	})

	if msg["username"] != "bot" {
		t.Fatalf("expected username to be preserved, got %v", msg["username"])
	}
	if msg["channel"] != "#care-team" {
		t.Fatalf("expected channel to be set, got %v", msg["channel"])
	}

	text, ok := msg["text"].(string)
	if !ok {
		t.Fatalf("expected text field")
	}
	for _, want := range []string{"New care inquiry", "Jordan Reed", "jordan@example.com", "overnight companion care"} {
		if !strings.Contains(text, want) {
			t.Fatalf("message text missing %q: %s", want, text)
		}
	}
}

func TestFormatMessageFallsBackToKind(t *testing.T) {
	client, err := NewClient(Config{WebhookURL: "https://hooks.slack.com/services/test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := client.formatMessage(notify.Event{Kind: notify.KindShiftMissed})
	text, _ := msg["text"].(string)
	if !strings.Contains(text, notify.KindShiftMissed) {
		t.Fatalf("expected kind in text, got %s", text)
	}
	if _, ok := msg["channel"]; ok {
		t.Fatal("channel should be omitted when not configured")
	}
}

func TestSendPostsJSON(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewClient(Config{WebhookURL: srv.URL, Username: "bot"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	event := notify.Event{Kind: notify.KindBookingReceived, Title: "New booking request"}
	if err := client.Send(context.Background(), event); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got["username"] != "bot" {
		t.Fatalf("unexpected payload: %v", got)
	}
}

func TestSendRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewClient(Config{WebhookURL: srv.URL, RetryLimit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := client.Send(context.Background(), notify.Event{Kind: notify.KindShiftReminder}); err != nil {
		t.Fatalf("send should succeed after retry: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
}
