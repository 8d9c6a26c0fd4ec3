package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestWebhookDeliversApplicationCreated(t *testing.T) {
	received := make(chan []byte, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- body
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	webhook := NewWebhook(Config{NewApplicationURL: server.URL}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go webhook.Start(ctx)

	webhook.ApplicationCreated(map[string]string{"tracker_token": "tok-1"})

	select {
	case body := <-received:
		var decoded map[string]string
		if err := json.Unmarshal(body, &decoded); err != nil {
			t.Fatalf("decode webhook body: %v", err)
		}
		if decoded["tracker_token"] != "tok-1" {
			t.Fatalf("unexpected payload %v", decoded)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("webhook never delivered")
	}
}

func TestWebhookRetriesThenDrops(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	webhook := NewWebhook(Config{StatusUpdateURL: server.URL, MaxAttempts: 2}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go webhook.Start(ctx)

	webhook.StatusUpdated("tok-1", "Under Review")

	deadline := time.After(3 * time.Second)
	for hits.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected 2 attempts, saw %d", hits.Load())
		case <-time.After(50 * time.Millisecond):
		}
	}

	// Give the worker room to misbehave; the count must stay at MaxAttempts.
	time.Sleep(1200 * time.Millisecond)
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected delivery to stop after %d attempts, saw %d", 2, got)
	}
}

func TestWebhookMissingURLIsNoOp(t *testing.T) {
	webhook := NewWebhook(Config{}, zap.NewNop())
	webhook.ApplicationCreated(map[string]string{"x": "y"})
	webhook.StatusUpdated("tok", "Under Review")
	if len(webhook.ch) != 0 {
		t.Fatalf("events without a hook URL must not be queued")
	}
}
