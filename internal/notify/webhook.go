// Package notify delivers fire-and-forget webhook calls for submissions and
// status changes. Delivery failures are logged and never surfaced to the
// operation that triggered them.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type EventKind string

const (
	EventApplicationCreated EventKind = "application.created"
	EventStatusUpdated      EventKind = "status.updated"
)

type delivery struct {
	kind    EventKind
	payload []byte
	attempt int
}

type Config struct {
	NewApplicationURL string
	StatusUpdateURL   string
	QueueSize         int
	MaxAttempts       int
	Timeout           time.Duration
}

// Webhook buffers outbound notifications and posts them from a single worker
// goroutine. The buffer is bounded: when it is full events are dropped and
// logged rather than blocking a submission.
type Webhook struct {
	client      *http.Client
	config      Config
	logger      *zap.Logger
	ch          chan delivery
	maxAttempts int
}

func NewWebhook(config Config, logger *zap.Logger) *Webhook {
	if config.QueueSize <= 0 {
		config.QueueSize = 256
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	return &Webhook{
		client:      &http.Client{Timeout: config.Timeout},
		config:      config,
		logger:      logger,
		ch:          make(chan delivery, config.QueueSize),
		maxAttempts: config.MaxAttempts,
	}
}

// ApplicationCreated enqueues the submission payload for the new-application
// hook. A nil receiver or missing hook URL makes this a no-op.
func (w *Webhook) ApplicationCreated(payload any) {
	if w == nil || w.config.NewApplicationURL == "" {
		return
	}
	w.enqueue(EventApplicationCreated, payload)
}

// StatusUpdated enqueues a status-change notification.
func (w *Webhook) StatusUpdated(trackerToken string, status string) {
	if w == nil || w.config.StatusUpdateURL == "" {
		return
	}
	w.enqueue(EventStatusUpdated, map[string]string{
		"trackerToken": trackerToken,
		"status":       status,
	})
}

func (w *Webhook) enqueue(kind EventKind, payload any) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		w.logger.Error("webhook payload marshal failed", zap.String("kind", string(kind)), zap.Error(err))
		return
	}
	select {
	case w.ch <- delivery{kind: kind, payload: encoded}:
	default:
		w.logger.Warn("webhook queue full, dropping event", zap.String("kind", string(kind)))
	}
}

// Start runs the delivery worker until the context is cancelled.
func (w *Webhook) Start(ctx context.Context) {
	if w == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case item := <-w.ch:
			w.deliver(ctx, item)
		}
	}
}

func (w *Webhook) deliver(ctx context.Context, item delivery) {
	url := w.config.NewApplicationURL
	if item.kind == EventStatusUpdated {
		url = w.config.StatusUpdateURL
	}

	err := w.post(ctx, url, item.payload)
	if err == nil {
		return
	}

	item.attempt++
	if item.attempt >= w.maxAttempts {
		w.logger.Error("webhook delivery dropped after retries",
			zap.String("kind", string(item.kind)),
			zap.Int("attempts", item.attempt),
			zap.Error(err),
		)
		return
	}

	w.logger.Warn("webhook delivery failed, retrying",
		zap.String("kind", string(item.kind)),
		zap.Int("attempt", item.attempt),
		zap.Error(err),
	)

	delay := time.Duration(item.attempt) * 500 * time.Millisecond
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
		select {
		case w.ch <- item:
		default:
			w.logger.Warn("webhook queue full, dropping retry", zap.String("kind", string(item.kind)))
		}
	}
}

func (w *Webhook) post(ctx context.Context, url string, body []byte) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := w.client.Do(request)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer response.Body.Close()
	if response.StatusCode >= 300 {
		return fmt.Errorf("webhook responded %d", response.StatusCode)
	}
	return nil
}
