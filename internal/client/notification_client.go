package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"project-config-api/internal/domain"
	"project-config-api/internal/metrics"
)

// NotificationType is the kind of configuration event announced to the notification service
type NotificationType string

const (
	NotificationConfigurationCompleted NotificationType = "CONFIGURATION_COMPLETED"
	NotificationConfigurationLocked    NotificationType = "CONFIGURATION_LOCKED"
)

// ResourceTypeConfiguration is the resource type carried by configuration events
const ResourceTypeConfiguration = "CONFIGURATION"

const notificationPath = "/api/internal/notifications"

// NotificationEvent is the body posted to the notification service
type NotificationEvent struct {
	Type         NotificationType       `json:"type"`
	ProjectID    uuid.UUID              `json:"projectId"`
	ResourceType string                 `json:"resourceType"`
	ResourceID   uuid.UUID              `json:"resourceId"`
	ResourceName string                 `json:"resourceName,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt   string                 `json:"occurredAt,omitempty"`
}

// NewConfigurationEvent describes a lifecycle change of a configuration
func NewConfigurationEvent(kind NotificationType, cfg *domain.Configuration) NotificationEvent {
	return NotificationEvent{
		Type:         kind,
		ProjectID:    cfg.ProjectID,
		ResourceType: ResourceTypeConfiguration,
		ResourceID:   cfg.ID,
		ResourceName: cfg.Name,
		Metadata: map[string]interface{}{
			"version":    cfg.Version,
			"selections": len(cfg.Items),
			"completed":  cfg.IsCompleted,
			"locked":     cfg.IsLocked,
		},
	}
}

// NotificationClient announces configuration events
type NotificationClient interface {
	// SendNotification delivers one event. Delivery problems are logged, not returned,
	// so a lifecycle operation never fails because the notification service is down.
	SendNotification(ctx context.Context, event NotificationEvent) error
}

type notificationClient struct {
	url        string
	apiKey     string
	httpClient *http.Client
	attempts   int
	backoff    time.Duration
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewNotificationClient creates a client for the notification service at baseURL.
// Network errors and 5xx answers are retried once.
func NewNotificationClient(baseURL string, apiKey string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) NotificationClient {
	return &notificationClient{
		url:        baseURL + notificationPath,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		attempts:   2,
		backoff:    200 * time.Millisecond,
		logger:     logger,
		metrics:    m,
	}
}

func (c *notificationClient) SendNotification(ctx context.Context, event NotificationEvent) error {
	if event.OccurredAt == "" {
		event.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	}
	if event.ResourceType == "" {
		event.ResourceType = ResourceTypeConfiguration
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	log := c.logger.With(
		zap.String("type", string(event.Type)),
		zap.String("resource_id", event.ResourceID.String()),
	)

	for attempt := 1; attempt <= c.attempts; attempt++ {
		status, err := c.post(ctx, body)
		retryable := err != nil || status >= 500

		switch {
		case err == nil && status < 300:
			log.Info("Notification sent", zap.Int("attempt", attempt))
			return nil
		case !retryable:
			log.Warn("Notification rejected", zap.Int("status_code", status))
			return nil
		case attempt == c.attempts:
			log.Error("Notification not delivered",
				zap.Int("attempts", attempt),
				zap.Int("status_code", status),
				zap.Error(err),
			)
			return nil
		}

		select {
		case <-ctx.Done():
			log.Warn("Notification abandoned", zap.Error(ctx.Err()))
			return nil
		case <-time.After(c.backoff):
		}
	}
	return nil
}

// post sends one request and reports the status code, 0 when no response arrived
func (c *notificationClient) post(ctx context.Context, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-API-Key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	status := 0
	if resp != nil {
		status = resp.StatusCode
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(c.url, http.MethodPost, status, time.Since(start), err)
	}
	return status, err
}

// NoOpNotificationClient drops every event; used when no notification service is configured
type NoOpNotificationClient struct{}

func NewNoOpNotificationClient() NotificationClient {
	return &NoOpNotificationClient{}
}

func (c *NoOpNotificationClient) SendNotification(ctx context.Context, event NotificationEvent) error {
	return nil
}
