package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Client клиент сервиса уведомлений.
// Все вызовы fire-and-forget: ошибки уведомлений логируются вызывающей
// стороной и никогда не откатывают бронирование или отмену.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SessionBooked отправляет уведомление о созданном бронировании
func (c *Client) SessionBooked(ctx context.Context, event SessionBookedEvent) error {
	return c.post(ctx, "/internal/notifications/session-booked", event)
}

// SessionCancelled отправляет уведомление об отмене сессии
func (c *Client) SessionCancelled(ctx context.Context, event SessionCancelledEvent) error {
	return c.post(ctx, "/internal/notifications/session-cancelled", event)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("notifier.client: failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notifier.client: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notifier.client: failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("notifier.client: unexpected status code %d", resp.StatusCode)
	}

	return nil
}
