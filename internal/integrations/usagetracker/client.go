package usagetracker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с сервисом учёта квот.
// Квота проверяется до вызова ядра бронирования: при исчерпанной квоте
// выбор и подтверждение слотов не выполняются вовсе.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса учёта квот
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// HasQuota проверяет, есть ли у салона квота на новые бронирования.
// При недоступности сервиса возвращает ErrUnavailable - вызывающая сторона
// обязана отказать в бронировании, а не пропустить проверку.
func (c *Client) HasQuota(ctx context.Context, salonID int64) (bool, error) {
	url := fmt.Sprintf("%s/internal/salons/%d/quota", c.baseURL, salonID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("UsageTracker unavailable for salon_id=%d: %v", salonID, err)
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		// Неизвестный салон - квоты нет
		return false, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var quota QuotaResponse
	if err := json.NewDecoder(resp.Body).Decode(&quota); err != nil {
		return false, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if quota.Unlimited {
		return true, nil
	}

	return quota.HasQuota, nil
}
