package schedservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// caller общий HTTP-транспорт для клиентов scheduling service
type caller struct {
	baseURL    string
	httpClient *http.Client
	metrics    Metrics
	log        Logger
}

func newCaller(baseURL string, timeout time.Duration, log Logger, m Metrics) caller {
	return caller{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: m,
		log:     log,
	}
}

// doJSON выполняет запрос и возвращает статус-код и тело ответа.
// Транспортные ошибки (connect refused, timeout) нормализуются в ErrNetwork.
// Обработка статус-кодов остаётся за вызывающей операцией.
func (c *caller) doJSON(ctx context.Context, operation, method, url string, body interface{}, token string) (int, []byte, error) {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(operation, 0, time.Since(start))
		c.log.Error("%s: request failed: %v", operation, err)
		return 0, nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	c.observe(operation, resp.StatusCode, time.Since(start))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: failed to read response: %v", ErrNetwork, err)
	}

	return resp.StatusCode, respBody, nil
}

func (c *caller) observe(operation string, statusCode int, duration time.Duration) {
	if c.metrics != nil {
		c.metrics.ObserveOutbound(operation, statusCode, duration)
	}
}

// decodeError извлекает {error: string} из тела ответа.
// Возвращает пустую строку, если тело не парсится.
func decodeError(body []byte) string {
	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return ""
	}
	return er.Error
}
