package automationclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

const (
	HeaderEvent    = "X-Alsham-Event"
	HeaderDelivery = "X-Alsham-Delivery"
)

type PostEventParams struct {
	EventType  string
	DeliveryID string
	Payload    []byte
}

// StatusError é devolvido quando o endpoint responde fora da faixa 2xx
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("requisição falhou com status: %s", e.Status)
	}
	return fmt.Sprintf("requisição falhou com status: %s: %s", e.Status, e.Body)
}

func (c *WebhookClient) PostEvent(ctx context.Context, params PostEventParams) error {
	if c.config.URL == "" {
		return ErrWebhookNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewReader(params.Payload))
	if err != nil {
		return fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderEvent, params.EventType)
	req.Header.Set(HeaderDelivery, params.DeliveryID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(bytes.TrimSpace(body)),
		}
	}

	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// Ping só falha em erro de transporte; qualquer resposta HTTP conta como alcançável
func (c *WebhookClient) Ping(ctx context.Context) error {
	if c.config.URL == "" {
		return ErrWebhookNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.config.URL, nil)
	if err != nil {
		return fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	resp.Body.Close()

	return nil
}
