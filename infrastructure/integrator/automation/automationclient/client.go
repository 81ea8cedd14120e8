package automationclient

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/alsham360/prima-api/internal/config"
)

// ErrWebhookNotConfigured indica que nenhuma URL de automação foi configurada
var ErrWebhookNotConfigured = errors.New("automation webhook url is not configured")

type Client interface {
	PostEvent(ctx context.Context, params PostEventParams) error
	Ping(ctx context.Context) error
}

type WebhookClient struct {
	httpClient *http.Client
	config     config.Webhook
}

// NewClient cria o cliente do endpoint de automação
func NewClient(cfg *config.Config) Client {
	timeout := cfg.Webhook.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &WebhookClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: cfg.Webhook,
	}
}
