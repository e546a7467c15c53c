// Package extract drafts invoice data from free-form text using an
// OpenAI-compatible LLM. The output is a starting point for the invoice
// builder, not a finished request: callers review the draft before
// generating.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"

	"github.com/rezonia/envoice-go/internal/model"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultTimeout = 60 * time.Second
	DefaultModel   = "openai/gpt-4o-mini"
)

// Client handles communication with OpenAI-compatible APIs
type Client struct {
	client openai.Client
	model  string
}

// ClientOption configures the client
type ClientOption func(*clientConfig)

type clientConfig struct {
	baseURL string
	timeout time.Duration
	model   string
}

// WithBaseURL sets a custom base URL
func WithBaseURL(url string) ClientOption {
	return func(cfg *clientConfig) {
		cfg.baseURL = url
	}
}

// WithTimeout sets a custom HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(cfg *clientConfig) {
		cfg.timeout = timeout
	}
}

// WithModel sets the model used for drafting
func WithModel(model string) ClientOption {
	return func(cfg *clientConfig) {
		cfg.model = model
	}
}

// NewClient creates a new drafting client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	cfg := &clientConfig{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		model:   DefaultModel,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(cfg.baseURL),
		option.WithHTTPClient(&http.Client{Timeout: cfg.timeout}),
	}

	return &Client{
		client: openai.NewClient(clientOpts...),
		model:  cfg.model,
	}
}

// Draft extracts invoice data from free-form text
func (c *Client) Draft(ctx context.Context, text string) (*model.InvoiceData, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPromptDraft),
		openai.UserMessage(fmt.Sprintf(userPromptDraft, text)),
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   param.NewOpt[int64](2048),
		Temperature: param.NewOpt[float64](0.1),
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	raw := ExtractJSON(resp.Choices[0].Message.Content)

	var invoice model.InvoiceData
	if err := json.Unmarshal([]byte(raw), &invoice); err != nil {
		return nil, fmt.Errorf("parse drafted invoice: %w", err)
	}

	Normalize(&invoice)
	return &invoice, nil
}

// Normalize fills the defaults the model tends to leave out: unit and
// VAT rate per line, and the invoice currency.
func Normalize(invoice *model.InvoiceData) {
	if invoice.Currency == "" {
		invoice.Currency = model.DefaultCurrency
	}
	for i := range invoice.Items {
		if invoice.Items[i].Unit == "" {
			invoice.Items[i].Unit = model.DefaultUnit
		}
		if invoice.Items[i].VATRate == 0 {
			invoice.Items[i].VATRate = model.DefaultVATRate
		}
	}
}
