package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rezonia/envoice-go/internal/model"
)

const (
	DefaultBaseURL = "https://api.envoice.dev"
	DefaultTimeout = 30 * time.Second
)

// apiKeyHeader carries the key verbatim on every request
const apiKeyHeader = "X-API-Key"

// Client handles communication with the envoice API.
// All fields are immutable after construction, so a single client may be
// shared by any number of builders and goroutines.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures the client
type ClientOption func(*clientConfig)

type clientConfig struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// WithBaseURL sets a custom base URL
func WithBaseURL(url string) ClientOption {
	return func(cfg *clientConfig) {
		cfg.baseURL = url
	}
}

// WithTimeout sets a custom per-request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(cfg *clientConfig) {
		cfg.timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client. The caller is then responsible
// for the timeout; WithTimeout has no effect on a supplied client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(cfg *clientConfig) {
		cfg.httpClient = hc
	}
}

// NewClient creates a new envoice API client. The API key is mandatory;
// an empty or all-whitespace key fails here rather than on first use.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("API key is required")
	}

	cfg := &clientConfig{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.timeout}
	}

	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(cfg.baseURL, "/"),
		httpClient: httpClient,
	}, nil
}

// BaseURL returns the configured base URL with any trailing slash stripped
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Invoice starts a new invoice builder bound to this client
func (c *Client) Invoice() *InvoiceBuilder {
	return newInvoiceBuilder(c)
}

// GenerateInvoice submits a generate request and maps the response:
// 200 becomes an *InvoiceSuccess, 422 with field details becomes an
// *InvoiceFailure, and every other outcome is returned as an error
// (402 as *model.QuotaExceededError, other statuses as *model.APIError,
// transport failures as *model.NetworkError).
func (c *Client) GenerateInvoice(ctx context.Context, request *model.GenerateRequest) (InvoiceResult, error) {
	status, body, err := c.post(ctx, "/v1/generate", request)
	if err != nil {
		return nil, err
	}

	if status == http.StatusOK {
		var resp model.GenerateResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, model.NewAPIError("malformed response body", status, "invalid_response")
		}
		return &InvoiceSuccess{
			PDFBase64:  resp.PDFBase64,
			Filename:   resp.Filename,
			Validation: resp.Validation,
			Account:    resp.Account,
		}, nil
	}

	errResp := decodeErrorBody(status, body)

	if status == http.StatusPaymentRequired {
		message := errResp.Message
		if message == "" {
			message = "Quota exceeded"
		}
		return nil, model.NewQuotaExceededError(message)
	}

	if status == http.StatusUnprocessableEntity && len(errResp.Details) > 0 {
		return &InvoiceFailure{Errors: errResp.Details}, nil
	}

	return nil, apiError(errResp, status)
}

// Validate submits an existing PDF (base64-encoded) for compliance
// validation and returns the raw validation report.
func (c *Client) Validate(ctx context.Context, pdfBase64 string) (map[string]any, error) {
	status, body, err := c.post(ctx, "/v1/validate", map[string]string{"pdf_base64": pdfBase64})
	if err != nil {
		return nil, err
	}

	if status < 200 || status > 299 {
		return nil, apiError(decodeErrorBody(status, body), status)
	}

	var report map[string]any
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, model.NewAPIError("malformed response body", status, "invalid_response")
	}
	return report, nil
}

// GetAccount fetches the account's remaining quota and plan
func (c *Client) GetAccount(ctx context.Context) (*model.AccountInfo, error) {
	status, body, err := c.get(ctx, "/v1/account")
	if err != nil {
		return nil, err
	}

	if status < 200 || status > 299 {
		return nil, apiError(decodeErrorBody(status, body), status)
	}

	var account model.AccountInfo
	if err := json.Unmarshal(body, &account); err != nil {
		return nil, model.NewAPIError("malformed response body", status, "invalid_response")
	}
	return &account, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) get(ctx context.Context, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}

	return c.do(req)
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, wrapTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, model.NewNetworkError("failed to read response body", err)
	}

	return resp.StatusCode, body, nil
}

// wrapTransportError converts transport failures into NetworkError,
// keeping timeouts distinguishable from other connection failures via
// the message and the wrapped cause.
func wrapTransportError(err error) *model.NetworkError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return model.NewNetworkError("request timeout", err)
	}
	return model.NewNetworkError("connection failed", err)
}

// decodeErrorBody parses a non-2xx body. An unparsable body is replaced
// by a synthesized generic error so that callers always get the intended
// API error instead of a JSON parse failure.
func decodeErrorBody(status int, body []byte) model.ErrorResponse {
	var errResp model.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return model.ErrorResponse{
			Error:   "unknown_error",
			Message: fmt.Sprintf("HTTP %d", status),
		}
	}
	return errResp
}

func apiError(errResp model.ErrorResponse, status int) *model.APIError {
	message := errResp.Message
	if message == "" {
		message = errResp.Error
	}
	if message == "" {
		message = fmt.Sprintf("HTTP %d", status)
	}
	return model.NewAPIError(message, status, errResp.Error)
}
