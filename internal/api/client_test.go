package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/envoice-go/internal/api"
	"github.com/rezonia/envoice-go/internal/model"
)

const successBody = `{
	"pdf_base64": "AA==",
	"filename": "f.pdf",
	"validation": {"status": "valid", "profile": "EN16931", "version": "2.3.2"}
}`

// newTestClient points a client at a stub handler and counts the requests
// it receives.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*api.Client, *int) {
	t.Helper()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := api.NewClient("env_sandbox_test", api.WithBaseURL(srv.URL))
	require.NoError(t, err)
	return client, &calls
}

func jsonResponse(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func minimalRequest() *model.GenerateRequest {
	return &model.GenerateRequest{
		Template: model.TemplateMinimal,
		Locale:   model.DefaultLocale,
		Invoice: model.InvoiceData{
			Number:   "2026-001",
			Date:     "2026-01-15",
			Seller:   model.Party{Name: "Acme GmbH"},
			Buyer:    model.Party{Name: "Customer AG"},
			Items:    []model.LineItem{model.NewLineItem("Consulting", 8, 150)},
			Currency: model.DefaultCurrency,
		},
	}
}

func TestNewClient_RejectsBlankAPIKey(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"tab and newline", "\t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := api.NewClient(tt.apiKey)
			require.Error(t, err)
			assert.Nil(t, client)
		})
	}
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := api.NewClient("env_sandbox_test")
	require.NoError(t, err)
	assert.Equal(t, "https://api.envoice.dev", client.BaseURL())
}

func TestNewClient_StripsTrailingSlash(t *testing.T) {
	client, err := api.NewClient("env_sandbox_test", api.WithBaseURL("https://custom.api.url/"))
	require.NoError(t, err)
	assert.Equal(t, "https://custom.api.url", client.BaseURL())
}

func TestGenerateInvoice_Success(t *testing.T) {
	var gotPath, gotKey string
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-Key")
		jsonResponse(http.StatusOK, successBody)(w, r)
	})

	result, err := client.GenerateInvoice(context.Background(), minimalRequest())
	require.NoError(t, err)

	success, ok := result.(*api.InvoiceSuccess)
	require.True(t, ok)
	assert.True(t, success.Success())
	assert.Equal(t, "f.pdf", success.Filename)
	assert.Equal(t, "AA==", success.PDFBase64)
	assert.Equal(t, "EN16931", success.Validation.Profile)
	assert.Nil(t, success.Account)

	assert.Equal(t, "/v1/generate", gotPath)
	assert.Equal(t, "env_sandbox_test", gotKey)
	assert.Equal(t, 1, *calls)
}

func TestGenerateInvoice_SuccessWithAccount(t *testing.T) {
	body := `{
		"pdf_base64": "AA==",
		"filename": "f.pdf",
		"validation": {"status": "valid", "profile": "EN16931", "version": "2.3.2"},
		"account": {"remaining": 499, "plan": "starter"}
	}`
	client, _ := newTestClient(t, jsonResponse(http.StatusOK, body))

	result, err := client.GenerateInvoice(context.Background(), minimalRequest())
	require.NoError(t, err)

	success, ok := result.(*api.InvoiceSuccess)
	require.True(t, ok)
	require.NotNil(t, success.Account)
	assert.Equal(t, 499, success.Account.Remaining)
	assert.Equal(t, "starter", success.Account.Plan)
}

func TestGenerateInvoice_ValidationDetailsBecomeFailure(t *testing.T) {
	body := `{
		"error": "validation_error",
		"message": "Validation failed",
		"details": [
			{"path": "$.invoice.seller.vatId", "code": "INVALID_FORMAT", "message": "Invalid VAT ID format"}
		]
	}`
	client, _ := newTestClient(t, jsonResponse(http.StatusUnprocessableEntity, body))

	result, err := client.GenerateInvoice(context.Background(), minimalRequest())
	require.NoError(t, err)

	failure, ok := result.(*api.InvoiceFailure)
	require.True(t, ok)
	assert.False(t, failure.Success())
	require.Len(t, failure.Errors, 1)
	assert.Equal(t, "$.invoice.seller.vatId", failure.Errors[0].Path)
	assert.Equal(t, "INVALID_FORMAT", failure.Errors[0].Code)
}

func TestGenerateInvoice_422WithoutDetailsIsAPIError(t *testing.T) {
	body := `{"error": "validation_error", "message": "Validation failed"}`
	client, _ := newTestClient(t, jsonResponse(http.StatusUnprocessableEntity, body))

	result, err := client.GenerateInvoice(context.Background(), minimalRequest())
	assert.Nil(t, result)

	var apiErr *model.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "Validation failed", apiErr.Message)
	assert.Equal(t, "validation_error", apiErr.Code)
}

func TestGenerateInvoice_QuotaExceeded(t *testing.T) {
	client, _ := newTestClient(t, jsonResponse(http.StatusPaymentRequired, `{"message": "Monthly quota exceeded"}`))

	result, err := client.GenerateInvoice(context.Background(), minimalRequest())
	assert.Nil(t, result)

	var quotaErr *model.QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, "Monthly quota exceeded", quotaErr.Message)
	assert.Equal(t, 402, quotaErr.StatusCode)
}

func TestGenerateInvoice_QuotaExceededDefaultMessage(t *testing.T) {
	client, _ := newTestClient(t, jsonResponse(http.StatusPaymentRequired, `{"error": "quota_exceeded"}`))

	_, err := client.GenerateInvoice(context.Background(), minimalRequest())

	var quotaErr *model.QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, "Quota exceeded", quotaErr.Message)
}

func TestGenerateInvoice_ServerError(t *testing.T) {
	client, _ := newTestClient(t, jsonResponse(http.StatusInternalServerError, `{"error": "internal_error", "message": "boom"}`))

	result, err := client.GenerateInvoice(context.Background(), minimalRequest())
	assert.Nil(t, result)

	var apiErr *model.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "boom", apiErr.Message)
	assert.Equal(t, "internal_error", apiErr.Code)
}

func TestGenerateInvoice_UnparsableErrorBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("<html>Service Unavailable</html>"))
	})

	_, err := client.GenerateInvoice(context.Background(), minimalRequest())

	var apiErr *model.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "HTTP 503", apiErr.Message)
	assert.Equal(t, "unknown_error", apiErr.Code)
}

func TestGenerateInvoice_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	client, err := api.NewClient("env_sandbox_test",
		api.WithBaseURL(srv.URL),
		api.WithTimeout(20*time.Millisecond),
	)
	require.NoError(t, err)

	_, err = client.GenerateInvoice(context.Background(), minimalRequest())

	var netErr *model.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "request timeout", netErr.Message)
	assert.Error(t, errors.Unwrap(netErr))
}

func TestGenerateInvoice_ConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client, err := api.NewClient("env_sandbox_test", api.WithBaseURL(url))
	require.NoError(t, err)

	_, err = client.GenerateInvoice(context.Background(), minimalRequest())

	var netErr *model.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "connection failed", netErr.Message)
}

func TestValidate(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		jsonResponse(http.StatusOK, `{"status": "valid", "profile": "EN16931"}`)(w, r)
	})

	report, err := client.Validate(context.Background(), "AA==")
	require.NoError(t, err)
	assert.Equal(t, "/v1/validate", gotPath)
	assert.Equal(t, "valid", report["status"])
	assert.Equal(t, "EN16931", report["profile"])
}

func TestValidate_APIError(t *testing.T) {
	client, _ := newTestClient(t, jsonResponse(http.StatusUnauthorized, `{"error": "unauthorized", "message": "Invalid API key"}`))

	report, err := client.Validate(context.Background(), "AA==")
	assert.Nil(t, report)

	var apiErr *model.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid API key", apiErr.Message)
}

func TestGetAccount(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		jsonResponse(http.StatusOK, `{"remaining": 499, "plan": "starter", "warning": "80% used"}`)(w, r)
	})

	account, err := client.GetAccount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "/v1/account", gotPath)
	assert.Equal(t, 499, account.Remaining)
	assert.Equal(t, "starter", account.Plan)
	assert.Equal(t, "80% used", account.Warning)
}

func TestGetAccount_APIError(t *testing.T) {
	client, _ := newTestClient(t, jsonResponse(http.StatusForbidden, `{"error": "forbidden"}`))

	account, err := client.GetAccount(context.Background())
	assert.Nil(t, account)

	var apiErr *model.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "forbidden", apiErr.Message)
}
