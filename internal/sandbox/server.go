// Package sandbox runs a local stand-in for the envoice API so that SDK
// integrations can be developed and demonstrated offline. It emulates the
// generate, validate and account endpoints including quota accounting and
// the full error-body shapes; the returned PDF is a fixed stub document.
package sandbox

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rezonia/envoice-go/internal/model"
)

// stubPDF is the minimal document returned for every generate call
const stubPDF = "%PDF-1.4\n" +
	"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n" +
	"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n" +
	"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] >>\nendobj\n" +
	"trailer\n<< /Root 1 0 R >>\n%%EOF\n"

// Config holds sandbox configuration
type Config struct {
	Address string
	// APIKey, when set, is the only key accepted. When empty any
	// non-blank key passes, mirroring how sandbox keys behave upstream.
	APIKey string
	Quota  int
	Plan   string
	Debug  bool
}

// Server is the local stub API server
type Server struct {
	config *Config
	router *gin.Engine
	log    zerolog.Logger

	mu        sync.Mutex
	remaining int
}

// NewServer creates a sandbox server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if config.Plan == "" {
		config.Plan = "sandbox"
	}
	if config.Quota <= 0 {
		config.Quota = 100
	}

	s := &Server{
		config:    config,
		log:       zerolog.New(os.Stderr).With().Timestamp().Str("component", "sandbox").Logger(),
		remaining: config.Quota,
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/health", s.handleHealth)

	v1 := router.Group("/v1", s.requireAPIKey())
	v1.POST("/generate", s.handleGenerate)
	v1.POST("/validate", s.handleValidate)
	v1.GET("/account", s.handleAccount)

	s.router = router
	return s
}

// Handler returns the server's HTTP handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until the listener fails
func (s *Server) Start() error {
	s.log.Info().Str("address", s.config.Address).Int("quota", s.config.Quota).Msg("sandbox listening")
	return s.router.Run(s.config.Address)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Writer.Header().Set("X-Request-Id", requestID)

		start := time.Now()
		c.Next()

		s.log.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) requireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		if strings.TrimSpace(key) == "" || (s.config.APIKey != "" && key != s.config.APIKey) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid API key",
			})
			return
		}
		c.Next()
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleGenerate(c *gin.Context) {
	var request model.GenerateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "invalid_request",
			Message: "Request body is not a valid generate request",
		})
		return
	}

	if details := validateInvoice(request.Invoice); len(details) > 0 {
		c.JSON(http.StatusUnprocessableEntity, model.ErrorResponse{
			Error:   "validation_error",
			Message: "Validation failed",
			Details: details,
		})
		return
	}

	account, ok := s.consumeQuota()
	if !ok {
		c.JSON(http.StatusPaymentRequired, model.ErrorResponse{
			Error:   "quota_exceeded",
			Message: "Monthly quota exceeded",
		})
		return
	}

	c.JSON(http.StatusOK, model.GenerateResponse{
		PDFBase64:  base64.StdEncoding.EncodeToString([]byte(stubPDF)),
		Filename:   fmt.Sprintf("invoice-%s.pdf", request.Invoice.Number),
		Validation: stubValidation(),
		Account:    account,
	})
}

func (s *Server) handleValidate(c *gin.Context) {
	var body struct {
		PDFBase64 string `json:"pdf_base64"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.PDFBase64 == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "invalid_request",
			Message: "pdf_base64 is required",
		})
		return
	}

	data, err := base64.StdEncoding.DecodeString(body.PDFBase64)
	if err != nil || len(data) < 4 || string(data[:4]) != "%PDF" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "invalid_pdf",
			Message: "Payload is not a PDF document",
		})
		return
	}

	c.JSON(http.StatusOK, stubValidation())
}

func (s *Server) handleAccount(c *gin.Context) {
	s.mu.Lock()
	remaining := s.remaining
	s.mu.Unlock()

	c.JSON(http.StatusOK, model.AccountInfo{
		Remaining: remaining,
		Plan:      s.config.Plan,
	})
}

// consumeQuota decrements the remaining quota and reports the account
// state after the call. Returns ok=false once the quota is used up.
func (s *Server) consumeQuota() (*model.AccountInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.remaining <= 0 {
		return nil, false
	}
	s.remaining--

	account := &model.AccountInfo{
		Remaining: s.remaining,
		Plan:      s.config.Plan,
	}
	if s.remaining == 0 {
		account.Warning = "Quota exhausted; further requests will be rejected"
	}
	return account, true
}

func stubValidation() model.ValidationResult {
	return model.ValidationResult{
		Status:  "valid",
		Profile: "EN16931",
		Version: "2.3.2",
	}
}

// validateInvoice applies the checks the real API enforces server-side,
// beyond the SDK's local presence checks.
func validateInvoice(invoice model.InvoiceData) []model.ValidationError {
	var details []model.ValidationError

	required := func(value, path, message string) {
		if value == "" {
			details = append(details, model.ValidationError{
				Path:    path,
				Code:    model.CodeRequired,
				Message: message,
			})
		}
	}

	required(invoice.Number, "$.invoice.number", "Invoice number is required")
	required(invoice.Date, "$.invoice.date", "Invoice date is required")
	required(invoice.Seller.Name, "$.invoice.seller.name", "Seller name is required")
	required(invoice.Buyer.Name, "$.invoice.buyer.name", "Buyer name is required")

	if invoice.Date != "" {
		if _, err := time.Parse(model.DateLayout, invoice.Date); err != nil {
			details = append(details, model.ValidationError{
				Path:    "$.invoice.date",
				Code:    "INVALID_FORMAT",
				Message: "Invoice date must be formatted YYYY-MM-DD",
			})
		}
	}

	if len(invoice.Items) == 0 {
		details = append(details, model.ValidationError{
			Path:    "$.invoice.items",
			Code:    model.CodeRequired,
			Message: "At least one line item is required",
		})
	}
	for i, item := range invoice.Items {
		if item.Description == "" {
			details = append(details, model.ValidationError{
				Path:    fmt.Sprintf("$.invoice.items[%d].description", i),
				Code:    model.CodeRequired,
				Message: "Item description is required",
			})
		}
	}

	return details
}
