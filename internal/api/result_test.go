package api_test

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/envoice-go/internal/api"
	"github.com/rezonia/envoice-go/internal/model"
)

const minimalPDF = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"

func successResult() *api.InvoiceSuccess {
	return &api.InvoiceSuccess{
		PDFBase64: base64.StdEncoding.EncodeToString([]byte(minimalPDF)),
		Filename:  "invoice-2026-001.pdf",
		Validation: model.ValidationResult{
			Status:  "valid",
			Profile: "EN16931",
			Version: "2.3.2",
		},
	}
}

func TestToBytes(t *testing.T) {
	data, err := successResult().ToBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), data[:4])
}

func TestToBytes_InvalidBase64(t *testing.T) {
	success := &api.InvoiceSuccess{PDFBase64: "not valid base64!!!"}

	data, err := success.ToBytes()
	assert.Nil(t, data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode pdf payload")
}

func TestToDataURL(t *testing.T) {
	tests := []struct {
		name      string
		pdfBase64 string
	}{
		{"regular payload", "JVBERi0xLjQK"},
		{"empty payload", ""},
		{"arbitrary string", "not-even-base64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			success := &api.InvoiceSuccess{PDFBase64: tt.pdfBase64}
			assert.Equal(t, "data:application/pdf;base64,"+tt.pdfBase64, success.ToDataURL())
		})
	}
}

func TestSavePDF_CreatesIntermediateDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "2026", "invoice.pdf")

	require.NoError(t, successResult().SavePDF(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, minimalPDF, string(data))
}

func TestSavePDF_BareFilename(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(cwd) })

	require.NoError(t, successResult().SavePDF("invoice.pdf"))

	_, err = os.Stat(filepath.Join(dir, "invoice.pdf"))
	assert.NoError(t, err)
}

func TestSavePDF_InvalidPayload(t *testing.T) {
	success := &api.InvoiceSuccess{PDFBase64: "!!!"}

	err := success.SavePDF(filepath.Join(t.TempDir(), "invoice.pdf"))
	require.Error(t, err)
}

func TestSuccessFlags(t *testing.T) {
	assert.True(t, successResult().Success())

	failure := &api.InvoiceFailure{Errors: []model.ValidationError{
		{Path: "$.invoice.number", Code: model.CodeRequired, Message: "Invoice number is required"},
	}}
	assert.False(t, failure.Success())
}

func TestFailureUserMessage(t *testing.T) {
	failure := &api.InvoiceFailure{Errors: []model.ValidationError{
		{Path: "$.invoice.number", Code: model.CodeRequired, Message: "Invoice number is required"},
		{Path: "$.invoice.date", Code: model.CodeRequired, Message: "Invoice date is required"},
	}}

	assert.Equal(t,
		"- $.invoice.number: Invoice number is required\n- $.invoice.date: Invoice date is required",
		failure.UserMessage())
}
