package config

import (
	"strings"
	"testing"
	"time"

	"goremu/remuneracion"
)

func TestValidateYAMLContentDefaults(t *testing.T) {
	cfg, err := ValidateYAMLContent([]byte(ExampleYAML()))
	if err != nil {
		t.Fatalf("example config must validate: %v", err)
	}

	if cfg.Backend.URL != "http://localhost:3001" {
		t.Fatalf("backend url = %q", cfg.Backend.URL)
	}
	if cfg.Backend.Timeout() != 30*time.Second {
		t.Fatalf("timeout = %s", cfg.Backend.Timeout())
	}
	if cfg.Import.DefaultWorkDays != 30 {
		t.Fatalf("work days = %d", cfg.Import.DefaultWorkDays)
	}
	if cfg.Import.PaymentMethod() != remuneracion.PaymentTransfer {
		t.Fatalf("payment method = %q", cfg.Import.PaymentMethod())
	}
	if cfg.Import.AutoSubmitAfterImport {
		t.Fatal("auto submit must default to off")
	}
}

func TestValidateYAMLContentCustomValues(t *testing.T) {
	content := `
backend:
  url: "https://finanzas.example.com"
  api_key: "secreto"
  timeout_seconds: 10

import:
  default_work_days: 28
  default_payment_method: "cheque"
  auto_submit_after_import: true
`
	cfg, err := ValidateYAMLContent([]byte(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Backend.APIKey != "secreto" {
		t.Fatalf("api key = %q", cfg.Backend.APIKey)
	}
	if cfg.Backend.Timeout() != 10*time.Second {
		t.Fatalf("timeout = %s", cfg.Backend.Timeout())
	}
	if cfg.Import.PaymentMethod() != remuneracion.PaymentCheck {
		t.Fatalf("payment method = %q", cfg.Import.PaymentMethod())
	}
	if !cfg.Import.AutoSubmitAfterImport {
		t.Fatal("auto submit should be on")
	}
}

func TestValidateYAMLContentBadURL(t *testing.T) {
	content := `
backend:
  url: "not a url"
`
	if _, err := ValidateYAMLContent([]byte(content)); err == nil {
		t.Fatal("expected invalid url to fail validation")
	}
}

func TestValidateYAMLContentBadPaymentMethod(t *testing.T) {
	content := `
backend:
  url: "http://localhost:3001"

import:
  default_payment_method: "bitcoin"
`
	_, err := ValidateYAMLContent([]byte(content))
	if err == nil {
		t.Fatal("expected unsupported payment method to fail validation")
	}
	if !strings.Contains(err.Error(), "default_payment_method") {
		t.Fatalf("error should name the offending key: %v", err)
	}
}

func TestValidateYAMLContentBadWorkDays(t *testing.T) {
	content := `
backend:
  url: "http://localhost:3001"

import:
  default_work_days: 45
`
	if _, err := ValidateYAMLContent([]byte(content)); err == nil {
		t.Fatal("expected out-of-range work days to fail validation")
	}
}
