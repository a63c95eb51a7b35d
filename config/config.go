package config

import (
	"bytes"
	"fmt"
	"time"

	"goremu/remuneracion"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyBackendURL            = "backend.url"
	KeyBackendAPIKey         = "backend.api_key"
	KeyBackendTimeoutSeconds = "backend.timeout_seconds"
	KeyImportWorkDays        = "import.default_work_days"
	KeyImportPaymentMethod   = "import.default_payment_method"
	KeyImportAutoSubmit      = "import.auto_submit_after_import"
)

type Config struct {
	Backend BackendConfig `mapstructure:"backend" validate:"required"`
	Import  ImportConfig  `mapstructure:"import"`
}

type BackendConfig struct {
	URL            string `mapstructure:"url" validate:"required,url"`
	APIKey         string `mapstructure:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0,lte=600"`
}

type ImportConfig struct {
	DefaultWorkDays       int    `mapstructure:"default_work_days" validate:"gte=0,lte=31"`
	DefaultPaymentMethod  string `mapstructure:"default_payment_method"`
	AutoSubmitAfterImport bool   `mapstructure:"auto_submit_after_import"`
}

// Timeout returns the configured backend timeout as a duration.
func (c BackendConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PaymentMethod maps the configured default onto the domain enum.
func (c ImportConfig) PaymentMethod() remuneracion.PaymentMethod {
	return remuneracion.ParsePaymentMethod(c.DefaultPaymentMethod)
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# goremu configuration
backend:
  url: "http://localhost:3001"
  api_key: ""
  timeout_seconds: 30

import:
  default_work_days: 30
  default_payment_method: "transferencia"
  auto_submit_after_import: false
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validatePaymentMethod(cfg.Import.DefaultPaymentMethod); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyBackendURL, "http://localhost:3001")
	v.SetDefault(KeyBackendAPIKey, "")
	v.SetDefault(KeyBackendTimeoutSeconds, 30)
	v.SetDefault(KeyImportWorkDays, 30)
	v.SetDefault(KeyImportPaymentMethod, string(remuneracion.PaymentTransfer))
	v.SetDefault(KeyImportAutoSubmit, false)
}

func validatePaymentMethod(value string) error {
	switch remuneracion.PaymentMethod(value) {
	case "", remuneracion.PaymentTransfer, remuneracion.PaymentCheck, remuneracion.PaymentCash:
		return nil
	default:
		return fmt.Errorf(
			"validation failed: import.default_payment_method %q is not supported (valid: transferencia, cheque, efectivo)",
			value,
		)
	}
}
