// Package backend is the HTTP JSON client for the finance API that owns the
// persisted payroll records. The API is treated as opaque: this package only
// knows the batch-create endpoint and its two historical response shapes.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const batchEndpoint = "/api/remuneraciones/batch"

var ErrEmptyBatchResponse = errors.New("backend accepted the batch but returned no ids")

// Client defines the backend operations the submitter relies on.
type Client interface {
	CreateBatch(ctx context.Context, items []BatchItem) (BatchResult, error)
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ClientConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient httpDoer
}

type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
}

func NewClient(cfg ClientConfig) (*HTTPClient, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}

	doer := cfg.HTTPClient
	if doer == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		doer = &http.Client{Timeout: timeout}
	}

	return &HTTPClient{
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		httpClient: doer,
	}, nil
}

// BatchItem is one payroll record in the batch-create request payload.
type BatchItem struct {
	RUT               string          `json:"rut"`
	NombreCompleto    string          `json:"nombreCompleto"`
	Cargo             string          `json:"cargo"`
	Area              string          `json:"area"`
	Periodo           string          `json:"periodo"`
	FechaPago         string          `json:"fechaPago"`
	SueldoLiquido     decimal.Decimal `json:"sueldoLiquido"`
	Anticipo          decimal.Decimal `json:"anticipo"`
	MontoTotal        decimal.Decimal `json:"montoTotal"`
	CodigoCentroCosto string          `json:"codigoCentroCosto"`
	NombreCentroCosto string          `json:"nombreCentroCosto"`
	DiasTrabajados    int             `json:"diasTrabajados"`
	MetodoPago        string          `json:"metodoPago"`
	Estado            string          `json:"estado"`
	Notas             string          `json:"notas"`
}

// RowError reports one record the server rejected inside an otherwise
// accepted batch.
type RowError struct {
	Index  int    `json:"index"`
	Reason string `json:"error"`
}

// BatchResult is the single internal shape both response variants normalize
// into; nothing past this boundary branches on the wire format.
type BatchResult struct {
	IDs     []int64
	Errors  []RowError
	Created int
	Total   int
}

type batchEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		IDs     []int64 `json:"ids"`
		Created int     `json:"created"`
		Errors  []struct {
			Index int             `json:"index"`
			Item  json.RawMessage `json:"item"`
			Error string          `json:"error"`
		} `json:"errors"`
		Total int `json:"total"`
	} `json:"data"`
}

// CreateBatch posts all items in one request and normalizes the response.
// The endpoint historically answers either with a bare ID array or with an
// envelope carrying ids plus per-row errors.
func (c *HTTPClient) CreateBatch(ctx context.Context, items []BatchItem) (BatchResult, error) {
	if len(items) == 0 {
		return BatchResult{}, errors.New("batch payload must not be empty")
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return BatchResult{}, fmt.Errorf("marshal batch payload: %w", err)
	}

	endpoint := c.baseURL + batchEndpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return BatchResult{}, fmt.Errorf("create batch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return BatchResult{}, fmt.Errorf("batch request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return BatchResult{}, fmt.Errorf("read batch response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return BatchResult{}, fmt.Errorf(
			"batch request failed with status %d: %s",
			resp.StatusCode,
			strings.TrimSpace(string(body)),
		)
	}

	return decodeBatchResponse(body)
}

func decodeBatchResponse(body []byte) (BatchResult, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return BatchResult{}, errors.New("empty batch response body")
	}

	switch trimmed[0] {
	case '[':
		var ids []int64
		if err := json.Unmarshal(trimmed, &ids); err != nil {
			return BatchResult{}, fmt.Errorf("decode id list response: %w", err)
		}
		return BatchResult{IDs: ids, Created: len(ids), Total: len(ids)}, nil
	case '{':
		var envelope batchEnvelope
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return BatchResult{}, fmt.Errorf("decode envelope response: %w", err)
		}
		result := BatchResult{
			IDs:     envelope.Data.IDs,
			Created: envelope.Data.Created,
			Total:   envelope.Data.Total,
		}
		for _, item := range envelope.Data.Errors {
			result.Errors = append(result.Errors, RowError{Index: item.Index, Reason: item.Error})
		}
		return result, nil
	default:
		return BatchResult{}, fmt.Errorf("unrecognized batch response shape: %s", firstBytes(trimmed, 64))
	}
}

func firstBytes(data []byte, n int) string {
	if len(data) > n {
		data = data[:n]
	}
	return string(data)
}
