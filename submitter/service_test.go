package submitter

import (
	"context"
	"errors"
	"testing"

	"goremu/backend"
	"goremu/remuneracion"

	"github.com/shopspring/decimal"
)

type stubClient struct {
	result backend.BatchResult
	err    error
	items  []backend.BatchItem
}

func (s *stubClient) CreateBatch(_ context.Context, items []backend.BatchItem) (backend.BatchResult, error) {
	s.items = items
	return s.result, s.err
}

func testRecords() []remuneracion.Record {
	return []remuneracion.Record{
		{ID: -100, NationalID: "12.345.678-9", FullName: "Ana Rojas", TotalAmount: decimal.NewFromInt(750000)},
		{ID: -101, NationalID: "9.876.543-2", FullName: "Luis Soto", TotalAmount: decimal.NewFromInt(720000)},
		{ID: -102, NationalID: "5.555.555-5", FullName: "Eva Vidal", TotalAmount: decimal.NewFromInt(580000)},
	}
}

func TestSubmitAllAccepted(t *testing.T) {
	t.Parallel()

	client := &stubClient{result: backend.BatchResult{IDs: []int64{10, 11, 12}, Created: 3, Total: 3}}
	result, err := Submit(context.Background(), client, testRecords())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(client.items) != 3 {
		t.Fatalf("expected 3 submitted items, got %d", len(client.items))
	}
	if result.BatchID == "" {
		t.Fatal("expected a batch id")
	}
	if len(result.Saved) != 3 || len(result.Failures) != 0 {
		t.Fatalf("saved = %d, failures = %d", len(result.Saved), len(result.Failures))
	}

	for i, want := range []int64{10, 11, 12} {
		if result.Saved[i].ID != want {
			t.Fatalf("record %d id = %d, want %d", i, result.Saved[i].ID, want)
		}
		if result.Saved[i].IsTemporary() {
			t.Fatalf("record %d still carries a temporary id", i)
		}
	}
	if result.Saved[0].FullName != "Ana Rojas" || result.Saved[2].FullName != "Eva Vidal" {
		t.Fatal("records must keep submission order")
	}
}

func TestSubmitPartialFailure(t *testing.T) {
	t.Parallel()

	client := &stubClient{result: backend.BatchResult{
		IDs:     []int64{10, 11},
		Created: 2,
		Total:   3,
		Errors:  []backend.RowError{{Index: 2, Reason: "rut duplicado"}},
	}}

	result, err := Submit(context.Background(), client, testRecords())
	if err != nil {
		t.Fatalf("partial failure must not raise: %v", err)
	}

	if len(result.Saved) != 2 {
		t.Fatalf("saved = %d, want 2", len(result.Saved))
	}
	if result.Saved[0].ID != 10 || result.Saved[1].ID != 11 {
		t.Fatalf("saved ids = %d, %d", result.Saved[0].ID, result.Saved[1].ID)
	}
	if len(result.Failures) != 1 {
		t.Fatalf("failures = %v", result.Failures)
	}
	if result.Failures[0].RowIndex != 2 || result.Failures[0].Reason != "rut duplicado" {
		t.Fatalf("failure = %+v", result.Failures[0])
	}
}

func TestSubmitKeepsRecordStatus(t *testing.T) {
	t.Parallel()

	records := testRecords()
	records[1].Status = remuneracion.StatusApproved

	client := &stubClient{result: backend.BatchResult{IDs: []int64{10, 11, 12}, Created: 3, Total: 3}}
	result, err := Submit(context.Background(), client, records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Saved[1].Status != remuneracion.StatusApproved {
		t.Fatalf("status = %q, acceptance must not rewrite it", result.Saved[1].Status)
	}
}

func TestSubmitEmptyIDList(t *testing.T) {
	t.Parallel()

	client := &stubClient{result: backend.BatchResult{}}
	_, err := Submit(context.Background(), client, testRecords())
	if !errors.Is(err, backend.ErrEmptyBatchResponse) {
		t.Fatalf("expected ErrEmptyBatchResponse, got %v", err)
	}
}

func TestSubmitClientError(t *testing.T) {
	t.Parallel()

	client := &stubClient{err: errors.New("conexion rechazada")}
	if _, err := Submit(context.Background(), client, testRecords()); err == nil {
		t.Fatal("expected transport error to propagate")
	}
}

func TestSubmitNothingToSubmit(t *testing.T) {
	t.Parallel()

	if _, err := Submit(context.Background(), &stubClient{}, nil); err == nil {
		t.Fatal("expected empty record set to be rejected")
	}
}

func TestSubmitShortIDList(t *testing.T) {
	t.Parallel()

	// Server returned fewer ids than accepted rows and no error entries:
	// the unmatched tail is reported as failed rather than guessed.
	client := &stubClient{result: backend.BatchResult{IDs: []int64{10}, Created: 1, Total: 3}}
	result, err := Submit(context.Background(), client, testRecords())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Saved) != 1 || result.Saved[0].ID != 10 {
		t.Fatalf("saved = %+v", result.Saved)
	}
	if len(result.Failures) != 2 {
		t.Fatalf("failures = %v", result.Failures)
	}
}
