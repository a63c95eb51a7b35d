package importer

import (
	"errors"
	"testing"
)

func TestResolveColumnsTypicalHeader(t *testing.T) {
	t.Parallel()

	header := row("RUT", "NOMBRE", "CARGO", "AREA", "SUELDO LIQUIDO", "ANTICIPO", "TOTAL", "PERIODO")
	columns, err := ResolveColumns(header)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := map[Field]int{
		FieldNationalID:     0,
		FieldFullName:       1,
		FieldPosition:       2,
		FieldArea:           3,
		FieldNetSalary:      4,
		FieldAdvancePayment: 5,
		FieldTotal:          6,
		FieldPeriodLabel:    7,
	}
	for field, want := range expected {
		got, ok := columns.Index(field)
		if !ok || got != want {
			t.Fatalf("field %s resolved to %d (%v), want %d", field, got, ok, want)
		}
	}
}

func TestResolveColumnsExactBeatsPartial(t *testing.T) {
	t.Parallel()

	// "TOTAL HABERES" matches TOTAL partially but "TOTAL" later in the row
	// matches exactly; the exact tier must win even though it sits further
	// right.
	header := row("NOMBRE", "TOTAL HABERES", "TOTAL", "SUELDO")
	columns, err := ResolveColumns(header)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	index, ok := columns.Index(FieldTotal)
	if !ok || index != 1 {
		// "TOTAL HABERES" is itself an exact keyword, leftmost exact wins.
		t.Fatalf("total resolved to %d (%v), want 1", index, ok)
	}
}

func TestResolveColumnsLeftmostWins(t *testing.T) {
	t.Parallel()

	header := row("ANTICIPO", "ANTICIPO MES ANTERIOR", "NOMBRE", "SUELDO")
	columns, err := ResolveColumns(header)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	index, ok := columns.Index(FieldAdvancePayment)
	if !ok || index != 0 {
		t.Fatalf("advance resolved to %d (%v), want 0", index, ok)
	}
}

func TestResolveColumnsAccentInsensitive(t *testing.T) {
	t.Parallel()

	header := row("RUT", "NOMBRE", "LÍQUIDO", "AÑO", "MES")
	columns, err := ResolveColumns(header)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := columns.Index(FieldNetSalary); !ok {
		t.Fatal("LÍQUIDO should resolve the net salary column")
	}
	if _, ok := columns.Index(FieldYear); !ok {
		t.Fatal("AÑO should resolve the year column")
	}
	if _, ok := columns.Index(FieldMonth); !ok {
		t.Fatal("MES should resolve the month column")
	}
}

func TestResolveColumnsMissingIdentity(t *testing.T) {
	t.Parallel()

	header := row("SUELDO LIQUIDO", "ANTICIPO", "TOTAL")
	_, err := ResolveColumns(header)

	var missingErr *MissingRequiredColumnsError
	if !errors.As(err, &missingErr) {
		t.Fatalf("expected MissingRequiredColumnsError, got %v", err)
	}
	if len(missingErr.Missing) == 0 {
		t.Fatal("expected missing fields to be listed")
	}
	if len(missingErr.Header) != 3 {
		t.Fatalf("expected the header row to be echoed, got %v", missingErr.Header)
	}
}

func TestResolveColumnsMissingAmounts(t *testing.T) {
	t.Parallel()

	header := row("RUT", "NOMBRE", "CARGO")
	_, err := ResolveColumns(header)

	var missingErr *MissingRequiredColumnsError
	if !errors.As(err, &missingErr) {
		t.Fatalf("expected MissingRequiredColumnsError, got %v", err)
	}
}

func TestResolveColumnsNameOnlyIsEnoughIdentity(t *testing.T) {
	t.Parallel()

	header := row("NOMBRE", "SUELDO LIQUIDO")
	if _, err := ResolveColumns(header); err != nil {
		t.Fatalf("name plus one amount column must be viable: %v", err)
	}
}
