package period

import (
	"fmt"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"04/2024", "04/2024", true},
		{"4/2024", "04/2024", true},
		{"04/24", "04/2024", true},
		{"12/99", "12/1999", true},
		{"2024-4", "04/2024", true},
		{"2024/04", "04/2024", true},
		{"4-2024", "04/2024", true},
		{"202404", "04/2024", true},
		{"202455", "", false},
		{"abril 2024", "04/2024", true},
		{"ABRIL 2024", "04/2024", true},
		{"Diciembre-2023", "12/2023", true},
		{"2024-04-15", "04/2024", true},
		{"15/04/2024", "04/2024", true},
		{"", "", false},
		{"sin periodo", "", false},
		{"13/2024", "", false},
	}

	for _, tc := range cases {
		got, ok := Normalize(tc.input)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("Normalize(%q) = %q, %v; want %q, %v", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNormalizeIsIdempotentForCanonicalLabels(t *testing.T) {
	t.Parallel()

	for month := 1; month <= 12; month++ {
		label := fmt.Sprintf("%02d/2024", month)
		got, ok := Normalize(label)
		if !ok || got != label {
			t.Fatalf("Normalize(%q) = %q, %v; want unchanged", label, got, ok)
		}
	}
}

func TestFromMonthYear(t *testing.T) {
	t.Parallel()

	if got, ok := FromMonthYear(4, 2024); !ok || got != "04/2024" {
		t.Fatalf("FromMonthYear(4, 2024) = %q, %v", got, ok)
	}
	if got, ok := FromMonthYear(7, 24); !ok || got != "07/2024" {
		t.Fatalf("FromMonthYear(7, 24) = %q, %v", got, ok)
	}
	if got, ok := FromMonthYear(11, 99); !ok || got != "11/1999" {
		t.Fatalf("FromMonthYear(11, 99) = %q, %v", got, ok)
	}
	if _, ok := FromMonthYear(0, 2024); ok {
		t.Fatal("expected month 0 to be rejected")
	}
	if _, ok := FromMonthYear(13, 2024); ok {
		t.Fatal("expected month 13 to be rejected")
	}
}

func TestFromFilename(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"remuneraciones_04-2024.xlsx", "04/2024", true},
		{"liquidaciones 2024-04.xls", "04/2024", true},
		{"nomina_202404.csv", "04/2024", true},
		{"payroll.xlsx", "", false},
		{"backup_123456789.xlsx", "", false},
	}

	for _, tc := range cases {
		got, ok := FromFilename(tc.input)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("FromFilename(%q) = %q, %v; want %q, %v", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCurrent(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.April, 18, 10, 0, 0, 0, time.UTC)
	if got := Current(now); got != "04/2024" {
		t.Fatalf("Current = %q", got)
	}
}

func TestISODate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"15/04/2024", "2024-04-15", true},
		{"5/4/2024", "2024-04-05", true},
		{"15-04-2024", "2024-04-15", true},
		{"15.04.2024", "2024-04-15", true},
		{"2024-04-15", "2024-04-15", true},
		{"2024/04/15", "2024-04-15", true},
		{" 15/04/2024 ", "2024-04-15", true},
		{"", "", false},
		{"por definir", "", false},
		{"32/04/2024", "", false},
	}

	for _, tc := range cases {
		got, ok := ISODate(tc.input)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ISODate(%q) = %q, %v; want %q, %v", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestPaymentDate(t *testing.T) {
	t.Parallel()

	if got, ok := PaymentDate("04/2024"); !ok || got != "2024-04-01" {
		t.Fatalf("PaymentDate(04/2024) = %q, %v", got, ok)
	}
	if _, ok := PaymentDate("abril"); ok {
		t.Fatal("expected malformed label to be rejected")
	}
}
