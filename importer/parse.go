package importer

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount coerces a cell into a monetary amount. Natively numeric cells
// are taken verbatim; text cells are scrubbed of currency symbols and
// thousands separators first. Anything unparseable coerces to zero so a
// single messy cell never aborts an import.
func ParseAmount(cell Cell) decimal.Decimal {
	if cell.IsEmpty() {
		return decimal.Zero
	}
	if cell.Numeric {
		if value, err := decimal.NewFromString(cell.Value); err == nil {
			return value
		}
	}
	return parseAmountText(cell.Value)
}

func parseAmountText(raw string) decimal.Decimal {
	cleaned := stripAmountNoise(raw)
	if cleaned == "" || cleaned == "-" {
		return decimal.Zero
	}

	cleaned = resolveSeparators(cleaned)
	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return value
}

// stripAmountNoise drops everything that is not a digit, '.', ',' or a
// leading minus sign, which tolerates currency symbols ("$ 1.234"), spaces
// and stray unit markers.
func stripAmountNoise(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// resolveSeparators disambiguates '.' and ',' between thousands and decimal
// roles. When both occur the rightmost one is the decimal separator. A lone
// separator is decimal unless it is followed by exactly three digits
// ("650.000" and "1,234" are thousands-grouped integers), matching how
// Chilean payroll exports format pesos.
func resolveSeparators(cleaned string) string {
	lastDot := strings.LastIndex(cleaned, ".")
	lastComma := strings.LastIndex(cleaned, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(cleaned, ",") == 1 && len(cleaned)-lastComma-1 != 3 {
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastDot >= 0:
		if strings.Count(cleaned, ".") > 1 || len(cleaned)-lastDot-1 == 3 {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
	}

	return cleaned
}

// parseIntCell reads a whole number from a cell, tolerating the same noise
// as ParseAmount. Fractional values are truncated.
func parseIntCell(cell Cell) (int, bool) {
	if cell.IsEmpty() {
		return 0, false
	}
	if cell.Numeric {
		if value, err := strconv.ParseFloat(cell.Value, 64); err == nil {
			return int(value), true
		}
	}
	value := parseAmountText(cell.Value)
	if value.IsZero() && strings.TrimSpace(cell.Value) != "0" {
		return 0, false
	}
	return int(value.IntPart()), true
}
