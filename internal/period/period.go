// Package period normalizes the many ad-hoc pay-period notations found in
// real payroll exports into the canonical "MM/YYYY" label.
package period

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const Layout = "MM/YYYY"

var (
	reMonthYear  = regexp.MustCompile(`^(\d{1,2})\s*[/\-.]\s*(\d{4})$`)
	reYearMonth  = regexp.MustCompile(`^(\d{4})\s*[/\-.]\s*(\d{1,2})$`)
	reMonthYear2 = regexp.MustCompile(`^(\d{1,2})\s*[/\-.]\s*(\d{2})$`)
	reCompact    = regexp.MustCompile(`^(\d{4})(\d{2})$`)

	reFileMonthYear = regexp.MustCompile(`(?:^|[^\d])(\d{1,2})[-_.](\d{4})(?:[^\d]|$)`)
	reFileYearMonth = regexp.MustCompile(`(?:^|[^\d])(\d{4})[-_.](\d{1,2})(?:[^\d]|$)`)
	reFileCompact   = regexp.MustCompile(`(?:^|[^\d])(20\d{2})(0[1-9]|1[0-2])(?:[^\d]|$)`)
)

var monthNames = map[string]int{
	"enero": 1, "ene": 1,
	"febrero": 2, "feb": 2,
	"marzo": 3, "mar": 3,
	"abril": 4, "abr": 4,
	"mayo": 5, "may": 5,
	"junio": 6, "jun": 6,
	"julio": 7, "jul": 7,
	"agosto": 8, "ago": 8,
	"septiembre": 9, "setiembre": 9, "sep": 9, "sept": 9,
	"octubre": 10, "oct": 10,
	"noviembre": 11, "nov": 11,
	"diciembre": 12, "dic": 12,
}

// FromMonthYear builds "MM/YYYY" from separate numeric month/year values.
// Two-digit years are expanded with a pivot at 50.
func FromMonthYear(month, year int) (string, bool) {
	if year >= 0 && year < 100 {
		year = expandYear(year)
	}
	if month < 1 || month > 12 || year < 1900 || year > 2999 {
		return "", false
	}
	return fmt.Sprintf("%02d/%04d", month, year), true
}

// Normalize coerces a combined period string into "MM/YYYY". It accepts
// MM/YYYY, MM/YY, M/YYYY, YYYY-M, YYYY/M, M-YYYY, compact YYYYMM, Spanish
// month names ("abril 2024") and, as a last resort, generic date strings.
func Normalize(raw string) (string, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}

	if m := reMonthYear.FindStringSubmatch(value); m != nil {
		return fromParts(m[1], m[2])
	}
	if m := reYearMonth.FindStringSubmatch(value); m != nil {
		return fromParts(m[2], m[1])
	}
	if m := reMonthYear2.FindStringSubmatch(value); m != nil {
		return fromParts(m[1], m[2])
	}
	if m := reCompact.FindStringSubmatch(value); m != nil {
		// Compact form only counts when the trailing pair is a real month,
		// otherwise a plain 6-digit number would look like a period.
		if month, err := strconv.Atoi(m[2]); err == nil && month >= 1 && month <= 12 {
			return fromParts(m[2], m[1])
		}
		return "", false
	}

	if period, ok := fromMonthName(value); ok {
		return period, true
	}

	if parsed, ok := parseDate(value); ok {
		return FromMonthYear(int(parsed.Month()), parsed.Year())
	}

	return "", false
}

// ISODate coerces a free-form date string into "YYYY-MM-DD". Day-first
// layouts win over month-first ones; payroll books here write dates as
// dd/mm/yyyy.
func ISODate(raw string) (string, bool) {
	parsed, ok := parseDate(strings.TrimSpace(raw))
	if !ok {
		return "", false
	}
	return parsed.Format("2006-01-02"), true
}

func parseDate(value string) (time.Time, bool) {
	layouts := []string{
		"2006-01-02",
		"02/01/2006",
		"2/1/2006",
		"02-01-2006",
		"2-1-2006",
		"02.01.2006",
		"2006/01/02",
		time.RFC3339,
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// FromFilename extracts a period from a source file name such as
// "remuneraciones_04-2024.xlsx". Month-first forms win over year-first ones.
func FromFilename(name string) (string, bool) {
	if m := reFileMonthYear.FindStringSubmatch(name); m != nil {
		if period, ok := fromParts(m[1], m[2]); ok {
			return period, true
		}
	}
	if m := reFileYearMonth.FindStringSubmatch(name); m != nil {
		if period, ok := fromParts(m[2], m[1]); ok {
			return period, true
		}
	}
	if m := reFileCompact.FindStringSubmatch(name); m != nil {
		return fromParts(m[2], m[1])
	}
	return "", false
}

// Current returns the period of the given instant.
func Current(now time.Time) string {
	return fmt.Sprintf("%02d/%04d", int(now.Month()), now.Year())
}

// PaymentDate derives the ISO date of the first day of a "MM/YYYY" period.
func PaymentDate(label string) (string, bool) {
	m := reMonthYear.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return "", false
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-01", year, month), true
}

func fromParts(monthRaw, yearRaw string) (string, bool) {
	month, err := strconv.Atoi(monthRaw)
	if err != nil {
		return "", false
	}
	year, err := strconv.Atoi(yearRaw)
	if err != nil {
		return "", false
	}
	return FromMonthYear(month, year)
}

func fromMonthName(value string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u").Replace(normalized)
	fields := strings.FieldsFunc(normalized, func(r rune) bool {
		return r == ' ' || r == '-' || r == '/' || r == ','
	})
	if len(fields) < 2 {
		return "", false
	}

	month, ok := monthNames[fields[0]]
	if !ok {
		return "", false
	}
	year, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return "", false
	}
	return FromMonthYear(month, year)
}

func expandYear(twoDigit int) int {
	if twoDigit < 50 {
		return 2000 + twoDigit
	}
	return 1900 + twoDigit
}
