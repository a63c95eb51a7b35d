package web

import (
	"fmt"
	"sort"
	"strings"

	"goremu/storage"

	"github.com/shopspring/decimal"
)

// PeriodSummary aggregates stored records for one payroll period.
type PeriodSummary struct {
	Period       string `json:"periodo"`
	Records      int    `json:"registros"`
	Pending      int    `json:"pendientes"`
	Submitted    int    `json:"enviados"`
	Failed       int    `json:"fallidos"`
	TotalNet     string `json:"totalSueldoLiquido"`
	TotalAdvance string `json:"totalAnticipo"`
	TotalAmount  string `json:"totalMonto"`
}

// BuildPeriodSummaries groups rows by period label, newest period first.
func BuildPeriodSummaries(rows []storage.Row) []PeriodSummary {
	type accumulator struct {
		records   int
		pending   int
		submitted int
		failed    int
		net       decimal.Decimal
		advance   decimal.Decimal
		total     decimal.Decimal
	}

	byPeriod := make(map[string]*accumulator)
	for _, row := range rows {
		period := row.Record.PeriodLabel
		acc, ok := byPeriod[period]
		if !ok {
			acc = &accumulator{}
			byPeriod[period] = acc
		}

		acc.records++
		if row.Pending() {
			acc.pending++
		} else {
			acc.submitted++
		}
		if row.SubmitError != "" {
			acc.failed++
		}
		acc.net = acc.net.Add(row.Record.NetSalary)
		acc.advance = acc.advance.Add(row.Record.AdvancePayment)
		acc.total = acc.total.Add(row.Record.TotalAmount)
	}

	periods := make([]string, 0, len(byPeriod))
	for period := range byPeriod {
		periods = append(periods, period)
	}
	sort.Slice(periods, func(i, j int) bool {
		return periodSortKey(periods[i]) > periodSortKey(periods[j])
	})

	out := make([]PeriodSummary, 0, len(periods))
	for _, period := range periods {
		acc := byPeriod[period]
		out = append(out, PeriodSummary{
			Period:       period,
			Records:      acc.records,
			Pending:      acc.pending,
			Submitted:    acc.submitted,
			Failed:       acc.failed,
			TotalNet:     acc.net.String(),
			TotalAdvance: acc.advance.String(),
			TotalAmount:  acc.total.String(),
		})
	}
	return out
}

// periodSortKey turns "MM/YYYY" into "YYYYMM" so string order is time order.
// Labels that do not match the layout sort last.
func periodSortKey(label string) string {
	parts := strings.SplitN(label, "/", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 4 {
		return ""
	}
	return fmt.Sprintf("%s%s", parts[1], parts[0])
}
