package importer

import (
	"goremu/internal/clock"
	"goremu/remuneracion"

	"github.com/sirupsen/logrus"
)

// AssembleOptions configures temporary-ID minting. KnownIDs is a snapshot of
// every identifier already present in the caller's record set; freshly minted
// IDs never collide with it or with each other.
type AssembleOptions struct {
	Clock    clock.Clock
	KnownIDs []int64
}

// Assemble assigns each draft a unique negative temporary ID and applies the
// final validity filter: records with an empty display name or a
// non-positive total are logged and discarded. When nothing survives the
// whole import fails with NoValidRecordsError.
func Assemble(drafts []remuneracion.Record, opts AssembleOptions) ([]remuneracion.Record, error) {
	known := make(map[int64]struct{}, len(opts.KnownIDs))
	for _, id := range opts.KnownIDs {
		known[id] = struct{}{}
	}

	clk := opts.Clock
	if clk == nil {
		clk = clock.System{}
	}
	// Seed from the clock so two imports in the same process start from
	// different bases; the known-ID check covers the rest.
	next := -clk.Now().UnixMicro()
	if next >= 0 {
		next = -1
	}

	records := make([]remuneracion.Record, 0, len(drafts))
	for _, draft := range drafts {
		if draft.FullName == "" || draft.TotalAmount.Sign() <= 0 {
			logrus.WithFields(logrus.Fields{
				"rut":     draft.NationalID,
				"nombre":  draft.FullName,
				"periodo": draft.PeriodLabel,
				"total":   draft.TotalAmount.String(),
			}).Warn("descartando fila sin nombre o sin monto positivo")
			continue
		}

		for {
			if _, taken := known[next]; !taken {
				break
			}
			next--
		}
		draft.ID = next
		known[next] = struct{}{}
		next--

		records = append(records, draft)
	}

	if len(records) == 0 {
		return nil, &NoValidRecordsError{RowsConsidered: len(drafts)}
	}

	return records, nil
}
