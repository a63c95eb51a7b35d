package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"goremu/remuneracion"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

var ErrRecordNotFound = errors.New("remuneracion not found")

// Row is one stored payroll record. LocalID identifies the row in this
// database; RemoteID is zero until the backend accepts the record.
type Row struct {
	LocalID     int64
	RemoteID    int64
	SubmitError string
	Record      remuneracion.Record
}

// Pending reports whether the row still awaits backend acceptance.
func (r Row) Pending() bool {
	return r.RemoteID == 0
}

type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS remuneraciones (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	remote_id INTEGER NOT NULL DEFAULT 0,
	submit_error TEXT NOT NULL DEFAULT '',
	rut TEXT NOT NULL,
	nombre TEXT NOT NULL,
	cargo TEXT NOT NULL,
	area TEXT NOT NULL,
	periodo TEXT NOT NULL,
	fecha_pago TEXT NOT NULL,
	sueldo_liquido TEXT NOT NULL,
	anticipo TEXT NOT NULL,
	monto_total TEXT NOT NULL,
	cc_codigo TEXT NOT NULL,
	cc_nombre TEXT NOT NULL,
	dias_trabajados INTEGER NOT NULL CHECK(dias_trabajados >= 0),
	forma_pago TEXT NOT NULL,
	estado TEXT NOT NULL,
	notas TEXT NOT NULL,
	source_file TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(rut, nombre, periodo, monto_total, source_file)
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// InsertRecords stores imported records, ignoring rows already present from
// an earlier import of the same file. Returns how many rows were inserted.
func (s *SQLiteStore) InsertRecords(records []remuneracion.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	const insertStmt = `
INSERT OR IGNORE INTO remuneraciones (
	rut, nombre, cargo, area, periodo, fecha_pago,
	sueldo_liquido, anticipo, monto_total,
	cc_codigo, cc_nombre, dias_trabajados,
	forma_pago, estado, notas, source_file
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	stmt, err := tx.Prepare(insertStmt)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, record := range records {
		res, err := stmt.Exec(
			record.NationalID,
			record.FullName,
			record.Position,
			record.Area,
			record.PeriodLabel,
			record.PaymentDate,
			record.NetSalary.String(),
			record.AdvancePayment.String(),
			record.TotalAmount.String(),
			record.CostCenterCode,
			record.CostCenterName,
			record.WorkDays,
			string(record.PaymentMethod),
			string(record.Status),
			record.Notes,
			record.SourceFile,
		)
		if err != nil {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("insert remuneracion: %w", err)
		}

		rows, err := res.RowsAffected()
		if err == nil && rows > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("commit transaction: %w", err)
	}

	return inserted, nil
}

const selectColumns = `
	id, remote_id, submit_error,
	rut, nombre, cargo, area, periodo, fecha_pago,
	sueldo_liquido, anticipo, monto_total,
	cc_codigo, cc_nombre, dias_trabajados,
	forma_pago, estado, notas, source_file`

// ListRecords returns stored rows, optionally filtered by period label.
func (s *SQLiteStore) ListRecords(periodFilter string) ([]Row, error) {
	query := `SELECT` + selectColumns + ` FROM remuneraciones`
	args := make([]any, 0, 1)
	if strings.TrimSpace(periodFilter) != "" {
		query += ` WHERE periodo = ?`
		args = append(args, strings.TrimSpace(periodFilter))
	}
	query += ` ORDER BY periodo, nombre, id;`

	return s.queryRows(query, args...)
}

// ListPending returns rows not yet accepted by the backend.
func (s *SQLiteStore) ListPending() ([]Row, error) {
	query := `SELECT` + selectColumns + ` FROM remuneraciones WHERE remote_id = 0 ORDER BY id;`
	return s.queryRows(query)
}

// GetByLocalID returns one row by its local identifier.
func (s *SQLiteStore) GetByLocalID(id int64) (Row, bool, error) {
	if id <= 0 {
		return Row{}, false, fmt.Errorf("local id must be > 0")
	}

	rows, err := s.queryRows(`SELECT`+selectColumns+` FROM remuneraciones WHERE id = ?;`, id)
	if err != nil {
		return Row{}, false, err
	}
	if len(rows) == 0 {
		return Row{}, false, nil
	}
	return rows[0], true, nil
}

// KnownIDs snapshots every identifier already in use: local row IDs and
// backend-assigned IDs. The importer uses it to mint non-colliding
// temporary IDs.
func (s *SQLiteStore) KnownIDs() ([]int64, error) {
	rows, err := s.db.Query(`SELECT id, remote_id FROM remuneraciones;`)
	if err != nil {
		return nil, fmt.Errorf("query known ids: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0, 256)
	for rows.Next() {
		var localID, remoteID int64
		if err := rows.Scan(&localID, &remoteID); err != nil {
			return nil, fmt.Errorf("scan known ids: %w", err)
		}
		ids = append(ids, localID)
		if remoteID != 0 {
			ids = append(ids, remoteID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate known ids: %w", err)
	}
	return ids, nil
}

// MarkSubmitted records the backend-assigned ID for a local row and clears
// any previous submit error.
func (s *SQLiteStore) MarkSubmitted(localID, remoteID int64) error {
	if localID <= 0 || remoteID <= 0 {
		return fmt.Errorf("local and remote ids must be > 0")
	}

	res, err := s.db.Exec(
		`UPDATE remuneraciones SET remote_id = ?, submit_error = '' WHERE id = ?;`,
		remoteID, localID,
	)
	if err != nil {
		return fmt.Errorf("mark submitted %d: %w", localID, err)
	}
	return requireRowAffected(res)
}

// MarkSubmitFailed stores the backend's rejection reason; the row stays
// pending so a later submit can retry it.
func (s *SQLiteStore) MarkSubmitFailed(localID int64, reason string) error {
	if localID <= 0 {
		return fmt.Errorf("local id must be > 0")
	}

	res, err := s.db.Exec(
		`UPDATE remuneraciones SET submit_error = ? WHERE id = ?;`,
		reason, localID,
	)
	if err != nil {
		return fmt.Errorf("mark submit failed %d: %w", localID, err)
	}
	return requireRowAffected(res)
}

// DeleteRecord removes one row by local ID.
func (s *SQLiteStore) DeleteRecord(localID int64) (bool, error) {
	if localID <= 0 {
		return false, fmt.Errorf("local id must be > 0")
	}

	res, err := s.db.Exec(`DELETE FROM remuneraciones WHERE id = ?;`, localID)
	if err != nil {
		return false, fmt.Errorf("delete remuneracion %d: %w", localID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read deleted row count: %w", err)
	}
	return affected > 0, nil
}

func (s *SQLiteStore) DeleteAllRecords() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM remuneraciones;`)
	if err != nil {
		return 0, fmt.Errorf("delete remuneraciones: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted row count: %w", err)
	}
	return affected, nil
}

func (s *SQLiteStore) queryRows(query string, args ...any) ([]Row, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query remuneraciones: %w", err)
	}
	defer rows.Close()

	out := make([]Row, 0, 256)
	for rows.Next() {
		var (
			row        Row
			netRaw     string
			advanceRaw string
			totalRaw   string
			method     string
			status     string
		)
		if err := rows.Scan(
			&row.LocalID,
			&row.RemoteID,
			&row.SubmitError,
			&row.Record.NationalID,
			&row.Record.FullName,
			&row.Record.Position,
			&row.Record.Area,
			&row.Record.PeriodLabel,
			&row.Record.PaymentDate,
			&netRaw,
			&advanceRaw,
			&totalRaw,
			&row.Record.CostCenterCode,
			&row.Record.CostCenterName,
			&row.Record.WorkDays,
			&method,
			&status,
			&row.Record.Notes,
			&row.Record.SourceFile,
		); err != nil {
			return nil, fmt.Errorf("scan remuneracion: %w", err)
		}

		row.Record.ID = row.RemoteID
		row.Record.PaymentMethod = remuneracion.PaymentMethod(method)
		// Stored status text goes back through the enum parser, so a
		// hand-edited database cannot leak unknown states into the domain.
		row.Record.Status = remuneracion.ParseStatus(status)

		if row.Record.NetSalary, err = parseStoredAmount(netRaw); err != nil {
			return nil, err
		}
		if row.Record.AdvancePayment, err = parseStoredAmount(advanceRaw); err != nil {
			return nil, err
		}
		if row.Record.TotalAmount, err = parseStoredAmount(totalRaw); err != nil {
			return nil, err
		}

		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate remuneraciones: %w", err)
	}

	return out, nil
}

func parseStoredAmount(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse stored amount %q: %w", raw, err)
	}
	return value, nil
}

func requireRowAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read updated row count: %w", err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
