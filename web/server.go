// Package web serves a localhost-only single-user UI; it intentionally has no
// auth/CSRF protection in this mode.
package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"goremu/backend"
	"goremu/config"
	"goremu/importer"
	"goremu/internal/clock"
	"goremu/remuneracion"
	"goremu/storage"
	"goremu/submitter"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

type Server struct {
	store  *storage.SQLiteStore
	client backend.Client
	cfg    config.Config
	router chi.Router
}

type recordView struct {
	LocalID     int64  `json:"localId"`
	RemoteID    int64  `json:"remoteId"`
	SubmitError string `json:"submitError,omitempty"`
	RUT         string `json:"rut"`
	Nombre      string `json:"nombreCompleto"`
	Cargo       string `json:"cargo"`
	Area        string `json:"area"`
	Periodo     string `json:"periodo"`
	FechaPago   string `json:"fechaPago"`
	Liquido     string `json:"sueldoLiquido"`
	Anticipo    string `json:"anticipo"`
	MontoTotal  string `json:"montoTotal"`
	Dias        int    `json:"diasTrabajados"`
	MetodoPago  string `json:"metodoPago"`
	Estado      string `json:"estado"`
	Notas       string `json:"notas,omitempty"`
	Archivo     string `json:"archivo"`
}

type importResponse struct {
	FileName      string `json:"fileName"`
	HeaderRow     int    `json:"headerRow"`
	RowsRead      int    `json:"rowsRead"`
	RowsSkipped   int    `json:"rowsSkipped"`
	RowsDiscarded int    `json:"rowsDiscarded"`
	RowsPersisted int    `json:"rowsPersisted"`
}

type submitRowFailureView struct {
	LocalID int64  `json:"localId"`
	Reason  string `json:"reason"`
}

type submitResponse struct {
	BatchID   string                 `json:"batchId"`
	Submitted int                    `json:"submitted"`
	Saved     int                    `json:"saved"`
	Failed    int                    `json:"failed"`
	Failures  []submitRowFailureView `json:"failures,omitempty"`
}

type indexPageView struct {
	Title     string
	Summaries []PeriodSummary
	Records   []recordView
}

func NewServer(store *storage.SQLiteStore, client backend.Client, cfg config.Config) http.Handler {
	server := &Server{
		store:  store,
		client: client,
		cfg:    cfg,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/", server.handleIndex)
	router.Route("/api", func(api chi.Router) {
		api.Post("/import", server.handleAPIImport)
		api.Get("/remuneraciones", server.handleAPIList)
		api.Post("/submit", server.handleAPISubmit)
		api.Get("/summary", server.handleAPISummary)
	})
	server.router = router

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	rows, err := s.store.ListRecords("")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	view := indexPageView{
		Title:     "goremu",
		Summaries: BuildPeriodSummaries(rows),
		Records:   rowsToViews(rows),
	}
	if err := renderTemplate(w, "index.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleAPIImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, fmt.Sprintf("parse multipart form: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", tempUploadPattern(header.Filename))
	if err != nil {
		http.Error(w, fmt.Sprintf("create temp upload: %v", err), http.StatusInternalServerError)
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		http.Error(w, fmt.Sprintf("save upload: %v", err), http.StatusInternalServerError)
		return
	}
	if err := tmp.Close(); err != nil {
		http.Error(w, fmt.Sprintf("close upload temp file: %v", err), http.StatusInternalServerError)
		return
	}

	reader, err := importer.ReaderForPath(tmpPath)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	grid, err := reader.Read(tmpPath)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	knownIDs, err := s.store.KnownIDs()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// The original file name feeds both provenance notes and the period
	// fallback, so the temp path must not leak into the pipeline.
	result, err := importer.RunGrid(grid, header.Filename, importer.RunOptions{
		Clock:                clock.System{},
		KnownIDs:             knownIDs,
		DefaultWorkDays:      s.cfg.Import.DefaultWorkDays,
		DefaultPaymentMethod: s.cfg.Import.PaymentMethod(),
	})
	if err != nil {
		http.Error(w, err.Error(), importErrorStatus(err))
		return
	}

	inserted, err := s.store.InsertRecords(result.Records)
	if err != nil {
		http.Error(w, fmt.Sprintf("insert imported records: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, importResponse{
		FileName:      header.Filename,
		HeaderRow:     result.HeaderRow,
		RowsRead:      result.RowsRead,
		RowsSkipped:   result.RowsSkipped,
		RowsDiscarded: result.RowsDiscarded,
		RowsPersisted: inserted,
	})
}

func (s *Server) handleAPIList(w http.ResponseWriter, r *http.Request) {
	var (
		rows []storage.Row
		err  error
	)
	if r.URL.Query().Get("pending") == "true" {
		rows, err = s.store.ListPending()
	} else {
		rows, err = s.store.ListRecords(r.URL.Query().Get("period"))
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, rowsToViews(rows))
}

func (s *Server) handleAPISubmit(w http.ResponseWriter, r *http.Request) {
	pending, err := s.store.ListPending()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(pending) == 0 {
		http.Error(w, "no pending records to submit", http.StatusConflict)
		return
	}

	records := make([]remuneracion.Record, 0, len(pending))
	for _, row := range pending {
		records = append(records, row.Record)
	}

	result, err := submitter.Submit(r.Context(), s.client, records)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	resp, err := s.persistSubmitOutcome(pending, result)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// persistSubmitOutcome mirrors the submitter's positional contract: failures
// are keyed by batch index, accepted rows consume saved records in order.
func (s *Server) persistSubmitOutcome(pending []storage.Row, result *submitter.Result) (submitResponse, error) {
	failedIndex := make(map[int]string, len(result.Failures))
	for _, failure := range result.Failures {
		failedIndex[failure.RowIndex] = failure.Reason
	}

	resp := submitResponse{
		BatchID:   result.BatchID,
		Submitted: result.Submitted,
	}

	savedPos := 0
	for i, row := range pending {
		if reason, failed := failedIndex[i]; failed {
			if err := s.store.MarkSubmitFailed(row.LocalID, reason); err != nil {
				return resp, err
			}
			resp.Failed++
			resp.Failures = append(resp.Failures, submitRowFailureView{LocalID: row.LocalID, Reason: reason})
			continue
		}
		if savedPos >= len(result.Saved) {
			reason := "sin id asignado por el servidor"
			if err := s.store.MarkSubmitFailed(row.LocalID, reason); err != nil {
				return resp, err
			}
			resp.Failed++
			resp.Failures = append(resp.Failures, submitRowFailureView{LocalID: row.LocalID, Reason: reason})
			continue
		}
		if err := s.store.MarkSubmitted(row.LocalID, result.Saved[savedPos].ID); err != nil {
			return resp, err
		}
		savedPos++
		resp.Saved++
	}

	logrus.WithFields(logrus.Fields{
		"batch":     resp.BatchID,
		"guardados": resp.Saved,
		"fallidos":  resp.Failed,
	}).Info("envio de remuneraciones desde la web")

	return resp, nil
}

func (s *Server) handleAPISummary(w http.ResponseWriter, r *http.Request) {
	rows, err := s.store.ListRecords("")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, BuildPeriodSummaries(rows))
}

func rowsToViews(rows []storage.Row) []recordView {
	out := make([]recordView, 0, len(rows))
	for _, row := range rows {
		out = append(out, recordView{
			LocalID:     row.LocalID,
			RemoteID:    row.RemoteID,
			SubmitError: row.SubmitError,
			RUT:         row.Record.NationalID,
			Nombre:      row.Record.FullName,
			Cargo:       row.Record.Position,
			Area:        row.Record.Area,
			Periodo:     row.Record.PeriodLabel,
			FechaPago:   row.Record.PaymentDate,
			Liquido:     row.Record.NetSalary.String(),
			Anticipo:    row.Record.AdvancePayment.String(),
			MontoTotal:  row.Record.TotalAmount.String(),
			Dias:        row.Record.WorkDays,
			MetodoPago:  string(row.Record.PaymentMethod),
			Estado:      string(row.Record.Status),
			Notas:       row.Record.Notes,
			Archivo:     row.Record.SourceFile,
		})
	}
	return out
}

// importErrorStatus maps pipeline errors onto HTTP statuses: bad books are
// client errors, everything else is a server error.
func importErrorStatus(err error) int {
	var unreadable *importer.UnreadableFileError
	var noHeader *importer.HeaderNotFoundError
	var missingColumns *importer.MissingRequiredColumnsError
	var noRecords *importer.NoValidRecordsError
	if errors.As(err, &unreadable) || errors.As(err, &noHeader) ||
		errors.As(err, &missingColumns) || errors.As(err, &noRecords) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func tempUploadPattern(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".xlsx", ".xlsm", ".xls", ".csv":
		return "goremu-upload-*" + ext
	default:
		return "goremu-upload-*"
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func renderTemplate(w http.ResponseWriter, pageTemplate string, data any) error {
	tmpl, err := template.ParseFS(templateFS, "templates/"+pageTemplate)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", pageTemplate, err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render template %s: %w", pageTemplate, err)
	}
	return nil
}
