package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"guest-checkin/metrics"
	"guest-checkin/models"
	"guest-checkin/repositories"

	"github.com/go-playground/validator/v10"
)

const maxReportedDiagnostics = 10

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ImportRow is one CSV data row keyed by header. Err is set when the row
// could not be read.
type ImportRow struct {
	Columns map[string]string
	Err     error
}

// RowDiagnostic is numbered by data row, starting at 1.
type RowDiagnostic struct {
	Row      int
	Severity Severity
	Message  string
}

func (d RowDiagnostic) String() string {
	return fmt.Sprintf("Row %d: %s", d.Row, d.Message)
}

type ImportSummary struct {
	TotalProcessed int      `json:"totalProcessed"`
	SuccessCount   int      `json:"successCount"`
	ErrorCount     int      `json:"errorCount"`
	InsertedCount  int      `json:"insertedCount"`
	Errors         []string `json:"errors"`
}

type ImportService struct {
	guests   repositories.GuestRepository
	logs     repositories.ImportLogRepository
	validate *validator.Validate
	aliases  ColumnAliases
	now      func() time.Time
}

func NewImportService(guests repositories.GuestRepository, logs repositories.ImportLogRepository, v *validator.Validate) *ImportService {
	return &ImportService{
		guests:   guests,
		logs:     logs,
		validate: v,
		aliases:  DefaultColumnAliases,
		now:      time.Now,
	}
}

// ReadCSV parses a UTF-8 CSV with a header row. A malformed data row is
// returned with Err set; only an unreadable header or stream fails the call.
func ReadCSV(r io.Reader) ([]ImportRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows []ImportRow
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			rows = append(rows, ImportRow{Err: perr})
			continue
		}
		if err != nil {
			return nil, err
		}

		cols := make(map[string]string, len(header))
		for i, h := range header {
			if i >= len(record) {
				break
			}
			if _, seen := cols[h]; !seen || cols[h] == "" {
				cols[h] = record[i]
			}
		}
		rows = append(rows, ImportRow{Columns: cols})
	}
}

// NormalizeImportFile maps rows to guest payloads. Format problems are
// warnings and the row is kept; only a row that cannot be processed at all
// is dropped, with an error diagnostic. Diagnostics keep row order.
func (s *ImportService) NormalizeImportFile(rows []ImportRow) ([]GuestInput, []RowDiagnostic) {
	records := make([]GuestInput, 0, len(rows))
	var diags []RowDiagnostic

	for i, row := range rows {
		n := i + 1
		payload, warnings, err := s.normalizeRow(row)
		if err != nil {
			diags = append(diags, RowDiagnostic{Row: n, Severity: SeverityError, Message: err.Error()})
			continue
		}
		for _, w := range warnings {
			diags = append(diags, RowDiagnostic{Row: n, Severity: SeverityWarning, Message: w})
		}
		records = append(records, payload)
	}
	return records, diags
}

func (s *ImportService) normalizeRow(row ImportRow) (payload GuestInput, warnings []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("Lỗi xử lý dữ liệu: %v", r)
		}
	}()

	if row.Err != nil {
		return GuestInput{}, nil, errors.New(MsgRowMalformed)
	}
	for _, v := range row.Columns {
		if !utf8.ValidString(v) {
			return GuestInput{}, nil, errors.New(MsgRowUnreadable)
		}
	}

	a := s.aliases
	name := strings.TrimSpace(firstPresent(row.Columns, a.FirstName) + " " + firstPresent(row.Columns, a.LastName))
	if name == "" {
		name = firstPresent(row.Columns, a.Name)
	}

	payload = GuestInput{
		Name:   name,
		Email:  firstPresent(row.Columns, a.Email),
		Phone:  firstPresent(row.Columns, a.Phone),
		Gender: firstPresent(row.Columns, a.Gender),
		Age:    firstPresent(row.Columns, a.Age),
		Source: firstPresent(row.Columns, a.Source),
	}.normalized()

	return payload, formatProblems(s.validate, payload.Email, payload.Phone), nil
}

// Import reads, normalizes and batch-inserts a CSV upload. A failed batch
// insert inserts nothing and returns an ImportBatchError with the summary.
func (s *ImportService) Import(ctx context.Context, fileName string, r io.Reader) (ImportSummary, error) {
	rows, err := ReadCSV(r)
	if err != nil {
		return ImportSummary{Errors: []string{}}, &Error{Kind: KindInvalidArgument, Message: MsgCSVUnreadable, Err: err}
	}

	records, diags := s.NormalizeImportFile(rows)
	log.Printf("➡️ ImportService.Import file=%q rows=%d payloads=%d diagnostics=%d", fileName, len(rows), len(records), len(diags))

	summary := ImportSummary{
		TotalProcessed: len(rows),
		SuccessCount:   len(records),
		Errors:         []string{},
	}
	for _, d := range diags {
		if d.Severity == SeverityError {
			summary.ErrorCount++
		}
		if len(summary.Errors) < maxReportedDiagnostics {
			summary.Errors = append(summary.Errors, d.String())
		}
	}

	now := s.now()
	guests := make([]models.Guest, 0, len(records))
	for _, in := range records {
		guests = append(guests, models.Guest{
			CustomID:  NewCustomID(),
			Name:      in.Name,
			Email:     in.Email,
			Phone:     in.Phone,
			Gender:    in.Gender,
			Age:       in.Age,
			Source:    in.Source,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	inserted, err := s.guests.InsertMany(ctx, guests)
	if err != nil {
		log.Printf("❌ ImportService.Import batch insert failed: %v", err)
		failed := ImportSummary{
			TotalProcessed: len(rows),
			ErrorCount:     len(rows),
			Errors:         []string{MsgImportBatchError},
		}
		metrics.ImportRows.WithLabelValues("batch_failed").Add(float64(len(rows)))
		s.record(ctx, fileName, failed, false)
		return failed, &Error{Kind: KindImportBatchError, Message: MsgImportBatchError, Err: err}
	}
	summary.InsertedCount = inserted
	metrics.ImportRows.WithLabelValues("inserted").Add(float64(inserted))
	metrics.ImportRows.WithLabelValues("rejected").Add(float64(summary.ErrorCount))

	log.Printf("⬅️ ImportService.Import ok inserted=%d errors=%d", inserted, summary.ErrorCount)
	s.record(ctx, fileName, summary, true)
	return summary, nil
}

func (s *ImportService) record(ctx context.Context, fileName string, summary ImportSummary, ok bool) {
	if s.logs == nil {
		return
	}
	errs, _ := json.Marshal(summary.Errors)
	entry := &models.ImportLog{
		FileName:       fileName,
		TotalProcessed: summary.TotalProcessed,
		SuccessCount:   summary.SuccessCount,
		ErrorCount:     summary.ErrorCount,
		InsertedCount:  summary.InsertedCount,
		Success:        ok,
		Errors:         errs,
		CreatedAt:      s.now(),
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		log.Printf("⚠️ ImportService: failed to record import log: %v", err)
	}
}

func (s *ImportService) History(ctx context.Context, limit int) ([]models.ImportLog, error) {
	logs, err := s.logs.Recent(ctx, limit)
	if err != nil {
		return nil, storeError(err)
	}
	if logs == nil {
		logs = []models.ImportLog{}
	}
	return logs, nil
}
