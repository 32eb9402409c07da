package core

// import.go implements bulk CSV import reconciliation.
//
// Rows are processed strictly in file order, one at a time. The store is the
// single source of truth for "does this name exist": each row re-checks by
// name, so a product inserted by an earlier row in the same batch is seen by
// the duplicate check of a later one. Import is strictly additive and never
// overwrites an existing product.

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// requiredImportColumns must be present in the CSV header and non-empty in
// every accepted row. An image column is optional; extra columns are ignored.
var requiredImportColumns = []string{"name", "category", "brand", "price", "stock"}

const missingFieldsReason = "Missing required fields (name, category, brand, price, or stock)"

// ImportProducts reads CSV data from r and reconciles it against the current
// inventory, returning a report of added, skipped, and invalid rows.
//
// Per-row failures never abort the batch; they are absorbed into the report.
// The one exception is a transient store fault, which makes continuing
// meaningless: the partial report is returned together with the error.
func (s *Service) ImportProducts(ctx context.Context, r io.Reader) (*ImportReport, error) {
	report := &ImportReport{
		BatchID:    uuid.New().String(),
		Duplicates: []string{},
		Errors:     []RowError{},
	}
	logger := slog.Default().With("batch_id", report.BatchID)

	reader := csv.NewReader(NewUTF8Sanitizer(NewBOMSkippingReader(r)))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return report, &ValidationError{Message: "CSV file is empty"}
		}
		return report, fmt.Errorf("read CSV header: %w", err)
	}

	headerIdx := makeHeaderIndex(header)
	for _, col := range requiredImportColumns {
		if _, ok := headerIdx[col]; !ok {
			return report, &ValidationError{Field: col, Message: "missing required column"}
		}
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return report, fmt.Errorf("read CSV line %d: %w", line, err)
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		row := rowMap(header, record)
		if stop := s.importRow(ctx, row, report); stop != nil {
			logger.Error("import aborted",
				"line", line,
				"added", report.Added,
				"skipped", report.Skipped,
				"error", stop,
			)
			return report, stop
		}
	}

	if report.Added > 0 {
		s.invalidateCache(ctx)
	}

	logger.Info("import finished",
		"added", report.Added,
		"skipped", report.Skipped,
		"invalid", len(report.Errors),
	)
	return report, nil
}

// importRow classifies and applies a single row. A non-nil return aborts the
// remaining batch; recoverable problems land in the report instead.
func (s *Service) importRow(ctx context.Context, row map[string]string, report *ImportReport) error {
	for _, col := range requiredImportColumns {
		if strings.TrimSpace(row[col]) == "" {
			report.Errors = append(report.Errors, RowError{Row: row, Reason: missingFieldsReason})
			return nil
		}
	}

	price, perr := strconv.ParseInt(strings.TrimSpace(row["price"]), 10, 64)
	stock, serr := strconv.ParseInt(strings.TrimSpace(row["stock"]), 10, 64)
	if perr != nil || serr != nil {
		report.Errors = append(report.Errors, RowError{
			Row:    row,
			Reason: "Invalid number format for price or stock",
		})
		return nil
	}

	name := strings.TrimSpace(row["name"])
	image := cleanImageURL(row["image"])

	existing, err := s.store.GetProductByName(ctx, name)
	if err != nil {
		if IsTransient(err) {
			return err
		}
		report.Errors = append(report.Errors, RowError{Row: row, Reason: "Lookup failed: " + err.Error()})
		return nil
	}

	if existing != nil {
		report.Skipped++
		report.Duplicates = append(report.Duplicates, name)
		return nil
	}

	p := &Product{
		Name:     name,
		Category: row["category"],
		Brand:    row["brand"],
		Price:    price,
		Stock:    stock,
		Image:    image,
	}

	if _, err := s.store.InsertProduct(ctx, p); err != nil {
		// A unique violation here means a concurrent writer inserted the
		// name between check and insert; classify it as a duplicate.
		var ce *ConflictError
		if errors.As(err, &ce) {
			report.Skipped++
			report.Duplicates = append(report.Duplicates, name)
			return nil
		}
		if IsTransient(err) {
			return err
		}
		report.Errors = append(report.Errors, RowError{Row: row, Reason: "Insert failed: " + err.Error()})
		return nil
	}

	report.Added++
	return nil
}

// makeHeaderIndex maps lowercased, trimmed column names to positions.
func makeHeaderIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	return idx
}

// rowMap pairs header names with record values, keyed by the normalized
// column name. Short records leave trailing columns empty.
func rowMap(header, record []string) map[string]string {
	row := make(map[string]string, len(header))
	for i, col := range header {
		key := strings.ToLower(strings.TrimSpace(col))
		if key == "" {
			continue
		}
		if i < len(record) {
			row[key] = record[i]
		} else {
			row[key] = ""
		}
	}
	return row
}

// cleanImageURL strips surrounding quote characters and whitespace from an
// image reference, substituting the placeholder when nothing remains.
func cleanImageURL(raw string) string {
	cleaned := strings.NewReplacer(`"`, "", `'`, "").Replace(raw)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return PlaceholderImageURL
	}
	return cleaned
}
