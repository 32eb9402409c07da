package core

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// exportColumns is the fixed column order of the tabular export format.
var exportColumns = []string{"id", "name", "category", "brand", "price", "stock", "image"}

// ExportCSV writes the full product set to w as CSV, one row per product in
// the fixed column order. Embedded commas and quotes get standard CSV
// quoting from encoding/csv. An empty store is a structured "no data"
// condition (ErrEmptyDataset), not a crash.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return ErrEmptyDataset
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportColumns); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, p := range products {
		row := []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Category,
			p.Brand,
			strconv.FormatInt(p.Price, 10),
			strconv.FormatInt(p.Stock, 10),
			p.Image,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
