package catalog

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/outfitly/stylist/internal/domain/product"
)

// Catalog column headers. Optional columns degrade to empty strings when the
// source omits them; they never fail a load.
const (
	colGender        = "Gender"
	colName          = "Category" // brand/name column
	colDescription   = "Category.1"
	colDetailed      = "Detailed description"
	colCurrentPrice  = "Current Price"
	colOriginalPrice = "Original Price"
	colImageURL      = "Image Url"
	colProductURL    = "Product page url"
	colSizes         = "Sizes"
	colColors        = "Colors"
	colMessaging     = "productcard_messaging"
	colOfferPercent  = "Offer %"

	colProductID       = "ProductID"       // optional
	colColorsAvailable = "Colors Available" // optional
)

func readCSV(path string) ([]product.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows degrade to empty cells
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse catalog csv: %w", err)
	}
	return rowsFromRecords(records)
}

func readXLSX(path string) ([]product.Product, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("catalog workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read catalog sheet %q: %w", sheets[0], err)
	}
	return rowsFromRecords(records)
}

func rowsFromRecords(records [][]string) ([]product.Product, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("catalog has no header row")
	}
	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[name] = i
	}

	cell := func(rec []string, col string) string {
		idx, ok := header[col]
		if !ok || idx >= len(rec) {
			return ""
		}
		return rec[idx]
	}

	rows := make([]product.Product, 0, len(records)-1)
	for _, rec := range records[1:] {
		colors := cell(rec, colColors)
		if colors == "" {
			colors = cell(rec, colColorsAvailable)
		}
		rows = append(rows, product.Product{
			ID:                  cell(rec, colProductID),
			Name:                cell(rec, colName),
			Description:         cell(rec, colDescription),
			DetailedDescription: cell(rec, colDetailed),
			RawPrice:            cell(rec, colCurrentPrice),
			OriginalPrice:       cell(rec, colOriginalPrice),
			ImageURL:            cell(rec, colImageURL),
			ProductURL:          cell(rec, colProductURL),
			Sizes:               cell(rec, colSizes),
			Colors:              colors,
			Messaging:           cell(rec, colMessaging),
			OfferPercent:        cell(rec, colOfferPercent),
			Gender:              cell(rec, colGender),
		})
	}
	return rows, nil
}
