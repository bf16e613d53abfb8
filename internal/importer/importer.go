// Package importer loads cart items from CSV exports of the legacy SQLite
// database.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"shopping-cart-service/internal/domain"
	cartitemrepo "shopping-cart-service/internal/repository/cartitem"
)

type ItemWriter interface {
	Insert(ctx context.Context, in cartitemrepo.InsertInput) (*domain.CartItem, error)
}

// CSVImporter reads legacy cart exports and inserts the rows. Store-assigned
// columns (id, auto_date) in the export are ignored; the store assigns fresh
// ones.
type CSVImporter struct {
	reader *csv.Reader
	store  ItemWriter
}

func NewCSVImporter(r io.Reader, store ItemWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader: csvr,
		store:  store,
	}
}

// Run parses CSV rows and inserts them, skipping (user, product) pairs that
// already exist. It returns the number of rows inserted.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, col := range []string{"user_id", "username", "product_id", "product_title"} {
		if _, ok := index[col]; !ok {
			return 0, fmt.Errorf("missing column %q", col)
		}
	}

	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		in, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", line, err)
		}

		if _, err := i.store.Insert(ctx, *in); err != nil {
			if errors.Is(err, domain.ErrAlreadyInCart) {
				continue
			}
			return imported, fmt.Errorf("row %d: insert: %w", line, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func parseRow(record []string, index map[string]int) (*cartitemrepo.InsertInput, error) {
	userID, err := intField(record, index, "user_id")
	if err != nil {
		return nil, err
	}
	productID, err := intField(record, index, "product_id")
	if err != nil {
		return nil, err
	}

	// The legacy export stores dollar prices.
	price := 0.0
	if raw := field(record, index, "product_price"); raw != "" {
		price, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("parse product_price %q: %w", raw, err)
		}
	}

	quantity := 1
	if raw := field(record, index, "quantity"); raw != "" {
		quantity, err = strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("parse quantity %q: %w", raw, err)
		}
	}
	if quantity < domain.MinQuantity || quantity > domain.MaxQuantity {
		return nil, fmt.Errorf("quantity %d out of range", quantity)
	}

	return &cartitemrepo.InsertInput{
		UserID:             userID,
		Username:           field(record, index, "username"),
		ProductID:          productID,
		ProductTitle:       field(record, index, "product_title"),
		ProductDescription: field(record, index, "product_desc"),
		ProductPriceCents:  int64(math.Round(price * 100)),
		Quantity:           quantity,
	}, nil
}

func intField(record []string, index map[string]int, name string) (int64, error) {
	raw := field(record, index, name)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", name, raw, err)
	}
	return v, nil
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
