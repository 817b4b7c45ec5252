// Package seed loads customers, invoices and revenue from CSV files and
// hands them to a store for insert-or-ignore import.
package seed

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"invoice-dashboard-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var dateLayouts = []string{"2006-01-02", "02-01-2006"}

// table is a parsed CSV file addressed by lower-cased header names.
type table struct {
	index map[string]int
	rows  [][]string
}

func (t *table) get(row []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func readTable(r io.Reader, required ...string) (*table, error) {
	br := bufio.NewReader(r)
	sample, _ := br.Peek(1024)

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	if !bytes.Contains(sample, []byte(",")) && bytes.Contains(sample, []byte("\t")) {
		reader.Comma = '\t'
	}

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	t := &table{index: make(map[string]int, len(header))}
	for i, h := range header {
		t.index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range required {
		if _, ok := t.index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(t.rows)+1, err)
		}
		if strings.TrimSpace(strings.Join(record, "")) == "" {
			continue
		}
		t.rows = append(t.rows, record)
	}
	return t, nil
}

// ParseCustomers reads id,name,email,image_url. Rows without a valid id or
// name are skipped.
func ParseCustomers(r io.Reader, log *slog.Logger) ([]models.Customer, error) {
	t, err := readTable(r, "id", "name", "email")
	if err != nil {
		return nil, err
	}

	customers := make([]models.Customer, 0, len(t.rows))
	for n, row := range t.rows {
		id, err := uuid.Parse(t.get(row, "id"))
		if err != nil {
			log.Warn("skipping customer row: invalid id", "row", n+1, "error", err)
			continue
		}
		name := t.get(row, "name")
		if name == "" {
			log.Warn("skipping customer row: name empty", "row", n+1)
			continue
		}
		customers = append(customers, models.Customer{
			ID:       id,
			Name:     name,
			Email:    t.get(row, "email"),
			ImageURL: t.get(row, "image_url"),
		})
	}
	return customers, nil
}

// ParseInvoices reads customer_id,amount,status,date with an optional id
// column. Amounts are cents. Without an id, one is derived from the row so
// re-running an import does not duplicate invoices.
func ParseInvoices(r io.Reader, log *slog.Logger) ([]models.Invoice, error) {
	t, err := readTable(r, "customer_id", "amount", "status", "date")
	if err != nil {
		return nil, err
	}

	invoices := make([]models.Invoice, 0, len(t.rows))
	for n, row := range t.rows {
		customerID, err := uuid.Parse(t.get(row, "customer_id"))
		if err != nil {
			log.Warn("skipping invoice row: invalid customer_id", "row", n+1, "error", err)
			continue
		}
		amount, err := strconv.ParseInt(t.get(row, "amount"), 10, 64)
		if err != nil || amount < 0 {
			log.Warn("skipping invoice row: invalid amount", "row", n+1, "amount", t.get(row, "amount"))
			continue
		}
		status := t.get(row, "status")
		if status == "" {
			log.Warn("skipping invoice row: status empty", "row", n+1)
			continue
		}
		date, err := parseDate(t.get(row, "date"))
		if err != nil {
			log.Warn("skipping invoice row: invalid date", "row", n+1, "date", t.get(row, "date"))
			continue
		}

		var id uuid.UUID
		if raw := t.get(row, "id"); raw != "" {
			if id, err = uuid.Parse(raw); err != nil {
				log.Warn("skipping invoice row: invalid id", "row", n+1, "error", err)
				continue
			}
		} else {
			id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.Join([]string{
				customerID.String(), strconv.FormatInt(amount, 10), status, date.Format("2006-01-02"),
			}, "|")))
		}

		invoices = append(invoices, models.Invoice{
			ID:         id,
			CustomerID: customerID,
			Amount:     amount,
			Status:     status,
			Date:       datatypes.Date(date),
		})
	}
	return invoices, nil
}

// ParseRevenue reads month,revenue.
func ParseRevenue(r io.Reader, log *slog.Logger) ([]models.Revenue, error) {
	t, err := readTable(r, "month", "revenue")
	if err != nil {
		return nil, err
	}

	revenue := make([]models.Revenue, 0, len(t.rows))
	for n, row := range t.rows {
		month := t.get(row, "month")
		value, err := strconv.ParseInt(t.get(row, "revenue"), 10, 64)
		if month == "" || err != nil {
			log.Warn("skipping revenue row", "row", n+1, "month", month, "revenue", t.get(row, "revenue"))
			continue
		}
		revenue = append(revenue, models.Revenue{Month: month, Revenue: value})
	}
	return revenue, nil
}

func parseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var d time.Time
		if d, err = time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, err
}
