package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"invoice-dashboard-backend/internal/models"
)

const (
	CustomersFile = "customers.csv"
	InvoicesFile  = "invoices.csv"
	RevenueFile   = "revenue.csv"
)

// Importer is implemented by repository.Store and memory.Store.
type Importer interface {
	Import(ctx context.Context, customers []models.Customer, invoices []models.Invoice, revenue []models.Revenue) error
}

type Data struct {
	Customers []models.Customer
	Invoices  []models.Invoice
	Revenue   []models.Revenue
}

// LoadDir parses the seed files found in dir. Missing files are skipped.
func LoadDir(dir string, log *slog.Logger) (*Data, error) {
	data := &Data{}
	var err error

	if data.Customers, err = parseFile(filepath.Join(dir, CustomersFile), log, ParseCustomers); err != nil {
		return nil, err
	}
	if data.Invoices, err = parseFile(filepath.Join(dir, InvoicesFile), log, ParseInvoices); err != nil {
		return nil, err
	}
	if data.Revenue, err = parseFile(filepath.Join(dir, RevenueFile), log, ParseRevenue); err != nil {
		return nil, err
	}
	return data, nil
}

func parseFile[T any](path string, log *slog.Logger, parse func(io.Reader, *slog.Logger) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("seed file not found, skipping", "file", path)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := parse(f, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

// Run loads dir and imports it into dst.
func Run(ctx context.Context, dir string, dst Importer, log *slog.Logger) (*Data, error) {
	data, err := LoadDir(dir, log)
	if err != nil {
		return nil, err
	}
	if err := dst.Import(ctx, data.Customers, data.Invoices, data.Revenue); err != nil {
		return nil, fmt.Errorf("import seed data: %w", err)
	}
	log.Info("seed data imported",
		"customers", len(data.Customers),
		"invoices", len(data.Invoices),
		"revenue", len(data.Revenue),
	)
	return data, nil
}
