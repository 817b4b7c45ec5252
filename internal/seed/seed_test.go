package seed

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"invoice-dashboard-backend/internal/repository/memory"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

const customersCSV = `id,name,email,image_url
d6e15727-9fe1-4961-8c5b-ea44a9bd81aa,Evil Rabbit,evil@rabbit.com,/customers/evil-rabbit.png
cc27c14a-0acf-4f4a-a6c9-d45682c144b9,Delba de Oliveira,delba@oliveira.com,/customers/delba-de-oliveira.png
not-a-uuid,Broken,broken@example.com,
`

const invoicesCSV = `customer_id,amount,status,date
d6e15727-9fe1-4961-8c5b-ea44a9bd81aa,15795,pending,2022-12-06
cc27c14a-0acf-4f4a-a6c9-d45682c144b9,20348,pending,14-11-2022
cc27c14a-0acf-4f4a-a6c9-d45682c144b9,abc,paid,2022-10-29

d6e15727-9fe1-4961-8c5b-ea44a9bd81aa,3040,paid,not-a-date
`

const revenueCSV = "month\trevenue\nJan\t2000\nFeb\t1800\nMar\t\n"

func TestParseInvoices(t *testing.T) {
	invoices, err := ParseInvoices(strings.NewReader(invoicesCSV), discard)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(invoices) != 2 {
		t.Fatalf("expected 2 valid invoices, got %d", len(invoices))
	}
	if invoices[0].Amount != 15795 || invoices[0].Status != "pending" {
		t.Errorf("unexpected first invoice: %+v", invoices[0])
	}
	want := time.Date(2022, time.November, 14, 0, 0, 0, 0, time.UTC)
	if !time.Time(invoices[1].Date).Equal(want) {
		t.Errorf("dd-mm-yyyy date parsed as %v", time.Time(invoices[1].Date))
	}

	again, _ := ParseInvoices(strings.NewReader(invoicesCSV), discard)
	if again[0].ID != invoices[0].ID {
		t.Error("derived invoice ids should be stable across imports")
	}
	if invoices[0].ID == invoices[1].ID {
		t.Error("different rows should get different ids")
	}
}

func TestParseMissingColumn(t *testing.T) {
	_, err := ParseCustomers(strings.NewReader("id,name\n"), discard)
	if err == nil || !strings.Contains(err.Error(), `"email"`) {
		t.Errorf("expected missing column error, got %v", err)
	}
}

func TestParseRevenueTabSeparated(t *testing.T) {
	revenue, err := ParseRevenue(strings.NewReader(revenueCSV), discard)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(revenue) != 2 || revenue[1].Month != "Feb" || revenue[1].Revenue != 1800 {
		t.Errorf("unexpected revenue: %+v", revenue)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		CustomersFile: customersCSV,
		InvoicesFile:  invoicesCSV,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	store := memory.NewStore()
	ctx := context.Background()
	data, err := Run(ctx, dir, store, discard)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(data.Customers) != 2 || len(data.Invoices) != 2 || len(data.Revenue) != 0 {
		t.Errorf("unexpected data sizes: %d customers, %d invoices, %d revenue",
			len(data.Customers), len(data.Invoices), len(data.Revenue))
	}

	// a second run must not duplicate anything
	if _, err := Run(ctx, dir, store, discard); err != nil {
		t.Fatalf("second run: %v", err)
	}
	n, _ := store.CountInvoices(ctx, nil)
	if n != 2 {
		t.Errorf("expected 2 invoices after re-import, got %d", n)
	}
}
