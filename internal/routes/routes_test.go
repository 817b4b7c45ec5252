package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"invoice-dashboard-backend/internal/metrics"
	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/query"
	"invoice-dashboard-backend/internal/repository/memory"
	service "invoice-dashboard-backend/internal/services/dashboard"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/datatypes"
)

var (
	evilID    = uuid.MustParse("d6e15727-9fe1-4961-8c5b-ea44a9bd81aa")
	invoiceID = uuid.MustParse("0a3c7e7b-9a4b-4a59-9b2f-8f2f5b2d6b11")
)

func performRequest(r http.Handler, method, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func setupTestServer(t *testing.T, store service.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewDashboardService(store, logger, metrics.NewQueryMetrics(reg))

	r := gin.New()
	RegisterRoutes(r, svc, reg)
	return r
}

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	base := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	invoices := []models.Invoice{{ID: invoiceID, CustomerID: evilID, Amount: 15795, Status: "pending", Date: datatypes.Date(base)}}
	for i := 1; i <= 7; i++ {
		invoices = append(invoices, models.Invoice{
			ID:         uuid.New(),
			CustomerID: evilID,
			Amount:     int64(i * 1000),
			Status:     "paid",
			Date:       datatypes.Date(base.AddDate(0, 0, i)),
		})
	}
	err := store.Import(context.Background(),
		[]models.Customer{{ID: evilID, Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"}},
		invoices,
		[]models.Revenue{{Month: "Jan", Revenue: 2000}})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	return store
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestDashboardRoutes(t *testing.T) {
	r := setupTestServer(t, seededStore(t))

	t.Run("Health", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/api/health")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("Cards", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/api/dashboard/cards")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
		}
		body := decode(t, rec)
		if body["numberOfInvoices"] != float64(8) || body["totalPendingInvoices"] != "$157.95" {
			t.Errorf("unexpected cards: %v", body)
		}
		if body["totalPaidInvoices"] != "$280.00" {
			t.Errorf("unexpected paid total: %v", body["totalPaidInvoices"])
		}
	})

	t.Run("Latest Invoices", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/api/dashboard/invoices/latest")
		body := decode(t, rec)
		invoices := body["invoices"].([]any)
		if len(invoices) != 5 {
			t.Fatalf("expected 5 invoices, got %d", len(invoices))
		}
		first := invoices[0].(map[string]any)
		if first["amount"] != "$70.00" {
			t.Errorf("expected formatted amount, got %v", first["amount"])
		}
	})

	t.Run("Invoices Page", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/api/invoices?query=&page=2")
		body := decode(t, rec)
		if body["total_pages"] != float64(2) || body["page"] != float64(2) {
			t.Errorf("unexpected paging: %v", body)
		}
		if invoices := body["invoices"].([]any); len(invoices) != 2 {
			t.Errorf("expected 2 invoices on page 2, got %d", len(invoices))
		}
	})

	t.Run("Invalid Page Defaults To First", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/api/invoices?page=abc")
		body := decode(t, rec)
		if body["page"] != float64(1) {
			t.Errorf("expected page 1, got %v", body["page"])
		}
		if invoices := body["invoices"].([]any); len(invoices) != 6 {
			t.Errorf("expected 6 invoices, got %d", len(invoices))
		}
	})

	t.Run("Past The End", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/api/invoices?page=9")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if invoices := decode(t, rec)["invoices"].([]any); len(invoices) != 0 {
			t.Errorf("expected empty page, got %d", len(invoices))
		}
	})

	t.Run("Pages", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/api/invoices/pages?query=pending")
		if body := decode(t, rec); body["total_pages"] != float64(1) {
			t.Errorf("unexpected pages: %v", body)
		}
	})

	t.Run("Invoice By ID", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/api/invoices/"+invoiceID.String())
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
		}
		invoice := decode(t, rec)["invoice"].(map[string]any)
		if invoice["amount"] != 157.95 || invoice["status"] != "pending" {
			t.Errorf("unexpected invoice: %v", invoice)
		}
	})

	t.Run("Unknown Invoice", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/api/invoices/"+uuid.NewString())
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d", rec.Code)
		}
		if body := decode(t, rec); body["error"] != "Failed to fetch invoice." {
			t.Errorf("unexpected error body: %v", body)
		}
	})

	t.Run("Customers Table", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/api/customers/table?query=RABBIT")
		customers := decode(t, rec)["customers"].([]any)
		if len(customers) != 1 {
			t.Fatalf("expected 1 customer, got %d", len(customers))
		}
		c := customers[0].(map[string]any)
		if c["total_paid"] != "$280.00" || c["total_pending"] != "$157.95" {
			t.Errorf("unexpected totals: %v", c)
		}
	})

	t.Run("Customers", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/api/customers")
		customers := decode(t, rec)["customers"].([]any)
		if len(customers) != 1 || customers[0].(map[string]any)["name"] != "Evil Rabbit" {
			t.Errorf("unexpected customers: %v", customers)
		}
	})

	t.Run("Revenue", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/api/dashboard/revenue")
		if revenue := decode(t, rec)["revenue"].([]any); len(revenue) != 1 {
			t.Errorf("unexpected revenue: %v", revenue)
		}
	})

	t.Run("Metrics", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/metrics")
		if !strings.Contains(rec.Body.String(), "invoice_dashboard_query_total") {
			t.Errorf("expected query metrics to be exposed")
		}
	})
}

type brokenStore struct {
	service.Store
}

func (brokenStore) ListRevenue(context.Context) ([]models.Revenue, error) {
	return nil, errors.New("relation \"revenue\" does not exist")
}

func (brokenStore) ListInvoiceRows(context.Context, query.Spec) ([]models.InvoiceRow, error) {
	return nil, errors.New("timeout")
}

func TestDashboardRoutesFailure(t *testing.T) {
	r := setupTestServer(t, brokenStore{})

	rec := performRequest(r, http.MethodGet, "/api/dashboard/revenue")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode(t, rec)
	if body["error"] != "Failed to fetch revenue data." {
		t.Errorf("unexpected error body: %v", body)
	}

	rec = performRequest(r, http.MethodGet, "/api/invoices?query=x")
	if body := decode(t, rec); body["error"] != "Failed to fetch invoices." {
		t.Errorf("unexpected error body: %v", body)
	}
}
