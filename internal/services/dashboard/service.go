// Package dashboard implements the read-only queries behind the invoices
// dashboard: revenue, summary cards, invoice search and the customer table.
package dashboard

import (
	"context"
	"errors"
	"log/slog"

	"invoice-dashboard-backend/internal/format"
	"invoice-dashboard-backend/internal/metrics"
	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/query"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ItemsPerPage       = 6
	LatestInvoiceCount = 5
)

// Store is the read surface the service needs. repository.Store and
// memory.Store both satisfy it.
type Store interface {
	ListRevenue(ctx context.Context) ([]models.Revenue, error)
	ListInvoiceRows(ctx context.Context, spec query.Spec) ([]models.InvoiceRow, error)
	CountInvoices(ctx context.Context, preds []query.Predicate) (int64, error)
	GetInvoice(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	TotalsByStatus(ctx context.Context) ([]models.StatusTotal, error)
	CountCustomers(ctx context.Context) (int64, error)
	ListCustomerNames(ctx context.Context) ([]models.CustomerName, error)
	ListCustomersWithInvoices(ctx context.Context, spec query.Spec) ([]models.Customer, error)
}

type LatestInvoice struct {
	ID         uuid.UUID      `json:"id"`
	CustomerID uuid.UUID      `json:"customer_id"`
	Name       string         `json:"name"`
	ImageURL   string         `json:"image_url"`
	Email      string         `json:"email"`
	Amount     string         `json:"amount"`
	Status     string         `json:"status"`
	Date       datatypes.Date `json:"date"`
}

type CardData struct {
	NumberOfInvoices     int64  `json:"numberOfInvoices"`
	NumberOfCustomers    int64  `json:"numberOfCustomers"`
	TotalPaidInvoices    string `json:"totalPaidInvoices"`
	TotalPendingInvoices string `json:"totalPendingInvoices"`
}

// InvoiceForm is a single invoice with its amount in dollars.
type InvoiceForm struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Amount     float64   `json:"amount"`
	Status     string    `json:"status"`
}

type InvoiceSummary struct {
	Amount int64  `json:"amount"`
	Status string `json:"status"`
}

type FormattedCustomer struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	ImageURL     string           `json:"image_url"`
	Invoices     []InvoiceSummary `json:"invoices"`
	TotalPaid    string           `json:"total_paid"`
	TotalPending string           `json:"total_pending"`
}

type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.QueryMetrics
}

// NewDashboardService wires the service. m may be nil.
func NewDashboardService(store Store, logger *slog.Logger, m *metrics.QueryMetrics) *Service {
	return &Service{
		store:   store,
		logger:  logger.With("component", "dashboard"),
		metrics: m,
	}
}

func (s *Service) FetchRevenue(ctx context.Context) ([]models.Revenue, error) {
	return guard(ctx, s, opFetchRevenue, func() ([]models.Revenue, error) {
		rows, err := s.store.ListRevenue(ctx)
		if rows == nil && err == nil {
			rows = []models.Revenue{}
		}
		return rows, err
	})
}

// FetchLatestInvoices returns the newest invoices with formatted amounts.
func (s *Service) FetchLatestInvoices(ctx context.Context) ([]LatestInvoice, error) {
	return guard(ctx, s, opFetchLatestInvoices, func() ([]LatestInvoice, error) {
		rows, err := s.store.ListInvoiceRows(ctx, query.Spec{
			OrderBy: []query.Order{{Field: query.FieldInvoiceDate, Desc: true}},
			Window:  &query.Window{Limit: LatestInvoiceCount},
		})
		if err != nil {
			return nil, err
		}

		latest := make([]LatestInvoice, 0, len(rows))
		for _, r := range rows {
			latest = append(latest, LatestInvoice{
				ID:         r.ID,
				CustomerID: r.CustomerID,
				Name:       r.Name,
				ImageURL:   r.ImageURL,
				Email:      r.Email,
				Amount:     format.FormatCurrency(r.Amount),
				Status:     r.Status,
				Date:       r.Date,
			})
		}
		return latest, nil
	})
}

// FetchCardData counts invoices and customers and totals paid and pending
// amounts. The three store calls run one after another.
func (s *Service) FetchCardData(ctx context.Context) (CardData, error) {
	return guard(ctx, s, opFetchCardData, func() (CardData, error) {
		invoiceCount, err := s.store.CountInvoices(ctx, nil)
		if err != nil {
			return CardData{}, err
		}
		customerCount, err := s.store.CountCustomers(ctx)
		if err != nil {
			return CardData{}, err
		}
		totals, err := s.store.TotalsByStatus(ctx)
		if err != nil {
			return CardData{}, err
		}

		var paid, pending int64
		for _, t := range totals {
			switch t.Status {
			case models.InvoiceStatusPaid:
				paid = t.Total
			case models.InvoiceStatusPending:
				pending = t.Total
			}
		}

		return CardData{
			NumberOfInvoices:     invoiceCount,
			NumberOfCustomers:    customerCount,
			TotalPaidInvoices:    format.FormatCurrency(paid),
			TotalPendingInvoices: format.FormatCurrency(pending),
		}, nil
	})
}

// FetchFilteredInvoices returns one page of invoices matching q, newest
// first. Pages past the end are empty.
func (s *Service) FetchFilteredInvoices(ctx context.Context, q string, page int) ([]models.InvoiceRow, error) {
	return guard(ctx, s, opFetchFilteredInvoices, func() ([]models.InvoiceRow, error) {
		rows, err := s.store.ListInvoiceRows(ctx, query.Spec{
			AnyOf:   query.InvoiceSearch(q),
			OrderBy: []query.Order{{Field: query.FieldInvoiceDate, Desc: true}},
			Window:  query.PageWindow(page, ItemsPerPage),
		})
		if rows == nil && err == nil {
			rows = []models.InvoiceRow{}
		}
		return rows, err
	})
}

// FetchInvoicesPages returns how many pages of ItemsPerPage the invoices
// matching q fill.
func (s *Service) FetchInvoicesPages(ctx context.Context, q string) (int64, error) {
	return guard(ctx, s, opFetchInvoicesPages, func() (int64, error) {
		count, err := s.store.CountInvoices(ctx, query.InvoiceSearch(q))
		if err != nil {
			return 0, err
		}
		return (count + ItemsPerPage - 1) / ItemsPerPage, nil
	})
}

var errInvoiceNotFound = errors.New("invoice not found")

// FetchInvoiceByID loads an invoice for editing. A malformed or unknown id
// fails the same way a store error does.
func (s *Service) FetchInvoiceByID(ctx context.Context, id string) (InvoiceForm, error) {
	return guard(ctx, s, opFetchInvoiceByID, func() (InvoiceForm, error) {
		invoiceID, err := uuid.Parse(id)
		if err != nil {
			return InvoiceForm{}, err
		}
		inv, err := s.store.GetInvoice(ctx, invoiceID)
		if err != nil {
			return InvoiceForm{}, err
		}
		if inv == nil {
			return InvoiceForm{}, errInvoiceNotFound
		}
		return InvoiceForm{
			ID:         inv.ID,
			CustomerID: inv.CustomerID,
			Amount:     format.ToMajorUnits(inv.Amount),
			Status:     inv.Status,
		}, nil
	})
}

func (s *Service) FetchCustomers(ctx context.Context) ([]models.CustomerName, error) {
	return guard(ctx, s, opFetchCustomers, func() ([]models.CustomerName, error) {
		rows, err := s.store.ListCustomerNames(ctx)
		if rows == nil && err == nil {
			rows = []models.CustomerName{}
		}
		return rows, err
	})
}

// FetchFilteredCustomers returns customers whose name or email contains q,
// sorted by name, with paid and pending totals derived from their invoices.
func (s *Service) FetchFilteredCustomers(ctx context.Context, q string) ([]FormattedCustomer, error) {
	return guard(ctx, s, opFetchFilteredCustomers, func() ([]FormattedCustomer, error) {
		customers, err := s.store.ListCustomersWithInvoices(ctx, query.Spec{
			AnyOf:   query.CustomerSearch(q),
			OrderBy: []query.Order{{Field: query.FieldCustomerName}},
		})
		if err != nil {
			return nil, err
		}

		out := make([]FormattedCustomer, 0, len(customers))
		for _, c := range customers {
			out = append(out, formatCustomer(c))
		}
		return out, nil
	})
}

func formatCustomer(c models.Customer) FormattedCustomer {
	var paid, pending int64
	invoices := make([]InvoiceSummary, 0, len(c.Invoices))
	for _, inv := range c.Invoices {
		invoices = append(invoices, InvoiceSummary{Amount: inv.Amount, Status: inv.Status})
		switch inv.Status {
		case models.InvoiceStatusPaid:
			paid += inv.Amount
		case models.InvoiceStatusPending:
			pending += inv.Amount
		}
	}

	return FormattedCustomer{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		ImageURL:     c.ImageURL,
		Invoices:     invoices,
		TotalPaid:    format.FormatCurrency(paid),
		TotalPending: format.FormatCurrency(pending),
	}
}
