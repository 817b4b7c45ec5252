// Package memory is an in-process store with the same read surface as the
// gorm repositories. Specs are evaluated directly against the records.
package memory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/query"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("record not found")

type Store struct {
	mu        sync.RWMutex
	customers []models.Customer
	invoices  []models.Invoice
	revenue   []models.Revenue
	byID      map[uuid.UUID]int // customer id -> index in customers
	invoiceID map[uuid.UUID]struct{}
	months    map[string]struct{}
}

func NewStore() *Store {
	return &Store{
		byID:      make(map[uuid.UUID]int),
		invoiceID: make(map[uuid.UUID]struct{}),
		months:    make(map[string]struct{}),
	}
}

// Import adds records, skipping any whose key is already present.
func (s *Store) Import(_ context.Context, customers []models.Customer, invoices []models.Invoice, revenue []models.Revenue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range customers {
		if _, ok := s.byID[c.ID]; ok {
			continue
		}
		c.Invoices = nil
		s.byID[c.ID] = len(s.customers)
		s.customers = append(s.customers, c)
	}
	for _, inv := range invoices {
		if _, ok := s.invoiceID[inv.ID]; ok {
			continue
		}
		if _, ok := s.byID[inv.CustomerID]; !ok {
			return fmt.Errorf("invoice %s references unknown customer %s", inv.ID, inv.CustomerID)
		}
		s.invoiceID[inv.ID] = struct{}{}
		s.invoices = append(s.invoices, inv)
	}
	for _, r := range revenue {
		if _, ok := s.months[r.Month]; ok {
			continue
		}
		s.months[r.Month] = struct{}{}
		s.revenue = append(s.revenue, r)
	}
	return nil
}

func (s *Store) ListRevenue(ctx context.Context) ([]models.Revenue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.revenue), nil
}

func (s *Store) row(inv models.Invoice) models.InvoiceRow {
	c := s.customers[s.byID[inv.CustomerID]]
	return models.InvoiceRow{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     inv.Amount,
		Status:     inv.Status,
		Date:       inv.Date,
		Name:       c.Name,
		Email:      c.Email,
		ImageURL:   c.ImageURL,
	}
}

func (s *Store) matchingRows(preds []query.Predicate) ([]models.InvoiceRow, error) {
	var rows []models.InvoiceRow
	for _, inv := range s.invoices {
		r := s.row(inv)
		ok, err := matches(preds, rowField(r))
		if err != nil {
			return nil, err
		}
		if ok {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

func (s *Store) ListInvoiceRows(ctx context.Context, spec query.Spec) ([]models.InvoiceRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.matchingRows(spec.AnyOf)
	if err != nil {
		return nil, err
	}
	if err := sortBy(rows, spec.OrderBy, rowField); err != nil {
		return nil, err
	}
	return window(rows, spec.Window), nil
}

func (s *Store) CountInvoices(ctx context.Context, preds []query.Predicate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.matchingRows(preds)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inv := range s.invoices {
		if inv.ID == id {
			return &models.Invoice{ID: inv.ID, CustomerID: inv.CustomerID, Amount: inv.Amount, Status: inv.Status}, nil
		}
	}
	return nil, ErrNotFound
}

// TotalsByStatus returns one row per status in order of first appearance.
func (s *Store) TotalsByStatus(ctx context.Context) ([]models.StatusTotal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var totals []models.StatusTotal
	index := make(map[string]int)
	for _, inv := range s.invoices {
		i, ok := index[inv.Status]
		if !ok {
			i = len(totals)
			index[inv.Status] = i
			totals = append(totals, models.StatusTotal{Status: inv.Status})
		}
		totals[i].Total += inv.Amount
	}
	return totals, nil
}

func (s *Store) CountCustomers(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.customers)), nil
}

func (s *Store) ListCustomerNames(ctx context.Context) ([]models.CustomerName, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]models.CustomerName, 0, len(s.customers))
	for _, c := range s.customers {
		names = append(names, models.CustomerName{ID: c.ID, Name: c.Name})
	}
	slices.SortStableFunc(names, func(a, b models.CustomerName) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return names, nil
}

func (s *Store) ListCustomersWithInvoices(ctx context.Context, spec query.Spec) ([]models.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Customer
	for _, c := range s.customers {
		ok, err := matches(spec.AnyOf, customerField(c))
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		c.Invoices = nil
		for _, inv := range s.invoices {
			if inv.CustomerID == c.ID {
				c.Invoices = append(c.Invoices, models.Invoice{CustomerID: inv.CustomerID, Amount: inv.Amount, Status: inv.Status})
			}
		}
		out = append(out, c)
	}
	if err := sortBy(out, spec.OrderBy, customerField); err != nil {
		return nil, err
	}
	return window(out, spec.Window), nil
}

type fieldFunc func(query.Field) (any, bool)

func rowField(r models.InvoiceRow) fieldFunc {
	return func(f query.Field) (any, bool) {
		switch f {
		case query.FieldCustomerName:
			return r.Name, true
		case query.FieldCustomerEmail:
			return r.Email, true
		case query.FieldInvoiceAmount:
			return r.Amount, true
		case query.FieldInvoiceStatus:
			return r.Status, true
		case query.FieldInvoiceDate:
			return time.Time(r.Date), true
		}
		return nil, false
	}
}

func customerField(c models.Customer) fieldFunc {
	return func(f query.Field) (any, bool) {
		switch f {
		case query.FieldCustomerName:
			return c.Name, true
		case query.FieldCustomerEmail:
			return c.Email, true
		}
		return nil, false
	}
}

func matches(preds []query.Predicate, get fieldFunc) (bool, error) {
	if len(preds) == 0 {
		return true, nil
	}
	for _, p := range preds {
		v, ok := get(p.Field)
		if !ok {
			return false, fmt.Errorf("unsupported field %q", p.Field)
		}
		switch p.Op {
		case query.OpContains:
			s, sok := v.(string)
			want, wok := p.Value.(string)
			if !sok || !wok {
				return false, fmt.Errorf("contains on %q needs string operands", p.Field)
			}
			if query.ContainsFold(s, want) {
				return true, nil
			}
		case query.OpEquals:
			n, nok := v.(int64)
			want, wok := p.Value.(int64)
			if !nok || !wok {
				return false, fmt.Errorf("equals on %q needs integer operands", p.Field)
			}
			if n == want {
				return true, nil
			}
		default:
			return false, fmt.Errorf("unsupported operator %d", p.Op)
		}
	}
	return false, nil
}

func compareValues(a, b any) (int, error) {
	switch x := a.(type) {
	case string:
		return cmp.Compare(x, b.(string)), nil
	case int64:
		return cmp.Compare(x, b.(int64)), nil
	case time.Time:
		return x.Compare(b.(time.Time)), nil
	}
	return 0, fmt.Errorf("cannot order by %T", a)
}

func sortBy[T any](items []T, orders []query.Order, field func(T) fieldFunc) error {
	var sortErr error
	slices.SortStableFunc(items, func(a, b T) int {
		for _, o := range orders {
			av, aok := field(a)(o.Field)
			bv, bok := field(b)(o.Field)
			if !aok || !bok {
				sortErr = fmt.Errorf("unsupported field %q", o.Field)
				return 0
			}
			c, err := compareValues(av, bv)
			if err != nil {
				sortErr = err
				return 0
			}
			if c != 0 {
				if o.Desc {
					return -c
				}
				return c
			}
		}
		return 0
	})
	return sortErr
}

func window[T any](items []T, w *query.Window) []T {
	if w == nil {
		return items
	}
	if w.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if w.Limit >= 0 && w.Offset+w.Limit < end {
		end = w.Offset + w.Limit
	}
	return items[w.Offset:end]
}
