package repository

import (
	"context"

	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const invoiceRowColumns = "invoices.id, invoices.customer_id, invoices.amount, invoices.status, invoices.date, " +
	"customers.name, customers.email, customers.image_url"

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Joins("JOIN customers ON customers.id = invoices.customer_id")
}

// ListInvoiceRows returns invoices joined with their customer, filtered,
// sorted and windowed by spec.
func (r *InvoiceRepository) ListInvoiceRows(ctx context.Context, spec query.Spec) ([]models.InvoiceRow, error) {
	db, err := applySpec(r.joined(ctx).Select(invoiceRowColumns), spec)
	if err != nil {
		return nil, err
	}

	var rows []models.InvoiceRow
	err = db.Scan(&rows).Error
	return rows, err
}

// CountInvoices counts invoices matching any of preds; no predicates counts all.
func (r *InvoiceRepository) CountInvoices(ctx context.Context, preds []query.Predicate) (int64, error) {
	db, err := applyFilter(r.joined(ctx), preds)
	if err != nil {
		return 0, err
	}

	var count int64
	err = db.Count(&count).Error
	return count, err
}

// GetInvoice fetches id, customer_id, amount and status of a single invoice.
func (r *InvoiceRepository) GetInvoice(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).
		Select("id", "customer_id", "amount", "status").
		First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// TotalsByStatus sums invoice amounts per status.
func (r *InvoiceRepository) TotalsByStatus(ctx context.Context) ([]models.StatusTotal, error) {
	var rows []models.StatusTotal
	err := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Select("status, COALESCE(SUM(amount),0) as total").
		Group("status").
		Scan(&rows).Error
	return rows, err
}
