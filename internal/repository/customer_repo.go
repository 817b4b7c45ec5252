package repository

import (
	"context"

	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/query"

	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).Count(&count).Error
	return count, err
}

// ListCustomerNames returns id/name pairs sorted by name.
func (r *CustomerRepository) ListCustomerNames(ctx context.Context) ([]models.CustomerName, error) {
	var rows []models.CustomerName
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Select("id", "name").
		Order("name ASC").
		Scan(&rows).Error
	return rows, err
}

// ListCustomersWithInvoices returns customers matching spec with each
// customer's invoice amounts and statuses preloaded.
func (r *CustomerRepository) ListCustomersWithInvoices(ctx context.Context, spec query.Spec) ([]models.Customer, error) {
	db := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Preload("Invoices", func(db *gorm.DB) *gorm.DB {
			return db.Select("customer_id", "amount", "status")
		})

	db, err := applySpec(db, spec)
	if err != nil {
		return nil, err
	}

	var customers []models.Customer
	err = db.Find(&customers).Error
	return customers, err
}
