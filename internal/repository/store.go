package repository

import (
	"context"
	"fmt"

	"invoice-dashboard-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const importBatchSize = 500

// Store bundles the per-table repositories behind one handle.
type Store struct {
	*InvoiceRepository
	*CustomerRepository
	*RevenueRepository
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		InvoiceRepository:  NewInvoiceRepository(db),
		CustomerRepository: NewCustomerRepository(db),
		RevenueRepository:  NewRevenueRepository(db),
		db:                 db,
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Customer{},
		&models.Invoice{},
		&models.Revenue{},
	)
}

// Import inserts the records in one transaction, skipping rows whose
// primary key already exists.
func (s *Store) Import(ctx context.Context, customers []models.Customer, invoices []models.Invoice, revenue []models.Revenue) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		skip := clause.OnConflict{DoNothing: true}
		if len(customers) > 0 {
			if err := tx.Clauses(skip).Omit(clause.Associations).CreateInBatches(customers, importBatchSize).Error; err != nil {
				return fmt.Errorf("insert customers: %w", err)
			}
		}
		if len(invoices) > 0 {
			if err := tx.Clauses(skip).CreateInBatches(invoices, importBatchSize).Error; err != nil {
				return fmt.Errorf("insert invoices: %w", err)
			}
		}
		if len(revenue) > 0 {
			if err := tx.Clauses(skip).CreateInBatches(revenue, importBatchSize).Error; err != nil {
				return fmt.Errorf("insert revenue: %w", err)
			}
		}
		return nil
	})
}
