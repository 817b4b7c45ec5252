package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	InvoiceStatusPaid    = "paid"
	InvoiceStatusPending = "pending"
)

// Invoice amounts are stored in cents.
type Invoice struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID uuid.UUID      `gorm:"type:uuid;index;not null" json:"customer_id"`
	Amount     int64          `gorm:"not null;index" json:"amount"`
	Status     string         `gorm:"size:255;not null;index" json:"status"`
	Date       datatypes.Date `gorm:"not null;index" json:"date"`
}

// InvoiceRow is an invoice joined with the owning customer's display fields.
type InvoiceRow struct {
	ID         uuid.UUID      `json:"id"`
	CustomerID uuid.UUID      `json:"customer_id"`
	Amount     int64          `json:"amount"`
	Status     string         `json:"status"`
	Date       datatypes.Date `json:"date"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	ImageURL   string         `json:"image_url"`
}

// StatusTotal is one row of the amount-by-status aggregation.
type StatusTotal struct {
	Status string
	Total  int64
}
