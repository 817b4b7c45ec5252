package models

import "github.com/google/uuid"

type Customer struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"size:255;not null;index" json:"name"`
	Email    string    `gorm:"size:255;not null" json:"email"`
	ImageURL string    `gorm:"size:255;not null" json:"image_url"`
	Invoices []Invoice `gorm:"foreignKey:CustomerID" json:"invoices,omitempty"`
}

type CustomerName struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
