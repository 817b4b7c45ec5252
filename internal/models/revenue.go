package models

// Revenue is a per-month revenue figure in dollars.
type Revenue struct {
	Month   string `gorm:"primaryKey;size:4" json:"month"`
	Revenue int64  `gorm:"not null" json:"revenue"`
}

func (Revenue) TableName() string {
	return "revenue"
}
