package models

import "time"

type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Price       float64   `gorm:"not null" json:"price"`
	PhotoURL    string    `gorm:"type:varchar(255)" json:"photoUrl,omitempty"`
	CategoryID  int64     `gorm:"not null;index" json:"categoryId"`
	Sizes       string    `gorm:"type:varchar(50)" json:"sizes,omitempty"` // ex: "M,L,XL,XXL"
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (Product) TableName() string {
	return "products"
}
