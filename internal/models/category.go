package models

import "time"

// Category est soit une catégorie de tête (IsHead), soit une sous-catégorie
// qui référence sa tête via ParentID.
type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Slug      string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"slug"`
	IsHead    bool      `gorm:"not null;default:false" json:"isHead"`
	ParentID  *int64    `gorm:"index" json:"parentId,omitempty"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
}

func (Category) TableName() string {
	return "categories"
}
