package models

import "time"

// User est provisionné par la couche d'authentification externe — on ne garde
// ici que ce qu'il faut pour rattacher les commandes et notifier le client.
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Email     string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"email"`
	Phone     string    `gorm:"type:varchar(14)" json:"phone,omitempty"`
	Role      string    `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}
