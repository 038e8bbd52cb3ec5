package models

import "time"

type OrderStatus string
type PaymentMethod string
type ItemSize string

const (
	// Cycle de vie d'une commande
	OrderStatusPending   OrderStatus = "pending"   // Commande passée, en attente de confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // Confirmée par un admin
	OrderStatusDelivered OrderStatus = "delivered" // Livrée au client (état final)

	// Portefeuilles mobiles acceptés
	MethodBkash  PaymentMethod = "bkash"
	MethodNagad  PaymentMethod = "nagad"
	MethodRocket PaymentMethod = "rocket"

	SizeM   ItemSize = "M"
	SizeL   ItemSize = "L"
	SizeXL  ItemSize = "XL"
	SizeXXL ItemSize = "XXL"
)

// OrderMaster est l'en-tête d'une commande (client + paiement + statut)
type OrderMaster struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        *int64        `gorm:"index" json:"userId"` // null = commande invité
	FullName      string        `gorm:"type:varchar(255);not null" json:"fullName"`
	Division      string        `gorm:"type:varchar(15);not null" json:"division"`
	District      string        `gorm:"type:varchar(15);not null" json:"district"`
	Address       string        `gorm:"type:varchar(100);not null" json:"address"`
	Phone         string        `gorm:"type:varchar(14);not null" json:"phone"`
	Email         string        `gorm:"type:varchar(50)" json:"email,omitempty"`
	Method        PaymentMethod `gorm:"type:varchar(10);not null" json:"method"`
	TransactionID string        `gorm:"type:varchar(100)" json:"transactionId,omitempty"`
	TotalAmount   float64       `gorm:"not null" json:"totalAmount"`
	Status        OrderStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt     time.Time     `gorm:"not null;autoCreateTime" json:"createdAt"`
}

func (OrderMaster) TableName() string {
	return "orders_master"
}

// OrderDetail est une ligne produit+taille+quantité appartenant à un OrderMaster
type OrderDetail struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrdersMasterID int64     `gorm:"not null;index" json:"ordersMasterId"`
	ProductID      int64     `gorm:"not null;index" json:"productId"`
	ProductName    string    `gorm:"<-:false;-:migration" json:"productName,omitempty"` // enrichi à la lecture, jamais stocké
	Size           ItemSize  `gorm:"type:varchar(5);not null" json:"size"`
	Quantity       int       `gorm:"not null;default:1" json:"quantity"`
	Amount         float64   `gorm:"not null" json:"amount"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
}

func (OrderDetail) TableName() string {
	return "orders_details"
}

// OrderWithDetails regroupe l'en-tête et ses lignes pour les vues de lecture
type OrderWithDetails struct {
	OrderMaster  OrderMaster   `json:"orderMaster"`
	OrderDetails []OrderDetail `json:"orderDetails"`
}
