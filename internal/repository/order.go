package repository

import (
	"context"
	"errors"
	"math"

	"benign_fashion_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNoItems          = errors.New("une commande doit contenir au moins une ligne")
	ErrTotalMismatch    = errors.New("le total de la commande ne correspond pas à la somme des lignes")
	ErrOrderNotFound    = errors.New("commande introuvable")
	ErrNotPending       = errors.New("la commande n'est plus en attente")
	ErrAlreadyDelivered = errors.New("la commande est déjà livrée")
)

// OrderRepository encapsule toutes les écritures/lectures sur orders_master +
// orders_details. Les écritures en-tête+lignes sont atomiques : tout ou rien.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateOrder insère l'en-tête puis chacune des lignes dans une seule
// transaction. L'id généré de l'en-tête est reporté sur chaque ligne avant
// insertion. La moindre erreur annule tout.
func (r *OrderRepository) CreateOrder(ctx context.Context, master *models.OrderMaster, details []models.OrderDetail) (int64, error) {
	if len(details) == 0 {
		return 0, ErrNoItems
	}

	// Le total envoyé par le client doit égaler la somme des lignes
	var sum float64
	for i := range details {
		if details[i].Quantity == 0 {
			details[i].Quantity = 1
		}
		sum += details[i].Amount
	}
	if math.Abs(sum-master.TotalAmount) > 0.009 {
		return 0, ErrTotalMismatch
	}

	if master.Status == "" {
		master.Status = models.OrderStatusPending
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(master).Error; err != nil {
			return err
		}
		for i := range details {
			details[i].OrdersMasterID = master.ID
			if err := tx.Create(&details[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return master.ID, nil
}

// DeleteOrder supprime les lignes puis l'en-tête, dans une transaction.
// Refusé si la commande n'est plus en attente.
func (r *OrderRepository) DeleteOrder(ctx context.Context, orderID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		master, err := lockMaster(tx, orderID)
		if err != nil {
			return err
		}
		if master.Status != models.OrderStatusPending {
			return ErrNotPending
		}
		if err := tx.Where("orders_master_id = ?", orderID).Delete(&models.OrderDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.OrderMaster{}, orderID).Error
	})
}

// Confirm passe la commande en "confirmed". Re-confirmer une commande déjà
// confirmée est un no-op (changed=false) ; une commande livrée ne redescend
// jamais.
func (r *OrderRepository) Confirm(ctx context.Context, orderID int64) (models.OrderStatus, bool, error) {
	return r.transition(ctx, orderID, models.OrderStatusConfirmed, func(current models.OrderStatus) error {
		if current == models.OrderStatusDelivered {
			return ErrAlreadyDelivered
		}
		return nil
	})
}

// Complete passe la commande en "delivered" (état terminal, idempotent).
func (r *OrderRepository) Complete(ctx context.Context, orderID int64) (models.OrderStatus, bool, error) {
	return r.transition(ctx, orderID, models.OrderStatusDelivered, func(models.OrderStatus) error {
		return nil
	})
}

// transition retourne changed=false quand la commande était déjà dans l'état
// cible, pour que l'appelant puisse sauter métriques et notifications.
func (r *OrderRepository) transition(ctx context.Context, orderID int64, target models.OrderStatus, guard func(models.OrderStatus) error) (models.OrderStatus, bool, error) {
	changed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		master, err := lockMaster(tx, orderID)
		if err != nil {
			return err
		}
		if err := guard(master.Status); err != nil {
			return err
		}
		if master.Status == target {
			return nil // déjà dans l'état cible
		}
		changed = true
		return tx.Model(&models.OrderMaster{}).Where("id = ?", orderID).
			Update("status", target).Error
	})
	if err != nil {
		return "", false, err
	}
	return target, changed, nil
}

func lockMaster(tx *gorm.DB, orderID int64) (*models.OrderMaster, error) {
	var master models.OrderMaster
	if err := tx.First(&master, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &master, nil
}

// GetByID retourne l'en-tête seul (404 explicite si absent)
func (r *OrderRepository) GetByID(ctx context.Context, orderID int64) (*models.OrderMaster, error) {
	var master models.OrderMaster
	if err := r.db.WithContext(ctx).First(&master, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &master, nil
}

// GetOrderWithDetails retourne une commande et ses lignes enrichies
func (r *OrderRepository) GetOrderWithDetails(ctx context.Context, orderID int64) (*models.OrderWithDetails, error) {
	master, err := r.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	details, err := r.detailsFor(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &models.OrderWithDetails{OrderMaster: *master, OrderDetails: details}, nil
}

// GetAllOrders retourne toutes les commandes, plus récentes d'abord, chacune
// avec ses lignes (relues dans une seconde requête par en-tête).
func (r *OrderRepository) GetAllOrders(ctx context.Context) ([]models.OrderWithDetails, error) {
	var masters []models.OrderMaster
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&masters).Error; err != nil {
		return nil, err
	}

	result := make([]models.OrderWithDetails, 0, len(masters))
	for _, m := range masters {
		details, err := r.detailsFor(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, models.OrderWithDetails{OrderMaster: m, OrderDetails: details})
	}
	return result, nil
}

// GetOrdersByUserID retourne les commandes d'un utilisateur, plus récentes
// d'abord. Les commandes invité (user_id NULL) ne sortent jamais ici, et un
// id invalide donne simplement une liste vide.
func (r *OrderRepository) GetOrdersByUserID(ctx context.Context, userID int64) ([]models.OrderWithDetails, error) {
	if userID <= 0 {
		return []models.OrderWithDetails{}, nil
	}

	var masters []models.OrderMaster
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&masters).Error
	if err != nil {
		return nil, err
	}

	result := make([]models.OrderWithDetails, 0, len(masters))
	for _, m := range masters {
		details, err := r.detailsFor(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, models.OrderWithDetails{OrderMaster: m, OrderDetails: details})
	}
	return result, nil
}

// detailsFor lit les lignes d'une commande, enrichies du nom actuel du
// produit. LEFT JOIN : un produit supprimé/renommé ne casse pas la lecture.
func (r *OrderRepository) detailsFor(ctx context.Context, orderID int64) ([]models.OrderDetail, error) {
	details := []models.OrderDetail{}
	err := r.db.WithContext(ctx).
		Table("orders_details").
		Select("orders_details.*, products.name AS product_name").
		Joins("LEFT JOIN products ON products.id = orders_details.product_id").
		Where("orders_details.orders_master_id = ?", orderID).
		Order("orders_details.id ASC").
		Find(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}
