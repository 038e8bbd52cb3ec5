package order

import (
	"errors"
	"net/http"
	"strconv"

	"benign_fashion_backend/internal/database"
	"benign_fashion_backend/internal/metrics"
	"benign_fashion_backend/internal/models"
	"benign_fashion_backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type orderMasterPayload struct {
	UserID        *int64  `json:"userId"`
	FullName      string  `json:"fullName" binding:"required,max=255"`
	Division      string  `json:"division" binding:"required,max=15"`
	District      string  `json:"district" binding:"required,max=15"`
	Address       string  `json:"address" binding:"required,max=100"`
	Phone         string  `json:"phone" binding:"required,max=14"`
	Email         string  `json:"email" binding:"omitempty,email,max=50"`
	Method        string  `json:"method" binding:"required,oneof=bkash nagad rocket"`
	TransactionID string  `json:"transactionId" binding:"max=100"`
	TotalAmount   float64 `json:"totalAmount" binding:"required,gt=0"`
}

type orderDetailPayload struct {
	ProductID int64   `json:"productId" binding:"required,gt=0"`
	Size      string  `json:"size" binding:"required,oneof=M L XL XXL"`
	Quantity  int     `json:"quantity" binding:"omitempty,gte=1"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
}

// CreateOrder enregistre une commande complète (en-tête + lignes, atomique)
func CreateOrder(c *gin.Context) {
	var req struct {
		OrderMaster  orderMasterPayload   `json:"orderMaster" binding:"required"`
		OrderDetails []orderDetailPayload `json:"orderDetails" binding:"required,min=1,dive"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order payload", "details": err.Error()})
		return
	}

	master := models.OrderMaster{
		UserID:        req.OrderMaster.UserID,
		FullName:      req.OrderMaster.FullName,
		Division:      req.OrderMaster.Division,
		District:      req.OrderMaster.District,
		Address:       req.OrderMaster.Address,
		Phone:         req.OrderMaster.Phone,
		Email:         req.OrderMaster.Email,
		Method:        models.PaymentMethod(req.OrderMaster.Method),
		TransactionID: req.OrderMaster.TransactionID,
		TotalAmount:   req.OrderMaster.TotalAmount,
		Status:        models.OrderStatusPending,
	}

	// Un client connecté est toujours propriétaire de sa commande,
	// quoi que dise le payload. Sans token : commande invité.
	if uid, exists := c.Get("user_id"); exists {
		id := uid.(int64)
		master.UserID = &id
	}

	details := make([]models.OrderDetail, 0, len(req.OrderDetails))
	for _, d := range req.OrderDetails {
		details = append(details, models.OrderDetail{
			ProductID: d.ProductID,
			Size:      models.ItemSize(d.Size),
			Quantity:  d.Quantity,
			Amount:    d.Amount,
		})
	}

	repo := repository.NewOrderRepository(database.DB)
	orderID, err := repo.CreateOrder(c.Request.Context(), &master, details)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNoItems), errors.Is(err, repository.ErrTotalMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		default:
			log.Error().Err(err).Msg("❌ Erreur création commande")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create order"})
		}
		return
	}

	metrics.OrdersCreated.Inc()
	log.Info().Int64("order_id", orderID).Int("items", len(details)).
		Float64("total", master.TotalAmount).Msg("✅ Commande créée")

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order created successfully",
		"data": gin.H{
			"ordersMasterId": orderID,
			"message":        "Order created successfully",
		},
	})
}

// GetAllOrders retourne toutes les commandes avec leurs lignes (vue admin)
func GetAllOrders(c *gin.Context) {
	repo := repository.NewOrderRepository(database.DB)
	orders, err := repo.GetAllOrders(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("❌ Erreur lecture commandes")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrdersByUserID retourne les commandes d'un utilisateur donné.
// Un userId invalide ou absent donne une liste vide, pas une erreur.
// L'admin consulte n'importe quel historique, un client seulement le sien.
func GetOrdersByUserID(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		userID = 0
	}

	if role, _ := c.Get("role"); role != "admin" {
		uid, exists := c.Get("user_id")
		if !exists || uid.(int64) != userID {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
			return
		}
	}

	repo := repository.NewOrderRepository(database.DB)
	orders, err := repo.GetOrdersByUserID(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("❌ Erreur lecture commandes utilisateur")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
}
