package order

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"benign_fashion_backend/internal/database"
	"benign_fashion_backend/internal/metrics"
	"benign_fashion_backend/internal/models"
	"benign_fashion_backend/internal/repository"
	"benign_fashion_backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ConfirmOrder passe une commande en "confirmed" (admin).
// Idempotent : re-confirmer une commande confirmée répond 200.
func ConfirmOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	db := database.DB
	repo := repository.NewOrderRepository(db)
	status, changed, err := repo.Confirm(c.Request.Context(), orderID)
	if err != nil {
		respondTransitionError(c, err, "Failed to confirm order")
		return
	}

	// Re-confirmation : on répond 200 mais sans re-compter ni re-notifier
	if changed {
		metrics.OrderTransitions.WithLabelValues(string(status)).Inc()
		log.Info().Int64("order_id", orderID).Msg("✅ Commande confirmée")

		// Notification client (async, avec facture en pièce jointe)
		go notifyStatusChange(db, orderID, true)
	}

	c.JSON(http.StatusOK, gin.H{
		"orderMasterId": orderID,
		"status":        status,
		"message":       "Order confirmed successfully",
	})
}

// CompleteOrder passe une commande en "delivered" (admin, état terminal)
func CompleteOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	db := database.DB
	repo := repository.NewOrderRepository(db)
	status, changed, err := repo.Complete(c.Request.Context(), orderID)
	if err != nil {
		respondTransitionError(c, err, "Failed to complete order")
		return
	}

	if changed {
		metrics.OrderTransitions.WithLabelValues(string(status)).Inc()
		log.Info().Int64("order_id", orderID).Msg("✅ Commande livrée")

		go notifyStatusChange(db, orderID, false)
	}

	c.JSON(http.StatusOK, gin.H{
		"orderMasterId": orderID,
		"status":        status,
		"message":       "Order completed successfully",
	})
}

// DeleteOrder supprime une commande encore en attente (admin).
// L'en-tête et toutes ses lignes partent ensemble.
func DeleteOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	repo := repository.NewOrderRepository(database.DB)
	if err := repo.DeleteOrder(c.Request.Context(), orderID); err != nil {
		respondTransitionError(c, err, "Failed to delete order")
		return
	}

	metrics.OrdersDeleted.Inc()
	log.Info().Int64("order_id", orderID).Msg("🗑️ Commande supprimée")

	c.JSON(http.StatusOK, gin.H{
		"orderMasterId": orderID,
		"message":       "Order deleted successfully",
	})
}

func parseOrderID(c *gin.Context) (int64, bool) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return 0, false
	}
	return orderID, true
}

func respondTransitionError(c *gin.Context, err error, genericMsg string) {
	switch {
	case errors.Is(err, repository.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
	case errors.Is(err, repository.ErrAlreadyDelivered):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Order already delivered"})
	case errors.Is(err, repository.ErrNotPending):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Order is no longer pending"})
	default:
		log.Error().Err(err).Msg("❌ Erreur transition commande")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": genericMsg})
	}
}

// notifyStatusChange relit la commande et envoie l'email de statut au client.
// Tourne hors requête : le handle DB est capturé à l'appel, les erreurs sont
// loggées, jamais remontées.
func notifyStatusChange(db *gorm.DB, orderID int64, withInvoice bool) {
	ctx := context.Background()
	repo := repository.NewOrderRepository(db)

	full, err := repo.GetOrderWithDetails(ctx, orderID)
	if err != nil {
		log.Warn().Err(err).Int64("order_id", orderID).Msg("⚠️ Notification impossible: commande introuvable")
		return
	}
	master := &full.OrderMaster

	to := master.Email
	if to == "" && master.UserID != nil {
		var user models.User
		if err := db.First(&user, *master.UserID).Error; err == nil {
			to = user.Email
		}
	}
	if to == "" {
		// Commande invité sans email : rien à notifier
		return
	}

	var invoicePDF []byte
	if withInvoice {
		qr, qrErr := utils.GenerateWalletQR(master.Method, master.ID, master.TotalAmount)
		if qrErr != nil {
			qr = ""
		}
		invoicePDF, err = utils.RenderOrderInvoicePDF(master.ID, qr)
		if err != nil {
			log.Warn().Err(err).Int64("order_id", orderID).Msg("⚠️ Facture PDF indisponible, email sans pièce jointe")
			invoicePDF = nil
		}
	}

	_ = utils.SendOrderStatusEmail(*master, full.OrderDetails, to, invoicePDF)
}
