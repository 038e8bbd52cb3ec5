package order

import (
	"net/http"

	"benign_fashion_backend/internal/database"
	"benign_fashion_backend/internal/models"
	"benign_fashion_backend/internal/repository"
	"benign_fashion_backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// GetOrderQR retourne le QR de paiement wallet d'une commande
func GetOrderQR(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	repo := repository.NewOrderRepository(database.DB)
	master, err := repo.GetByID(c.Request.Context(), orderID)
	if err != nil {
		respondTransitionError(c, err, "Failed to fetch order")
		return
	}
	if !canAccessOrder(c, master) {
		return
	}

	qr, err := utils.GenerateWalletQR(master.Method, master.ID, master.TotalAmount)
	if err != nil {
		log.Error().Err(err).Int64("order_id", orderID).Msg("❌ Erreur génération QR")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate QR"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"ordersMasterId": master.ID,
			"method":         master.Method,
			"amount":         master.TotalAmount,
			"qr":             qr,
		},
	})
}

// GetOrderInvoice imprime la facture PDF d'une commande
func GetOrderInvoice(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	repo := repository.NewOrderRepository(database.DB)
	master, err := repo.GetByID(c.Request.Context(), orderID)
	if err != nil {
		respondTransitionError(c, err, "Failed to fetch order")
		return
	}
	if !canAccessOrder(c, master) {
		return
	}

	qr, err := utils.GenerateWalletQR(master.Method, master.ID, master.TotalAmount)
	if err != nil {
		qr = ""
	}

	pdf, err := utils.RenderOrderInvoicePDF(master.ID, qr)
	if err != nil {
		log.Error().Err(err).Int64("order_id", orderID).Msg("❌ Erreur génération facture PDF")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate invoice"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=facture_benign_fashion.pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// canAccessOrder : l'admin voit tout, un client ne voit que ses commandes
func canAccessOrder(c *gin.Context, master *models.OrderMaster) bool {
	if role, _ := c.Get("role"); role == "admin" {
		return true
	}
	if uid, exists := c.Get("user_id"); exists {
		if master.UserID != nil && *master.UserID == uid.(int64) {
			return true
		}
	}
	c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
	return false
}
