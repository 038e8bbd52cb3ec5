package utils

import (
	"benign_fashion_backend/internal/models"

	"github.com/rs/zerolog/log"
)

// SendOrderStatusEmail notifie le client d'un changement de statut de commande.
// L'échec est loggé, jamais remonté au client HTTP (envoi en best-effort).
func SendOrderStatusEmail(master models.OrderMaster, details []models.OrderDetail, to string, invoicePDF []byte) error {
	subject := statusEmailSubject(master.Status)
	html := GenerateOrderStatusHTML(master, details)

	if err := SendEmail(to, subject, html, invoicePDF); err != nil {
		log.Error().Err(err).Int64("order_id", master.ID).Msg("❌ Erreur envoi email statut")
		return err
	}

	log.Info().Int64("order_id", master.ID).Str("status", string(master.Status)).Str("to", to).
		Msg("📧 Email de statut envoyé")
	return nil
}

func statusEmailSubject(status models.OrderStatus) string {
	switch status {
	case models.OrderStatusConfirmed:
		return "✅ Votre commande est confirmée - Benign Fashion"
	case models.OrderStatusDelivered:
		return "📦 Votre commande a été livrée - Benign Fashion"
	default:
		return "🧾 Votre commande Benign Fashion"
	}
}
