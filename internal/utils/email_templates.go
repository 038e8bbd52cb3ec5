package utils

import (
	"fmt"

	"benign_fashion_backend/internal/models"
)

// GenerateOrderStatusHTML génère le corps HTML d'un email de statut de commande
func GenerateOrderStatusHTML(master models.OrderMaster, details []models.OrderDetail) string {
	itemsHTML := ""
	for _, item := range details {
		name := item.ProductName
		if name == "" {
			name = fmt.Sprintf("Article #%d", item.ProductID)
		}
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f ৳</td>
			</tr>`, name, item.Size, item.Quantity, item.Amount)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Votre commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Commande n°%d — %s</h2>
		<p>Bonjour %s,</p>
		<p>Voici le récapitulatif de votre commande :</p>
		<table width="100%%" cellpadding="8" style="border-collapse: collapse;">
			<tr style="background-color: #f0f0f0;">
				<th align="left">Article</th>
				<th align="left">Taille</th>
				<th align="left">Qté</th>
				<th align="left">Montant</th>
			</tr>
			%s
		</table>
		<p style="font-size: 18px;"><strong>Total : %.2f ৳</strong></p>
		<p>Paiement : %s%s</p>
		<p>Livraison : %s, %s — %s</p>
		<p style="color: #888; font-size: 12px;">Benign Fashion — merci pour votre confiance.</p>
	</div>
</body>
</html>`,
		master.ID, statusLabel(master.Status), master.FullName, itemsHTML,
		master.TotalAmount, master.Method, transactionSuffix(master.TransactionID),
		master.Address, master.District, master.Division)
}

func statusLabel(status models.OrderStatus) string {
	switch status {
	case models.OrderStatusPending:
		return "en attente"
	case models.OrderStatusConfirmed:
		return "confirmée"
	case models.OrderStatusDelivered:
		return "livrée"
	}
	return string(status)
}

func transactionSuffix(trx string) string {
	if trx == "" {
		return ""
	}
	return fmt.Sprintf(" (réf. %s)", trx)
}
