package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"time"

	"benign_fashion_backend/internal/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"
)

// GenerateWalletQR génère le QR de paiement mobile (bKash/Nagad/Rocket) en
// base64, prêt à mettre dans un <img src="...">. Le payload porte le wallet,
// le numéro marchand, le montant et la référence de commande.
func GenerateWalletQR(method models.PaymentMethod, orderID int64, amount float64) (string, error) {
	merchant := os.Getenv("WALLET_MERCHANT_NUMBER")
	if merchant == "" {
		merchant = "01700000000"
	}

	payload := fmt.Sprintf(`%s
%s
BDT%.2f
BF-%d`, method, merchant, amount, orderID)

	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// RenderOrderInvoicePDF charge la page facture du front et l'imprime en PDF
func RenderOrderInvoicePDF(orderID int64, qrBase64 string) ([]byte, error) {
	// on passe les params en query
	q := url.Values{}
	q.Set("id", fmt.Sprintf("%d", orderID))
	if qrBase64 != "" {
		q.Set("qr", qrBase64)
	}

	fullURL := fmt.Sprintf("%s?%s", frontendInvoiceBaseURL(), q.Encode())

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// timeout pour éviter de bloquer
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte

	err := chromedp.Run(ctx,
		chromedp.Navigate(fullURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}

// frontendInvoiceBaseURL récupère l'URL du front depuis l'env
func frontendInvoiceBaseURL() string {
	u := os.Getenv("FRONTEND_INVOICE_URL")
	if u == "" {
		// fallback local dev
		return "http://localhost:3000/invoice"
	}
	return u
}
