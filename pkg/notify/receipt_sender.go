package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/amanjaiswal7236/chai-lelo/internal/utils"
	"github.com/gofiber/fiber/v2/log"
)

type (
	ReceiptItem struct {
		Name     string
		Quantity int
		Price    float64
	}

	Receipt struct {
		OrderID     string
		Items       []ReceiptItem
		TotalAmount float64
		OrderDate   time.Time
	}

	// ReceiptSender posts a WhatsApp order confirmation. Like the OTP
	// sender it degrades to a logged mock when unconfigured.
	ReceiptSender interface {
		Send(phone string, receipt Receipt) error
	}

	whatsAppReceiptSender struct {
		client *http.Client
	}
)

func NewReceiptSender() ReceiptSender {
	return &whatsAppReceiptSender{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func formatReceipt(receipt Receipt) string {
	var b strings.Builder
	b.WriteString("🍽️ *Order Confirmed - Chai Lelo*\n\n")
	fmt.Fprintf(&b, "Order ID: %s\n", receipt.OrderID)
	fmt.Fprintf(&b, "Date: %s\n\n", receipt.OrderDate.Format("02 Jan 2006 15:04"))
	b.WriteString("*Items:*\n")
	for _, item := range receipt.Items {
		fmt.Fprintf(&b, "• %s x%d - ₹%.0f\n", item.Name, item.Quantity, item.Price*float64(item.Quantity))
	}
	fmt.Fprintf(&b, "\n*Total Amount: ₹%.0f*\n\nThank you for your order! 🎉", receipt.TotalAmount)
	return b.String()
}

func (s *whatsAppReceiptSender) Send(phone string, receipt Receipt) error {
	apiURL := utils.GetConfig("WHATSAPP_API_URL")
	apiToken := utils.GetConfig("WHATSAPP_API_TOKEN")

	if apiURL == "" || apiToken == "" {
		log.Warnf("WhatsApp provider not configured, mock receipt for order %s (total ₹%.0f)",
			receipt.OrderID, receipt.TotalAmount)
		return nil
	}

	body, err := json.Marshal(map[string]string{
		"to":      phone,
		"message": formatReceipt(receipt),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("WhatsApp provider error: %s - %s", resp.Status, string(respBody))
	}

	return nil
}
