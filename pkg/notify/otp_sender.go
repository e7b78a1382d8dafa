package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/amanjaiswal7236/chai-lelo/internal/utils"
	"github.com/gofiber/fiber/v2/log"
)

type (
	// OTPSender delivers one-time codes. Delivery is best-effort: the
	// login flow never fails because a provider call failed.
	OTPSender interface {
		Send(phone string, code string) error
	}

	smsOTPSender struct {
		client *http.Client
	}
)

func NewOTPSender() OTPSender {
	return &smsOTPSender{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *smsOTPSender) Send(phone string, code string) error {
	apiURL := utils.GetConfig("SMS_API_URL")
	apiToken := utils.GetConfig("SMS_API_TOKEN")

	if apiURL == "" || apiToken == "" {
		log.Warnf("SMS provider not configured, mock OTP for %s: %s", phone, code)
		return nil
	}

	body, err := json.Marshal(map[string]string{
		"to":      phone,
		"message": fmt.Sprintf("Your Chai Lelo OTP is: %s. Valid for 10 minutes.", code),
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
		return fmt.Errorf("SMS provider error: %s - %s", resp.Status, string(respBody))
	}

	return nil
}
