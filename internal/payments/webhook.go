package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const SignatureHeader = "X-Webhook-Signature"

const (
	EventSessionCompleted = "checkout.session.completed"
	EventPaymentFailed    = "checkout.session.payment_failed"
	EventChargeRefunded   = "charge.refunded"
)

var ErrBadSignature = errors.New("invalid webhook signature")

// Event is the provider's webhook payload.
type Event struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
}

// Signature computes the header value for a body: "sha256=" + hex HMAC.
func Signature(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func VerifySignature(secret string, body []byte, header string) bool {
	if !strings.HasPrefix(header, "sha256=") {
		return false
	}
	return hmac.Equal([]byte(Signature(secret, body)), []byte(header))
}

func ParseEvent(body []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, err
	}
	if ev.ID == "" || ev.Type == "" {
		return nil, fmt.Errorf("webhook event missing id/type")
	}
	return &ev, nil
}
