// Package payments talks to the external checkout provider: outbound
// checkout-session creation and inbound signed webhooks. The provider and the
// local orders table can diverge on partial failure; there is no
// reconciliation job (orders stuck in pending are retried by the client).
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type SessionLineItem struct {
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

type CreateSessionRequest struct {
	Reference  string            `json:"reference"` // order number
	Currency   string            `json:"currency"`
	LineItems  []SessionLineItem `json:"line_items"`
	SuccessURL string            `json:"success_url"`
	CancelURL  string            `json:"cancel_url"`
}

// Session is the provider's checkout-session resource.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type Client struct {
	HTTP    *http.Client
	BaseURL string
	APIKey  string
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 5 * time.Second},
		BaseURL: baseURL,
		APIKey:  apiKey,
	}
}

func (c *Client) CreateSession(ctx context.Context, in CreateSessionRequest) (*Session, error) {
	body, _ := json.Marshal(in)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/v1/checkout/sessions", c.BaseURL), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("checkout session error: %s", res.Status)
	}
	var s Session
	if err := json.NewDecoder(res.Body).Decode(&s); err != nil {
		return nil, err
	}
	if s.ID == "" {
		return nil, fmt.Errorf("checkout session without id")
	}
	return &s, nil
}
