// Package sms is the transport boundary for outbound text messages.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/naeemhossain01/flexfume-backend/internal/resilience"
)

// Sender delivers a text message to a phone number.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// Provider posts messages to the SMS gateway's JSON API. A delivery is
// accepted only when the gateway answers with response_code 202. Requests
// go through the resilient client so gateway outages trip the breaker
// instead of hammering a dead endpoint.
type Provider struct {
	URL      string
	APIKey   string
	SenderID string
	HTTP     *resilience.HTTPClient
}

type gatewayRequest struct {
	APIKey   string `json:"api_key"`
	SenderID string `json:"senderid"`
	Number   string `json:"number"`
	Message  string `json:"message"`
}

type gatewayResponse struct {
	ResponseCode int `json:"response_code"`
}

func (p *Provider) Send(ctx context.Context, phone, message string) error {
	payload, err := json.Marshal(gatewayRequest{
		APIKey:   p.APIKey,
		SenderID: p.SenderID,
		Number:   phone,
		Message:  message,
	})
	if err != nil {
		return fmt.Errorf("marshal sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := p.HTTP
	if client == nil {
		client = &resilience.HTTPClient{Client: &http.Client{Timeout: 10 * time.Second}}
	}
	resp, err := client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	defer resp.Body.Close()

	var decoded gatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("decode sms response: %w", err)
	}
	if decoded.ResponseCode != 202 {
		return fmt.Errorf("sms gateway rejected message: response_code %d", decoded.ResponseCode)
	}
	return nil
}

// Noop logs the message instead of delivering it. Used in development
// and as the fallback when no gateway is configured.
type Noop struct {
	Logger *zerolog.Logger
}

func (n Noop) Send(_ context.Context, phone, message string) error {
	if n.Logger != nil {
		n.Logger.Info().Str("phone", phone).Str("message", message).Msg("sms delivery skipped")
	}
	return nil
}
