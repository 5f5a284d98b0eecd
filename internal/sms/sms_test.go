package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/naeemhossain01/flexfume-backend/internal/resilience"
)

func TestProviderSend(t *testing.T) {
	var got gatewayRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(gatewayResponse{ResponseCode: 202})
	}))
	defer server.Close()

	provider := &Provider{URL: server.URL, APIKey: "key", SenderID: "flexfume", HTTP: &resilience.HTTPClient{Client: server.Client(), MaxAttempts: 1}}
	if err := provider.Send(context.Background(), "+8801711111111", "hello"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got.Number != "+8801711111111" || got.Message != "hello" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if got.APIKey != "key" || got.SenderID != "flexfume" {
		t.Fatalf("credentials missing from payload: %+v", got)
	}
}

func TestProviderSendRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(gatewayResponse{ResponseCode: 500})
	}))
	defer server.Close()

	provider := &Provider{URL: server.URL, HTTP: &resilience.HTTPClient{Client: server.Client(), MaxAttempts: 1}}
	if err := provider.Send(context.Background(), "+8801711111111", "hello"); err == nil {
		t.Fatal("expected rejection when response_code is not 202")
	}
}
