package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOfflineGatewayAuthorizeConfirm(t *testing.T) {
	g := NewOfflineGateway()
	intent, err := g.Authorize(context.Background(), 1000, "seat-1", "game-1")
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if intent.ID == "" || intent.ClientSecret == "" || intent.AmountCents != 1000 {
		t.Fatalf("intent = %+v", intent)
	}

	receipt, err := g.Confirm(context.Background(), intent.ID)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if receipt.Status != "succeeded" || receipt.AmountCents != 1000 {
		t.Fatalf("receipt = %+v", receipt)
	}
}

func TestOfflineGatewayUnknownIntentRejected(t *testing.T) {
	g := NewOfflineGateway()
	if _, err := g.Confirm(context.Background(), "pi_missing"); !errors.Is(err, ErrRejected) {
		t.Fatalf("err = %v, want ErrRejected", err)
	}
}

func TestHTTPGatewayAuthorize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payment_intents" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["amount_cents"].(float64) != 2500 {
			t.Errorf("amount = %v", body["amount_cents"])
		}
		_ = json.NewEncoder(w).Encode(Intent{ID: "pi_1", ClientSecret: "cs_1", AmountCents: 2500})
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL, "test-key", time.Second)
	intent, err := g.Authorize(context.Background(), 2500, "seat-1", "game-1")
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if intent.ID != "pi_1" || intent.ClientSecret != "cs_1" {
		t.Fatalf("intent = %+v", intent)
	}
}

func TestHTTPGatewayConfirmRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":"card_declined"}`))
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL, "", time.Second)
	if _, err := g.Confirm(context.Background(), "pi_1"); !errors.Is(err, ErrRejected) {
		t.Fatalf("err = %v, want ErrRejected", err)
	}
}

func TestHTTPGatewayConfirmNonSucceededStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(Receipt{IntentID: "pi_1", Status: "requires_action"})
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL, "", time.Second)
	if _, err := g.Confirm(context.Background(), "pi_1"); !errors.Is(err, ErrRejected) {
		t.Fatalf("err = %v, want ErrRejected", err)
	}
}
