package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPGateway talks JSON to a hosted processor. The client timeout is
// the engine's only bound on the gateway; there are no retries here.
type HTTPGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPGateway(baseURL, apiKey string, timeout time.Duration) *HTTPGateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (g *HTTPGateway) Authorize(ctx context.Context, amountCents int64, seatID, gameID string) (*Intent, error) {
	var intent Intent
	err := g.postJSON(ctx, "/v1/payment_intents", map[string]any{
		"amount_cents": amountCents,
		"seat_ref":     seatID,
		"game_ref":     gameID,
	}, &intent)
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

func (g *HTTPGateway) Confirm(ctx context.Context, intentID string) (*Receipt, error) {
	var receipt Receipt
	err := g.postJSON(ctx, "/v1/payment_intents/"+intentID+"/confirm", map[string]any{}, &receipt)
	if err != nil {
		return nil, err
	}
	if receipt.Status != "succeeded" {
		return nil, fmt.Errorf("%w: status %s", ErrRejected, receipt.Status)
	}
	return &receipt, nil
}

func (g *HTTPGateway) postJSON(ctx context.Context, path string, body any, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: gateway status %d: %s", ErrRejected, resp.StatusCode, truncate(respBody, 256))
	}
	return json.Unmarshal(respBody, out)
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
