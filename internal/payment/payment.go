// Package payment bridges the booking engine to an external card
// processor. The engine performs a single authorize/confirm attempt per
// booking; retries, refunds and webhooks live outside this core.
package payment

import (
	"context"
	"errors"
)

var ErrRejected = errors.New("payment_rejected")

// Intent is an authorized-but-unconfirmed charge.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount_cents"`
}

// Receipt proves a confirmed charge.
type Receipt struct {
	IntentID    string `json:"intent_id"`
	AmountCents int64  `json:"amount_cents"`
	Status      string `json:"status"`
}

// Gateway is the external processor contract. Both calls are bounded
// single attempts; a failure is terminal for the booking in flight.
type Gateway interface {
	Authorize(ctx context.Context, amountCents int64, seatID, gameID string) (*Intent, error)
	Confirm(ctx context.Context, intentID string) (*Receipt, error)
}

// Recorder persists confirmed payments; satisfied by the store.
type Recorder interface {
	RecordPayment(ctx context.Context, userID string, amountCents int64, intentID, seatID, gameID string) error
}

// Coordinator is what the booking engine consumes: gateway calls plus
// the local payment record.
type Coordinator interface {
	Authorize(ctx context.Context, amountCents int64, seatID, gameID string) (*Intent, error)
	Confirm(ctx context.Context, intentID string) (*Receipt, error)
	Record(ctx context.Context, userID string, amountCents int64, intentID, seatID, gameID string) error
}

type coordinator struct {
	gw  Gateway
	rec Recorder
}

func NewCoordinator(gw Gateway, rec Recorder) Coordinator {
	return &coordinator{gw: gw, rec: rec}
}

func (c *coordinator) Authorize(ctx context.Context, amountCents int64, seatID, gameID string) (*Intent, error) {
	return c.gw.Authorize(ctx, amountCents, seatID, gameID)
}

func (c *coordinator) Confirm(ctx context.Context, intentID string) (*Receipt, error) {
	return c.gw.Confirm(ctx, intentID)
}

func (c *coordinator) Record(ctx context.Context, userID string, amountCents int64, intentID, seatID, gameID string) error {
	return c.rec.RecordPayment(ctx, userID, amountCents, intentID, seatID, gameID)
}
