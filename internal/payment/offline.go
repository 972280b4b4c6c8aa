package payment

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// OfflineGateway approves everything locally. It stands in for the real
// processor in development and tests; intents still have to exist to be
// confirmed, so the engine's intent plumbing is exercised for real.
type OfflineGateway struct {
	mu      sync.Mutex
	intents map[string]int64
}

func NewOfflineGateway() *OfflineGateway {
	return &OfflineGateway{intents: make(map[string]int64)}
}

func (g *OfflineGateway) Authorize(_ context.Context, amountCents int64, _, _ string) (*Intent, error) {
	if amountCents < 0 {
		return nil, fmt.Errorf("%w: negative amount", ErrRejected)
	}
	id := "pi_" + uuid.NewString()
	g.mu.Lock()
	g.intents[id] = amountCents
	g.mu.Unlock()
	return &Intent{
		ID:           id,
		ClientSecret: id + "_secret_" + uuid.NewString()[:8],
		AmountCents:  amountCents,
	}, nil
}

func (g *OfflineGateway) Confirm(_ context.Context, intentID string) (*Receipt, error) {
	g.mu.Lock()
	amount, ok := g.intents[intentID]
	g.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: unknown intent %s", ErrRejected, intentID)
	}
	return &Receipt{IntentID: intentID, AmountCents: amount, Status: "succeeded"}, nil
}
