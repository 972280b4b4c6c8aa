package payment

import (
	"context"

	"raffle-server/internal/store"
)

type storeRecorder struct {
	st *store.Store
}

// NewStoreRecorder adapts the store's payment ledger to the Recorder
// contract.
func NewStoreRecorder(st *store.Store) Recorder {
	return &storeRecorder{st: st}
}

func (r *storeRecorder) RecordPayment(ctx context.Context, userID string, amountCents int64, intentID, seatID, gameID string) error {
	return r.st.RecordPayment(ctx, &store.Payment{
		UserID:      userID,
		AmountCents: amountCents,
		IntentID:    intentID,
		SeatID:      seatID,
		GameID:      gameID,
	})
}
