package store

import "context"

// RecordPayment appends to the payment ledger. Records are never updated
// or deleted.
func (s *Store) RecordPayment(ctx context.Context, p *Payment) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO payments (id, user_id, amount_cents, intent_id, seat_id, game_id)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		p.ID, p.UserID, p.AmountCents, p.IntentID, p.SeatID, p.GameID)
	return err
}

func (s *Store) ListPaymentsByGame(ctx context.Context, gameID string) ([]Payment, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, user_id, amount_cents, intent_id, seat_id, game_id, created_at
		FROM payments WHERE game_id = $1 ORDER BY created_at ASC`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Payment{}
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.AmountCents, &p.IntentID, &p.SeatID, &p.GameID, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
