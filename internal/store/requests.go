package store

import (
	"context"
	"database/sql"
	"errors"
)

const requestColumns = `id, game_id, user_id, status, created_at, decided_at`

func scanRequest(row interface{ Scan(...any) error }) (*JoinRequest, error) {
	var r JoinRequest
	err := row.Scan(&r.ID, &r.GameID, &r.UserID, &r.Status, &r.CreatedAt, &r.DecidedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *Store) CreateJoinRequest(ctx context.Context, r *JoinRequest) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO requests (id, game_id, user_id, status)
		VALUES ($1,$2,$3,'pending')`, r.ID, r.GameID, r.UserID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (s *Store) GetJoinRequest(ctx context.Context, id string) (*JoinRequest, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE id = $1`, id)
	return scanRequest(row)
}

func (s *Store) FindJoinRequest(ctx context.Context, gameID, userID string) (*JoinRequest, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE game_id = $1 AND user_id = $2`,
		gameID, userID)
	return scanRequest(row)
}

func (s *Store) ListPendingRequests(ctx context.Context, gameID string) ([]JoinRequestWithUser, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT r.id, r.game_id, r.user_id, r.status, r.created_at, r.decided_at,
			u.username, u.email
		FROM requests r
		JOIN users u ON u.id = r.user_id
		WHERE r.game_id = $1 AND r.status = 'pending'
		ORDER BY r.created_at ASC`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []JoinRequestWithUser{}
	for rows.Next() {
		var rw JoinRequestWithUser
		err := rows.Scan(&rw.ID, &rw.GameID, &rw.UserID, &rw.Status, &rw.CreatedAt,
			&rw.DecidedAt, &rw.Username, &rw.Email)
		if err != nil {
			return nil, err
		}
		out = append(out, rw)
	}
	return out, rows.Err()
}

// DecideJoinRequest is the pending -> approved/rejected compare-and-set.
// A request that is already decided matches zero rows.
func (s *Store) DecideJoinRequest(ctx context.Context, id, status string) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE requests SET status = $2, decided_at = now()
		WHERE id = $1 AND status = 'pending'`, id, status)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
