package store

import (
	"context"
	"database/sql"
	"errors"
)

const gameColumns = `id, public_id, name, description, additional_info, image,
	universal_gift, universal_gift_image, status, total_seats, free_seats,
	paid_seats, created_by, created_at`

func scanGame(row interface{ Scan(...any) error }) (*Game, error) {
	var g Game
	err := row.Scan(&g.ID, &g.PublicID, &g.Name, &g.Description, &g.AdditionalInfo,
		&g.Image, &g.UniversalGift, &g.UniversalGiftImage, &g.Status,
		&g.TotalSeats, &g.FreeSeats, &g.PaidSeats, &g.CreatedBy, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

// CreateGameWithSeats persists a game and its full seat set in one
// transaction: either everything lands or nothing does.
func (s *Store) CreateGameWithSeats(ctx context.Context, g *Game, seats []Seat) error {
	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if g.ID == "" {
		g.ID = NewID()
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO games (id, public_id, name, description, additional_info, image,
			universal_gift, universal_gift_image, status, total_seats, free_seats,
			paid_seats, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,'active',$9,$10,$11,$12)`,
		g.ID, g.PublicID, g.Name, g.Description, g.AdditionalInfo, g.Image,
		g.UniversalGift, g.UniversalGiftImage, g.TotalSeats, g.FreeSeats,
		g.PaidSeats, g.CreatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}

	for i := range seats {
		if seats[i].ID == "" {
			seats[i].ID = NewID()
		}
		seats[i].GameID = g.ID
		_, err = tx.ExecContext(ctx, `
			INSERT INTO seats (id, game_id, seat_number, is_paid, price_cents, gift, gift_image)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			seats[i].ID, g.ID, seats[i].SeatNumber, seats[i].IsPaid,
			seats[i].PriceCents, seats[i].Gift, seats[i].GiftImage)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) GetGameByPublicID(ctx context.Context, publicID string) (*Game, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE public_id = $1`, publicID)
	return scanGame(row)
}

func (s *Store) GetGameByID(ctx context.Context, id string) (*Game, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE id = $1`, id)
	return scanGame(row)
}

func (s *Store) ListGamesByStatus(ctx context.Context, status string) ([]Game, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE status = $1 ORDER BY created_at DESC`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Game{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

// MarkGameEnded flips active -> ended. The status guard makes the flip
// write-once: exactly one caller sees true, everyone else false.
func (s *Store) MarkGameEnded(ctx context.Context, gameID string) (bool, error) {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE games SET status = 'ended' WHERE id = $1 AND status = 'active'`, gameID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// LatestGamePublicID returns the public ID of the newest game, or ""
// when no game exists yet.
func (s *Store) LatestGamePublicID(ctx context.Context) (string, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT public_id FROM games ORDER BY created_at DESC, id DESC LIMIT 1`)
	var id string
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return id, nil
}

func (s *Store) AddApprovedUser(ctx context.Context, gameID, userID string) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO approved_users (game_id, user_id) VALUES ($1,$2)
		ON CONFLICT (game_id, user_id) DO NOTHING`, gameID, userID)
	return err
}

func (s *Store) IsUserApproved(ctx context.Context, gameID, userID string) (bool, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM approved_users WHERE game_id = $1 AND user_id = $2)`,
		gameID, userID)
	var ok bool
	if err := row.Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (s *Store) ListApprovedUsers(ctx context.Context, gameID string) ([]User, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT u.id, u.username, u.email, u.password_hash, u.role, u.created_at
		FROM approved_users a
		JOIN users u ON u.id = a.user_id
		WHERE a.game_id = $1
		ORDER BY u.username ASC`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
