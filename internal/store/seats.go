package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const seatColumns = `id, game_id, seat_number, is_paid, price_cents, is_occupied,
	user_id, booked_at, is_winner, declared_winner_at, gift, gift_image, created_at`

func scanSeat(row interface{ Scan(...any) error }) (*Seat, error) {
	var st Seat
	err := row.Scan(&st.ID, &st.GameID, &st.SeatNumber, &st.IsPaid, &st.PriceCents,
		&st.IsOccupied, &st.UserID, &st.BookedAt, &st.IsWinner, &st.DeclaredWinnerAt,
		&st.Gift, &st.GiftImage, &st.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &st, nil
}

func (s *Store) GetSeatByNumber(ctx context.Context, gameID string, seatNumber int) (*Seat, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+seatColumns+` FROM seats WHERE game_id = $1 AND seat_number = $2`,
		gameID, seatNumber)
	return scanSeat(row)
}

func (s *Store) GetSeatByID(ctx context.Context, id string) (*Seat, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+seatColumns+` FROM seats WHERE id = $1`, id)
	return scanSeat(row)
}

func (s *Store) ListSeats(ctx context.Context, gameID string) ([]Seat, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+seatColumns+` FROM seats WHERE game_id = $1 ORDER BY seat_number ASC`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Seat{}
	for rows.Next() {
		st, err := scanSeat(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *st)
	}
	return out, rows.Err()
}

func (s *Store) GetSeatsByIDs(ctx context.Context, ids []string) ([]Seat, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+seatColumns+` FROM seats WHERE id = ANY($1) ORDER BY seat_number ASC`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Seat{}
	for rows.Next() {
		st, err := scanSeat(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *st)
	}
	return out, rows.Err()
}

// ListSeatsWithUsers joins the booking user for admin views and
// leaderboards. Unoccupied seats come back with empty user fields.
func (s *Store) ListSeatsWithUsers(ctx context.Context, gameID string) ([]SeatWithUser, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT s.id, s.game_id, s.seat_number, s.is_paid, s.price_cents, s.is_occupied,
			s.user_id, s.booked_at, s.is_winner, s.declared_winner_at, s.gift,
			s.gift_image, s.created_at,
			COALESCE(u.username, ''), COALESCE(u.email, '')
		FROM seats s
		LEFT JOIN users u ON u.id = s.user_id
		WHERE s.game_id = $1
		ORDER BY s.seat_number ASC`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []SeatWithUser{}
	for rows.Next() {
		var sw SeatWithUser
		err := rows.Scan(&sw.ID, &sw.GameID, &sw.SeatNumber, &sw.IsPaid, &sw.PriceCents,
			&sw.IsOccupied, &sw.UserID, &sw.BookedAt, &sw.IsWinner, &sw.DeclaredWinnerAt,
			&sw.Gift, &sw.GiftImage, &sw.CreatedAt, &sw.Username, &sw.Email)
		if err != nil {
			return nil, err
		}
		out = append(out, sw)
	}
	return out, rows.Err()
}

// OccupySeat is the booking compare-and-set: the occupancy flag is the
// precondition, so under concurrent bookings exactly one caller gets true.
func (s *Store) OccupySeat(ctx context.Context, seatID, userID string) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE seats SET is_occupied = TRUE, user_id = $2, booked_at = now()
		WHERE id = $1 AND is_occupied = FALSE`, seatID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *Store) CountUnoccupiedSeats(ctx context.Context, gameID string) (int, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM seats WHERE game_id = $1 AND is_occupied = FALSE`, gameID)
	var c int
	if err := row.Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}

// MarkSeatsWinners marks the whole batch in one transaction. The update
// only matches occupied non-winner seats; when it touches fewer rows than
// requested the transaction rolls back and ErrConflict is returned, so a
// half-eligible batch never partially commits.
func (s *Store) MarkSeatsWinners(ctx context.Context, seatIDs []string) error {
	if len(seatIDs) == 0 {
		return fmt.Errorf("%w: empty winner batch", ErrConflict)
	}
	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE seats SET is_winner = TRUE, declared_winner_at = now()
		WHERE id = ANY($1) AND is_occupied = TRUE AND is_winner = FALSE`, seatIDs)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != int64(len(seatIDs)) {
		return ErrConflict
	}
	return tx.Commit()
}
