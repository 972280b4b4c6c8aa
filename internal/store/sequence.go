package store

import "context"

// The game ID sequence is a single counter row. The original scheme read
// the newest game and incremented its suffix, which races under
// concurrent creation; the counter makes the increment atomic while the
// rendered ID format stays the same.

// SeedGameSequence installs the counter starting value. It is a no-op
// when the counter already exists, so restarts never rewind it.
func (s *Store) SeedGameSequence(ctx context.Context, n int) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO game_sequence (id, n) VALUES (1, $1)
		ON CONFLICT (id) DO NOTHING`, n)
	return err
}

// NextGameSequence atomically increments and returns the counter.
func (s *Store) NextGameSequence(ctx context.Context) (int, error) {
	row := s.DB.QueryRowContext(ctx, `
		UPDATE game_sequence SET n = n + 1 WHERE id = 1 RETURNING n`)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
