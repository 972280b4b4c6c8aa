package games

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrGameNotFound   = errors.New("game_not_found")
	ErrAlreadyEnded   = errors.New("game_already_ended")
	ErrGameActive     = errors.New("game_still_active")

	// Seat-spec validation failures, one sentinel per reason so callers
	// can tell a count mismatch from a price or seat-number problem.
	ErrSeatCountMismatch = errors.New("seat_count_mismatch")
	ErrSpecCountMismatch = errors.New("seat_spec_count_mismatch")
	ErrPaidCountMismatch = errors.New("paid_seat_count_mismatch")
	ErrInvalidSeatPrice  = errors.New("invalid_seat_price")
	ErrInvalidSeatNumber = errors.New("invalid_seat_number")
)
