package booking

import "errors"

var (
	ErrInvalidRequest        = errors.New("invalid_request")
	ErrGameNotFound          = errors.New("game_not_found")
	ErrGameEnded             = errors.New("game_ended")
	ErrGameNotEnded          = errors.New("game_not_ended")
	ErrSeatNotFound          = errors.New("seat_not_found")
	ErrSeatOccupied          = errors.New("seat_occupied")
	ErrNotApproved           = errors.New("user_not_approved")
	ErrPaymentFailed         = errors.New("payment_failed")
	ErrSeatNotEligible       = errors.New("seat_not_eligible")
	ErrWinnerAlreadyDeclared = errors.New("winner_already_declared")
)
