package httptransport

import (
	"errors"
	"net/http"

	"raffle-server/internal/app/accounts"
	"raffle-server/internal/app/booking"
	"raffle-server/internal/app/games"
	"raffle-server/internal/app/requests"
)

// writeServiceError maps service sentinels onto HTTP statuses. The
// response body carries the sentinel's code so clients can branch on
// the exact failure, not just the status class.
func writeServiceError(w http.ResponseWriter, err error) {
	for _, m := range errorMap {
		if errors.Is(err, m.sentinel) {
			WriteHTTPError(w, m.status, m.sentinel.Error())
			return
		}
	}
	WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
}

var errorMap = []struct {
	sentinel error
	status   int
}{
	{games.ErrInvalidRequest, http.StatusBadRequest},
	{games.ErrSeatCountMismatch, http.StatusBadRequest},
	{games.ErrSpecCountMismatch, http.StatusBadRequest},
	{games.ErrPaidCountMismatch, http.StatusBadRequest},
	{games.ErrInvalidSeatPrice, http.StatusBadRequest},
	{games.ErrInvalidSeatNumber, http.StatusBadRequest},
	{games.ErrGameNotFound, http.StatusNotFound},
	{games.ErrAlreadyEnded, http.StatusConflict},
	{games.ErrGameActive, http.StatusConflict},

	{booking.ErrInvalidRequest, http.StatusBadRequest},
	{booking.ErrGameNotFound, http.StatusNotFound},
	{booking.ErrSeatNotFound, http.StatusNotFound},
	{booking.ErrGameEnded, http.StatusConflict},
	{booking.ErrGameNotEnded, http.StatusConflict},
	{booking.ErrSeatOccupied, http.StatusConflict},
	{booking.ErrSeatNotEligible, http.StatusConflict},
	{booking.ErrWinnerAlreadyDeclared, http.StatusConflict},
	{booking.ErrNotApproved, http.StatusForbidden},
	{booking.ErrPaymentFailed, http.StatusPaymentRequired},

	{requests.ErrInvalidRequest, http.StatusBadRequest},
	{requests.ErrGameNotFound, http.StatusNotFound},
	{requests.ErrRequestNotFound, http.StatusNotFound},
	{requests.ErrGameEnded, http.StatusConflict},
	{requests.ErrAlreadyRequested, http.StatusConflict},
	{requests.ErrAlreadyDecided, http.StatusConflict},

	{accounts.ErrInvalidRequest, http.StatusBadRequest},
	{accounts.ErrInvalidCredentials, http.StatusUnauthorized},
	{accounts.ErrUserNotFound, http.StatusNotFound},
	{accounts.ErrUsernameTaken, http.StatusConflict},
	{accounts.ErrEmailTaken, http.StatusConflict},
}
