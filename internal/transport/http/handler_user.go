package httptransport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"raffle-server/internal/app/accounts"
	"raffle-server/internal/app/booking"
	"raffle-server/internal/app/requests"

	"github.com/go-chi/chi/v5"
)

// UserHandlers cover the authenticated player surface: join requests,
// seat booking and profile management.
type UserHandlers struct {
	accountsSvc *accounts.Service
	requestsSvc *requests.Service
	bookingSvc  *booking.Service
}

func NewUserHandlers(accountsSvc *accounts.Service, requestsSvc *requests.Service, bookingSvc *booking.Service) *UserHandlers {
	return &UserHandlers{accountsSvc: accountsSvc, requestsSvc: requestsSvc, bookingSvc: bookingSvc}
}

func (h *UserHandlers) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())
		acc, err := h.accountsSvc.Get(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(acc)
	}
}

func (h *UserHandlers) UpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())
		var in accounts.UpdateProfileInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		sess, err := h.accountsSvc.UpdateProfile(r.Context(), claims.UserID, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(sess)
	}
}

func (h *UserHandlers) CreateJoinRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())
		view, err := h.requestsSvc.Create(r.Context(), claims.UserID, chi.URLParam(r, "game_id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(view)
	}
}

func (h *UserHandlers) CreatePaymentIntent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())
		seatNumber, err := seatNumberParam(r)
		if err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_seat_number")
			return
		}
		intent, err := h.bookingSvc.CreatePaymentIntent(r.Context(), claims.UserID, chi.URLParam(r, "game_id"), seatNumber)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(intent)
	}
}

func (h *UserHandlers) BookSeat() http.HandlerFunc {
	type bookRequest struct {
		IntentID string `json:"intent_id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())
		seatNumber, err := seatNumberParam(r)
		if err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_seat_number")
			return
		}
		var in bookRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
				return
			}
		}
		result, err := h.bookingSvc.BookSeat(r.Context(), claims.UserID, chi.URLParam(r, "game_id"), seatNumber, in.IntentID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(result)
	}
}

func seatNumberParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "seat_number"))
}
