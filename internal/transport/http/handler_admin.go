package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"raffle-server/internal/app/booking"
	"raffle-server/internal/app/games"
	"raffle-server/internal/app/requests"
	"raffle-server/internal/store"

	"github.com/go-chi/chi/v5"
)

type AdminHandlers struct {
	store       *store.Store
	gamesSvc    *games.Service
	requestsSvc *requests.Service
	bookingSvc  *booking.Service
}

func NewAdminHandlers(st *store.Store, gamesSvc *games.Service, requestsSvc *requests.Service, bookingSvc *booking.Service) *AdminHandlers {
	return &AdminHandlers{store: st, gamesSvc: gamesSvc, requestsSvc: requestsSvc, bookingSvc: bookingSvc}
}

func (h *AdminHandlers) CreateGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())
		var in games.CreateInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		summary, err := h.gamesSvc.Create(r.Context(), claims.UserID, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(summary)
	}
}

func (h *AdminHandlers) EndGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.gamesSvc.End(r.Context(), chi.URLParam(r, "game_id")); err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func (h *AdminHandlers) GameSeats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.gamesSvc.ListSeats(r.Context(), chi.URLParam(r, "game_id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *AdminHandlers) PendingRequests() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.requestsSvc.ListPending(r.Context(), chi.URLParam(r, "game_id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"requests": items})
	}
}

func (h *AdminHandlers) DecideRequest() http.HandlerFunc {
	type decideRequest struct {
		Decision string `json:"decision"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in decideRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if err := h.requestsSvc.Decide(r.Context(), chi.URLParam(r, "request_id"), in.Decision); err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func (h *AdminHandlers) DeclareWinners() http.HandlerFunc {
	type winnersRequest struct {
		SeatIDs []string `json:"seat_ids"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in winnersRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		result, err := h.bookingSvc.DeclareWinners(r.Context(), chi.URLParam(r, "game_id"), in.SeatIDs)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(result)
	}
}

func (h *AdminHandlers) GamePayments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := h.store.GetGameByPublicID(r.Context(), chi.URLParam(r, "game_id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeServiceError(w, games.ErrGameNotFound)
				return
			}
			writeServiceError(w, err)
			return
		}
		items, err := h.store.ListPaymentsByGame(r.Context(), g.ID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"payments": items})
	}
}

func (h *AdminHandlers) Users() http.HandlerFunc {
	type userView struct {
		UserID   string `json:"user_id"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 100
		items, err := h.store.ListUsers(r.Context(), limit)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		out := make([]userView, 0, len(items))
		for _, u := range items {
			out = append(out, userView{UserID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"users": out})
	}
}
