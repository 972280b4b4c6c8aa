package httptransport

import (
	"encoding/json"
	"net/http"

	"raffle-server/internal/app/accounts"
	"raffle-server/internal/app/games"
	"raffle-server/internal/store"

	"github.com/go-chi/chi/v5"
)

type PublicHandlers struct {
	accountsSvc *accounts.Service
	gamesSvc    *games.Service
}

func NewPublicHandlers(accountsSvc *accounts.Service, gamesSvc *games.Service) *PublicHandlers {
	return &PublicHandlers{accountsSvc: accountsSvc, gamesSvc: gamesSvc}
}

func (h *PublicHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}
}

func (h *PublicHandlers) Register(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in accounts.RegisterInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		sess, err := h.accountsSvc.Register(r.Context(), in, role)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(sess)
	}
}

func (h *PublicHandlers) Login(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in accounts.LoginInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		sess, err := h.accountsSvc.Login(r.Context(), in, role)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(sess)
	}
}

func (h *PublicHandlers) ActiveGames() http.HandlerFunc {
	return h.listGames(store.GameStatusActive)
}

func (h *PublicHandlers) EndedGames() http.HandlerFunc {
	return h.listGames(store.GameStatusEnded)
}

func (h *PublicHandlers) listGames(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			items []games.GameSummary
			err   error
		)
		if status == store.GameStatusActive {
			items, err = h.gamesSvc.ListActive(r.Context())
		} else {
			items, err = h.gamesSvc.ListEnded(r.Context())
		}
		if err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"games": items})
	}
}

func (h *PublicHandlers) GameDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := h.gamesSvc.Get(r.Context(), chi.URLParam(r, "game_id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(detail)
	}
}

func (h *PublicHandlers) Leaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := h.gamesSvc.Leaderboard(r.Context(), chi.URLParam(r, "game_id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"leaderboard": entries})
	}
}
