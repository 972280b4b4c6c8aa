package httptransport

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"raffle-server/internal/app/accounts"
	"raffle-server/internal/app/booking"
	"raffle-server/internal/app/games"
	"raffle-server/internal/app/requests"
	"raffle-server/internal/auth"
	"raffle-server/internal/config"
	"raffle-server/internal/gameid"
	"raffle-server/internal/notify"
	"raffle-server/internal/payment"
	"raffle-server/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func NewRouter(st *store.Store, cfg config.ServerConfig, payments payment.Coordinator, dispatcher *notify.Dispatcher, ids *gameid.Generator) *chi.Mux {
	tokens := auth.NewTokens(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	accountsSvc := accounts.NewService(st, tokens)
	gamesSvc := games.NewService(st, ids, dispatcher)
	requestsSvc := requests.NewService(st, dispatcher)
	bookingSvc := booking.NewService(st, payments, dispatcher)

	publicHandlers := NewPublicHandlers(accountsSvc, gamesSvc)
	userHandlers := NewUserHandlers(accountsSvc, requestsSvc, bookingSvc)
	adminHandlers := NewAdminHandlers(st, gamesSvc, requestsSvc, bookingSvc)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", publicHandlers.Health())

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())

		r.Post("/auth/register", publicHandlers.Register(store.RoleUser))
		r.Post("/auth/login", publicHandlers.Login(store.RoleUser))
		r.Post("/admin/auth/register", publicHandlers.Register(store.RoleAdmin))
		r.Post("/admin/auth/login", publicHandlers.Login(store.RoleAdmin))

		r.Get("/games", publicHandlers.ActiveGames())
		r.Get("/games/ended", publicHandlers.EndedGames())
		r.Get("/games/{game_id}", publicHandlers.GameDetail())
		r.Get("/games/{game_id}/leaderboard", publicHandlers.Leaderboard())

		r.Group(func(r chi.Router) {
			r.Use(UserAuthMiddleware(tokens))
			r.Get("/profile", userHandlers.Profile())
			r.Put("/profile", userHandlers.UpdateProfile())
			r.Post("/games/{game_id}/requests", userHandlers.CreateJoinRequest())
			r.Post("/games/{game_id}/seats/{seat_number}/intent", userHandlers.CreatePaymentIntent())
			r.Post("/games/{game_id}/seats/{seat_number}/book", userHandlers.BookSeat())
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(UserAuthMiddleware(tokens))
			r.Use(AdminOnlyMiddleware())
			r.Post("/games", adminHandlers.CreateGame())
			r.Post("/games/{game_id}/end", adminHandlers.EndGame())
			r.Get("/games/{game_id}/seats", adminHandlers.GameSeats())
			r.Get("/games/{game_id}/requests", adminHandlers.PendingRequests())
			r.Post("/games/{game_id}/winners", adminHandlers.DeclareWinners())
			r.Get("/games/{game_id}/payments", adminHandlers.GamePayments())
			r.Post("/requests/{request_id}/decide", adminHandlers.DecideRequest())
			r.Get("/users", adminHandlers.Users())
		})
	})

	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 32)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}
