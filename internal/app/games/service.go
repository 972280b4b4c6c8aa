package games

import (
	"context"
	"errors"
	"fmt"

	"raffle-server/internal/notify"
	"raffle-server/internal/store"

	"github.com/rs/zerolog/log"
)

// Store is the persistence surface the lifecycle controller needs.
type Store interface {
	CreateGameWithSeats(ctx context.Context, g *store.Game, seats []store.Seat) error
	GetGameByPublicID(ctx context.Context, publicID string) (*store.Game, error)
	ListGamesByStatus(ctx context.Context, status string) ([]store.Game, error)
	MarkGameEnded(ctx context.Context, gameID string) (bool, error)
	ListSeatsWithUsers(ctx context.Context, gameID string) ([]store.SeatWithUser, error)
	ListApprovedUsers(ctx context.Context, gameID string) ([]store.User, error)
	ListPendingRequests(ctx context.Context, gameID string) ([]store.JoinRequestWithUser, error)
	ListUserEmails(ctx context.Context) ([]string, error)
}

// IDSource issues public game identifiers.
type IDSource interface {
	Next(ctx context.Context) (string, error)
}

type Service struct {
	store  Store
	ids    IDSource
	notify *notify.Dispatcher
}

func NewService(st Store, ids IDSource, dispatcher *notify.Dispatcher) *Service {
	return &Service{store: st, ids: ids, notify: dispatcher}
}

// Create validates the seat invariants, then persists the game and all
// its seats in one transaction. Nothing is written when validation
// fails, so there is no partial game to clean up.
func (s *Service) Create(ctx context.Context, createdBy string, in CreateInput) (*GameSummary, error) {
	if in.Name == "" || createdBy == "" {
		return nil, fmt.Errorf("%w: game name and creator are required", ErrInvalidRequest)
	}
	if err := ValidateSeatSpecs(in.TotalSeats, in.FreeSeats, in.PaidSeats, in.Seats); err != nil {
		return nil, err
	}

	publicID, err := s.ids.Next(ctx)
	if err != nil {
		return nil, err
	}

	g := &store.Game{
		PublicID:           publicID,
		Name:               in.Name,
		Description:        in.Description,
		AdditionalInfo:     in.AdditionalInfo,
		Image:              in.Image,
		UniversalGift:      in.UniversalGift,
		UniversalGiftImage: in.UniversalGiftImage,
		Status:             store.GameStatusActive,
		TotalSeats:         in.TotalSeats,
		FreeSeats:          in.FreeSeats,
		PaidSeats:          in.PaidSeats,
		CreatedBy:          createdBy,
	}
	if err := s.store.CreateGameWithSeats(ctx, g, buildSeats(in)); err != nil {
		return nil, err
	}
	log.Info().Str("game_id", publicID).Int("seats", in.TotalSeats).Msg("game created")

	if emails, err := s.store.ListUserEmails(ctx); err == nil {
		s.notify.Enqueue(emails, "New game: "+in.Name,
			fmt.Sprintf("A new game %q (%s) is open for join requests.", in.Name, publicID))
	} else {
		log.Warn().Err(err).Msg("listing user emails for game announcement failed")
	}

	return summarize(g), nil
}

// End flips a game to ended. The store-side status guard makes the flip
// idempotent-hostile on purpose: a second call reports AlreadyEnded.
func (s *Service) End(ctx context.Context, publicID string) error {
	g, err := s.getGame(ctx, publicID)
	if err != nil {
		return err
	}
	ended, err := s.store.MarkGameEnded(ctx, g.ID)
	if err != nil {
		return err
	}
	if !ended {
		return ErrAlreadyEnded
	}
	log.Info().Str("game_id", publicID).Msg("game ended by admin")
	return nil
}

func (s *Service) Get(ctx context.Context, publicID string) (*GameDetail, error) {
	g, err := s.getGame(ctx, publicID)
	if err != nil {
		return nil, err
	}
	seats, err := s.store.ListSeatsWithUsers(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	approved, err := s.store.ListApprovedUsers(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	pending, err := s.store.ListPendingRequests(ctx, g.ID)
	if err != nil {
		return nil, err
	}

	detail := &GameDetail{
		GameSummary:        *summarize(g),
		UniversalGift:      g.UniversalGift,
		UniversalGiftImage: g.UniversalGiftImage,
		AdditionalInfo:     g.AdditionalInfo,
		Seats:              seatViews(seats),
		ApprovedUsers:      userRefs(approved),
		PendingRequests:    requestViews(pending),
	}
	return detail, nil
}

func (s *Service) ListActive(ctx context.Context) ([]GameSummary, error) {
	return s.list(ctx, store.GameStatusActive)
}

func (s *Service) ListEnded(ctx context.Context) ([]GameSummary, error) {
	return s.list(ctx, store.GameStatusEnded)
}

// ListSeats is the admin seat view including the booker's identity.
func (s *Service) ListSeats(ctx context.Context, publicID string) (*SeatsResponse, error) {
	g, err := s.getGame(ctx, publicID)
	if err != nil {
		return nil, err
	}
	seats, err := s.store.ListSeatsWithUsers(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	return &SeatsResponse{GameStatus: g.Status, Seats: seatViews(seats)}, nil
}

// Leaderboard lists the occupied paid seats of an ended game. The
// is_paid flag decides membership; price is informational only.
func (s *Service) Leaderboard(ctx context.Context, publicID string) ([]LeaderboardEntry, error) {
	g, err := s.getGame(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if g.Status != store.GameStatusEnded {
		return nil, ErrGameActive
	}
	seats, err := s.store.ListSeatsWithUsers(ctx, g.ID)
	if err != nil {
		return nil, err
	}

	out := []LeaderboardEntry{}
	for _, sw := range seats {
		if !sw.IsPaid || !sw.IsOccupied {
			continue
		}
		gift := sw.Gift
		if gift == "" {
			gift = g.UniversalGift
		}
		giftImage := sw.GiftImage
		if giftImage == "" {
			giftImage = g.UniversalGiftImage
		}
		entry := LeaderboardEntry{
			SeatID:     sw.ID,
			SeatNumber: sw.SeatNumber,
			SeatLabel:  SeatLabel(sw.SeatNumber),
			PriceCents: sw.PriceCents,
			Gift:       gift,
			GiftImage:  giftImage,
			IsWinner:   sw.IsWinner,
		}
		if sw.UserID != nil {
			entry.User = &UserRef{UserID: *sw.UserID, Username: sw.Username, Email: sw.Email}
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *Service) list(ctx context.Context, status string) ([]GameSummary, error) {
	items, err := s.store.ListGamesByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]GameSummary, 0, len(items))
	for i := range items {
		out = append(out, *summarize(&items[i]))
	}
	return out, nil
}

func (s *Service) getGame(ctx context.Context, publicID string) (*store.Game, error) {
	if publicID == "" {
		return nil, fmt.Errorf("%w: missing game id", ErrInvalidRequest)
	}
	g, err := s.store.GetGameByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return g, nil
}

func summarize(g *store.Game) *GameSummary {
	return &GameSummary{
		GameID:      g.PublicID,
		Name:        g.Name,
		Description: g.Description,
		Image:       g.Image,
		Status:      g.Status,
		TotalSeats:  g.TotalSeats,
		FreeSeats:   g.FreeSeats,
		PaidSeats:   g.PaidSeats,
		CreatedAt:   g.CreatedAt,
	}
}

func seatViews(seats []store.SeatWithUser) []SeatView {
	out := make([]SeatView, 0, len(seats))
	for _, sw := range seats {
		v := SeatView{
			SeatID:     sw.ID,
			SeatNumber: sw.SeatNumber,
			SeatLabel:  SeatLabel(sw.SeatNumber),
			IsPaid:     sw.IsPaid,
			PriceCents: sw.PriceCents,
			IsOccupied: sw.IsOccupied,
			IsWinner:   sw.IsWinner,
			Gift:       sw.Gift,
			GiftImage:  sw.GiftImage,
			BookedAt:   sw.BookedAt,
		}
		if sw.IsOccupied {
			v.Username = sw.Username
			v.Email = sw.Email
		}
		out = append(out, v)
	}
	return out
}

func userRefs(users []store.User) []UserRef {
	out := make([]UserRef, 0, len(users))
	for _, u := range users {
		out = append(out, UserRef{UserID: u.ID, Username: u.Username, Email: u.Email})
	}
	return out
}

func requestViews(reqs []store.JoinRequestWithUser) []RequestView {
	out := make([]RequestView, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, RequestView{
			RequestID: r.ID,
			UserID:    r.UserID,
			Username:  r.Username,
			Email:     r.Email,
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}
