// Package requests handles the join-request flow: a user asks to join a
// game, an admin approves or rejects, and approval grants booking
// rights. A request is decided at most once.
package requests

import (
	"context"
	"errors"
	"fmt"

	"raffle-server/internal/notify"
	"raffle-server/internal/store"

	"github.com/rs/zerolog/log"
)

type Store interface {
	GetGameByPublicID(ctx context.Context, publicID string) (*store.Game, error)
	CreateJoinRequest(ctx context.Context, r *store.JoinRequest) error
	GetJoinRequest(ctx context.Context, id string) (*store.JoinRequest, error)
	FindJoinRequest(ctx context.Context, gameID, userID string) (*store.JoinRequest, error)
	ListPendingRequests(ctx context.Context, gameID string) ([]store.JoinRequestWithUser, error)
	DecideJoinRequest(ctx context.Context, id, status string) (bool, error)
	AddApprovedUser(ctx context.Context, gameID, userID string) error
	GetUserByID(ctx context.Context, id string) (*store.User, error)
}

type Service struct {
	store  Store
	notify *notify.Dispatcher
}

func NewService(st Store, dispatcher *notify.Dispatcher) *Service {
	return &Service{store: st, notify: dispatcher}
}

// RequestView is the admin-facing pending request.
type RequestView struct {
	RequestID string `json:"request_id"`
	GameID    string `json:"game_id"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Status    string `json:"status"`
}

// Create files a join request for an active game. One request per user
// per game; a repeat attempt reports the existing request's status.
func (s *Service) Create(ctx context.Context, userID, gamePublicID string) (*RequestView, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user", ErrInvalidRequest)
	}
	g, err := s.getGame(ctx, gamePublicID)
	if err != nil {
		return nil, err
	}
	if g.Status != store.GameStatusActive {
		return nil, ErrGameEnded
	}

	if existing, err := s.store.FindJoinRequest(ctx, g.ID, userID); err == nil {
		return nil, fmt.Errorf("%w: status %s", ErrAlreadyRequested, existing.Status)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	r := &store.JoinRequest{GameID: g.ID, UserID: userID}
	if err := s.store.CreateJoinRequest(ctx, r); err != nil {
		// Unique index backstop for a concurrent duplicate submission.
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrAlreadyRequested
		}
		return nil, err
	}
	log.Info().Str("game_id", gamePublicID).Str("user_id", userID).Msg("join request filed")

	return &RequestView{
		RequestID: r.ID,
		GameID:    gamePublicID,
		UserID:    userID,
		Status:    store.RequestStatusPending,
	}, nil
}

// Decide settles a pending request. Approval adds the user to the
// game's approved set; both outcomes notify the requester.
func (s *Service) Decide(ctx context.Context, requestID, decision string) error {
	if decision != store.RequestStatusApproved && decision != store.RequestStatusRejected {
		return fmt.Errorf("%w: decision must be approved or rejected", ErrInvalidRequest)
	}
	r, err := s.store.GetJoinRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrRequestNotFound
		}
		return err
	}

	decided, err := s.store.DecideJoinRequest(ctx, requestID, decision)
	if err != nil {
		return err
	}
	if !decided {
		return ErrAlreadyDecided
	}

	if decision == store.RequestStatusApproved {
		if err := s.store.AddApprovedUser(ctx, r.GameID, r.UserID); err != nil {
			return err
		}
	}
	log.Info().Str("request_id", requestID).Str("decision", decision).Msg("join request decided")

	s.notifyRequester(ctx, r, decision)
	return nil
}

func (s *Service) ListPending(ctx context.Context, gamePublicID string) ([]RequestView, error) {
	g, err := s.getGame(ctx, gamePublicID)
	if err != nil {
		return nil, err
	}
	items, err := s.store.ListPendingRequests(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	out := make([]RequestView, 0, len(items))
	for _, r := range items {
		out = append(out, RequestView{
			RequestID: r.ID,
			GameID:    gamePublicID,
			UserID:    r.UserID,
			Username:  r.Username,
			Email:     r.Email,
			Status:    r.Status,
		})
	}
	return out, nil
}

func (s *Service) notifyRequester(ctx context.Context, r *store.JoinRequest, decision string) {
	u, err := s.store.GetUserByID(ctx, r.UserID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", r.UserID).Msg("looking up requester for notification failed")
		return
	}
	subject := "Join request " + decision
	body := fmt.Sprintf("Your request to join the game was %s.", decision)
	s.notify.Enqueue([]string{u.Email}, subject, body)
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
