// Package booking is the seat allocation engine: it claims seats,
// coordinates paid-seat charges, ends games that fill up, and declares
// winners. Every mutation rides on a store-side compare-and-set, so
// concurrent claims on the same seat resolve to exactly one success.
package booking

import (
	"context"
	"errors"
	"fmt"

	"raffle-server/internal/app/games"
	"raffle-server/internal/notify"
	"raffle-server/internal/payment"
	"raffle-server/internal/store"

	"github.com/rs/zerolog/log"
)

type Store interface {
	GetGameByPublicID(ctx context.Context, publicID string) (*store.Game, error)
	GetSeatByNumber(ctx context.Context, gameID string, seatNumber int) (*store.Seat, error)
	GetSeatByID(ctx context.Context, id string) (*store.Seat, error)
	GetSeatsByIDs(ctx context.Context, ids []string) ([]store.Seat, error)
	IsUserApproved(ctx context.Context, gameID, userID string) (bool, error)
	OccupySeat(ctx context.Context, seatID, userID string) (bool, error)
	CountUnoccupiedSeats(ctx context.Context, gameID string) (int, error)
	MarkGameEnded(ctx context.Context, gameID string) (bool, error)
	MarkSeatsWinners(ctx context.Context, seatIDs []string) error
	GetUserByID(ctx context.Context, id string) (*store.User, error)
}

type Service struct {
	store    Store
	payments payment.Coordinator
	notify   *notify.Dispatcher
}

func NewService(st Store, payments payment.Coordinator, dispatcher *notify.Dispatcher) *Service {
	return &Service{store: st, payments: payments, notify: dispatcher}
}

// CreatePaymentIntent authorizes a charge for a paid seat before the
// user commits to booking it. Free seats never reach the processor.
func (s *Service) CreatePaymentIntent(ctx context.Context, userID, gamePublicID string, seatNumber int) (*IntentResponse, error) {
	g, seat, err := s.lookupActiveSeat(ctx, gamePublicID, seatNumber)
	if err != nil {
		return nil, err
	}
	if err := s.requireApproved(ctx, g.ID, userID); err != nil {
		return nil, err
	}
	if seat.IsOccupied {
		return nil, ErrSeatOccupied
	}
	if !seat.IsPaid {
		return nil, fmt.Errorf("%w: seat %d is free, no payment needed", ErrInvalidRequest, seatNumber)
	}

	intent, err := s.payments.Authorize(ctx, seat.PriceCents, seat.ID, g.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	return &IntentResponse{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		AmountCents:  intent.AmountCents,
	}, nil
}

// BookSeat claims a seat for the user. For paid seats the previously
// authorized intent is confirmed and recorded first; a declined
// confirmation aborts the booking before any seat state changes. The
// claim itself is a single conditional update, so under concurrent
// bookings of the same seat exactly one caller succeeds and the rest
// get SeatOccupied.
func (s *Service) BookSeat(ctx context.Context, userID, gamePublicID string, seatNumber int, intentID string) (*BookingResult, error) {
	g, seat, err := s.lookupActiveSeat(ctx, gamePublicID, seatNumber)
	if err != nil {
		return nil, err
	}
	if err := s.requireApproved(ctx, g.ID, userID); err != nil {
		return nil, err
	}
	if seat.IsOccupied {
		return nil, ErrSeatOccupied
	}

	if seat.IsPaid {
		if intentID == "" {
			return nil, fmt.Errorf("%w: paid seat requires a payment intent", ErrInvalidRequest)
		}
		receipt, err := s.payments.Confirm(ctx, intentID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
		}
		if err := s.payments.Record(ctx, userID, receipt.AmountCents, receipt.IntentID, seat.ID, g.ID); err != nil {
			log.Error().Err(err).Str("intent_id", receipt.IntentID).Str("seat_id", seat.ID).
				Msg("recording confirmed payment failed")
			return nil, err
		}
	}

	claimed, err := s.store.OccupySeat(ctx, seat.ID, userID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrSeatOccupied
	}
	log.Info().Str("game_id", gamePublicID).Int("seat", seatNumber).Str("user_id", userID).
		Msg("seat booked")

	booked, err := s.store.GetSeatByID(ctx, seat.ID)
	if err != nil {
		booked = seat
	}

	result := &BookingResult{
		GameID:     gamePublicID,
		SeatID:     seat.ID,
		SeatNumber: seatNumber,
		SeatLabel:  games.SeatLabel(seatNumber),
		BookedAt:   booked.BookedAt,
	}

	remaining, err := s.store.CountUnoccupiedSeats(ctx, g.ID)
	if err != nil {
		log.Warn().Err(err).Str("game_id", gamePublicID).Msg("counting open seats after booking failed")
		return result, nil
	}
	if remaining == 0 {
		ended, err := s.store.MarkGameEnded(ctx, g.ID)
		if err != nil {
			log.Warn().Err(err).Str("game_id", gamePublicID).Msg("auto-ending full game failed")
			return result, nil
		}
		if ended {
			result.GameEnded = true
			log.Info().Str("game_id", gamePublicID).Msg("game ended, all seats booked")
		}
	}
	return result, nil
}

// DeclareWinners marks a batch of seats as winners on an ended game.
// The batch is all-or-nothing: one ineligible seat fails the whole
// declaration and no seat is marked.
func (s *Service) DeclareWinners(ctx context.Context, gamePublicID string, seatIDs []string) (*WinnersResult, error) {
	if len(seatIDs) == 0 {
		return nil, fmt.Errorf("%w: no seats given", ErrInvalidRequest)
	}
	g, err := s.getGame(ctx, gamePublicID)
	if err != nil {
		return nil, err
	}
	if g.Status != store.GameStatusEnded {
		return nil, ErrGameNotEnded
	}

	seats, err := s.store.GetSeatsByIDs(ctx, seatIDs)
	if err != nil {
		return nil, err
	}
	if len(seats) != len(seatIDs) {
		return nil, fmt.Errorf("%w: %d of %d seats not found", ErrSeatNotFound, len(seatIDs)-len(seats), len(seatIDs))
	}
	for _, st := range seats {
		if st.GameID != g.ID {
			return nil, fmt.Errorf("%w: seat %s belongs to another game", ErrSeatNotEligible, st.ID)
		}
		if !st.IsOccupied {
			return nil, fmt.Errorf("%w: seat %d is unoccupied", ErrSeatNotEligible, st.SeatNumber)
		}
		if st.IsWinner {
			return nil, fmt.Errorf("%w: seat %d", ErrWinnerAlreadyDeclared, st.SeatNumber)
		}
	}

	if err := s.store.MarkSeatsWinners(ctx, seatIDs); err != nil {
		// A concurrent declaration can win the race between the
		// eligibility read and the batch update.
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrWinnerAlreadyDeclared
		}
		return nil, err
	}
	log.Info().Str("game_id", gamePublicID).Int("winners", len(seatIDs)).Msg("winners declared")

	s.notifyWinners(ctx, g, seats)
	return &WinnersResult{GameID: gamePublicID, SeatIDs: seatIDs}, nil
}

func (s *Service) notifyWinners(ctx context.Context, g *store.Game, seats []store.Seat) {
	for _, st := range seats {
		if st.UserID == nil {
			continue
		}
		u, err := s.store.GetUserByID(ctx, *st.UserID)
		if err != nil {
			log.Warn().Err(err).Str("user_id", *st.UserID).Msg("looking up winner for notification failed")
			continue
		}
		gift := st.Gift
		if gift == "" {
			gift = g.UniversalGift
		}
		s.notify.Enqueue([]string{u.Email}, "You won!",
			fmt.Sprintf("Your seat %s in %q was declared a winner. Prize: %s.",
				games.SeatLabel(st.SeatNumber), g.Name, gift))
	}
}

func (s *Service) lookupActiveSeat(ctx context.Context, gamePublicID string, seatNumber int) (*store.Game, *store.Seat, error) {
	g, err := s.getGame(ctx, gamePublicID)
	if err != nil {
		return nil, nil, err
	}
	if g.Status != store.GameStatusActive {
		return nil, nil, ErrGameEnded
	}
	seat, err := s.store.GetSeatByNumber(ctx, g.ID, seatNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrSeatNotFound
		}
		return nil, nil, err
	}
	return g, seat, nil
}

func (s *Service) requireApproved(ctx context.Context, gameID, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: missing user", ErrInvalidRequest)
	}
	ok, err := s.store.IsUserApproved(ctx, gameID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotApproved
	}
	return nil
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
