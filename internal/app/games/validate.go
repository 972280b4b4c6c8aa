package games

import (
	"fmt"

	"raffle-server/internal/store"
)

// SeatLabel renders a seat number the way it appears everywhere outside
// the engine: zero-padded to at least three digits.
func SeatLabel(n int) string {
	return fmt.Sprintf("%03d", n)
}

// ValidateSeatSpecs enforces the game-creation invariants. Each failure
// mode has its own sentinel so the caller can report the exact reason:
//
//   - totalSeats must equal freeSeats + paidSeats
//   - exactly totalSeats specs must be supplied
//   - exactly paidSeats of them must be flagged paid
//   - paid seats need a non-negative price
//   - seat numbers must be positive, unique, and render to a label of at
//     least three characters
func ValidateSeatSpecs(totalSeats, freeSeats, paidSeats int, specs []SeatSpec) error {
	if totalSeats <= 0 || freeSeats < 0 || paidSeats < 0 {
		return fmt.Errorf("%w: seat counts must be non-negative and total positive", ErrSeatCountMismatch)
	}
	if totalSeats != freeSeats+paidSeats {
		return fmt.Errorf("%w: total %d != free %d + paid %d",
			ErrSeatCountMismatch, totalSeats, freeSeats, paidSeats)
	}
	if len(specs) != totalSeats {
		return fmt.Errorf("%w: got %d specs, want %d", ErrSpecCountMismatch, len(specs), totalSeats)
	}

	paidInSpecs := 0
	seen := make(map[int]bool, len(specs))
	for _, sp := range specs {
		if sp.SeatNumber <= 0 || len(SeatLabel(sp.SeatNumber)) < 3 {
			return fmt.Errorf("%w: seat number %d", ErrInvalidSeatNumber, sp.SeatNumber)
		}
		if seen[sp.SeatNumber] {
			return fmt.Errorf("%w: duplicate seat number %d", ErrInvalidSeatNumber, sp.SeatNumber)
		}
		seen[sp.SeatNumber] = true
		if sp.IsPaid {
			paidInSpecs++
			if sp.PriceCents < 0 {
				return fmt.Errorf("%w: seat %d has price %d", ErrInvalidSeatPrice, sp.SeatNumber, sp.PriceCents)
			}
		}
	}
	if paidInSpecs != paidSeats {
		return fmt.Errorf("%w: %d specs marked paid, want %d", ErrPaidCountMismatch, paidInSpecs, paidSeats)
	}
	return nil
}

// buildSeats converts validated specs into seat rows. The is_paid flag
// is authoritative: free seats always persist with price 0, and the
// seat-level gift falls back to the game's universal gift.
func buildSeats(in CreateInput) []store.Seat {
	seats := make([]store.Seat, 0, len(in.Seats))
	for _, sp := range in.Seats {
		price := int64(0)
		if sp.IsPaid {
			price = sp.PriceCents
		}
		gift := sp.Gift
		if gift == "" {
			gift = in.UniversalGift
		}
		giftImage := sp.GiftImage
		if giftImage == "" {
			giftImage = in.UniversalGiftImage
		}
		seats = append(seats, store.Seat{
			SeatNumber: sp.SeatNumber,
			IsPaid:     sp.IsPaid,
			PriceCents: price,
			Gift:       gift,
			GiftImage:  giftImage,
		})
	}
	return seats
}
