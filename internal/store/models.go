package store

import "time"

const (
	GameStatusActive = "active"
	GameStatusEnded  = "ended"

	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"

	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Game struct {
	ID                 string
	PublicID           string
	Name               string
	Description        string
	AdditionalInfo     string
	Image              string
	UniversalGift      string
	UniversalGiftImage string
	Status             string
	TotalSeats         int
	FreeSeats          int
	PaidSeats          int
	CreatedBy          string
	CreatedAt          time.Time
}

type Seat struct {
	ID               string
	GameID           string
	SeatNumber       int
	IsPaid           bool
	PriceCents       int64
	IsOccupied       bool
	UserID           *string
	BookedAt         *time.Time
	IsWinner         bool
	DeclaredWinnerAt *time.Time
	Gift             string
	GiftImage        string
	CreatedAt        time.Time
}

// SeatWithUser carries the booking user's identity alongside the seat,
// for admin seat listings and leaderboards.
type SeatWithUser struct {
	Seat
	Username string
	Email    string
}

type JoinRequest struct {
	ID        string
	GameID    string
	UserID    string
	Status    string
	CreatedAt time.Time
	DecidedAt *time.Time
}

type JoinRequestWithUser struct {
	JoinRequest
	Username string
	Email    string
}

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

type Payment struct {
	ID          string
	UserID      string
	AmountCents int64
	IntentID    string
	SeatID      string
	GameID      string
	CreatedAt   time.Time
}
