package games

import "time"

// SeatSpec is one seat in a game-creation request.
type SeatSpec struct {
	SeatNumber int    `json:"seat_number"`
	IsPaid     bool   `json:"is_paid"`
	PriceCents int64  `json:"price_cents"`
	Gift       string `json:"gift,omitempty"`
	GiftImage  string `json:"gift_image,omitempty"`
}

type CreateInput struct {
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	AdditionalInfo     string     `json:"additional_info"`
	Image              string     `json:"image"`
	UniversalGift      string     `json:"universal_gift"`
	UniversalGiftImage string     `json:"universal_gift_image"`
	TotalSeats         int        `json:"total_seats"`
	FreeSeats          int        `json:"free_seats"`
	PaidSeats          int        `json:"paid_seats"`
	Seats              []SeatSpec `json:"seats"`
}

type GameSummary struct {
	GameID      string    `json:"game_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Status      string    `json:"status"`
	TotalSeats  int       `json:"total_seats"`
	FreeSeats   int       `json:"free_seats"`
	PaidSeats   int       `json:"paid_seats"`
	CreatedAt   time.Time `json:"created_at"`
}

type SeatView struct {
	SeatID     string     `json:"seat_id"`
	SeatNumber int        `json:"seat_number"`
	SeatLabel  string     `json:"seat_label"`
	IsPaid     bool       `json:"is_paid"`
	PriceCents int64      `json:"price_cents"`
	IsOccupied bool       `json:"is_occupied"`
	IsWinner   bool       `json:"is_winner"`
	Gift       string     `json:"gift,omitempty"`
	GiftImage  string     `json:"gift_image,omitempty"`
	BookedAt   *time.Time `json:"booked_at,omitempty"`
	Username   string     `json:"username,omitempty"`
	Email      string     `json:"email,omitempty"`
}

type UserRef struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type RequestView struct {
	RequestID string    `json:"request_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type GameDetail struct {
	GameSummary
	UniversalGift      string        `json:"universal_gift,omitempty"`
	UniversalGiftImage string        `json:"universal_gift_image,omitempty"`
	AdditionalInfo     string        `json:"additional_info,omitempty"`
	Seats              []SeatView    `json:"seats"`
	ApprovedUsers      []UserRef     `json:"approved_users"`
	PendingRequests    []RequestView `json:"pending_requests"`
}

type SeatsResponse struct {
	GameStatus string     `json:"game_status"`
	Seats      []SeatView `json:"seats"`
}

// LeaderboardEntry is one occupied paid seat of an ended game.
type LeaderboardEntry struct {
	SeatID     string   `json:"seat_id"`
	SeatNumber int      `json:"seat_number"`
	SeatLabel  string   `json:"seat_label"`
	PriceCents int64    `json:"price_cents"`
	Gift       string   `json:"gift,omitempty"`
	GiftImage  string   `json:"gift_image,omitempty"`
	IsWinner   bool     `json:"is_winner"`
	User       *UserRef `json:"user"`
}
