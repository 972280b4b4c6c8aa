package booking

import "time"

// IntentResponse is what the client needs to drive the processor's
// confirmation flow for a paid seat.
type IntentResponse struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret,omitempty"`
	AmountCents  int64  `json:"amount_cents"`
}

// BookingResult reports a successful seat claim.
type BookingResult struct {
	GameID     string     `json:"game_id"`
	SeatID     string     `json:"seat_id"`
	SeatNumber int        `json:"seat_number"`
	SeatLabel  string     `json:"seat_label"`
	GameEnded  bool       `json:"game_ended"`
	BookedAt   *time.Time `json:"booked_at,omitempty"`
}

// WinnersResult lists the seats marked winners by one declaration.
type WinnersResult struct {
	GameID  string   `json:"game_id"`
	SeatIDs []string `json:"seat_ids"`
}
