package domain

import "time"

// Raffle statuses as stored and exposed on the wire.
const (
	RaffleStatusActive   = "activa"
	RaffleStatusUpcoming = "proxima"
	RaffleStatusFinished = "finalizada"
)

func IsValidRaffleStatus(status string) bool {
	switch status {
	case RaffleStatusActive, RaffleStatusUpcoming, RaffleStatusFinished:
		return true
	}

	return false
}

type Raffle struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        int       `json:"price"`
	TotalTickets int       `json:"totalTickets"`
	SoldTickets  int       `json:"soldTickets"`
	ImageURL     string    `json:"imageUrl"`
	PrizeID      string    `json:"prizeId,omitempty"`
	EndDate      time.Time `json:"endDate"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RaffleUpdate carries a partial update. Nil fields are left untouched.
type RaffleUpdate struct {
	Title        *string
	Description  *string
	Price        *int
	TotalTickets *int
	ImageURL     *string
	PrizeID      *string
	EndDate      *time.Time
	Status       *string
}
