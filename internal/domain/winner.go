package domain

import "time"

// Winner keeps the ticket number as a plain copy rather than a reference
// to a ticket row, so released tickets do not invalidate the record.
type Winner struct {
	ID            uint      `json:"id"`
	RaffleID      uint      `json:"raffleId"`
	WinnerName    string    `json:"winnerName"`
	TicketNumber  int       `json:"ticketNumber"`
	Prize         string    `json:"prize"`
	AnnouncedDate time.Time `json:"announcedDate"`
	Claimed       bool      `json:"claimed"`
}
