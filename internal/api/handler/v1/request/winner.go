package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/rifas-online/rifas-api/internal/domain"
)

type RegisterWinnerRequest struct {
	RaffleID     uint   `json:"raffleId"`
	WinnerName   string `json:"winnerName"`
	TicketNumber int    `json:"ticketNumber"`
	Prize        string `json:"prize"`
}

func (req *RegisterWinnerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RaffleID, validation.Required),
		validation.Field(&req.WinnerName, validation.Required),
		validation.Field(&req.TicketNumber, validation.Required, validation.Min(1)),
		validation.Field(&req.Prize, validation.Required),
	)
}

func (req *RegisterWinnerRequest) ToDomain() domain.Winner {
	return domain.Winner{
		RaffleID:     req.RaffleID,
		WinnerName:   req.WinnerName,
		TicketNumber: req.TicketNumber,
		Prize:        req.Prize,
	}
}
