package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/rifas-online/rifas-api/internal/domain"
)

type CreateRaffleRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        int       `json:"price"`
	TotalTickets int       `json:"totalTickets"`
	ImageURL     string    `json:"imageUrl"`
	PrizeID      string    `json:"prizeId"`
	EndDate      time.Time `json:"endDate"`
	Status       string    `json:"status"`
}

func (req *CreateRaffleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required),
		validation.Field(&req.Description, validation.Required),
		validation.Field(&req.Price, validation.Required, validation.Min(1)),
		validation.Field(&req.TotalTickets, validation.Required, validation.Min(1)),
		validation.Field(&req.ImageURL, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
		validation.Field(&req.Status, validation.In(
			domain.RaffleStatusActive,
			domain.RaffleStatusUpcoming,
			domain.RaffleStatusFinished,
		)),
	)
}

func (req *CreateRaffleRequest) ToDomain() domain.Raffle {
	return domain.Raffle{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		TotalTickets: req.TotalTickets,
		ImageURL:     req.ImageURL,
		PrizeID:      req.PrizeID,
		EndDate:      req.EndDate,
		Status:       req.Status,
	}
}

// UpdateRaffleRequest is a partial update: absent fields stay nil and
// are left untouched.
type UpdateRaffleRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Price        *int       `json:"price"`
	TotalTickets *int       `json:"totalTickets"`
	ImageURL     *string    `json:"imageUrl"`
	PrizeID      *string    `json:"prizeId"`
	EndDate      *time.Time `json:"endDate"`
	Status       *string    `json:"status"`
}

func (req *UpdateRaffleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.NilOrNotEmpty),
		validation.Field(&req.Description, validation.NilOrNotEmpty),
		validation.Field(&req.Price, validation.Min(1)),
		validation.Field(&req.TotalTickets, validation.Min(1)),
		validation.Field(&req.ImageURL, validation.NilOrNotEmpty),
		validation.Field(&req.Status, validation.In(
			domain.RaffleStatusActive,
			domain.RaffleStatusUpcoming,
			domain.RaffleStatusFinished,
		)),
	)
}

func (req *UpdateRaffleRequest) ToDomain() domain.RaffleUpdate {
	return domain.RaffleUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		TotalTickets: req.TotalTickets,
		ImageURL:     req.ImageURL,
		PrizeID:      req.PrizeID,
		EndDate:      req.EndDate,
		Status:       req.Status,
	}
}
