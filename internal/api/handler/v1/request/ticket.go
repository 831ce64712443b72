package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/rifas-online/rifas-api/internal/domain"
)

type ReserveTicketRequest struct {
	RaffleID uint   `json:"raffleId"`
	Number   int    `json:"number"`
	Cedula   string `json:"cedula"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`

	// Optional; defaults to pendiente.
	PaymentStatus string `json:"paymentStatus"`
}

func (req *ReserveTicketRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RaffleID, validation.Required),
		validation.Field(&req.Number, validation.Required, validation.Min(1)),
		validation.Field(&req.Cedula, validation.Required),
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Phone, validation.Required),
		validation.Field(&req.PaymentStatus, validation.In(
			domain.PaymentStatusPending,
			domain.PaymentStatusPaid,
			domain.PaymentStatusCancelled,
		)),
	)
}

func (req *ReserveTicketRequest) ToDomain() domain.Ticket {
	return domain.Ticket{
		RaffleID:      req.RaffleID,
		Number:        req.Number,
		Cedula:        req.Cedula,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		PaymentStatus: req.PaymentStatus,
	}
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

func (req *UpdatePaymentStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PaymentStatus, validation.Required, validation.In(
			domain.PaymentStatusPending,
			domain.PaymentStatusPaid,
			domain.PaymentStatusCancelled,
		)),
	)
}
