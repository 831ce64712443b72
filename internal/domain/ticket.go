package domain

import "time"

// Payment statuses mirror the postgres enum values.
const (
	PaymentStatusPending   = "pendiente"
	PaymentStatusPaid      = "pagado"
	PaymentStatusCancelled = "cancelado"
)

func IsValidPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusCancelled:
		return true
	}

	return false
}

type Ticket struct {
	ID              uint       `json:"id"`
	RaffleID        uint       `json:"raffleId"`
	Number          int        `json:"number"`
	Cedula          string     `json:"cedula"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	ReservationDate time.Time  `json:"reservationDate"`
	PaymentDate     *time.Time `json:"paymentDate"`
	PaymentStatus   string     `json:"paymentStatus"`
}
