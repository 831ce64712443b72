package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrTicketNumberTaken = errors.New("ticket number already reserved")
)

type Ticket struct {
	ID uint `gorm:"primaryKey"`

	// The composite unique index is the authority on double-selling:
	// concurrent reservations of the same number race at the insert,
	// and the second writer gets a unique violation.
	RaffleID uint `gorm:"not null;uniqueIndex:idx_tickets_raffle_number"`
	Number   int  `gorm:"not null;uniqueIndex:idx_tickets_raffle_number"`

	Cedula string `gorm:"not null"`
	Name   string `gorm:"not null"`
	Email  string `gorm:"not null"`
	Phone  string `gorm:"not null"`

	ReservationDate time.Time `gorm:"not null"`
	PaymentDate     *time.Time
	PaymentStatus   string `gorm:"not null;default:pendiente"`
}

type TicketDAO struct {
	db *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{
		db: db,
	}
}

// Insert creates the ticket row and bumps the owning raffle's sold
// counter in one transaction, so a crash between the two writes cannot
// leave the counter out of sync with the ticket table.
func (d *TicketDAO) Insert(ctx context.Context, ticket Ticket) (Ticket, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(&ticket); result.Error != nil {
			return result.Error
		}

		result := tx.Model(&Raffle{}).
			Where("id = ?", ticket.RaffleID).
			Update("sold_tickets", gorm.Expr("sold_tickets + 1"))

		return result.Error
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) &&
			pgErr.Code == pgerrcode.UniqueViolation &&
			strings.Contains(pgErr.Message, "idx_tickets_raffle_number") {
			return Ticket{}, ErrTicketNumberTaken
		}

		return Ticket{}, err
	}

	return ticket, nil
}

// Delete removes the ticket and decrements the raffle's sold counter,
// floored at zero. Returns false when the ticket does not exist.
func (d *TicketDAO) Delete(ctx context.Context, id uint) (bool, error) {
	deleted := false

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ticket Ticket
		if result := tx.First(&ticket, id); result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return nil
			}

			return result.Error
		}

		if result := tx.Delete(&Ticket{}, id); result.Error != nil {
			return result.Error
		}

		result := tx.Model(&Raffle{}).
			Where("id = ? AND sold_tickets > 0", ticket.RaffleID).
			Update("sold_tickets", gorm.Expr("sold_tickets - 1"))
		if result.Error != nil {
			return result.Error
		}

		deleted = true

		return nil
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}

func (d *TicketDAO) FindByID(ctx context.Context, id uint) (Ticket, error) {
	var ticket Ticket

	result := d.db.WithContext(ctx).First(&ticket, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) FindByRaffleID(ctx context.Context, raffleID uint) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).
		Where("raffle_id = ?", raffleID).
		Order("number ASC").
		Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

func (d *TicketDAO) FindAll(ctx context.Context) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).Order("reservation_date DESC").Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

// FindNumbersByRaffleID returns the sold numbers of a raffle in
// ascending order.
func (d *TicketDAO) FindNumbersByRaffleID(ctx context.Context, raffleID uint) ([]int, error) {
	var numbers []int

	result := d.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("raffle_id = ?", raffleID).
		Order("number ASC").
		Pluck("number", &numbers)
	if result.Error != nil {
		return nil, result.Error
	}

	return numbers, nil
}

func (d *TicketDAO) UpdatePaymentStatus(ctx context.Context, id uint, status string, paymentDate *time.Time) (Ticket, error) {
	fields := map[string]interface{}{
		"payment_status": status,
	}
	if paymentDate != nil {
		fields["payment_date"] = paymentDate
	}

	result := d.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return Ticket{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Ticket{}, ErrTicketNotFound
	}

	return d.FindByID(ctx, id)
}
