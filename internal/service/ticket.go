package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rifas-online/rifas-api/internal/domain"
	"github.com/rifas-online/rifas-api/internal/repository"
)

var (
	ErrTicketNotFound         = repository.ErrTicketNotFound
	ErrTicketNumberTaken      = repository.ErrTicketNumberTaken
	ErrTicketNumberOutOfRange = errors.New("ticket number is outside the raffle's range")
	ErrInvalidPaymentStatus   = errors.New("invalid payment status")
)

type TicketRepository interface {
	Create(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)
	Delete(ctx context.Context, id uint) (bool, error)
	FindByID(ctx context.Context, id uint) (domain.Ticket, error)
	FindByRaffleID(ctx context.Context, raffleID uint) ([]domain.Ticket, error)
	FindAll(ctx context.Context) ([]domain.Ticket, error)
	FindNumbersByRaffleID(ctx context.Context, raffleID uint) ([]int, error)
	UpdatePaymentStatus(ctx context.Context, id uint, status string, paymentDate *time.Time) (domain.Ticket, error)
}

// TicketService is the allocation engine: the one place that answers
// whether a number of a raffle is still free and mutates that state.
type TicketService struct {
	repo       TicketRepository
	raffleRepo RaffleRepository
}

func NewTicketService(repo TicketRepository, raffleRepo RaffleRepository) *TicketService {
	return &TicketService{
		repo:       repo,
		raffleRepo: raffleRepo,
	}
}

// GetAvailableNumbers returns the ascending numbers of the raffle with
// no live ticket row. The result is a point-in-time snapshot; a number
// reported free can be taken before the caller reserves it, so callers
// must treat a Conflict on reservation as recoverable.
func (s *TicketService) GetAvailableNumbers(ctx context.Context, raffleID uint) ([]int, error) {
	raffle, err := s.raffleRepo.FindByID(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("s.raffleRepo.FindByID -> %w", err)
	}

	soldNumbers, err := s.repo.FindNumbersByRaffleID(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindNumbersByRaffleID -> %w", err)
	}

	sold := make(map[int]struct{}, len(soldNumbers))
	for _, n := range soldNumbers {
		sold[n] = struct{}{}
	}

	// Sized to the full range, not the difference; legacy rows can
	// hold more sold numbers than the current total.
	available := make([]int, 0, raffle.TotalTickets)
	for n := 1; n <= raffle.TotalTickets; n++ {
		if _, taken := sold[n]; !taken {
			available = append(available, n)
		}
	}

	return available, nil
}

// ReserveTicket creates a pending ticket for the holder. The store's
// unique index on (raffle, number) is the only double-sell authority;
// a concurrent reservation of the same number surfaces here as
// ErrTicketNumberTaken, with no partial writes.
func (s *TicketService) ReserveTicket(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	raffle, err := s.raffleRepo.FindByID(ctx, ticket.RaffleID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.raffleRepo.FindByID -> %w", err)
	}

	if ticket.Number < 1 || ticket.Number > raffle.TotalTickets {
		return domain.Ticket{}, ErrTicketNumberOutOfRange
	}

	if ticket.PaymentStatus == "" {
		ticket.PaymentStatus = domain.PaymentStatusPending
	}
	if !domain.IsValidPaymentStatus(ticket.PaymentStatus) {
		return domain.Ticket{}, ErrInvalidPaymentStatus
	}

	created, err := s.repo.Create(ctx, ticket)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// ReleaseTicket deletes the ticket and gives its number back to the
// pool. Returns false, not an error, when the ticket no longer exists;
// releasing twice never decrements the sold counter twice.
func (s *TicketService) ReleaseTicket(ctx context.Context, id uint) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return deleted, nil
}

// UpdatePaymentStatus moves the ticket to the given payment state.
// Entering "pagado" stamps the payment date; leaving it keeps any
// previously stamped date.
func (s *TicketService) UpdatePaymentStatus(ctx context.Context, id uint, status string) (domain.Ticket, error) {
	if !domain.IsValidPaymentStatus(status) {
		return domain.Ticket{}, ErrInvalidPaymentStatus
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	var paymentDate *time.Time
	if status == domain.PaymentStatusPaid {
		now := time.Now()
		paymentDate = &now
	}

	updated, err := s.repo.UpdatePaymentStatus(ctx, id, status, paymentDate)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.UpdatePaymentStatus -> %w", err)
	}

	return updated, nil
}

func (s *TicketService) GetTicket(ctx context.Context, id uint) (domain.Ticket, error) {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return ticket, nil
}

func (s *TicketService) ListTicketsForRaffle(ctx context.Context, raffleID uint) ([]domain.Ticket, error) {
	if _, err := s.raffleRepo.FindByID(ctx, raffleID); err != nil {
		return nil, fmt.Errorf("s.raffleRepo.FindByID -> %w", err)
	}

	tickets, err := s.repo.FindByRaffleID(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByRaffleID -> %w", err)
	}

	return tickets, nil
}

func (s *TicketService) ListAllTickets(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return tickets, nil
}
