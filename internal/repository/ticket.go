package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rifas-online/rifas-api/internal/domain"
	"github.com/rifas-online/rifas-api/internal/repository/dao"
)

var (
	ErrTicketNotFound    = dao.ErrTicketNotFound
	ErrTicketNumberTaken = dao.ErrTicketNumberTaken
)

type TicketDAO interface {
	Insert(ctx context.Context, ticket dao.Ticket) (dao.Ticket, error)
	Delete(ctx context.Context, id uint) (bool, error)
	FindByID(ctx context.Context, id uint) (dao.Ticket, error)
	FindByRaffleID(ctx context.Context, raffleID uint) ([]dao.Ticket, error)
	FindAll(ctx context.Context) ([]dao.Ticket, error)
	FindNumbersByRaffleID(ctx context.Context, raffleID uint) ([]int, error)
	UpdatePaymentStatus(ctx context.Context, id uint, status string, paymentDate *time.Time) (dao.Ticket, error)
}

type TicketRepository struct {
	dao TicketDAO
}

func NewTicketRepository(dao TicketDAO) *TicketRepository {
	return &TicketRepository{
		dao: dao,
	}
}

func (r *TicketRepository) Create(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	created, err := r.dao.Insert(ctx, dao.Ticket{
		RaffleID:        ticket.RaffleID,
		Number:          ticket.Number,
		Cedula:          ticket.Cedula,
		Name:            ticket.Name,
		Email:           ticket.Email,
		Phone:           ticket.Phone,
		ReservationDate: time.Now(),
		PaymentStatus:   ticket.PaymentStatus,
	})
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *TicketRepository) Delete(ctx context.Context, id uint) (bool, error) {
	deleted, err := r.dao.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return deleted, nil
}

func (r *TicketRepository) FindByID(ctx context.Context, id uint) (domain.Ticket, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TicketRepository) FindByRaffleID(ctx context.Context, raffleID uint) ([]domain.Ticket, error) {
	found, err := r.dao.FindByRaffleID(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByRaffleID -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *TicketRepository) FindAll(ctx context.Context) ([]domain.Ticket, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *TicketRepository) FindNumbersByRaffleID(ctx context.Context, raffleID uint) ([]int, error) {
	numbers, err := r.dao.FindNumbersByRaffleID(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindNumbersByRaffleID -> %w", err)
	}

	return numbers, nil
}

func (r *TicketRepository) UpdatePaymentStatus(ctx context.Context, id uint, status string, paymentDate *time.Time) (domain.Ticket, error) {
	updated, err := r.dao.UpdatePaymentStatus(ctx, id, status, paymentDate)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.UpdatePaymentStatus -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *TicketRepository) daoToDomain(ticket dao.Ticket) domain.Ticket {
	return domain.Ticket{
		ID:              ticket.ID,
		RaffleID:        ticket.RaffleID,
		Number:          ticket.Number,
		Cedula:          ticket.Cedula,
		Name:            ticket.Name,
		Email:           ticket.Email,
		Phone:           ticket.Phone,
		ReservationDate: ticket.ReservationDate,
		PaymentDate:     ticket.PaymentDate,
		PaymentStatus:   ticket.PaymentStatus,
	}
}

func (r *TicketRepository) daoToDomainSlice(found []dao.Ticket) []domain.Ticket {
	tickets := make([]domain.Ticket, 0, len(found))
	for _, ticket := range found {
		tickets = append(tickets, r.daoToDomain(ticket))
	}

	return tickets
}
