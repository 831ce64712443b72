package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rifas-online/rifas-api/internal/domain"
	"github.com/rifas-online/rifas-api/internal/repository"
)

var (
	ErrRaffleNotFound        = repository.ErrRaffleNotFound
	ErrTotalTicketsBelowSold = errors.New("total tickets cannot be lower than the sold count")
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type RaffleRepository interface {
	Create(ctx context.Context, raffle domain.Raffle) (domain.Raffle, error)
	FindByID(ctx context.Context, id uint) (domain.Raffle, error)
	FindAll(ctx context.Context, page, limit int, filter string) ([]domain.Raffle, error)
	Count(ctx context.Context, filter string) (int64, error)
	Update(ctx context.Context, id uint, update domain.RaffleUpdate) (domain.Raffle, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type RaffleService struct {
	repo RaffleRepository
}

func NewRaffleService(repo RaffleRepository) *RaffleService {
	return &RaffleService{
		repo: repo,
	}
}

func (s *RaffleService) CreateRaffle(ctx context.Context, raffle domain.Raffle) (domain.Raffle, error) {
	if raffle.Status == "" {
		raffle.Status = domain.RaffleStatusActive
	}
	raffle.SoldTickets = 0

	created, err := s.repo.Create(ctx, raffle)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *RaffleService) GetRaffle(ctx context.Context, id uint) (domain.Raffle, error) {
	raffle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return raffle, nil
}

// ListRaffles returns one page of raffles, newest first. A filter equal
// to a status literal restricts by status, anything else matches the
// title as a substring. Out-of-range page/limit fall back to defaults.
func (s *RaffleService) ListRaffles(ctx context.Context, page, limit int, filter string) ([]domain.Raffle, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	raffles, err := s.repo.FindAll(ctx, page, limit, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return raffles, nil
}

func (s *RaffleService) CountRaffles(ctx context.Context, filter string) (int64, error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("s.repo.Count -> %w", err)
	}

	return total, nil
}

// UpdateRaffle applies a partial update. Shrinking totalTickets below
// the sold count is rejected; it would strand already sold numbers
// outside the raffle's range.
func (s *RaffleService) UpdateRaffle(ctx context.Context, id uint, update domain.RaffleUpdate) (domain.Raffle, error) {
	if update.TotalTickets != nil {
		raffle, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return domain.Raffle{}, fmt.Errorf("s.repo.FindByID -> %w", err)
		}
		if *update.TotalTickets < raffle.SoldTickets {
			return domain.Raffle{}, ErrTotalTicketsBelowSold
		}
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *RaffleService) DeleteRaffle(ctx context.Context, id uint) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return deleted, nil
}
