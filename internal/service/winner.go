package service

import (
	"context"
	"fmt"

	"github.com/rifas-online/rifas-api/internal/domain"
	"github.com/rifas-online/rifas-api/internal/repository"
)

var ErrWinnerNotFound = repository.ErrWinnerNotFound

type WinnerRepository interface {
	Create(ctx context.Context, winner domain.Winner) (domain.Winner, error)
	FindAll(ctx context.Context) ([]domain.Winner, error)
	FindByRaffleID(ctx context.Context, raffleID uint) ([]domain.Winner, error)
	MarkClaimed(ctx context.Context, id uint) (domain.Winner, error)
}

type WinnerService struct {
	repo       WinnerRepository
	raffleRepo RaffleRepository
}

func NewWinnerService(repo WinnerRepository, raffleRepo RaffleRepository) *WinnerService {
	return &WinnerService{
		repo:       repo,
		raffleRepo: raffleRepo,
	}
}

// RegisterWinner records the drawn ticket/holder/prize tuple for a
// raffle. The ticket number is stored as a copy on purpose, so the
// record survives the underlying ticket being released later.
func (s *WinnerService) RegisterWinner(ctx context.Context, winner domain.Winner) (domain.Winner, error) {
	if _, err := s.raffleRepo.FindByID(ctx, winner.RaffleID); err != nil {
		return domain.Winner{}, fmt.Errorf("s.raffleRepo.FindByID -> %w", err)
	}

	created, err := s.repo.Create(ctx, winner)
	if err != nil {
		return domain.Winner{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *WinnerService) MarkClaimed(ctx context.Context, id uint) (domain.Winner, error) {
	updated, err := s.repo.MarkClaimed(ctx, id)
	if err != nil {
		return domain.Winner{}, fmt.Errorf("s.repo.MarkClaimed -> %w", err)
	}

	return updated, nil
}

func (s *WinnerService) ListWinners(ctx context.Context) ([]domain.Winner, error) {
	winners, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return winners, nil
}

func (s *WinnerService) ListWinnersForRaffle(ctx context.Context, raffleID uint) ([]domain.Winner, error) {
	if _, err := s.raffleRepo.FindByID(ctx, raffleID); err != nil {
		return nil, fmt.Errorf("s.raffleRepo.FindByID -> %w", err)
	}

	winners, err := s.repo.FindByRaffleID(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByRaffleID -> %w", err)
	}

	return winners, nil
}
