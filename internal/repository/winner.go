package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rifas-online/rifas-api/internal/domain"
	"github.com/rifas-online/rifas-api/internal/repository/dao"
)

var ErrWinnerNotFound = dao.ErrWinnerNotFound

type WinnerDAO interface {
	Insert(ctx context.Context, winner dao.Winner) (dao.Winner, error)
	FindByID(ctx context.Context, id uint) (dao.Winner, error)
	FindAll(ctx context.Context) ([]dao.Winner, error)
	FindByRaffleID(ctx context.Context, raffleID uint) ([]dao.Winner, error)
	MarkClaimed(ctx context.Context, id uint) (dao.Winner, error)
}

type WinnerRepository struct {
	dao WinnerDAO
}

func NewWinnerRepository(dao WinnerDAO) *WinnerRepository {
	return &WinnerRepository{
		dao: dao,
	}
}

func (r *WinnerRepository) Create(ctx context.Context, winner domain.Winner) (domain.Winner, error) {
	created, err := r.dao.Insert(ctx, dao.Winner{
		RaffleID:      winner.RaffleID,
		WinnerName:    winner.WinnerName,
		TicketNumber:  winner.TicketNumber,
		Prize:         winner.Prize,
		AnnouncedDate: time.Now(),
		Claimed:       false,
	})
	if err != nil {
		return domain.Winner{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *WinnerRepository) FindAll(ctx context.Context) ([]domain.Winner, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	winners := make([]domain.Winner, 0, len(found))
	for _, winner := range found {
		winners = append(winners, r.daoToDomain(winner))
	}

	return winners, nil
}

func (r *WinnerRepository) FindByRaffleID(ctx context.Context, raffleID uint) ([]domain.Winner, error) {
	found, err := r.dao.FindByRaffleID(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByRaffleID -> %w", err)
	}

	winners := make([]domain.Winner, 0, len(found))
	for _, winner := range found {
		winners = append(winners, r.daoToDomain(winner))
	}

	return winners, nil
}

func (r *WinnerRepository) MarkClaimed(ctx context.Context, id uint) (domain.Winner, error) {
	updated, err := r.dao.MarkClaimed(ctx, id)
	if err != nil {
		return domain.Winner{}, fmt.Errorf("r.dao.MarkClaimed -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *WinnerRepository) daoToDomain(winner dao.Winner) domain.Winner {
	return domain.Winner{
		ID:            winner.ID,
		RaffleID:      winner.RaffleID,
		WinnerName:    winner.WinnerName,
		TicketNumber:  winner.TicketNumber,
		Prize:         winner.Prize,
		AnnouncedDate: winner.AnnouncedDate,
		Claimed:       winner.Claimed,
	}
}
