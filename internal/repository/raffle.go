package repository

import (
	"context"
	"fmt"

	"github.com/rifas-online/rifas-api/internal/domain"
	"github.com/rifas-online/rifas-api/internal/repository/dao"
)

var ErrRaffleNotFound = dao.ErrRaffleNotFound

type RaffleDAO interface {
	Insert(ctx context.Context, raffle dao.Raffle) (dao.Raffle, error)
	FindByID(ctx context.Context, id uint) (dao.Raffle, error)
	FindAll(ctx context.Context, page, limit int, filter string) ([]dao.Raffle, error)
	Count(ctx context.Context, filter string) (int64, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (dao.Raffle, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type RaffleRepository struct {
	dao RaffleDAO
}

func NewRaffleRepository(dao RaffleDAO) *RaffleRepository {
	return &RaffleRepository{
		dao: dao,
	}
}

func (r *RaffleRepository) Create(ctx context.Context, raffle domain.Raffle) (domain.Raffle, error) {
	created, err := r.dao.Insert(ctx, dao.Raffle{
		Title:        raffle.Title,
		Description:  raffle.Description,
		Price:        raffle.Price,
		TotalTickets: raffle.TotalTickets,
		SoldTickets:  0,
		ImageURL:     raffle.ImageURL,
		PrizeID:      raffle.PrizeID,
		EndDate:      raffle.EndDate,
		Status:       raffle.Status,
	})
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *RaffleRepository) FindByID(ctx context.Context, id uint) (domain.Raffle, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RaffleRepository) FindAll(ctx context.Context, page, limit int, filter string) ([]domain.Raffle, error) {
	found, err := r.dao.FindAll(ctx, page, limit, filter)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	raffles := make([]domain.Raffle, 0, len(found))
	for _, raffle := range found {
		raffles = append(raffles, r.daoToDomain(raffle))
	}

	return raffles, nil
}

func (r *RaffleRepository) Count(ctx context.Context, filter string) (int64, error) {
	total, err := r.dao.Count(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return total, nil
}

func (r *RaffleRepository) Update(ctx context.Context, id uint, update domain.RaffleUpdate) (domain.Raffle, error) {
	fields := map[string]interface{}{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Price != nil {
		fields["price"] = *update.Price
	}
	if update.TotalTickets != nil {
		fields["total_tickets"] = *update.TotalTickets
	}
	if update.ImageURL != nil {
		fields["image_url"] = *update.ImageURL
	}
	if update.PrizeID != nil {
		fields["prize_id"] = *update.PrizeID
	}
	if update.EndDate != nil {
		fields["end_date"] = *update.EndDate
	}
	if update.Status != nil {
		fields["status"] = *update.Status
	}

	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}

	updated, err := r.dao.Update(ctx, id, fields)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *RaffleRepository) Delete(ctx context.Context, id uint) (bool, error) {
	deleted, err := r.dao.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return deleted, nil
}

func (r *RaffleRepository) daoToDomain(raffle dao.Raffle) domain.Raffle {
	return domain.Raffle{
		ID:           raffle.ID,
		Title:        raffle.Title,
		Description:  raffle.Description,
		Price:        raffle.Price,
		TotalTickets: raffle.TotalTickets,
		SoldTickets:  raffle.SoldTickets,
		ImageURL:     raffle.ImageURL,
		PrizeID:      raffle.PrizeID,
		EndDate:      raffle.EndDate,
		Status:       raffle.Status,
		CreatedAt:    raffle.CreatedAt,
	}
}
