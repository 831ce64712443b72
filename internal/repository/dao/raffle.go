package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrRaffleNotFound = errors.New("raffle not found")

type Raffle struct {
	ID uint `gorm:"primaryKey"`

	Title        string `gorm:"not null"`
	Description  string `gorm:"not null"`
	Price        int    `gorm:"not null"`
	TotalTickets int    `gorm:"not null"`
	SoldTickets  int    `gorm:"not null;default:0"`
	ImageURL     string `gorm:"not null"`
	PrizeID      string
	EndDate      time.Time `gorm:"not null"`
	Status       string    `gorm:"not null;default:activa"`

	CreatedAt time.Time `gorm:"not null"`
}

type RaffleDAO struct {
	db *gorm.DB
}

func NewRaffleDAO(db *gorm.DB) *RaffleDAO {
	return &RaffleDAO{
		db: db,
	}
}

func (d *RaffleDAO) Insert(ctx context.Context, raffle Raffle) (Raffle, error) {
	result := d.db.WithContext(ctx).Create(&raffle)
	if result.Error != nil {
		return Raffle{}, result.Error
	}

	return raffle, nil
}

func (d *RaffleDAO) FindByID(ctx context.Context, id uint) (Raffle, error) {
	var raffle Raffle

	result := d.db.WithContext(ctx).First(&raffle, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Raffle{}, ErrRaffleNotFound
		}

		return Raffle{}, result.Error
	}

	return raffle, nil
}

// withFilter narrows a raffle query: a known status literal matches
// by status, anything else matches as a title substring.
func withFilter(query *gorm.DB, filter string) *gorm.DB {
	if filter == "" {
		return query
	}

	switch filter {
	case "activa", "proxima", "finalizada":
		return query.Where("status = ?", filter)
	default:
		return query.Where("title LIKE ?", "%"+filter+"%")
	}
}

func (d *RaffleDAO) FindAll(ctx context.Context, page, limit int, filter string) ([]Raffle, error) {
	var raffles []Raffle

	offset := (page - 1) * limit
	query := withFilter(d.db.WithContext(ctx), filter).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset)

	if result := query.Find(&raffles); result.Error != nil {
		return nil, result.Error
	}

	return raffles, nil
}

func (d *RaffleDAO) Count(ctx context.Context, filter string) (int64, error) {
	var total int64

	query := withFilter(d.db.WithContext(ctx).Model(&Raffle{}), filter)
	if result := query.Count(&total); result.Error != nil {
		return 0, result.Error
	}

	return total, nil
}

func (d *RaffleDAO) Update(ctx context.Context, id uint, fields map[string]interface{}) (Raffle, error) {
	result := d.db.WithContext(ctx).
		Model(&Raffle{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return Raffle{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Raffle{}, ErrRaffleNotFound
	}

	return d.FindByID(ctx, id)
}

// Delete removes the raffle together with its tickets, so a hard delete
// can never leave orphaned ticket rows behind.
func (d *RaffleDAO) Delete(ctx context.Context, id uint) (bool, error) {
	deleted := false

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&Raffle{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if result := tx.Where("raffle_id = ?", id).Delete(&Ticket{}); result.Error != nil {
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

// FinishEnded flips active raffles whose end date has passed to
// finalizada. Used by the status sweeper.
func (d *RaffleDAO) FinishEnded(ctx context.Context, now time.Time) (int64, error) {
	result := d.db.WithContext(ctx).
		Model(&Raffle{}).
		Where("status = ? AND end_date < ?", "activa", now).
		Update("status", "finalizada")
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
