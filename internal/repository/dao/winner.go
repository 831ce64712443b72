package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrWinnerNotFound = errors.New("winner not found")

type Winner struct {
	ID uint `gorm:"primaryKey"`

	RaffleID     uint   `gorm:"not null;index"`
	WinnerName   string `gorm:"not null"`
	TicketNumber int    `gorm:"not null"`
	Prize        string `gorm:"not null"`

	AnnouncedDate time.Time `gorm:"not null"`
	Claimed       bool      `gorm:"not null;default:false"`
}

type WinnerDAO struct {
	db *gorm.DB
}

func NewWinnerDAO(db *gorm.DB) *WinnerDAO {
	return &WinnerDAO{
		db: db,
	}
}

func (d *WinnerDAO) Insert(ctx context.Context, winner Winner) (Winner, error) {
	result := d.db.WithContext(ctx).Create(&winner)
	if result.Error != nil {
		return Winner{}, result.Error
	}

	return winner, nil
}

func (d *WinnerDAO) FindByID(ctx context.Context, id uint) (Winner, error) {
	var winner Winner

	result := d.db.WithContext(ctx).First(&winner, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Winner{}, ErrWinnerNotFound
		}

		return Winner{}, result.Error
	}

	return winner, nil
}

func (d *WinnerDAO) FindAll(ctx context.Context) ([]Winner, error) {
	var winners []Winner

	result := d.db.WithContext(ctx).Order("announced_date DESC").Find(&winners)
	if result.Error != nil {
		return nil, result.Error
	}

	return winners, nil
}

func (d *WinnerDAO) FindByRaffleID(ctx context.Context, raffleID uint) ([]Winner, error) {
	var winners []Winner

	result := d.db.WithContext(ctx).
		Where("raffle_id = ?", raffleID).
		Order("announced_date DESC").
		Find(&winners)
	if result.Error != nil {
		return nil, result.Error
	}

	return winners, nil
}

func (d *WinnerDAO) MarkClaimed(ctx context.Context, id uint) (Winner, error) {
	result := d.db.WithContext(ctx).
		Model(&Winner{}).
		Where("id = ?", id).
		Update("claimed", true)
	if result.Error != nil {
		return Winner{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Winner{}, ErrWinnerNotFound
	}

	return d.FindByID(ctx, id)
}
