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
	ErrAdminNotFound       = errors.New("admin not found")
	ErrAdminUsernameExists = errors.New("admin username already exists")
)

type Admin struct {
	ID uint `gorm:"primaryKey"`

	Username string `gorm:"unique;not null"`
	Password string `gorm:"not null"`
	Name     string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type AdminDAO struct {
	db *gorm.DB
}

func NewAdminDAO(db *gorm.DB) *AdminDAO {
	return &AdminDAO{
		db: db,
	}
}

func (d *AdminDAO) Insert(ctx context.Context, admin Admin) (Admin, error) {
	result := d.db.WithContext(ctx).Create(&admin)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) &&
			pgErr.Code == pgerrcode.UniqueViolation &&
			strings.Contains(pgErr.Message, "uni_admins_username") {
			return Admin{}, ErrAdminUsernameExists
		}

		return Admin{}, result.Error
	}

	return admin, nil
}

func (d *AdminDAO) FindByID(ctx context.Context, id uint) (Admin, error) {
	var admin Admin

	result := d.db.WithContext(ctx).First(&admin, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Admin{}, ErrAdminNotFound
		}

		return Admin{}, result.Error
	}

	return admin, nil
}

func (d *AdminDAO) FindByUsername(ctx context.Context, username string) (Admin, error) {
	var admin Admin

	result := d.db.WithContext(ctx).First(&admin, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Admin{}, ErrAdminNotFound
		}

		return Admin{}, result.Error
	}

	return admin, nil
}

func (d *AdminDAO) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	result := d.db.WithContext(ctx).
		Model(&Admin{}).
		Where("id = ?", id).
		Update("password", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAdminNotFound
	}

	return nil
}

func (d *AdminDAO) Count(ctx context.Context) (int64, error) {
	var total int64

	result := d.db.WithContext(ctx).Model(&Admin{}).Count(&total)
	if result.Error != nil {
		return 0, result.Error
	}

	return total, nil
}
