package repository

import (
	"context"
	"fmt"

	"github.com/rifas-online/rifas-api/internal/domain"
	"github.com/rifas-online/rifas-api/internal/repository/dao"
)

var (
	ErrAdminNotFound       = dao.ErrAdminNotFound
	ErrAdminUsernameExists = dao.ErrAdminUsernameExists
)

type AdminDAO interface {
	Insert(ctx context.Context, admin dao.Admin) (dao.Admin, error)
	FindByID(ctx context.Context, id uint) (dao.Admin, error)
	FindByUsername(ctx context.Context, username string) (dao.Admin, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	Count(ctx context.Context) (int64, error)
}

type AdminRepository struct {
	dao AdminDAO
}

func NewAdminRepository(dao AdminDAO) *AdminRepository {
	return &AdminRepository{
		dao: dao,
	}
}

func (r *AdminRepository) Create(ctx context.Context, admin domain.Admin) (domain.Admin, error) {
	created, err := r.dao.Insert(ctx, dao.Admin{
		Username: admin.Username,
		Password: admin.Password,
		Name:     admin.Name,
	})
	if err != nil {
		return domain.Admin{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (domain.Admin, error) {
	found, err := r.dao.FindByUsername(ctx, username)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("r.dao.FindByUsername -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *AdminRepository) FindByID(ctx context.Context, id uint) (domain.Admin, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *AdminRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	if err := r.dao.UpdatePassword(ctx, id, passwordHash); err != nil {
		return fmt.Errorf("r.dao.UpdatePassword -> %w", err)
	}

	return nil
}

func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	total, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return total, nil
}

func (r *AdminRepository) daoToDomain(admin dao.Admin) domain.Admin {
	return domain.Admin{
		ID:        admin.ID,
		Username:  admin.Username,
		Password:  admin.Password,
		Name:      admin.Name,
		CreatedAt: admin.CreatedAt,
	}
}
