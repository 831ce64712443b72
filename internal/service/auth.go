package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/rifas-online/rifas-api/internal/domain"
	"github.com/rifas-online/rifas-api/internal/repository"
)

var (
	// ErrWrongCredentials covers both an unknown username and a wrong
	// password, so callers cannot enumerate usernames.
	ErrWrongCredentials = errors.New("invalid username or password")
	ErrAdminExists      = errors.New("an admin is already configured")
)

// Default credentials created by the one-time setup. Meant to be
// changed right after the first login.
const (
	setupUsername = "admin"
	setupPassword = "admin123"
	setupName     = "Administrador"
)

type AdminRepository interface {
	Create(ctx context.Context, admin domain.Admin) (domain.Admin, error)
	FindByID(ctx context.Context, id uint) (domain.Admin, error)
	FindByUsername(ctx context.Context, username string) (domain.Admin, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	Count(ctx context.Context) (int64, error)
}

type AuthService struct {
	repo AdminRepository
}

func NewAuthService(repo AdminRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Admin, error) {
	admin, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return domain.Admin{}, ErrWrongCredentials
		}

		return domain.Admin{}, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return domain.Admin{}, ErrWrongCredentials
	}

	return admin, nil
}

// ChangePassword rehashes and stores a new password for the admin,
// after verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, adminID uint, currentPassword, newPassword string) error {
	admin, err := s.repo.FindByID(ctx, adminID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(currentPassword)); err != nil {
		return ErrWrongCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	if err = s.repo.UpdatePassword(ctx, adminID, string(hash)); err != nil {
		return fmt.Errorf("s.repo.UpdatePassword -> %w", err)
	}

	return nil
}

// Setup creates the default admin account. Allowed only while no admin
// row exists yet.
func (s *AuthService) Setup(ctx context.Context) (domain.Admin, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("s.repo.Count -> %w", err)
	}
	if total > 0 {
		return domain.Admin{}, ErrAdminExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(setupPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.Admin{
		Username: setupUsername,
		Password: string(hash),
		Name:     setupName,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAdminUsernameExists) {
			return domain.Admin{}, ErrAdminExists
		}

		return domain.Admin{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}
