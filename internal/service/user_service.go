package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/case-service/internal/auth"
	"github.com/spec-kit/case-service/internal/config"
	"github.com/spec-kit/case-service/internal/domain"
	"github.com/spec-kit/case-service/internal/repository"
	apperrors "github.com/spec-kit/case-service/pkg/util/errorutil"
)

// UserService manages operator accounts.
type UserService struct {
	users      repository.UserRepository
	hospitals  repository.HospitalRepository
	bcryptCost int
}

// UserInput carries account fields. Password is optional on update.
type UserInput struct {
	Username   string
	Name       string
	Email      string
	Password   string
	Role       domain.Role
	HospitalID *string
	Active     *bool
}

// NewUserService constructs the service.
func NewUserService(cfg config.Config, users repository.UserRepository, hospitals repository.HospitalRepository) *UserService {
	return &UserService{users: users, hospitals: hospitals, bcryptCost: cfg.Auth.BcryptCost}
}

func requireSuperAdmin(actor *domain.User) error {
	if actor == nil || actor.Role != domain.RoleSuperAdmin {
		return apperrors.NewForbidden("super admin role required")
	}
	return nil
}

// Create adds a new account.
func (s *UserService) Create(ctx context.Context, actor *domain.User, input UserInput) (*domain.User, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(input.Username)
	if username == "" || strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("username and name required", nil)
	}
	if !input.Role.Valid() {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": input.Role})
	}
	if err := passwordPolicyError(input.Password); err != nil {
		return nil, err
	}
	if err := s.checkHospital(ctx, input.HospitalID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewConflict("username already taken", map[string]any{"username": username})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Username:     username,
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		Role:         input.Role,
		HospitalID:   input.HospitalID,
		Active:       true,
	}
	if input.Active != nil {
		user.Active = *input.Active
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Update modifies an account.
func (s *UserService) Update(ctx context.Context, actor *domain.User, id string, input UserInput) (*domain.User, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "user")
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}
	if email := strings.TrimSpace(input.Email); email != "" {
		user.Email = email
	}
	if input.Role != "" {
		if !input.Role.Valid() {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": input.Role})
		}
		user.Role = input.Role
	}
	if input.HospitalID != nil {
		if err := s.checkHospital(ctx, input.HospitalID); err != nil {
			return nil, err
		}
		user.HospitalID = input.HospitalID
		if *input.HospitalID == "" {
			user.HospitalID = nil
		}
	}
	if input.Active != nil {
		if user.ID == actor.ID && !*input.Active {
			return nil, apperrors.NewValidationError("cannot deactivate yourself", nil)
		}
		user.Active = *input.Active
	}
	if input.Password != "" {
		if err := passwordPolicyError(input.Password); err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, notFoundOr(err, "user")
	}
	return user, nil
}

// List returns accounts, optionally filtered by role. Admins may list inspectors
// for assignment.
func (s *UserService) List(ctx context.Context, actor *domain.User, role *domain.Role) ([]domain.User, error) {
	if actor == nil || !actor.Role.IsAdmin() {
		return nil, apperrors.NewForbidden("admin role required")
	}
	if actor.Role != domain.RoleSuperAdmin {
		inspector := domain.RoleInspector
		role = &inspector
	}
	return s.users.List(ctx, role)
}

// Get returns one account.
func (s *UserService) Get(ctx context.Context, actor *domain.User, id string) (*domain.User, error) {
	if actor == nil || (actor.ID != id && actor.Role != domain.RoleSuperAdmin) {
		return nil, apperrors.NewForbidden("super admin role required")
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "user")
	}
	return user, nil
}

func (s *UserService) checkHospital(ctx context.Context, hospitalID *string) error {
	if hospitalID == nil || *hospitalID == "" {
		return nil
	}
	if _, err := s.hospitals.GetByID(ctx, *hospitalID); err != nil {
		return notFoundOr(err, "hospital")
	}
	return nil
}
