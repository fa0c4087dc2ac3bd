package service

import (
	"context"
	"strings"

	"github.com/spec-kit/case-service/internal/domain"
	"github.com/spec-kit/case-service/internal/repository"
	apperrors "github.com/spec-kit/case-service/pkg/util/errorutil"
)

// HospitalService manages hospital reference data.
type HospitalService struct {
	hospitals repository.HospitalRepository
}

// HospitalInput carries hospital fields.
type HospitalInput struct {
	Code     string
	Name     string
	Province string
	Active   *bool
}

// NewHospitalService constructs the service.
func NewHospitalService(hospitals repository.HospitalRepository) *HospitalService {
	return &HospitalService{hospitals: hospitals}
}

// Create registers a hospital.
func (s *HospitalService) Create(ctx context.Context, actor *domain.User, input HospitalInput) (*domain.Hospital, error) {
	if actor == nil || !actor.Role.IsAdmin() {
		return nil, apperrors.NewForbidden("admin role required")
	}
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	name := strings.TrimSpace(input.Name)
	if code == "" || name == "" {
		return nil, apperrors.NewValidationError("code and name required", nil)
	}
	h := &domain.Hospital{
		Code:     code,
		Name:     name,
		Province: strings.TrimSpace(input.Province),
		Active:   true,
	}
	if input.Active != nil {
		h.Active = *input.Active
	}
	if err := s.hospitals.Create(ctx, h); err != nil {
		return nil, apperrors.MapError(err)
	}
	return h, nil
}

// Update modifies a hospital.
func (s *HospitalService) Update(ctx context.Context, actor *domain.User, id string, input HospitalInput) (*domain.Hospital, error) {
	if actor == nil || !actor.Role.IsAdmin() {
		return nil, apperrors.NewForbidden("admin role required")
	}
	h, err := s.hospitals.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "hospital")
	}
	if code := strings.ToUpper(strings.TrimSpace(input.Code)); code != "" {
		h.Code = code
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		h.Name = name
	}
	if province := strings.TrimSpace(input.Province); province != "" {
		h.Province = province
	}
	if input.Active != nil {
		h.Active = *input.Active
	}
	if err := s.hospitals.Update(ctx, h); err != nil {
		return nil, notFoundOr(err, "hospital")
	}
	return h, nil
}

// List returns hospitals. Non-admins only see active ones.
func (s *HospitalService) List(ctx context.Context, actor *domain.User, includeInactive bool) ([]domain.Hospital, error) {
	activeOnly := !includeInactive || actor == nil || !actor.Role.IsAdmin()
	return s.hospitals.List(ctx, activeOnly)
}

// Get returns one hospital.
func (s *HospitalService) Get(ctx context.Context, id string) (*domain.Hospital, error) {
	h, err := s.hospitals.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "hospital")
	}
	return h, nil
}
