package dto

import (
	"time"

	"github.com/spec-kit/case-service/internal/domain"
)

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordRequest payload for password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	ExpiresIn int64     `json:"expires_in"`
}

// NewAuthResponse maps an issued token; ExpiresIn is in seconds from now.
func NewAuthResponse(t domain.Token, now time.Time) AuthResponse {
	return AuthResponse{
		Token:     t.Value,
		TokenType: "Bearer",
		ExpiresAt: t.ExpiresAt,
		ExpiresIn: int64(t.ExpiresIn(now) / time.Second),
	}
}

// UserRequest creates or updates an operator account.
type UserRequest struct {
	Username   string      `json:"username"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Password   string      `json:"password"`
	Role       domain.Role `json:"role"`
	HospitalID *string     `json:"hospital_id"`
	Active     *bool       `json:"active"`
}

// UserResponse renders an account without its credentials.
type UserResponse struct {
	ID         string      `json:"id"`
	Username   string      `json:"username"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	HospitalID *string     `json:"hospital_id,omitempty"`
	Active     bool        `json:"active"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// NewUserResponse maps a user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		HospitalID: u.HospitalID,
		Active:     u.Active,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// HospitalRequest creates or updates a hospital.
type HospitalRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Province string `json:"province"`
	Active   *bool  `json:"active"`
}

// HospitalResponse renders a hospital.
type HospitalResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Province  string    `json:"province"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewHospitalResponse maps a hospital.
func NewHospitalResponse(h *domain.Hospital) HospitalResponse {
	return HospitalResponse{
		ID:        h.ID,
		Code:      h.Code,
		Name:      h.Name,
		Province:  h.Province,
		Active:    h.Active,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}
