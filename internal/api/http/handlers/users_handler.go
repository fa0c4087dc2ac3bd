package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/case-service/internal/api/dto"
	"github.com/spec-kit/case-service/internal/domain"
	"github.com/spec-kit/case-service/internal/service"
	apperrors "github.com/spec-kit/case-service/pkg/util/errorutil"
)

// UsersHandler manages operator accounts.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// List GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var role *domain.Role
	if v := c.Query("role"); v != "" {
		r := domain.Role(v)
		if !r.Valid() {
			return apperrors.NewValidationError("invalid role", map[string]any{"role": v})
		}
		role = &r
	}
	users, err := h.service.List(c.UserContext(), user, role)
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return ok(c, items)
}

// Get GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	userID, err := uuidParam(c, "id", "user")
	if err != nil {
		return err
	}
	found, err := h.service.Get(c.UserContext(), user, userID)
	if err != nil {
		return err
	}
	return ok(c, dto.NewUserResponse(found))
}

// Create POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.UserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	createdUser, err := h.service.Create(c.UserContext(), user, userInput(req))
	if err != nil {
		return err
	}
	return created(c, dto.NewUserResponse(createdUser))
}

// Update PUT /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	userID, err := uuidParam(c, "id", "user")
	if err != nil {
		return err
	}
	var req dto.UserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	updated, err := h.service.Update(c.UserContext(), user, userID, userInput(req))
	if err != nil {
		return err
	}
	return ok(c, dto.NewUserResponse(updated))
}

func userInput(req dto.UserRequest) service.UserInput {
	return service.UserInput{
		Username:   req.Username,
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		HospitalID: req.HospitalID,
		Active:     req.Active,
	}
}
