package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/case-service/internal/api/dto"
	"github.com/spec-kit/case-service/internal/service"
)

// HospitalsHandler manages hospital reference data.
type HospitalsHandler struct {
	service *service.HospitalService
}

// NewHospitalsHandler constructs handler.
func NewHospitalsHandler(hospitalService *service.HospitalService) *HospitalsHandler {
	return &HospitalsHandler{service: hospitalService}
}

// List GET /hospitals.
func (h *HospitalsHandler) List(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	hospitals, err := h.service.List(c.UserContext(), user, c.QueryBool("include_inactive", false))
	if err != nil {
		return err
	}
	items := make([]dto.HospitalResponse, 0, len(hospitals))
	for i := range hospitals {
		items = append(items, dto.NewHospitalResponse(&hospitals[i]))
	}
	return ok(c, items)
}

// Get GET /hospitals/:id.
func (h *HospitalsHandler) Get(c *fiber.Ctx) error {
	hospitalID, err := uuidParam(c, "id", "hospital")
	if err != nil {
		return err
	}
	hospital, err := h.service.Get(c.UserContext(), hospitalID)
	if err != nil {
		return err
	}
	return ok(c, dto.NewHospitalResponse(hospital))
}

// Create POST /hospitals.
func (h *HospitalsHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.HospitalRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	hospital, err := h.service.Create(c.UserContext(), user, hospitalInput(req))
	if err != nil {
		return err
	}
	return created(c, dto.NewHospitalResponse(hospital))
}

// Update PUT /hospitals/:id.
func (h *HospitalsHandler) Update(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	hospitalID, err := uuidParam(c, "id", "hospital")
	if err != nil {
		return err
	}
	var req dto.HospitalRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	hospital, err := h.service.Update(c.UserContext(), user, hospitalID, hospitalInput(req))
	if err != nil {
		return err
	}
	return ok(c, dto.NewHospitalResponse(hospital))
}

func hospitalInput(req dto.HospitalRequest) service.HospitalInput {
	return service.HospitalInput{
		Code:     req.Code,
		Name:     req.Name,
		Province: req.Province,
		Active:   req.Active,
	}
}
