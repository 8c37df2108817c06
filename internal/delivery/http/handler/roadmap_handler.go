package handler

import (
	"errors"
	"fmt"

	"careerpath/internal/delivery/http/dto"
	"careerpath/internal/delivery/http/middleware"
	"careerpath/internal/domain/roadmap"
	"careerpath/internal/pkg/response"
	"careerpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const (
	msgMissingUserData  = "Missing required user data"
	msgGenerationFailed = "Failed to generate roadmap"
)

type RoadmapHandler struct {
	uc usecase.RoadmapUsecase
}

func NewRoadmapHandler(uc usecase.RoadmapUsecase) *RoadmapHandler {
	return &RoadmapHandler{uc: uc}
}

func (h *RoadmapHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Generate)
	r.Get("/experience-levels", h.ExperienceLevels)
}

func (h *RoadmapHandler) Generate(c fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = middleware.NewAppError(fiber.StatusInternalServerError, msgGenerationFailed, fmt.Sprint(r), fmt.Errorf("panic: %v", r))
		}
	}()

	var req dto.RoadmapRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, msgMissingUserData, nil, err)
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, msgMissingUserData, nil, err)
	}

	doc, err := h.uc.Generate(c.Context(), usecase.GenerateRoadmapInput{
		UserID:          req.PersonalInfo.UserID,
		TargetRole:      req.TargetRole(),
		ExperienceLevel: req.CareerGoals.ExperienceLevel,
		Aspirations:     req.CareerGoals.DetailedAspiration,
		Objectives:      req.CareerGoals.Objectives,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, msgMissingUserData, nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, msgGenerationFailed, err.Error(), err)
	}

	return response.JSON(c, fiber.StatusOK, dto.NewRoadmapResponse(doc))
}

func (h *RoadmapHandler) ExperienceLevels(c fiber.Ctx) error {
	return response.JSON(c, fiber.StatusOK, dto.ExperienceLevelsResponse{Levels: roadmap.Levels()})
}
