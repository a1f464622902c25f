package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/writerpro-api/internal/dto"
	"github.com/noah-isme/writerpro-api/internal/placement"
	"github.com/noah-isme/writerpro-api/internal/service"
	"github.com/noah-isme/writerpro-api/internal/utils"
)

// PlacementHandler exposes the placement assessment endpoints.
type PlacementHandler struct {
	service   service.PlacementService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewPlacementHandler constructs a placement handler.
func NewPlacementHandler(service service.PlacementService, validator *validator.Validate, logger zerolog.Logger) *PlacementHandler {
	return &PlacementHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "placement_handler").Logger(),
	}
}

// Register wires the assessment routes.
func (h *PlacementHandler) Register(router fiber.Router) {
	router.Get("/questions", h.questions)
	router.Post("/submit", h.submit)
	router.Get("/latest", h.latest)
	router.Get("/history", h.history)
	router.Get("/status", h.status)
}

func (h *PlacementHandler) questions(c *fiber.Ctx) error {
	assessment, err := h.service.Questions(c.UserContext())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "assessment retrieved", assessment)
}

func (h *PlacementHandler) submit(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	var payload dto.PlacementSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return h.handleError(c, err)
	}

	result, err := h.service.Submit(c.UserContext(), userID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assessment submitted", result)
}

func (h *PlacementHandler) latest(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	attempt, err := h.service.Latest(c.UserContext(), userID)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "latest assessment result retrieved", attempt)
}

func (h *PlacementHandler) history(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	attempts, err := h.service.History(c.UserContext(), userID)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.OK(c, attempts, "assessment history retrieved", fiber.Map{"total": len(attempts)})
}

func (h *PlacementHandler) status(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	status, err := h.service.Status(c.UserContext(), userID)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "assessment status retrieved", status)
}

func (h *PlacementHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	case errors.Is(err, placement.ErrInvalidInput):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAssessmentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "assessment not found")
	case errors.Is(err, service.ErrPlacementNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "no assessment result found")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("assessment request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
