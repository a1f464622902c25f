package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/writerpro-api/internal/dto"
	"github.com/noah-isme/writerpro-api/internal/service"
	"github.com/noah-isme/writerpro-api/internal/utils"
)

// ExerciseHandler exposes the writing exercise catalogue.
type ExerciseHandler struct {
	service service.ExerciseService
	logger  zerolog.Logger
}

// NewExerciseHandler constructs an exercise handler.
func NewExerciseHandler(service service.ExerciseService, logger zerolog.Logger) *ExerciseHandler {
	return &ExerciseHandler{
		service: service,
		logger:  logger.With().Str("component", "exercise_handler").Logger(),
	}
}

// Register wires the catalogue routes.
func (h *ExerciseHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:level/:exerciseIndex", h.get)
}

func (h *ExerciseHandler) list(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	var query dto.ExerciseQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	exercises, err := h.service.List(c.UserContext(), userID, query)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.OK(c, exercises, "exercises retrieved", fiber.Map{"total": len(exercises)})
}

func (h *ExerciseHandler) get(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}
	level, err := levelParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	index, err := parseIntParam(c, "exerciseIndex")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	found, err := h.service.Get(c.UserContext(), userID, level, index)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "exercise retrieved", found)
}

func (h *ExerciseHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrUnknownLevel):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrExerciseNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "exercise not found")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("exercise request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
