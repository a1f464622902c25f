package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/writerpro-api/internal/completion"
	"github.com/noah-isme/writerpro-api/internal/dto"
	"github.com/noah-isme/writerpro-api/internal/service"
	"github.com/noah-isme/writerpro-api/internal/utils"
)

// CompletionHandler exposes exercise completion tracking.
type CompletionHandler struct {
	service   service.CompletionService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCompletionHandler constructs a completion handler.
func NewCompletionHandler(service service.CompletionService, validator *validator.Validate, logger zerolog.Logger) *CompletionHandler {
	return &CompletionHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "completion_handler").Logger(),
	}
}

// Register wires the completion routes.
func (h *CompletionHandler) Register(router fiber.Router) {
	router.Get("/:level", h.list)
	router.Post("/:level/:exerciseIndex", h.mark)
	router.Get("/:level/:exerciseIndex/status", h.status)
}

func (h *CompletionHandler) list(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}
	level, err := levelParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	completed, err := h.service.List(c.UserContext(), userID, level)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "completed exercises retrieved", completed)
}

func (h *CompletionHandler) mark(c *fiber.Ctx) error {
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

	var payload dto.CompletionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return h.handleError(c, err)
	}

	result, err := h.service.MarkCompleted(c.UserContext(), userID, level, index, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	if result.Status == string(completion.AlreadyCompleted) {
		return utils.Fail(c, fiber.StatusConflict, "exercise already completed", result)
	}
	return utils.SendSuccess(c, "exercise marked as completed", result)
}

func (h *CompletionHandler) status(c *fiber.Ctx) error {
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

	status, err := h.service.Status(c.UserContext(), userID, level, index)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "completion status retrieved", status)
}

func (h *CompletionHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	case errors.Is(err, completion.ErrInvalidInput):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAnalysisNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "analysis not found")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("completion request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
