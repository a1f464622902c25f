package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/writerpro-api/internal/dto"
	"github.com/noah-isme/writerpro-api/internal/scoring"
	"github.com/noah-isme/writerpro-api/internal/service"
	"github.com/noah-isme/writerpro-api/internal/utils"
)

// AnalysisHandler exposes writing analysis endpoints.
type AnalysisHandler struct {
	service   service.AnalysisService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAnalysisHandler constructs an analysis handler.
func NewAnalysisHandler(service service.AnalysisService, validator *validator.Validate, logger zerolog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "analysis_handler").Logger(),
	}
}

// Register wires the analysis routes. guards run before the analyze endpoint,
// e.g. a rate limiter.
func (h *AnalysisHandler) Register(router fiber.Router, guards ...fiber.Handler) {
	analyze := append(append([]fiber.Handler{}, guards...), h.analyze)
	router.Post("/analyze", analyze...)
	router.Get("/history", h.history)
	router.Get("/:id", h.get)
	router.Delete("/:id", h.delete)
}

func (h *AnalysisHandler) analyze(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	var payload dto.AnalyzeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return h.handleError(c, err)
	}

	result, err := h.service.Analyze(c.UserContext(), userID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "analysis completed", result)
}

func (h *AnalysisHandler) history(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	history, err := h.service.History(c.UserContext(), userID, dto.AnalysisHistoryQuery{
		Page:  page,
		Limit: limit,
		Level: c.Query("level"),
	})
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "analysis history retrieved", history)
}

func (h *AnalysisHandler) get(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	analysis, err := h.service.Get(c.UserContext(), userID, id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "analysis retrieved", analysis)
}

func (h *AnalysisHandler) delete(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.UserContext(), userID, id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "analysis deleted", nil)
}

func (h *AnalysisHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	case errors.Is(err, scoring.ErrInvalidInput):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAnalysisNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "analysis not found")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("analysis request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
