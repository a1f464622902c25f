package handler

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/writerpro-api/internal/middleware"
)

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return parsed, nil
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	value := strings.TrimSpace(c.Params(name))
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil || parsed == 0 {
		return 0, errors.New("invalid identifier")
	}
	return uint(parsed), nil
}

func parseIntParam(c *fiber.Ctx, name string) (int, error) {
	value := strings.TrimSpace(c.Params(name))
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return parsed, nil
}

// levelParam returns the decoded level path segment, e.g. "Intermediate%20(B1)".
func levelParam(c *fiber.Ctx) (string, error) {
	decoded, err := url.PathUnescape(c.Params("level"))
	if err != nil {
		return "", errors.New("invalid level")
	}
	decoded = strings.TrimSpace(decoded)
	if decoded == "" {
		return "", errors.New("level is required")
	}
	return decoded, nil
}

func extractUserID(c *fiber.Ctx) (uint, error) {
	value := c.Locals("user_id")
	if value == nil {
		return 0, errors.New("missing user context")
	}

	switch v := value.(type) {
	case uint:
		if v == 0 {
			return 0, errors.New("invalid user context")
		}
		return v, nil
	case int:
		if v <= 0 {
			return 0, errors.New("invalid user context")
		}
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil || parsed == 0 {
			return 0, errors.New("invalid user context")
		}
		return uint(parsed), nil
	default:
		return 0, errors.New("invalid user context")
	}
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}
