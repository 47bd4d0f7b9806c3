package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sitrack/internal/http/middleware"
	"sitrack/internal/service"
)

// actorFrom builds the service actor from the verified token claims.
func actorFrom(c *fiber.Ctx) service.Actor {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return service.Actor{}
	}
	return service.Actor{ID: claims.Subject, Role: claims.Role, Name: claims.Name}
}

// pathID returns the uuid path parameter name, or "" when it is malformed.
func pathID(c *fiber.Ctx, name string) string {
	id := c.Params(name)
	if _, err := uuid.Parse(id); err != nil {
		return ""
	}
	return id
}

func invalidID(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
}

func invalidBody(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
}

// queryInt parses an optional integer query parameter.
func queryInt(c *fiber.Ctx, key string, def int) (int, bool) {
	v := c.Query(key)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// notesRequest is the body of workflow actions that only carry notes.
type notesRequest struct {
	Notes string `json:"notes"`
}
