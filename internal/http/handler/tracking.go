package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sitrack/internal/service"
)

// Track godoc
// @Summary Public letter tracking
// @Description Looks a letter up by number, ignoring case and surrounding spaces.
// @Tags tracking
// @Produce json
// @Param search query string true "Letter number (no_surat)"
// @Success 200 {object} service.TrackingResult
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/v1/track [get]
func Track(svc service.TrackingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Track(c.UserContext(), c.Query("search"))
		switch {
		case errors.Is(err, service.ErrSearchRequired):
			return writeError(c, fiber.StatusBadRequest, "SEARCH_REQUIRED", "Nomor surat diperlukan")
		case errors.Is(err, service.ErrNotFound):
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "Data surat tidak ditemukan")
		case err != nil:
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}
