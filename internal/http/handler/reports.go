package handler

import (
	"github.com/gofiber/fiber/v2"

	"sitrack/internal/model"
	"sitrack/internal/service"
)

// ListReports godoc
// @Summary List reports
// @Description Newest first. Coordinators and staff only see their own work.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param layanan query string false "Service type"
// @Param status query string false "Workflow status"
// @Param q query string false "Match against hal or no_surat"
// @Param holder query string false "Current holder ID"
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} service.ReportListResult
// @Failure 400 {object} errorPayload
// @Router /api/v1/reports [get]
func ListReports(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, ok := queryInt(c, "limit", 10)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, ok := queryInt(c, "offset", 0)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), actorFrom(c), service.ReportListQuery{
			Layanan: c.Query("layanan"),
			Status:  model.Status(c.Query("status")),
			Query:   c.Query("q"),
			Holder:  c.Query("holder"),
			Limit:   limit,
			Offset:  offset,
		})
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// ReportStats godoc
// @Summary Report counts per status
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.ReportStats
// @Router /api/v1/reports/stats [get]
func ReportStats(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := svc.Stats(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(st)
	}
}

// CreateReport godoc
// @Summary Register an incoming letter
// @Description An empty no_surat is generated as NS-<unix millis>.
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ReportInput true "Report"
// @Success 201 {object} model.Report
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /api/v1/reports [post]
func CreateReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ReportInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		r, err := svc.Create(c.UserContext(), actorFrom(c), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(r)
	}
}

// GetReport godoc
// @Summary Report details
// @Description Includes assignments, history (oldest first) and attachments with download links.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} model.ReportDetail
// @Failure 404 {object} errorPayload
// @Router /api/v1/reports/{id} [get]
func GetReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := pathID(c, "id")
		if id == "" {
			return invalidID(c)
		}
		d, err := svc.Get(c.UserContext(), actorFrom(c), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(d)
	}
}

// UpdateReport godoc
// @Summary Edit a draft report
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param body body service.ReportInput true "Report"
// @Success 200 {object} model.Report
// @Failure 409 {object} errorPayload
// @Router /api/v1/reports/{id} [put]
func UpdateReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := pathID(c, "id")
		if id == "" {
			return invalidID(c)
		}
		var in service.ReportInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		r, err := svc.Update(c.UserContext(), actorFrom(c), id, in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(r)
	}
}

// DeleteReport godoc
// @Summary Delete a report
// @Tags reports
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 204
// @Failure 409 {object} errorPayload
// @Router /api/v1/reports/{id} [delete]
func DeleteReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := pathID(c, "id")
		if id == "" {
			return invalidID(c)
		}
		if err := svc.Delete(c.UserContext(), actorFrom(c), id); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
