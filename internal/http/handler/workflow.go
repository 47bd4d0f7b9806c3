package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"sitrack/internal/model"
	"sitrack/internal/service"
)

type forwardRequest struct {
	CoordinatorID string `json:"coordinator_id"`
	Notes         string `json:"notes"`
}

type submitRequest struct {
	CompletedTasks []string `json:"completed_tasks"`
	Notes          string   `json:"notes"`
}

// ForwardReport godoc
// @Summary Forward a draft to a coordinator
// @Tags workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param body body forwardRequest true "Coordinator"
// @Success 200 {object} model.Report
// @Failure 409 {object} errorPayload
// @Router /api/v1/reports/{id}/forward [post]
func ForwardReport(svc service.WorkflowService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := pathID(c, "id")
		if id == "" {
			return invalidID(c)
		}
		var req forwardRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
		r, err := svc.Forward(c.UserContext(), actorFrom(c), id, req.CoordinatorID, req.Notes)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(r)
	}
}

// AssignStaff godoc
// @Summary Assign staff to a report
// @Description Staff already assigned to the report are skipped.
// @Tags workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param body body service.AssignInput true "Assignment"
// @Success 201 {array} model.TaskAssignment
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /api/v1/reports/{id}/assignments [post]
func AssignStaff(svc service.WorkflowService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := pathID(c, "id")
		if id == "" {
			return invalidID(c)
		}
		var in service.AssignInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		created, err := svc.Assign(c.UserContext(), actorFrom(c), id, in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": created})
	}
}

type reportAction func(ctx context.Context, actor service.Actor, reportID, notes string) (*model.Report, error)

// reportActionHandler adapts a notes-only workflow action.
func reportActionHandler(action reportAction) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := pathID(c, "id")
		if id == "" {
			return invalidID(c)
		}
		var req notesRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return invalidBody(c)
			}
		}
		r, err := action(c.UserContext(), actorFrom(c), id, req.Notes)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(r)
	}
}

// ForwardToTU godoc
// @Summary Approve a report and send it to TU
// @Tags workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param body body notesRequest false "Notes"
// @Success 200 {object} model.Report
// @Router /api/v1/reports/{id}/forward-to-tu [post]
func ForwardToTU(svc service.WorkflowService) fiber.Handler {
	return reportActionHandler(svc.ForwardToTU)
}

// ReturnToCoordinator godoc
// @Summary Send a report awaiting approval back to its coordinator
// @Tags workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param body body notesRequest false "Notes"
// @Success 200 {object} model.Report
// @Router /api/v1/reports/{id}/return [post]
func ReturnToCoordinator(svc service.WorkflowService) fiber.Handler {
	return reportActionHandler(svc.ReturnToCoordinator)
}

// FinalizeReport godoc
// @Summary Complete a report
// @Tags workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param body body notesRequest false "Notes"
// @Success 200 {object} model.Report
// @Router /api/v1/reports/{id}/finalize [post]
func FinalizeReport(svc service.WorkflowService) fiber.Handler {
	return reportActionHandler(svc.Finalize)
}

// MyTasks godoc
// @Summary Open assignments of the current staff member
// @Tags workflow
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.TaskAssignment
// @Router /api/v1/tasks [get]
func MyTasks(svc service.WorkflowService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tasks, err := svc.MyTasks(c.UserContext(), actorFrom(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"data": tasks})
	}
}

// SubmitAssignment godoc
// @Summary Submit finished work
// @Description Every todo item of the assignment must be listed in completed_tasks.
// @Tags workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Param body body submitRequest true "Completed tasks"
// @Success 200 {object} model.TaskAssignment
// @Failure 400 {object} errorPayload
// @Router /api/v1/assignments/{id}/submit [post]
func SubmitAssignment(svc service.WorkflowService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := pathID(c, "id")
		if id == "" {
			return invalidID(c)
		}
		var req submitRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
		a, err := svc.Submit(c.UserContext(), actorFrom(c), id, req.CompletedTasks, req.Notes)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(a)
	}
}

// RequestRevision godoc
// @Summary Ask a staff member to redo an assignment
// @Tags workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Param body body notesRequest true "Revision notes"
// @Success 200 {object} model.TaskAssignment
// @Failure 400 {object} errorPayload
// @Router /api/v1/assignments/{id}/revision [post]
func RequestRevision(svc service.WorkflowService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := pathID(c, "id")
		if id == "" {
			return invalidID(c)
		}
		var req notesRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
		a, err := svc.RequestRevision(c.UserContext(), actorFrom(c), id, req.Notes)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(a)
	}
}
