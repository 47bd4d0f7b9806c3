package handler

import (
	"github.com/gofiber/fiber/v2"

	"sitrack/internal/service"
)

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param q query string false "Match against username or full name"
// @Success 200 {array} model.Profile
// @Router /api/v1/users [get]
func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.List(c.UserContext(), c.Query("q"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"data": users})
	}
}

// ListStaff godoc
// @Summary List staff members
// @Description Profiles with the Staff role, for assignment pickers.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Profile
// @Router /api/v1/users/staff [get]
func ListStaff(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.Staff(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"data": users})
	}
}

// CreateUser godoc
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.UserInput true "User"
// @Success 201 {object} model.Profile
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /api/v1/users [post]
func CreateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.UserInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		p, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// UpdateUser godoc
// @Summary Update a user
// @Description An empty password keeps the current one.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body service.UserInput true "User"
// @Success 200 {object} model.Profile
// @Router /api/v1/users/{id} [put]
func UpdateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := pathID(c, "id")
		if id == "" {
			return invalidID(c)
		}
		var in service.UserInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		p, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(p)
	}
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Router /api/v1/users/{id} [delete]
func DeleteUser(svc service.UserService) fiber.Handler {
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
