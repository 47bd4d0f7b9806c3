package handler

import (
	"github.com/gofiber/fiber/v2"

	"sitrack/internal/service"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login godoc
// @Summary Sign in
// @Description Exchanges a username and password for a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} service.LoginResult
// @Failure 400 {object} errorPayload
// @Failure 401 {object} errorPayload
// @Router /api/v1/auth/login [post]
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
		res, err := svc.Login(c.UserContext(), req.Username, req.Password)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Profile
// @Failure 401 {object} errorPayload
// @Router /api/v1/auth/me [get]
func Me(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.Me(c.UserContext(), actorFrom(c).ID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(p)
	}
}
