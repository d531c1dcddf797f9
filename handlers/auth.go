package handlers

import (
	"foot-match-service/services"
	"foot-match-service/utils"

	"github.com/gofiber/fiber/v2"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Role     string `json:"role" validate:"required,oneof=PLAYER ORGANIZER"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

func SetupAuthRoutes(app *fiber.App, auth *services.AuthService) {
	api := app.Group("/api/auth")

	api.Post("/register", func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return validationError(c, map[string]string{"request": "invalid request body"})
		}
		if fields := utils.ValidateStruct(req); fields != nil {
			return validationError(c, fields)
		}

		result, err := auth.Register(req.Email, req.Password, req.Name, req.Role)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(result)
	})

	api.Post("/login", func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return validationError(c, map[string]string{"request": "invalid request body"})
		}
		if fields := utils.ValidateStruct(req); fields != nil {
			return validationError(c, fields)
		}

		result, err := auth.Login(req.Email, req.Password)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(result)
	})

	api.Post("/refresh", func(c *fiber.Ctx) error {
		var req refreshRequest
		if err := c.BodyParser(&req); err != nil {
			return validationError(c, map[string]string{"request": "invalid request body"})
		}
		if fields := utils.ValidateStruct(req); fields != nil {
			return validationError(c, fields)
		}

		result, err := auth.Refresh(req.RefreshToken)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(result)
	})
}
