package handlers

import (
	"path/filepath"
	"time"

	"foot-match-service/middleware"
	"foot-match-service/services"
	"foot-match-service/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type matchRequest struct {
	Title       string    `json:"title" validate:"required,min=3,max=100"`
	Description string    `json:"description" validate:"max=2000"`
	Location    string    `json:"location" validate:"required,max=255"`
	MatchDate   time.Time `json:"matchDate" validate:"required"`
	MaxPlayers  int       `json:"maxPlayers" validate:"required,min=2"`
}

type updateParticipantStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING ACCEPTED REJECTED"`
}

func SetupMatchRoutes(app *fiber.App, matches *services.MatchService, participants *services.ParticipantService, tokens *services.TokenService) {
	// Public reads
	app.Get("/api/matches", listMatches(matches))
	app.Get("/api/matches/:id", getMatch(matches))
	app.Get("/api/matches/:id/participants", listParticipants(participants))

	// Mutations need a bearer token
	secured := app.Group("/api/matches", middleware.RequireAuth(tokens))
	secured.Post("/", createMatch(matches))
	secured.Put("/:id", updateMatch(matches))
	secured.Delete("/:id", deleteMatch(matches))
	secured.Post("/:id/cancel", cancelMatch(matches))
	secured.Post("/:id/photo", uploadMatchPhoto(matches))
	secured.Post("/:id/join", joinMatch(participants))
	secured.Delete("/:id/leave", leaveMatch(participants))
	secured.Put("/:id/participants/:playerId", updateParticipantStatus(participants))
}

func currentUserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals("user_id").(uuid.UUID)
	return id
}

func currentUserRole(c *fiber.Ctx) string {
	role, _ := c.Locals("user_role").(string)
	return role
}

func pathUUID(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	return id, err == nil
}

func listMatches(matches *services.MatchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := services.ListMatchesQuery{
			Status:   c.Query("status"),
			Location: c.Query("location"),
			Page:     c.QueryInt("page", 1),
			Size:     c.QueryInt("size", 20),
			SortBy:   c.Query("sortBy", "match_date"),
			SortDir:  c.Query("sortDir", "asc"),
		}
		if dateFrom := c.Query("dateFrom"); dateFrom != "" {
			parsed, err := time.Parse(time.RFC3339, dateFrom)
			if err != nil {
				return validationError(c, map[string]string{"dateFrom": "must be an RFC3339 timestamp"})
			}
			query.DateFrom = &parsed
		}

		page, err := matches.List(query)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(page)
	}
}

func getMatch(matches *services.MatchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathUUID(c, "id")
		if !ok {
			return validationError(c, map[string]string{"id": "must be a valid uuid"})
		}
		match, err := matches.Get(id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(match)
	}
}

func createMatch(matches *services.MatchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req matchRequest
		if err := c.BodyParser(&req); err != nil {
			return validationError(c, map[string]string{"request": "invalid request body"})
		}
		if fields := utils.ValidateStruct(req); fields != nil {
			return validationError(c, fields)
		}

		match, err := matches.Create(services.MatchInput{
			Title:       req.Title,
			Description: req.Description,
			Location:    req.Location,
			MatchDate:   req.MatchDate,
			MaxPlayers:  req.MaxPlayers,
		}, currentUserID(c), currentUserRole(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(match)
	}
}

func updateMatch(matches *services.MatchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathUUID(c, "id")
		if !ok {
			return validationError(c, map[string]string{"id": "must be a valid uuid"})
		}
		var req matchRequest
		if err := c.BodyParser(&req); err != nil {
			return validationError(c, map[string]string{"request": "invalid request body"})
		}
		if fields := utils.ValidateStruct(req); fields != nil {
			return validationError(c, fields)
		}

		match, err := matches.Update(id, services.MatchInput{
			Title:       req.Title,
			Description: req.Description,
			Location:    req.Location,
			MatchDate:   req.MatchDate,
			MaxPlayers:  req.MaxPlayers,
		}, currentUserID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(match)
	}
}

func deleteMatch(matches *services.MatchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathUUID(c, "id")
		if !ok {
			return validationError(c, map[string]string{"id": "must be a valid uuid"})
		}
		if err := matches.Delete(id, currentUserID(c)); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func cancelMatch(matches *services.MatchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathUUID(c, "id")
		if !ok {
			return validationError(c, map[string]string{"id": "must be a valid uuid"})
		}
		if err := matches.Cancel(id, currentUserID(c)); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func uploadMatchPhoto(matches *services.MatchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathUUID(c, "id")
		if !ok {
			return validationError(c, map[string]string{"id": "must be a valid uuid"})
		}
		photo, err := c.FormFile("photo")
		if err != nil || photo.Size == 0 {
			return validationError(c, map[string]string{"photo": "is required"})
		}

		ext := filepath.Ext(photo.Filename)
		if ext == "" {
			ext = ".jpg"
		}
		key := "matches/main/" + uuid.NewString() + ext
		url, err := utils.UploadFile(photo, key)
		if err != nil {
			return respondError(c, err)
		}

		if err := matches.SetMainPhoto(id, currentUserID(c), url); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"main_photo_url": url})
	}
}

func joinMatch(participants *services.ParticipantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathUUID(c, "id")
		if !ok {
			return validationError(c, map[string]string{"id": "must be a valid uuid"})
		}
		participant, err := participants.Join(id, currentUserID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(participant)
	}
}

func leaveMatch(participants *services.ParticipantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathUUID(c, "id")
		if !ok {
			return validationError(c, map[string]string{"id": "must be a valid uuid"})
		}
		if err := participants.Leave(id, currentUserID(c)); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func listParticipants(participants *services.ParticipantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathUUID(c, "id")
		if !ok {
			return validationError(c, map[string]string{"id": "must be a valid uuid"})
		}
		roster, err := participants.List(id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(roster)
	}
}

func updateParticipantStatus(participants *services.ParticipantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathUUID(c, "id")
		if !ok {
			return validationError(c, map[string]string{"id": "must be a valid uuid"})
		}
		playerID, ok := pathUUID(c, "playerId")
		if !ok {
			return validationError(c, map[string]string{"playerId": "must be a valid uuid"})
		}

		var req updateParticipantStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return validationError(c, map[string]string{"request": "invalid request body"})
		}
		if fields := utils.ValidateStruct(req); fields != nil {
			return validationError(c, fields)
		}

		participant, err := participants.UpdateStatus(id, playerID, req.Status, currentUserID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(participant)
	}
}
