package controller

import (
	"farewell-wall-be/internal/config"
	"farewell-wall-be/internal/pkg/serverutils"
	"farewell-wall-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Bootstrap(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
	sessionCfg     config.SessionConfig
}

func NewSessionController(sessionService service.ISessionService, sessionCfg config.SessionConfig) ISessionController {
	return &sessionController{
		sessionService: sessionService,
		sessionCfg:     sessionCfg,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Post("", c.Bootstrap)
	h.Get(":id", c.Show)
}

// Bootstrap creates the fixed event session if it does not exist yet.
// Calling it twice is harmless.
func (c *sessionController) Bootstrap(ctx *fiber.Ctx) error {
	res, err := c.sessionService.EnsureSession(ctx.Context(),
		c.sessionCfg.FixedSessionId, c.sessionCfg.FixedSessionName)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).
		JSON(serverutils.SuccessResponse("Session ready", res))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	res, err := c.sessionService.GetSessionWithMessages(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session", res))
}
