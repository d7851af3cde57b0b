package controller

import (
	"farewell-wall-be/internal/dto"
	"farewell-wall-be/internal/pkg/apperror"
	"farewell-wall-be/internal/pkg/serverutils"
	"farewell-wall-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	UpdateSession(ctx *fiber.Ctx) error
	DeactivateSession(ctx *fiber.Ctx) error
	ListMessages(ctx *fiber.Ctx) error
	DeleteMessage(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService  service.IAdminService
	statsService  service.IStatsService
	authenticator serverutils.Authenticator
}

func NewAdminController(
	adminService service.IAdminService,
	statsService service.IStatsService,
	authenticator serverutils.Authenticator,
) IAdminController {
	return &adminController{
		adminService:  adminService,
		statsService:  statsService,
		authenticator: authenticator,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Post("login", c.Login)

	h.Use(serverutils.AdminAuthMiddleware(c.authenticator))
	h.Get("sessions", c.ListSessions)
	h.Post("sessions", c.CreateSession)
	h.Put("sessions", c.UpdateSession)
	h.Delete("sessions/:id", c.DeactivateSession)
	h.Get("messages", c.ListMessages)
	h.Delete("messages/:id", c.DeleteMessage)
	h.Get("stats", c.Stats)
}

func (c *adminController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.adminService.Login(&req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Login success", res))
}

func (c *adminController) ListSessions(ctx *fiber.Ctx) error {
	activeOnly := ctx.QueryBool("active_only", false)

	res, err := c.adminService.ListSessions(ctx.Context(), activeOnly)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get sessions", res))
}

func (c *adminController) CreateSession(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.adminService.CreateSession(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).
		JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *adminController) UpdateSession(ctx *fiber.Ctx) error {
	var req dto.UpdateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.adminService.UpdateSession(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update session", res))
}

func (c *adminController) DeactivateSession(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	if err := c.adminService.DeactivateSession(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success deactivate session", fiber.Map{
		"session_id": id,
	}))
}

func (c *adminController) ListMessages(ctx *fiber.Ctx) error {
	res, err := c.adminService.ListAllMessages(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

func (c *adminController) DeleteMessage(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.NewValidation("invalid message id")
	}

	if err := c.adminService.DeleteMessage(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete message", fiber.Map{
		"message_id": id,
	}))
}

func (c *adminController) Stats(ctx *fiber.Ctx) error {
	res, err := c.statsService.GetStats(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get stats", res))
}
