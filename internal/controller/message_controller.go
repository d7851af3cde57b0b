package controller

import (
	"farewell-wall-be/internal/dto"
	"farewell-wall-be/internal/pkg/serverutils"
	"farewell-wall-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMessageController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type messageController struct {
	sessionService service.ISessionService
}

func NewMessageController(sessionService service.ISessionService) IMessageController {
	return &messageController{
		sessionService: sessionService,
	}
}

func (c *messageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/message/v1")
	h.Post("", c.Submit)
	h.Get(":sessionId", c.List)
}

func (c *messageController) Submit(ctx *fiber.Ctx) error {
	var req dto.SubmitMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.SubmitMessage(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).
		JSON(serverutils.SuccessResponse("Success create message", res))
}

func (c *messageController) List(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("sessionId")
	limit := ctx.QueryInt("limit", 0)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.sessionService.ListMessages(ctx.Context(), sessionId, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}
