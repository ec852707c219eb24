package controller

import (
	"ai-coursechat-be/internal/dto"
	"ai-coursechat-be/internal/pkg/serverutils"
	"ai-coursechat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	AppendLog(ctx *fiber.Ctx) error
	Ask(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("session", c.CreateSession)
	h.Get("sessions", c.ListSessions)
	h.Delete("session", c.DeleteSession)
	h.Get("history", c.History)
	h.Post("log", c.AppendLog)
	h.Post("ask", c.Ask)
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.CreateSession(ctx.Context(), username, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *chatController) ListSessions(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)
	course := ctx.Query("course")
	if course == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "course is required")
	}

	res, err := c.chatService.ListSessions(ctx.Context(), username, course)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)
	course := ctx.Query("course")
	sessionId := ctx.Query("session_id")
	if course == "" || sessionId == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "course and session_id are required")
	}

	if err := c.chatService.DeleteSession(ctx.Context(), username, course, sessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete session", nil))
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)
	course := ctx.Query("course")
	sessionId := ctx.Query("session_id")
	if course == "" || sessionId == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "course and session_id are required")
	}

	res, err := c.chatService.History(ctx.Context(), username, course, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}

func (c *chatController) AppendLog(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	var req dto.AppendLogRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.chatService.AppendLog(ctx.Context(), username, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success append chat log", nil))
}

func (c *chatController) Ask(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Ask(ctx.Context(), username, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer question", res))
}
