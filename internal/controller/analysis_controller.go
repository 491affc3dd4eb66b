package controller

import (
	"creative-critique-be/internal/dto"
	"creative-critique-be/internal/pkg/serverutils"
	"creative-critique-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAnalysisController interface {
	RegisterRoutes(r fiber.Router)
	Analyze(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	GetConversation(ctx *fiber.Ctx) error
	ListConversations(ctx *fiber.Ctx) error
	DeleteConversation(ctx *fiber.Ctx) error
}

type analysisController struct {
	analysisService service.IAnalysisService
}

func NewAnalysisController(analysisService service.IAnalysisService) IAnalysisController {
	return &analysisController{
		analysisService: analysisService,
	}
}

func (c *analysisController) RegisterRoutes(r fiber.Router) {
	// Anonymous sessions are allowed; auth only attributes the conversation.
	r.Post("/analyze", serverutils.OptionalJwtMiddleware, c.Analyze)
	r.Post("/chat", serverutils.OptionalJwtMiddleware, c.Chat)
	r.Get("/conversation/:sessionId", c.GetConversation)

	r.Get("/conversations", serverutils.JwtMiddleware, c.ListConversations)
	r.Delete("/conversation/:sessionId", serverutils.JwtMiddleware, c.DeleteConversation)
}

func (c *analysisController) Analyze(ctx *fiber.Ctx) error {
	var req dto.AnalyzeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.analysisService.Analyze(ctx.Context(), optionalUserId(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Analysis complete", res))
}

func (c *analysisController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.analysisService.SendChat(ctx.Context(), optionalUserId(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Reply generated", res))
}

func (c *analysisController) GetConversation(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("sessionId")

	res, err := c.analysisService.GetConversation(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Conversation retrieved", res))
}

func (c *analysisController) ListConversations(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.analysisService.ListConversations(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Conversations retrieved", res))
}

func (c *analysisController) DeleteConversation(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	sessionId := ctx.Params("sessionId")

	if err := c.analysisService.DeleteConversation(ctx.Context(), &userId, sessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Conversation deleted", nil))
}

// optionalUserId reads the user id set by the optional jwt middleware, nil
// when the request is anonymous.
func optionalUserId(ctx *fiber.Ctx) *uuid.UUID {
	raw := ctx.Locals("user_id")
	if raw == nil {
		return nil
	}
	idStr, ok := raw.(string)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil
	}
	return &id
}
