package controller

import (
	"creative-critique-be/internal/pkg/serverutils"
	"creative-critique-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFileController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	GetContent(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type fileController struct {
	fileService service.IFileService
}

func NewFileController(fileService service.IFileService) IFileController {
	return &fileController{
		fileService: fileService,
	}
}

func (c *fileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/files")
	h.Post("/upload", serverutils.OptionalJwtMiddleware, c.Upload)
	h.Get("/:id/content", c.GetContent)
	h.Delete("/:id", serverutils.OptionalJwtMiddleware, c.Delete)
}

func (c *fileController) Upload(ctx *fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Multipart form is required"))
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		headers = form.File["file"]
	}
	if len(headers) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "At least one file is required"))
	}

	sessionId := ctx.FormValue("session_id")

	res, err := c.fileService.Upload(ctx.Context(), optionalUserId(ctx), sessionId, headers)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Files uploaded", res))
}

func (c *fileController) GetContent(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid file id"))
	}

	content, err := c.fileService.GetContent(ctx.Context(), id)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, content.MimeType)
	ctx.Set(fiber.HeaderContentDisposition, `inline; filename="`+content.OriginalName+`"`)
	return ctx.Send(content.Data)
}

func (c *fileController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid file id"))
	}

	if err := c.fileService.Delete(ctx.Context(), optionalUserId(ctx), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("File deleted", nil))
}
