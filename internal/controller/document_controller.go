package controller

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tevez07b9/notebooklm/internal/pkg/serverutils"
	"github.com/tevez07b9/notebooklm/internal/service"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type documentController struct {
	service service.IDocumentService
}

func NewDocumentController(service service.IDocumentService) IDocumentController {
	return &documentController{service: service}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Post("/", c.Upload)
	h.Get("/", c.List)
	h.Delete("/:id", c.Delete)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("pdf")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "PDF file is required"))
	}

	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Only PDF files are supported"))
	}

	src, err := file.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Unable to read uploaded file"))
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Unable to read uploaded file"))
	}

	res, err := c.service.Upload(ctx.Context(), file.Filename, data)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("PDF uploaded and processed successfully", res))
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Documents", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	documentId := ctx.Params("id")

	res, err := c.service.Delete(ctx.Context(), documentId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Document deleted", res))
}
