package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/tevez07b9/notebooklm/internal/service"
	"github.com/tevez07b9/notebooklm/pkg/embedding"
	"github.com/tevez07b9/notebooklm/pkg/extract"
	"github.com/tevez07b9/notebooklm/pkg/rag/answer"
	"github.com/tevez07b9/notebooklm/pkg/similarity"
)

// ErrorHandlerMiddleware converts errors bubbling out of handlers into a
// consistent JSON envelope. Handlers that already wrote a response are
// passed through untouched.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code, message := mapError(err)
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

func mapError(err error) (int, string) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	switch {
	case service.IsValidationError(err):
		return fiber.StatusBadRequest, err.Error()
	case service.IsNotFoundError(err), errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound, err.Error()
	case extract.IsExtractionError(err):
		return fiber.StatusBadRequest, err.Error()
	case embedding.IsEmbeddingError(err), answer.IsCompositionError(err):
		return fiber.StatusBadGateway, err.Error()
	case similarity.IsDimensionMismatch(err):
		return fiber.StatusInternalServerError, err.Error()
	default:
		return fiber.StatusInternalServerError, err.Error()
	}
}
