package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// ErrorHandlerMiddleware converts unhandled errors into a generic response
// instead of leaking internals.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := ctx.Next(); err != nil {
			if e, ok := err.(*fiber.Error); ok {
				return ctx.Status(e.Code).JSON(ErrorResponse(e.Message))
			}
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Internal server error"))
		}
		return nil
	}
}

// RecoverMiddleware catches handler panics.
func RecoverMiddleware() fiber.Handler {
	return recover.New()
}
