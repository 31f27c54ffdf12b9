package serverutils

import "github.com/gofiber/fiber/v2"

// CuratorMiddleware gates privileged ops routes behind the shared curator
// token. A single allow-listed actor is the whole auth model here.
func CuratorMiddleware(token string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Missing token"))
		}
		if authHeader[7:] != token {
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse("Only the curator can run that."))
		}
		return ctx.Next()
	}
}
