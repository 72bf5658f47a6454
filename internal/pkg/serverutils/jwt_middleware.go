package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JwtMiddleware verifies the bearer token and puts its user_id claim into
// locals. A non-empty allowedUserIDs restricts access to that whitelist;
// empty means every authenticated user is allowed.
func JwtMiddleware(allowedUserIDs []string) fiber.Handler {
	var allowed map[string]bool
	if len(allowedUserIDs) > 0 {
		allowed = make(map[string]bool, len(allowedUserIDs))
		for _, id := range allowedUserIDs {
			allowed[id] = true
		}
	}

	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
		}

		userID, _ := claims["user_id"].(string)
		if allowed != nil && !allowed[userID] {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access restricted"})
		}

		ctx.Locals("user_id", userID)
		return ctx.Next()
	}
}
