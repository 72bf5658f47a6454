package serverutils

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func signToken(t *testing.T, secret, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": userID})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newAuthApp(allowedUserIDs []string) *fiber.App {
	app := fiber.New()
	app.Get("/protected", JwtMiddleware(allowedUserIDs), func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"user_id": ctx.Locals("user_id")})
	})
	return app
}

func TestJwtMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userA := "3f1c2ad4-33aa-4f8e-9c68-0a1b2c3d4e5f"
	userB := "9d8e7f6a-5b4c-3d2e-1f0a-b9c8d7e6f5a4"

	tests := []struct {
		name           string
		allowedUserIDs []string
		authorization  string
		wantStatus     int
	}{
		{
			name:       "missing token",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:          "malformed header",
			authorization: "Token abc",
			wantStatus:    fiber.StatusUnauthorized,
		},
		{
			name:          "bad signature",
			authorization: "Bearer not-a-jwt",
			wantStatus:    fiber.StatusUnauthorized,
		},
		{
			name:          "valid token, no whitelist",
			authorization: "Bearer " + signToken(t, "test-secret", userA),
			wantStatus:    fiber.StatusOK,
		},
		{
			name:           "valid token, whitelisted user",
			allowedUserIDs: []string{userA},
			authorization:  "Bearer " + signToken(t, "test-secret", userA),
			wantStatus:     fiber.StatusOK,
		},
		{
			name:           "valid token, user not on whitelist",
			allowedUserIDs: []string{userA},
			authorization:  "Bearer " + signToken(t, "test-secret", userB),
			wantStatus:     fiber.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newAuthApp(tt.allowedUserIDs)

			req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}

			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
