package auth

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func protectedApp(secret []byte) *fiber.App {
	app := fiber.New()
	app.Get("/protected", Middleware(secret), func(c *fiber.Ctx) error {
		return c.SendString(UserID(c))
	})
	return app
}

func TestMiddleware_MissingToken(t *testing.T) {
	app := protectedApp([]byte("test-secret"))

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestMiddleware_InvalidToken(t *testing.T) {
	app := protectedApp([]byte("test-secret"))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
}

func TestMiddleware_ValidToken(t *testing.T) {
	secret := []byte("test-secret")
	app := protectedApp(secret)

	token, err := GenerateToken(secret, time.Hour, Identity{
		ID:       "11111111-1111-1111-1111-111111111111",
		Email:    "demo@habittracker.com",
		Username: "demouser",
	})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "11111111-1111-1111-1111-111111111111" {
		t.Errorf("user id = %q, want the token's id claim", body)
	}
}
