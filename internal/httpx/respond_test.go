package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func testApp(production bool) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(production)})
	app.Get("/fiber-error", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Habit not found")
	})
	app.Get("/plain-error", func(c *fiber.Ctx) error {
		return errors.New("pq: connection refused")
	})
	app.Get("/ok", func(c *fiber.Ctx) error {
		return Success(c, fiber.StatusCreated, "Created", fiber.Map{"id": "x"})
	})
	return app
}

func getBody(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("invalid JSON %q: %v", raw, err)
	}
	return resp.StatusCode, body
}

func TestErrorHandler_FiberError(t *testing.T) {
	status, body := getBody(t, testApp(true), "/fiber-error")

	if status != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	if body["error"] != "Habit not found" {
		t.Errorf("error = %v, want the handler message", body["error"])
	}
}

func TestErrorHandler_MasksInternalInProduction(t *testing.T) {
	status, body := getBody(t, testApp(true), "/plain-error")

	if status != fiber.StatusInternalServerError {
		t.Errorf("status = %d, want 500", status)
	}
	if body["error"] != "Internal Server Error" {
		t.Errorf("error = %v, want the generic message", body["error"])
	}
}

func TestErrorHandler_ExposesDetailOutsideProduction(t *testing.T) {
	_, body := getBody(t, testApp(false), "/plain-error")

	if body["error"] != "pq: connection refused" {
		t.Errorf("error = %v, want the raw message in development", body["error"])
	}
}

func TestSuccessEnvelope(t *testing.T) {
	status, body := getBody(t, testApp(true), "/ok")

	if status != fiber.StatusCreated {
		t.Errorf("status = %d, want 201", status)
	}
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	if body["message"] != "Created" {
		t.Errorf("message = %v, want Created", body["message"])
	}
	data, ok := body["data"].(map[string]any)
	if !ok || data["id"] != "x" {
		t.Errorf("data = %v, want {id: x}", body["data"])
	}
}
