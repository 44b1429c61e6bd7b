package tags

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/marekzelinka/habit-trackr-api/internal/httpx"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var req createTagRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	if details := validateTag(&req.Name, req.Color); len(details) > 0 {
		return httpx.ValidationFailed(c, details)
	}

	color := DefaultColor
	if req.Color != nil {
		color = *req.Color
	}

	tag, err := h.Repo.Create(userContext(c), req.Name, color)
	if err != nil {
		return mapStoreError(err)
	}

	return httpx.Success(c, fiber.StatusCreated, "Tag created", fiber.Map{"tag": tag})
}

func (h *Handler) List(c *fiber.Ctx) error {
	tags, err := h.Repo.List(userContext(c))
	if err != nil {
		return err
	}

	return httpx.Success(c, fiber.StatusOK, "", fiber.Map{"tags": tags})
}

func (h *Handler) Popular(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)

	tags, err := h.Repo.Popular(userContext(c), limit)
	if err != nil {
		return err
	}

	return httpx.Success(c, fiber.StatusOK, "", fiber.Map{"tags": tags})
}

func (h *Handler) Get(c *fiber.Ctx) error {
	tagID, err := tagIDParam(c)
	if err != nil {
		return err
	}

	tag, err := h.Repo.Get(userContext(c), tagID)
	if err != nil {
		return mapStoreError(err)
	}

	return httpx.Success(c, fiber.StatusOK, "", fiber.Map{"tag": tag})
}

func (h *Handler) Update(c *fiber.Ctx) error {
	tagID, err := tagIDParam(c)
	if err != nil {
		return err
	}

	var req updateTagRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if details := validateTag(req.Name, req.Color); len(details) > 0 {
		return httpx.ValidationFailed(c, details)
	}

	tag, err := h.Repo.Update(userContext(c), tagID, req.Name, req.Color)
	if err != nil {
		return mapStoreError(err)
	}

	return httpx.Success(c, fiber.StatusOK, "Tag updated", fiber.Map{"tag": tag})
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	tagID, err := tagIDParam(c)
	if err != nil {
		return err
	}

	if err := h.Repo.Delete(userContext(c), tagID); err != nil {
		return mapStoreError(err)
	}

	return httpx.Success(c, fiber.StatusOK, "Tag deleted", nil)
}

// validateTag checks an optional name (nil means not being set) and an
// optional color. Create passes a non-nil name.
func validateTag(name *string, color *string) []httpx.FieldError {
	var details []httpx.FieldError

	if name != nil {
		if *name == "" {
			details = append(details, httpx.FieldError{Field: "name", Message: "Name is required"})
		} else if len(*name) > 50 {
			details = append(details, httpx.FieldError{Field: "name", Message: "Name too long"})
		}
	}
	if color != nil && !colorPattern.MatchString(*color) {
		details = append(details, httpx.FieldError{Field: "color", Message: "Color must be a hex value like #10B981"})
	}

	return details
}

func tagIDParam(c *fiber.Ctx) (string, error) {
	id := c.Params("tagId")
	if _, err := uuid.Parse(id); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Invalid tag id")
	}
	return id, nil
}

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Tag not found")
	case errors.Is(err, ErrNameTaken):
		return fiber.NewError(fiber.StatusConflict, "Tag name already exists")
	case errors.Is(err, ErrInUse):
		return fiber.NewError(fiber.StatusConflict, "Tag is in use by one or more habits")
	}
	return err
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
