package habits

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/marekzelinka/habit-trackr-api/internal/auth"
	"github.com/marekzelinka/habit-trackr-api/internal/httpx"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var req createHabitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if details := validateCreate(req); len(details) > 0 {
		return httpx.ValidationFailed(c, details)
	}

	targetCount := 1
	if req.TargetCount != nil {
		targetCount = *req.TargetCount
	}

	habit, err := h.Repo.Create(userContext(c), auth.UserID(c), CreateHabitParams{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Frequency:   req.Frequency,
		TargetCount: targetCount,
		TagIDs:      req.TagIDs,
	})
	if err != nil {
		return mapStoreError(err)
	}

	return httpx.Success(c, fiber.StatusCreated, "Habit created", fiber.Map{"habit": habit})
}

func (h *Handler) List(c *fiber.Ctx) error {
	habits, err := h.Repo.ListByUser(userContext(c), auth.UserID(c))
	if err != nil {
		return err
	}

	return httpx.Success(c, fiber.StatusOK, "", fiber.Map{"habits": habits})
}

func (h *Handler) Get(c *fiber.Ctx) error {
	habitID, err := habitIDParam(c)
	if err != nil {
		return err
	}

	habit, err := h.Repo.Get(userContext(c), auth.UserID(c), habitID)
	if err != nil {
		return mapStoreError(err)
	}

	return httpx.Success(c, fiber.StatusOK, "", fiber.Map{"habit": habit})
}

func (h *Handler) Update(c *fiber.Ctx) error {
	habitID, err := habitIDParam(c)
	if err != nil {
		return err
	}

	var req updateHabitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if details := validateUpdate(req); len(details) > 0 {
		return httpx.ValidationFailed(c, details)
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}

	habit, err := h.Repo.Update(userContext(c), auth.UserID(c), habitID, UpdateHabitParams{
		Name:        req.Name,
		Description: req.Description,
		Frequency:   req.Frequency,
		TargetCount: req.TargetCount,
		IsActive:    req.IsActive,
		TagIDs:      req.TagIDs,
	})
	if err != nil {
		return mapStoreError(err)
	}

	return httpx.Success(c, fiber.StatusOK, "Habit updated", fiber.Map{"habit": habit})
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	habitID, err := habitIDParam(c)
	if err != nil {
		return err
	}

	if err := h.Repo.Delete(userContext(c), auth.UserID(c), habitID); err != nil {
		return mapStoreError(err)
	}

	return httpx.Success(c, fiber.StatusOK, "Habit deleted", nil)
}

func (h *Handler) AddTags(c *fiber.Ctx) error {
	habitID, err := habitIDParam(c)
	if err != nil {
		return err
	}

	var req addTagsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if len(req.TagIDs) == 0 {
		return httpx.ValidationFailed(c, []httpx.FieldError{
			{Field: "tagIds", Message: "At least one tag id is required"},
		})
	}
	if fe := validateTagIDs("tagIds", req.TagIDs); fe != nil {
		return httpx.ValidationFailed(c, []httpx.FieldError{*fe})
	}

	if err := h.Repo.AddTags(userContext(c), auth.UserID(c), habitID, req.TagIDs); err != nil {
		return mapStoreError(err)
	}

	return httpx.Success(c, fiber.StatusOK, "Tags added", nil)
}

func (h *Handler) Complete(c *fiber.Ctx) error {
	habitID, err := habitIDParam(c)
	if err != nil {
		return err
	}

	var req completeHabitRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}

	entry, err := h.Repo.Complete(userContext(c), auth.UserID(c), habitID, req.Note)
	if err != nil {
		return mapStoreError(err)
	}

	return httpx.Success(c, fiber.StatusCreated, "Habit completed", fiber.Map{"entry": entry})
}

func habitIDParam(c *fiber.Ctx) (string, error) {
	id := c.Params("habitId")
	if _, err := uuid.Parse(id); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Invalid habit id")
	}
	return id, nil
}

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Habit not found")
	case errors.Is(err, ErrInactive):
		return fiber.NewError(fiber.StatusBadRequest, "Habit is inactive")
	case errors.Is(err, ErrTagNotFound):
		return fiber.NewError(fiber.StatusBadRequest, "One or more tags do not exist")
	case errors.Is(err, ErrLimitReached):
		return fiber.NewError(fiber.StatusBadRequest, "Habit already completed for this period")
	}
	return err
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
