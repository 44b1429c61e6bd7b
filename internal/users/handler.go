package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/marekzelinka/habit-trackr-api/internal/auth"
	"github.com/marekzelinka/habit-trackr-api/internal/httpx"
)

type Handler struct {
	Repo       *Repository
	JWTSecret  []byte
	TokenTTL   time.Duration
	BcryptCost int
}

func NewHandler(repo *Repository, secret []byte, ttl time.Duration, bcryptCost int) *Handler {
	return &Handler{Repo: repo, JWTSecret: secret, TokenTTL: ttl, BcryptCost: bcryptCost}
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if details := validateRegister(req); len(details) > 0 {
		return httpx.ValidationFailed(c, details)
	}

	hashed, err := auth.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		return err
	}

	user, err := h.Repo.Create(userContext(c), CreateUserParams{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hashed,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})
	if err != nil {
		return mapConflict(err)
	}

	token, err := h.token(user)
	if err != nil {
		return err
	}

	return httpx.Success(c, fiber.StatusCreated, "User created", fiber.Map{
		"user":  user,
		"token": token,
	})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	req.Email = strings.TrimSpace(req.Email)
	if details := validateLogin(req); len(details) > 0 {
		return httpx.ValidationFailed(c, details)
	}

	// Unknown email and wrong password are indistinguishable to the caller.
	user, err := h.Repo.GetByEmail(userContext(c), req.Email)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := h.token(user)
	if err != nil {
		return err
	}

	return httpx.Success(c, fiber.StatusOK, "Login successful", fiber.Map{
		"user":  user,
		"token": token,
	})
}

func (h *Handler) Me(c *fiber.Ctx) error {
	user, err := h.Repo.GetByID(userContext(c), auth.UserID(c))
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Not Found")
	}
	if err != nil {
		return err
	}

	return httpx.Success(c, fiber.StatusOK, "", fiber.Map{"user": user})
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if details := validateProfileUpdate(req); len(details) > 0 {
		return httpx.ValidationFailed(c, details)
	}

	user, err := h.Repo.UpdateProfile(userContext(c), auth.UserID(c), UpdateProfileParams{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Not Found")
	}
	if err != nil {
		return mapConflict(err)
	}

	return httpx.Success(c, fiber.StatusOK, "Profile updated", fiber.Map{"user": user})
}

func (h *Handler) UpdatePassword(c *fiber.Ctx) error {
	var req updatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if len(req.NewPassword) < 8 {
		return httpx.ValidationFailed(c, []httpx.FieldError{
			{Field: "newPassword", Message: "Password must be at least 8 characters"},
		})
	}

	ctx := userContext(c)
	user, err := h.Repo.GetByID(ctx, auth.UserID(c))
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Not Found")
	}
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid current password")
	}

	hashed, err := auth.HashPassword(req.NewPassword, h.BcryptCost)
	if err != nil {
		return err
	}
	if err := h.Repo.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return err
	}

	return httpx.Success(c, fiber.StatusOK, "Password updated", nil)
}

func (h *Handler) token(user User) (string, error) {
	return auth.GenerateToken(h.JWTSecret, h.TokenTTL, auth.Identity{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
	})
}

func mapConflict(err error) error {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return fiber.NewError(fiber.StatusConflict, "Email already registered")
	case errors.Is(err, ErrUsernameTaken):
		return fiber.NewError(fiber.StatusConflict, "Username already taken")
	}
	return err
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
