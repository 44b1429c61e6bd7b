package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/marekzelinka/habit-trackr-api/internal/habits"
	"github.com/marekzelinka/habit-trackr-api/internal/tags"
	"github.com/marekzelinka/habit-trackr-api/internal/users"
)

type Router struct {
	UsersHandler  *users.Handler
	HabitsHandler *habits.Handler
	TagsHandler   *tags.Handler
	AuthMW        fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	authLimiter := RateLimitAuth()

	app.Post("/api/auth/register", authLimiter, r.UsersHandler.Register)
	app.Post("/api/auth/login", authLimiter, r.UsersHandler.Login)

	app.Get("/api/users/me", r.AuthMW, r.UsersHandler.Me)
	app.Put("/api/users/me", r.AuthMW, r.UsersHandler.UpdateProfile)
	app.Put("/api/users/me/password", r.AuthMW, r.UsersHandler.UpdatePassword)

	writeLimiter := RateLimitWrite()

	app.Post("/api/habits", r.AuthMW, writeLimiter, r.HabitsHandler.Create)
	app.Get("/api/habits", r.AuthMW, r.HabitsHandler.List)
	app.Get("/api/habits/:habitId", r.AuthMW, r.HabitsHandler.Get)
	app.Put("/api/habits/:habitId", r.AuthMW, writeLimiter, r.HabitsHandler.Update)
	app.Delete("/api/habits/:habitId", r.AuthMW, writeLimiter, r.HabitsHandler.Delete)
	app.Post("/api/habits/:habitId/tags", r.AuthMW, writeLimiter, r.HabitsHandler.AddTags)
	app.Post("/api/habits/:habitId/complete", r.AuthMW, writeLimiter, r.HabitsHandler.Complete)

	app.Post("/api/tags", r.AuthMW, writeLimiter, r.TagsHandler.Create)
	app.Get("/api/tags", r.AuthMW, r.TagsHandler.List)
	app.Get("/api/tags/popular", r.AuthMW, r.TagsHandler.Popular)
	app.Get("/api/tags/:tagId", r.AuthMW, r.TagsHandler.Get)
	app.Put("/api/tags/:tagId", r.AuthMW, writeLimiter, r.TagsHandler.Update)
	app.Delete("/api/tags/:tagId", r.AuthMW, writeLimiter, r.TagsHandler.Delete)
}
