package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marekzelinka/habit-trackr-api/internal/auth"
	"github.com/marekzelinka/habit-trackr-api/internal/config"
	"github.com/marekzelinka/habit-trackr-api/internal/habits"
	"github.com/marekzelinka/habit-trackr-api/internal/httpx"
	"github.com/marekzelinka/habit-trackr-api/internal/router"
	"github.com/marekzelinka/habit-trackr-api/internal/tags"
	"github.com/marekzelinka/habit-trackr-api/internal/users"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error creating pgx pool: %v", err)
	}
	defer pool.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		log.Fatalf("error pinging database: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: httpx.ErrorHandler(cfg.IsProduction()),
	})

	app.Use(router.CorsMiddleware(cfg.CORSOrigin))
	app.Use(requestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/api/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		if err := pool.Ping(pingCtx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"ok":       false,
				"database": "down",
			})
		}
		return c.JSON(fiber.Map{"ok": true, "database": "up"})
	})

	tokenTTL := time.Duration(cfg.JWTExpiresMinutes) * time.Minute

	usersRepo := users.NewRepository(pool)
	usersHandler := users.NewHandler(usersRepo, cfg.JWTSecret, tokenTTL, cfg.BcryptCost)
	habitsHandler := habits.NewHandler(habits.NewRepository(pool))
	tagsHandler := tags.NewHandler(tags.NewRepository(pool))

	r := &router.Router{
		UsersHandler:  usersHandler,
		HabitsHandler: habitsHandler,
		TagsHandler:   tagsHandler,
		AuthMW:        auth.Middleware(cfg.JWTSecret),
	}
	r.RegisterRoutes(app)

	log.Println("Listening on port", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		log.Printf("%s %s %d %s", c.Method(), c.Path(), status, time.Since(start))
		return err
	}
}
