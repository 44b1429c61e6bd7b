package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Seeds demo users, tags, habits and a week of completion entries.
// Clears all existing data first.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("error creating pgx pool: %v", err)
	}
	defer pool.Close()

	log.Println("Clearing existing data...")
	for _, table := range []string{"entries", "habit_tags", "habits", "tags", "users"} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			log.Fatalf("error clearing %s: %v", table, err)
		}
	}

	log.Println("Creating demo users...")
	hashed, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("error hashing demo password: %v", err)
	}

	demoUser := insertUser(ctx, pool, "demo@habittracker.com", "demouser", string(hashed), "Demo", "User")
	johnDoe := insertUser(ctx, pool, "john@example.com", "johndoe", string(hashed), "John", "Doe")

	log.Println("Creating tags...")
	healthTag := insertTag(ctx, pool, "Health", "#10B981")
	productivityTag := insertTag(ctx, pool, "Productivity", "#3B82F6")
	mindfulnessTag := insertTag(ctx, pool, "Mindfulness", "#8B5CF6")
	fitnessTag := insertTag(ctx, pool, "Fitness", "#EF4444")
	learningTag := insertTag(ctx, pool, "Learning", "#F59E0B")
	personalTag := insertTag(ctx, pool, "Personal", "#EC4899")

	log.Println("Creating demo habits...")
	exercise := insertHabit(ctx, pool, demoUser, "Exercise", "Daily workout routine", "daily", 1)
	attachTags(ctx, pool, exercise, healthTag, fitnessTag)

	reading := insertHabit(ctx, pool, demoUser, "Read for 30 minutes", "Read books or articles", "daily", 1)
	attachTags(ctx, pool, reading, learningTag, personalTag)

	meditation := insertHabit(ctx, pool, demoUser, "Meditate", "10 minutes of mindfulness", "daily", 1)
	attachTags(ctx, pool, meditation, mindfulnessTag, healthTag)

	water := insertHabit(ctx, pool, demoUser, "Drink 8 glasses of water", "Stay hydrated throughout the day", "daily", 8)
	attachTags(ctx, pool, water, healthTag)

	coding := insertHabit(ctx, pool, johnDoe, "Code for 1 hour", "Practice programming skills", "daily", 1)
	attachTags(ctx, pool, coding, learningTag, productivityTag)

	log.Println("Adding completion entries...")
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		date := today.AddDate(0, 0, -i)
		var note *string
		if i == 0 {
			n := "Great workout today!"
			note = &n
		}
		if _, err := pool.Exec(ctx, `
			INSERT INTO entries (habit_id, completion_date, note) VALUES ($1::uuid, $2, $3)
		`, exercise, date, note); err != nil {
			log.Fatalf("error inserting entry: %v", err)
		}
	}

	log.Println("Seed complete")
}

func insertUser(ctx context.Context, pool *pgxpool.Pool, email, username, passwordHash, firstName, lastName string) string {
	var id string
	err := pool.QueryRow(ctx, `
		INSERT INTO users (email, username, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, email, username, passwordHash, firstName, lastName).Scan(&id)
	if err != nil {
		log.Fatalf("error inserting user %s: %v", username, err)
	}
	return id
}

func insertTag(ctx context.Context, pool *pgxpool.Pool, name, color string) string {
	var id string
	err := pool.QueryRow(ctx, `
		INSERT INTO tags (name, color) VALUES ($1, $2) RETURNING id
	`, name, color).Scan(&id)
	if err != nil {
		log.Fatalf("error inserting tag %s: %v", name, err)
	}
	return id
}

func insertHabit(ctx context.Context, pool *pgxpool.Pool, userID, name, description, frequency string, targetCount int) string {
	var id string
	err := pool.QueryRow(ctx, `
		INSERT INTO habits (user_id, name, description, frequency, target_count)
		VALUES ($1::uuid, $2, $3, $4, $5)
		RETURNING id
	`, userID, name, description, frequency, targetCount).Scan(&id)
	if err != nil {
		log.Fatalf("error inserting habit %s: %v", name, err)
	}
	return id
}

func attachTags(ctx context.Context, pool *pgxpool.Pool, habitID string, tagIDs ...string) {
	for _, tagID := range tagIDs {
		if _, err := pool.Exec(ctx, `
			INSERT INTO habit_tags (habit_id, tag_id) VALUES ($1::uuid, $2::uuid)
		`, habitID, tagID); err != nil {
			log.Fatalf("error attaching tag: %v", err)
		}
	}
}
