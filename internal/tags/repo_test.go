package tags

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("pgxpool.New: %v", err)
	}
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile("../../migrations/migrations.sql")
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	for _, table := range []string{"entries", "habit_tags", "habits", "tags", "users"} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			t.Fatalf("clear %s: %v", table, err)
		}
	}
	return pool
}

func attachToHabit(t *testing.T, pool *pgxpool.Pool, tagID string) string {
	t.Helper()
	ctx := context.Background()

	var userID string
	err := pool.QueryRow(ctx, `
		INSERT INTO users (email, username, password_hash) VALUES ('u@example.com', 'u', 'x') RETURNING id
	`).Scan(&userID)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	var habitID string
	err = pool.QueryRow(ctx, `
		INSERT INTO habits (user_id, name, frequency) VALUES ($1::uuid, 'Exercise', 'daily') RETURNING id
	`, userID).Scan(&habitID)
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}

	if _, err := pool.Exec(ctx, `
		INSERT INTO habit_tags (habit_id, tag_id) VALUES ($1::uuid, $2::uuid)
	`, habitID, tagID); err != nil {
		t.Fatalf("create association: %v", err)
	}
	return habitID
}

func TestCreate_DuplicateName(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "Health", DefaultColor); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := repo.Create(ctx, "Health", "#FF0000"); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("second Create err = %v, want ErrNameTaken", err)
	}
}

func TestDelete_RefusesWhileInUse(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	tag, err := repo.Create(ctx, "Health", DefaultColor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	attachToHabit(t, pool, tag.ID)

	if err := repo.Delete(ctx, tag.ID); !errors.Is(err, ErrInUse) {
		t.Fatalf("Delete err = %v, want ErrInUse", err)
	}

	// tag and association are intact
	if _, err := repo.Get(ctx, tag.ID); err != nil {
		t.Errorf("tag should still exist: %v", err)
	}
	var n int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM habit_tags WHERE tag_id = $1::uuid`, tag.ID).Scan(&n); err != nil || n != 1 {
		t.Errorf("association rows = %d (err %v), want 1", n, err)
	}
}

func TestDelete_Unreferenced(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	tag, err := repo.Create(ctx, "Health", DefaultColor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(ctx, tag.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, tag.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete err = %v, want ErrNotFound", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)

	if err := repo.Delete(context.Background(), uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdate_RenameConflicts(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "Health", DefaultColor); err != nil {
		t.Fatalf("Create: %v", err)
	}
	fitness, err := repo.Create(ctx, "Fitness", DefaultColor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	taken := "Health"
	if _, err := repo.Update(ctx, fitness.ID, &taken, nil); !errors.Is(err, ErrNameTaken) {
		t.Errorf("rename to taken name err = %v, want ErrNameTaken", err)
	}

	// renaming to its own name is a no-op, not a conflict
	same := "Fitness"
	if _, err := repo.Update(ctx, fitness.ID, &same, nil); err != nil {
		t.Errorf("rename to own name: %v", err)
	}
}

func TestList_OrderedByName(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	for _, name := range []string{"Mindfulness", "Health", "Fitness"} {
		if _, err := repo.Create(ctx, name, DefaultColor); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	tags, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"Fitness", "Health", "Mindfulness"}
	if len(tags) != len(want) {
		t.Fatalf("tags = %d, want %d", len(tags), len(want))
	}
	for i, name := range want {
		if tags[i].Name != name {
			t.Errorf("tags[%d] = %s, want %s", i, tags[i].Name, name)
		}
	}
}

func TestPopular_RankedByUsage(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	popular, err := repo.Create(ctx, "Health", DefaultColor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, "Unused", DefaultColor); err != nil {
		t.Fatalf("Create: %v", err)
	}
	attachToHabit(t, pool, popular.ID)

	ranked, err := repo.Popular(ctx, 10)
	if err != nil {
		t.Fatalf("Popular: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("ranked = %d, want 2", len(ranked))
	}
	if ranked[0].Name != "Health" || ranked[0].UsageCount != 1 {
		t.Errorf("top tag = %s (%d uses), want Health with 1", ranked[0].Name, ranked[0].UsageCount)
	}
	if ranked[1].UsageCount != 0 {
		t.Errorf("unused tag count = %d, want 0", ranked[1].UsageCount)
	}
}
