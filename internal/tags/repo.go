package tags

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound  = errors.New("tag not found")
	ErrNameTaken = errors.New("tag name already exists")
	ErrInUse     = errors.New("tag is referenced by habits")
)

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

func (r *Repository) Create(ctx context.Context, name, color string) (Tag, error) {
	var t Tag
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO tags (name, color)
		VALUES ($1, $2)
		RETURNING id, name, color, created_at, updated_at
	`, name, color).Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return Tag{}, mapNameViolation(err)
	}
	return t, nil
}

func (r *Repository) List(ctx context.Context) ([]Tag, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT id, name, color, created_at, updated_at
		FROM tags
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Tag, 0)
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Popular returns tags ranked by how many habits reference them.
func (r *Repository) Popular(ctx context.Context, limit int) ([]PopularTag, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT t.id, t.name, t.color, t.created_at, t.updated_at, COUNT(ht.id)::int AS usage_count
		FROM tags t
		LEFT JOIN habit_tags ht ON ht.tag_id = t.id
		GROUP BY t.id
		ORDER BY usage_count DESC, t.name ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PopularTag, 0, limit)
	for rows.Next() {
		var t PopularTag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt, &t.UpdatedAt, &t.UsageCount); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Get returns a tag together with the habits that carry it.
func (r *Repository) Get(ctx context.Context, id string) (TagWithHabits, error) {
	var t TagWithHabits
	err := r.Pool.QueryRow(ctx, `
		SELECT id, name, color, created_at, updated_at
		FROM tags
		WHERE id = $1::uuid
	`, id).Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return TagWithHabits{}, ErrNotFound
	}
	if err != nil {
		return TagWithHabits{}, err
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT h.id, h.name, h.frequency, h.is_active
		FROM habit_tags ht
		JOIN habits h ON h.id = ht.habit_id
		WHERE ht.tag_id = $1::uuid
		ORDER BY h.created_at DESC
	`, id)
	if err != nil {
		return TagWithHabits{}, err
	}
	defer rows.Close()

	t.Habits = make([]HabitRef, 0)
	for rows.Next() {
		var h HabitRef
		if err := rows.Scan(&h.ID, &h.Name, &h.Frequency, &h.IsActive); err != nil {
			return TagWithHabits{}, err
		}
		t.Habits = append(t.Habits, h)
	}
	return t, rows.Err()
}

func (r *Repository) Update(ctx context.Context, id string, name, color *string) (Tag, error) {
	var t Tag
	err := r.Pool.QueryRow(ctx, `
		UPDATE tags
		SET name = COALESCE($2, name),
		    color = COALESCE($3, color),
		    updated_at = NOW()
		WHERE id = $1::uuid
		RETURNING id, name, color, created_at, updated_at
	`, id, name, color).Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Tag{}, ErrNotFound
	}
	if err != nil {
		return Tag{}, mapNameViolation(err)
	}
	return t, nil
}

// Delete refuses to remove a tag while any habit still references it.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var inUse bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM habit_tags WHERE tag_id = $1::uuid)
	`, id).Scan(&inUse)
	if err != nil {
		return err
	}
	if inUse {
		return ErrInUse
	}

	tag, err := tx.Exec(ctx, `DELETE FROM tags WHERE id = $1::uuid`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

func mapNameViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "tags_name_key" {
		return ErrNameTaken
	}
	return err
}
