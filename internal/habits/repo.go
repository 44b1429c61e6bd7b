package habits

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound     = errors.New("habit not found")
	ErrInactive     = errors.New("habit is inactive")
	ErrTagNotFound  = errors.New("tag not found")
	ErrLimitReached = errors.New("completion target reached for period")
)

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

type CreateHabitParams struct {
	Name        string
	Description *string
	Frequency   string
	TargetCount int
	TagIDs      []string
}

// Create inserts the habit and its tag associations as one transaction.
// An unknown tag id rolls back the whole insert.
func (r *Repository) Create(ctx context.Context, userID string, params CreateHabitParams) (Habit, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Habit{}, err
	}
	defer tx.Rollback(ctx)

	var h Habit
	err = tx.QueryRow(ctx, `
		INSERT INTO habits (user_id, name, description, frequency, target_count)
		VALUES ($1::uuid, $2, $3, $4, $5)
		RETURNING id, user_id, name, description, frequency, target_count, is_active, created_at, updated_at
	`, userID, params.Name, params.Description, params.Frequency, params.TargetCount).Scan(
		&h.ID, &h.UserID, &h.Name, &h.Description, &h.Frequency, &h.TargetCount, &h.IsActive, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return Habit{}, err
	}

	h.Tags = []TagRef{}
	if len(params.TagIDs) > 0 {
		if err := insertTags(ctx, tx, h.ID, params.TagIDs); err != nil {
			return Habit{}, err
		}
		h.Tags, err = tagsForHabit(ctx, tx, h.ID)
		if err != nil {
			return Habit{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Habit{}, err
	}
	return h, nil
}

// ListByUser returns the owner's habits with their tags, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Habit, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT id, user_id, name, description, frequency, target_count, is_active, created_at, updated_at
		FROM habits
		WHERE user_id = $1::uuid
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Habit, 0)
	for rows.Next() {
		var h Habit
		if err := rows.Scan(&h.ID, &h.UserID, &h.Name, &h.Description, &h.Frequency, &h.TargetCount, &h.IsActive, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		h.Tags = []TagRef{}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]string, len(out))
	index := make(map[string]int, len(out))
	for i, h := range out {
		ids[i] = h.ID
		index[h.ID] = i
	}

	tagRows, err := r.Pool.Query(ctx, `
		SELECT ht.habit_id, t.id, t.name, t.color
		FROM habit_tags ht
		JOIN tags t ON t.id = ht.tag_id
		WHERE ht.habit_id = ANY($1::uuid[])
		ORDER BY t.name ASC
	`, ids)
	if err != nil {
		return nil, err
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var habitID string
		var tag TagRef
		if err := tagRows.Scan(&habitID, &tag.ID, &tag.Name, &tag.Color); err != nil {
			return nil, err
		}
		if i, ok := index[habitID]; ok {
			out[i].Tags = append(out[i].Tags, tag)
		}
	}
	return out, tagRows.Err()
}

// Get returns an owned habit with its tags and the 10 most recent entries.
// A habit owned by someone else is reported as absent.
func (r *Repository) Get(ctx context.Context, userID, habitID string) (Habit, error) {
	var h Habit
	err := r.Pool.QueryRow(ctx, `
		SELECT id, user_id, name, description, frequency, target_count, is_active, created_at, updated_at
		FROM habits
		WHERE id = $1::uuid AND user_id = $2::uuid
	`, habitID, userID).Scan(
		&h.ID, &h.UserID, &h.Name, &h.Description, &h.Frequency, &h.TargetCount, &h.IsActive, &h.CreatedAt, &h.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Habit{}, ErrNotFound
	}
	if err != nil {
		return Habit{}, err
	}

	if h.Tags, err = tagsForHabit(ctx, r.Pool, h.ID); err != nil {
		return Habit{}, err
	}

	entryRows, err := r.Pool.Query(ctx, `
		SELECT id, habit_id, completion_date, note, created_at
		FROM entries
		WHERE habit_id = $1::uuid
		ORDER BY completion_date DESC
		LIMIT 10
	`, h.ID)
	if err != nil {
		return Habit{}, err
	}
	defer entryRows.Close()

	h.RecentEntries = make([]Entry, 0)
	for entryRows.Next() {
		var e Entry
		if err := entryRows.Scan(&e.ID, &e.HabitID, &e.CompletionDate, &e.Note, &e.CreatedAt); err != nil {
			return Habit{}, err
		}
		h.RecentEntries = append(h.RecentEntries, e)
	}
	return h, entryRows.Err()
}

type UpdateHabitParams struct {
	Name        *string
	Description *string
	Frequency   *string
	TargetCount *int
	IsActive    *bool
	// TagIDs nil leaves associations alone; non-nil replaces the whole set.
	TagIDs *[]string
}

// Update applies a partial update and, when a tag set is supplied, replaces
// all associations in the same transaction. Zero rows updated rolls back
// everything and reports NotFound.
func (r *Repository) Update(ctx context.Context, userID, habitID string, params UpdateHabitParams) (Habit, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Habit{}, err
	}
	defer tx.Rollback(ctx)

	var h Habit
	err = tx.QueryRow(ctx, `
		UPDATE habits
		SET name = COALESCE($3, name),
		    description = COALESCE($4, description),
		    frequency = COALESCE($5, frequency),
		    target_count = COALESCE($6, target_count),
		    is_active = COALESCE($7, is_active),
		    updated_at = NOW()
		WHERE id = $1::uuid AND user_id = $2::uuid
		RETURNING id, user_id, name, description, frequency, target_count, is_active, created_at, updated_at
	`, habitID, userID, params.Name, params.Description, params.Frequency, params.TargetCount, params.IsActive).Scan(
		&h.ID, &h.UserID, &h.Name, &h.Description, &h.Frequency, &h.TargetCount, &h.IsActive, &h.CreatedAt, &h.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Habit{}, ErrNotFound
	}
	if err != nil {
		return Habit{}, err
	}

	if params.TagIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM habit_tags WHERE habit_id = $1::uuid`, h.ID); err != nil {
			return Habit{}, err
		}
		if len(*params.TagIDs) > 0 {
			if err := insertTags(ctx, tx, h.ID, *params.TagIDs); err != nil {
				return Habit{}, err
			}
		}
	}

	if h.Tags, err = tagsForHabit(ctx, tx, h.ID); err != nil {
		return Habit{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Habit{}, err
	}
	return h, nil
}

// Delete removes an owned habit; entries and associations cascade.
func (r *Repository) Delete(ctx context.Context, userID, habitID string) error {
	tag, err := r.Pool.Exec(ctx, `
		DELETE FROM habits WHERE id = $1::uuid AND user_id = $2::uuid
	`, habitID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddTags associates the given tags with an owned habit. Pairs that already
// exist are skipped, so re-adding a tag is a no-op.
func (r *Repository) AddTags(ctx context.Context, userID, habitID string, tagIDs []string) error {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM habits WHERE id = $1::uuid AND user_id = $2::uuid)
	`, habitID, userID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	if err := checkTagsExist(ctx, tx, tagIDs); err != nil {
		return err
	}

	// The unique constraint on (habit_id, tag_id) backstops concurrent adds.
	_, err = tx.Exec(ctx, `
		INSERT INTO habit_tags (habit_id, tag_id)
		SELECT $1::uuid, unnest($2::uuid[])
		ON CONFLICT (habit_id, tag_id) DO NOTHING
	`, habitID, uniqueIDs(tagIDs))
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Complete appends one completion entry. Inactive habits reject entries,
// and a period already at target_count rejects further ones. Count and
// insert share a transaction with the habit row locked so the limit check
// cannot race.
func (r *Repository) Complete(ctx context.Context, userID, habitID string, note *string) (Entry, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Entry{}, err
	}
	defer tx.Rollback(ctx)

	var frequency string
	var targetCount int
	var isActive bool
	err = tx.QueryRow(ctx, `
		SELECT frequency, target_count, is_active
		FROM habits
		WHERE id = $1::uuid AND user_id = $2::uuid
		FOR UPDATE
	`, habitID, userID).Scan(&frequency, &targetCount, &isActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, err
	}
	if !isActive {
		return Entry{}, ErrInactive
	}

	since := periodStart(frequency, time.Now())
	var count int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM entries
		WHERE habit_id = $1::uuid AND completion_date >= $2
	`, habitID, since).Scan(&count)
	if err != nil {
		return Entry{}, err
	}
	if count >= targetCount {
		return Entry{}, ErrLimitReached
	}

	var e Entry
	err = tx.QueryRow(ctx, `
		INSERT INTO entries (habit_id, note)
		VALUES ($1::uuid, $2)
		RETURNING id, habit_id, completion_date, note, created_at
	`, habitID, note).Scan(&e.ID, &e.HabitID, &e.CompletionDate, &e.Note, &e.CreatedAt)
	if err != nil {
		return Entry{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func insertTags(ctx context.Context, tx pgx.Tx, habitID string, tagIDs []string) error {
	if err := checkTagsExist(ctx, tx, tagIDs); err != nil {
		return err
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO habit_tags (habit_id, tag_id)
		SELECT $1::uuid, unnest($2::uuid[])
		ON CONFLICT (habit_id, tag_id) DO NOTHING
	`, habitID, uniqueIDs(tagIDs))
	return err
}

func checkTagsExist(ctx context.Context, tx pgx.Tx, tagIDs []string) error {
	ids := uniqueIDs(tagIDs)
	if len(ids) == 0 {
		return nil
	}
	var count int
	err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM tags WHERE id = ANY($1::uuid[])`, ids).Scan(&count)
	if err != nil {
		return err
	}
	if count != len(ids) {
		return ErrTagNotFound
	}
	return nil
}

// tagQuerier is satisfied by both *pgxpool.Pool and pgx.Tx.
type tagQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func tagsForHabit(ctx context.Context, q tagQuerier, habitID string) ([]TagRef, error) {
	rows, err := q.Query(ctx, `
		SELECT t.id, t.name, t.color
		FROM habit_tags ht
		JOIN tags t ON t.id = ht.tag_id
		WHERE ht.habit_id = $1::uuid
		ORDER BY t.name ASC
	`, habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TagRef, 0)
	for rows.Next() {
		var tag TagRef
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Color); err != nil {
			return nil, err
		}
		out = append(out, tag)
	}
	return out, rows.Err()
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
