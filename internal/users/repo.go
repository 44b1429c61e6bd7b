package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
)

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

type CreateUserParams struct {
	Email        string
	Username     string
	PasswordHash string
	FirstName    *string
	LastName     *string
}

func (r *Repository) Create(ctx context.Context, params CreateUserParams) (User, error) {
	var u User
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO users (email, username, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, username, password_hash, first_name, last_name, created_at, updated_at
	`, params.Email, params.Username, params.PasswordHash, params.FirstName, params.LastName).Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return User{}, mapUniqueViolation(err)
	}
	return u, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.getBy(ctx, `WHERE email = $1`, email)
}

func (r *Repository) GetByID(ctx context.Context, id string) (User, error) {
	return r.getBy(ctx, `WHERE id = $1::uuid`, id)
}

func (r *Repository) getBy(ctx context.Context, where string, arg any) (User, error) {
	var u User
	err := r.Pool.QueryRow(ctx, `
		SELECT id, email, username, password_hash, first_name, last_name, created_at, updated_at
		FROM users `+where,
		arg,
	).Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

type UpdateProfileParams struct {
	Email     *string
	Username  *string
	FirstName *string
	LastName  *string
}

func (r *Repository) UpdateProfile(ctx context.Context, id string, params UpdateProfileParams) (User, error) {
	var u User
	err := r.Pool.QueryRow(ctx, `
		UPDATE users
		SET email = COALESCE($2, email),
		    username = COALESCE($3, username),
		    first_name = COALESCE($4, first_name),
		    last_name = COALESCE($5, last_name),
		    updated_at = NOW()
		WHERE id = $1::uuid
		RETURNING id, email, username, password_hash, first_name, last_name, created_at, updated_at
	`, id, params.Email, params.Username, params.FirstName, params.LastName).Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, mapUniqueViolation(err)
	}
	return u, nil
}

func (r *Repository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1::uuid
	`, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "users_email_key":
			return ErrEmailTaken
		case "users_username_key":
			return ErrUsernameTaken
		}
	}
	return err
}
