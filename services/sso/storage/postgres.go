package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/meetscribe/backend/pkg/gen"
	"github.com/meetscribe/backend/services/sso/entity"
)

const uniqueViolation = "23505"

type postgres struct {
	db   *sql.DB
	uuid gen.UUIDGenerator
}

func NewPostgres(db *sql.DB) (Storage, error) {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            UUID PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			name          TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL
		)`); err != nil {
		return nil, fmt.Errorf("failed to create users table: %w", err)
	}

	return &postgres{
		db:   db,
		uuid: gen.UUID(),
	}, nil
}

func (p *postgres) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	user.ID = p.uuid.NextString()
	user.CreatedAt = time.Now()

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		user.ID, strings.ToLower(user.Email), user.Name, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, entity.ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (p *postgres) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return p.getUser(ctx, `
		SELECT id, email, name, password_hash, created_at
		FROM users WHERE email = $1`, strings.ToLower(email))
}

func (p *postgres) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	return p.getUser(ctx, `
		SELECT id, email, name, password_hash, created_at
		FROM users WHERE id = $1`, id)
}

func (p *postgres) getUser(ctx context.Context, query string, arg any) (*entity.User, error) {
	var user entity.User
	err := p.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
