package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"pawboard/internal/auth/models"
	id "pawboard/pkg/domain"
	"pawboard/pkg/platform/sentinel"
)

// PostgresStore backs the directory with the users table. Uniqueness is
// delegated to the unique indexes on email and nickname, so a concurrent
// create race resolves inside the database, not in application code.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const uniqueViolation = "23505"

func (s *PostgresStore) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, nickname, password_hash, role, profile_picture, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		user.ID.String(), user.Email, user.Nickname, user.PasswordHash,
		user.Role.String(), user.ProfilePicture, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			if strings.Contains(pqErr.Constraint, "nickname") {
				return sentinel.ErrNicknameTaken
			}
			return sentinel.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	return s.findOne(ctx, "id = $1", userID.String())
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, "email = $1", email)
}

func (s *PostgresStore) FindByNickname(ctx context.Context, nickname string) (*models.User, error) {
	return s.findOne(ctx, "nickname = $1", nickname)
}

func (s *PostgresStore) findOne(ctx context.Context, where string, arg any) (*models.User, error) {
	query := `
		SELECT id, email, nickname, password_hash, role, profile_picture, created_at, updated_at
		FROM users
		WHERE ` + where

	var (
		user   models.User
		rawID  string
		role   string
		avatar sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&rawID, &user.Email, &user.Nickname, &user.PasswordHash,
		&role, &avatar, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	parsedID, err := id.ParseUserID(rawID)
	if err != nil {
		return nil, fmt.Errorf("stored user id is corrupt: %w", err)
	}
	user.ID = parsedID
	user.Role = models.Role(role)
	user.ProfilePicture = avatar.String
	return &user, nil
}

func (s *PostgresStore) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET nickname = $2, profile_picture = $3, updated_at = $4
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		user.ID.String(), user.Nickname, user.ProfilePicture, user.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return sentinel.ErrNicknameTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, userID id.UserID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID.String())
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
