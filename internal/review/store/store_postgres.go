package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"pawboard/internal/review/models"
	id "pawboard/pkg/domain"
	"pawboard/pkg/platform/sentinel"
)

// PostgresStore backs reviews with the reviews table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const reviewColumns = `id, owner_id, title, content, rating, images, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (` + reviewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		review.ID.String(), review.OwnerID.String(), review.Title, review.Content,
		review.Rating, pq.Array(review.Images), review.CreatedAt, review.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, reviewID id.ReviewID) (*models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	return scanReview(s.db.QueryRowContext(ctx, query, reviewID.String()))
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY created_at DESC, id DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

func (s *PostgresStore) Update(ctx context.Context, review *models.Review) error {
	query := `
		UPDATE reviews
		SET title = $2, content = $3, rating = $4, images = $5, updated_at = $6
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		review.ID.String(), review.Title, review.Content, review.Rating,
		pq.Array(review.Images), review.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, reviewID id.ReviewID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID.String())
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteByOwner(ctx context.Context, ownerID id.UserID) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE owner_id = $1`, ownerID.String())
	if err != nil {
		return 0, fmt.Errorf("delete reviews by owner: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete reviews by owner: %w", err)
	}
	return int(affected), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (*models.Review, error) {
	var (
		review     models.Review
		rawID      string
		rawOwnerID string
		images     pq.StringArray
	)
	err := row.Scan(&rawID, &rawOwnerID, &review.Title, &review.Content,
		&review.Rating, &images, &review.CreatedAt, &review.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan review: %w", err)
	}

	reviewID, err := id.ParseReviewID(rawID)
	if err != nil {
		return nil, fmt.Errorf("scan review: %w", err)
	}
	ownerID, err := id.ParseUserID(rawOwnerID)
	if err != nil {
		return nil, fmt.Errorf("scan review: %w", err)
	}
	review.ID = reviewID
	review.OwnerID = ownerID
	review.Images = []string(images)
	return &review, nil
}
