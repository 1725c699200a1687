package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"pawboard/internal/board/models"
	id "pawboard/pkg/domain"
	"pawboard/pkg/platform/sentinel"
)

// PostgresStore backs boards with the boards table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const boardColumns = `id, owner_id, title, content, animal_type, category, images, like_count, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, board *models.Board) error {
	query := `
		INSERT INTO boards (` + boardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		board.ID.String(), board.OwnerID.String(), board.Title, board.Content,
		board.AnimalType, board.Category, pq.Array(board.Images),
		board.LikeCount, board.CreatedAt, board.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert board: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, boardID id.BoardID) (*models.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards WHERE id = $1`
	return scanBoard(s.db.QueryRowContext(ctx, query, boardID.String()))
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards ORDER BY created_at DESC, id DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	var boards []*models.Board
	for rows.Next() {
		board, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		boards = append(boards, board)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	return boards, nil
}

func (s *PostgresStore) Update(ctx context.Context, board *models.Board) error {
	query := `
		UPDATE boards
		SET title = $2, content = $3, animal_type = $4, category = $5,
		    images = $6, like_count = $7, updated_at = $8
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		board.ID.String(), board.Title, board.Content, board.AnimalType,
		board.Category, pq.Array(board.Images), board.LikeCount, board.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update board: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update board: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, boardID id.BoardID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM boards WHERE id = $1`, boardID.String())
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteByOwner(ctx context.Context, ownerID id.UserID) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM boards WHERE owner_id = $1`, ownerID.String())
	if err != nil {
		return 0, fmt.Errorf("delete boards by owner: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete boards by owner: %w", err)
	}
	return int(affected), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBoard(row rowScanner) (*models.Board, error) {
	var (
		board      models.Board
		rawID      string
		rawOwnerID string
		animalType sql.NullString
		category   sql.NullString
		images     pq.StringArray
	)
	err := row.Scan(&rawID, &rawOwnerID, &board.Title, &board.Content,
		&animalType, &category, &images, &board.LikeCount,
		&board.CreatedAt, &board.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan board: %w", err)
	}

	boardID, err := id.ParseBoardID(rawID)
	if err != nil {
		return nil, fmt.Errorf("scan board: %w", err)
	}
	ownerID, err := id.ParseUserID(rawOwnerID)
	if err != nil {
		return nil, fmt.Errorf("scan board: %w", err)
	}
	board.ID = boardID
	board.OwnerID = ownerID
	board.AnimalType = animalType.String
	board.Category = category.String
	board.Images = []string(images)
	return &board, nil
}
