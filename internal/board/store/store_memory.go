package store

import (
	"context"
	"sort"
	"sync"

	"pawboard/internal/board/models"
	id "pawboard/pkg/domain"
	"pawboard/pkg/platform/sentinel"
)

// InMemoryStore keeps boards in a map. Reads and writes hand out clones
// so callers can never mutate stored state behind the lock.
type InMemoryStore struct {
	mu     sync.RWMutex
	boards map[id.BoardID]*models.Board
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		boards: make(map[id.BoardID]*models.Board),
	}
}

func (s *InMemoryStore) Create(_ context.Context, board *models.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.boards[board.ID]; exists {
		return sentinel.ErrConflict
	}
	clone := cloneBoard(board)
	s.boards[board.ID] = clone
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, boardID id.BoardID) (*models.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	board, ok := s.boards[boardID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneBoard(board), nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	boards := make([]*models.Board, 0, len(s.boards))
	for _, board := range s.boards {
		boards = append(boards, cloneBoard(board))
	}
	sort.Slice(boards, func(i, j int) bool {
		if boards[i].CreatedAt.Equal(boards[j].CreatedAt) {
			return boards[i].ID.String() > boards[j].ID.String()
		}
		return boards[i].CreatedAt.After(boards[j].CreatedAt)
	})
	return boards, nil
}

func (s *InMemoryStore) Update(_ context.Context, board *models.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.boards[board.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.boards[board.ID] = cloneBoard(board)
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, boardID id.BoardID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.boards[boardID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.boards, boardID)
	return nil
}

func (s *InMemoryStore) DeleteByOwner(_ context.Context, ownerID id.UserID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for boardID, board := range s.boards {
		if board.OwnerID == ownerID {
			delete(s.boards, boardID)
			deleted++
		}
	}
	return deleted, nil
}

func cloneBoard(board *models.Board) *models.Board {
	clone := *board
	clone.Images = append([]string(nil), board.Images...)
	return &clone
}
