package models

import (
	"strings"
	"time"

	id "pawboard/pkg/domain"
	dErrors "pawboard/pkg/domain-errors"
)

const (
	// Limits carried over from the posting form.
	MaxTitleLen   = 50
	MaxContentLen = 1000
)

// Board is a community post.
//
// Invariants:
//   - OwnerID is set at creation and never changes
//   - Title and Content are non-empty and within their length limits
//   - LikeCount never goes negative
type Board struct {
	ID         id.BoardID `json:"id"`
	OwnerID    id.UserID  `json:"owner_id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	AnimalType string     `json:"animal_type,omitempty"`
	Category   string     `json:"category,omitempty"`
	Images     []string   `json:"images"`
	LikeCount  int        `json:"like_count"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NewBoard constructs a board owned by the given user.
func NewBoard(boardID id.BoardID, ownerID id.UserID, req CreateBoardRequest, now time.Time) (*Board, error) {
	if err := validateTitleContent(&req.Title, &req.Content); err != nil {
		return nil, err
	}
	if ownerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "owner is required")
	}

	images := req.Images
	if images == nil {
		images = []string{}
	}

	return &Board{
		ID:         boardID,
		OwnerID:    ownerID,
		Title:      req.Title,
		Content:    req.Content,
		AnimalType: strings.TrimSpace(req.AnimalType),
		Category:   strings.TrimSpace(req.Category),
		Images:     images,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// CreateBoardRequest carries the owner-supplied fields of a new board.
type CreateBoardRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	AnimalType string   `json:"animal_type"`
	Category   string   `json:"category"`
	Images     []string `json:"images"`
}

// BoardPatch is a partial board update. Ownership and like count are not
// patchable: the owner edits content, nothing else.
type BoardPatch struct {
	Title      *string   `json:"title,omitempty"`
	Content    *string   `json:"content,omitempty"`
	AnimalType *string   `json:"animal_type,omitempty"`
	Category   *string   `json:"category,omitempty"`
	Images     *[]string `json:"images,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p BoardPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.AnimalType == nil &&
		p.Category == nil && p.Images == nil
}

func validateTitleContent(title, content *string) error {
	*title = strings.TrimSpace(*title)
	*content = strings.TrimSpace(*content)

	if *title == "" {
		return dErrors.New(dErrors.CodeBadRequest, "title is required")
	}
	if len(*title) > MaxTitleLen {
		return dErrors.Newf(dErrors.CodeBadRequest, "title must be at most %d characters", MaxTitleLen)
	}
	if *content == "" {
		return dErrors.New(dErrors.CodeBadRequest, "content is required")
	}
	if len(*content) > MaxContentLen {
		return dErrors.Newf(dErrors.CodeBadRequest, "content must be at most %d characters", MaxContentLen)
	}
	return nil
}
