package models

import (
	"strings"
	"time"

	id "pawboard/pkg/domain"
	dErrors "pawboard/pkg/domain-errors"
)

const (
	MaxTitleLen   = 50
	MaxContentLen = 1000

	MinRating = 1
	MaxRating = 5
)

// Review is a service review left by a user.
//
// Invariants:
//   - OwnerID is set at creation and never changes
//   - Rating is in [MinRating, MaxRating]
type Review struct {
	ID        id.ReviewID `json:"id"`
	OwnerID   id.UserID   `json:"owner_id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Rating    int         `json:"rating"`
	Images    []string    `json:"images"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewReview constructs a review owned by the given user.
func NewReview(reviewID id.ReviewID, ownerID id.UserID, req CreateReviewRequest, now time.Time) (*Review, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)

	if req.Title == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "title is required")
	}
	if len(req.Title) > MaxTitleLen {
		return nil, dErrors.Newf(dErrors.CodeBadRequest, "title must be at most %d characters", MaxTitleLen)
	}
	if req.Content == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "content is required")
	}
	if len(req.Content) > MaxContentLen {
		return nil, dErrors.Newf(dErrors.CodeBadRequest, "content must be at most %d characters", MaxContentLen)
	}
	if err := ValidateRating(req.Rating); err != nil {
		return nil, err
	}
	if ownerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "owner is required")
	}

	images := req.Images
	if images == nil {
		images = []string{}
	}

	return &Review{
		ID:        reviewID,
		OwnerID:   ownerID,
		Title:     req.Title,
		Content:   req.Content,
		Rating:    req.Rating,
		Images:    images,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ValidateRating rejects ratings outside the 1..5 scale.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return dErrors.Newf(dErrors.CodeBadRequest, "rating must be between %d and %d", MinRating, MaxRating)
	}
	return nil
}

// CreateReviewRequest carries the owner-supplied fields of a new review.
type CreateReviewRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Rating  int      `json:"rating"`
	Images  []string `json:"images"`
}

// ReviewPatch is a partial review update. Ownership is not patchable.
type ReviewPatch struct {
	Title   *string   `json:"title,omitempty"`
	Content *string   `json:"content,omitempty"`
	Rating  *int      `json:"rating,omitempty"`
	Images  *[]string `json:"images,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ReviewPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Rating == nil && p.Images == nil
}
