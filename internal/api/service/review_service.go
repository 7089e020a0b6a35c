package service

import (
	"context"
	"net/http"

	"reviewhub/internal/api/apperr"
	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/permissions"
	"reviewhub/internal/api/repository"
)

type ReviewService interface {
	List(ctx context.Context, titleID int64, p dto.PageParams) (*dto.Page[dto.ReviewResponse], error)
	Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error)
	Create(ctx context.Context, actor permissions.Actor, titleID int64, req dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	Update(ctx context.Context, actor permissions.Actor, titleID, reviewID int64, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, actor permissions.Actor, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
	policy     permissions.Policy
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
		policy:     permissions.AuthorOrPrivileged{},
	}
}

func (s *reviewService) List(ctx context.Context, titleID int64, p dto.PageParams) (*dto.Page[dto.ReviewResponse], error) {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		return nil, err
	}

	reviews, total, err := s.reviewRepo.ListByTitle(ctx, titleID, p.Limit, p.Offset)
	if err != nil {
		return nil, err
	}

	results := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		results = append(results, *dto.FromModelToReviewResponse(&reviews[i]))
	}
	return dto.NewPage(results, total), nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

// Create rejects a second review by the same author for the same title. The
// existence check is the friendly fast path; under concurrent requests the
// unique (author, title) constraint makes the final call.
func (s *reviewService) Create(ctx context.Context, actor permissions.Actor, titleID int64, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsByAuthorAndTitle(ctx, actor.ID, titleID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Validationf("you have already reviewed this title")
	}

	review := &models.Review{
		AuthorID: actor.ID,
		TitleID:  titleID,
		Text:     req.Text,
		Score:    req.Score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	// Reload to populate the author association.
	review, err = s.reviewRepo.GetByID(ctx, titleID, review.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Update(ctx context.Context, actor permissions.Actor, titleID, reviewID int64, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !s.policy.AllowsOnResource(actor, http.MethodPatch, review.AuthorID) {
		return nil, apperr.ErrForbidden
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		// Binding treats a zero score as absent, so the range is enforced
		// here before the check constraint turns it into a storage error.
		if *req.Score < 1 || *req.Score > 10 {
			return nil, apperr.Validationf("score must be between 1 and 10")
		}
		review.Score = *req.Score
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Delete(ctx context.Context, actor permissions.Actor, titleID, reviewID int64) error {
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if !s.policy.AllowsOnResource(actor, http.MethodDelete, review.AuthorID) {
		return apperr.ErrForbidden
	}

	// Comments on the review cascade through the declared constraint.
	return s.reviewRepo.Delete(ctx, titleID, reviewID)
}
