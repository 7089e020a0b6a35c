package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reviewhub/internal/api/apperr"
	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/permissions"
)

// MockReviewRepository mocks the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) ListByTitle(ctx context.Context, titleID int64, limit, offset int) ([]models.Review, int64, error) {
	args := m.Called(ctx, titleID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	args := m.Called(ctx, titleID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) ExistsByAuthorAndTitle(ctx context.Context, authorID string, titleID int64) (bool, error) {
	args := m.Called(ctx, authorID, titleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, titleID, reviewID int64) error {
	args := m.Called(ctx, titleID, reviewID)
	return args.Error(0)
}

func reviewAuthor() permissions.Actor {
	return permissions.Actor{Authenticated: true, ID: "author-id", Role: models.RoleUser}
}

func TestReviewCreate_Success(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	svc := NewReviewService(reviewRepo, titleRepo)

	titleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	reviewRepo.On("ExistsByAuthorAndTitle", mock.Anything, "author-id", int64(1)).Return(false, nil)
	reviewRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Review")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Review).ID = 42
		}).Return(nil)
	reviewRepo.On("GetByID", mock.Anything, int64(1), int64(42)).Return(&models.Review{
		ID:       42,
		AuthorID: "author-id",
		TitleID:  1,
		Text:     "Loved it",
		Score:    9,
		Author:   models.User{Username: "reviewer"},
	}, nil)

	review, err := svc.Create(context.Background(), reviewAuthor(), 1, dto.CreateReviewRequest{
		Text:  "Loved it",
		Score: 9,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), review.ID)
	assert.Equal(t, "reviewer", review.Author)
	reviewRepo.AssertExpectations(t)
}

func TestReviewCreate_SecondReviewRejected(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	svc := NewReviewService(reviewRepo, titleRepo)

	titleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	reviewRepo.On("ExistsByAuthorAndTitle", mock.Anything, "author-id", int64(1)).Return(true, nil)

	review, err := svc.Create(context.Background(), reviewAuthor(), 1, dto.CreateReviewRequest{
		Text:  "Again",
		Score: 5,
	})

	assert.Nil(t, review)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewCreate_UnknownTitle(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	svc := NewReviewService(reviewRepo, titleRepo)

	titleRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, apperr.ErrNotFound)

	_, err := svc.Create(context.Background(), reviewAuthor(), 404, dto.CreateReviewRequest{
		Text:  "Void",
		Score: 5,
	})

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestReviewUpdate_AuthorAllowed(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	svc := NewReviewService(reviewRepo, new(MockTitleRepository))

	stored := &models.Review{ID: 42, AuthorID: "author-id", TitleID: 1, Text: "Old", Score: 5}
	reviewRepo.On("GetByID", mock.Anything, int64(1), int64(42)).Return(stored, nil)
	reviewRepo.On("Update", mock.Anything, stored).Return(nil)

	newText := "Updated"
	review, err := svc.Update(context.Background(), reviewAuthor(), 1, 42, dto.UpdateReviewRequest{Text: &newText})

	assert.NoError(t, err)
	assert.Equal(t, "Updated", review.Text)
}

func TestReviewUpdate_ZeroScoreRejected(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	svc := NewReviewService(reviewRepo, new(MockTitleRepository))

	stored := &models.Review{ID: 42, AuthorID: "author-id", TitleID: 1, Text: "Old", Score: 5}
	reviewRepo.On("GetByID", mock.Anything, int64(1), int64(42)).Return(stored, nil)

	zero := 0
	review, err := svc.Update(context.Background(), reviewAuthor(), 1, 42, dto.UpdateReviewRequest{Score: &zero})

	assert.Nil(t, review)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	reviewRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	eleven := 11
	review, err = svc.Update(context.Background(), reviewAuthor(), 1, 42, dto.UpdateReviewRequest{Score: &eleven})

	assert.Nil(t, review)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestReviewUpdate_StrangerForbidden(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	svc := NewReviewService(reviewRepo, new(MockTitleRepository))

	stored := &models.Review{ID: 42, AuthorID: "author-id", TitleID: 1}
	reviewRepo.On("GetByID", mock.Anything, int64(1), int64(42)).Return(stored, nil)

	stranger := permissions.Actor{Authenticated: true, ID: "other-id", Role: models.RoleUser}
	newText := "Hijacked"
	review, err := svc.Update(context.Background(), stranger, 1, 42, dto.UpdateReviewRequest{Text: &newText})

	assert.Nil(t, review)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	reviewRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestReviewDelete_ModeratorAllowed(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	svc := NewReviewService(reviewRepo, new(MockTitleRepository))

	stored := &models.Review{ID: 42, AuthorID: "author-id", TitleID: 1}
	reviewRepo.On("GetByID", mock.Anything, int64(1), int64(42)).Return(stored, nil)
	reviewRepo.On("Delete", mock.Anything, int64(1), int64(42)).Return(nil)

	moderator := permissions.Actor{Authenticated: true, ID: "mod-id", Role: models.RoleModerator}
	err := svc.Delete(context.Background(), moderator, 1, 42)

	assert.NoError(t, err)
	reviewRepo.AssertExpectations(t)
}

func TestReviewDelete_StrangerForbidden(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	svc := NewReviewService(reviewRepo, new(MockTitleRepository))

	stored := &models.Review{ID: 42, AuthorID: "author-id", TitleID: 1}
	reviewRepo.On("GetByID", mock.Anything, int64(1), int64(42)).Return(stored, nil)

	stranger := permissions.Actor{Authenticated: true, ID: "other-id", Role: models.RoleUser}
	err := svc.Delete(context.Background(), stranger, 1, 42)

	assert.ErrorIs(t, err, apperr.ErrForbidden)
	reviewRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}
