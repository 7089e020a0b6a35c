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

// MockCommentRepository mocks the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) ListByReview(ctx context.Context, reviewID int64, limit, offset int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, reviewID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, reviewID, commentID int64) (*models.Comment, error) {
	args := m.Called(ctx, reviewID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, reviewID, commentID int64) error {
	args := m.Called(ctx, reviewID, commentID)
	return args.Error(0)
}

func TestCommentCreate_Success(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	reviewRepo := new(MockReviewRepository)
	svc := NewCommentService(commentRepo, reviewRepo)

	reviewRepo.On("GetByID", mock.Anything, int64(1), int64(2)).Return(&models.Review{ID: 2, TitleID: 1}, nil)
	commentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Comment")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Comment).ID = 7
		}).Return(nil)
	commentRepo.On("GetByID", mock.Anything, int64(2), int64(7)).Return(&models.Comment{
		ID:       7,
		AuthorID: "author-id",
		ReviewID: 2,
		Text:     "Agreed",
		Author:   models.User{Username: "commenter"},
	}, nil)

	comment, err := svc.Create(context.Background(), reviewAuthor(), 1, 2, dto.CreateCommentRequest{Text: "Agreed"})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), comment.ID)
	assert.Equal(t, "commenter", comment.Author)
}

func TestCommentCreate_ReviewFromOtherTitleIsNotFound(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	reviewRepo := new(MockReviewRepository)
	svc := NewCommentService(commentRepo, reviewRepo)

	reviewRepo.On("GetByID", mock.Anything, int64(99), int64(2)).Return(nil, apperr.ErrNotFound)

	_, err := svc.Create(context.Background(), reviewAuthor(), 99, 2, dto.CreateCommentRequest{Text: "Lost"})

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCommentUpdate_StrangerForbidden(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	reviewRepo := new(MockReviewRepository)
	svc := NewCommentService(commentRepo, reviewRepo)

	reviewRepo.On("GetByID", mock.Anything, int64(1), int64(2)).Return(&models.Review{ID: 2, TitleID: 1}, nil)
	commentRepo.On("GetByID", mock.Anything, int64(2), int64(7)).
		Return(&models.Comment{ID: 7, AuthorID: "author-id", ReviewID: 2}, nil)

	stranger := permissions.Actor{Authenticated: true, ID: "other-id", Role: models.RoleUser}
	newText := "Edited"
	comment, err := svc.Update(context.Background(), stranger, 1, 2, 7, dto.UpdateCommentRequest{Text: &newText})

	assert.Nil(t, comment)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestCommentDelete_AdminAllowed(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	reviewRepo := new(MockReviewRepository)
	svc := NewCommentService(commentRepo, reviewRepo)

	reviewRepo.On("GetByID", mock.Anything, int64(1), int64(2)).Return(&models.Review{ID: 2, TitleID: 1}, nil)
	commentRepo.On("GetByID", mock.Anything, int64(2), int64(7)).
		Return(&models.Comment{ID: 7, AuthorID: "author-id", ReviewID: 2}, nil)
	commentRepo.On("Delete", mock.Anything, int64(2), int64(7)).Return(nil)

	admin := permissions.Actor{Authenticated: true, ID: "admin-id", Role: models.RoleAdmin}
	err := svc.Delete(context.Background(), admin, 1, 2, 7)

	assert.NoError(t, err)
	commentRepo.AssertExpectations(t)
}
