package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reviewhub/internal/api/apperr"
	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/service"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, req dto.SignUpRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) IssueToken(ctx context.Context, req dto.TokenRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsernameAndEmail(ctx context.Context, username, email string) (*models.User, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteByUsername(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, search string, limit, offset int) ([]models.User, int64, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func authRouter(authService *MockAuthService, userRepo *MockUserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Authenticate(authService, userRepo))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": ActorFrom(c).ID})
	})
	return r
}

func get(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticate_NoHeaderIsAnonymous(t *testing.T) {
	router := authRouter(new(MockAuthService), new(MockUserRepository))

	w := get(router, "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	router := authRouter(new(MockAuthService), new(MockUserRepository))

	w := get(router, "Basic abc123")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	authService := new(MockAuthService)
	authService.On("ValidateToken", "bad-token").Return(nil, errors.New("token is malformed"))
	router := authRouter(authService, new(MockUserRepository))

	w := get(router, "Bearer bad-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_DeletedUserIs401(t *testing.T) {
	authService := new(MockAuthService)
	userRepo := new(MockUserRepository)
	authService.On("ValidateToken", "token").Return(&service.Claims{UserID: "gone-id"}, nil)
	userRepo.On("FindByID", mock.Anything, "gone-id").Return(nil, apperr.ErrNotFound)
	router := authRouter(authService, userRepo)

	w := get(router, "Bearer token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_StorageFailureIs500(t *testing.T) {
	authService := new(MockAuthService)
	userRepo := new(MockUserRepository)
	authService.On("ValidateToken", "token").Return(&service.Claims{UserID: "user-id"}, nil)
	userRepo.On("FindByID", mock.Anything, "user-id").Return(nil, errors.New("connection refused"))
	router := authRouter(authService, userRepo)

	w := get(router, "Bearer token")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	authService := new(MockAuthService)
	userRepo := new(MockUserRepository)
	authService.On("ValidateToken", "token").Return(&service.Claims{UserID: "user-id"}, nil)
	userRepo.On("FindByID", mock.Anything, "user-id").Return(&models.User{
		ID:       "user-id",
		Username: "testuser",
		Role:     models.RoleUser,
	}, nil)
	router := authRouter(authService, userRepo)

	w := get(router, "Bearer token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-id")
}
