package handler

import (
	"bytes"
	"context"
	"encoding/json"
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

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignUp_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/signup", handler.SignUp)

	user := &models.User{Username: "testuser", Email: "test@example.com"}
	mockAuthService.On("SignUp", mock.Anything, dto.SignUpRequest{
		Username: "testuser",
		Email:    "test@example.com",
	}).Return(user, nil)

	w := postJSON(router, "/signup", dto.SignUpRequest{
		Username: "testuser",
		Email:    "test@example.com",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.SignUpResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "testuser", response.Username)
	assert.Equal(t, "test@example.com", response.Email)
	mockAuthService.AssertExpectations(t)
}

func TestSignUp_PartialCollisionIsBadRequest(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/signup", handler.SignUp)

	mockAuthService.On("SignUp", mock.Anything, mock.Anything).
		Return(nil, apperr.Conflictf("username already in use"))

	w := postJSON(router, "/signup", dto.SignUpRequest{
		Username: "testuser",
		Email:    "other@example.com",
	})

	// Conflicts on this surface read as a malformed request, not 409.
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignUp_MissingEmail(t *testing.T) {
	handler := NewAuthHandler(new(MockAuthService))
	router := setupRouter()
	router.POST("/signup", handler.SignUp)

	w := postJSON(router, "/signup", map[string]string{"username": "testuser"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToken_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/token", handler.Token)

	mockAuthService.On("IssueToken", mock.Anything, dto.TokenRequest{
		Username:         "testuser",
		ConfirmationCode: "code-1234",
	}).Return("signed.jwt.token", nil)

	w := postJSON(router, "/token", dto.TokenRequest{
		Username:         "testuser",
		ConfirmationCode: "code-1234",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.TokenResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "signed.jwt.token", response.Token)
}

func TestToken_UnknownUserIs404(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/token", handler.Token)

	mockAuthService.On("IssueToken", mock.Anything, mock.Anything).
		Return("", apperr.NotFoundf("user nonexistent not found"))

	w := postJSON(router, "/token", dto.TokenRequest{
		Username:         "nonexistent",
		ConfirmationCode: "whatever",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToken_WrongCodeIs400(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/token", handler.Token)

	mockAuthService.On("IssueToken", mock.Anything, mock.Anything).
		Return("", apperr.Validationf("invalid confirmation code"))

	w := postJSON(router, "/token", dto.TokenRequest{
		Username:         "testuser",
		ConfirmationCode: "wrong",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
