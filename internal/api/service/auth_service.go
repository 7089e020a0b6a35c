package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"reviewhub/internal/api/apperr"
	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/validation"
	"reviewhub/internal/config"
	"reviewhub/internal/mail"
)

const confirmationCodeLength = 40

// Claims is the JWT payload carried by issued tokens.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) (*models.User, error)
	IssueToken(ctx context.Context, req dto.TokenRequest) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo           repository.UserRepository
	sender             mail.Sender
	jwtSecret          string
	confirmationSecret string
	tokenTTL           time.Duration
}

func NewAuthService(userRepo repository.UserRepository, sender mail.Sender, cfg *config.Config) AuthService {
	return &authService{
		userRepo:           userRepo,
		sender:             sender,
		jwtSecret:          cfg.JWTSecret,
		confirmationSecret: cfg.ConfirmationSecret,
		tokenTTL:           cfg.TokenTTL,
	}
}

// SignUp registers a user or repeats registration for an existing
// (username, email) pair. Either way a fresh confirmation code is generated,
// persisted and emailed. A collision on username or email alone, without an
// exact pair match, is a conflict: both fields are globally unique.
func (s *authService) SignUp(ctx context.Context, req dto.SignUpRequest) (*models.User, error) {
	if err := validation.Username(req.Username); err != nil {
		return nil, err
	}
	if err := validation.Email(req.Email); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsernameAndEmail(ctx, req.Username, req.Email)
	switch {
	case err == nil:
		// Exact pair already registered: idempotent, reissue the code.
	case errors.Is(err, apperr.ErrNotFound):
		user, err = s.createUser(ctx, req.Username, req.Email)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	code := s.generateConfirmationCode(user)
	user.ConfirmationCode = &code
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	body, err := mail.ConfirmationBody(user.Username, code)
	if err != nil {
		return nil, err
	}
	// Delivery failure is surfaced to the caller, never swallowed.
	if err := s.sender.Send(user.Email, mail.ConfirmationSubject(), body); err != nil {
		return nil, fmt.Errorf("dispatch confirmation code: %w", err)
	}

	return user, nil
}

func (s *authService) createUser(ctx context.Context, username, email string) (*models.User, error) {
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, apperr.Conflictf("username already in use")
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Conflictf("email already in use")
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Role:     models.RoleUser,
	}
	// The unique constraints stay authoritative under concurrent sign-ups;
	// the lookups above only produce the friendlier error.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflictf("username or email already in use")
		}
		return nil, err
	}
	return user, nil
}

// generateConfirmationCode derives an unpredictable code from the user's
// identity and the current time, keyed by the server secret.
func (s *authService) generateConfirmationCode(user *models.User) string {
	h := hmac.New(sha256.New, []byte(s.confirmationSecret))
	fmt.Fprintf(h, "%s|%s|%s|%d", user.ID, user.Username, user.Email, time.Now().UnixNano())
	code := hex.EncodeToString(h.Sum(nil))
	return code[:confirmationCodeLength]
}

// IssueToken exchanges a confirmation code for a bearer token. The stored
// code is deliberately left in place afterwards; only the next sign-up call
// replaces it.
func (s *authService) IssueToken(ctx context.Context, req dto.TokenRequest) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", apperr.NotFoundf("user %s not found", req.Username)
		}
		return "", err
	}

	if user.ConfirmationCode == nil ||
		subtle.ConstantTimeCompare([]byte(*user.ConfirmationCode), []byte(req.ConfirmationCode)) != 1 {
		return "", apperr.Validationf("invalid confirmation code")
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
