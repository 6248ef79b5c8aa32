package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"clinic-chat/config"
	"clinic-chat/internal/repository"
	clinic_errors "clinic-chat/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthService issues and verifies bearer tokens. There are no passwords: a
// token simply asserts which registered user is acting.
type AuthService struct {
	users     *UserService
	jwtSecret []byte
	accessTTL time.Duration
	now       func() time.Time
}

func NewAuthService(users *UserService, cfg *config.Config) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: []byte(cfg.JWTSecret),
		accessTTL: cfg.JWTExpiry,
		now:       time.Now,
	}
}

type AccessClaims struct {
	UserID string   `json:"sub"`
	Roles  []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	UserID      string `json:"user_id"`
}

// IssueToken mints an access token for an existing user.
func (s *AuthService) IssueToken(ctx context.Context, userID uuid.UUID) (TokenResponse, error) {
	var roles []string
	err := s.users.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		u, err := s.users.get(ctx, repos, userID, "user not found")
		if err != nil {
			return err
		}
		for _, r := range u.Roles() {
			roles = append(roles, string(r))
		}
		return nil
	})
	if err != nil {
		return TokenResponse{}, err
	}

	now := s.now()
	claims := AccessClaims{
		UserID: userID.String(),
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return TokenResponse{}, err
	}

	return TokenResponse{
		AccessToken: signed,
		ExpiresIn:   int64(s.accessTTL.Seconds()),
		UserID:      userID.String(),
	}, nil
}

func (s *AuthService) ParseAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, clinic_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, clinic_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return AccessClaims{}, clinic_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return AccessClaims{}, clinic_errors.ErrUnauthorized
	}

	return *claims, nil
}

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, clinic_errors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, clinic_errors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, clinic_errors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, clinic_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, clinic_errors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, clinic_errors.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, clinic_errors.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type ctxKey string

var userIDKey ctxKey = "user_id"

func WithUserContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	value := ctx.Value(userIDKey)
	if value == nil {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

// AuthorizeActor checks that actorID is the authenticated user. Without an
// authenticated user in ctx every actor is accepted.
func AuthorizeActor(ctx context.Context, actorID uuid.UUID) error {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil
	}
	if userID != actorID {
		return clinic_errors.Forbidden("acting user does not match the authenticated user")
	}
	return nil
}
