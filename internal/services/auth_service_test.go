package services

import (
	"context"
	"testing"
	"time"

	"clinic-chat/config"
	clinic_errors "clinic-chat/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Tokens(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	p := f.patient(t, "Alice")
	svc := NewAuthService(f.users, &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Minute})

	t.Run("should issue a token whose subject is the user", func(t *testing.T) {
		req := require.New(t)

		token, err := svc.IssueToken(ctx, p.ID)
		req.NoError(err)
		req.NotEmpty(token.AccessToken)
		req.Equal(int64(60), token.ExpiresIn)

		claims, err := svc.ParseAccessToken(token.AccessToken)
		req.NoError(err)
		req.Equal(p.ID.String(), claims.UserID)
		req.Equal([]string{"PATIENT"}, claims.Roles)
	})

	t.Run("should refuse to issue a token for an unknown user", func(t *testing.T) {
		req := require.New(t)

		_, err := svc.IssueToken(ctx, uuid.New())

		req.ErrorIs(err, clinic_errors.ErrNotFound)
	})

	t.Run("should reject empty, foreign and expired tokens", func(t *testing.T) {
		req := require.New(t)

		_, err := svc.ParseAccessToken("")
		req.ErrorIs(err, clinic_errors.ErrUnauthorized)

		other := NewAuthService(f.users, &config.Config{JWTSecret: "other-secret", JWTExpiry: time.Minute})
		foreign, err := other.IssueToken(ctx, p.ID)
		req.NoError(err)
		_, err = svc.ParseAccessToken(foreign.AccessToken)
		req.ErrorIs(err, clinic_errors.ErrUnauthorized)

		expired := NewAuthService(f.users, &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Minute})
		expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
		old, err := expired.IssueToken(ctx, p.ID)
		req.NoError(err)
		_, err = svc.ParseAccessToken(old.AccessToken)
		req.ErrorIs(err, clinic_errors.ErrUnauthorized)
	})

	t.Run("should reject tokens not signed with HMAC", func(t *testing.T) {
		req := require.New(t)

		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, AccessClaims{UserID: p.ID.String()})
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		req.NoError(err)

		_, err = svc.ParseAccessToken(raw)
		req.ErrorIs(err, clinic_errors.ErrUnauthorized)
	})
}

func TestAuthorizeActor(t *testing.T) {
	req := require.New(t)
	userID := uuid.New()

	req.NoError(AuthorizeActor(context.Background(), uuid.New()))

	ctx := WithUserContext(context.Background(), userID)
	req.NoError(AuthorizeActor(ctx, userID))
	req.ErrorIs(AuthorizeActor(ctx, uuid.New()), clinic_errors.ErrForbidden)
}

func TestHTTPStatus(t *testing.T) {
	req := require.New(t)

	req.Equal(400, HTTPStatus(clinic_errors.BadRequest("x")))
	req.Equal(401, HTTPStatus(clinic_errors.ErrUnauthorized))
	req.Equal(403, HTTPStatus(clinic_errors.Forbidden("x")))
	req.Equal(404, HTTPStatus(clinic_errors.NotFound("x")))
	req.Equal(409, HTTPStatus(clinic_errors.Conflict("x")))
	req.Equal(429, HTTPStatus(clinic_errors.ErrRateLimited))
	req.Equal(500, HTTPStatus(context.DeadlineExceeded))
}
