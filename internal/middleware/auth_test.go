package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/microposts/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, userID uint, expiresIn time.Duration) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID: userID,
		Email:  "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// serve runs mw in front of a handler that echoes the resolved user id.
func serve(mw echo.MiddlewareFunc, authHeader string) *httptest.ResponseRecorder {
	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"user_id": c.Get(ContextKeyUserID)})
	}, mw)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthMiddleware(t *testing.T) {
	mw := JWTAuthMiddleware(testSecret)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer " + signToken(t, testSecret, 7, time.Hour), http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, "other", 7, time.Hour), http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, testSecret, 7, -time.Hour), http.StatusUnauthorized},
		{"no user id", "Bearer " + signToken(t, testSecret, 0, time.Hour), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(mw, tt.header)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"user_id":7}`, rec.Body.String())
			}
		})
	}
}

type fakeVerifier struct {
	uid string
	err error
}

func (f fakeVerifier) VerifyIDToken(_ context.Context, _ string) (*auth.Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &auth.Token{UID: f.uid}, nil
}

type fakeUsers map[string]*models.User

func (f fakeUsers) GetUserByFirebaseUID(_ context.Context, uid string) (*models.User, error) {
	if u, ok := f[uid]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func TestFirebaseAuthMiddleware(t *testing.T) {
	users := fakeUsers{"fb-1": {ID: 3, Name: "alice"}}

	t.Run("linked user", func(t *testing.T) {
		rec := serve(FirebaseAuthMiddleware(fakeVerifier{uid: "fb-1"}, users), "Bearer id-token")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"user_id":3}`, rec.Body.String())
	})

	t.Run("unlinked user", func(t *testing.T) {
		rec := serve(FirebaseAuthMiddleware(fakeVerifier{uid: "fb-404"}, users), "Bearer id-token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		rec := serve(FirebaseAuthMiddleware(fakeVerifier{err: errors.New("expired")}, users), "Bearer id-token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := serve(FirebaseAuthMiddleware(fakeVerifier{uid: "fb-1"}, users), "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
