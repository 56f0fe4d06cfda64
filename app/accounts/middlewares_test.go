package accounts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ospex-org/ospex/app/api"
	"github.com/ospex-org/ospex/internal/security"
)

type fakeAuthService struct {
	capabilities []string
	err          error
}

func (s *fakeAuthService) GetAccountCapabilities(_ context.Context, _ uuid.UUID) ([]string, error) {
	return s.capabilities, s.err
}

func performAuthRequest(tokenMaker security.Maker, authService AuthService, header string) (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()

	var captured *gin.Context
	engine := gin.New()
	engine.GET("/protected", AuthMiddleware(tokenMaker, authService), func(c *gin.Context) {
		captured = c
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set(AuthorizationHeaderKey, header)
	}
	engine.ServeHTTP(recorder, req)
	return recorder, captured
}

func TestAuthMiddleware(t *testing.T) {
	accountID := uuid.New()

	t.Run("accepts a valid bearer token", func(t *testing.T) {
		tokenMaker := new(security.MockMaker)
		tokenMaker.On("VerifyToken", "valid-token").
			Return(&security.Payload{AccountID: accountID}, nil)
		authService := &fakeAuthService{capabilities: []string{"relayer"}}

		recorder, captured := performAuthRequest(tokenMaker, authService, "Bearer valid-token")

		assert.Equal(t, http.StatusOK, recorder.Code)
		id, ok := AccountIDFromContext(captured)
		assert.True(t, ok)
		assert.Equal(t, accountID, id)
		caps, _ := captured.Get(api.ContextKeyCapabilities)
		assert.Equal(t, []string{"relayer"}, caps)
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		tokenMaker := new(security.MockMaker)
		recorder, _ := performAuthRequest(tokenMaker, &fakeAuthService{}, "")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		tokenMaker.AssertNotCalled(t, "VerifyToken", mock.Anything)
	})

	t.Run("rejects a malformed header", func(t *testing.T) {
		tokenMaker := new(security.MockMaker)
		recorder, _ := performAuthRequest(tokenMaker, &fakeAuthService{}, "Basic abc123")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("rejects an invalid token", func(t *testing.T) {
		tokenMaker := new(security.MockMaker)
		tokenMaker.On("VerifyToken", "expired").
			Return(nil, security.ErrExpiredToken)

		recorder, _ := performAuthRequest(tokenMaker, &fakeAuthService{}, "Bearer expired")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("fails closed when capabilities cannot load", func(t *testing.T) {
		tokenMaker := new(security.MockMaker)
		tokenMaker.On("VerifyToken", "valid-token").
			Return(&security.Payload{AccountID: accountID}, nil)
		authService := &fakeAuthService{err: errors.New("cache down")}

		recorder, _ := performAuthRequest(tokenMaker, authService, "Bearer valid-token")
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}

func TestAccountIDFromContextMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := AccountIDFromContext(c)
	assert.False(t, ok)
}
