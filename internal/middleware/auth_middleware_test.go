package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkuznetsov/awardhub/internal/app/models"
	"github.com/dkuznetsov/awardhub/internal/pkg/auth"
)

func newTestRouter(jwtService *auth.JWTService, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(jwtService)

	router := gin.New()
	handlers := append([]gin.HandlerFunc{m.JWTAuth()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		userID, ok := UserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userID": userID})
	})
	router.GET("/protected", handlers...)
	return router
}

func issueAccessToken(t *testing.T, jwtService *auth.JWTService, user *models.User) string {
	t.Helper()
	access, _, err := jwtService.GenerateTokenPair(user)
	require.NoError(t, err)
	return access
}

func testService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		AccessSecret:    "access-secret",
		RefreshSecret:   "refresh-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "awardhub-test",
	})
}

func TestJWTAuthAllowsValidToken(t *testing.T) {
	jwtService := testService()
	router := newTestRouter(jwtService)

	token := issueAccessToken(t, jwtService, &models.User{ID: 5, Role: models.RoleUser})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userID":5`)
}

func TestJWTAuthMissingHeader(t *testing.T) {
	router := newTestRouter(testService())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_007")
}

func TestJWTAuthInvalidToken(t *testing.T) {
	router := newTestRouter(testService())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsSchemelessHeader(t *testing.T) {
	jwtService := testService()
	router := newTestRouter(jwtService)

	// A valid token sent without the Bearer scheme must not authenticate
	token := issueAccessToken(t, jwtService, &models.User{ID: 5, Role: models.RoleUser})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token format")
}

func TestJWTAuthExpiredToken(t *testing.T) {
	expiredService := auth.NewJWTService(auth.JWTConfig{
		AccessSecret:    "access-secret",
		RefreshSecret:   "refresh-secret",
		AccessTokenExp:  -time.Minute,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "awardhub-test",
	})
	router := newTestRouter(expiredService)

	token := issueAccessToken(t, expiredService, &models.User{ID: 5, Role: models.RoleUser})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestRoleRequired(t *testing.T) {
	jwtService := testService()
	m := NewAuthMiddleware(jwtService)
	router := newTestRouter(jwtService, m.RoleRequired(string(models.RoleAdmin)))

	adminToken := issueAccessToken(t, jwtService, &models.User{ID: 1, Role: models.RoleAdmin})
	userToken := issueAccessToken(t, jwtService, &models.User{ID: 2, Role: models.RoleUser})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
