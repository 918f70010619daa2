package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("middleware-test-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, claims jwt.MapClaims, method jwt.SigningMethod, key interface{}) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims(role string) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"aud":   "admin_client",
		"uid":   "7",
		"role":  role,
		"scope": "read write",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
}

func protectedRouter(role string) *gin.Engine {
	router := gin.New()
	group := router.Group("/", OAuth2Auth(testSecret))
	if role != "" {
		group.Use(RequireRole(role))
	}
	group.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":   c.GetUint(ContextUserID),
			"role":      c.GetString(ContextUserRole),
			"client_id": c.GetString(ContextClientID),
			"scopes":    c.GetStringSlice(ContextScopes),
		})
	})
	return router
}

func get(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestOAuth2AuthAcceptsValidToken(t *testing.T) {
	token := signToken(t, validClaims("admin"), jwt.SigningMethodHS256, testSecret)

	w := get(protectedRouter(""), "Bearer "+token)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"user_id":7,"role":"admin","client_id":"admin_client","scopes":["read","write"]}`, w.Body.String())
}

func TestOAuth2AuthRejections(t *testing.T) {
	expired := validClaims("admin")
	expired["exp"] = time.Now().Add(-time.Minute).Unix()

	future := validClaims("admin")
	future["iat"] = time.Now().Add(time.Hour).Unix()

	notYet := validClaims("admin")
	notYet["nbf"] = time.Now().Add(time.Hour).Unix()

	noExp := validClaims("admin")
	delete(noExp, "exp")

	noUID := validClaims("admin")
	delete(noUID, "uid")

	zeroUID := validClaims("admin")
	zeroUID["uid"] = "0"

	badRole := validClaims("superuser")

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"empty token", "Bearer "},
		{"wrong secret", "Bearer " + signToken(t, validClaims("admin"), jwt.SigningMethodHS256, []byte("other"))},
		{"expired", "Bearer " + signToken(t, expired, jwt.SigningMethodHS256, testSecret)},
		{"issued in the future", "Bearer " + signToken(t, future, jwt.SigningMethodHS256, testSecret)},
		{"not yet valid", "Bearer " + signToken(t, notYet, jwt.SigningMethodHS256, testSecret)},
		{"no exp", "Bearer " + signToken(t, noExp, jwt.SigningMethodHS256, testSecret)},
		{"no uid", "Bearer " + signToken(t, noUID, jwt.SigningMethodHS256, testSecret)},
		{"zero uid", "Bearer " + signToken(t, zeroUID, jwt.SigningMethodHS256, testSecret)},
		{"unknown role", "Bearer " + signToken(t, badRole, jwt.SigningMethodHS256, testSecret)},
		{"unsigned", "Bearer " + signToken(t, validClaims("admin"), jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType)},
	}

	router := protectedRouter("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(router, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Bearer")
		})
	}
}

func TestRequireRole(t *testing.T) {
	router := protectedRouter("admin")

	w := get(router, "Bearer "+signToken(t, validClaims("admin"), jwt.SigningMethodHS256, testSecret))
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(router, "Bearer "+signToken(t, validClaims("user"), jwt.SigningMethodHS256, testSecret))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestRequireRoleWithoutAuthentication(t *testing.T) {
	router := gin.New()
	router.GET("/admin", RequireRole("admin"), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests {
			assert.Equal(t, "1", w.Header().Get("Retry-After"))
			assert.Contains(t, w.Body.String(), "TOO_MANY_REQUESTS")
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	assert.True(t, limiter.Allow("10.0.0.1"), "buckets are per client")
}

func TestRateLimiterDropsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }
	limiter.lastSweep = clock

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		limiter.Allow(ip)
	}
	assert.Equal(t, 3, limiter.Len())

	clock = clock.Add(defaultIdleTTL / 2)
	limiter.Allow("10.0.0.2")
	assert.Equal(t, 3, limiter.Len(), "no sweep before the idle period has passed")

	clock = clock.Add(defaultIdleTTL/2 + time.Second)
	limiter.Allow("10.0.0.4")
	assert.Equal(t, 2, limiter.Len(), "only the recently seen client and the new one remain")
	assert.Contains(t, limiter.limiters, "10.0.0.2")
	assert.Contains(t, limiter.limiters, "10.0.0.4")
}

func TestRateLimiterCapsTrackedClients(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	limiter.maxClients = 2
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }

	limiter.Allow("10.0.0.1")
	clock = clock.Add(time.Second)
	limiter.Allow("10.0.0.2")
	clock = clock.Add(time.Second)
	limiter.Allow("10.0.0.3")

	assert.Equal(t, 2, limiter.Len())
	assert.NotContains(t, limiter.limiters, "10.0.0.1", "the least recently seen client is evicted")
}

func TestRateLimiterIdlePeriodCoversRefill(t *testing.T) {
	slow := NewRateLimiter(0.001, 5)
	assert.Equal(t, 5000*time.Second, slow.idleTTL)

	fast := NewRateLimiter(10, 20)
	assert.Equal(t, defaultIdleTTL, fast.idleTTL)
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"https://pizza.example.com"}))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://pizza.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "https://pizza.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
