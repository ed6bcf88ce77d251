package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/eventhub-id/eventhub-api/config"
	"github.com/eventhub-id/eventhub-api/models"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestPassword is the plain password of users made by CreateTestUser
const TestPassword = "Passw0rd123"

var testUserSeq int64

// SetupTestDB opens a private in-memory database, migrates it and
// installs it as config.DB
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	config.DB = db

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// SetupTestRedis starts an in-process Redis and installs a client as config.Redis
func SetupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	config.Redis = client
	t.Cleanup(func() {
		_ = client.Close()
		config.Redis = nil
	})
	return client, mr
}

// CreateTestUser creates a verified user with the given role and point balance
func CreateTestUser(t *testing.T, db *gorm.DB, role string, points int) *models.User {
	t.Helper()

	seq := atomic.AddInt64(&testUserSeq, 1)
	hash, err := HashPassword(TestPassword)
	require.NoError(t, err)

	user := &models.User{
		Fullname:       fmt.Sprintf("Test User %d", seq),
		Email:          fmt.Sprintf("user%d@example.com", seq),
		Password:       hash,
		Role:           role,
		IsVerified:     true,
		ReferralCode:   fmt.Sprintf("%08X", 0xA0000000+seq),
		ReferralPoints: points,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// GetTestToken generates a session token for user
func GetTestToken(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := GenerateToken(user)
	require.NoError(t, err)
	return token
}

// TestRequest represents a test HTTP request
type TestRequest struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
}

// TestResponse represents a test HTTP response
type TestResponse struct {
	StatusCode int
	Header     http.Header
	Body       map[string]interface{}
}

// Data returns the "data" object of a standard response body
func (r TestResponse) Data() map[string]interface{} {
	data, _ := r.Body["data"].(map[string]interface{})
	return data
}

// MakeTestRequest makes a test HTTP request
func MakeTestRequest(t *testing.T, router http.Handler, req TestRequest) TestResponse {
	t.Helper()

	var body []byte
	if req.Body != nil {
		var err error
		body, err = json.Marshal(req.Body)
		require.NoError(t, err)
	}

	httpReq, err := http.NewRequest(req.Method, req.Path, bytes.NewBuffer(body))
	require.NoError(t, err)

	httpReq.Header.Set("Content-Type", "application/json")
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)

	var responseBody map[string]interface{}
	if w.Body.Len() > 0 && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &responseBody))
	}

	return TestResponse{
		StatusCode: w.Code,
		Header:     w.Header(),
		Body:       responseBody,
	}
}

// AssertStatus asserts the response status, printing the body on mismatch
func AssertStatus(t *testing.T, response TestResponse, expected int) {
	t.Helper()
	assert.Equal(t, expected, response.StatusCode, "body: %v", response.Body)
}

// NewTestRouter returns a gin engine in test mode with the error translator installed
func NewTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	return r
}
