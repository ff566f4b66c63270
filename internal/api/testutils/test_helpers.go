package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/manvaasam/manvaasam-server/internal/api"
	"github.com/manvaasam/manvaasam-server/internal/config"
	"github.com/manvaasam/manvaasam-server/internal/models"
	"github.com/manvaasam/manvaasam-server/internal/repository"
	"github.com/manvaasam/manvaasam-server/internal/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// TestContext holds all dependencies for tests
type TestContext struct {
	Router     *gin.Engine
	Repository repository.Repository
	Service    service.Service
	Challenges repository.ChallengeStore
	JWTSecret  []byte
	DB         *sqlx.DB

	// Pre-created accounts
	FarmerID    string
	FarmerMRID  string
	FarmerJWT   string
	IndustryID  string
	IndustryJWT string
}

// logSender drops codes; tests read them from the echoed response instead.
type logSender struct{}

func (logSender) Send(ctx context.Context, phone, code string) error { return nil }

// SetupTestContext creates a new test context with initialized dependencies
func SetupTestContext(t *testing.T) *TestContext {
	// Load configuration from environment
	cfg := config.LoadConfig()

	// Override with test-specific config
	if cfg.Database.DBName == "manvaasam" && cfg.Database.TestDBName != "" {
		cfg.Database.DBName = cfg.Database.TestDBName
	} else if cfg.Database.TestDBName == "" {
		// Fallback to hardcoded test DB if not in environment
		cfg.Database.DBName = "manvaasam_test"
	}

	// Use a test JWT secret
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "test-secret-key"
	}

	// Set up database
	db, err := config.SetupDatabase(cfg)
	assert.NoError(t, err, "Failed to set up test database")

	// Create repository and OTP challenge store
	repo := repository.NewPostgresRepository(db)
	challenges := repository.NewMemoryChallengeStore()

	// Create service with OTP echo enabled so tests can read the code
	svc := service.NewDefaultService(repo, challenges, logSender{}, cfg.Auth.JWTSecret, true)

	// Create API handler
	handler := api.NewHandler(svc, zap.NewNop())

	// Set up Gin router
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(cfg.Auth.JWTSecret))
		c.Next()
	})

	// Set up routes
	handler.SetupRoutes(router)

	testCtx := &TestContext{
		Router:     router,
		Repository: repo,
		Service:    svc,
		Challenges: challenges,
		JWTSecret:  []byte(cfg.Auth.JWTSecret),
		DB:         db,
	}

	// Create one farmer and one industry account for tests to use
	cleanupTestDatabase(t, repo)
	testCtx.FarmerID, testCtx.FarmerMRID, testCtx.FarmerJWT =
		createTestFarmer(t, repo, cfg.Auth.JWTSecret)
	testCtx.IndustryID, _, testCtx.IndustryJWT =
		createTestIndustry(t, repo, cfg.Auth.JWTSecret)

	return testCtx
}

// CleanupTestContext cleans up test resources
func CleanupTestContext(t *TestContext) {
	if t.DB != nil {
		cleanupTestDatabase(nil, t.Repository)
		t.DB.Close()
	}
}

// cleanupTestDatabase removes any existing test users and data
func cleanupTestDatabase(t *testing.T, repo repository.Repository) {
	// Execute cleanup SQL directly through the DB connection
	if pgRepo, ok := repo.(*repository.PostgresRepository); ok {
		db := pgRepo.GetDB()

		for _, table := range []string{"records", "harvests", "demands", "users"} {
			_, err := db.Exec("DELETE FROM " + table)
			if t != nil && err != nil {
				t.Logf("Warning: Failed to clean %s: %v", table, err)
			}
		}
	}
}

// Helper functions
func createTestFarmer(t *testing.T, repo repository.Repository, jwtSecret string) (id, mrid, token string) {
	user := &models.User{
		ID:       uuid.New().String(),
		Phone:    "9876543210",
		Type:     models.UserTypeFarmer,
		MRID:     fmt.Sprintf("FTEST%d", time.Now().UnixMilli()),
		Name:     "Test Farmer",
		Aadhaar:  "123456789012",
		District: "Chennai",
		City:     "Tambaram",
	}

	err := repo.CreateUser(context.Background(), user)
	assert.NoError(t, err, "Failed to create test farmer")

	return user.ID, user.MRID, signTestJWT(t, user.ID, jwtSecret)
}

func createTestIndustry(t *testing.T, repo repository.Repository, jwtSecret string) (id, mrid, token string) {
	user := &models.User{
		ID:           uuid.New().String(),
		Phone:        "9123456780",
		Type:         models.UserTypeIndustry,
		MRID:         fmt.Sprintf("ITEST%d", time.Now().UnixMilli()),
		CompanyName:  "Test Mills",
		IndustryType: "Rice Mill",
		OwnerName:    "Test Owner",
		Aadhaar:      "210987654321",
		District:     "Chennai",
	}

	err := repo.CreateUser(context.Background(), user)
	assert.NoError(t, err, "Failed to create test industry")

	return user.ID, user.MRID, signTestJWT(t, user.ID, jwtSecret)
}

func signTestJWT(t *testing.T, userID, jwtSecret string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	})

	tokenString, err := token.SignedString([]byte(jwtSecret))
	assert.NoError(t, err, "Failed to generate JWT token")

	return tokenString
}

// PerformRequest executes an HTTP request against the router
func PerformRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer

	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// AuthHeaders returns headers with Authorization token
func AuthHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}
