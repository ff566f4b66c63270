package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/manvaasam/manvaasam-server/internal/models"
	"github.com/manvaasam/manvaasam-server/internal/repository"
)

// Service defines all the business logic operations
type Service interface {
	// Authentication
	SendOTP(ctx context.Context, phone string) (*models.SendOTPResponse, error)
	VerifyOTP(ctx context.Context, phone, code string) (*models.VerifyOTPResponse, error)

	// Registration
	RegisterFarmer(ctx context.Context, req models.RegisterFarmerRequest) (*models.RegisterResponse, error)
	RegisterIndustry(ctx context.Context, req models.RegisterIndustryRequest) (*models.RegisterResponse, error)
	GetUser(ctx context.Context, userID string) (*models.UserResponse, error)

	// Listings
	CreateHarvest(ctx context.Context, req models.CreateHarvestRequest) (*models.HarvestResponse, error)
	CreateDemand(ctx context.Context, req models.CreateDemandRequest) (*models.DemandResponse, error)
	AllHarvests(ctx context.Context) (*models.HarvestsResponse, error)
	AllDemands(ctx context.Context) (*models.DemandsResponse, error)
	MyHarvests(ctx context.Context, userID string) (*models.HarvestsResponse, error)
	MyDemands(ctx context.Context, userID string) (*models.DemandsResponse, error)

	// Matching
	MatchingHarvests(ctx context.Context, req models.MatchingRequest) (*models.HarvestsResponse, error)
	MatchingDemands(ctx context.Context, req models.MatchingRequest) (*models.DemandsResponse, error)

	// Records
	AddRecord(ctx context.Context, req models.AddRecordRequest) (*models.RecordResponse, error)
	ListRecords(ctx context.Context, userID string) (*models.RecordsResponse, error)
	RecordSummary(ctx context.Context, userID string) (*models.RecordSummaryResponse, error)
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo          repository.Repository
	challenges    repository.ChallengeStore
	sms           SMSSender
	jwtSecret     []byte
	tokenDuration time.Duration
	otpTTL        time.Duration
	echoOTP       bool
}

// NewDefaultService creates a new DefaultService. echoOTP controls whether
// send-otp responses include the generated code (demo environments only).
func NewDefaultService(
	repo repository.Repository,
	challenges repository.ChallengeStore,
	sms SMSSender,
	jwtSecret string,
	echoOTP bool,
) Service {
	return &DefaultService{
		repo:          repo,
		challenges:    challenges,
		sms:           sms,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour, // 24 hours token validity
		otpTTL:        5 * time.Minute,
		echoOTP:       echoOTP,
	}
}

// Helper methods
func (s *DefaultService) generateJWT(userID string) (string, error) {
	expirationTime := time.Now().Add(s.tokenDuration)

	claims := jwt.MapClaims{
		"sub": userID, // subject
		"exp": expirationTime.Unix(),
		"iat": time.Now().Unix(), // issued at
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
