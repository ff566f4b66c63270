package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/manvaasam/manvaasam-server/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	phonePattern   = regexp.MustCompile(`^[0-9]{10}$`)
	aadhaarPattern = regexp.MustCompile(`^[0-9]{12}$`)
)

// SendOTP issues a login code for the phone, overwriting any outstanding
// challenge. Only the bcrypt hash of the code is stored.
func (s *DefaultService) SendOTP(ctx context.Context, phone string) (*models.SendOTPResponse, error) {
	phone = strings.TrimSpace(phone)
	if !phonePattern.MatchString(phone) {
		return nil, fmt.Errorf("%w: phone must be exactly 10 digits", ErrInvalidInput)
	}

	code, err := generateOTP()
	if err != nil {
		return nil, fmt.Errorf("error generating otp: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing otp: %w", err)
	}

	challenge := &models.OTPChallenge{
		CodeHash: string(hash),
		Expires:  time.Now().Add(s.otpTTL),
	}

	if err := s.challenges.Put(ctx, phone, challenge); err != nil {
		return nil, fmt.Errorf("error storing otp challenge: %w", err)
	}

	if err := s.sms.Send(ctx, phone, code); err != nil {
		return nil, fmt.Errorf("error sending otp: %w", err)
	}

	resp := &models.SendOTPResponse{
		Success: true,
		Message: "OTP sent successfully",
	}
	if s.echoOTP {
		resp.OTP = code
	}

	return resp, nil
}

// VerifyOTP checks a code against the stored challenge. Challenges are
// single-use: deleted on success, and on an expired check.
func (s *DefaultService) VerifyOTP(ctx context.Context, phone, code string) (*models.VerifyOTPResponse, error) {
	phone = strings.TrimSpace(phone)

	challenge, err := s.challenges.Get(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("error reading otp challenge: %w", err)
	}

	if challenge == nil {
		return nil, fmt.Errorf("%w: no OTP requested for this phone", ErrNotFound)
	}

	if time.Now().After(challenge.Expires) {
		_ = s.challenges.Delete(ctx, phone)
		return nil, fmt.Errorf("%w: request a new code", ErrOTPExpired)
	}

	if bcrypt.CompareHashAndPassword([]byte(challenge.CodeHash), []byte(code)) != nil {
		return nil, fmt.Errorf("%w: incorrect code", ErrOTPMismatch)
	}

	if err := s.challenges.Delete(ctx, phone); err != nil {
		return nil, fmt.Errorf("error deleting otp challenge: %w", err)
	}

	// Resolve or create the account for this phone. First-time callers get
	// a pending user that must complete registration.
	user, err := s.repo.GetUserByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	if user == nil {
		user = &models.User{
			ID:    uuid.New().String(),
			Phone: phone,
			Type:  models.UserTypePending,
		}
		if err := s.repo.CreateUser(ctx, user); err != nil {
			return nil, fmt.Errorf("error creating user: %w", err)
		}
	}

	token, err := s.generateJWT(user.ID)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	resp := &models.VerifyOTPResponse{
		Success:           true,
		AccessToken:       token,
		UserID:            user.ID,
		NeedsRegistration: user.Type == models.UserTypePending,
	}
	if user.Type != models.UserTypePending {
		resp.UserType = user.Type
		resp.UserData = user.Profile()
	}

	return resp, nil
}

// RegisterFarmer completes a pending user's registration as a farmer and
// assigns an MRID.
func (s *DefaultService) RegisterFarmer(ctx context.Context, req models.RegisterFarmerRequest) (*models.RegisterResponse, error) {
	if err := validateRegistration(req.Aadhaar, req.Phone, req.Address.District); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	user, err := s.repo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}
	if user.Type != models.UserTypePending {
		return nil, fmt.Errorf("%w: profile already registered", ErrInvalidInput)
	}

	user.Type = models.UserTypeFarmer
	user.MRID = generateMRID("F")
	user.Name = req.Name
	user.Aadhaar = req.Aadhaar
	user.District = req.Address.District
	user.City = req.Address.City
	user.Photo = req.Photo

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("error saving farmer profile: %w", err)
	}

	return &models.RegisterResponse{
		Success:  true,
		MRID:     user.MRID,
		UserData: user.Profile(),
	}, nil
}

// RegisterIndustry completes a pending user's registration as an industry
// buyer and assigns an MRID.
func (s *DefaultService) RegisterIndustry(ctx context.Context, req models.RegisterIndustryRequest) (*models.RegisterResponse, error) {
	if err := validateRegistration(req.Aadhaar, req.Phone, req.Location.District); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.CompanyName) == "" || strings.TrimSpace(req.OwnerName) == "" {
		return nil, fmt.Errorf("%w: company name and owner name are required", ErrInvalidInput)
	}

	user, err := s.repo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}
	if user.Type != models.UserTypePending {
		return nil, fmt.Errorf("%w: profile already registered", ErrInvalidInput)
	}

	user.Type = models.UserTypeIndustry
	user.MRID = generateMRID("I")
	user.CompanyName = req.CompanyName
	user.IndustryType = req.Type
	user.OwnerName = req.OwnerName
	user.Aadhaar = req.Aadhaar
	user.District = req.Location.District
	user.City = req.Location.City
	user.Photo = req.Photo

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("error saving industry profile: %w", err)
	}

	return &models.RegisterResponse{
		Success:  true,
		MRID:     user.MRID,
		UserData: user.Profile(),
	}, nil
}

// GetUser returns a user's profile view.
func (s *DefaultService) GetUser(ctx context.Context, userID string) (*models.UserResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	return &models.UserResponse{
		Success: true,
		User:    user.Profile(),
	}, nil
}

func validateRegistration(aadhaar, phone, district string) error {
	if !aadhaarPattern.MatchString(aadhaar) {
		return fmt.Errorf("%w: aadhaar must be exactly 12 digits", ErrInvalidInput)
	}
	if !phonePattern.MatchString(strings.TrimSpace(phone)) {
		return fmt.Errorf("%w: phone must be exactly 10 digits", ErrInvalidInput)
	}
	if strings.TrimSpace(district) == "" {
		return fmt.Errorf("%w: district is required", ErrInvalidInput)
	}
	return nil
}
