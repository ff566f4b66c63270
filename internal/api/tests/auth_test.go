package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/manvaasam/manvaasam-server/internal/api/testutils"
	"github.com/manvaasam/manvaasam-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendOTP(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	// Test case 1: Successful send (echo enabled in tests)
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/send-otp",
		models.SendOTPRequest{Phone: "9000011111"},
		nil,
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var sent models.SendOTPResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sent))
	assert.True(t, sent.Success)
	assert.Len(t, sent.OTP, 6)

	// Test case 2: Invalid phone number
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/send-otp",
		models.SendOTPRequest{Phone: "12345"},
		nil,
	)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 3: Missing phone
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/send-otp",
		map[string]string{},
		nil,
	)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyOTP(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	// Request a code for a fresh phone
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/send-otp",
		models.SendOTPRequest{Phone: "9000022222"},
		nil,
	)
	require.Equal(t, http.StatusOK, w.Code)

	var sent models.SendOTPResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sent))

	// Test case 1: Wrong code
	wrong := "000000"
	if sent.OTP == wrong {
		wrong = "000001"
	}
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/verify-otp",
		models.VerifyOTPRequest{Phone: "9000022222", OTP: wrong},
		nil,
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 2: Correct code creates a pending account
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/verify-otp",
		models.VerifyOTPRequest{Phone: "9000022222", OTP: sent.OTP},
		nil,
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var verified models.VerifyOTPResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verified))
	assert.True(t, verified.Success)
	assert.True(t, verified.NeedsRegistration)
	assert.NotEmpty(t, verified.AccessToken)
	assert.NotEmpty(t, verified.UserID)

	// Test case 3: Codes are single-use
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/verify-otp",
		models.VerifyOTPRequest{Phone: "9000022222", OTP: sent.OTP},
		nil,
	)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifyOTPReturningUser(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	// The pre-created farmer logs in with their registered phone
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/send-otp",
		models.SendOTPRequest{Phone: "9876543210"},
		nil,
	)
	require.Equal(t, http.StatusOK, w.Code)

	var sent models.SendOTPResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sent))

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/verify-otp",
		models.VerifyOTPRequest{Phone: "9876543210", OTP: sent.OTP},
		nil,
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var verified models.VerifyOTPResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verified))
	assert.False(t, verified.NeedsRegistration)
	assert.Equal(t, models.UserTypeFarmer, verified.UserType)
	assert.Equal(t, testCtx.FarmerID, verified.UserID)
	require.NotNil(t, verified.UserData)
	assert.Equal(t, "Test Farmer", verified.UserData.Name)
}

func TestRegisterFarmer(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	// Log in with a fresh phone to get a pending account
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/send-otp",
		models.SendOTPRequest{Phone: "9000033333"},
		nil,
	)
	require.Equal(t, http.StatusOK, w.Code)

	var sent models.SendOTPResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sent))

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/verify-otp",
		models.VerifyOTPRequest{Phone: "9000033333", OTP: sent.OTP},
		nil,
	)
	require.Equal(t, http.StatusOK, w.Code)

	var verified models.VerifyOTPResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verified))

	registerReq := models.RegisterFarmerRequest{
		UserID:  verified.UserID,
		Name:    "Murugan",
		Aadhaar: "123456789012",
		Address: models.Address{District: "Madurai"},
		Phone:   "9000033333",
	}

	// Test case 1: Registration requires authentication
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/register-farmer",
		registerReq,
		nil,
	)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Test case 2: A token for another user is rejected
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/register-farmer",
		registerReq,
		testutils.AuthHeaders(testCtx.FarmerJWT),
	)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Test case 3: Successful registration
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/register-farmer",
		registerReq,
		testutils.AuthHeaders(verified.AccessToken),
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	var registered models.RegisterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.True(t, registered.Success)
	assert.Equal(t, byte('F'), registered.MRID[0])
	require.NotNil(t, registered.UserData)
	assert.Equal(t, models.UserTypeFarmer, registered.UserData.Type)

	// Test case 4: Re-registration is rejected
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/register-farmer",
		registerReq,
		testutils.AuthHeaders(verified.AccessToken),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUser(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	// Test case 1: Own profile
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/user/"+testCtx.FarmerID,
		nil,
		testutils.AuthHeaders(testCtx.FarmerJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Test Farmer", resp.User.Name)
	require.NotNil(t, resp.User.Address)
	assert.Equal(t, "Chennai", resp.User.Address.District)

	// Test case 2: Another user's profile is not accessible
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/user/"+testCtx.FarmerID,
		nil,
		testutils.AuthHeaders(testCtx.IndustryJWT),
	)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
