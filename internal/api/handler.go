package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/manvaasam/manvaasam-server/internal/models"
	"github.com/manvaasam/manvaasam-server/internal/service"
	"go.uber.org/zap"
)

// Handler holds the HTTP handlers for all API routes
type Handler struct {
	svc service.Service
	log *zap.Logger
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service, log *zap.Logger) *Handler {
	return &Handler{
		svc: svc,
		log: log,
	}
}

// SetupRoutes registers all routes on the router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")

	// Public routes
	api.POST("/send-otp", h.SendOTP)
	api.POST("/verify-otp", h.VerifyOTP)

	// Authenticated routes. The bearer token identifies the caller; each
	// handler additionally requires that the userId in the body or path
	// matches the token subject.
	authorized := api.Group("")
	authorized.Use(AuthMiddleware())

	authorized.POST("/register-farmer", h.RegisterFarmer)
	authorized.POST("/register-industry", h.RegisterIndustry)
	authorized.GET("/user/:userId", h.GetUser)

	authorized.POST("/create-harvest", h.CreateHarvest)
	authorized.POST("/create-demand", h.CreateDemand)
	authorized.GET("/all-harvests", h.AllHarvests)
	authorized.GET("/all-demands", h.AllDemands)
	authorized.POST("/matching-harvests", h.MatchingHarvests)
	authorized.POST("/matching-demands", h.MatchingDemands)
	authorized.GET("/my-harvests/:userId", h.MyHarvests)
	authorized.GET("/my-demands/:userId", h.MyDemands)

	authorized.POST("/add-record", h.AddRecord)
	authorized.GET("/records/:userId", h.ListRecords)
	authorized.GET("/records/:userId/summary", h.RecordSummary)
}

// SendOTP handles POST /api/send-otp
func (h *Handler) SendOTP(c *gin.Context) {
	var req models.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "phone is required"})
		return
	}

	resp, err := h.svc.SendOTP(c.Request.Context(), req.Phone)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// VerifyOTP handles POST /api/verify-otp
func (h *Handler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "phone and otp are required"})
		return
	}

	resp, err := h.svc.VerifyOTP(c.Request.Context(), req.Phone, req.OTP)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RegisterFarmer handles POST /api/register-farmer
func (h *Handler) RegisterFarmer(c *gin.Context) {
	var req models.RegisterFarmerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	if !h.callerIs(c, req.UserID) {
		return
	}

	resp, err := h.svc.RegisterFarmer(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// RegisterIndustry handles POST /api/register-industry
func (h *Handler) RegisterIndustry(c *gin.Context) {
	var req models.RegisterIndustryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	if !h.callerIs(c, req.UserID) {
		return
	}

	resp, err := h.svc.RegisterIndustry(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetUser handles GET /api/user/:userId
func (h *Handler) GetUser(c *gin.Context) {
	userID := c.Param("userId")
	if !h.callerIs(c, userID) {
		return
	}

	resp, err := h.svc.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateHarvest handles POST /api/create-harvest
func (h *Handler) CreateHarvest(c *gin.Context) {
	var req models.CreateHarvestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	if !h.callerIs(c, req.UserID) {
		return
	}

	resp, err := h.svc.CreateHarvest(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// CreateDemand handles POST /api/create-demand
func (h *Handler) CreateDemand(c *gin.Context) {
	var req models.CreateDemandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	if !h.callerIs(c, req.UserID) {
		return
	}

	resp, err := h.svc.CreateDemand(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// AllHarvests handles GET /api/all-harvests
func (h *Handler) AllHarvests(c *gin.Context) {
	resp, err := h.svc.AllHarvests(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AllDemands handles GET /api/all-demands
func (h *Handler) AllDemands(c *gin.Context) {
	resp, err := h.svc.AllDemands(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MatchingHarvests handles POST /api/matching-harvests
func (h *Handler) MatchingHarvests(c *gin.Context) {
	var req models.MatchingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	if !h.callerIs(c, req.UserID) {
		return
	}

	resp, err := h.svc.MatchingHarvests(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MatchingDemands handles POST /api/matching-demands
func (h *Handler) MatchingDemands(c *gin.Context) {
	var req models.MatchingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	if !h.callerIs(c, req.UserID) {
		return
	}

	resp, err := h.svc.MatchingDemands(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MyHarvests handles GET /api/my-harvests/:userId
func (h *Handler) MyHarvests(c *gin.Context) {
	userID := c.Param("userId")
	if !h.callerIs(c, userID) {
		return
	}

	resp, err := h.svc.MyHarvests(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MyDemands handles GET /api/my-demands/:userId
func (h *Handler) MyDemands(c *gin.Context) {
	userID := c.Param("userId")
	if !h.callerIs(c, userID) {
		return
	}

	resp, err := h.svc.MyDemands(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AddRecord handles POST /api/add-record
func (h *Handler) AddRecord(c *gin.Context) {
	var req models.AddRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	if !h.callerIs(c, req.UserID) {
		return
	}

	resp, err := h.svc.AddRecord(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListRecords handles GET /api/records/:userId
func (h *Handler) ListRecords(c *gin.Context) {
	userID := c.Param("userId")
	if !h.callerIs(c, userID) {
		return
	}

	resp, err := h.svc.ListRecords(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RecordSummary handles GET /api/records/:userId/summary
func (h *Handler) RecordSummary(c *gin.Context) {
	userID := c.Param("userId")
	if !h.callerIs(c, userID) {
		return
	}

	resp, err := h.svc.RecordSummary(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// callerIs checks that the authenticated user is the one named in the
// request. Responds 401 and returns false on mismatch.
func (h *Handler) callerIs(c *gin.Context, userID string) bool {
	if c.GetString("userId") != userID {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user mismatch"})
		return false
	}
	return true
}

// respondError maps service errors to HTTP statuses. Unrecognized errors
// are logged and reported as a generic 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrOTPExpired),
		errors.Is(err, service.ErrOTPMismatch):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
	default:
		h.log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
	}
}
