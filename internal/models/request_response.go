package models

// Request models
type SendOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

type RegisterFarmerRequest struct {
	UserID  string  `json:"userId" binding:"required"`
	Name    string  `json:"name" binding:"required"`
	Aadhaar string  `json:"aadhaar" binding:"required"`
	Address Address `json:"address" binding:"required"`
	Phone   string  `json:"phone" binding:"required"`
	Photo   string  `json:"photo"`
}

type RegisterIndustryRequest struct {
	UserID      string  `json:"userId" binding:"required"`
	CompanyName string  `json:"companyName" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	OwnerName   string  `json:"ownerName" binding:"required"`
	Aadhaar     string  `json:"aadhaar" binding:"required"`
	Location    Address `json:"location" binding:"required"`
	Phone       string  `json:"phone" binding:"required"`
	Photo       string  `json:"photo"`
}

type CreateHarvestRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Product  string `json:"product" binding:"required"`
	Quantity string `json:"quantity" binding:"required"`
	Price    string `json:"price" binding:"required"`
	Location string `json:"location" binding:"required"`
	District string `json:"district" binding:"required"`
	Image    string `json:"image"`
}

type CreateDemandRequest struct {
	UserID     string `json:"userId" binding:"required"`
	Product    string `json:"product" binding:"required"`
	Quantity   string `json:"quantity" binding:"required"`
	PriceRange string `json:"priceRange" binding:"required"`
	Location   string `json:"location" binding:"required"`
	District   string `json:"district" binding:"required"`
	Deadline   string `json:"deadline"`
}

type MatchingRequest struct {
	UserID   string   `json:"userId" binding:"required"`
	Products []string `json:"products" binding:"required"`
	District string   `json:"district" binding:"required"`
}

type AddRecordRequest struct {
	UserID      string `json:"userId" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date"` // RFC 3339; defaults to now when empty
}

// Response models
type SendOTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OTP     string `json:"otp,omitempty"` // populated only when OTP echo is enabled (dev/demo)
}

type VerifyOTPResponse struct {
	Success           bool         `json:"success"`
	AccessToken       string       `json:"accessToken"`
	UserID            string       `json:"userId"`
	NeedsRegistration bool         `json:"needsRegistration"`
	UserType          string       `json:"userType,omitempty"`
	UserData          *UserProfile `json:"userData,omitempty"`
}

type RegisterResponse struct {
	Success  bool         `json:"success"`
	MRID     string       `json:"mrid"`
	UserData *UserProfile `json:"userData"`
}

type HarvestResponse struct {
	Success bool     `json:"success"`
	Harvest *Harvest `json:"harvest"`
}

type HarvestsResponse struct {
	Success  bool      `json:"success"`
	Harvests []Harvest `json:"harvests"`
}

type DemandResponse struct {
	Success bool    `json:"success"`
	Demand  *Demand `json:"demand"`
}

type DemandsResponse struct {
	Success bool     `json:"success"`
	Demands []Demand `json:"demands"`
}

type UserResponse struct {
	Success bool         `json:"success"`
	User    *UserProfile `json:"user"`
}

type RecordResponse struct {
	Success bool    `json:"success"`
	Record  *Record `json:"record"`
}

type RecordsResponse struct {
	Success bool     `json:"success"`
	Records []Record `json:"records"`
}

// MonthlyTotal is one month's aggregated purchase amount, month formatted
// as "2006-01".
type MonthlyTotal struct {
	Month string `json:"month"`
	Total string `json:"total"`
}

// RecordSummary is a read-side reduction over a user's records; it is
// recomputed on every request, never stored.
type RecordSummary struct {
	Profit           string         `json:"profit"`
	Loss             string         `json:"loss"`
	Net              string         `json:"net"`
	MonthlyPurchases []MonthlyTotal `json:"monthlyPurchases"`
}

type RecordSummaryResponse struct {
	Success bool           `json:"success"`
	Summary *RecordSummary `json:"summary"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
