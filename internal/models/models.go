package models

import (
	"time"
)

// User types
const (
	UserTypePending  = "pending" // phone verified, profile not yet registered
	UserTypeFarmer   = "farmer"
	UserTypeIndustry = "industry"
)

// Listing statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User represents a registered account. Farmer and industry profiles share
// one table; the variant-specific columns are empty for the other type.
type User struct {
	ID           string    `db:"id" json:"id"`
	Phone        string    `db:"phone" json:"phone"`
	Type         string    `db:"type" json:"type"`
	MRID         string    `db:"mrid" json:"mrid,omitempty"`
	Name         string    `db:"name" json:"name,omitempty"`
	Aadhaar      string    `db:"aadhaar" json:"aadhaar,omitempty"`
	CompanyName  string    `db:"company_name" json:"companyName,omitempty"`
	IndustryType string    `db:"industry_type" json:"industryType,omitempty"`
	OwnerName    string    `db:"owner_name" json:"ownerName,omitempty"`
	District     string    `db:"district" json:"-"`
	City         string    `db:"city" json:"-"`
	Photo        string    `db:"photo" json:"photo,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// Address is the district/city pair carried by both profile variants.
// Farmers expose it as "address", industries as "location".
type Address struct {
	District string `json:"district"`
	City     string `json:"city,omitempty"`
}

// UserProfile is the JSON view of a User returned to clients.
type UserProfile struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	MRID         string    `json:"mrid,omitempty"`
	Phone        string    `json:"phone"`
	Name         string    `json:"name,omitempty"`
	Aadhaar      string    `json:"aadhaar,omitempty"`
	Address      *Address  `json:"address,omitempty"`
	CompanyName  string    `json:"companyName,omitempty"`
	IndustryType string    `json:"industryType,omitempty"`
	OwnerName    string    `json:"ownerName,omitempty"`
	Location     *Address  `json:"location,omitempty"`
	Photo        string    `json:"photo,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile builds the client-facing view of the user.
func (u *User) Profile() *UserProfile {
	p := &UserProfile{
		ID:        u.ID,
		Type:      u.Type,
		MRID:      u.MRID,
		Phone:     u.Phone,
		Photo:     u.Photo,
		CreatedAt: u.CreatedAt,
	}

	switch u.Type {
	case UserTypeFarmer:
		p.Name = u.Name
		p.Aadhaar = u.Aadhaar
		p.Address = &Address{District: u.District, City: u.City}
	case UserTypeIndustry:
		p.CompanyName = u.CompanyName
		p.IndustryType = u.IndustryType
		p.OwnerName = u.OwnerName
		p.Aadhaar = u.Aadhaar
		p.Location = &Address{District: u.District, City: u.City}
	}

	return p
}

// Harvest is a farmer's supply posting. Farmer name, MRID and phone are
// denormalized at creation time so listings render without a join.
type Harvest struct {
	ID         string    `db:"id" json:"id"`
	FarmerID   string    `db:"farmer_id" json:"farmerId"`
	FarmerName string    `db:"farmer_name" json:"farmerName"`
	FarmerMRID string    `db:"farmer_mrid" json:"farmerMRID"`
	Phone      string    `db:"phone" json:"phone"`
	Product    string    `db:"product" json:"product"`
	Quantity   string    `db:"quantity" json:"quantity"`
	Price      string    `db:"price" json:"price"`
	Location   string    `db:"location" json:"location"`
	District   string    `db:"district" json:"district"`
	Image      string    `db:"image" json:"image,omitempty"`
	Status     string    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// Demand is an industry's buy-request posting.
type Demand struct {
	ID           string    `db:"id" json:"id"`
	IndustryID   string    `db:"industry_id" json:"industryId"`
	CompanyName  string    `db:"company_name" json:"companyName"`
	IndustryMRID string    `db:"industry_mrid" json:"industryMRID"`
	Phone        string    `db:"phone" json:"phone"`
	Product      string    `db:"product" json:"product"`
	Quantity     string    `db:"quantity" json:"quantity"`
	PriceRange   string    `db:"price_range" json:"priceRange"`
	Location     string    `db:"location" json:"location"`
	District     string    `db:"district" json:"district"`
	Deadline     string    `db:"deadline" json:"deadline,omitempty"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// Record is an append-only ledger entry. Type is "profit" or "loss" for
// farmers and "purchase" for industries; entries are never mutated or
// deleted.
type Record struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"userId"`
	Type        string    `db:"type" json:"type"`
	Amount      float64   `db:"amount" json:"amount"`
	Description string    `db:"description" json:"description"`
	Date        time.Time `db:"date" json:"date"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// OTPChallenge is the stored state of an outstanding login code. Only the
// bcrypt hash of the code is kept. One challenge per phone; a re-send
// overwrites the previous one.
type OTPChallenge struct {
	CodeHash string    `json:"codeHash"`
	Expires  time.Time `json:"expires"`
}
