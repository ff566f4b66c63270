package service

import (
	"context"
	"fmt"

	"github.com/manvaasam/manvaasam-server/internal/models"
)

// CreateHarvest posts a new supply listing. Only farmers may post; owner
// details are denormalized onto the listing at creation time.
func (s *DefaultService) CreateHarvest(ctx context.Context, req models.CreateHarvestRequest) (*models.HarvestResponse, error) {
	user, err := s.repo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil || user.Type != models.UserTypeFarmer {
		return nil, fmt.Errorf("%w: only farmers can post harvests", ErrUnauthorized)
	}

	harvest := &models.Harvest{
		ID:         newEntityID("H"),
		FarmerID:   user.ID,
		FarmerName: user.Name,
		FarmerMRID: user.MRID,
		Phone:      user.Phone,
		Product:    req.Product,
		Quantity:   req.Quantity,
		Price:      req.Price,
		Location:   req.Location,
		District:   req.District,
		Image:      req.Image,
		Status:     models.StatusActive,
	}

	if err := s.repo.CreateHarvest(ctx, harvest); err != nil {
		return nil, fmt.Errorf("error creating harvest: %w", err)
	}

	return &models.HarvestResponse{
		Success: true,
		Harvest: harvest,
	}, nil
}

// CreateDemand posts a new buy request. Only industries may post.
func (s *DefaultService) CreateDemand(ctx context.Context, req models.CreateDemandRequest) (*models.DemandResponse, error) {
	user, err := s.repo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil || user.Type != models.UserTypeIndustry {
		return nil, fmt.Errorf("%w: only industries can post demands", ErrUnauthorized)
	}

	demand := &models.Demand{
		ID:           newEntityID("D"),
		IndustryID:   user.ID,
		CompanyName:  user.CompanyName,
		IndustryMRID: user.MRID,
		Phone:        user.Phone,
		Product:      req.Product,
		Quantity:     req.Quantity,
		PriceRange:   req.PriceRange,
		Location:     req.Location,
		District:     req.District,
		Deadline:     req.Deadline,
		Status:       models.StatusActive,
	}

	if err := s.repo.CreateDemand(ctx, demand); err != nil {
		return nil, fmt.Errorf("error creating demand: %w", err)
	}

	return &models.DemandResponse{
		Success: true,
		Demand:  demand,
	}, nil
}

// AllHarvests returns every active harvest, newest first.
func (s *DefaultService) AllHarvests(ctx context.Context) (*models.HarvestsResponse, error) {
	harvests, err := s.repo.ListActiveHarvests(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing harvests: %w", err)
	}

	if harvests == nil {
		harvests = []models.Harvest{}
	}

	return &models.HarvestsResponse{
		Success:  true,
		Harvests: harvests,
	}, nil
}

// AllDemands returns every active demand, newest first.
func (s *DefaultService) AllDemands(ctx context.Context) (*models.DemandsResponse, error) {
	demands, err := s.repo.ListActiveDemands(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing demands: %w", err)
	}

	if demands == nil {
		demands = []models.Demand{}
	}

	return &models.DemandsResponse{
		Success: true,
		Demands: demands,
	}, nil
}

// MyHarvests returns a farmer's own listings, newest first, regardless of
// status.
func (s *DefaultService) MyHarvests(ctx context.Context, userID string) (*models.HarvestsResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil || user.Type != models.UserTypeFarmer {
		return nil, fmt.Errorf("%w: not a farmer account", ErrUnauthorized)
	}

	harvests, err := s.repo.ListHarvestsByFarmer(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing harvests: %w", err)
	}

	if harvests == nil {
		harvests = []models.Harvest{}
	}

	return &models.HarvestsResponse{
		Success:  true,
		Harvests: harvests,
	}, nil
}

// MyDemands returns an industry's own buy requests, newest first.
func (s *DefaultService) MyDemands(ctx context.Context, userID string) (*models.DemandsResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil || user.Type != models.UserTypeIndustry {
		return nil, fmt.Errorf("%w: not an industry account", ErrUnauthorized)
	}

	demands, err := s.repo.ListDemandsByIndustry(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing demands: %w", err)
	}

	if demands == nil {
		demands = []models.Demand{}
	}

	return &models.DemandsResponse{
		Success: true,
		Demands: demands,
	}, nil
}
