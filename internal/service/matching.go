package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/manvaasam/manvaasam-server/internal/geo"
	"github.com/manvaasam/manvaasam-server/internal/models"
)

// maxMatchDistanceKm is the proximity gate for matched listings.
const maxMatchDistanceKm = 100.0

// MatchingHarvests filters the active harvest pool down to listings whose
// product overlaps one of the requester's products and whose district is
// within range. Results keep the pool's newest-first order.
func (s *DefaultService) MatchingHarvests(ctx context.Context, req models.MatchingRequest) (*models.HarvestsResponse, error) {
	pool, err := s.repo.ListActiveHarvests(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing harvests: %w", err)
	}

	matched := make([]models.Harvest, 0, len(pool))
	for _, h := range pool {
		if productOverlap(req.Products, h.Product) && withinRange(req.District, h.District) {
			matched = append(matched, h)
		}
	}

	return &models.HarvestsResponse{
		Success:  true,
		Harvests: matched,
	}, nil
}

// MatchingDemands is the farmer-side counterpart of MatchingHarvests.
func (s *DefaultService) MatchingDemands(ctx context.Context, req models.MatchingRequest) (*models.DemandsResponse, error) {
	pool, err := s.repo.ListActiveDemands(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing demands: %w", err)
	}

	matched := make([]models.Demand, 0, len(pool))
	for _, d := range pool {
		if productOverlap(req.Products, d.Product) && withinRange(req.District, d.District) {
			matched = append(matched, d)
		}
	}

	return &models.DemandsResponse{
		Success: true,
		Demands: matched,
	}, nil
}

// productOverlap reports whether any requested product and the candidate
// product contain each other case-insensitively, in either direction.
// "Rice" matches "Basmati Rice" and vice versa. The looseness tolerates
// naming variance between farmers and buyers; short common substrings can
// over-match, which is accepted.
func productOverlap(products []string, candidate string) bool {
	c := strings.ToLower(strings.TrimSpace(candidate))
	if c == "" {
		return false
	}

	for _, p := range products {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if strings.Contains(c, p) || strings.Contains(p, c) {
			return true
		}
	}

	return false
}

// withinRange applies the distance gate. Identical district names always
// pass; unknown districts fail.
func withinRange(home, district string) bool {
	d, ok := geo.Distance(home, district)
	return ok && d <= maxMatchDistanceKm
}
