package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/manvaasam/manvaasam-server/internal/models"
)

// Record types. Type is an open string; these are the conventional values.
const (
	RecordTypeProfit   = "profit"
	RecordTypeLoss     = "loss"
	RecordTypePurchase = "purchase"
)

// AddRecord appends a ledger entry. Amount must parse as a finite number;
// date defaults to now.
func (s *DefaultService) AddRecord(ctx context.Context, req models.AddRecordRequest) (*models.RecordResponse, error) {
	user, err := s.repo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(req.Amount), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("%w: amount must be a number", ErrInvalidInput)
	}

	date := time.Now().UTC()
	if req.Date != "" {
		date, err = time.Parse(time.RFC3339, req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be RFC 3339", ErrInvalidInput)
		}
		date = date.UTC()
	}

	record := &models.Record{
		ID:          newEntityID("R"),
		UserID:      req.UserID,
		Type:        req.Type,
		Amount:      amount,
		Description: req.Description,
		Date:        date,
	}

	if err := s.repo.CreateRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("error creating record: %w", err)
	}

	return &models.RecordResponse{
		Success: true,
		Record:  record,
	}, nil
}

// ListRecords returns a user's ledger entries, newest first by date.
func (s *DefaultService) ListRecords(ctx context.Context, userID string) (*models.RecordsResponse, error) {
	records, err := s.repo.ListRecordsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing records: %w", err)
	}

	if records == nil {
		records = []models.Record{}
	}

	return &models.RecordsResponse{
		Success: true,
		Records: records,
	}, nil
}

// RecordSummary reduces a user's ledger to profit/loss totals and
// per-month purchase totals. Always recomputed from the entries, never
// stored.
func (s *DefaultService) RecordSummary(ctx context.Context, userID string) (*models.RecordSummaryResponse, error) {
	records, err := s.repo.ListRecordsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing records: %w", err)
	}

	var profit, loss float64
	monthly := make(map[string]float64)

	for _, r := range records {
		switch r.Type {
		case RecordTypeProfit:
			profit += r.Amount
		case RecordTypeLoss:
			loss += r.Amount
		case RecordTypePurchase:
			monthly[r.Date.Format("2006-01")] += r.Amount
		}
	}

	months := make([]string, 0, len(monthly))
	for m := range monthly {
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	totals := make([]models.MonthlyTotal, 0, len(months))
	for _, m := range months {
		totals = append(totals, models.MonthlyTotal{
			Month: m,
			Total: formatAmount(monthly[m]),
		})
	}

	return &models.RecordSummaryResponse{
		Success: true,
		Summary: &models.RecordSummary{
			Profit:           formatAmount(profit),
			Loss:             formatAmount(loss),
			Net:              formatAmount(profit - loss),
			MonthlyPurchases: totals,
		},
	}, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
