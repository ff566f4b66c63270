package service

import (
	"context"
	"testing"
	"time"

	"github.com/manvaasam/manvaasam-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRecord(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	farmerID := createPendingUser(t, repo, "9000000010")
	registerFarmer(t, svc, farmerID, "9000000010")

	resp, err := svc.AddRecord(ctx, models.AddRecordRequest{
		UserID:      farmerID,
		Type:        RecordTypeProfit,
		Amount:      "1250.50",
		Description: "paddy sale",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, byte('R'), resp.Record.ID[0])
	assert.Equal(t, 1250.50, resp.Record.Amount)
	assert.False(t, resp.Record.Date.IsZero())
}

func TestAddRecordValidation(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	farmerID := createPendingUser(t, repo, "9000000011")
	registerFarmer(t, svc, farmerID, "9000000011")

	// Non-numeric amount is rejected at write time
	for _, amount := range []string{"abc", "", "12abc", "NaN", "Inf"} {
		_, err := svc.AddRecord(ctx, models.AddRecordRequest{
			UserID: farmerID,
			Type:   RecordTypeProfit,
			Amount: amount,
		})
		assert.ErrorIs(t, err, ErrInvalidInput, "amount %q", amount)
	}

	// Malformed date
	_, err := svc.AddRecord(ctx, models.AddRecordRequest{
		UserID: farmerID,
		Type:   RecordTypeProfit,
		Amount: "100",
		Date:   "yesterday",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Unknown user
	_, err = svc.AddRecord(ctx, models.AddRecordRequest{
		UserID: "missing",
		Type:   RecordTypeProfit,
		Amount: "100",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListRecordsNewestFirst(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	farmerID := createPendingUser(t, repo, "9000000012")
	registerFarmer(t, svc, farmerID, "9000000012")

	dates := []string{
		"2026-01-10T00:00:00Z",
		"2026-03-05T00:00:00Z",
		"2026-02-20T00:00:00Z",
	}
	for _, d := range dates {
		_, err := svc.AddRecord(ctx, models.AddRecordRequest{
			UserID: farmerID,
			Type:   RecordTypeProfit,
			Amount: "10",
			Date:   d,
		})
		require.NoError(t, err)
	}

	resp, err := svc.ListRecords(ctx, farmerID)
	require.NoError(t, err)
	require.Len(t, resp.Records, 3)
	assert.Equal(t, "2026-03-05", resp.Records[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2026-02-20", resp.Records[1].Date.Format("2006-01-02"))
	assert.Equal(t, "2026-01-10", resp.Records[2].Date.Format("2006-01-02"))
}

func TestRecordSummaryNet(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	farmerID := createPendingUser(t, repo, "9000000013")
	registerFarmer(t, svc, farmerID, "9000000013")

	for _, r := range []struct {
		typ    string
		amount string
	}{
		{RecordTypeProfit, "100"},
		{RecordTypeLoss, "30"},
	} {
		_, err := svc.AddRecord(ctx, models.AddRecordRequest{
			UserID: farmerID,
			Type:   r.typ,
			Amount: r.amount,
		})
		require.NoError(t, err)
	}

	resp, err := svc.RecordSummary(ctx, farmerID)
	require.NoError(t, err)
	assert.Equal(t, "100.00", resp.Summary.Profit)
	assert.Equal(t, "30.00", resp.Summary.Loss)
	assert.Equal(t, "70.00", resp.Summary.Net)
	assert.Empty(t, resp.Summary.MonthlyPurchases)
}

func TestRecordSummaryMonthlyPurchases(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	industryID := createPendingUser(t, repo, "9000000014")
	registerIndustry(t, svc, industryID, "9000000014")

	purchases := []struct {
		date   string
		amount string
	}{
		{"2026-01-05T00:00:00Z", "1000"},
		{"2026-01-20T00:00:00Z", "500.25"},
		{"2026-02-02T00:00:00Z", "200"},
	}
	for _, p := range purchases {
		_, err := svc.AddRecord(ctx, models.AddRecordRequest{
			UserID: industryID,
			Type:   RecordTypePurchase,
			Amount: p.amount,
			Date:   p.date,
		})
		require.NoError(t, err)
	}

	resp, err := svc.RecordSummary(ctx, industryID)
	require.NoError(t, err)

	require.Len(t, resp.Summary.MonthlyPurchases, 2)
	// Newest month first
	assert.Equal(t, models.MonthlyTotal{Month: "2026-02", Total: "200.00"}, resp.Summary.MonthlyPurchases[0])
	assert.Equal(t, models.MonthlyTotal{Month: "2026-01", Total: "1500.25"}, resp.Summary.MonthlyPurchases[1])
}

func TestRecordSummaryEmpty(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	farmerID := createPendingUser(t, repo, "9000000015")
	registerFarmer(t, svc, farmerID, "9000000015")

	resp, err := svc.RecordSummary(ctx, farmerID)
	require.NoError(t, err)
	assert.Equal(t, "0.00", resp.Summary.Net)
}

func TestAddRecordDateDefaultsToNow(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	farmerID := createPendingUser(t, repo, "9000000016")
	registerFarmer(t, svc, farmerID, "9000000016")

	before := time.Now().UTC().Add(-time.Second)
	resp, err := svc.AddRecord(ctx, models.AddRecordRequest{
		UserID: farmerID,
		Type:   RecordTypeLoss,
		Amount: "5",
	})
	require.NoError(t, err)
	assert.True(t, resp.Record.Date.After(before))
}
