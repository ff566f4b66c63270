package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/manvaasam/manvaasam-server/internal/models"
)

// fakeRepository is an in-memory Repository used by the unit tests in this
// package. The API integration tests exercise the real PostgresRepository.
type fakeRepository struct {
	mu       sync.Mutex
	users    map[string]*models.User
	harvests []models.Harvest
	demands  []models.Demand
	records  []models.Record
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users: make(map[string]*models.User),
	}
}

func (f *fakeRepository) CreateUser(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeRepository) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Phone == phone {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) GetUserByMRID(ctx context.Context, mrid string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if mrid == "" {
		return nil, nil
	}
	for _, user := range f.users {
		if user.MRID == mrid {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) UpdateUser(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user.UpdatedAt = time.Now().UTC()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeRepository) CreateHarvest(ctx context.Context, harvest *models.Harvest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if harvest.CreatedAt.IsZero() {
		harvest.CreatedAt = time.Now().UTC()
	}
	f.harvests = append(f.harvests, *harvest)
	return nil
}

func (f *fakeRepository) ListActiveHarvests(ctx context.Context) ([]models.Harvest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Harvest
	for _, h := range f.harvests {
		if h.Status == models.StatusActive {
			out = append(out, h)
		}
	}
	sortHarvestsNewestFirst(out)
	return out, nil
}

func (f *fakeRepository) ListHarvestsByFarmer(ctx context.Context, farmerID string) ([]models.Harvest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Harvest
	for _, h := range f.harvests {
		if h.FarmerID == farmerID {
			out = append(out, h)
		}
	}
	sortHarvestsNewestFirst(out)
	return out, nil
}

func (f *fakeRepository) CreateDemand(ctx context.Context, demand *models.Demand) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if demand.CreatedAt.IsZero() {
		demand.CreatedAt = time.Now().UTC()
	}
	f.demands = append(f.demands, *demand)
	return nil
}

func (f *fakeRepository) ListActiveDemands(ctx context.Context) ([]models.Demand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Demand
	for _, d := range f.demands {
		if d.Status == models.StatusActive {
			out = append(out, d)
		}
	}
	sortDemandsNewestFirst(out)
	return out, nil
}

func (f *fakeRepository) ListDemandsByIndustry(ctx context.Context, industryID string) ([]models.Demand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Demand
	for _, d := range f.demands {
		if d.IndustryID == industryID {
			out = append(out, d)
		}
	}
	sortDemandsNewestFirst(out)
	return out, nil
}

func (f *fakeRepository) CreateRecord(ctx context.Context, record *models.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now().UTC()
	if record.Date.IsZero() {
		record.Date = now
	}
	record.CreatedAt = now
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeRepository) ListRecordsByUser(ctx context.Context, userID string) ([]models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Record
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func sortHarvestsNewestFirst(harvests []models.Harvest) {
	sort.SliceStable(harvests, func(i, j int) bool {
		return harvests[i].CreatedAt.After(harvests[j].CreatedAt)
	})
}

func sortDemandsNewestFirst(demands []models.Demand) {
	sort.SliceStable(demands, func(i, j int) bool {
		return demands[i].CreatedAt.After(demands[j].CreatedAt)
	})
}

// recordingSender captures codes instead of sending them.
type recordingSender struct {
	mu    sync.Mutex
	codes []string
}

func (s *recordingSender) Send(ctx context.Context, phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes = append(s.codes, code)
	return nil
}
