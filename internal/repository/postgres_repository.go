package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/manvaasam/manvaasam-server/internal/models"
)

// Repository interface defines the methods that any repository implementation must satisfy
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
	GetUserByMRID(ctx context.Context, mrid string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error

	// Harvest operations
	CreateHarvest(ctx context.Context, harvest *models.Harvest) error
	ListActiveHarvests(ctx context.Context) ([]models.Harvest, error)
	ListHarvestsByFarmer(ctx context.Context, farmerID string) ([]models.Harvest, error)

	// Demand operations
	CreateDemand(ctx context.Context, demand *models.Demand) error
	ListActiveDemands(ctx context.Context) ([]models.Demand, error)
	ListDemandsByIndustry(ctx context.Context, industryID string) ([]models.Demand, error)

	// Record operations
	CreateRecord(ctx context.Context, record *models.Record) error
	ListRecordsByUser(ctx context.Context, userID string) ([]models.Record, error)
}

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (r *PostgresRepository) GetDB() *sqlx.DB {
	return r.db
}

// User repository methods
func (r *PostgresRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, phone, type, mrid, name, aadhaar, company_name,
			industry_type, owner_name, district, city, photo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Phone, user.Type, user.MRID, user.Name, user.Aadhaar,
		user.CompanyName, user.IndustryType, user.OwnerName,
		user.District, user.City, user.Photo, user.CreatedAt, user.UpdatedAt)

	return err
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT * FROM users WHERE id = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	query := `SELECT * FROM users WHERE phone = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) GetUserByMRID(ctx context.Context, mrid string) (*models.User, error) {
	query := `SELECT * FROM users WHERE mrid = $1 AND mrid <> ''`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, mrid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

// UpdateUser rewrites a user's profile fields. Registration completes by
// setting type, mrid and the variant columns in a single statement, so
// there is no torn-write window between the primary row and the MRID
// lookup.
func (r *PostgresRepository) UpdateUser(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET type = $2, mrid = $3, name = $4, aadhaar = $5, company_name = $6,
			industry_type = $7, owner_name = $8, district = $9, city = $10,
			photo = $11, updated_at = $12
		WHERE id = $1
	`

	user.UpdatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Type, user.MRID, user.Name, user.Aadhaar,
		user.CompanyName, user.IndustryType, user.OwnerName,
		user.District, user.City, user.Photo, user.UpdatedAt)

	return err
}

// Harvest repository methods
func (r *PostgresRepository) CreateHarvest(ctx context.Context, harvest *models.Harvest) error {
	query := `
		INSERT INTO harvests (id, farmer_id, farmer_name, farmer_mrid, phone,
			product, quantity, price, location, district, image, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	if harvest.CreatedAt.IsZero() {
		harvest.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		harvest.ID, harvest.FarmerID, harvest.FarmerName, harvest.FarmerMRID,
		harvest.Phone, harvest.Product, harvest.Quantity, harvest.Price,
		harvest.Location, harvest.District, harvest.Image, harvest.Status,
		harvest.CreatedAt)

	return err
}

func (r *PostgresRepository) ListActiveHarvests(ctx context.Context) ([]models.Harvest, error) {
	query := `SELECT * FROM harvests WHERE status = 'active' ORDER BY created_at DESC`

	var harvests []models.Harvest
	err := r.db.SelectContext(ctx, &harvests, query)
	if err != nil {
		return nil, err
	}

	return harvests, nil
}

// ListHarvestsByFarmer resolves ownership as a query on farmer_id rather
// than an id list on the user record, so concurrent creates cannot drop
// entries.
func (r *PostgresRepository) ListHarvestsByFarmer(ctx context.Context, farmerID string) ([]models.Harvest, error) {
	query := `SELECT * FROM harvests WHERE farmer_id = $1 ORDER BY created_at DESC`

	var harvests []models.Harvest
	err := r.db.SelectContext(ctx, &harvests, query, farmerID)
	if err != nil {
		return nil, err
	}

	return harvests, nil
}

// Demand repository methods
func (r *PostgresRepository) CreateDemand(ctx context.Context, demand *models.Demand) error {
	query := `
		INSERT INTO demands (id, industry_id, company_name, industry_mrid, phone,
			product, quantity, price_range, location, district, deadline, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	if demand.CreatedAt.IsZero() {
		demand.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		demand.ID, demand.IndustryID, demand.CompanyName, demand.IndustryMRID,
		demand.Phone, demand.Product, demand.Quantity, demand.PriceRange,
		demand.Location, demand.District, demand.Deadline, demand.Status,
		demand.CreatedAt)

	return err
}

func (r *PostgresRepository) ListActiveDemands(ctx context.Context) ([]models.Demand, error) {
	query := `SELECT * FROM demands WHERE status = 'active' ORDER BY created_at DESC`

	var demands []models.Demand
	err := r.db.SelectContext(ctx, &demands, query)
	if err != nil {
		return nil, err
	}

	return demands, nil
}

func (r *PostgresRepository) ListDemandsByIndustry(ctx context.Context, industryID string) ([]models.Demand, error) {
	query := `SELECT * FROM demands WHERE industry_id = $1 ORDER BY created_at DESC`

	var demands []models.Demand
	err := r.db.SelectContext(ctx, &demands, query, industryID)
	if err != nil {
		return nil, err
	}

	return demands, nil
}

// Record repository methods
func (r *PostgresRepository) CreateRecord(ctx context.Context, record *models.Record) error {
	query := `
		INSERT INTO records (id, user_id, type, amount, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	now := time.Now().UTC()
	if record.Date.IsZero() {
		record.Date = now
	}
	record.CreatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.UserID, record.Type, record.Amount,
		record.Description, record.Date, record.CreatedAt)

	return err
}

func (r *PostgresRepository) ListRecordsByUser(ctx context.Context, userID string) ([]models.Record, error) {
	query := `SELECT * FROM records WHERE user_id = $1 ORDER BY date DESC`

	var records []models.Record
	err := r.db.SelectContext(ctx, &records, query, userID)
	if err != nil {
		return nil, err
	}

	return records, nil
}
