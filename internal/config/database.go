package config

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// SetupDatabase initializes the database connection
func SetupDatabase(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// createTables creates the necessary tables in the database
func createTables(db *sqlx.DB) error {
	// Create users table. Farmer and industry profiles share the table;
	// mrid stays empty until registration completes.
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(36) PRIMARY KEY,
			phone VARCHAR(10) UNIQUE NOT NULL,
			type VARCHAR(10) NOT NULL DEFAULT 'pending',
			mrid VARCHAR(32) NOT NULL DEFAULT '',
			name VARCHAR(255) NOT NULL DEFAULT '',
			aadhaar VARCHAR(12) NOT NULL DEFAULT '',
			company_name VARCHAR(255) NOT NULL DEFAULT '',
			industry_type VARCHAR(255) NOT NULL DEFAULT '',
			owner_name VARCHAR(255) NOT NULL DEFAULT '',
			district VARCHAR(100) NOT NULL DEFAULT '',
			city VARCHAR(100) NOT NULL DEFAULT '',
			photo TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create harvests table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS harvests (
			id VARCHAR(32) PRIMARY KEY,
			farmer_id VARCHAR(36) NOT NULL REFERENCES users(id),
			farmer_name VARCHAR(255) NOT NULL,
			farmer_mrid VARCHAR(32) NOT NULL,
			phone VARCHAR(10) NOT NULL,
			product VARCHAR(255) NOT NULL,
			quantity VARCHAR(100) NOT NULL,
			price VARCHAR(100) NOT NULL,
			location VARCHAR(255) NOT NULL,
			district VARCHAR(100) NOT NULL,
			image TEXT NOT NULL DEFAULT '',
			status VARCHAR(10) NOT NULL DEFAULT 'active',
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create demands table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS demands (
			id VARCHAR(32) PRIMARY KEY,
			industry_id VARCHAR(36) NOT NULL REFERENCES users(id),
			company_name VARCHAR(255) NOT NULL,
			industry_mrid VARCHAR(32) NOT NULL,
			phone VARCHAR(10) NOT NULL,
			product VARCHAR(255) NOT NULL,
			quantity VARCHAR(100) NOT NULL,
			price_range VARCHAR(100) NOT NULL,
			location VARCHAR(255) NOT NULL,
			district VARCHAR(100) NOT NULL,
			deadline VARCHAR(100) NOT NULL DEFAULT '',
			status VARCHAR(10) NOT NULL DEFAULT 'active',
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create records table (append-only ledger)
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			id VARCHAR(32) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id),
			type VARCHAR(20) NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			date TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create indexes for better performance
	indexes := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_mrid ON users(mrid) WHERE mrid <> ''",
		"CREATE INDEX IF NOT EXISTS idx_harvests_farmer ON harvests(farmer_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_harvests_status ON harvests(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_demands_industry ON demands(industry_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_demands_status ON demands(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_records_user ON records(user_id, date DESC)",
	}

	for _, idx := range indexes {
		_, err = db.Exec(idx)
		if err != nil {
			log.Printf("Warning: Failed to create index: %v", err)
			// Don't return error here, indexes are not critical
		}
	}

	return nil
}
