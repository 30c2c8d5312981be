package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"RetailApp/app/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB wraps the SQLite connection and implements the engine's persistence
// interface.
type DB struct {
	gorm   *gorm.DB
	dbPath string
}

// Open opens (or creates) the SQLite database at the given path and runs
// the schema migrations. The driver is CGO-free, so the binary stays a
// single static executable.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	d := &DB{gorm: db, dbPath: dbPath}
	if err := d.runMigrations(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return d, nil
}

// runMigrations creates or updates the schema.
func (d *DB) runMigrations() error {
	return d.gorm.AutoMigrate(
		// Catalog
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.KitItem{},

		// Customers
		&models.Customer{},

		// Sales and stock ledger
		&models.Sale{},
		&models.SaleItem{},
		&models.StockMove{},

		// Financial records
		&models.Receivable{},
		&models.Payable{},

		// Purchase orders
		&models.PurchaseDraftItem{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderItem{},
	)
}

// Close closes the underlying SQLite connection.
func (d *DB) Close() error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Path returns the location of the database file.
func (d *DB) Path() string {
	return d.dbPath
}
