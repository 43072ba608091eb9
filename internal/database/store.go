// Package database owns the product, dealer, report and upload records.
// MemoryStore keeps everything in process; GormStore backs the same
// contract with PostgreSQL or SQLite.
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/javajoker/provenance-backend/internal/config"
	"github.com/javajoker/provenance-backend/internal/models"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrUploadExists = errors.New("upload key already exists")
)

// RecordStore is the only owner of product, dealer, report and upload
// records. Implementations must make AppendStock atomic: the stock entry and
// its mirrored purchase record are written together or not at all.
type RecordStore interface {
	// UpsertProductDetails creates the product if needed and overwrites its
	// descriptive fields. Existing stock is preserved.
	UpsertProductDetails(ctx context.Context, details models.ProductDetails) (*models.Product, error)

	// AppendStock appends entry to the product's stock and mirrors it into
	// the dealer's purchase history, creating either record if absent.
	AppendStock(ctx context.Context, entry models.StockEntry) error

	// AppendPurchaseRecord appends to the dealer's history, creating the dealer if absent.
	AppendPurchaseRecord(ctx context.Context, dealerID string, record models.PurchaseRecord) error

	AppendReport(ctx context.Context, report models.Report) error

	// SaveUpload stores a blob. Keys are write-once.
	SaveUpload(ctx context.Context, file models.UploadedFile) error
	DeleteUpload(ctx context.Context, key string) error
	GetUpload(ctx context.Context, key string) (*models.UploadedFile, error)

	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	GetDealer(ctx context.Context, dealerID string) (*models.Dealer, error)
	ListReports(ctx context.Context) ([]models.Report, error)

	Close() error
}

// NewRecordStore builds the store selected by cfg.Store.Driver.
func NewRecordStore(cfg *config.Config) (RecordStore, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		return NewMemoryStore(), nil
	case config.StoreDriverPostgres, config.StoreDriverSQLite:
		db, err := Initialize(cfg)
		if err != nil {
			return nil, err
		}
		if err := RunMigrations(db); err != nil {
			Close(db)
			return nil, err
		}
		return NewGormStore(db), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
