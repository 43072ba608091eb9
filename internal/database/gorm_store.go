package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/provenance-backend/internal/models"
)

// GormStore implements RecordStore on top of a relational database.
// Multi-record writes run inside a single transaction.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) UpsertProductDetails(ctx context.Context, details models.ProductDetails) (*models.Product, error) {
	if details.ProductID == "" {
		return nil, fmt.Errorf("product id is empty")
	}

	product := models.Product{ProductID: details.ProductID}
	product.ApplyDetails(details)

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "batch", "fair_price", "expiry", "updated_at"}),
		}).
		Omit(clause.Associations).
		Create(&product).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert product: %w", err)
	}

	return s.GetProduct(ctx, details.ProductID)
}

func (s *GormStore) AppendStock(ctx context.Context, entry models.StockEntry) error {
	if entry.ProductID == "" || entry.DealerID == "" {
		return fmt.Errorf("stock entry needs both product and dealer ids")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureProduct(tx, entry.ProductID); err != nil {
			return err
		}
		if err := ensureDealer(tx, entry.DealerID); err != nil {
			return err
		}

		entry.ID = 0
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to append stock entry: %w", err)
		}

		purchase := models.NewStockPurchase(entry)
		if err := tx.Create(&purchase).Error; err != nil {
			return fmt.Errorf("failed to append purchase record: %w", err)
		}
		return nil
	})
}

func (s *GormStore) AppendPurchaseRecord(ctx context.Context, dealerID string, record models.PurchaseRecord) error {
	if dealerID == "" {
		return fmt.Errorf("dealer id is empty")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureDealer(tx, dealerID); err != nil {
			return err
		}

		record.ID = 0
		record.DealerID = dealerID
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to append purchase record: %w", err)
		}
		return nil
	})
}

func (s *GormStore) AppendReport(ctx context.Context, report models.Report) error {
	report.ID = 0
	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		return fmt.Errorf("failed to append report: %w", err)
	}
	return nil
}

func (s *GormStore) SaveUpload(ctx context.Context, file models.UploadedFile) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.UploadedFile{}).Where("storage_key = ?", file.Key).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check upload key: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", ErrUploadExists, file.Key)
		}

		if err := tx.Create(&file).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: %s", ErrUploadExists, file.Key)
			}
			return fmt.Errorf("failed to save upload: %w", err)
		}
		return nil
	})
}

func (s *GormStore) DeleteUpload(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Where("storage_key = ?", key).Delete(&models.UploadedFile{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete upload: %w", err)
	}
	return nil
}

func (s *GormStore) GetUpload(ctx context.Context, key string) (*models.UploadedFile, error) {
	var file models.UploadedFile
	if err := s.db.WithContext(ctx).Where("storage_key = ?", key).First(&file).Error; err != nil {
		return nil, notFound("upload", key, err)
	}
	return &file, nil
}

func (s *GormStore) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).
		Preload("Stock", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("product_id = ?", productID).
		First(&product).Error
	if err != nil {
		return nil, notFound("product", productID, err)
	}
	if product.Stock == nil {
		product.Stock = []models.StockEntry{}
	}
	return &product, nil
}

func (s *GormStore) GetDealer(ctx context.Context, dealerID string) (*models.Dealer, error) {
	var dealer models.Dealer
	err := s.db.WithContext(ctx).
		Preload("PurchaseHistory", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("dealer_id = ?", dealerID).
		First(&dealer).Error
	if err != nil {
		return nil, notFound("dealer", dealerID, err)
	}
	if dealer.PurchaseHistory == nil {
		dealer.PurchaseHistory = []models.PurchaseRecord{}
	}
	return &dealer, nil
}

func (s *GormStore) ListReports(ctx context.Context) ([]models.Report, error) {
	reports := []models.Report{}
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ensureProduct(tx *gorm.DB, productID string) error {
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&models.Product{ProductID: productID}).Error
	if err != nil {
		return fmt.Errorf("failed to create product %s: %w", productID, err)
	}
	return nil
}

func ensureDealer(tx *gorm.DB, dealerID string) error {
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&models.Dealer{DealerID: dealerID}).Error
	if err != nil {
		return fmt.Errorf("failed to create dealer %s: %w", dealerID, err)
	}
	return nil
}

func notFound(kind, id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return fmt.Errorf("failed to load %s %s: %w", kind, id, err)
}
