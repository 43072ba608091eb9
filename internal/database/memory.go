package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/javajoker/provenance-backend/internal/models"
)

// MemoryStore implements RecordStore with in-process maps guarded by a
// single lock. Nothing survives a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[string]*models.Product
	dealers  map[string]*models.Dealer
	reports  []models.Report
	uploads  map[string]models.UploadedFile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[string]*models.Product),
		dealers:  make(map[string]*models.Dealer),
		uploads:  make(map[string]models.UploadedFile),
	}
}

func (s *MemoryStore) UpsertProductDetails(_ context.Context, details models.ProductDetails) (*models.Product, error) {
	if details.ProductID == "" {
		return nil, fmt.Errorf("product id is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.ensureProduct(details.ProductID, time.Now())
	p.ApplyDetails(details)
	p.UpdatedAt = time.Now()
	return copyProduct(p), nil
}

func (s *MemoryStore) AppendStock(_ context.Context, entry models.StockEntry) error {
	if entry.ProductID == "" || entry.DealerID == "" {
		return fmt.Errorf("stock entry needs both product and dealer ids")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	p := s.ensureProduct(entry.ProductID, now)
	d := s.ensureDealer(entry.DealerID, now)

	p.Stock = append(p.Stock, entry)
	p.UpdatedAt = now
	d.PurchaseHistory = append(d.PurchaseHistory, models.NewStockPurchase(entry))
	d.UpdatedAt = now
	return nil
}

func (s *MemoryStore) AppendPurchaseRecord(_ context.Context, dealerID string, record models.PurchaseRecord) error {
	if dealerID == "" {
		return fmt.Errorf("dealer id is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	d := s.ensureDealer(dealerID, now)
	record.DealerID = dealerID
	d.PurchaseHistory = append(d.PurchaseHistory, record)
	d.UpdatedAt = now
	return nil
}

func (s *MemoryStore) AppendReport(_ context.Context, report models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports = append(s.reports, report)
	return nil
}

func (s *MemoryStore) SaveUpload(_ context.Context, file models.UploadedFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.uploads[file.Key]; exists {
		return fmt.Errorf("%w: %s", ErrUploadExists, file.Key)
	}

	file.Data = append([]byte(nil), file.Data...)
	if file.CreatedAt.IsZero() {
		file.CreatedAt = time.Now()
	}
	s.uploads[file.Key] = file
	return nil
}

func (s *MemoryStore) DeleteUpload(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.uploads, key)
	return nil
}

func (s *MemoryStore) GetUpload(_ context.Context, key string) (*models.UploadedFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, ok := s.uploads[key]
	if !ok {
		return nil, fmt.Errorf("upload %s: %w", key, ErrNotFound)
	}
	file.Data = append([]byte(nil), file.Data...)
	return &file, nil
}

func (s *MemoryStore) GetProduct(_ context.Context, productID string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[productID]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}
	return copyProduct(p), nil
}

func (s *MemoryStore) GetDealer(_ context.Context, dealerID string) (*models.Dealer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.dealers[dealerID]
	if !ok {
		return nil, fmt.Errorf("dealer %s: %w", dealerID, ErrNotFound)
	}
	return copyDealer(d), nil
}

func (s *MemoryStore) ListReports(_ context.Context) ([]models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := make([]models.Report, len(s.reports))
	copy(reports, s.reports)
	return reports, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// ensureProduct and ensureDealer must be called with mu held.
func (s *MemoryStore) ensureProduct(productID string, now time.Time) *models.Product {
	p, ok := s.products[productID]
	if !ok {
		p = &models.Product{
			ProductID:  productID,
			Stock:      []models.StockEntry{},
			Timestamps: models.Timestamps{CreatedAt: now, UpdatedAt: now},
		}
		s.products[productID] = p
	}
	return p
}

func (s *MemoryStore) ensureDealer(dealerID string, now time.Time) *models.Dealer {
	d, ok := s.dealers[dealerID]
	if !ok {
		d = &models.Dealer{
			DealerID:        dealerID,
			PurchaseHistory: []models.PurchaseRecord{},
			Timestamps:      models.Timestamps{CreatedAt: now, UpdatedAt: now},
		}
		s.dealers[dealerID] = d
	}
	return d
}

func copyProduct(p *models.Product) *models.Product {
	out := *p
	out.Stock = append(make([]models.StockEntry, 0, len(p.Stock)), p.Stock...)
	return &out
}

func copyDealer(d *models.Dealer) *models.Dealer {
	out := *d
	out.PurchaseHistory = make([]models.PurchaseRecord, len(d.PurchaseHistory))
	for i, rec := range d.PurchaseHistory {
		if rec.Quantity != nil {
			q := *rec.Quantity
			rec.Quantity = &q
		}
		if rec.Price != nil {
			p := *rec.Price
			rec.Price = &p
		}
		out.PurchaseHistory[i] = rec
	}
	return &out
}
