// internal/services/product_service.go
package services

import (
	"context"

	"github.com/javajoker/provenance-backend/internal/database"
	"github.com/javajoker/provenance-backend/internal/i18n"
	"github.com/javajoker/provenance-backend/internal/metrics"
	"github.com/javajoker/provenance-backend/internal/models"
)

type ProductService struct {
	store    database.RecordStore
	registry ProductRegistry
}

func NewProductService(store database.RecordStore, registry ProductRegistry) *ProductService {
	return &ProductService{
		store:    store,
		registry: registry,
	}
}

// Lookup resolves the public description of productID without touching the store.
func (s *ProductService) Lookup(ctx context.Context, productID string) (*models.ProductDetails, error) {
	if productID == "" {
		return nil, badRequest(i18n.KeyProductIDRequired)
	}

	details, err := s.registry.Lookup(ctx, productID)
	if err != nil {
		return nil, internal(i18n.KeyProductVerificationFailed, err)
	}
	return details, nil
}

// VerifyAndRecord resolves productID and merges the description into the
// stored product, keeping any stock already recorded for it.
func (s *ProductService) VerifyAndRecord(ctx context.Context, productID string) (*models.ProductDetails, error) {
	if productID == "" {
		metrics.VerificationsTotal.WithLabelValues("invalid").Inc()
		return nil, badRequest(i18n.KeyProductInvalidID)
	}

	details, err := s.Lookup(ctx, productID)
	if err != nil {
		metrics.VerificationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if details == nil || details.Name == "" || details.Batch == "" {
		metrics.VerificationsTotal.WithLabelValues("not_found").Inc()
		return nil, notFound(i18n.KeyProductNotFound)
	}

	record := *details
	record.ProductID = productID
	if _, err := s.store.UpsertProductDetails(ctx, record); err != nil {
		metrics.VerificationsTotal.WithLabelValues("error").Inc()
		return nil, internal(i18n.KeyProductVerificationFailed, err)
	}

	metrics.VerificationsTotal.WithLabelValues("verified").Inc()
	return details, nil
}
