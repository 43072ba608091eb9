package services

import (
	"context"
	"fmt"

	"github.com/javajoker/provenance-backend/internal/models"
)

// ProductRegistry resolves a product id to its authoritative description.
type ProductRegistry interface {
	Lookup(ctx context.Context, productID string) (*models.ProductDetails, error)
}

// StubRegistry synthesises a deterministic description for any id. It stands
// in for an external product registry.
type StubRegistry struct {
	Batch     string
	FairPrice float64
	Expiry    string
}

func NewStubRegistry() *StubRegistry {
	return &StubRegistry{
		Batch:     "A123",
		FairPrice: 10.0,
		Expiry:    "2026-04-30",
	}
}

func (r *StubRegistry) Lookup(_ context.Context, productID string) (*models.ProductDetails, error) {
	return &models.ProductDetails{
		ProductID: productID,
		Name:      fmt.Sprintf("Product %s", productID),
		Batch:     r.Batch,
		FairPrice: r.FairPrice,
		Expiry:    r.Expiry,
	}, nil
}
