// internal/models/product.go
package models

import "time"

// ProductDetails is the descriptive half of a product as resolved by the registry.
type ProductDetails struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Batch     string  `json:"batch"`
	FairPrice float64 `json:"fairPrice"`
	Expiry    string  `json:"expiry"`
}

type Product struct {
	ProductID string       `json:"productId" gorm:"primaryKey;size:255"`
	Name      string       `json:"name,omitempty" gorm:"size:255"`
	Batch     string       `json:"batch,omitempty" gorm:"size:100"`
	FairPrice float64      `json:"fairPrice,omitempty" gorm:"type:decimal(12,2)"`
	Expiry    string       `json:"expiry,omitempty" gorm:"size:32"`
	Stock     []StockEntry `json:"stock" gorm:"foreignKey:ProductID;references:ProductID"`
	Timestamps
}

// ApplyDetails overwrites the descriptive fields and leaves Stock alone.
func (p *Product) ApplyDetails(d ProductDetails) {
	p.Name = d.Name
	p.Batch = d.Batch
	p.FairPrice = d.FairPrice
	p.Expiry = d.Expiry
}

func (p *Product) Details() ProductDetails {
	return ProductDetails{
		ProductID: p.ProductID,
		Name:      p.Name,
		Batch:     p.Batch,
		FairPrice: p.FairPrice,
		Expiry:    p.Expiry,
	}
}

// StockEntry is one stock intake event. Entries are never modified after insert.
type StockEntry struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	ProductID string    `json:"-" gorm:"size:255;not null;index"`
	DealerID  string    `json:"dealerId" gorm:"size:255;not null;index"`
	Quantity  float64   `json:"quantity" gorm:"not null"`
	Price     float64   `json:"price" gorm:"type:decimal(12,2);not null"`
	Timestamp time.Time `json:"timestamp" gorm:"not null"`
}
