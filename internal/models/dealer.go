// internal/models/dealer.go
package models

import "time"

type Dealer struct {
	DealerID        string           `json:"dealerId" gorm:"primaryKey;size:255"`
	PurchaseHistory []PurchaseRecord `json:"purchaseHistory" gorm:"foreignKey:DealerID;references:DealerID"`
	Timestamps
}

// PurchaseRecord is either a mirrored stock event (Quantity and Price set)
// or an uploaded purchase document (FileURL set), discriminated by Kind.
type PurchaseRecord struct {
	ID        uint         `json:"-" gorm:"primaryKey"`
	DealerID  string       `json:"-" gorm:"size:255;not null;index"`
	Kind      PurchaseKind `json:"kind" gorm:"type:varchar(20);not null"`
	ProductID string       `json:"productId" gorm:"size:255;not null;index"`
	Quantity  *float64     `json:"quantity,omitempty"`
	Price     *float64     `json:"price,omitempty" gorm:"type:decimal(12,2)"`
	FileURL   string       `json:"fileUrl,omitempty" gorm:"size:1024"`
	Timestamp time.Time    `json:"timestamp" gorm:"not null"`
}

// NewStockPurchase mirrors a stock entry into the dealer's purchase history.
func NewStockPurchase(entry StockEntry) PurchaseRecord {
	quantity, price := entry.Quantity, entry.Price
	return PurchaseRecord{
		DealerID:  entry.DealerID,
		Kind:      PurchaseKindStock,
		ProductID: entry.ProductID,
		Quantity:  &quantity,
		Price:     &price,
		Timestamp: entry.Timestamp,
	}
}

func NewUploadPurchase(dealerID, productID, fileURL string, ts time.Time) PurchaseRecord {
	return PurchaseRecord{
		DealerID:  dealerID,
		Kind:      PurchaseKindUpload,
		ProductID: productID,
		FileURL:   fileURL,
		Timestamp: ts,
	}
}
