package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDetailsKeepsStock(t *testing.T) {
	p := Product{
		ProductID: "P1",
		Stock:     []StockEntry{{DealerID: "D1", Quantity: 5, Price: 10}},
	}
	p.ApplyDetails(ProductDetails{ProductID: "ignored", Name: "Product P1", Batch: "A123", FairPrice: 10, Expiry: "2026-04-30"})

	assert.Equal(t, "P1", p.ProductID)
	assert.Equal(t, "Product P1", p.Name)
	assert.Len(t, p.Stock, 1)
	assert.Equal(t, ProductDetails{ProductID: "P1", Name: "Product P1", Batch: "A123", FairPrice: 10, Expiry: "2026-04-30"}, p.Details())
}

func TestPurchaseRecordShapes(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	stock := NewStockPurchase(StockEntry{ProductID: "P1", DealerID: "D1", Quantity: 5, Price: 10, Timestamp: ts})
	raw, err := json.Marshal(stock)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"stock","productId":"P1","quantity":5,"price":10,"timestamp":"2025-01-02T03:04:05Z"}`, string(raw))

	upload := NewUploadPurchase("D1", "P1", "mock://uploads/x.pdf", ts)
	raw, err = json.Marshal(upload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"upload","productId":"P1","fileUrl":"mock://uploads/x.pdf","timestamp":"2025-01-02T03:04:05Z"}`, string(raw))
}
