package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/javajoker/provenance-backend/internal/database"
	"github.com/javajoker/provenance-backend/internal/i18n"
	"github.com/javajoker/provenance-backend/internal/metrics"
	"github.com/javajoker/provenance-backend/internal/models"
	"github.com/javajoker/provenance-backend/internal/utils"
)

type StockService struct {
	store database.RecordStore
	now   func() time.Time
}

// RecordStockRequest binds every field untyped. Any present dealerId or
// productId is accepted; quantity and price of the wrong JSON type are
// reported as invalid rather than failing to bind.
type RecordStockRequest struct {
	DealerID  interface{} `json:"dealerId"`
	ProductID interface{} `json:"productId"`
	Quantity  interface{} `json:"quantity"`
	Price     interface{} `json:"price"`
}

type stockInput struct {
	DealerID  string  `validate:"required"`
	ProductID string  `validate:"required"`
	Quantity  float64 `validate:"gt=0"`
	Price     float64 `validate:"gt=0"`
}

func NewStockService(store database.RecordStore) *StockService {
	return &StockService{
		store: store,
		now:   time.Now,
	}
}

func (s *StockService) RecordStock(ctx context.Context, req *RecordStockRequest) error {
	if req == nil {
		return badRequest(i18n.KeyStockMissingFields)
	}
	dealerID, hasDealer := fieldString(req.DealerID)
	productID, hasProduct := fieldString(req.ProductID)
	if !hasDealer || !hasProduct || isAbsent(req.Quantity) || isAbsent(req.Price) {
		return badRequest(i18n.KeyStockMissingFields)
	}

	quantity, ok := toNumber(req.Quantity)
	if !ok {
		return badRequest(i18n.KeyStockInvalidAmounts)
	}
	price, ok := toNumber(req.Price)
	if !ok {
		return badRequest(i18n.KeyStockInvalidAmounts)
	}

	input := stockInput{
		DealerID:  dealerID,
		ProductID: productID,
		Quantity:  quantity,
		Price:     price,
	}
	if err := utils.ValidateStruct(&input); err != nil {
		for _, fieldErr := range utils.GetValidationErrors(err) {
			if fieldErr.Field == "DealerID" || fieldErr.Field == "ProductID" {
				return badRequest(i18n.KeyStockMissingFields)
			}
		}
		return badRequest(i18n.KeyStockInvalidAmounts)
	}

	entry := models.StockEntry{
		ProductID: input.ProductID,
		DealerID:  input.DealerID,
		Quantity:  input.Quantity,
		Price:     input.Price,
		Timestamp: s.now().UTC(),
	}
	if err := s.store.AppendStock(ctx, entry); err != nil {
		return internal(i18n.KeyStockUpdateFailed, err)
	}

	metrics.StockEntriesTotal.Inc()
	metrics.StockQuantityTotal.Add(entry.Quantity)
	return nil
}

// isAbsent treats null, "", 0 and false as a missing field.
func isAbsent(v interface{}) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return value == ""
	case bool:
		return !value
	case float64:
		return value == 0
	case json.Number:
		f, err := value.Float64()
		return err == nil && f == 0
	default:
		return false
	}
}

func toNumber(v interface{}) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	case json.Number:
		f, err := value.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
