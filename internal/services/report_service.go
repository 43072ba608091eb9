package services

import (
	"context"
	"time"

	"github.com/javajoker/provenance-backend/internal/database"
	"github.com/javajoker/provenance-backend/internal/i18n"
	"github.com/javajoker/provenance-backend/internal/metrics"
	"github.com/javajoker/provenance-backend/internal/models"
	"github.com/javajoker/provenance-backend/internal/utils"
)

type ReportService struct {
	store database.RecordStore
	now   func() time.Time
}

// SubmitReportRequest accepts any present JSON value for its fields;
// non-string values are stored as their JSON text.
type SubmitReportRequest struct {
	ProductID interface{} `json:"productId"`
	Issue     interface{} `json:"issue"`
	Evidence  interface{} `json:"evidence"`
}

type reportInput struct {
	ProductID string `validate:"required"`
	Issue     string `validate:"required"`
	Evidence  string `validate:"required"`
}

func NewReportService(store database.RecordStore) *ReportService {
	return &ReportService{
		store: store,
		now:   time.Now,
	}
}

// SubmitReport appends an issue report for userID. The product id is not
// checked against known products.
func (s *ReportService) SubmitReport(ctx context.Context, userID string, req *SubmitReportRequest) error {
	if req == nil {
		return badRequest(i18n.KeyReportMissingFields)
	}
	productID, _ := fieldString(req.ProductID)
	issue, _ := fieldString(req.Issue)
	evidence, ok := fieldString(req.Evidence)
	if !ok {
		evidence = models.EvidenceNotProvided
	}

	input := reportInput{ProductID: productID, Issue: issue, Evidence: evidence}
	if err := utils.ValidateStruct(&input); err != nil {
		return badRequest(i18n.KeyReportMissingFields)
	}

	report := models.Report{
		ProductID: input.ProductID,
		Issue:     input.Issue,
		Evidence:  input.Evidence,
		UserID:    userID,
		Timestamp: s.now().UTC(),
	}
	if err := s.store.AppendReport(ctx, report); err != nil {
		return internal(i18n.KeyReportFailed, err)
	}

	metrics.ReportsTotal.Inc()
	return nil
}
