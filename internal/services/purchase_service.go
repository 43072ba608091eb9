package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/provenance-backend/internal/database"
	"github.com/javajoker/provenance-backend/internal/i18n"
	"github.com/javajoker/provenance-backend/internal/metrics"
	"github.com/javajoker/provenance-backend/internal/models"
	"github.com/javajoker/provenance-backend/internal/utils"
)

type PurchaseService struct {
	store   database.RecordStore
	storage *StorageService
	now     func() time.Time
}

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type PurchaseUploadRequest struct {
	DealerID   string      `validate:"required"`
	ProductID  string      `validate:"required"`
	Attachment *Attachment `validate:"required"`
}

type PurchaseUploadResult struct {
	FileURL string `json:"fileUrl"`
	Key     string `json:"key"`
}

func NewPurchaseService(store database.RecordStore, storage *StorageService) *PurchaseService {
	return &PurchaseService{
		store:   store,
		storage: storage,
		now:     time.Now,
	}
}

// RecordPurchaseUpload stores the attachment and appends a purchase record
// that references it. The blob is removed again if the record cannot be written.
func (s *PurchaseService) RecordPurchaseUpload(ctx context.Context, req *PurchaseUploadRequest) (*PurchaseUploadResult, error) {
	if req == nil {
		return nil, badRequest(i18n.KeyUploadMissingFields)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, badRequest(i18n.KeyUploadMissingFields)
	}

	now := s.now().UTC()
	key := s.storage.PurchaseDocumentKey(req.DealerID, req.ProductID, now)

	upload, err := s.storage.Upload(ctx, key, req.Attachment.Data, req.Attachment.ContentType)
	if err != nil {
		return nil, internal(i18n.KeyUploadFailed, err)
	}

	record := models.NewUploadPurchase(req.DealerID, req.ProductID, upload.URL, now)
	if err := s.store.AppendPurchaseRecord(ctx, req.DealerID, record); err != nil {
		if delErr := s.storage.DeleteFile(ctx, upload.Key); delErr != nil {
			logrus.WithError(delErr).WithField("key", upload.Key).Warn("Failed to remove orphaned purchase upload")
		}
		return nil, internal(i18n.KeyUploadFailed, err)
	}

	metrics.PurchaseUploadsTotal.Inc()
	metrics.PurchaseUploadBytes.Observe(float64(upload.Size))

	return &PurchaseUploadResult{
		FileURL: upload.URL,
		Key:     upload.Key,
	}, nil
}
