// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/javajoker/provenance-backend/internal/config"
	"github.com/javajoker/provenance-backend/internal/database"
	"github.com/javajoker/provenance-backend/internal/models"
)

// StorageService is the upload store for purchase documents. Blobs go to S3
// when AWS credentials are configured and to the record store otherwise.
type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
	records  database.RecordStore
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

func NewStorageService(config *config.Config, records database.RecordStore) (*StorageService, error) {
	if config.AWS.AccessKeyID == "" {
		// Keep blobs next to the records for local development
		return &StorageService{config: config, records: records}, nil
	}

	// Create AWS session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AWS.AccessKeyID,
			config.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   config,
		records:  records,
	}, nil
}

// PurchaseDocumentKey builds purchases/{dealerId}/{productId}_{unixMillis}_{id}.pdf.
// The uuid fragment keeps two uploads in the same millisecond apart.
func (s *StorageService) PurchaseDocumentKey(dealerID, productID string, at time.Time) string {
	id := uuid.New()
	return fmt.Sprintf("purchases/%s/%s_%d_%s.pdf", dealerID, productID, at.UnixMilli(), id.String()[:8])
}

func (s *StorageService) Upload(ctx context.Context, key string, data []byte, contentType string) (*UploadResult, error) {
	if contentType == "" {
		contentType = "application/pdf"
	}

	if s.s3Client != nil {
		return s.uploadToS3(ctx, data, key, contentType)
	}

	return s.uploadToRecordStore(ctx, data, key, contentType)
}

func (s *StorageService) uploadToS3(ctx context.Context, fileBytes []byte, key, contentType string) (*UploadResult, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
	}

	if _, err := s.s3Client.PutObjectWithContext(ctx, params); err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		URL:      s.getS3URL(key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) uploadToRecordStore(ctx context.Context, fileBytes []byte, key, contentType string) (*UploadResult, error) {
	err := s.records.SaveUpload(ctx, models.UploadedFile{
		Key:         key,
		Data:        fileBytes,
		Size:        int64(len(fileBytes)),
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	return &UploadResult{
		URL:      s.config.Upload.URLPrefix + key,
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) DeleteFile(ctx context.Context, key string) error {
	if s.s3Client == nil {
		return s.records.DeleteUpload(ctx, key)
	}

	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

func (s *StorageService) getS3URL(key string) string {
	escaped := escapeKey(key)
	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.config.AWS.CloudFrontURL, "/"), escaped)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, escaped)
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
