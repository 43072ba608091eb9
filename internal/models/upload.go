// internal/models/upload.go
package models

import "time"

type UploadedFile struct {
	Key         string    `json:"key" gorm:"column:storage_key;primaryKey;size:1024"`
	Data        []byte    `json:"-" gorm:"not null"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType" gorm:"size:255"`
	CreatedAt   time.Time `json:"createdAt"`
}
