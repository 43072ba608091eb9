// internal/models/report.go
package models

import "time"

// EvidenceNotProvided is stored when a report is submitted without evidence.
const EvidenceNotProvided = "N/A"

type Report struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	ProductID string    `json:"productId" gorm:"size:255;not null;index"`
	Issue     string    `json:"issue" gorm:"type:text;not null"`
	Evidence  string    `json:"evidence" gorm:"type:text"`
	UserID    string    `json:"userId" gorm:"size:255;index"`
	Timestamp time.Time `json:"timestamp" gorm:"not null"`
}
