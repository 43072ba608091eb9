// internal/models/common.go
package models

import "time"

// Timestamps shared by the aggregate roots. Not part of the API payloads.
type Timestamps struct {
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Enums
type PurchaseKind string

const (
	PurchaseKindStock  PurchaseKind = "stock"
	PurchaseKindUpload PurchaseKind = "upload"
)
